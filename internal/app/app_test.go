package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepcoach/internal/prepapi"
	"github.com/abhisek/prepcoach/internal/router"
	"github.com/abhisek/prepcoach/internal/screen"
)

const description = "Senior backend engineer building Go microservices on Kubernetes."

func newTestModel(desc string) AppModel {
	m := newAppModel(context.Background(), Options{
		Service:        prepapi.NewMockService(),
		JobDescription: desc,
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(AppModel)
}

func TestStartsOnWelcomeWithoutDescription(t *testing.T) {
	m := newTestModel("")
	if got := m.router.Active().Title(); got != "" {
		t.Errorf("expected welcome screen, got title %q", got)
	}
}

func TestPreloadedDescriptionSkipsWelcome(t *testing.T) {
	m := newTestModel(description)
	if got := m.router.Active().Title(); got != "Job Description" {
		t.Fatalf("expected wizard screen, got %q", got)
	}
	content := m.render()
	if !strings.Contains(content, "Step 1/5") {
		t.Error("expected step indicator in header")
	}
	if !strings.Contains(content, "Analyze job") {
		t.Error("expected wizard key hints in footer")
	}
}

func TestTooSmall(t *testing.T) {
	m := newTestModel(description)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if !strings.Contains(updated.(AppModel).render(), "Terminal too small") {
		t.Error("expected min size message")
	}
}

func TestEscSwallowedOnInputStep(t *testing.T) {
	m := newTestModel(description)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("Esc at the bottom of the stack should do nothing on the input step")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel("")
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestRunRequiresService(t *testing.T) {
	if err := Run(context.Background(), Options{}); err == nil {
		t.Error("expected error without a service")
	}
}

// sizeScreen records the window sizes it receives.
type sizeScreen struct {
	sizes []tea.WindowSizeMsg
}

func (s *sizeScreen) Init() tea.Cmd { return nil }
func (s *sizeScreen) View(int, int) string { return "" }
func (s *sizeScreen) Title() string { return "Size" }
func (s *sizeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		s.sizes = append(s.sizes, ws)
	}
	return s, nil
}

func TestReplacedScreenGetsWindowSize(t *testing.T) {
	m := newTestModel("")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	m = updated.(AppModel)

	next := &sizeScreen{}
	updated, _ = m.Update(router.ReplaceScreenMsg{Screen: next})
	m = updated.(AppModel)

	if m.router.Active() != screen.Screen(next) {
		t.Fatal("expected replaced screen to be active")
	}
	if len(next.sizes) != 1 {
		t.Fatalf("got %d size messages, want 1", len(next.sizes))
	}
	if next.sizes[0].Width != 160 || next.sizes[0].Height != 50 {
		t.Errorf("size = %dx%d, want 160x50", next.sizes[0].Width, next.sizes[0].Height)
	}
}

func TestSameScreenNotResized(t *testing.T) {
	m := newTestModel("")
	next := &sizeScreen{}
	updated, _ := m.Update(router.ReplaceScreenMsg{Screen: next})
	m = updated.(AppModel)

	// Width 100 was already known, so the new screen gets exactly one
	// size message; further keys do not resend it.
	_, _ = m.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if len(next.sizes) != 1 {
		t.Errorf("got %d size messages, want 1", len(next.sizes))
	}
}
