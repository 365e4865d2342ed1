package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestStepLabel(t *testing.T) {
	tests := []struct {
		current, total int
		want           string
	}{
		{1, 5, "Step 1/5"},
		{5, 5, "Step 5/5"},
		{0, 5, ""},
		{2, 0, ""},
	}
	for _, tt := range tests {
		if got := StepLabel(tt.current, tt.total); got != tt.want {
			t.Errorf("StepLabel(%d, %d) = %q, want %q", tt.current, tt.total, got, tt.want)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	out := ansi.Strip(RenderHeader("Analysis", "Step 2/5", 80))
	for _, want := range []string{"Interview Prep", "Analysis", "Step 2/5"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(79, 24) {
		t.Error("79x24 should be too small")
	}
	if IsTooSmall(80, 24) {
		t.Error("80x24 should fit")
	}
}

func TestRenderFooter(t *testing.T) {
	out := ansi.Strip(RenderFooter([]KeyHint{{Key: "Ctrl+S", Description: "Analyze"}}, 80))
	if !strings.Contains(out, "Ctrl+S Analyze") {
		t.Errorf("footer missing hint:\n%s", out)
	}
}
