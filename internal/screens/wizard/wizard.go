// Package wizard is the screen that walks through the interview prep
// steps: job description, analysis, study plan, practice and evaluation.
package wizard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepcoach/internal/prepapi"
	"github.com/abhisek/prepcoach/internal/screen"
	"github.com/abhisek/prepcoach/internal/ui/components"
	"github.com/abhisek/prepcoach/internal/ui/layout"
	wiz "github.com/abhisek/prepcoach/internal/wizard"
)

const (
	spinnerInterval = 100 * time.Millisecond
	// chrome is the space taken by the frame around the textareas.
	chrome         = 4
	inputRows      = 12
	answerRows     = 8
	scrollPageSize = 10
)

// WizardScreen renders one wizard step at a time and drives the
// controller. Service calls run as commands; their outcomes are applied
// in Update.
type WizardScreen struct {
	ctx     context.Context
	wiz     *wiz.Wizard
	input   components.TextArea
	answer  components.TextArea
	topics  components.Menu
	spinner components.Spinner
	scroll  int
	width   int
	// lastStep detects step changes so scroll and inputs can be reset.
	lastStep wiz.Step
}

var _ screen.Screen = (*WizardScreen)(nil)
var _ screen.KeyHintProvider = (*WizardScreen)(nil)
var _ screen.StepProvider = (*WizardScreen)(nil)
var _ screen.EscapeHandler = (*WizardScreen)(nil)

// New creates the screen. ctx bounds every service call it starts.
// A non-empty description is preloaded into the input step.
func New(ctx context.Context, w *wiz.Wizard, description string) *WizardScreen {
	s := &WizardScreen{
		ctx:      ctx,
		wiz:      w,
		input:    components.NewTextArea("Paste the job description here...", wiz.MinDescriptionLength),
		answer:   components.NewTextArea("Type your answer here...", wiz.MinAnswerLength),
		lastStep: w.State().Step,
	}
	s.input.SetSize(layout.MinWidth-chrome, inputRows)
	s.answer.SetSize(layout.MinWidth-chrome, answerRows)
	if description != "" {
		s.input.SetValue(description)
		w.SetJobDescription(description)
	}
	return s
}

func (s *WizardScreen) Init() tea.Cmd {
	return nil
}

func (s *WizardScreen) Title() string {
	switch s.wiz.State().Step {
	case wiz.StepAnalysis:
		return "Job Analysis"
	case wiz.StepPlan:
		return "Study Plan"
	case wiz.StepPractice:
		return "Practice"
	case wiz.StepEvaluation:
		return "Evaluation"
	default:
		return "Job Description"
	}
}

func (s *WizardScreen) Step() (int, int) {
	return s.wiz.State().Step.Index(), len(wiz.Steps)
}

// HandlesEscape is true on the practice and evaluation steps, where Esc
// goes back to the study plan.
func (s *WizardScreen) HandlesEscape() bool {
	step := s.wiz.State().Step
	return step == wiz.StepPractice || step == wiz.StepEvaluation
}

func (s *WizardScreen) KeyHints() []layout.KeyHint {
	st := s.wiz.State()
	if st.Loading {
		return []layout.KeyHint{
			{Key: "Ctrl+R", Description: "Start over"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	var hints []layout.KeyHint
	switch st.Step {
	case wiz.StepInput:
		hints = []layout.KeyHint{{Key: "Ctrl+S", Description: "Analyze job"}}
	case wiz.StepAnalysis:
		hints = []layout.KeyHint{
			{Key: "Enter", Description: "Generate study plan"},
			{Key: "Ctrl+R", Description: "Start over"},
		}
	case wiz.StepPlan:
		hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Topic"},
			{Key: "Enter", Description: "Practice"},
			{Key: "Ctrl+R", Description: "Start over"},
		}
	case wiz.StepPractice:
		hints = []layout.KeyHint{
			{Key: "Ctrl+S", Description: "Submit answer"},
			{Key: "Esc", Description: "Back to plan"},
		}
	case wiz.StepEvaluation:
		if st.HasNextQuestion() {
			hints = []layout.KeyHint{{Key: "n", Description: "Next question"}}
		} else {
			hints = []layout.KeyHint{{Key: "Enter", Description: "Back to plan"}}
		}
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Start over"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "PgUp/PgDn", Description: "Scroll"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
	return hints
}

func (s *WizardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case outcomeMsg:
		s.wiz.Complete(msg.Outcome)
		s.sync()
		return s, nil

	case spinnerTickMsg:
		if !s.wiz.State().Loading {
			return s, nil
		}
		s.spinner.Advance()
		return s, spinnerTick()

	case tea.WindowSizeMsg:
		s.width = msg.Width
		w := max(msg.Width-chrome, 20)
		s.input.SetSize(w, inputRows)
		s.answer.SetSize(w, answerRows)
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	// Paste and other input go to the active textarea.
	return s, s.forwardToInput(msg)
}

func (s *WizardScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	st := s.wiz.State()

	switch msg.String() {
	case "ctrl+r":
		if st.Step != wiz.StepInput || st.Loading {
			s.wiz.Reset()
			s.sync()
		}
		return s, nil
	case "pgup":
		s.scroll = max(s.scroll-scrollPageSize, 0)
		return s, nil
	case "pgdown":
		s.scroll += scrollPageSize
		return s, nil
	}

	if st.Loading {
		return s, nil
	}

	switch st.Step {
	case wiz.StepInput:
		if msg.String() == "ctrl+s" {
			s.wiz.SetJobDescription(s.input.Value())
			return s, s.start(s.wiz.BeginAnalyzeJob())
		}
		return s, s.forwardToInput(msg)

	case wiz.StepAnalysis:
		if msg.String() == "enter" {
			return s, s.start(s.wiz.BeginGenerateStudyPlan())
		}

	case wiz.StepPlan:
		var cmd tea.Cmd
		s.topics, cmd = s.topics.Update(msg)
		return s, cmd

	case wiz.StepPractice:
		switch msg.String() {
		case "ctrl+s":
			s.wiz.SetUserAnswer(s.answer.Value())
			return s, s.start(s.wiz.BeginEvaluateAnswer())
		case "esc":
			_ = s.wiz.BackToPlan()
			s.sync()
			return s, nil
		}
		return s, s.forwardToInput(msg)

	case wiz.StepEvaluation:
		switch msg.String() {
		case "n":
			if s.wiz.NextQuestion() {
				s.sync()
			}
		case "enter":
			if !s.wiz.NextQuestion() {
				_ = s.wiz.BackToPlan()
			}
			s.sync()
		case "esc":
			_ = s.wiz.BackToPlan()
			s.sync()
		}
	}

	return s, nil
}

// forwardToInput hands msg to the textarea of the current step and copies
// the draft into the controller.
func (s *WizardScreen) forwardToInput(msg tea.Msg) tea.Cmd {
	st := s.wiz.State()
	if st.Loading {
		return nil
	}

	var cmd tea.Cmd
	switch st.Step {
	case wiz.StepInput:
		s.input, cmd = s.input.Update(msg)
		s.wiz.SetJobDescription(s.input.Value())
	case wiz.StepPractice:
		s.answer, cmd = s.answer.Update(msg)
		s.wiz.SetUserAnswer(s.answer.Value())
	}
	return cmd
}

// start launches a pending operation. Validation failures are already in
// the controller state and need no command.
func (s *WizardScreen) start(p *wiz.Pending, err error) tea.Cmd {
	if err != nil {
		return nil
	}

	ctx := s.ctx
	return tea.Batch(
		func() tea.Msg {
			return outcomeMsg{Outcome: p.Do(ctx)}
		},
		spinnerTick(),
	)
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

// sync brings the widgets in line with the controller after anything
// other than typing changed its state.
func (s *WizardScreen) sync() {
	st := s.wiz.State()
	changed := st.Step != s.lastStep

	switch st.Step {
	case wiz.StepInput:
		if s.input.Value() != st.JobDescription {
			s.input.SetValue(st.JobDescription)
		}
	case wiz.StepPlan:
		if changed {
			selected := s.topics.Selected
			s.topics = s.topicMenu(st.StudyPlan)
			if selected < len(s.topics.Items) {
				s.topics.Selected = selected
			}
		}
	case wiz.StepPractice:
		if s.answer.Value() != st.UserAnswer {
			s.answer.SetValue(st.UserAnswer)
		}
	}

	if changed {
		s.scroll = 0
	}
	s.lastStep = st.Step
}

// topicMenu lists one "Practice <topic>" entry per study plan topic.
func (s *WizardScreen) topicMenu(plan *prepapi.StudyPlan) components.Menu {
	if plan == nil {
		return components.NewMenu(nil)
	}
	items := make([]components.MenuItem, 0, len(plan.Topics))
	for _, t := range plan.Topics {
		topic := t.Topic
		items = append(items, components.MenuItem{
			Label:  "Practice " + topic,
			Detail: fmt.Sprintf("%sh · priority %d", formatHours(t.EstimatedHours), t.Priority),
			Action: func() tea.Cmd {
				return s.start(s.wiz.BeginGenerateQuestions(topic))
			},
		})
	}
	return components.NewMenu(items)
}

func formatHours(h float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", h), "0"), ".")
}

// loadingLabel is the spinner text for the operation in flight.
func loadingLabel(op wiz.Op) string {
	switch op {
	case wiz.OpAnalyzeJob:
		return "Analyzing..."
	case wiz.OpEvaluateAnswer:
		return "Evaluating..."
	default:
		return "Generating..."
	}
}
