package wizard

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepcoach/internal/prepapi"
	"github.com/abhisek/prepcoach/internal/ui/components"
	"github.com/abhisek/prepcoach/internal/ui/theme"
	wiz "github.com/abhisek/prepcoach/internal/wizard"
)

func (s *WizardScreen) View(width, height int) string {
	st := s.wiz.State()
	inner := max(width-chrome, 20)

	var sections []string
	if st.Error != "" {
		sections = append(sections, theme.ErrorBanner.Width(inner).Render("✗ "+st.Error), "")
	}

	switch st.Step {
	case wiz.StepAnalysis:
		sections = append(sections, s.renderAnalysis(st, inner))
	case wiz.StepPlan:
		sections = append(sections, s.renderPlan(st, inner))
	case wiz.StepPractice:
		sections = append(sections, s.renderPractice(st, inner))
	case wiz.StepEvaluation:
		sections = append(sections, s.renderEvaluation(st, inner))
	default:
		sections = append(sections, s.renderInput(st, inner))
	}

	body := lipgloss.NewStyle().PaddingLeft(2).Render(strings.Join(sections, "\n"))
	return s.clip(body, height)
}

// clip applies the scroll offset and cuts the body to height rows.
func (s *WizardScreen) clip(body string, height int) string {
	lines := strings.Split(body, "\n")
	if height <= 0 || len(lines) <= height {
		s.scroll = 0
		return body
	}

	maxScroll := len(lines) - height
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}
	return strings.Join(lines[s.scroll:s.scroll+height], "\n")
}

// actions renders the action bar, or the spinner while a request runs.
func (s *WizardScreen) actions(st wiz.State, buttons ...components.Button) string {
	if st.Loading {
		return s.spinner.View(loadingLabel(st.Pending))
	}
	return components.ActionBar(buttons...)
}

func (s *WizardScreen) renderInput(st wiz.State, width int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Step 1: Paste Job Description"))
	b.WriteString("\n")
	b.WriteString(wrap(theme.Dim, "Paste the job description you want to prepare for and it will be analyzed.", width))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	b.WriteString("\n")
	b.WriteString(s.input.Counter())
	b.WriteString("\n\n")
	b.WriteString(s.actions(st, components.Button{Key: "Ctrl+S", Label: "Analyze Job", Primary: true}))
	return b.String()
}

func (s *WizardScreen) renderAnalysis(st wiz.State, width int) string {
	a := st.JobAnalysis
	if a == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Render(a.RoleTitle))
	b.WriteString("\n\n")
	b.WriteString(components.Badges(
		components.Badge(a.CompanyType, theme.BadgeImportant),
		components.Badge(a.ExperienceLevel, theme.BadgeImportant),
		components.Badge(a.DifficultyLevel, theme.BadgeCritical),
	))
	b.WriteString("\n\n")
	b.WriteString(wrap(theme.Body, a.Summary, width))
	b.WriteString("\n\n")

	b.WriteString(theme.Heading.Render("Key Skills Required"))
	b.WriteString("\n")
	for _, sk := range a.KeySkills {
		line := "  • " + lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(sk.Name) +
			"  " + components.ImportanceBadge(sk.Importance)
		if sk.Category != "" {
			line += "  " + theme.Dim.Render(sk.Category)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.actions(st,
		components.Button{Key: "Enter", Label: "Generate Study Plan", Primary: true},
		components.Button{Key: "Ctrl+R", Label: "Start Over"},
	))
	return b.String()
}

func (s *WizardScreen) renderPlan(st wiz.State, width int) string {
	p := st.StudyPlan
	if p == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.Heading.Render("Your Personalized Study Plan"))
	b.WriteString("\n\n")
	b.WriteString(theme.Dim.Render("Total Duration  "))
	b.WriteString(theme.Heading.Render(formatHours(p.TotalDurationHours) + " hours"))
	b.WriteString(theme.Dim.Render("    Timeline  "))
	b.WriteString(theme.Heading.Render(p.TimelineSuggestion))
	b.WriteString("\n\n")

	b.WriteString(theme.Heading.Render("Choose a topic to practice"))
	b.WriteString("\n")
	b.WriteString(s.topics.View())
	b.WriteString(s.actions(st, components.Button{Key: "Ctrl+R", Label: "Start Over"}))
	b.WriteString("\n\n")

	b.WriteString(callout(theme.Secondary, "Strategy", wrap(theme.Body, p.PreparationStrategy, width-2), width))
	b.WriteString("\n\n")

	b.WriteString(theme.Heading.Render("Study Topics"))
	b.WriteString("\n")
	for i, t := range p.Topics {
		b.WriteString(renderTopic(i, t, i == s.topics.Selected, width))
		b.WriteString("\n")
	}
	return b.String()
}

func renderTopic(i int, t prepapi.StudyTopic, selected bool, width int) string {
	title := fmt.Sprintf("%d. %s", i+1, t.Topic)
	titleStyle := theme.Heading
	border := theme.Border
	if selected {
		titleStyle = theme.Selected
		border = theme.Primary
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("  ")
	b.WriteString(components.Badges(
		components.Badge(formatHours(t.EstimatedHours)+"h", theme.BadgeImportant),
		components.Badge(fmt.Sprintf("Priority %d", t.Priority), theme.BadgeNice),
	))
	b.WriteString("\n")
	b.WriteString(wrap(theme.Body, t.Description, width-4))
	if len(t.Resources) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Dim.Render("Resources:"))
		b.WriteString("\n")
		b.WriteString(bullets(t.Resources, width-4))
	}
	return theme.Card.BorderForeground(border).Width(width).Render(b.String())
}

func (s *WizardScreen) renderPractice(st wiz.State, width int) string {
	q, ok := st.CurrentQuestion()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.Heading.Render(fmt.Sprintf("Practice Question %d/%d", st.CurrentQuestionIndex+1, len(st.Questions))))
	b.WriteString("  ")
	b.WriteString(components.DifficultyBadge(q.Difficulty))
	if st.Topic != "" {
		b.WriteString("  ")
		b.WriteString(theme.Dim.Render(st.Topic))
	}
	b.WriteString("\n\n")

	b.WriteString(theme.Dim.Render(q.Type))
	b.WriteString("\n")
	b.WriteString(wrap(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), q.Question, width))
	b.WriteString("\n\n")

	if len(q.Hints) > 0 {
		b.WriteString(theme.Heading.Render("Hints"))
		b.WriteString("\n")
		b.WriteString(bullets(q.Hints, width))
		b.WriteString("\n\n")
	}

	b.WriteString(s.answer.View())
	b.WriteString("\n")
	b.WriteString(s.answer.Counter())
	b.WriteString("\n\n")
	b.WriteString(s.actions(st,
		components.Button{Key: "Ctrl+S", Label: "Submit Answer", Primary: true},
		components.Button{Key: "Esc", Label: "Back to Plan"},
	))
	return b.String()
}

func (s *WizardScreen) renderEvaluation(st wiz.State, width int) string {
	e := st.Evaluation
	if e == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(components.NewScoreBar("Your Score", e.Score, width).View())
	b.WriteString("\n\n")
	b.WriteString(callout(theme.Success, "Strengths", bullets(e.Strengths, width-2), width))
	b.WriteString("\n\n")
	b.WriteString(callout(theme.Warning, "Areas for Improvement", bullets(e.Improvements, width-2), width))
	b.WriteString("\n\n")
	b.WriteString(callout(theme.Secondary, "Suggested Answer", wrap(theme.Body, e.SuggestedAnswer, width-2), width))
	b.WriteString("\n\n")
	b.WriteString(callout(theme.Border, "Overall Feedback", wrap(theme.Body, e.OverallFeedback, width-2), width))
	b.WriteString("\n\n")

	next := components.Button{Key: "Enter", Label: "Back to Study Plan", Primary: true}
	if st.HasNextQuestion() {
		next = components.Button{
			Key:     "n",
			Label:   fmt.Sprintf("Next Question (%d/%d)", st.CurrentQuestionIndex+2, len(st.Questions)),
			Primary: true,
		}
	}
	b.WriteString(s.actions(st, next, components.Button{Key: "Ctrl+R", Label: "Start Over"}))
	return b.String()
}

func callout(c color.Color, title, body string, width int) string {
	content := lipgloss.NewStyle().Bold(true).Foreground(c).Render(title) + "\n" + body
	return theme.Callout.BorderForeground(c).Width(width).Render(content)
}

func bullets(items []string, width int) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, wrap(theme.Body, "• "+it, width))
	}
	return strings.Join(lines, "\n")
}

func wrap(style lipgloss.Style, text string, width int) string {
	return style.Width(max(width, 10)).Render(text)
}
