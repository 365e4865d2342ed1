// Package report renders wizard results as Markdown and builds a complete
// prep pack without the TUI.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abhisek/prepcoach/internal/prepapi"
)

// writer accumulates the first write error so render functions can stay
// linear.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

func (w *writer) list(items []string) {
	for _, it := range items {
		w.printf("- %s\n", it)
	}
}

// Hours formats a duration in hours without a trailing ".0".
func Hours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// WriteAnalysis renders a job analysis.
func WriteAnalysis(out io.Writer, a *prepapi.JobAnalysis) error {
	w := &writer{w: out}
	w.printf("## %s\n\n", a.RoleTitle)
	w.printf("**Company:** %s · **Level:** %s · **Difficulty:** %s\n\n",
		a.CompanyType, a.ExperienceLevel, a.DifficultyLevel)
	w.printf("%s\n\n", a.Summary)
	w.printf("### Key Skills Required\n\n")
	for _, s := range a.KeySkills {
		w.printf("- **%s** (%s) · %s\n", s.Name, s.Importance, s.Category)
	}
	w.printf("\n")
	return w.err
}

// WritePlan renders a study plan with numbered topics.
func WritePlan(out io.Writer, p *prepapi.StudyPlan) error {
	w := &writer{w: out}
	w.printf("## Study Plan\n\n")
	w.printf("**Total Duration:** %s hours · **Timeline:** %s\n\n", Hours(p.TotalDurationHours), p.TimelineSuggestion)
	w.printf("**Strategy:** %s\n\n", p.PreparationStrategy)
	for i, t := range p.Topics {
		w.printf("### %d. %s (%sh, priority %d)\n\n", i+1, t.Topic, Hours(t.EstimatedHours), t.Priority)
		w.printf("%s\n\n", t.Description)
		if len(t.Resources) > 0 {
			w.printf("Resources:\n\n")
			w.list(t.Resources)
			w.printf("\n")
		}
	}
	return w.err
}

// WriteQuestion renders one practice question. n and total are 1-based.
func WriteQuestion(out io.Writer, q prepapi.PracticeQuestion, n, total int) error {
	w := &writer{w: out}
	w.printf("#### Practice Question %d/%d · %s · %s\n\n", n, total, q.Difficulty, q.Type)
	w.printf("%s\n\n", q.Question)
	if len(q.Hints) > 0 {
		w.printf("Hints:\n\n")
		w.list(q.Hints)
		w.printf("\n")
	}
	return w.err
}

// WriteKeyPoints renders the points a good answer covers.
func WriteKeyPoints(out io.Writer, q prepapi.PracticeQuestion) error {
	if len(q.KeyPoints) == 0 {
		return nil
	}
	w := &writer{w: out}
	w.printf("Key points:\n\n")
	w.list(q.KeyPoints)
	w.printf("\n")
	return w.err
}

// WriteEvaluation renders an answer evaluation.
func WriteEvaluation(out io.Writer, e *prepapi.AnswerEvaluation) error {
	w := &writer{w: out}
	w.printf("### Your Score: %d/100 %s\n\n", e.Score, scoreBar(e.Score))
	w.printf("**Strengths**\n\n")
	w.list(e.Strengths)
	w.printf("\n**Areas for Improvement**\n\n")
	w.list(e.Improvements)
	w.printf("\n**Suggested Answer**\n\n%s\n\n", e.SuggestedAnswer)
	w.printf("**Overall Feedback**\n\n%s\n\n", e.OverallFeedback)
	return w.err
}

func scoreBar(score int) string {
	score = min(max(score, 0), 100)
	filled := score / 10
	return "`" + strings.Repeat("█", filled) + strings.Repeat("░", 10-filled) + "`"
}
