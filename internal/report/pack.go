package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/prepcoach/internal/prepapi"
	"github.com/abhisek/prepcoach/internal/wizard"
)

// DefaultConcurrency caps parallel question requests.
const DefaultConcurrency = 3

// TopicQuestions is the question set for one plan topic, or the error
// that prevented it.
type TopicQuestions struct {
	Topic     string
	Questions []prepapi.PracticeQuestion
	Err       error
}

// Pack is a full prep pack: analysis, plan and questions for every topic.
type Pack struct {
	Analysis *prepapi.JobAnalysis
	Plan     *prepapi.StudyPlan
	Topics   []TopicQuestions
}

// Builder assembles a Pack.
type Builder struct {
	Service     prepapi.Service
	Logger      *slog.Logger
	Concurrency int
}

// Build analyzes description, generates the plan, then fetches questions
// for every topic with at most Concurrency requests in flight. A failing
// topic is recorded in the pack without stopping the others.
func (b *Builder) Build(ctx context.Context, description string) (*Pack, error) {
	w := wizard.New(b.Service, wizard.WithLogger(b.Logger))
	w.SetJobDescription(description)

	if err := w.AnalyzeJob(ctx); err != nil {
		return nil, stepError(w, err)
	}
	if err := w.GenerateStudyPlan(ctx); err != nil {
		return nil, stepError(w, err)
	}

	st := w.State()
	pack := &Pack{
		Analysis: st.JobAnalysis,
		Plan:     st.StudyPlan,
		Topics:   make([]TopicQuestions, len(st.StudyPlan.Topics)),
	}

	limit := b.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, t := range st.StudyPlan.Topics {
		pack.Topics[i].Topic = t.Topic
		g.Go(func() error {
			req := prepapi.QuestionRequest{
				JobAnalysis: *st.JobAnalysis,
				Topic:       t.Topic,
				Count:       prepapi.QuestionCount,
			}
			set, err := b.Service.GenerateQuestions(prepapi.WithPurpose(gctx, "report"), req)
			if err != nil {
				pack.Topics[i].Err = err
				return nil
			}
			pack.Topics[i].Questions = set.Questions
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return pack, nil
}

// stepError prefers the user-facing message over the raw cause.
func stepError(w *wizard.Wizard, err error) error {
	if msg := w.State().Error; msg != "" {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return err
}

// Write renders the pack as Markdown.
func (p *Pack) Write(out io.Writer) error {
	if _, err := fmt.Fprintf(out, "# Interview Prep: %s\n\n", p.Analysis.RoleTitle); err != nil {
		return err
	}
	if err := WriteAnalysis(out, p.Analysis); err != nil {
		return err
	}
	if err := WritePlan(out, p.Plan); err != nil {
		return err
	}

	if _, err := fmt.Fprint(out, "## Practice Questions\n\n"); err != nil {
		return err
	}
	for _, t := range p.Topics {
		if _, err := fmt.Fprintf(out, "### %s\n\n", t.Topic); err != nil {
			return err
		}
		if t.Err != nil {
			if _, err := fmt.Fprint(out, "_Failed to generate questions_\n\n"); err != nil {
				return err
			}
			continue
		}
		for i, q := range t.Questions {
			if err := WriteQuestion(out, q, i+1, len(t.Questions)); err != nil {
				return err
			}
			if err := WriteKeyPoints(out, q); err != nil {
				return err
			}
		}
	}
	return nil
}
