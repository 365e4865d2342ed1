// Package wizard holds the interview-prep wizard state machine:
// input → analysis → plan → practice → evaluation, with back-edges to the
// plan and a global reset. Transitions happen only on successful service
// responses.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/prepcoach/internal/prepapi"
)

var (
	// ErrBusy is returned when an operation starts while another is in flight.
	ErrBusy = errors.New("another request is in progress")

	// ErrNoAnalysis is returned when an operation needs a job analysis first.
	ErrNoAnalysis = errors.New("no job analysis yet")

	// ErrNoStudyPlan is returned when returning to a plan that does not exist.
	ErrNoStudyPlan = errors.New("no study plan yet")

	// ErrNoQuestion is returned when evaluating with no question under the cursor.
	ErrNoQuestion = errors.New("no practice question selected")

	errNoQuestions = errors.New("service returned no questions")
)

// Wizard owns the wizard State and drives it through the service.
// It is not safe for concurrent use: Begin*, Complete and the setters must
// be called from one goroutine. Only Pending.Do may run elsewhere.
type Wizard struct {
	svc    prepapi.Service
	logger *slog.Logger
	state  State
	epoch  uint64
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithLogger sets the logger used for failed operations.
func WithLogger(l *slog.Logger) Option {
	return func(w *Wizard) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a Wizard in the initial state.
func New(svc prepapi.Service, opts ...Option) *Wizard {
	w := &Wizard{
		svc:    svc,
		logger: slog.New(slog.DiscardHandler),
		state:  Initial(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// State returns a snapshot of the current state. Slices and pointers are
// shared with the wizard and must not be modified.
func (w *Wizard) State() State {
	return w.state
}

// SetJobDescription updates the description draft. Ignored while loading.
func (w *Wizard) SetJobDescription(desc string) {
	if w.state.Loading {
		return
	}
	w.state.JobDescription = desc
}

// SetUserAnswer updates the answer draft. Ignored while loading.
func (w *Wizard) SetUserAnswer(answer string) {
	if w.state.Loading {
		return
	}
	w.state.UserAnswer = answer
}

// Pending is an operation that has passed local validation and is waiting
// for its service call. Do touches no wizard state, so it may run on any
// goroutine; its Outcome must be handed back to Complete.
type Pending struct {
	Op    Op
	epoch uint64
	call  func(ctx context.Context) (any, error)
}

// Do performs the service call.
func (p *Pending) Do(ctx context.Context) *Outcome {
	ctx = prepapi.WithPurpose(ctx, string(p.Op))
	v, err := p.call(ctx)
	return &Outcome{Op: p.Op, Err: err, epoch: p.epoch, value: v}
}

// Outcome is the result of a Pending call.
type Outcome struct {
	Op  Op
	Err error

	epoch uint64
	value any
}

func (w *Wizard) begin(op Op, call func(ctx context.Context) (any, error)) *Pending {
	w.state.Loading = true
	w.state.Pending = op
	w.state.Error = ""
	return &Pending{Op: op, epoch: w.epoch, call: call}
}

func (w *Wizard) reject(verr *ValidationError) error {
	w.state.Error = verr.Message
	return verr
}

// BeginAnalyzeJob validates the description and starts the analyze call.
func (w *Wizard) BeginAnalyzeJob() (*Pending, error) {
	if w.state.Loading {
		return nil, ErrBusy
	}
	desc := w.state.JobDescription
	if verr := validateDescription(desc); verr != nil {
		return nil, w.reject(verr)
	}

	svc := w.svc
	return w.begin(OpAnalyzeJob, func(ctx context.Context) (any, error) {
		return svc.AnalyzeJob(ctx, prepapi.AnalyzeJobRequest{JobDescription: desc})
	}), nil
}

// BeginGenerateStudyPlan starts the study plan call for the stored analysis.
func (w *Wizard) BeginGenerateStudyPlan() (*Pending, error) {
	if w.state.Loading {
		return nil, ErrBusy
	}
	if w.state.JobAnalysis == nil {
		return nil, ErrNoAnalysis
	}

	svc := w.svc
	req := prepapi.StudyPlanRequest{
		JobAnalysis:        *w.state.JobAnalysis,
		AvailableTimeHours: prepapi.AvailableTimeHours,
	}
	return w.begin(OpGenerateStudyPlan, func(ctx context.Context) (any, error) {
		return svc.GenerateStudyPlan(ctx, req)
	}), nil
}

// BeginGenerateQuestions starts question generation for a plan topic.
func (w *Wizard) BeginGenerateQuestions(topic string) (*Pending, error) {
	if w.state.Loading {
		return nil, ErrBusy
	}
	if w.state.JobAnalysis == nil {
		return nil, ErrNoAnalysis
	}

	svc := w.svc
	req := prepapi.QuestionRequest{
		JobAnalysis: *w.state.JobAnalysis,
		Topic:       topic,
		Count:       prepapi.QuestionCount,
	}
	p := w.begin(OpGenerateQuestions, func(ctx context.Context) (any, error) {
		set, err := svc.GenerateQuestions(ctx, req)
		if err != nil {
			return nil, err
		}
		return topicQuestions{topic: topic, set: set}, nil
	})
	return p, nil
}

type topicQuestions struct {
	topic string
	set   *prepapi.QuestionSet
}

// BeginEvaluateAnswer validates the answer and starts scoring it against
// the question under the cursor.
func (w *Wizard) BeginEvaluateAnswer() (*Pending, error) {
	if w.state.Loading {
		return nil, ErrBusy
	}
	answer := w.state.UserAnswer
	if verr := validateAnswer(answer); verr != nil {
		return nil, w.reject(verr)
	}
	q, ok := w.state.CurrentQuestion()
	if !ok {
		return nil, ErrNoQuestion
	}

	svc := w.svc
	req := prepapi.EvaluationRequest{
		Question:          q.Question,
		UserAnswer:        answer,
		ExpectedKeyPoints: q.KeyPoints,
	}
	return w.begin(OpEvaluateAnswer, func(ctx context.Context) (any, error) {
		return svc.EvaluateAnswer(ctx, req)
	}), nil
}

// Complete applies an Outcome: on success it stores the payload and moves
// to the next step, on failure it sets the operation's error message and
// keeps the step. Outcomes begun before the last Reset are dropped; the
// return value reports whether o was applied.
func (w *Wizard) Complete(o *Outcome) bool {
	if o == nil || o.epoch != w.epoch {
		return false
	}

	w.state.Loading = false
	w.state.Pending = ""

	if o.Err == nil {
		o.Err = w.apply(o)
	}
	if o.Err != nil {
		w.state.Error = o.Op.FailureMessage()
		w.logger.Error("wizard operation failed",
			slog.String("op", string(o.Op)),
			slog.String("step", string(w.state.Step)),
			slog.String("error", o.Err.Error()),
		)
	}
	return true
}

// apply stores a successful payload. It returns an error when the payload
// cannot advance the wizard.
func (w *Wizard) apply(o *Outcome) error {
	switch o.Op {
	case OpAnalyzeJob:
		a, ok := o.value.(*prepapi.JobAnalysis)
		if !ok || a == nil {
			return fmt.Errorf("unexpected %s payload %T", o.Op, o.value)
		}
		w.state.JobAnalysis = a
		w.state.Step = StepAnalysis

	case OpGenerateStudyPlan:
		p, ok := o.value.(*prepapi.StudyPlan)
		if !ok || p == nil {
			return fmt.Errorf("unexpected %s payload %T", o.Op, o.value)
		}
		w.state.StudyPlan = p
		w.state.Step = StepPlan

	case OpGenerateQuestions:
		tq, ok := o.value.(topicQuestions)
		if !ok || tq.set == nil {
			return fmt.Errorf("unexpected %s payload %T", o.Op, o.value)
		}
		if len(tq.set.Questions) == 0 {
			return errNoQuestions
		}
		w.state.Topic = tq.topic
		w.state.Questions = tq.set.Questions
		w.state.CurrentQuestionIndex = 0
		w.state.UserAnswer = ""
		w.state.Evaluation = nil
		w.state.Step = StepPractice

	case OpEvaluateAnswer:
		e, ok := o.value.(*prepapi.AnswerEvaluation)
		if !ok || e == nil {
			return fmt.Errorf("unexpected %s payload %T", o.Op, o.value)
		}
		w.state.Evaluation = e
		w.state.Step = StepEvaluation

	default:
		return fmt.Errorf("unknown operation %q", o.Op)
	}
	return nil
}

// NextQuestion advances the cursor by one, clears the answer and
// evaluation and returns to practice. At the last question, while a
// request is in flight or outside practice and evaluation it does nothing
// and returns false.
func (w *Wizard) NextQuestion() bool {
	if w.state.Loading || !w.state.HasNextQuestion() {
		return false
	}
	if w.state.Step != StepPractice && w.state.Step != StepEvaluation {
		return false
	}
	w.state.CurrentQuestionIndex++
	w.state.UserAnswer = ""
	w.state.Evaluation = nil
	w.state.Step = StepPractice
	return true
}

// BackToPlan returns from practice or evaluation to the study plan.
func (w *Wizard) BackToPlan() error {
	if w.state.Loading {
		return ErrBusy
	}
	if w.state.StudyPlan == nil {
		return ErrNoStudyPlan
	}
	switch w.state.Step {
	case StepPractice, StepEvaluation:
		w.state.Step = StepPlan
		return nil
	default:
		return fmt.Errorf("cannot return to plan from %s", w.state.Step)
	}
}

// Reset clears everything and returns to the input step. Calls still in
// flight are discarded when they complete.
func (w *Wizard) Reset() {
	w.state = Initial()
	w.epoch++
}

// AnalyzeJob runs BeginAnalyzeJob, the call and Complete in one go.
func (w *Wizard) AnalyzeJob(ctx context.Context) error {
	return w.run(ctx)(w.BeginAnalyzeJob())
}

// GenerateStudyPlan runs the study plan operation synchronously.
func (w *Wizard) GenerateStudyPlan(ctx context.Context) error {
	return w.run(ctx)(w.BeginGenerateStudyPlan())
}

// GenerateQuestions runs question generation for topic synchronously.
func (w *Wizard) GenerateQuestions(ctx context.Context, topic string) error {
	return w.run(ctx)(w.BeginGenerateQuestions(topic))
}

// EvaluateAnswer runs answer evaluation synchronously.
func (w *Wizard) EvaluateAnswer(ctx context.Context) error {
	return w.run(ctx)(w.BeginEvaluateAnswer())
}

func (w *Wizard) run(ctx context.Context) func(*Pending, error) error {
	return func(p *Pending, err error) error {
		if err != nil {
			return err
		}
		o := p.Do(ctx)
		w.Complete(o)
		return o.Err
	}
}
