package wizard

import "github.com/abhisek/prepcoach/internal/prepapi"

// Step identifies which wizard page is active.
type Step string

const (
	StepInput      Step = "input"
	StepAnalysis   Step = "analysis"
	StepPlan       Step = "plan"
	StepPractice   Step = "practice"
	StepEvaluation Step = "evaluation"
)

// Steps lists the wizard steps in order.
var Steps = []Step{StepInput, StepAnalysis, StepPlan, StepPractice, StepEvaluation}

// Index returns the 1-based position of the step, or 0 if unknown.
func (s Step) Index() int {
	for i, st := range Steps {
		if st == s {
			return i + 1
		}
	}
	return 0
}

// Op names a wizard operation that talks to the service.
type Op string

const (
	OpAnalyzeJob        Op = "analyze-job"
	OpGenerateStudyPlan Op = "generate-study-plan"
	OpGenerateQuestions Op = "generate-questions"
	OpEvaluateAnswer    Op = "evaluate-answer"
)

// FailureMessage is the user-visible text shown when the operation fails remotely.
func (o Op) FailureMessage() string {
	switch o {
	case OpAnalyzeJob:
		return "Failed to analyze job"
	case OpGenerateStudyPlan:
		return "Failed to generate study plan"
	case OpGenerateQuestions:
		return "Failed to generate questions"
	case OpEvaluateAnswer:
		return "Failed to evaluate answer"
	default:
		return "Request failed"
	}
}

// State is everything the wizard shows. The zero value, apart from Step,
// is the initial state; see Initial.
type State struct {
	Step    Step
	Loading bool
	// Pending is the operation in flight while Loading is true.
	Pending Op
	Error   string

	JobDescription string
	JobAnalysis    *prepapi.JobAnalysis
	StudyPlan      *prepapi.StudyPlan

	// Topic is the study plan topic the current questions were generated for.
	Topic                string
	Questions            []prepapi.PracticeQuestion
	CurrentQuestionIndex int
	UserAnswer           string
	Evaluation           *prepapi.AnswerEvaluation
}

// Initial returns the state a fresh or reset wizard starts in.
func Initial() State {
	return State{Step: StepInput}
}

// CurrentQuestion returns the question under the cursor, if any.
func (s State) CurrentQuestion() (prepapi.PracticeQuestion, bool) {
	if s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex >= len(s.Questions) {
		return prepapi.PracticeQuestion{}, false
	}
	return s.Questions[s.CurrentQuestionIndex], true
}

// HasNextQuestion reports whether the cursor is before the last question.
func (s State) HasNextQuestion() bool {
	return s.CurrentQuestionIndex < len(s.Questions)-1
}
