package prepapi

import "context"

// Endpoint paths exposed by the Analysis Service.
const (
	PathAnalyzeJob        = "/api/analyze-job"
	PathGenerateStudyPlan = "/api/generate-study-plan"
	PathGenerateQuestions = "/api/generate-questions"
	PathEvaluateAnswer    = "/api/evaluate-answer"
	PathHealth            = "/api/health"
)

// Service is the client-side view of the remote Analysis Service.
// Every method performs exactly one HTTP round trip; none of them retry.
type Service interface {
	// AnalyzeJob extracts a structured JobAnalysis from a job description.
	AnalyzeJob(ctx context.Context, req AnalyzeJobRequest) (*JobAnalysis, error)

	// GenerateStudyPlan builds a StudyPlan for an analyzed job.
	GenerateStudyPlan(ctx context.Context, req StudyPlanRequest) (*StudyPlan, error)

	// GenerateQuestions produces practice questions for one plan topic.
	GenerateQuestions(ctx context.Context, req QuestionRequest) (*QuestionSet, error)

	// EvaluateAnswer scores a practice answer against the expected key points.
	EvaluateAnswer(ctx context.Context, req EvaluationRequest) (*AnswerEvaluation, error)

	// Health reports service liveness and version.
	Health(ctx context.Context) (*HealthResponse, error)

	// BaseURL returns the service root the client talks to.
	BaseURL() string
}
