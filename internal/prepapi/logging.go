package prepapi

import (
	"context"
	"log/slog"
	"time"
)

// LoggingService is a decorator that logs every service call.
type LoggingService struct {
	inner  Service
	logger *slog.Logger
}

var _ Service = (*LoggingService)(nil)

// WithLogging wraps a Service with call logging.
func WithLogging(s Service, logger *slog.Logger) Service {
	if logger == nil {
		return s
	}
	return &LoggingService{inner: s, logger: logger}
}

func (l *LoggingService) AnalyzeJob(ctx context.Context, req AnalyzeJobRequest) (*JobAnalysis, error) {
	start := time.Now()
	resp, err := l.inner.AnalyzeJob(ctx, req)
	attrs := []any{slog.Int("description_chars", len(req.JobDescription))}
	if resp != nil {
		attrs = append(attrs, slog.String("role_title", resp.RoleTitle), slog.Int("skills", len(resp.KeySkills)))
	}
	l.record(ctx, PathAnalyzeJob, start, err, attrs...)
	return resp, err
}

func (l *LoggingService) GenerateStudyPlan(ctx context.Context, req StudyPlanRequest) (*StudyPlan, error) {
	start := time.Now()
	resp, err := l.inner.GenerateStudyPlan(ctx, req)
	attrs := []any{slog.Int("available_time_hours", req.AvailableTimeHours)}
	if resp != nil {
		attrs = append(attrs, slog.Int("topics", len(resp.Topics)))
	}
	l.record(ctx, PathGenerateStudyPlan, start, err, attrs...)
	return resp, err
}

func (l *LoggingService) GenerateQuestions(ctx context.Context, req QuestionRequest) (*QuestionSet, error) {
	start := time.Now()
	resp, err := l.inner.GenerateQuestions(ctx, req)
	attrs := []any{slog.String("topic", req.Topic), slog.Int("count", req.Count)}
	if resp != nil {
		attrs = append(attrs, slog.Int("questions", len(resp.Questions)))
	}
	l.record(ctx, PathGenerateQuestions, start, err, attrs...)
	return resp, err
}

func (l *LoggingService) EvaluateAnswer(ctx context.Context, req EvaluationRequest) (*AnswerEvaluation, error) {
	start := time.Now()
	resp, err := l.inner.EvaluateAnswer(ctx, req)
	attrs := []any{slog.Int("answer_chars", len(req.UserAnswer))}
	if resp != nil {
		attrs = append(attrs, slog.Int("score", resp.Score))
	}
	l.record(ctx, PathEvaluateAnswer, start, err, attrs...)
	return resp, err
}

func (l *LoggingService) Health(ctx context.Context) (*HealthResponse, error) {
	start := time.Now()
	resp, err := l.inner.Health(ctx)
	var attrs []any
	if resp != nil {
		attrs = append(attrs, slog.String("status", resp.Status), slog.String("version", resp.Version))
	}
	l.record(ctx, PathHealth, start, err, attrs...)
	return resp, err
}

func (l *LoggingService) BaseURL() string {
	return l.inner.BaseURL()
}

func (l *LoggingService) record(ctx context.Context, endpoint string, start time.Time, err error, attrs ...any) {
	base := []any{
		slog.String("endpoint", endpoint),
		slog.String("purpose", PurposeFrom(ctx)),
		slog.Int64("latency_ms", time.Since(start).Milliseconds()),
		slog.Bool("success", err == nil),
	}
	base = append(base, attrs...)

	if err != nil {
		base = append(base, slog.String("error", err.Error()))
		l.logger.ErrorContext(ctx, "analysis service call failed", base...)
		return
	}
	l.logger.InfoContext(ctx, "analysis service call", base...)
}
