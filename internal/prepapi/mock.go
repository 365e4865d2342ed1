package prepapi

import (
	"context"
	"sync"
)

// MockResponse is a canned response for the MockService. Exactly one of
// the payload fields is expected to be set, matching the call it answers.
type MockResponse struct {
	Analysis   *JobAnalysis
	Plan       *StudyPlan
	Questions  *QuestionSet
	Evaluation *AnswerEvaluation
	Health     *HealthResponse
	Err        error
}

// MockCall records one call made against the MockService.
type MockCall struct {
	Endpoint string
	Request  any
}

// MockService is a deterministic Service for testing.
// It returns canned responses in FIFO order and records all requests.
type MockService struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []MockCall
}

var _ Service = (*MockService)(nil)

// NewMockService creates a MockService with the given canned responses.
func NewMockService(responses ...MockResponse) *MockService {
	return &MockService{responses: responses}
}

// AddResponse appends a canned response to the queue.
func (m *MockService) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of calls made.
func (m *MockService) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent call, or false if none were made.
func (m *MockService) LastCall() (MockCall, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return MockCall{}, false
	}
	return m.Calls[len(m.Calls)-1], true
}

// next records the call and pops the next canned response. An empty queue
// behaves like an unreachable service.
func (m *MockService) next(endpoint string, req any) (MockResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{Endpoint: endpoint, Request: req})

	if len(m.responses) == 0 {
		return MockResponse{}, &ErrUnavailable{Endpoint: endpoint}
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	if resp.Err != nil {
		return MockResponse{}, resp.Err
	}
	return resp, nil
}

func (m *MockService) AnalyzeJob(_ context.Context, req AnalyzeJobRequest) (*JobAnalysis, error) {
	resp, err := m.next(PathAnalyzeJob, req)
	if err != nil {
		return nil, err
	}
	if resp.Analysis == nil {
		return nil, &ErrInvalidResponse{Endpoint: PathAnalyzeJob}
	}
	return resp.Analysis, nil
}

func (m *MockService) GenerateStudyPlan(_ context.Context, req StudyPlanRequest) (*StudyPlan, error) {
	resp, err := m.next(PathGenerateStudyPlan, req)
	if err != nil {
		return nil, err
	}
	if resp.Plan == nil {
		return nil, &ErrInvalidResponse{Endpoint: PathGenerateStudyPlan}
	}
	return resp.Plan, nil
}

func (m *MockService) GenerateQuestions(_ context.Context, req QuestionRequest) (*QuestionSet, error) {
	resp, err := m.next(PathGenerateQuestions, req)
	if err != nil {
		return nil, err
	}
	if resp.Questions == nil {
		return nil, &ErrInvalidResponse{Endpoint: PathGenerateQuestions}
	}
	return resp.Questions, nil
}

func (m *MockService) EvaluateAnswer(_ context.Context, req EvaluationRequest) (*AnswerEvaluation, error) {
	resp, err := m.next(PathEvaluateAnswer, req)
	if err != nil {
		return nil, err
	}
	if resp.Evaluation == nil {
		return nil, &ErrInvalidResponse{Endpoint: PathEvaluateAnswer}
	}
	return resp.Evaluation, nil
}

func (m *MockService) Health(_ context.Context) (*HealthResponse, error) {
	resp, err := m.next(PathHealth, nil)
	if err != nil {
		return nil, err
	}
	if resp.Health == nil {
		return nil, &ErrInvalidResponse{Endpoint: PathHealth}
	}
	return resp.Health, nil
}

// BaseURL returns "mock://".
func (m *MockService) BaseURL() string {
	return "mock://"
}
