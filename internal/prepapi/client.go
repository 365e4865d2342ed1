package prepapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL is used when no service URL is configured.
const DefaultBaseURL = "http://localhost:8000"

// DefaultTimeout bounds a single service call. Generation endpoints are
// LLM-backed and routinely take tens of seconds.
const DefaultTimeout = 60 * time.Second

// DefaultUserAgent identifies the client to the service.
const DefaultUserAgent = "prepcoach/1.0"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
}

// Client talks to the Analysis Service over HTTP with JSON bodies.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

var _ Service = (*Client)(nil)

// NewClient creates a Client. Zero-valued options fall back to defaults.
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return nil, fmt.Errorf("service URL %q must start with http:// or https://", opts.BaseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	return &Client{baseURL: base, userAgent: ua, http: hc}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) AnalyzeJob(ctx context.Context, req AnalyzeJobRequest) (*JobAnalysis, error) {
	var out JobAnalysis
	if err := c.do(ctx, http.MethodPost, PathAnalyzeJob, req, JobAnalysisSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GenerateStudyPlan(ctx context.Context, req StudyPlanRequest) (*StudyPlan, error) {
	var out StudyPlan
	if err := c.do(ctx, http.MethodPost, PathGenerateStudyPlan, req, StudyPlanSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GenerateQuestions(ctx context.Context, req QuestionRequest) (*QuestionSet, error) {
	var out QuestionSet
	if err := c.do(ctx, http.MethodPost, PathGenerateQuestions, req, QuestionSetSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EvaluateAnswer(ctx context.Context, req EvaluationRequest) (*AnswerEvaluation, error) {
	var out AnswerEvaluation
	if err := c.do(ctx, http.MethodPost, PathEvaluateAnswer, req, AnswerEvaluationSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, PathHealth, nil, HealthSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs one round trip: encode body, send, check status, validate the
// response against schema and decode it into out.
func (c *Client) do(ctx context.Context, method, path string, body any, schema *Schema, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		// Caller cancellation is not an availability problem.
		if errors.Is(err, context.Canceled) {
			return err
		}
		return &ErrUnavailable{Endpoint: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &ErrUnavailable{Endpoint: path, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ErrStatus{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(raw),
		}
	}

	if err := validateResponse(path, schema, raw); err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &ErrInvalidResponse{Endpoint: path, Content: raw, Err: err}
	}
	return nil
}

// errorDetail extracts the message from a FastAPI-style {"detail": ...}
// error body. Non-string details are returned as compact JSON.
func errorDetail(raw []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}
	return string(envelope.Detail)
}
