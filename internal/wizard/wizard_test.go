package wizard

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prepcoach/internal/prepapi"
)

var validDescription = strings.Repeat("Backend role building Go services. ", 2) // 72 chars

func sampleAnalysis() *prepapi.JobAnalysis {
	return &prepapi.JobAnalysis{
		RoleTitle:       "Backend Engineer",
		CompanyType:     "Startup",
		ExperienceLevel: "Mid",
		KeySkills: []prepapi.Skill{
			{Name: "Go", Importance: "Critical", Category: "Language"},
		},
		DifficultyLevel: "Medium",
		Summary:         "Build APIs.",
	}
}

func samplePlan() *prepapi.StudyPlan {
	return &prepapi.StudyPlan{
		TotalDurationHours: 40,
		Topics: []prepapi.StudyTopic{
			{Topic: "Concurrency", EstimatedHours: 10, Priority: 1},
			{Topic: "Databases", EstimatedHours: 8, Priority: 2},
		},
	}
}

func sampleQuestions(n int) *prepapi.QuestionSet {
	set := &prepapi.QuestionSet{}
	for i := 0; i < n; i++ {
		set.Questions = append(set.Questions, prepapi.PracticeQuestion{
			Question:  "Question " + string(rune('A'+i)),
			Type:      "Technical",
			KeyPoints: []string{"point"},
		})
	}
	return set
}

// practicing drives a wizard to the practice step with n questions.
func practicing(t *testing.T, n int) (*Wizard, *prepapi.MockService) {
	t.Helper()
	mock := prepapi.NewMockService(
		prepapi.MockResponse{Analysis: sampleAnalysis()},
		prepapi.MockResponse{Plan: samplePlan()},
		prepapi.MockResponse{Questions: sampleQuestions(n)},
	)
	w := New(mock)
	ctx := context.Background()
	w.SetJobDescription(validDescription)
	require.NoError(t, w.AnalyzeJob(ctx))
	require.NoError(t, w.GenerateStudyPlan(ctx))
	require.NoError(t, w.GenerateQuestions(ctx, "Concurrency"))
	return w, mock
}

func TestInitialState(t *testing.T) {
	w := New(prepapi.NewMockService())
	assert.Equal(t, Initial(), w.State())
	assert.Equal(t, StepInput, w.State().Step)
	assert.Equal(t, 1, StepInput.Index())
	assert.Equal(t, 5, StepEvaluation.Index())
}

func TestAnalyzeJob_ValidationSkipsService(t *testing.T) {
	tests := []struct {
		name string
		desc string
	}{
		{"empty", ""},
		{"whitespace", strings.Repeat(" ", 80)},
		{"short", strings.Repeat("a", 49)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := prepapi.NewMockService(prepapi.MockResponse{Analysis: sampleAnalysis()})
			w := New(mock)
			w.SetJobDescription(tt.desc)

			err := w.AnalyzeJob(context.Background())

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "JobDescription", verr.Field)
			assert.Equal(t, "Please enter a job description (at least 50 characters)", w.State().Error)
			assert.Equal(t, StepInput, w.State().Step)
			assert.False(t, w.State().Loading)
			assert.Equal(t, 0, mock.CallCount())
		})
	}
}

func TestAnalyzeJob_ExactMinimumAccepted(t *testing.T) {
	mock := prepapi.NewMockService(prepapi.MockResponse{Analysis: sampleAnalysis()})
	w := New(mock)
	w.SetJobDescription(strings.Repeat("é", MinDescriptionLength))

	require.NoError(t, w.AnalyzeJob(context.Background()))
	assert.Equal(t, 1, mock.CallCount())
}

func TestAnalyzeJob_LengthIncludesSurroundingSpace(t *testing.T) {
	mock := prepapi.NewMockService(prepapi.MockResponse{Analysis: sampleAnalysis()})
	w := New(mock)
	w.SetJobDescription("  " + strings.Repeat("a", MinDescriptionLength-2))

	require.NoError(t, w.AnalyzeJob(context.Background()))
	assert.Equal(t, 1, mock.CallCount())
}

func TestAnalyzeJob_Success(t *testing.T) {
	analysis := sampleAnalysis()
	mock := prepapi.NewMockService(prepapi.MockResponse{Analysis: analysis})
	w := New(mock)
	w.SetJobDescription(validDescription)

	require.NoError(t, w.AnalyzeJob(context.Background()))

	st := w.State()
	assert.Equal(t, StepAnalysis, st.Step)
	assert.Equal(t, analysis, st.JobAnalysis)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)

	call, ok := mock.LastCall()
	require.True(t, ok)
	assert.Equal(t, prepapi.PathAnalyzeJob, call.Endpoint)
	assert.Equal(t, prepapi.AnalyzeJobRequest{JobDescription: validDescription}, call.Request)
}

func TestAnalyzeJob_RemoteFailureKeepsStep(t *testing.T) {
	cause := &prepapi.ErrStatus{Endpoint: prepapi.PathAnalyzeJob, StatusCode: 500, Detail: "boom"}
	mock := prepapi.NewMockService(prepapi.MockResponse{Err: cause})
	w := New(mock)
	w.SetJobDescription(validDescription)

	err := w.AnalyzeJob(context.Background())

	var statusErr *prepapi.ErrStatus
	require.True(t, errors.As(err, &statusErr))
	st := w.State()
	assert.Equal(t, StepInput, st.Step)
	assert.Equal(t, "Failed to analyze job", st.Error)
	assert.Nil(t, st.JobAnalysis)
	assert.False(t, st.Loading)
	assert.Equal(t, 1, mock.CallCount(), "no retry")
}

func TestErrorClearedOnNextOperation(t *testing.T) {
	mock := prepapi.NewMockService(
		prepapi.MockResponse{Err: errors.New("down")},
		prepapi.MockResponse{Analysis: sampleAnalysis()},
	)
	w := New(mock)
	w.SetJobDescription(validDescription)

	require.Error(t, w.AnalyzeJob(context.Background()))
	assert.NotEmpty(t, w.State().Error)

	p, err := w.BeginAnalyzeJob()
	require.NoError(t, err)
	assert.Empty(t, w.State().Error)
	assert.True(t, w.State().Loading)
	assert.Equal(t, OpAnalyzeJob, w.State().Pending)

	assert.True(t, w.Complete(p.Do(context.Background())))
	assert.Equal(t, StepAnalysis, w.State().Step)
	assert.Empty(t, w.State().Pending)
}

func TestGenerateStudyPlan(t *testing.T) {
	t.Run("requires analysis", func(t *testing.T) {
		mock := prepapi.NewMockService()
		w := New(mock)
		err := w.GenerateStudyPlan(context.Background())
		assert.ErrorIs(t, err, ErrNoAnalysis)
		assert.Equal(t, Initial(), w.State())
		assert.Equal(t, 0, mock.CallCount())
	})

	t.Run("sends fixed budget", func(t *testing.T) {
		plan := samplePlan()
		mock := prepapi.NewMockService(
			prepapi.MockResponse{Analysis: sampleAnalysis()},
			prepapi.MockResponse{Plan: plan},
		)
		w := New(mock)
		w.SetJobDescription(validDescription)
		require.NoError(t, w.AnalyzeJob(context.Background()))
		require.NoError(t, w.GenerateStudyPlan(context.Background()))

		assert.Equal(t, StepPlan, w.State().Step)
		assert.Equal(t, plan, w.State().StudyPlan)

		call, _ := mock.LastCall()
		req, ok := call.Request.(prepapi.StudyPlanRequest)
		require.True(t, ok)
		assert.Equal(t, 40, req.AvailableTimeHours)
		assert.Equal(t, "Backend Engineer", req.JobAnalysis.RoleTitle)
	})

	t.Run("failure stays on analysis", func(t *testing.T) {
		mock := prepapi.NewMockService(
			prepapi.MockResponse{Analysis: sampleAnalysis()},
			prepapi.MockResponse{Err: errors.New("down")},
		)
		w := New(mock)
		w.SetJobDescription(validDescription)
		require.NoError(t, w.AnalyzeJob(context.Background()))
		require.Error(t, w.GenerateStudyPlan(context.Background()))

		assert.Equal(t, StepAnalysis, w.State().Step)
		assert.Equal(t, "Failed to generate study plan", w.State().Error)
		assert.Nil(t, w.State().StudyPlan)
	})
}

func TestGenerateQuestions(t *testing.T) {
	w, mock := practicing(t, 3)

	st := w.State()
	assert.Equal(t, StepPractice, st.Step)
	assert.Equal(t, "Concurrency", st.Topic)
	assert.Len(t, st.Questions, 3)
	assert.Equal(t, 0, st.CurrentQuestionIndex)

	call, _ := mock.LastCall()
	req, ok := call.Request.(prepapi.QuestionRequest)
	require.True(t, ok)
	assert.Equal(t, "Concurrency", req.Topic)
	assert.Equal(t, 5, req.Count)
}

func TestGenerateQuestions_EmptySetIsFailure(t *testing.T) {
	mock := prepapi.NewMockService(
		prepapi.MockResponse{Analysis: sampleAnalysis()},
		prepapi.MockResponse{Plan: samplePlan()},
		prepapi.MockResponse{Questions: &prepapi.QuestionSet{}},
	)
	w := New(mock)
	w.SetJobDescription(validDescription)
	require.NoError(t, w.AnalyzeJob(context.Background()))
	require.NoError(t, w.GenerateStudyPlan(context.Background()))

	require.Error(t, w.GenerateQuestions(context.Background(), "Concurrency"))
	assert.Equal(t, StepPlan, w.State().Step)
	assert.Equal(t, "Failed to generate questions", w.State().Error)
}

func TestEvaluateAnswer(t *testing.T) {
	t.Run("short answer skips service", func(t *testing.T) {
		w, mock := practicing(t, 2)
		before := mock.CallCount()
		w.SetUserAnswer("too short")

		err := w.EvaluateAnswer(context.Background())

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "Please provide an answer (at least 10 characters)", w.State().Error)
		assert.Equal(t, StepPractice, w.State().Step)
		assert.Equal(t, before, mock.CallCount())
	})

	t.Run("success", func(t *testing.T) {
		w, mock := practicing(t, 2)
		eval := &prepapi.AnswerEvaluation{Score: 85, OverallFeedback: "Good"}
		mock.AddResponse(prepapi.MockResponse{Evaluation: eval})
		w.SetUserAnswer("Goroutines communicate over channels.")

		require.NoError(t, w.EvaluateAnswer(context.Background()))
		assert.Equal(t, StepEvaluation, w.State().Step)
		assert.Equal(t, eval, w.State().Evaluation)

		call, _ := mock.LastCall()
		req, ok := call.Request.(prepapi.EvaluationRequest)
		require.True(t, ok)
		assert.Equal(t, "Question A", req.Question)
		assert.Equal(t, []string{"point"}, req.ExpectedKeyPoints)
	})

	t.Run("failure stays on practice", func(t *testing.T) {
		w, _ := practicing(t, 2)
		w.SetUserAnswer("Goroutines communicate over channels.")

		require.Error(t, w.EvaluateAnswer(context.Background()))
		assert.Equal(t, StepPractice, w.State().Step)
		assert.Equal(t, "Failed to evaluate answer", w.State().Error)
		assert.Equal(t, "Goroutines communicate over channels.", w.State().UserAnswer)
	})
}

func TestNextQuestion(t *testing.T) {
	w, mock := practicing(t, 2)
	mock.AddResponse(prepapi.MockResponse{Evaluation: &prepapi.AnswerEvaluation{Score: 70}})
	w.SetUserAnswer("A reasonably long answer.")
	require.NoError(t, w.EvaluateAnswer(context.Background()))

	assert.True(t, w.NextQuestion())
	st := w.State()
	assert.Equal(t, 1, st.CurrentQuestionIndex)
	assert.Equal(t, StepPractice, st.Step)
	assert.Empty(t, st.UserAnswer)
	assert.Nil(t, st.Evaluation)

	w.SetUserAnswer("draft")
	before := w.State()
	assert.False(t, w.NextQuestion(), "last question")
	assert.Equal(t, before, w.State())
}

func TestNextQuestion_Guards(t *testing.T) {
	t.Run("while evaluating", func(t *testing.T) {
		w, mock := practicing(t, 3)
		mock.AddResponse(prepapi.MockResponse{Evaluation: &prepapi.AnswerEvaluation{Score: 70}})
		w.SetUserAnswer("A reasonably long answer.")

		p, err := w.BeginEvaluateAnswer()
		require.NoError(t, err)
		assert.False(t, w.NextQuestion())
		assert.Equal(t, 0, w.State().CurrentQuestionIndex)

		w.Complete(p.Do(context.Background()))
		assert.Equal(t, StepEvaluation, w.State().Step)
		assert.NotNil(t, w.State().Evaluation)
	})

	t.Run("from plan", func(t *testing.T) {
		w, _ := practicing(t, 3)
		require.NoError(t, w.BackToPlan())

		assert.False(t, w.NextQuestion())
		assert.Equal(t, StepPlan, w.State().Step)
		assert.Equal(t, 0, w.State().CurrentQuestionIndex)
	})
}

func TestBackToPlan(t *testing.T) {
	w, _ := practicing(t, 2)
	require.NoError(t, w.BackToPlan())
	assert.Equal(t, StepPlan, w.State().Step)
	assert.Len(t, w.State().Questions, 2)

	assert.Error(t, w.BackToPlan(), "already on plan")

	fresh := New(prepapi.NewMockService())
	assert.ErrorIs(t, fresh.BackToPlan(), ErrNoStudyPlan)
}

func TestReset_FromEveryStep(t *testing.T) {
	w, mock := practicing(t, 2)
	mock.AddResponse(prepapi.MockResponse{Evaluation: &prepapi.AnswerEvaluation{Score: 50}})
	w.SetUserAnswer("A reasonably long answer.")
	require.NoError(t, w.EvaluateAnswer(context.Background()))
	require.Equal(t, StepEvaluation, w.State().Step)

	w.Reset()
	assert.Equal(t, Initial(), w.State())

	w.SetJobDescription("draft")
	w.Reset()
	assert.Equal(t, Initial(), w.State())
}

func TestBusyWhileLoading(t *testing.T) {
	mock := prepapi.NewMockService(prepapi.MockResponse{Analysis: sampleAnalysis()})
	w := New(mock)
	w.SetJobDescription(validDescription)

	p, err := w.BeginAnalyzeJob()
	require.NoError(t, err)

	_, err = w.BeginAnalyzeJob()
	assert.ErrorIs(t, err, ErrBusy)

	w.SetJobDescription("changed while loading")
	assert.Equal(t, validDescription, w.State().JobDescription)

	w.Complete(p.Do(context.Background()))
	assert.False(t, w.State().Loading)
}

func TestStaleOutcomeDroppedAfterReset(t *testing.T) {
	mock := prepapi.NewMockService(prepapi.MockResponse{Analysis: sampleAnalysis()})
	w := New(mock)
	w.SetJobDescription(validDescription)

	p, err := w.BeginAnalyzeJob()
	require.NoError(t, err)
	w.Reset()

	assert.False(t, w.Complete(p.Do(context.Background())))
	assert.Equal(t, Initial(), w.State())
}

func TestPendingCarriesPurpose(t *testing.T) {
	var purpose string
	svc := purposeRecorder{MockService: prepapi.NewMockService(prepapi.MockResponse{Analysis: sampleAnalysis()}), got: &purpose}
	w := New(svc)
	w.SetJobDescription(validDescription)

	require.NoError(t, w.AnalyzeJob(context.Background()))
	assert.Equal(t, "analyze-job", purpose)
}

type purposeRecorder struct {
	*prepapi.MockService
	got *string
}

func (p purposeRecorder) AnalyzeJob(ctx context.Context, req prepapi.AnalyzeJobRequest) (*prepapi.JobAnalysis, error) {
	*p.got = prepapi.PurposeFrom(ctx)
	return p.MockService.AnalyzeJob(ctx, req)
}
