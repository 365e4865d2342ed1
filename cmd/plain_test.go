package cmd

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prepcoach/internal/prepapi"
	"github.com/abhisek/prepcoach/internal/wizard"
)

const plainDescription = "Backend engineer building Go APIs on PostgreSQL with strong testing habits."

func newPlainSession(svc prepapi.Service, input string) (*plainSession, *bytes.Buffer) {
	var out bytes.Buffer
	return &plainSession{
		ctx: context.Background(),
		w:   wizard.New(svc),
		in:  bufio.NewScanner(strings.NewReader(input)),
		out: &out,
	}, &out
}

func plainResponses() []prepapi.MockResponse {
	return []prepapi.MockResponse{
		{Analysis: &prepapi.JobAnalysis{RoleTitle: "Backend Engineer", Summary: "APIs and data."}},
		{Plan: &prepapi.StudyPlan{TotalDurationHours: 40, Topics: []prepapi.StudyTopic{
			{Topic: "Databases", EstimatedHours: 10, Priority: 1},
		}}},
		{Questions: &prepapi.QuestionSet{Questions: []prepapi.PracticeQuestion{
			{Question: "What is an index?", Difficulty: "Easy", Type: "Technical"},
			{Question: "Explain MVCC.", Difficulty: "Hard", Type: "Technical"},
		}}},
		{Evaluation: &prepapi.AnswerEvaluation{Score: 85, OverallFeedback: "Solid."}},
		{Evaluation: &prepapi.AnswerEvaluation{Score: 55, OverallFeedback: "Go deeper."}},
	}
}

func TestPlainSession_FullFlow(t *testing.T) {
	svc := prepapi.NewMockService(plainResponses()...)
	input := strings.Join([]string{
		plainDescription, "",
		"",  // generate plan
		"1", // practice Databases
		"A sorted lookup structure.", "",
		"", // next question
		"Readers see snapshots while writers create versions.", "",
		"q",
	}, "\n") + "\n"

	s, out := newPlainSession(svc, input)
	require.NoError(t, s.run(""))

	text := out.String()
	assert.Contains(t, text, "## Backend Engineer")
	assert.Contains(t, text, "## Study Plan")
	assert.Contains(t, text, "Practice Question 1/2")
	assert.Contains(t, text, "Practice Question 2/2")
	assert.Contains(t, text, "Your Score: 85/100")
	assert.Contains(t, text, "Your Score: 55/100")
	assert.Contains(t, text, "That was the last question")
	assert.Equal(t, 5, svc.CallCount())
}

func TestPlainSession_ShortDescriptionReprompts(t *testing.T) {
	svc := prepapi.NewMockService(plainResponses()...)
	input := "too short\n\n" + plainDescription + "\n\n\nq\n"

	s, out := newPlainSession(svc, input)
	require.NoError(t, s.run(""))

	assert.Contains(t, out.String(), "at least 50 characters")
	call, ok := svc.LastCall()
	require.True(t, ok)
	assert.Equal(t, prepapi.PathGenerateStudyPlan, call.Endpoint)
	assert.Equal(t, 2, svc.CallCount())
}

func TestPlainSession_AnalyzeFailure(t *testing.T) {
	svc := prepapi.NewMockService(prepapi.MockResponse{
		Err: &prepapi.ErrStatus{Endpoint: prepapi.PathAnalyzeJob, StatusCode: 500},
	})

	s, _ := newPlainSession(svc, "")
	err := s.run(plainDescription)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to analyze job"))
}

func TestPlainSession_InputClosed(t *testing.T) {
	svc := prepapi.NewMockService()
	s, _ := newPlainSession(svc, "")
	require.NoError(t, s.run(""))
	assert.Equal(t, 0, svc.CallCount())
}

func TestPlainSession_StartOver(t *testing.T) {
	responses := plainResponses()[:2]
	svc := prepapi.NewMockService(append(responses, responses...)...)
	input := "\nr\n" + plainDescription + "\n\n\nq\n"

	s, out := newPlainSession(svc, input)
	require.NoError(t, s.run(plainDescription))

	assert.Contains(t, out.String(), "Starting over")
	assert.Equal(t, 4, svc.CallCount())
}
