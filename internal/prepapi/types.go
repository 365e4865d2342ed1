package prepapi

// AvailableTimeHours is the weekly study budget sent with every study plan request.
const AvailableTimeHours = 40

// QuestionCount is the number of practice questions requested per topic.
const QuestionCount = 5

// Skill is a single skill extracted from a job description.
type Skill struct {
	Name       string `json:"name"`
	Importance string `json:"importance"` // "Critical", "Important", "Nice-to-have"
	Category   string `json:"category"`   // "Technical", "Soft Skill", "Domain Knowledge"
}

// JobAnalysis is the structured reading of a job description.
type JobAnalysis struct {
	RoleTitle       string  `json:"role_title"`
	CompanyType     string  `json:"company_type"`
	ExperienceLevel string  `json:"experience_level"`
	KeySkills       []Skill `json:"key_skills"`
	DifficultyLevel string  `json:"difficulty_level"`
	Summary         string  `json:"summary"`
}

// StudyTopic is one entry of a study plan.
type StudyTopic struct {
	Topic          string   `json:"topic"`
	Description    string   `json:"description"`
	EstimatedHours float64  `json:"estimated_hours"`
	Resources      []string `json:"resources"`
	Priority       int      `json:"priority"`
}

// StudyPlan is a personalized preparation plan derived from a JobAnalysis.
type StudyPlan struct {
	TotalDurationHours  float64      `json:"total_duration_hours"`
	Topics              []StudyTopic `json:"topics"`
	PreparationStrategy string       `json:"preparation_strategy"`
	TimelineSuggestion  string       `json:"timeline_suggestion"`
}

// PracticeQuestion is a single interview practice question.
type PracticeQuestion struct {
	Question   string   `json:"question"`
	Type       string   `json:"type"`       // "Technical", "Behavioral", "Situational"
	Difficulty string   `json:"difficulty"` // "Easy", "Medium", "Hard"
	Hints      []string `json:"hints"`
	KeyPoints  []string `json:"key_points"`
}

// QuestionSet is the response envelope of the generate-questions endpoint.
type QuestionSet struct {
	Questions []PracticeQuestion `json:"questions"`
}

// AnswerEvaluation is the service's feedback on a practice answer.
type AnswerEvaluation struct {
	Score           int      `json:"score"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	SuggestedAnswer string   `json:"suggested_answer"`
	OverallFeedback string   `json:"overall_feedback"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Version string `json:"version,omitempty"`
}

// AnalyzeJobRequest is the body of POST /api/analyze-job.
type AnalyzeJobRequest struct {
	JobDescription string `json:"job_description"`
}

// StudyPlanRequest is the body of POST /api/generate-study-plan.
type StudyPlanRequest struct {
	JobAnalysis        JobAnalysis `json:"job_analysis"`
	AvailableTimeHours int         `json:"available_time_hours"`
}

// QuestionRequest is the body of POST /api/generate-questions.
type QuestionRequest struct {
	JobAnalysis JobAnalysis `json:"job_analysis"`
	Topic       string      `json:"topic"`
	Count       int         `json:"count"`
}

// EvaluationRequest is the body of POST /api/evaluate-answer.
type EvaluationRequest struct {
	Question          string   `json:"question"`
	UserAnswer        string   `json:"user_answer"`
	ExpectedKeyPoints []string `json:"expected_key_points"`
}
