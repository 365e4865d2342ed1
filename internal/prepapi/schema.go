package prepapi

// Schema defines the JSON structure expected from a service endpoint.
type Schema struct {
	// Name identifies this schema and keys the compiled-schema cache.
	Name string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

func stringProp() map[string]any { return map[string]any{"type": "string"} }

func stringArrayProp() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
}

var jobAnalysisDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"role_title":       stringProp(),
		"company_type":     stringProp(),
		"experience_level": stringProp(),
		"key_skills": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":       stringProp(),
					"importance": stringProp(),
					"category":   stringProp(),
				},
				"required": []any{"name", "importance", "category"},
			},
		},
		"difficulty_level": stringProp(),
		"summary":          stringProp(),
	},
	"required": []any{"role_title", "company_type", "experience_level", "key_skills", "difficulty_level", "summary"},
}

// JobAnalysisSchema validates analyze-job responses.
var JobAnalysisSchema = &Schema{
	Name:       "job-analysis",
	Definition: jobAnalysisDefinition,
}

// StudyPlanSchema validates generate-study-plan responses.
var StudyPlanSchema = &Schema{
	Name: "study-plan",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"total_duration_hours": map[string]any{"type": "number", "minimum": 0},
			"topics": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"topic":           stringProp(),
						"description":     stringProp(),
						"estimated_hours": map[string]any{"type": "number", "minimum": 0},
						"resources":       stringArrayProp(),
						"priority":        map[string]any{"type": "integer"},
					},
					"required": []any{"topic", "description", "estimated_hours", "resources", "priority"},
				},
			},
			"preparation_strategy": stringProp(),
			"timeline_suggestion":  stringProp(),
		},
		"required": []any{"total_duration_hours", "topics", "preparation_strategy", "timeline_suggestion"},
	},
}

// QuestionSetSchema validates generate-questions responses.
var QuestionSetSchema = &Schema{
	Name: "question-set",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question":   stringProp(),
						"type":       stringProp(),
						"difficulty": stringProp(),
						"hints":      stringArrayProp(),
						"key_points": stringArrayProp(),
					},
					"required": []any{"question", "type", "difficulty", "hints", "key_points"},
				},
			},
		},
		"required": []any{"questions"},
	},
}

// AnswerEvaluationSchema validates evaluate-answer responses.
var AnswerEvaluationSchema = &Schema{
	Name: "answer-evaluation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score":            map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			"strengths":        stringArrayProp(),
			"improvements":     stringArrayProp(),
			"suggested_answer": stringProp(),
			"overall_feedback": stringProp(),
		},
		"required": []any{"score", "strengths", "improvements", "suggested_answer", "overall_feedback"},
	},
}

// HealthSchema validates health responses.
var HealthSchema = &Schema{
	Name: "health",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status":  stringProp(),
			"message": stringProp(),
			"version": stringProp(),
		},
		"required": []any{"status"},
	},
}
