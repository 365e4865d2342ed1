package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Minimum input lengths, counted in characters.
const (
	MinDescriptionLength = 50
	MinAnswerLength      = 10
)

// ValidationError is a local input failure. No request was sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type descriptionInput struct {
	JobDescription string `validate:"notblank,min=50"`
}

type answerInput struct {
	UserAnswer string `validate:"notblank,min=10"`
}

// fieldPrompts is the user-facing request for each validated field.
var fieldPrompts = map[string]string{
	"JobDescription": "Please enter a job description",
	"UserAnswer":     "Please provide an answer",
}

// fieldMinimums backs messages for tags that carry no length parameter.
var fieldMinimums = map[string]int{
	"JobDescription": MinDescriptionLength,
	"UserAnswer":     MinAnswerLength,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", notBlank)
	return v
}

// notBlank rejects strings made only of whitespace.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateDescription(desc string) *ValidationError {
	return check(descriptionInput{JobDescription: desc})
}

func validateAnswer(answer string) *ValidationError {
	return check(answerInput{UserAnswer: answer})
}

func check(input any) *ValidationError {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}
	return formatFieldError(verrs[0])
}

// formatFieldError turns the first failing rule into a sentence.
func formatFieldError(e validator.FieldError) *ValidationError {
	field := e.Field()
	prompt, ok := fieldPrompts[field]
	if !ok {
		prompt = "Please fill in " + field
	}

	minimum := fmt.Sprint(fieldMinimums[field])
	if e.Tag() == "min" {
		minimum = e.Param()
	}

	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("%s (at least %s characters)", prompt, minimum),
	}
}
