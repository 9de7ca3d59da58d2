package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validQuestion() *Question {
	return NewQuestion(
		"What is the capital of France?",
		[]string{"Paris", "Lyon", "Marseille", "Nice"},
		"Paris",
		"Geography",
		"Paris has been the capital since 987.",
		time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
	)
}

func TestQuestion_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *Question)
		wantErr bool
		errText string
	}{
		{"valid question", func(q *Question) {}, false, ""},
		{"missing question text", func(q *Question) { q.Question = "  " }, true, "question is required"},
		{"single option", func(q *Question) { q.Options = []string{"Paris"} }, true, "at least two options are required"},
		{"blank option", func(q *Question) { q.Options = []string{"Paris", ""} }, true, "options must not be empty"},
		{"duplicate option", func(q *Question) { q.Options = []string{"Paris", "Paris"} }, true, "options must be unique"},
		{"missing correct answer", func(q *Question) { q.CorrectAnswer = "" }, true, "correct answer is required"},
		{"correct answer not in options", func(q *Question) { q.CorrectAnswer = "Berlin" }, true, "correct answer must be one of the options"},
		{"correct answer differs by case", func(q *Question) { q.CorrectAnswer = "paris" }, true, "correct answer must be one of the options"},
		{"missing week", func(q *Question) { q.WeekOf = time.Time{} }, true, "week of is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(q)
			err := q.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation), "expected a validation error, got %T", err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestQuestion_IsCorrect(t *testing.T) {
	q := validQuestion()
	assert.True(t, q.IsCorrect("Paris"))
	assert.False(t, q.IsCorrect("Lyon"))
	assert.False(t, q.IsCorrect(" Paris"))
}

func TestNewAnswer_DerivesCorrectness(t *testing.T) {
	q := validQuestion()
	q.ID = 42
	at := time.Date(2024, 1, 9, 10, 0, 0, 0, time.UTC)

	right := NewAnswer(7, q, "Paris", at)
	assert.Equal(t, int64(42), right.QuestionID)
	assert.Equal(t, int64(7), right.UserID)
	assert.True(t, right.Correct)

	wrong := NewAnswer(7, q, "Nice", at)
	assert.False(t, wrong.Correct)
	assert.Equal(t, right.Correct, right.Answer == q.CorrectAnswer)
}

func TestQuestionPatch_Apply(t *testing.T) {
	q := validQuestion()
	text := "Capital of France?"
	archived := true
	QuestionPatch{Question: &text, IsArchived: &archived}.Apply(q)

	assert.Equal(t, "Capital of France?", q.Question)
	assert.True(t, q.IsArchived)
	assert.Equal(t, "Paris", q.CorrectAnswer, "unset fields must be left untouched")
	assert.Len(t, q.Options, 4)
}

func TestParseTeam(t *testing.T) {
	team, err := ParseTeam("Red")
	assert.NoError(t, err)
	assert.Equal(t, TeamRed, team)

	_, err = ParseTeam("Not A Real Team")
	assert.Error(t, err)
	assert.True(t, IsCode(err, CodeValidation))

	_, err = ParseTeam("red")
	assert.Error(t, err, "team names are case sensitive")
}

func TestDomainError_Is(t *testing.T) {
	err := NewQuestionNotFoundError(3)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))

	cause := errors.New("connection reset")
	wrapped := NewPersistenceError("failed to save answer", cause)
	assert.True(t, errors.Is(wrapped, ErrPersistence))
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "failed to save answer: connection reset", wrapped.Error())
}
