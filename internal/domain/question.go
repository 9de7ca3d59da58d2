package domain

import (
	"context"
	"strings"
	"time"
)

// Question is a multiple choice question targeted at one calendar week.
type Question struct {
	ID            int64
	Question      string
	Options       []string
	CorrectAnswer string
	Category      string
	Explanation   string
	WeekOf        time.Time // Monday 00:00 of the target week
	IsArchived    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewQuestion creates a new Question instance
func NewQuestion(question string, options []string, correctAnswer, category, explanation string, weekOf time.Time) *Question {
	now := time.Now()
	return &Question{
		Question:      question,
		Options:       options,
		CorrectAnswer: correctAnswer,
		Category:      category,
		Explanation:   explanation,
		WeekOf:        weekOf,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate enforces that the correct answer is one of the options.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return NewValidationError("question is required")
	}
	if len(q.Options) < 2 {
		return NewValidationError("at least two options are required")
	}
	seen := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return NewValidationError("options must not be empty")
		}
		if _, dup := seen[opt]; dup {
			return NewValidationError("options must be unique")
		}
		seen[opt] = struct{}{}
	}
	if q.CorrectAnswer == "" {
		return NewValidationError("correct answer is required")
	}
	if !q.HasOption(q.CorrectAnswer) {
		return NewValidationError("correct answer must be one of the options").
			WithContext("correct_answer", q.CorrectAnswer)
	}
	if q.WeekOf.IsZero() {
		return NewValidationError("week of is required")
	}
	return nil
}

// HasOption reports whether option is among the question's options.
func (q *Question) HasOption(option string) bool {
	for _, opt := range q.Options {
		if opt == option {
			return true
		}
	}
	return false
}

// IsCorrect compares a submitted option against the stored correct answer.
func (q *Question) IsCorrect(selected string) bool {
	return selected == q.CorrectAnswer
}

// QuestionPatch carries the fields of a partial question update. Nil fields
// are left untouched.
type QuestionPatch struct {
	Question      *string
	Options       []string
	CorrectAnswer *string
	Category      *string
	Explanation   *string
	WeekOf        *time.Time
	IsArchived    *bool
}

// Apply copies the set fields of p onto q.
func (p QuestionPatch) Apply(q *Question) {
	if p.Question != nil {
		q.Question = *p.Question
	}
	if p.Options != nil {
		q.Options = p.Options
	}
	if p.CorrectAnswer != nil {
		q.CorrectAnswer = *p.CorrectAnswer
	}
	if p.Category != nil {
		q.Category = *p.Category
	}
	if p.Explanation != nil {
		q.Explanation = *p.Explanation
	}
	if p.WeekOf != nil {
		q.WeekOf = *p.WeekOf
	}
	if p.IsArchived != nil {
		q.IsArchived = *p.IsArchived
	}
}

// QuestionRepository defines the interface for question persistence.
// Lookups return (nil, nil) when the row does not exist.
type QuestionRepository interface {
	CreateQuestion(ctx context.Context, q *Question) error
	GetQuestionByID(ctx context.Context, id int64) (*Question, error)
	UpdateQuestion(ctx context.Context, q *Question) (bool, error)
	DeleteQuestion(ctx context.Context, id int64) (bool, error)
	SetArchived(ctx context.Context, id int64, archived bool) (bool, error)
	ListActive(ctx context.Context) ([]*Question, error)
	ListActiveByWeek(ctx context.Context, weekOf time.Time) ([]*Question, error)
	ListArchived(ctx context.Context) ([]*Question, error)
	// ArchiveBefore archives every active question whose week precedes
	// weekStart and returns the affected ids.
	ArchiveBefore(ctx context.Context, weekStart time.Time) ([]int64, error)
}
