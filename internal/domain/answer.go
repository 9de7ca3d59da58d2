package domain

import (
	"context"
	"time"
)

// Answer is an immutable record of one submitted option.
type Answer struct {
	ID         int64
	UserID     int64
	QuestionID int64
	Answer     string
	Correct    bool
	AnsweredAt time.Time
}

// NewAnswer builds an answer with correctness derived from the question.
func NewAnswer(userID int64, question *Question, selected string, answeredAt time.Time) *Answer {
	return &Answer{
		UserID:     userID,
		QuestionID: question.ID,
		Answer:     selected,
		Correct:    question.IsCorrect(selected),
		AnsweredAt: answeredAt,
	}
}

// Validate validates the answer
func (a *Answer) Validate() error {
	if a.UserID == 0 {
		return NewValidationError("user ID is required")
	}
	if a.QuestionID == 0 {
		return NewValidationError("question ID is required")
	}
	if a.Answer == "" {
		return NewValidationError("answer is required")
	}
	return nil
}

// AnswerRepository defines the interface for the append-only answer log.
type AnswerRepository interface {
	CreateAnswer(ctx context.Context, answer *Answer) error
	ListAnswersByUser(ctx context.Context, userID int64) ([]*Answer, error)
	ListAnswersSince(ctx context.Context, since time.Time) ([]*Answer, error)
	// CountUserAnswersUpTo counts the user's answers in [from, to) whose id
	// is at most answerID, giving the ordinal of that answer within the window.
	CountUserAnswersUpTo(ctx context.Context, userID int64, from, to time.Time, answerID int64) (int, error)
	// ListUserAnswersUpTo returns the same window ordered by id.
	ListUserAnswersUpTo(ctx context.Context, userID int64, from, to time.Time, answerID int64) ([]*Answer, error)
}

// TransactionManager runs fn inside a single database transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
