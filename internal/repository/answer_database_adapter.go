package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"quiz-league/internal/domain"
	"quiz-league/internal/repository/models"
)

const answerColumns = `id, user_id, question_id, answer, correct, answered_at`

// AnswerDatabaseAdapter implements domain.AnswerRepository using sqlx.DB.
// Answers are only ever inserted.
type AnswerDatabaseAdapter struct {
	db *sqlx.DB
}

func NewAnswerDatabaseAdapter(db *sqlx.DB) domain.AnswerRepository {
	return &AnswerDatabaseAdapter{db: db}
}

// CreateAnswer implements domain.AnswerRepository
func (a *AnswerDatabaseAdapter) CreateAnswer(ctx context.Context, answer *domain.Answer) error {
	query := `INSERT INTO answers (user_id, question_id, answer, correct, answered_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	row := GetExecutor(ctx, a.db).QueryRowxContext(ctx, query,
		answer.UserID, answer.QuestionID, answer.Answer, answer.Correct, answer.AnsweredAt)
	if err := row.Scan(&answer.ID); err != nil {
		return fmt.Errorf("failed to save answer: %w", err)
	}
	return nil
}

// ListAnswersByUser returns the user's history, newest first.
func (a *AnswerDatabaseAdapter) ListAnswersByUser(ctx context.Context, userID int64) ([]*domain.Answer, error) {
	query := `SELECT ` + answerColumns + ` FROM answers
		WHERE user_id = $1
		ORDER BY answered_at DESC, id DESC`
	return a.list(ctx, "answers by user", query, userID)
}

// ListAnswersSince returns every answer at or after since, oldest first.
func (a *AnswerDatabaseAdapter) ListAnswersSince(ctx context.Context, since time.Time) ([]*domain.Answer, error) {
	query := `SELECT ` + answerColumns + ` FROM answers
		WHERE answered_at >= $1
		ORDER BY answered_at ASC, id ASC`
	return a.list(ctx, "answers since", query, since)
}

// CountUserAnswersUpTo implements domain.AnswerRepository
func (a *AnswerDatabaseAdapter) CountUserAnswersUpTo(ctx context.Context, userID int64, from, to time.Time, answerID int64) (int, error) {
	query := `SELECT COUNT(*) FROM answers
		WHERE user_id = $1 AND answered_at >= $2 AND answered_at < $3 AND id <= $4`

	var count int
	if err := GetExecutor(ctx, a.db).GetContext(ctx, &count, query, userID, from, to, answerID); err != nil {
		return 0, fmt.Errorf("failed to count answers for user %d: %w", userID, err)
	}
	return count, nil
}

// ListUserAnswersUpTo implements domain.AnswerRepository
func (a *AnswerDatabaseAdapter) ListUserAnswersUpTo(ctx context.Context, userID int64, from, to time.Time, answerID int64) ([]*domain.Answer, error) {
	query := `SELECT ` + answerColumns + ` FROM answers
		WHERE user_id = $1 AND answered_at >= $2 AND answered_at < $3 AND id <= $4
		ORDER BY id ASC`
	return a.list(ctx, "answers for user window", query, userID, from, to, answerID)
}

func (a *AnswerDatabaseAdapter) list(ctx context.Context, what, query string, args ...interface{}) ([]*domain.Answer, error) {
	var rows []models.Answer
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", what, err)
	}
	answers := make([]*domain.Answer, 0, len(rows))
	for i := range rows {
		answers = append(answers, toDomainAnswer(&rows[i]))
	}
	return answers, nil
}

func toDomainAnswer(m *models.Answer) *domain.Answer {
	return &domain.Answer{
		ID:         m.ID,
		UserID:     m.UserID,
		QuestionID: m.QuestionID,
		Answer:     m.Answer,
		Correct:    m.Correct,
		AnsweredAt: m.AnsweredAt,
	}
}
