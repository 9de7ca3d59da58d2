package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"quiz-league/internal/domain"
	"quiz-league/internal/repository/models"
)

const questionColumns = `id, question, options, correct_answer, category, explanation, week_of, is_archived, created_at, updated_at`

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.DB
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// CreateQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) CreateQuestion(ctx context.Context, q *domain.Question) error {
	m := toModelQuestion(q)
	query := `INSERT INTO questions (question, options, correct_answer, category, explanation, week_of, is_archived)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	row := GetExecutor(ctx, a.db).QueryRowxContext(ctx, query,
		m.Question, m.Options, m.CorrectAnswer, m.Category, m.Explanation, m.WeekOf, m.IsArchived)
	if err := row.Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

// GetQuestionByID implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestionByID(ctx context.Context, id int64) (*domain.Question, error) {
	var m models.Question
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`

	err := GetExecutor(ctx, a.db).GetContext(ctx, &m, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by ID %d: %w", id, err)
	}
	return toDomainQuestion(&m), nil
}

// UpdateQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) UpdateQuestion(ctx context.Context, q *domain.Question) (bool, error) {
	m := toModelQuestion(q)
	query := `UPDATE questions SET
			question = $1,
			options = $2,
			correct_answer = $3,
			category = $4,
			explanation = $5,
			week_of = $6,
			is_archived = $7,
			updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at`

	err := GetExecutor(ctx, a.db).QueryRowxContext(ctx, query,
		m.Question, m.Options, m.CorrectAnswer, m.Category, m.Explanation, m.WeekOf, m.IsArchived, m.ID,
	).Scan(&q.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to update question %d: %w", q.ID, err)
	}
	return true, nil
}

// DeleteQuestion implements domain.QuestionRepository. Answers referencing
// the question are left in place.
func (a *QuestionDatabaseAdapter) DeleteQuestion(ctx context.Context, id int64) (bool, error) {
	result, err := GetExecutor(ctx, a.db).ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete question %d: %w", id, err)
	}
	ok, err := rowsAffected(result)
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return ok, nil
}

// SetArchived implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) SetArchived(ctx context.Context, id int64, archived bool) (bool, error) {
	query := `UPDATE questions SET is_archived = $1, updated_at = NOW() WHERE id = $2`
	result, err := GetExecutor(ctx, a.db).ExecContext(ctx, query, archived, id)
	if err != nil {
		return false, fmt.Errorf("failed to set archived=%t on question %d: %w", archived, id, err)
	}
	ok, err := rowsAffected(result)
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return ok, nil
}

// ListActive implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) ListActive(ctx context.Context) ([]*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions
		WHERE is_archived = FALSE
		ORDER BY week_of DESC, id ASC`
	return a.list(ctx, "active questions", query)
}

// ListActiveByWeek implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) ListActiveByWeek(ctx context.Context, weekOf time.Time) ([]*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions
		WHERE is_archived = FALSE AND week_of >= $1 AND week_of < $2
		ORDER BY id ASC`
	return a.list(ctx, "questions by week", query, weekOf, weekOf.AddDate(0, 0, 7))
}

// ListArchived implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) ListArchived(ctx context.Context) ([]*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions
		WHERE is_archived = TRUE
		ORDER BY week_of DESC, id ASC`
	return a.list(ctx, "archived questions", query)
}

// ArchiveBefore implements domain.QuestionRepository. Running it twice in a
// row archives nothing the second time.
func (a *QuestionDatabaseAdapter) ArchiveBefore(ctx context.Context, weekStart time.Time) ([]int64, error) {
	query := `UPDATE questions SET is_archived = TRUE, updated_at = NOW()
		WHERE is_archived = FALSE AND week_of < $1
		RETURNING id`

	var ids []int64
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &ids, query, weekStart); err != nil {
		return nil, fmt.Errorf("failed to archive questions before %s: %w", weekStart.Format(time.RFC3339), err)
	}
	return ids, nil
}

func (a *QuestionDatabaseAdapter) list(ctx context.Context, what, query string, args ...interface{}) ([]*domain.Question, error) {
	var rows []models.Question
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", what, err)
	}
	questions := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		questions = append(questions, toDomainQuestion(&rows[i]))
	}
	return questions, nil
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	options := make([]string, len(m.Options))
	copy(options, m.Options)
	return &domain.Question{
		ID:            m.ID,
		Question:      m.Question,
		Options:       options,
		CorrectAnswer: m.CorrectAnswer,
		Category:      m.Category,
		Explanation:   m.Explanation,
		WeekOf:        m.WeekOf,
		IsArchived:    m.IsArchived,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toModelQuestion(q *domain.Question) *models.Question {
	if q == nil {
		return nil
	}
	return &models.Question{
		ID:            q.ID,
		Question:      q.Question,
		Options:       pq.StringArray(q.Options),
		CorrectAnswer: q.CorrectAnswer,
		Category:      q.Category,
		Explanation:   q.Explanation,
		WeekOf:        q.WeekOf,
		IsArchived:    q.IsArchived,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}
