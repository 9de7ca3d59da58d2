package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"quiz-league/internal/domain"
	"quiz-league/internal/repository/models"
	"quiz-league/internal/util"
)

const userColumns = `id, username, password_hash, is_admin, team, team_assigned, weekly_score, weekly_quizzes, current_streak, last_quiz_date, created_at, updated_at`

// UserDatabaseAdapter implements domain.UserRepository using sqlx.DB
type UserDatabaseAdapter struct {
	db *sqlx.DB
}

// NewUserDatabaseAdapter creates a new instance of UserDatabaseAdapter
func NewUserDatabaseAdapter(db *sqlx.DB) domain.UserRepository {
	return &UserDatabaseAdapter{db: db}
}

// CreateUser inserts a user with zeroed aggregates.
func (a *UserDatabaseAdapter) CreateUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (username, password_hash, is_admin)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	row := GetExecutor(ctx, a.db).QueryRowxContext(ctx, query, user.Username, user.PasswordHash, user.IsAdmin)
	if err := row.Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID implements domain.UserRepository
func (a *UserDatabaseAdapter) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return a.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
}

// GetUserByUsername implements domain.UserRepository
func (a *UserDatabaseAdapter) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return a.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// GetUserForUpdate locks the user row until the surrounding transaction ends.
func (a *UserDatabaseAdapter) GetUserForUpdate(ctx context.Context, userID int64) (*domain.User, error) {
	return a.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, userID)
}

func (a *UserDatabaseAdapter) getOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var m models.User
	if err := GetExecutor(ctx, a.db).GetContext(ctx, &m, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toDomainUser(&m), nil
}

// ListUsers returns every user in insertion order.
func (a *UserDatabaseAdapter) ListUsers(ctx context.Context) ([]*domain.User, error) {
	var rows []models.User
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id ASC`
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, toDomainUser(&rows[i]))
	}
	return users, nil
}

// IncrementScore adds delta to weekly_score in a single statement.
func (a *UserDatabaseAdapter) IncrementScore(ctx context.Context, userID int64, delta int) (bool, error) {
	query := `UPDATE users SET weekly_score = weekly_score + $1, updated_at = NOW() WHERE id = $2`
	return a.exec(ctx, "increment score", query, delta, userID)
}

// IncrementQuizCount adds one to weekly_quizzes in a single statement.
func (a *UserDatabaseAdapter) IncrementQuizCount(ctx context.Context, userID int64) (bool, error) {
	query := `UPDATE users SET weekly_quizzes = weekly_quizzes + 1, updated_at = NOW() WHERE id = $1`
	return a.exec(ctx, "increment quiz count", query, userID)
}

// UpdateStreak implements domain.UserRepository
func (a *UserDatabaseAdapter) UpdateStreak(ctx context.Context, userID int64, streak int, lastQuizDate time.Time) (bool, error) {
	query := `UPDATE users SET current_streak = $1, last_quiz_date = $2, updated_at = NOW() WHERE id = $3`
	return a.exec(ctx, "update streak", query, streak, util.TimeToNullTime(lastQuizDate), userID)
}

// ResetWeeklyAggregates zeroes weekly_score and weekly_quizzes.
func (a *UserDatabaseAdapter) ResetWeeklyAggregates(ctx context.Context, userID int64) (bool, error) {
	query := `UPDATE users SET weekly_score = 0, weekly_quizzes = 0, updated_at = NOW() WHERE id = $1`
	return a.exec(ctx, "reset weekly aggregates", query, userID)
}

// AssignTeam sets the team and marks it assigned.
func (a *UserDatabaseAdapter) AssignTeam(ctx context.Context, userID int64, team domain.Team) (bool, error) {
	query := `UPDATE users SET team = $1, team_assigned = TRUE, updated_at = NOW() WHERE id = $2`
	return a.exec(ctx, "assign team", query, string(team), userID)
}

// ListAchievements returns the user's achievements in the order they were earned.
func (a *UserDatabaseAdapter) ListAchievements(ctx context.Context, userID int64) ([]domain.Achievement, error) {
	var rows []models.UserAchievement
	query := `SELECT user_id, code, name, description, earned_at FROM user_achievements
		WHERE user_id = $1
		ORDER BY earned_at ASC, code ASC`
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list achievements for user %d: %w", userID, err)
	}
	achievements := make([]domain.Achievement, 0, len(rows))
	for _, r := range rows {
		achievements = append(achievements, domain.Achievement{
			Code:        r.Code,
			Name:        r.Name,
			Description: r.Description,
			EarnedAt:    r.EarnedAt,
		})
	}
	return achievements, nil
}

// AddAchievement inserts the achievement unless the user already holds it.
func (a *UserDatabaseAdapter) AddAchievement(ctx context.Context, userID int64, achievement domain.Achievement) (bool, error) {
	query := `INSERT INTO user_achievements (user_id, code, name, description, earned_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, code) DO NOTHING`
	return a.exec(ctx, "add achievement", query,
		userID, achievement.Code, achievement.Name, achievement.Description, achievement.EarnedAt)
}

func (a *UserDatabaseAdapter) exec(ctx context.Context, what, query string, args ...interface{}) (bool, error) {
	result, err := GetExecutor(ctx, a.db).ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to %s: %w", what, err)
	}
	ok, err := rowsAffected(result)
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return ok, nil
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	u := &domain.User{
		ID:            m.ID,
		Username:      m.Username,
		PasswordHash:  m.PasswordHash,
		IsAdmin:       m.IsAdmin,
		TeamAssigned:  m.TeamAssigned,
		WeeklyScore:   m.WeeklyScore,
		WeeklyQuizzes: m.WeeklyQuizzes,
		CurrentStreak: m.CurrentStreak,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Team.Valid {
		team := domain.Team(m.Team.String)
		u.Team = &team
	}
	if m.LastQuizDate.Valid {
		last := m.LastQuizDate.Time
		u.LastQuizDate = &last
	}
	return u
}
