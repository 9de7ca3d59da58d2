package models

import (
	"database/sql"
	"time"
)

// User is a row of the users table.
type User struct {
	ID            int64          `db:"id"`
	Username      string         `db:"username"`
	PasswordHash  string         `db:"password_hash"`
	IsAdmin       bool           `db:"is_admin"`
	Team          sql.NullString `db:"team"`
	TeamAssigned  bool           `db:"team_assigned"`
	WeeklyScore   int            `db:"weekly_score"`
	WeeklyQuizzes int            `db:"weekly_quizzes"`
	CurrentStreak int            `db:"current_streak"`
	LastQuizDate  sql.NullTime   `db:"last_quiz_date"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// UserAchievement is a row of the user_achievements table.
type UserAchievement struct {
	UserID      int64     `db:"user_id"`
	Code        string    `db:"code"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	EarnedAt    time.Time `db:"earned_at"`
}
