package domain

import (
	"context"
	"strings"
	"time"
)

// User represents a domain user object
type User struct {
	ID            int64
	Username      string
	PasswordHash  string
	IsAdmin       bool
	Team          *Team
	TeamAssigned  bool
	WeeklyScore   int
	WeeklyQuizzes int
	CurrentStreak int
	LastQuizDate  *time.Time
	Achievements  []Achievement
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewUser creates a new User instance with zeroed aggregates and no team.
func NewUser(username, passwordHash string, isAdmin bool) *User {
	now := time.Now()
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate validates the user
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return NewValidationError("username is required")
	}
	if u.PasswordHash == "" {
		return NewValidationError("password is required")
	}
	return nil
}

// TeamName returns the team name or "" when unassigned.
func (u *User) TeamName() string {
	if u.Team == nil {
		return ""
	}
	return string(*u.Team)
}

// HasTeam reports whether the user takes part in team aggregation.
func (u *User) HasTeam() bool {
	return u.TeamAssigned && u.Team != nil
}

// StreakUpdate is the result of folding a completed quiz into a streak.
type StreakUpdate struct {
	Streak       int
	LastQuizDate time.Time
}

// NextStreak computes the streak after a quiz completed on day (a calendar
// day start). A second quiz on the same day leaves the streak unchanged,
// a quiz the day after the last one extends it, anything else restarts it.
func NextStreak(current int, last *time.Time, day time.Time) StreakUpdate {
	switch {
	case last == nil:
		return StreakUpdate{Streak: 1, LastQuizDate: day}
	case sameDate(*last, day):
		if current == 0 {
			current = 1
		}
		return StreakUpdate{Streak: current, LastQuizDate: day}
	case sameDate(last.AddDate(0, 0, 1), day):
		return StreakUpdate{Streak: current + 1, LastQuizDate: day}
	default:
		return StreakUpdate{Streak: 1, LastQuizDate: day}
	}
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// UserRepository defines the interface for user data persistence.
// Lookups return (nil, nil) when the row does not exist; mutations return
// false when no row matched.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, userID int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	// GetUserForUpdate reads the user row with a row lock; only meaningful
	// inside a transaction.
	GetUserForUpdate(ctx context.Context, userID int64) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	IncrementScore(ctx context.Context, userID int64, delta int) (bool, error)
	IncrementQuizCount(ctx context.Context, userID int64) (bool, error)
	UpdateStreak(ctx context.Context, userID int64, streak int, lastQuizDate time.Time) (bool, error)
	ResetWeeklyAggregates(ctx context.Context, userID int64) (bool, error)
	AssignTeam(ctx context.Context, userID int64, team Team) (bool, error)
	ListAchievements(ctx context.Context, userID int64) ([]Achievement, error)
	// AddAchievement returns false when the user already holds the achievement.
	AddAchievement(ctx context.Context, userID int64, achievement Achievement) (bool, error)
}
