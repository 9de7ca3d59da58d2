package service

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"quiz-league/internal/domain"
	"quiz-league/internal/logger"
	"quiz-league/internal/week"
)

// TeamPicker chooses a team for users who ask to be placed anywhere.
type TeamPicker func() domain.Team

// RandomTeam picks uniformly among all teams.
func RandomTeam() domain.Team {
	return domain.AllTeams[rand.IntN(len(domain.AllTeams))]
}

// ScoreLedger owns the per-user weekly aggregates. Callers running inside a
// transaction should LockUser first so concurrent submissions serialize.
type ScoreLedger interface {
	LockUser(ctx context.Context, userID int64) (*domain.User, error)
	IncrementScore(ctx context.Context, userID int64, points int) error
	IncrementQuizCount(ctx context.Context, userID int64) error
	// RecordQuizCompletion folds a quiz completed at completedAt into the
	// user's streak and returns the new streak state.
	RecordQuizCompletion(ctx context.Context, user *domain.User, completedAt time.Time) (domain.StreakUpdate, error)
	ResetWeeklyAggregates(ctx context.Context, userID int64) error
	// AssignTeam places the user on team. An unknown team is rejected
	// without touching the user.
	AssignTeam(ctx context.Context, userID int64, team string) (*domain.User, error)
	AssignRandomTeam(ctx context.Context, userID int64) (*domain.User, error)
	GetProfile(ctx context.Context, userID int64) (*domain.User, error)
}

type scoreLedger struct {
	users domain.UserRepository
	calc  *week.Calculator
	pick  TeamPicker
}

func NewScoreLedger(users domain.UserRepository, calc *week.Calculator, pick TeamPicker) ScoreLedger {
	if pick == nil {
		pick = RandomTeam
	}
	return &scoreLedger{users: users, calc: calc, pick: pick}
}

func (l *scoreLedger) LockUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := l.users.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to lock user", err)
	}
	if user == nil {
		return nil, domain.NewUserNotFoundError(userID)
	}
	return user, nil
}

func (l *scoreLedger) IncrementScore(ctx context.Context, userID int64, points int) error {
	if points < 0 {
		return domain.NewValidationError("points must not be negative").WithContext("points", points)
	}
	return l.mutate(userID, "failed to increment score", func() (bool, error) {
		return l.users.IncrementScore(ctx, userID, points)
	})
}

func (l *scoreLedger) IncrementQuizCount(ctx context.Context, userID int64) error {
	return l.mutate(userID, "failed to increment quiz count", func() (bool, error) {
		return l.users.IncrementQuizCount(ctx, userID)
	})
}

func (l *scoreLedger) RecordQuizCompletion(ctx context.Context, user *domain.User, completedAt time.Time) (domain.StreakUpdate, error) {
	var last *time.Time
	if user.LastQuizDate != nil {
		d := l.calc.StartOfDay(*user.LastQuizDate)
		last = &d
	}
	update := domain.NextStreak(user.CurrentStreak, last, l.calc.StartOfDay(completedAt))
	err := l.mutate(user.ID, "failed to update streak", func() (bool, error) {
		return l.users.UpdateStreak(ctx, user.ID, update.Streak, update.LastQuizDate)
	})
	if err != nil {
		return domain.StreakUpdate{}, err
	}
	return update, nil
}

func (l *scoreLedger) ResetWeeklyAggregates(ctx context.Context, userID int64) error {
	err := l.mutate(userID, "failed to reset weekly aggregates", func() (bool, error) {
		return l.users.ResetWeeklyAggregates(ctx, userID)
	})
	if err == nil {
		logger.Get().Info("Weekly aggregates reset", zap.Int64("user_id", userID))
	}
	return err
}

func (l *scoreLedger) AssignTeam(ctx context.Context, userID int64, team string) (*domain.User, error) {
	chosen, err := domain.ParseTeam(team)
	if err != nil {
		return nil, err
	}
	return l.assign(ctx, userID, chosen)
}

func (l *scoreLedger) AssignRandomTeam(ctx context.Context, userID int64) (*domain.User, error) {
	return l.assign(ctx, userID, l.pick())
}

func (l *scoreLedger) assign(ctx context.Context, userID int64, chosen domain.Team) (*domain.User, error) {
	err := l.mutate(userID, "failed to assign team", func() (bool, error) {
		return l.users.AssignTeam(ctx, userID, chosen)
	})
	if err != nil {
		return nil, err
	}
	logger.Get().Info("Team assigned", zap.Int64("user_id", userID), zap.String("team", string(chosen)))
	return l.GetProfile(ctx, userID)
}

func (l *scoreLedger) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := l.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to get user", err)
	}
	if user == nil {
		return nil, domain.NewUserNotFoundError(userID)
	}
	achievements, err := l.users.ListAchievements(ctx, userID)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to list achievements", err)
	}
	user.Achievements = achievements
	return user, nil
}

// mutate runs a single-row update and maps "no row" to not found.
func (l *scoreLedger) mutate(userID int64, msg string, fn func() (bool, error)) error {
	ok, err := fn()
	if err != nil {
		logger.Get().Error(msg, zap.Int64("user_id", userID), zap.Error(err))
		return domain.NewPersistenceError(msg, err)
	}
	if !ok {
		return domain.NewUserNotFoundError(userID)
	}
	return nil
}
