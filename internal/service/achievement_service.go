package service

import (
	"context"

	"go.uber.org/zap"

	"quiz-league/internal/domain"
	"quiz-league/internal/logger"
	"quiz-league/internal/week"
)

// AchievementService awards badges after a quiz is completed.
type AchievementService interface {
	// Evaluate returns the achievements newly earned by userID. Badges the
	// user already holds are not returned again.
	Evaluate(ctx context.Context, userID int64, state domain.AchievementContext) ([]domain.Achievement, error)
}

type achievementService struct {
	users domain.UserRepository
	rules []domain.AchievementRule
	calc  *week.Calculator
}

func NewAchievementService(users domain.UserRepository, rules []domain.AchievementRule, calc *week.Calculator) AchievementService {
	if rules == nil {
		rules = domain.DefaultAchievementRules
	}
	return &achievementService{users: users, rules: rules, calc: calc}
}

func (s *achievementService) Evaluate(ctx context.Context, userID int64, state domain.AchievementContext) ([]domain.Achievement, error) {
	var earned []domain.Achievement
	now := s.calc.Now()
	for _, rule := range s.rules {
		if !rule.Earned(state) {
			continue
		}
		a := domain.Achievement{Code: rule.Code, Name: rule.Name, Description: rule.Description, EarnedAt: now}
		added, err := s.users.AddAchievement(ctx, userID, a)
		if err != nil {
			return earned, domain.NewPersistenceError("failed to record achievement", err)
		}
		if added {
			logger.Get().Info("Achievement earned", zap.Int64("user_id", userID), zap.String("code", rule.Code))
			earned = append(earned, a)
		}
	}
	return earned, nil
}
