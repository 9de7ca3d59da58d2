package service

import (
	"context"

	"go.uber.org/zap"

	"quiz-league/internal/domain"
	"quiz-league/internal/logger"
	"quiz-league/internal/week"
)

// ArchivalSweeper archives active questions whose week is over.
type ArchivalSweeper struct {
	repo  domain.QuestionRepository
	calc  *week.Calculator
	cache *QuestionCache
}

func NewArchivalSweeper(repo domain.QuestionRepository, calc *week.Calculator, cache *QuestionCache) *ArchivalSweeper {
	return &ArchivalSweeper{repo: repo, calc: calc, cache: cache}
}

// SweepPastWeeks archives every active question targeted at a week before the
// current one and returns their ids. Running it twice archives nothing the
// second time.
func (s *ArchivalSweeper) SweepPastWeeks(ctx context.Context) ([]int64, error) {
	current := s.calc.CurrentWeek()
	ids, err := s.repo.ArchiveBefore(ctx, current)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to archive past questions", err)
	}
	if len(ids) > 0 {
		logger.Get().Info("Archived past-week questions",
			zap.Int("count", len(ids)),
			zap.Time("current_week", current))
		if s.cache != nil {
			s.cache.Invalidate(ctx)
		}
	}
	return ids, nil
}
