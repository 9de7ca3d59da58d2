package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"quiz-league/internal/domain"
	"quiz-league/internal/logger"
	"quiz-league/internal/week"
)

// QuestionService manages the weekly question bank. Every listing first
// archives questions from past weeks.
type QuestionService interface {
	Create(ctx context.Context, q *domain.Question) (*domain.Question, error)
	// Get always reads the repository; answers are graded against it.
	Get(ctx context.Context, id int64) (*domain.Question, error)
	Update(ctx context.Context, id int64, patch domain.QuestionPatch) (*domain.Question, error)
	Delete(ctx context.Context, id int64) error
	Archive(ctx context.Context, id int64) (*domain.Question, error)
	// Unarchive makes a question active again. Unless moveToCurrentWeek is
	// set the question keeps its week, so one from a past week is archived
	// again by the next listing.
	Unarchive(ctx context.Context, id int64, moveToCurrentWeek bool) (*domain.Question, error)
	ListActive(ctx context.Context) ([]*domain.Question, error)
	ListByWeek(ctx context.Context, weekOf time.Time) ([]*domain.Question, error)
	ListCurrentWeek(ctx context.Context) ([]*domain.Question, error)
	ListArchived(ctx context.Context) ([]*domain.Question, error)
}

type questionService struct {
	repo    domain.QuestionRepository
	calc    *week.Calculator
	cache   *QuestionCache
	sweeper *ArchivalSweeper
}

func NewQuestionService(repo domain.QuestionRepository, calc *week.Calculator, cache *QuestionCache, sweeper *ArchivalSweeper) QuestionService {
	if cache == nil {
		cache = NewQuestionCache(nil, domain.CacheSettings{})
	}
	if sweeper == nil {
		sweeper = NewArchivalSweeper(repo, calc, cache)
	}
	return &questionService{repo: repo, calc: calc, cache: cache, sweeper: sweeper}
}

func (s *questionService) Create(ctx context.Context, q *domain.Question) (*domain.Question, error) {
	if !q.WeekOf.IsZero() {
		q.WeekOf = s.calc.StartOfWeek(q.WeekOf)
	}
	q.IsArchived = false
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateQuestion(ctx, q); err != nil {
		logger.Get().Error("Failed to create question", zap.Error(err))
		return nil, domain.NewPersistenceError("failed to create question", err)
	}
	s.cache.Invalidate(ctx)
	logger.Get().Info("Question created", zap.Int64("question_id", q.ID), zap.Time("week_of", q.WeekOf))
	return q, nil
}

func (s *questionService) Get(ctx context.Context, id int64) (*domain.Question, error) {
	q, err := s.repo.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to get question", err)
	}
	if q == nil {
		return nil, domain.NewQuestionNotFoundError(id)
	}
	return q, nil
}

func (s *questionService) Update(ctx context.Context, id int64, patch domain.QuestionPatch) (*domain.Question, error) {
	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(q)
	if !q.WeekOf.IsZero() {
		q.WeekOf = s.calc.StartOfWeek(q.WeekOf)
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return s.save(ctx, q)
}

func (s *questionService) save(ctx context.Context, q *domain.Question) (*domain.Question, error) {
	updated, err := s.repo.UpdateQuestion(ctx, q)
	if err != nil {
		logger.Get().Error("Failed to update question", zap.Int64("question_id", q.ID), zap.Error(err))
		return nil, domain.NewPersistenceError("failed to update question", err)
	}
	if !updated {
		return nil, domain.NewQuestionNotFoundError(q.ID)
	}
	s.cache.Invalidate(ctx)
	return q, nil
}

func (s *questionService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteQuestion(ctx, id)
	if err != nil {
		logger.Get().Error("Failed to delete question", zap.Int64("question_id", id), zap.Error(err))
		return domain.NewPersistenceError("failed to delete question", err)
	}
	if !deleted {
		return domain.NewQuestionNotFoundError(id)
	}
	s.cache.Invalidate(ctx)
	logger.Get().Info("Question deleted", zap.Int64("question_id", id))
	return nil
}

func (s *questionService) Archive(ctx context.Context, id int64) (*domain.Question, error) {
	return s.setArchived(ctx, id, true)
}

func (s *questionService) Unarchive(ctx context.Context, id int64, moveToCurrentWeek bool) (*domain.Question, error) {
	if !moveToCurrentWeek {
		return s.setArchived(ctx, id, false)
	}
	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	q.IsArchived = false
	q.WeekOf = s.calc.CurrentWeek()
	return s.save(ctx, q)
}

func (s *questionService) setArchived(ctx context.Context, id int64, archived bool) (*domain.Question, error) {
	ok, err := s.repo.SetArchived(ctx, id, archived)
	if err != nil {
		logger.Get().Error("Failed to change archive state", zap.Int64("question_id", id), zap.Bool("archived", archived), zap.Error(err))
		return nil, domain.NewPersistenceError("failed to change archive state", err)
	}
	if !ok {
		return nil, domain.NewQuestionNotFoundError(id)
	}
	s.cache.Invalidate(ctx)
	return s.Get(ctx, id)
}

// sweep runs the archival sweep ahead of a listing. A failed sweep does not
// fail the read.
func (s *questionService) sweep(ctx context.Context) {
	if _, err := s.sweeper.SweepPastWeeks(ctx); err != nil {
		logger.Get().Warn("Archival sweep failed, serving listing anyway", zap.Error(err))
	}
}

func (s *questionService) ListActive(ctx context.Context) ([]*domain.Question, error) {
	s.sweep(ctx)
	questions, err := s.cache.List(ctx, listFieldActive, s.repo.ListActive)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to list active questions", err)
	}
	return questions, nil
}

func (s *questionService) ListByWeek(ctx context.Context, weekOf time.Time) ([]*domain.Question, error) {
	s.sweep(ctx)
	start := s.calc.StartOfWeek(weekOf)
	questions, err := s.cache.List(ctx, weekListField(start), func(ctx context.Context) ([]*domain.Question, error) {
		return s.repo.ListActiveByWeek(ctx, start)
	})
	if err != nil {
		return nil, domain.NewPersistenceError("failed to list weekly questions", err)
	}
	return questions, nil
}

func (s *questionService) ListCurrentWeek(ctx context.Context) ([]*domain.Question, error) {
	return s.ListByWeek(ctx, s.calc.Now())
}

func (s *questionService) ListArchived(ctx context.Context) ([]*domain.Question, error) {
	s.sweep(ctx)
	questions, err := s.cache.List(ctx, listFieldArchived, s.repo.ListArchived)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to list archived questions", err)
	}
	return questions, nil
}
