package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"quiz-league/internal/domain"
)

// --- MockQuestionRepository ---
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) CreateQuestion(ctx context.Context, q *domain.Question) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetQuestionByID(ctx context.Context, id int64) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) UpdateQuestion(ctx context.Context, q *domain.Question) (bool, error) {
	args := m.Called(ctx, q)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuestionRepository) DeleteQuestion(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuestionRepository) SetArchived(ctx context.Context, id int64, archived bool) (bool, error) {
	args := m.Called(ctx, id, archived)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuestionRepository) ListActive(ctx context.Context) ([]*domain.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) ListActiveByWeek(ctx context.Context, weekOf time.Time) ([]*domain.Question, error) {
	args := m.Called(ctx, weekOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) ListArchived(ctx context.Context) ([]*domain.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) ArchiveBefore(ctx context.Context, weekStart time.Time) ([]int64, error) {
	args := m.Called(ctx, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

var _ domain.QuestionRepository = (*MockQuestionRepository)(nil)

// --- MockUserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserForUpdate(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepository) IncrementScore(ctx context.Context, userID int64, delta int) (bool, error) {
	args := m.Called(ctx, userID, delta)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) IncrementQuizCount(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateStreak(ctx context.Context, userID int64, streak int, lastQuizDate time.Time) (bool, error) {
	args := m.Called(ctx, userID, streak, lastQuizDate)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ResetWeeklyAggregates(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AssignTeam(ctx context.Context, userID int64, team domain.Team) (bool, error) {
	args := m.Called(ctx, userID, team)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ListAchievements(ctx context.Context, userID int64) ([]domain.Achievement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Achievement), args.Error(1)
}

func (m *MockUserRepository) AddAchievement(ctx context.Context, userID int64, achievement domain.Achievement) (bool, error) {
	args := m.Called(ctx, userID, achievement)
	return args.Bool(0), args.Error(1)
}

var _ domain.UserRepository = (*MockUserRepository)(nil)

// --- MockAnswerRepository ---
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) CreateAnswer(ctx context.Context, answer *domain.Answer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

func (m *MockAnswerRepository) ListAnswersByUser(ctx context.Context, userID int64) ([]*domain.Answer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Answer), args.Error(1)
}

func (m *MockAnswerRepository) ListAnswersSince(ctx context.Context, since time.Time) ([]*domain.Answer, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Answer), args.Error(1)
}

func (m *MockAnswerRepository) CountUserAnswersUpTo(ctx context.Context, userID int64, from, to time.Time, answerID int64) (int, error) {
	args := m.Called(ctx, userID, from, to, answerID)
	return args.Int(0), args.Error(1)
}

func (m *MockAnswerRepository) ListUserAnswersUpTo(ctx context.Context, userID int64, from, to time.Time, answerID int64) ([]*domain.Answer, error) {
	args := m.Called(ctx, userID, from, to, answerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Answer), args.Error(1)
}

var _ domain.AnswerRepository = (*MockAnswerRepository)(nil)

// inlineTx runs fn directly and records whether it was used.
type inlineTx struct {
	calls int
}

func (tx *inlineTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}
