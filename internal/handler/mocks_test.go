package handler_test

import (
	"context"
	"errors"
	"time"

	"quiz-league/internal/domain"
	"quiz-league/internal/dto"
	"quiz-league/internal/service"
)

// --- Manual Mocks ---

type MockQuestionService struct {
	CreateFunc          func(ctx context.Context, q *domain.Question) (*domain.Question, error)
	UpdateFunc          func(ctx context.Context, id int64, patch domain.QuestionPatch) (*domain.Question, error)
	DeleteFunc          func(ctx context.Context, id int64) error
	ArchiveFunc         func(ctx context.Context, id int64) (*domain.Question, error)
	UnarchiveFunc       func(ctx context.Context, id int64, moveToCurrentWeek bool) (*domain.Question, error)
	ListActiveFunc      func(ctx context.Context) ([]*domain.Question, error)
	ListCurrentWeekFunc func(ctx context.Context) ([]*domain.Question, error)
	ListArchivedFunc    func(ctx context.Context) ([]*domain.Question, error)
}

func (m *MockQuestionService) Create(ctx context.Context, q *domain.Question) (*domain.Question, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, q)
	}
	panic("MockQuestionService.CreateFunc not implemented")
}
func (m *MockQuestionService) Get(ctx context.Context, id int64) (*domain.Question, error) {
	panic("MockQuestionService.Get not implemented")
}
func (m *MockQuestionService) Update(ctx context.Context, id int64, patch domain.QuestionPatch) (*domain.Question, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	panic("MockQuestionService.UpdateFunc not implemented")
}
func (m *MockQuestionService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	panic("MockQuestionService.DeleteFunc not implemented")
}
func (m *MockQuestionService) Archive(ctx context.Context, id int64) (*domain.Question, error) {
	if m.ArchiveFunc != nil {
		return m.ArchiveFunc(ctx, id)
	}
	panic("MockQuestionService.ArchiveFunc not implemented")
}
func (m *MockQuestionService) Unarchive(ctx context.Context, id int64, moveToCurrentWeek bool) (*domain.Question, error) {
	if m.UnarchiveFunc != nil {
		return m.UnarchiveFunc(ctx, id, moveToCurrentWeek)
	}
	panic("MockQuestionService.UnarchiveFunc not implemented")
}
func (m *MockQuestionService) ListActive(ctx context.Context) ([]*domain.Question, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	panic("MockQuestionService.ListActiveFunc not implemented")
}
func (m *MockQuestionService) ListByWeek(ctx context.Context, weekOf time.Time) ([]*domain.Question, error) {
	panic("MockQuestionService.ListByWeek not implemented")
}
func (m *MockQuestionService) ListCurrentWeek(ctx context.Context) ([]*domain.Question, error) {
	if m.ListCurrentWeekFunc != nil {
		return m.ListCurrentWeekFunc(ctx)
	}
	panic("MockQuestionService.ListCurrentWeekFunc not implemented")
}
func (m *MockQuestionService) ListArchived(ctx context.Context) ([]*domain.Question, error) {
	if m.ListArchivedFunc != nil {
		return m.ListArchivedFunc(ctx)
	}
	panic("MockQuestionService.ListArchivedFunc not implemented")
}

type MockAnswerService struct {
	SubmitFunc      func(ctx context.Context, userID, questionID int64, selected string) (*service.SubmitResult, error)
	ListForUserFunc func(ctx context.Context, userID int64) ([]*domain.Answer, error)
}

func (m *MockAnswerService) Submit(ctx context.Context, userID, questionID int64, selected string) (*service.SubmitResult, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, userID, questionID, selected)
	}
	panic("MockAnswerService.SubmitFunc not implemented")
}
func (m *MockAnswerService) ListForUser(ctx context.Context, userID int64) ([]*domain.Answer, error) {
	if m.ListForUserFunc != nil {
		return m.ListForUserFunc(ctx, userID)
	}
	panic("MockAnswerService.ListForUserFunc not implemented")
}

type MockLeaderboardService struct {
	IndividualFunc  func(ctx context.Context) ([]*domain.User, error)
	TeamStatsFunc   func(ctx context.Context) ([]domain.TeamStats, error)
	DailyStatsFunc  func(ctx context.Context) ([]domain.DailyStats, error)
	GroupByTeamFunc func(ctx context.Context) ([]domain.TeamGroup, error)
}

func (m *MockLeaderboardService) Individual(ctx context.Context) ([]*domain.User, error) {
	if m.IndividualFunc != nil {
		return m.IndividualFunc(ctx)
	}
	panic("MockLeaderboardService.IndividualFunc not implemented")
}
func (m *MockLeaderboardService) TeamStats(ctx context.Context) ([]domain.TeamStats, error) {
	if m.TeamStatsFunc != nil {
		return m.TeamStatsFunc(ctx)
	}
	panic("MockLeaderboardService.TeamStatsFunc not implemented")
}
func (m *MockLeaderboardService) DailyStats(ctx context.Context) ([]domain.DailyStats, error) {
	if m.DailyStatsFunc != nil {
		return m.DailyStatsFunc(ctx)
	}
	panic("MockLeaderboardService.DailyStatsFunc not implemented")
}
func (m *MockLeaderboardService) GroupByTeam(ctx context.Context) ([]domain.TeamGroup, error) {
	if m.GroupByTeamFunc != nil {
		return m.GroupByTeamFunc(ctx)
	}
	panic("MockLeaderboardService.GroupByTeamFunc not implemented")
}

type MockScoreLedger struct {
	ResetWeeklyAggregatesFunc func(ctx context.Context, userID int64) error
	AssignTeamFunc            func(ctx context.Context, userID int64, team string) (*domain.User, error)
	AssignRandomTeamFunc      func(ctx context.Context, userID int64) (*domain.User, error)
	GetProfileFunc            func(ctx context.Context, userID int64) (*domain.User, error)
}

func (m *MockScoreLedger) LockUser(ctx context.Context, userID int64) (*domain.User, error) {
	panic("MockScoreLedger.LockUser not implemented")
}
func (m *MockScoreLedger) IncrementScore(ctx context.Context, userID int64, points int) error {
	panic("MockScoreLedger.IncrementScore not implemented")
}
func (m *MockScoreLedger) IncrementQuizCount(ctx context.Context, userID int64) error {
	panic("MockScoreLedger.IncrementQuizCount not implemented")
}
func (m *MockScoreLedger) RecordQuizCompletion(ctx context.Context, user *domain.User, completedAt time.Time) (domain.StreakUpdate, error) {
	panic("MockScoreLedger.RecordQuizCompletion not implemented")
}
func (m *MockScoreLedger) ResetWeeklyAggregates(ctx context.Context, userID int64) error {
	if m.ResetWeeklyAggregatesFunc != nil {
		return m.ResetWeeklyAggregatesFunc(ctx, userID)
	}
	panic("MockScoreLedger.ResetWeeklyAggregatesFunc not implemented")
}
func (m *MockScoreLedger) AssignTeam(ctx context.Context, userID int64, team string) (*domain.User, error) {
	if m.AssignTeamFunc != nil {
		return m.AssignTeamFunc(ctx, userID, team)
	}
	panic("MockScoreLedger.AssignTeamFunc not implemented")
}
func (m *MockScoreLedger) AssignRandomTeam(ctx context.Context, userID int64) (*domain.User, error) {
	if m.AssignRandomTeamFunc != nil {
		return m.AssignRandomTeamFunc(ctx, userID)
	}
	panic("MockScoreLedger.AssignRandomTeamFunc not implemented")
}
func (m *MockScoreLedger) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	panic("MockScoreLedger.GetProfileFunc not implemented")
}

// MockTokenService accepts "player" as user 7 and "admin" as admin user 1.
type MockTokenService struct{}

func (m *MockTokenService) Issue(ctx context.Context, user *domain.User) (string, error) {
	panic("MockTokenService.Issue not implemented")
}
func (m *MockTokenService) Validate(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	switch tokenString {
	case "player":
		return &dto.AuthClaims{UserID: 7}, nil
	case "admin":
		return &dto.AuthClaims{UserID: 1, IsAdmin: true}, nil
	}
	return nil, errors.New("unknown token")
}
