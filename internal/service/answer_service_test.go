package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quiz-league/internal/config"
	"quiz-league/internal/domain"
	"quiz-league/internal/week"
)

type answerFixture struct {
	calc      *week.Calculator
	questions *MockQuestionRepository
	users     *MockUserRepository
	answers   *MockAnswerRepository
	tx        *inlineTx
	svc       AnswerService
}

func newAnswerFixture(t *testing.T) *answerFixture {
	t.Helper()
	f := &answerFixture{
		calc:      calcAt(t, 2024, time.January, 10, 15),
		questions: new(MockQuestionRepository),
		users:     new(MockUserRepository),
		answers:   new(MockAnswerRepository),
		tx:        &inlineTx{},
	}
	questionSvc := NewQuestionService(f.questions, f.calc, nil, nil)
	ledger := NewScoreLedger(f.users, f.calc, nil)
	achievements := NewAchievementService(f.users, nil, f.calc)
	f.svc = NewAnswerService(questionSvc, f.answers, ledger, achievements, f.tx, f.calc,
		config.ScoringConfig{PointsPerCorrect: 10, AnswersPerQuiz: 3})

	f.questions.On("GetQuestionByID", mock.Anything, int64(7)).Return(&domain.Question{
		ID:            7,
		Question:      "Capital of Italy?",
		Options:       []string{"Rome", "Milan", "Turin"},
		CorrectAnswer: "Rome",
		WeekOf:        f.calc.CurrentWeek(),
	}, nil)
	return f
}

func (f *answerFixture) expectStored(answerID int64) {
	f.answers.On("CreateAnswer", mock.Anything, mock.AnythingOfType("*domain.Answer")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Answer).ID = answerID
		}).Return(nil)
}

func (f *answerFixture) expectOrdinal(answerID int64, ordinal int) {
	dayStart := f.calc.Today()
	f.answers.On("CountUserAnswersUpTo", mock.Anything, int64(1), sameInstant(dayStart), sameInstant(f.calc.AddDays(dayStart, 1)), answerID).
		Return(ordinal, nil)
}

func TestAnswerService_Submit_ComputesCorrectnessServerSide(t *testing.T) {
	tests := []struct {
		name     string
		selected string
		correct  bool
	}{
		{"correct option", "Rome", true},
		{"wrong option", "Milan", false},
		{"not an option at all", "Paris", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAnswerFixture(t)
			f.expectStored(40)
			f.users.On("GetUserForUpdate", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
			f.users.On("IncrementScore", mock.Anything, int64(1), 10).Return(true, nil)
			f.expectOrdinal(40, 1)

			result, err := f.svc.Submit(context.Background(), 1, 7, tt.selected)
			require.NoError(t, err)
			assert.Equal(t, tt.correct, result.Answer.Correct)
			assert.False(t, result.QuizCompleted)
			if tt.correct {
				f.users.AssertCalled(t, "IncrementScore", mock.Anything, int64(1), 10)
			} else {
				f.users.AssertNotCalled(t, "IncrementScore", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestAnswerService_Submit_QuizBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		ordinal   int
		completed bool
	}{
		{name: "second answer of the day", ordinal: 2, completed: false},
		{name: "third answer completes a quiz", ordinal: 3, completed: true},
		{name: "sixth answer completes another", ordinal: 6, completed: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAnswerFixture(t)
			f.expectStored(50)
			user := &domain.User{ID: 1, WeeklyScore: 20, WeeklyQuizzes: tt.ordinal / 6}
			f.users.On("GetUserForUpdate", mock.Anything, int64(1)).Return(user, nil)
			f.users.On("IncrementScore", mock.Anything, int64(1), 10).Return(true, nil)
			f.expectOrdinal(50, tt.ordinal)

			if tt.completed {
				f.users.On("IncrementQuizCount", mock.Anything, int64(1)).Return(true, nil).Once()
				f.users.On("UpdateStreak", mock.Anything, int64(1), 1, sameInstant(f.calc.Today())).Return(true, nil)
				f.answers.On("ListUserAnswersUpTo", mock.Anything, int64(1), mock.Anything, mock.Anything, int64(50)).
					Return([]*domain.Answer{{Correct: true}, {Correct: false}, {Correct: true}}, nil)
				f.users.On("AddAchievement", mock.Anything, int64(1), mock.MatchedBy(func(a domain.Achievement) bool {
					return a.Code == "first_quiz"
				})).Return(true, nil)
			}

			result, err := f.svc.Submit(context.Background(), 1, 7, "Rome")
			require.NoError(t, err)
			assert.Equal(t, tt.completed, result.QuizCompleted)
			if tt.completed {
				require.Len(t, result.Achievements, 1)
				assert.Equal(t, "first_quiz", result.Achievements[0].Code)
				f.users.AssertNumberOfCalls(t, "IncrementQuizCount", 1)
			} else {
				f.users.AssertNotCalled(t, "IncrementQuizCount", mock.Anything, mock.Anything)
				assert.Empty(t, result.Achievements)
			}
		})
	}
}

func TestAnswerService_Submit_PersistenceFailureLeavesScoreUntouched(t *testing.T) {
	f := newAnswerFixture(t)
	f.answers.On("CreateAnswer", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	result, err := f.svc.Submit(context.Background(), 1, 7, "Rome")

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrPersistence))
	assert.Equal(t, 0, f.tx.calls)
	f.users.AssertNotCalled(t, "IncrementScore", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnswerService_Submit_ScoringFailureIsLoggedOnly(t *testing.T) {
	f := newAnswerFixture(t)
	f.expectStored(60)
	f.users.On("GetUserForUpdate", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	f.users.On("IncrementScore", mock.Anything, int64(1), 10).Return(false, errors.New("deadlock detected"))

	result, err := f.svc.Submit(context.Background(), 1, 7, "Rome")

	require.NoError(t, err)
	assert.Equal(t, int64(60), result.Answer.ID)
	assert.True(t, result.Answer.Correct)
	assert.False(t, result.QuizCompleted)
}

func TestAnswerService_Submit_AchievementFailureIsLoggedOnly(t *testing.T) {
	f := newAnswerFixture(t)
	f.expectStored(70)
	f.users.On("GetUserForUpdate", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	f.users.On("IncrementScore", mock.Anything, int64(1), 10).Return(true, nil)
	f.expectOrdinal(70, 3)
	f.users.On("IncrementQuizCount", mock.Anything, int64(1)).Return(true, nil)
	f.users.On("UpdateStreak", mock.Anything, int64(1), 1, mock.Anything).Return(true, nil)
	f.answers.On("ListUserAnswersUpTo", mock.Anything, int64(1), mock.Anything, mock.Anything, int64(70)).
		Return([]*domain.Answer{}, nil)
	f.users.On("AddAchievement", mock.Anything, int64(1), mock.Anything).Return(false, errors.New("timeout"))

	result, err := f.svc.Submit(context.Background(), 1, 7, "Rome")

	require.NoError(t, err)
	assert.True(t, result.QuizCompleted)
	assert.Empty(t, result.Achievements)
}

func TestAnswerService_Submit_UnknownQuestion(t *testing.T) {
	f := newAnswerFixture(t)
	f.questions.On("GetQuestionByID", mock.Anything, int64(404)).Return(nil, nil)

	_, err := f.svc.Submit(context.Background(), 1, 404, "Rome")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	f.answers.AssertNotCalled(t, "CreateAnswer", mock.Anything, mock.Anything)
}

func TestAnswerService_ListForUser(t *testing.T) {
	f := newAnswerFixture(t)
	f.answers.On("ListAnswersByUser", mock.Anything, int64(1)).Return([]*domain.Answer{{ID: 2}, {ID: 1}}, nil)
	f.answers.On("ListAnswersByUser", mock.Anything, int64(2)).Return(nil, errors.New("boom"))

	answers, err := f.svc.ListForUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, answers, 2)

	_, err = f.svc.ListForUser(context.Background(), 2)
	assert.True(t, errors.Is(err, domain.ErrPersistence))
}
