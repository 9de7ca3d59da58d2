package service

import (
	"context"

	"go.uber.org/zap"

	"quiz-league/internal/config"
	"quiz-league/internal/domain"
	"quiz-league/internal/logger"
	"quiz-league/internal/week"
)

// SubmitResult is what a player sees after answering.
type SubmitResult struct {
	Answer        *domain.Answer
	QuizCompleted bool
	Achievements  []domain.Achievement
}

// AnswerService records answers and applies their scoring side effects.
type AnswerService interface {
	// Submit stores the answer and then scores it. Only a failure to store
	// the answer is returned; scoring and achievement failures are logged.
	Submit(ctx context.Context, userID, questionID int64, selected string) (*SubmitResult, error)
	ListForUser(ctx context.Context, userID int64) ([]*domain.Answer, error)
}

type answerService struct {
	questions    QuestionService
	answers      domain.AnswerRepository
	ledger       ScoreLedger
	achievements AchievementService
	tm           domain.TransactionManager
	calc         *week.Calculator
	scoring      config.ScoringConfig
}

func NewAnswerService(
	questions QuestionService,
	answers domain.AnswerRepository,
	ledger ScoreLedger,
	achievements AchievementService,
	tm domain.TransactionManager,
	calc *week.Calculator,
	scoring config.ScoringConfig,
) AnswerService {
	return &answerService{
		questions:    questions,
		answers:      answers,
		ledger:       ledger,
		achievements: achievements,
		tm:           tm,
		calc:         calc,
		scoring:      scoring,
	}
}

func (s *answerService) Submit(ctx context.Context, userID, questionID int64, selected string) (*SubmitResult, error) {
	q, err := s.questions.Get(ctx, questionID)
	if err != nil {
		return nil, err
	}

	answer := domain.NewAnswer(userID, q, selected, s.calc.Now())
	if err := answer.Validate(); err != nil {
		return nil, err
	}
	if err := s.answers.CreateAnswer(ctx, answer); err != nil {
		logger.Get().Error("Failed to store answer",
			zap.Int64("user_id", userID),
			zap.Int64("question_id", questionID),
			zap.Error(err))
		return nil, domain.NewPersistenceError("failed to submit answer", err)
	}

	result := &SubmitResult{Answer: answer}
	completed, err := s.score(ctx, answer)
	if err != nil {
		logger.Get().Error("Answer stored but scoring failed",
			zap.Int64("user_id", userID),
			zap.Int64("answer_id", answer.ID),
			zap.Error(err))
		return result, nil
	}
	if completed == nil {
		return result, nil
	}

	result.QuizCompleted = true
	earned, err := s.achievements.Evaluate(ctx, userID, *completed)
	if err != nil {
		logger.Get().Error("Achievement evaluation failed",
			zap.Int64("user_id", userID),
			zap.Error(err))
	}
	result.Achievements = earned
	return result, nil
}

// score applies the answer to the user's aggregates under a row lock. It
// returns the post-quiz state when this answer completed a quiz.
func (s *answerService) score(ctx context.Context, answer *domain.Answer) (*domain.AchievementContext, error) {
	var completed *domain.AchievementContext
	err := s.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		user, err := s.ledger.LockUser(txCtx, answer.UserID)
		if err != nil {
			return err
		}

		score := user.WeeklyScore
		if answer.Correct {
			if err := s.ledger.IncrementScore(txCtx, user.ID, s.scoring.PointsPerCorrect); err != nil {
				return err
			}
			score += s.scoring.PointsPerCorrect
		}

		dayStart := s.calc.StartOfDay(answer.AnsweredAt)
		dayEnd := s.calc.AddDays(dayStart, 1)
		ordinal, err := s.answers.CountUserAnswersUpTo(txCtx, user.ID, dayStart, dayEnd, answer.ID)
		if err != nil {
			return domain.NewPersistenceError("failed to count answers", err)
		}
		if ordinal == 0 || ordinal%s.scoring.AnswersPerQuiz != 0 {
			return nil
		}

		if err := s.ledger.IncrementQuizCount(txCtx, user.ID); err != nil {
			return err
		}
		streak, err := s.ledger.RecordQuizCompletion(txCtx, user, answer.AnsweredAt)
		if err != nil {
			return err
		}

		quizAnswers, err := s.answers.ListUserAnswersUpTo(txCtx, user.ID, dayStart, dayEnd, answer.ID)
		if err != nil {
			return domain.NewPersistenceError("failed to load quiz answers", err)
		}
		if len(quizAnswers) > s.scoring.AnswersPerQuiz {
			quizAnswers = quizAnswers[len(quizAnswers)-s.scoring.AnswersPerQuiz:]
		}

		completed = &domain.AchievementContext{
			WeeklyScore:   score,
			WeeklyQuizzes: user.WeeklyQuizzes + 1,
			CurrentStreak: streak.Streak,
			QuizAnswers:   quizAnswers,
		}
		logger.Get().Info("Quiz completed",
			zap.Int64("user_id", user.ID),
			zap.Int("weekly_quizzes", completed.WeeklyQuizzes),
			zap.Int("streak", streak.Streak))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return completed, nil
}

func (s *answerService) ListForUser(ctx context.Context, userID int64) ([]*domain.Answer, error) {
	answers, err := s.answers.ListAnswersByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to list answers", err)
	}
	return answers, nil
}
