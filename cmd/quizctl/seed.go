package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quiz-league/internal/domain"
	"quiz-league/internal/dto"
	"quiz-league/internal/logger"
	"quiz-league/internal/repository"
	"quiz-league/internal/service"
	"quiz-league/internal/validation"
	"quiz-league/internal/week"
)

func newSeedCmd(configPath *string) *cobra.Command {
	var (
		file   string
		weekOf string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load questions from a JSON file; all of them or none are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.Close()

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("failed to open seed file: %w", err)
			}
			defer f.Close()

			defaultWeek := e.calc.FormatDate(e.calc.CurrentWeek())
			if weekOf != "" {
				defaultWeek = weekOf
			}
			questions, err := parseSeedFile(f, e.calc, defaultWeek)
			if err != nil {
				return err
			}

			questionService := service.NewQuestionService(repository.NewQuestionDatabaseAdapter(e.db), e.calc, nil, nil)
			tm := repository.NewTransactionManagerAdapter(e.db)
			err = storeSeed(cmd.Context(), tm, questionService, e.questionCache(cmd.Context()), questions)
			if err != nil {
				logger.Get().Error("Seeding rolled back", zap.String("file", file), zap.Error(err))
				return err
			}

			logger.Get().Info("Seeded questions", zap.String("file", file), zap.Int("count", len(questions)))
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d question(s)\n", len(questions))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON array of questions")
	cmd.Flags().StringVar(&weekOf, "week", "", "week (YYYY-MM-DD) for entries without weekOf; defaults to the current week")
	return cmd
}

// storeSeed inserts every question in one transaction. The shared listings
// are retired only after the commit, so no reader can re-cache a listing
// without the new rows.
func storeSeed(ctx context.Context, tm domain.TransactionManager, questions service.QuestionService, listings *service.QuestionCache, seed []*domain.Question) error {
	err := tm.WithTransaction(ctx, func(txCtx context.Context) error {
		for i, q := range seed {
			if _, err := questions.Create(txCtx, q); err != nil {
				return fmt.Errorf("question %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	listings.Invalidate(ctx)
	return nil
}

// parseSeedFile decodes a JSON array of question requests. Entries without a
// weekOf target defaultWeek. Every entry is validated before anything is
// returned.
func parseSeedFile(r io.Reader, calc *week.Calculator, defaultWeek string) ([]*domain.Question, error) {
	var entries []dto.CreateQuestionRequest
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("seed file contains no questions")
	}

	v := validation.NewValidator()
	questions := make([]*domain.Question, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		if entry.WeekOf == "" {
			entry.WeekOf = defaultWeek
		}
		if err := v.Struct(entry); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		weekStart, err := calc.ParseDate(entry.WeekOf)
		if err != nil {
			return nil, fmt.Errorf("question %d: invalid weekOf %q: %w", i, entry.WeekOf, err)
		}

		q := domain.NewQuestion(entry.Question, entry.Options, entry.CorrectAnswer, entry.Category, entry.Explanation, weekStart)
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}
