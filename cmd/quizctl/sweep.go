package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"quiz-league/internal/repository"
	"quiz-league/internal/service"
)

func newSweepCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Archive every active question from a past week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.Close()

			questionCache := e.questionCache(cmd.Context())
			sweeper := service.NewArchivalSweeper(repository.NewQuestionDatabaseAdapter(e.db), e.calc, questionCache)
			archived, err := sweeper.SweepPastWeeks(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "archived %d question(s) before week of %s\n",
				len(archived), e.calc.FormatDate(e.calc.CurrentWeek()))
			return nil
		},
	}
}
