package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quiz-league/internal/logger"
	"quiz-league/internal/repository"
	"quiz-league/internal/service"
)

// passwordEnv lets scripts pass the password without putting it on the
// command line.
const passwordEnv = "QUIZCTL_PASSWORD"

func newUserCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	var (
		username string
		password string
		admin    bool
		team     string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user with a bcrypt-hashed password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv(passwordEnv)
			}
			if strings.TrimSpace(username) == "" || password == "" {
				return errors.New("--username and --password (or " + passwordEnv + ") are required")
			}

			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.Close()

			users := repository.NewUserDatabaseAdapter(e.db)
			accounts := service.NewAccountService(users)
			user, err := accounts.Register(cmd.Context(), username, password, admin)
			if err != nil {
				return err
			}
			if team != "" {
				ledger := service.NewScoreLedger(users, e.calc, nil)
				if user, err = ledger.AssignTeam(cmd.Context(), user.ID, team); err != nil {
					return err
				}
			}

			logger.Get().Info("User created from CLI", zap.Int64("user_id", user.ID), zap.String("team", user.TeamName()))
			fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s) admin=%t team=%q\n", user.ID, user.Username, user.IsAdmin, user.TeamName())
			return nil
		},
	}
	create.Flags().StringVarP(&username, "username", "u", "", "login name")
	create.Flags().StringVarP(&password, "password", "p", "", "password (or set "+passwordEnv+")")
	create.Flags().BoolVar(&admin, "admin", false, "grant admin rights")
	create.Flags().StringVar(&team, "team", "", "assign the user to this team right away")

	cmd.AddCommand(create)
	return cmd
}

func newTokenCmd(configPath *string) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for an existing user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(username) == "" {
				return errors.New("--username is required")
			}
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.Close()

			tokens, err := service.NewTokenService(e.cfg.JWT, nil)
			if err != nil {
				return err
			}
			accounts := service.NewAccountService(repository.NewUserDatabaseAdapter(e.db))
			user, err := accounts.GetByUsername(cmd.Context(), username)
			if err != nil {
				return err
			}
			token, err := tokens.Issue(cmd.Context(), user)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "user to issue the token for")
	return cmd
}
