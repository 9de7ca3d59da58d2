// Command quizctl is the operator CLI for quiz-league. It creates accounts,
// issues tokens, seeds questions and runs the archival sweep on demand.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quiz-league/internal/adapter"
	"quiz-league/internal/cache"
	"quiz-league/internal/config"
	"quiz-league/internal/database"
	"quiz-league/internal/domain"
	"quiz-league/internal/logger"
	"quiz-league/internal/service"
	"quiz-league/internal/week"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "quizctl",
		Short:        "Operator commands for quiz-league",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: ./config/config.yaml)")

	cmd.AddCommand(newUserCmd(&configPath))
	cmd.AddCommand(newTokenCmd(&configPath))
	cmd.AddCommand(newSweepCmd(&configPath))
	cmd.AddCommand(newSeedCmd(&configPath))
	return cmd
}

// env is what every subcommand needs: configuration, a database and the
// week calendar.
type env struct {
	cfg   *config.Config
	db    *sqlx.DB
	calc  *week.Calculator
	redis *redis.Client
}

func openEnv(configPath string) (*env, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadConfigFromFile(configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	calc, err := week.NewCalculatorForZone(cfg.Week.Timezone, nil)
	if err != nil {
		return nil, err
	}
	db, err := database.NewPostgresDB(cfg.GetDSN(), 2)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, db: db, calc: calc}, nil
}

// questionCache connects to the API's shared question cache so writes made
// here retire its listings. Without Redis the listings age out on their TTL.
func (e *env) questionCache(ctx context.Context) *service.QuestionCache {
	var store domain.Cache
	if e.cfg.Cache.Enabled && e.redis == nil {
		dialCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		client, err := cache.NewRedisClient(dialCtx, e.cfg.Redis)
		cancel()
		if err != nil {
			logger.Get().Warn("Redis unavailable, cached listings will expire on their own", zap.Error(err))
		} else {
			e.redis = client
		}
	}
	if e.redis != nil {
		store = adapter.NewRedisCacheAdapter(e.redis)
	}
	return service.NewQuestionCache(store, e.cfg.CacheSettings())
}

func (e *env) Close() {
	if e.redis != nil {
		e.redis.Close()
	}
	e.db.Close()
	_ = logger.Sync()
}
