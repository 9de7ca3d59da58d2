//go:build integration

package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"quiz-league/internal/database"
	"quiz-league/internal/domain"
)

func startPostgres(t *testing.T, ctx context.Context) *sqlx.DB {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizleague"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizleague?sslmode=disable", host, port.Port())

	migrationDB, err := database.NewPostgresDB(dsn, 1)
	require.NoError(t, err)
	migrator, err := database.NewMigrator(migrationDB.DB)
	require.NoError(t, err)
	require.NoError(t, migrator.Up())
	require.NoError(t, migrator.Close())

	db, err := database.NewPostgresDB(dsn, 10)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPostgresRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := startPostgres(t, ctx)

	questions := NewQuestionDatabaseAdapter(db)
	users := NewUserDatabaseAdapter(db)
	answers := NewAnswerDatabaseAdapter(db)
	tm := NewTransactionManagerAdapter(db)

	lastWeek := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	thisWeek := lastWeek.AddDate(0, 0, 7)

	old := domain.NewQuestion("old?", []string{"a", "b"}, "a", "", "", lastWeek)
	current := domain.NewQuestion("Capital of Italy?", []string{"Rome", "Milan", "Turin"}, "Rome", "Geography", "", thisWeek)
	require.NoError(t, questions.CreateQuestion(ctx, old))
	require.NoError(t, questions.CreateQuestion(ctx, current))

	got, err := questions.GetQuestionByID(ctx, current.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rome", "Milan", "Turin"}, got.Options)

	t.Run("archive sweep is idempotent", func(t *testing.T) {
		ids, err := questions.ArchiveBefore(ctx, thisWeek)
		require.NoError(t, err)
		assert.Equal(t, []int64{old.ID}, ids)

		ids, err = questions.ArchiveBefore(ctx, thisWeek)
		require.NoError(t, err)
		assert.Empty(t, ids)

		active, err := questions.ListActiveByWeek(ctx, thisWeek)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, current.ID, active[0].ID)
	})

	t.Run("concurrent score increments are not lost", func(t *testing.T) {
		u := domain.NewUser("racer", "hash", false)
		require.NoError(t, users.CreateUser(ctx, u))

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = tm.WithTransaction(ctx, func(txCtx context.Context) error {
					if _, err := users.GetUserForUpdate(txCtx, u.ID); err != nil {
						return err
					}
					_, err := users.IncrementScore(txCtx, u.ID, 10)
					return err
				})
			}()
		}
		wg.Wait()

		reloaded, err := users.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, 200, reloaded.WeeklyScore)
	})

	t.Run("answers survive question deletion", func(t *testing.T) {
		u := domain.NewUser("orphan", "hash", false)
		require.NoError(t, users.CreateUser(ctx, u))

		a := domain.NewAnswer(u.ID, current, "Rome", time.Now())
		require.NoError(t, answers.CreateAnswer(ctx, a))

		deleted, err := questions.DeleteQuestion(ctx, current.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		history, err := answers.ListAnswersByUser(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, current.ID, history[0].QuestionID)
	})

	t.Run("invalid team is rejected by the schema", func(t *testing.T) {
		u := domain.NewUser("rogue", "hash", false)
		require.NoError(t, users.CreateUser(ctx, u))
		_, err := users.AssignTeam(ctx, u.ID, domain.Team("Purple"))
		assert.Error(t, err)
	})
}
