package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"quiz-league/internal/domain"
	"quiz-league/internal/handler"
	"quiz-league/internal/middleware"
	"quiz-league/internal/service"
	"quiz-league/internal/week"
)

type testDeps struct {
	questions   *MockQuestionService
	answers     *MockAnswerService
	leaderboard *MockLeaderboardService
	ledger      *MockScoreLedger
	cache       *service.QuestionCache
	checks      map[string]handler.CheckFunc
	calc        *week.Calculator
}

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

// newDeps pins the clock to Wednesday 2025-06-11 noon in New York.
func newDeps(t *testing.T) *testDeps {
	loc := newYork(t)
	now := time.Date(2025, 6, 11, 12, 0, 0, 0, loc)
	return &testDeps{
		questions:   &MockQuestionService{},
		answers:     &MockAnswerService{},
		leaderboard: &MockLeaderboardService{},
		ledger:      &MockScoreLedger{},
		cache:       service.NewQuestionCache(nil, domain.CacheSettings{Enabled: true, QuestionsTTL: 5 * time.Minute}),
		checks:      map[string]handler.CheckFunc{},
		calc:        week.NewCalculator(loc, func() time.Time { return now }),
	}
}

func (d *testDeps) app() *fiber.App {
	validator := middleware.NewValidationMiddleware()
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler.SetupRoutes(app, handler.Handlers{
		Questions:   handler.NewQuestionHandler(d.questions, d.calc, validator),
		Answers:     handler.NewAnswerHandler(d.answers, validator),
		Leaderboard: handler.NewLeaderboardHandler(d.leaderboard),
		Users:       handler.NewUserHandler(d.ledger, d.cache, validator),
		Health:      handler.NewHealthHandler(d.checks, time.Second),
		Tokens:      &MockTokenService{},
		Validator:   validator,
	})
	return app
}

// do sends a request as token ("" for anonymous) and returns status and body.
func do(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(middleware.AuthorizationHeader, middleware.BearerSchema+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode(t *testing.T, body []byte, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(body, out), string(body))
}
