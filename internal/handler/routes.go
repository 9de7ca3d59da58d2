package handler

import (
	"github.com/gofiber/fiber/v2"

	"quiz-league/internal/middleware"
	"quiz-league/internal/service"
)

// Handlers bundles everything SetupRoutes mounts.
type Handlers struct {
	Questions   *QuestionHandler
	Answers     *AnswerHandler
	Leaderboard *LeaderboardHandler
	Users       *UserHandler
	Health      *HealthHandler
	Tokens      service.TokenService
	Validator   *middleware.ValidationMiddleware
}

// SetupRoutes registers the public API on app.
func SetupRoutes(app *fiber.App, h Handlers) {
	app.Get("/health", h.Health.Check)

	api := app.Group("/api", middleware.Protected(h.Tokens))
	admin := middleware.AdminOnly()
	id := h.Validator.ValidateIDParam()

	questions := api.Group("/questions")
	questions.Get("/weekly", h.Questions.GetWeekly)
	questions.Get("/archived", admin, h.Questions.ListArchived)
	questions.Get("/", admin, h.Questions.ListActive)
	questions.Post("/", admin, h.Questions.Create)
	questions.Patch("/:id", admin, id, h.Questions.Update)
	questions.Delete("/:id", admin, id, h.Questions.Delete)
	questions.Post("/:id/archive", admin, id, h.Questions.Archive)
	questions.Post("/:id/unarchive", admin, id, h.Questions.Unarchive)

	api.Post("/answers", h.Answers.Submit)
	api.Get("/answers", h.Answers.ListMine)

	api.Get("/leaderboard", h.Leaderboard.Individual)
	api.Get("/analytics/teams", h.Leaderboard.TeamStats)
	api.Get("/analytics/daily", admin, h.Leaderboard.DailyStats)
	api.Get("/teams", h.Leaderboard.Teams)

	api.Post("/assign-team", h.Users.AssignTeam)
	api.Get("/users/me", h.Users.GetMyProfile)

	adminGroup := api.Group("/admin", admin)
	adminGroup.Post("/users/:id/reset", id, h.Users.ResetWeekly)
	adminGroup.Get("/cache-settings", h.Users.CacheSettings)
}
