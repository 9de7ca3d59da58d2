package handler

import (
	"github.com/gofiber/fiber/v2"

	"quiz-league/internal/dto"
	"quiz-league/internal/service"
)

// LeaderboardHandler serves standings recomputed on every request.
type LeaderboardHandler struct {
	leaderboard service.LeaderboardService
}

func NewLeaderboardHandler(leaderboard service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

// Individual handles GET /api/leaderboard.
func (h *LeaderboardHandler) Individual(c *fiber.Ctx) error {
	users, err := h.leaderboard.Individual(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewLeaderboard(users))
}

// TeamStats handles GET /api/analytics/teams.
func (h *LeaderboardHandler) TeamStats(c *fiber.Ctx) error {
	stats, err := h.leaderboard.TeamStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTeamStatsResponses(stats))
}

// DailyStats handles GET /api/analytics/daily.
func (h *LeaderboardHandler) DailyStats(c *fiber.Ctx) error {
	stats, err := h.leaderboard.DailyStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDailyStatsResponses(stats))
}

// Teams handles GET /api/teams.
func (h *LeaderboardHandler) Teams(c *fiber.Ctx) error {
	groups, err := h.leaderboard.GroupByTeam(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTeamGroupResponses(groups))
}
