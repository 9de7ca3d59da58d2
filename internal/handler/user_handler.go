package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"quiz-league/internal/domain"
	"quiz-league/internal/dto"
	"quiz-league/internal/logger"
	"quiz-league/internal/middleware"
	"quiz-league/internal/service"
)

type UserHandler struct {
	ledger    service.ScoreLedger
	cache     *service.QuestionCache
	validator *middleware.ValidationMiddleware
}

func NewUserHandler(ledger service.ScoreLedger, cache *service.QuestionCache, validator *middleware.ValidationMiddleware) *UserHandler {
	return &UserHandler{ledger: ledger, cache: cache, validator: validator}
}

// GetMyProfile handles GET /api/users/me.
func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return err
	}
	user, err := h.ledger.GetProfile(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProfileResponse(user))
}

// AssignTeam handles POST /api/assign-team. An empty team picks one at random.
func (h *UserHandler) AssignTeam(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return err
	}
	var req dto.AssignTeamRequest
	if len(c.Body()) > 0 {
		if err := h.validator.BindJSON(c, &req); err != nil {
			return err
		}
	}

	var user *domain.User
	if team := strings.TrimSpace(req.Team); team == "" {
		user, err = h.ledger.AssignRandomTeam(c.UserContext(), userID)
	} else {
		user, err = h.ledger.AssignTeam(c.UserContext(), userID, team)
	}
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProfileResponse(user))
}

// ResetWeekly handles POST /api/admin/users/:id/reset.
func (h *UserHandler) ResetWeekly(c *fiber.Ctx) error {
	id := middleware.ValidatedID(c)
	if err := h.ledger.ResetWeeklyAggregates(c.UserContext(), id); err != nil {
		return err
	}
	logger.Get().Info("Weekly aggregates reset by admin", zap.Int64("user_id", id), zap.Any("admin_id", c.Locals(middleware.UserIDKey)))
	return c.JSON(dto.MessageResponse{Message: "weekly aggregates reset"})
}

// CacheSettings handles GET /api/admin/cache-settings.
func (h *UserHandler) CacheSettings(c *fiber.Ctx) error {
	return c.JSON(dto.NewCacheSettingsResponse(h.cache.Settings()))
}
