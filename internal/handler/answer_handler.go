package handler

import (
	"github.com/gofiber/fiber/v2"

	"quiz-league/internal/dto"
	"quiz-league/internal/middleware"
	"quiz-league/internal/service"
)

type AnswerHandler struct {
	answers   service.AnswerService
	validator *middleware.ValidationMiddleware
}

func NewAnswerHandler(answers service.AnswerService, validator *middleware.ValidationMiddleware) *AnswerHandler {
	return &AnswerHandler{answers: answers, validator: validator}
}

// Submit handles POST /api/answers. Correctness is decided by the server.
func (h *AnswerHandler) Submit(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return err
	}
	var req dto.SubmitAnswerRequest
	if err := h.validator.BindJSON(c, &req); err != nil {
		return err
	}

	result, err := h.answers.Submit(c.UserContext(), userID, req.QuestionID, req.Answer)
	if err != nil {
		return err
	}

	resp := dto.SubmitAnswerResponse{
		Answer:        dto.NewAnswerResponse(result.Answer),
		QuizCompleted: result.QuizCompleted,
	}
	if len(result.Achievements) > 0 {
		resp.Achievements = dto.NewAchievementResponses(result.Achievements)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListMine handles GET /api/answers.
func (h *AnswerHandler) ListMine(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return err
	}
	answers, err := h.answers.ListForUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAnswerResponses(answers))
}
