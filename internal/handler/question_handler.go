package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"quiz-league/internal/domain"
	"quiz-league/internal/dto"
	"quiz-league/internal/logger"
	"quiz-league/internal/middleware"
	"quiz-league/internal/service"
	"quiz-league/internal/week"
)

// QuestionHandler serves the weekly question bank.
type QuestionHandler struct {
	questions service.QuestionService
	calc      *week.Calculator
	validator *middleware.ValidationMiddleware
}

func NewQuestionHandler(questions service.QuestionService, calc *week.Calculator, validator *middleware.ValidationMiddleware) *QuestionHandler {
	return &QuestionHandler{questions: questions, calc: calc, validator: validator}
}

// GetWeekly handles GET /api/questions/weekly. Players never see the correct
// answer here.
func (h *QuestionHandler) GetWeekly(c *fiber.Ctx) error {
	questions, err := h.questions.ListCurrentWeek(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPlayableQuestionResponses(questions, h.calc.Location()))
}

// ListActive handles GET /api/questions.
func (h *QuestionHandler) ListActive(c *fiber.Ctx) error {
	questions, err := h.questions.ListActive(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuestionResponses(questions, h.calc.Location()))
}

// ListArchived handles GET /api/questions/archived.
func (h *QuestionHandler) ListArchived(c *fiber.Ctx) error {
	questions, err := h.questions.ListArchived(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuestionResponses(questions, h.calc.Location()))
}

// Create handles POST /api/questions.
func (h *QuestionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := h.validator.BindJSON(c, &req); err != nil {
		return err
	}
	weekOf, err := h.parseWeekOf(req.WeekOf)
	if err != nil {
		return err
	}

	q := domain.NewQuestion(req.Question, req.Options, req.CorrectAnswer, req.Category, req.Explanation, weekOf)
	created, err := h.questions.Create(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewQuestionResponse(created, h.calc.Location()))
}

// Update handles PATCH /api/questions/:id.
func (h *QuestionHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateQuestionRequest
	if err := h.validator.BindJSON(c, &req); err != nil {
		return err
	}
	patch := domain.QuestionPatch{
		Question:      req.Question,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Category:      req.Category,
		Explanation:   req.Explanation,
		IsArchived:    req.IsArchived,
	}
	if req.WeekOf != nil {
		weekOf, err := h.parseWeekOf(*req.WeekOf)
		if err != nil {
			return err
		}
		patch.WeekOf = &weekOf
	}

	updated, err := h.questions.Update(c.UserContext(), middleware.ValidatedID(c), patch)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuestionResponse(updated, h.calc.Location()))
}

// Delete handles DELETE /api/questions/:id.
func (h *QuestionHandler) Delete(c *fiber.Ctx) error {
	id := middleware.ValidatedID(c)
	if err := h.questions.Delete(c.UserContext(), id); err != nil {
		return err
	}
	logger.Get().Info("Question removed by admin", zap.Int64("question_id", id), zap.Any("admin_id", c.Locals(middleware.UserIDKey)))
	return c.SendStatus(fiber.StatusNoContent)
}

// Archive handles POST /api/questions/:id/archive.
func (h *QuestionHandler) Archive(c *fiber.Ctx) error {
	q, err := h.questions.Archive(c.UserContext(), middleware.ValidatedID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuestionResponse(q, h.calc.Location()))
}

// Unarchive handles POST /api/questions/:id/unarchive. With
// ?moveToCurrentWeek=true the question is also retargeted at this week.
func (h *QuestionHandler) Unarchive(c *fiber.Ctx) error {
	move := c.QueryBool("moveToCurrentWeek", false)
	q, err := h.questions.Unarchive(c.UserContext(), middleware.ValidatedID(c), move)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuestionResponse(q, h.calc.Location()))
}

func (h *QuestionHandler) parseWeekOf(raw string) (time.Time, error) {
	weekOf, err := h.calc.ParseDate(raw)
	if err != nil {
		return time.Time{}, domain.ValidationErrors{domain.NewInvalidFormatError("weekOf", raw)}
	}
	return weekOf, nil
}
