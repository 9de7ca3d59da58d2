package dto

import (
	"time"

	"quiz-league/internal/domain"
	"quiz-league/internal/week"
)

// DateLayout is the wire format of week-of dates.
const DateLayout = week.DateLayout

// CreateQuestionRequest is the body of POST /api/questions.
type CreateQuestionRequest struct {
	Question      string   `json:"question" validate:"required,max=1000"`
	Options       []string `json:"options" validate:"required,min=2,max=10,unique,dive,required,max=200"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
	Category      string   `json:"category" validate:"max=100"`
	Explanation   string   `json:"explanation" validate:"max=2000"`
	WeekOf        string   `json:"weekOf" validate:"required,datetime=2006-01-02"`
}

// UpdateQuestionRequest is the body of PATCH /api/questions/:id. Absent
// fields are left unchanged.
type UpdateQuestionRequest struct {
	Question      *string  `json:"question" validate:"omitempty,min=1,max=1000"`
	Options       []string `json:"options" validate:"omitempty,min=2,max=10,unique,dive,required,max=200"`
	CorrectAnswer *string  `json:"correctAnswer" validate:"omitempty,min=1"`
	Category      *string  `json:"category" validate:"omitempty,max=100"`
	Explanation   *string  `json:"explanation" validate:"omitempty,max=2000"`
	WeekOf        *string  `json:"weekOf" validate:"omitempty,datetime=2006-01-02"`
	IsArchived    *bool    `json:"isArchived"`
}

// QuestionResponse is the full admin view of a question.
type QuestionResponse struct {
	ID            int64     `json:"id"`
	Question      string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correctAnswer"`
	Category      string    `json:"category"`
	Explanation   string    `json:"explanation"`
	WeekOf        string    `json:"weekOf"`
	IsArchived    bool      `json:"isArchived"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PlayableQuestionResponse is what players see; the correct answer and
// explanation stay on the server.
type PlayableQuestionResponse struct {
	ID       int64    `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Category string   `json:"category"`
	WeekOf   string   `json:"weekOf"`
}

// NewQuestionResponse renders weekOf as a calendar date in loc.
func NewQuestionResponse(q *domain.Question, loc *time.Location) QuestionResponse {
	return QuestionResponse{
		ID:            q.ID,
		Question:      q.Question,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
		Category:      q.Category,
		Explanation:   q.Explanation,
		WeekOf:        q.WeekOf.In(loc).Format(DateLayout),
		IsArchived:    q.IsArchived,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}

func NewQuestionResponses(questions []*domain.Question, loc *time.Location) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, NewQuestionResponse(q, loc))
	}
	return out
}

func NewPlayableQuestionResponses(questions []*domain.Question, loc *time.Location) []PlayableQuestionResponse {
	out := make([]PlayableQuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, PlayableQuestionResponse{
			ID:       q.ID,
			Question: q.Question,
			Options:  q.Options,
			Category: q.Category,
			WeekOf:   q.WeekOf.In(loc).Format(DateLayout),
		})
	}
	return out
}
