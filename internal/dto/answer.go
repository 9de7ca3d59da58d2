package dto

import (
	"time"

	"quiz-league/internal/domain"
)

// SubmitAnswerRequest is the body of POST /api/answers. A client-supplied
// correctness flag is ignored.
type SubmitAnswerRequest struct {
	QuestionID int64  `json:"questionId" validate:"required,gt=0"`
	Answer     string `json:"answer" validate:"required,max=200"`
}

type AnswerResponse struct {
	ID         int64     `json:"id"`
	QuestionID int64     `json:"questionId"`
	Answer     string    `json:"answer"`
	Correct    bool      `json:"correct"`
	AnsweredAt time.Time `json:"answeredAt"`
}

// SubmitAnswerResponse reports the stored answer and any quiz completion.
type SubmitAnswerResponse struct {
	Answer        AnswerResponse        `json:"answer"`
	QuizCompleted bool                  `json:"quizCompleted"`
	Achievements  []AchievementResponse `json:"achievements,omitempty"`
}

func NewAnswerResponse(a *domain.Answer) AnswerResponse {
	return AnswerResponse{
		ID:         a.ID,
		QuestionID: a.QuestionID,
		Answer:     a.Answer,
		Correct:    a.Correct,
		AnsweredAt: a.AnsweredAt,
	}
}

func NewAnswerResponses(answers []*domain.Answer) []AnswerResponse {
	out := make([]AnswerResponse, 0, len(answers))
	for _, a := range answers {
		out = append(out, NewAnswerResponse(a))
	}
	return out
}
