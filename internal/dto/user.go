package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"quiz-league/internal/domain"
)

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	UserID  int64 `json:"user_id"`
	IsAdmin bool  `json:"is_admin"`
	jwt.RegisteredClaims
}

// AssignTeamRequest is the body of POST /api/assign-team. An empty team
// assigns a random one.
type AssignTeamRequest struct {
	Team string `json:"team"`
}

type AchievementResponse struct {
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	EarnedAt    time.Time `json:"earnedAt"`
}

// UserResponse is a user's public standing.
type UserResponse struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Team          string `json:"team,omitempty"`
	TeamAssigned  bool   `json:"teamAssigned"`
	WeeklyScore   int    `json:"weeklyScore"`
	WeeklyQuizzes int    `json:"weeklyQuizzes"`
	CurrentStreak int    `json:"currentStreak"`
}

// ProfileResponse is the caller's own view of themselves.
type ProfileResponse struct {
	UserResponse
	IsAdmin      bool                  `json:"isAdmin"`
	Achievements []AchievementResponse `json:"achievements"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		Team:          u.TeamName(),
		TeamAssigned:  u.TeamAssigned,
		WeeklyScore:   u.WeeklyScore,
		WeeklyQuizzes: u.WeeklyQuizzes,
		CurrentStreak: u.CurrentStreak,
	}
}

func NewProfileResponse(u *domain.User) ProfileResponse {
	return ProfileResponse{
		UserResponse: NewUserResponse(u),
		IsAdmin:      u.IsAdmin,
		Achievements: NewAchievementResponses(u.Achievements),
	}
}

func NewAchievementResponses(achievements []domain.Achievement) []AchievementResponse {
	out := make([]AchievementResponse, 0, len(achievements))
	for _, a := range achievements {
		out = append(out, AchievementResponse{
			Code:        a.Code,
			Name:        a.Name,
			Description: a.Description,
			EarnedAt:    a.EarnedAt,
		})
	}
	return out
}
