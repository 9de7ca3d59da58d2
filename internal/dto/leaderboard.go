package dto

import (
	"time"

	"quiz-league/internal/domain"
)

// LeaderboardEntry is one row of the individual ranking.
type LeaderboardEntry struct {
	Rank int `json:"rank"`
	UserResponse
}

// TeamGroupResponse lists the members of one team, or of the Unassigned bucket.
type TeamGroupResponse struct {
	TeamName string         `json:"teamName"`
	Members  []UserResponse `json:"members"`
}

// TeamStatsResponse is one team's row in the weekly team analytics.
type TeamStatsResponse struct {
	TeamName                   string  `json:"teamName"`
	TotalScore                 int     `json:"totalScore"`
	AverageScore               float64 `json:"averageScore"`
	CompletedQuizzes           int     `json:"completedQuizzes"`
	Members                    int     `json:"members"`
	WeeklyCompletionPercentage float64 `json:"weeklyCompletionPercentage"`
}

type DailyStatsResponse struct {
	Date             string  `json:"date"`
	Day              string  `json:"day"`
	TotalAnswers     int     `json:"totalAnswers"`
	CompletedQuizzes int     `json:"completedQuizzes"`
	CompletionRate   float64 `json:"completionRate"`
}

// CacheSettingsResponse reports the effective question cache settings.
type CacheSettingsResponse struct {
	Enabled             bool    `json:"enabled"`
	QuestionsTTLSeconds float64 `json:"questionsTtlSeconds"`
}

func NewLeaderboard(users []*domain.User) []LeaderboardEntry {
	out := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		out = append(out, LeaderboardEntry{Rank: i + 1, UserResponse: NewUserResponse(u)})
	}
	return out
}

func NewTeamGroupResponses(groups []domain.TeamGroup) []TeamGroupResponse {
	out := make([]TeamGroupResponse, 0, len(groups))
	for _, g := range groups {
		members := make([]UserResponse, 0, len(g.Members))
		for _, u := range g.Members {
			members = append(members, NewUserResponse(u))
		}
		out = append(out, TeamGroupResponse{TeamName: g.TeamName, Members: members})
	}
	return out
}

func NewTeamStatsResponses(stats []domain.TeamStats) []TeamStatsResponse {
	out := make([]TeamStatsResponse, 0, len(stats))
	for _, s := range stats {
		out = append(out, TeamStatsResponse{
			TeamName:                   s.TeamName,
			TotalScore:                 s.TotalScore,
			AverageScore:               s.AverageScore,
			CompletedQuizzes:           s.CompletedQuizzes,
			Members:                    s.Members,
			WeeklyCompletionPercentage: s.WeeklyCompletionPercentage,
		})
	}
	return out
}

func NewDailyStatsResponses(stats []domain.DailyStats) []DailyStatsResponse {
	out := make([]DailyStatsResponse, 0, len(stats))
	for _, s := range stats {
		out = append(out, DailyStatsResponse{
			Date:             s.Date.Format(DateLayout),
			Day:              s.Day,
			TotalAnswers:     s.TotalAnswers,
			CompletedQuizzes: s.CompletedQuizzes,
			CompletionRate:   s.CompletionRate,
		})
	}
	return out
}

func NewCacheSettingsResponse(s domain.CacheSettings) CacheSettingsResponse {
	return CacheSettingsResponse{
		Enabled:             s.Enabled,
		QuestionsTTLSeconds: s.QuestionsTTL.Seconds(),
	}
}

// HealthResponse reports dependency status for GET /health.
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	CheckedAt time.Time         `json:"checkedAt"`
}
