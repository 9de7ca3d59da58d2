package domain

import "time"

// TeamStats is derived on every request from users and this week's answers.
type TeamStats struct {
	TeamName                   string
	TotalScore                 int
	AverageScore               float64
	CompletedQuizzes           int
	Members                    int
	WeeklyCompletionPercentage float64
}

// DailyStats reports answer activity for one day of the current week.
type DailyStats struct {
	Date             time.Time
	Day              string
	TotalAnswers     int
	CompletedQuizzes int
	CompletionRate   float64
}

// TeamGroup is a display grouping of users under a team name, including the
// "Unassigned" bucket.
type TeamGroup struct {
	TeamName string
	Members  []*User
}
