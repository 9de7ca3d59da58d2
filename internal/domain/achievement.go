package domain

import "time"

// Achievement is a badge a user earned by completing quizzes.
type Achievement struct {
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	EarnedAt    time.Time `json:"earnedAt"`
}

// AchievementContext is the state the rules are evaluated against right after
// a quiz was completed.
type AchievementContext struct {
	WeeklyScore   int
	WeeklyQuizzes int
	CurrentStreak int
	// QuizAnswers are the answers that made up the quiz just completed.
	QuizAnswers []*Answer
}

// AchievementRule awards an achievement when Earned returns true.
type AchievementRule struct {
	Code        string
	Name        string
	Description string
	Earned      func(AchievementContext) bool
}

// DefaultAchievementRules is the built-in rule set, evaluated in order.
var DefaultAchievementRules = []AchievementRule{
	{
		Code:        "first_quiz",
		Name:        "First Steps",
		Description: "Complete your first quiz",
		Earned:      func(c AchievementContext) bool { return c.WeeklyQuizzes >= 1 },
	},
	{
		Code:        "perfect_quiz",
		Name:        "Perfect Round",
		Description: "Answer every question of a quiz correctly",
		Earned: func(c AchievementContext) bool {
			if len(c.QuizAnswers) == 0 {
				return false
			}
			for _, a := range c.QuizAnswers {
				if !a.Correct {
					return false
				}
			}
			return true
		},
	},
	{
		Code:        "quiz_enthusiast",
		Name:        "Quiz Enthusiast",
		Description: "Complete five quizzes in a week",
		Earned:      func(c AchievementContext) bool { return c.WeeklyQuizzes >= 5 },
	},
	{
		Code:        "streak_3",
		Name:        "On a Roll",
		Description: "Complete a quiz three days in a row",
		Earned:      func(c AchievementContext) bool { return c.CurrentStreak >= 3 },
	},
	{
		Code:        "streak_7",
		Name:        "Week Warrior",
		Description: "Complete a quiz seven days in a row",
		Earned:      func(c AchievementContext) bool { return c.CurrentStreak >= 7 },
	},
	{
		Code:        "century",
		Name:        "Century",
		Description: "Reach 100 points in a week",
		Earned:      func(c AchievementContext) bool { return c.WeeklyScore >= 100 },
	},
}
