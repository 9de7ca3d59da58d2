package service

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"quiz-league/internal/domain"
	"quiz-league/internal/week"
)

// LeaderboardService derives standings from users and this week's answers on
// every call. Nothing is cached.
type LeaderboardService interface {
	Individual(ctx context.Context) ([]*domain.User, error)
	TeamStats(ctx context.Context) ([]domain.TeamStats, error)
	DailyStats(ctx context.Context) ([]domain.DailyStats, error)
	GroupByTeam(ctx context.Context) ([]domain.TeamGroup, error)
}

type leaderboardService struct {
	users          domain.UserRepository
	answers        domain.AnswerRepository
	calc           *week.Calculator
	answersPerQuiz int
}

func NewLeaderboardService(users domain.UserRepository, answers domain.AnswerRepository, calc *week.Calculator, answersPerQuiz int) LeaderboardService {
	return &leaderboardService{users: users, answers: answers, calc: calc, answersPerQuiz: answersPerQuiz}
}

func (s *leaderboardService) Individual(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to list users", err)
	}
	return RankIndividuals(users), nil
}

func (s *leaderboardService) TeamStats(ctx context.Context) ([]domain.TeamStats, error) {
	users, answers, err := s.loadWeek(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeTeamStats(users, answers, s.answersPerQuiz), nil
}

func (s *leaderboardService) DailyStats(ctx context.Context) ([]domain.DailyStats, error) {
	users, answers, err := s.loadWeek(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeDailyStats(s.calc, s.calc.WeekDays(), answers, len(users), s.answersPerQuiz), nil
}

func (s *leaderboardService) GroupByTeam(ctx context.Context) ([]domain.TeamGroup, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to list users", err)
	}
	return GroupUsersByTeam(users), nil
}

// loadWeek fetches all users and the answers since the start of the current
// week concurrently.
func (s *leaderboardService) loadWeek(ctx context.Context) ([]*domain.User, []*domain.Answer, error) {
	var (
		users   []*domain.User
		answers []*domain.Answer
	)
	since := s.calc.CurrentWeek()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.users.ListUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		answers, err = s.answers.ListAnswersSince(gctx, since)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, domain.NewPersistenceError("failed to load weekly standings", err)
	}
	return users, answers, nil
}

// RankIndividuals orders users by weekly score, highest first. Ties keep the
// input order, which the repository returns by id.
func RankIndividuals(users []*domain.User) []*domain.User {
	ranked := make([]*domain.User, len(users))
	copy(ranked, users)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].WeeklyScore > ranked[j].WeeklyScore
	})
	return ranked
}

// ComputeTeamStats aggregates team members only; users without a team are
// skipped. A member counts as having completed the week when they have at
// least answersPerQuiz answers in answers.
func ComputeTeamStats(users []*domain.User, answers []*domain.Answer, answersPerQuiz int) []domain.TeamStats {
	answerCounts := make(map[int64]int, len(users))
	for _, a := range answers {
		answerCounts[a.UserID]++
	}

	type acc struct {
		total, quizzes, members, completed int
	}
	byTeam := make(map[domain.Team]*acc, len(domain.AllTeams))
	for _, u := range users {
		if !u.HasTeam() {
			continue
		}
		t := byTeam[*u.Team]
		if t == nil {
			t = &acc{}
			byTeam[*u.Team] = t
		}
		t.members++
		t.total += u.WeeklyScore
		t.quizzes += u.WeeklyQuizzes
		if answerCounts[u.ID] >= answersPerQuiz {
			t.completed++
		}
	}

	stats := make([]domain.TeamStats, 0, len(byTeam))
	for _, team := range domain.AllTeams {
		t, ok := byTeam[team]
		if !ok {
			continue
		}
		stats = append(stats, domain.TeamStats{
			TeamName:                   string(team),
			TotalScore:                 t.total,
			AverageScore:               float64(t.total) / float64(t.members),
			CompletedQuizzes:           t.quizzes,
			Members:                    t.members,
			WeeklyCompletionPercentage: 100 * float64(t.completed) / float64(t.members),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].WeeklyCompletionPercentage != stats[j].WeeklyCompletionPercentage {
			return stats[i].WeeklyCompletionPercentage > stats[j].WeeklyCompletionPercentage
		}
		return stats[i].AverageScore > stats[j].AverageScore
	})
	return stats
}

// ComputeDailyStats reports answer activity for each of days. Every
// answersPerQuiz-th answer landing on a day counts as one completed quiz for
// that day, regardless of who submitted it.
func ComputeDailyStats(calc *week.Calculator, days []time.Time, answers []*domain.Answer, totalUsers, answersPerQuiz int) []domain.DailyStats {
	perDay := make(map[string]int, len(days))
	for _, a := range answers {
		perDay[calc.FormatDate(a.AnsweredAt)]++
	}

	stats := make([]domain.DailyStats, 0, len(days))
	for _, day := range days {
		total := perDay[calc.FormatDate(day)]
		completed := 0
		if answersPerQuiz > 0 {
			completed = total / answersPerQuiz
		}
		rate := 0.0
		if totalUsers > 0 {
			rate = 100 * float64(completed) / float64(totalUsers)
		}
		stats = append(stats, domain.DailyStats{
			Date:             day,
			Day:              day.Weekday().String(),
			TotalAnswers:     total,
			CompletedQuizzes: completed,
			CompletionRate:   rate,
		})
	}
	return stats
}

// GroupUsersByTeam is the display grouping: every team in canonical order,
// followed by an Unassigned bucket when any user has no team.
func GroupUsersByTeam(users []*domain.User) []domain.TeamGroup {
	members := make(map[domain.Team][]*domain.User, len(domain.AllTeams))
	var unassigned []*domain.User
	for _, u := range users {
		if !u.HasTeam() {
			unassigned = append(unassigned, u)
			continue
		}
		members[*u.Team] = append(members[*u.Team], u)
	}

	groups := make([]domain.TeamGroup, 0, len(domain.AllTeams)+1)
	for _, team := range domain.AllTeams {
		groups = append(groups, domain.TeamGroup{TeamName: string(team), Members: members[team]})
	}
	if len(unassigned) > 0 {
		groups = append(groups, domain.TeamGroup{TeamName: domain.UnassignedTeam, Members: unassigned})
	}
	return groups
}
