package domain

// Team is one of the fixed teams a user can belong to.
type Team string

const (
	TeamRed    Team = "Red"
	TeamBlue   Team = "Blue"
	TeamGreen  Team = "Green"
	TeamYellow Team = "Yellow"

	// UnassignedTeam labels users without a team in display groupings only.
	UnassignedTeam = "Unassigned"
)

// AllTeams lists the teams in their canonical display order.
var AllTeams = []Team{TeamRed, TeamBlue, TeamGreen, TeamYellow}

// ParseTeam validates a team name.
func ParseTeam(name string) (Team, error) {
	for _, t := range AllTeams {
		if string(t) == name {
			return t, nil
		}
	}
	return "", NewInvalidTeamError(name)
}

// TeamNames returns the allowed team names.
func TeamNames() []string {
	names := make([]string, len(AllTeams))
	for i, t := range AllTeams {
		names[i] = string(t)
	}
	return names
}
