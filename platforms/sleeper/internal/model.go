// Package internal holds the Sleeper wire-format schema.
package internal

type League struct {
	Name         string          `json:"name"`
	TotalRosters int             `json:"total_rosters"`
	Status       string          `json:"status"`
	Settings     *LeagueSettings `json:"settings"`
}

type LeagueSettings struct {
	PlayoffWeekStart int `json:"playoff_week_start"`
	PlayoffTeams     int `json:"playoff_teams"`
	Leg              int `json:"leg"`
}

type Roster struct {
	RosterID int             `json:"roster_id"`
	OwnerID  string          `json:"owner_id"`
	Players  []string        `json:"players"`
	Starters []string        `json:"starters"`
	Settings *RosterSettings `json:"settings"`
	Metadata *RosterMetadata `json:"metadata"`
}

type RosterSettings struct {
	Wins               int `json:"wins"`
	Losses             int `json:"losses"`
	Ties               int `json:"ties"`
	Fpts               int `json:"fpts"`
	FptsDecimal        int `json:"fpts_decimal"`
	FptsAgainst        int `json:"fpts_against"`
	FptsAgainstDecimal int `json:"fpts_against_decimal"`
}

type RosterMetadata struct {
	Streak string `json:"streak"`
}

type User struct {
	UserID      string        `json:"user_id"`
	DisplayName string        `json:"display_name"`
	Username    string        `json:"username"`
	Metadata    *UserMetadata `json:"metadata"`
}

type UserMetadata struct {
	TeamName string `json:"team_name"`
}

type Matchup struct {
	RosterID      int                `json:"roster_id"`
	MatchupID     int                `json:"matchup_id"`
	Points        float64            `json:"points"`
	Players       []string           `json:"players"`
	Starters      []string           `json:"starters"`
	PlayersPoints map[string]float64 `json:"players_points"`
}

type BracketMatch struct {
	Round int `json:"r"`
	Match int `json:"m"`
	Team1 int `json:"t1"`
	Team2 int `json:"t2"`
	Win   int `json:"w"`
	Lose  int `json:"l"`
}

type Player struct {
	PlayerID  string `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Position  string `json:"position"`
}
