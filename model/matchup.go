package model

// PlayerStat is one player's line within a single matchup.
type PlayerStat struct {
	PlayerID  string   `json:"player_id"`
	Name      string   `json:"name"`
	Position  Position `json:"position"`
	Points    float64  `json:"points"`
	IsStarter bool     `json:"is_starter"`
}

// WeeklyMatchup is a single head-to-head result for one week. Home/away is an
// arbitrary but stable assignment made by the adapter that produced it.
type WeeklyMatchup struct {
	Week        int          `json:"week"`
	HomeTeamID  string       `json:"home_team_id"`
	AwayTeamID  string       `json:"away_team_id"`
	HomeScore   float64      `json:"home_score"`
	AwayScore   float64      `json:"away_score"`
	HomePlayers []PlayerStat `json:"home_players,omitempty"`
	AwayPlayers []PlayerStat `json:"away_players,omitempty"`
}
