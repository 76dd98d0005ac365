package model

// PlayoffBracketEntry is one team's position in the playoff bracket.
//
// IsConsolation and IsChampionship are never both true. IsEliminated and
// IsChampionship can both be true: that is the team that lost the championship
// game, which is exactly the distinction roast generation wants.
type PlayoffBracketEntry struct {
	TeamID         string `json:"team_id"`
	Seed           int    `json:"seed"`
	Round          int    `json:"round"`
	OpponentID     string `json:"opponent_id,omitempty"`
	IsEliminated   bool   `json:"is_eliminated"`
	IsConsolation  bool   `json:"is_consolation"`
	IsChampionship bool   `json:"is_championship"`
}
