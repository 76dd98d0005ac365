package model

import "time"

var (
	PlatformESPN    = "espn"
	PlatformSleeper = "sleeper"
)

func IsPlatformSupported(platform string) bool {
	return platform == PlatformESPN || platform == PlatformSleeper
}

// LeagueSettings describes the schedule shape of a league.
type LeagueSettings struct {
	PlayoffStartWeek        int `json:"playoff_start_week"`
	PlayoffTeamCount        int `json:"playoff_team_count"`
	CurrentWeek             int `json:"current_week"`
	TotalRegularSeasonWeeks int `json:"total_regular_season_weeks"`
}

// LeagueConnection is the user-facing record of a linked league. ID is
// internal and stable; ExternalID is the provider's league id.
type LeagueConnection struct {
	ID           string    `json:"id"`
	ExternalID   string    `json:"external_id"`
	Platform     string    `json:"platform"`
	Name         string    `json:"name"`
	LastUpdated  time.Time `json:"last_updated"`
	AuthRequired bool      `json:"auth_required"`
}
