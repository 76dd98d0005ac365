package model

import "time"

// WeeklyRoastCache holds the generated roasts for one league and week.
//
// Teams is the snapshot of the league at generation time so past weeks render
// with the scores the roasts were written against, not current ones.
// InputHash is the TeamsFingerprint of the inputs used; when the current
// fingerprint still matches, regeneration is skipped.
type WeeklyRoastCache struct {
	LeagueID  string            `json:"league_id"`
	Week      int               `json:"week"`
	Generated time.Time         `json:"generated"`
	Roasts    map[string]string `json:"roasts"`
	Teams     []Team            `json:"teams,omitempty"`
	InputHash string            `json:"input_hash,omitempty"`
}
