package model

import "time"

type SeasonPhase string

const (
	PhaseRegularSeason SeasonPhase = "regular_season"
	PhasePlayoffs      SeasonPhase = "playoffs"
	PhaseOffseason     SeasonPhase = "offseason"
)

// DetectPhase classifies a week as regular season or playoffs. The boundary
// week itself is playoffs.
func DetectPhase(currentWeek, playoffStartWeek int) SeasonPhase {
	if currentWeek >= playoffStartWeek {
		return PhasePlayoffs
	}
	return PhaseRegularSeason
}

// DetectPhaseAt additionally considers the calendar. February through August
// is unconditionally the offseason: provider week numbers are stale outside
// the active season and cannot be trusted.
func DetectPhaseAt(now time.Time, currentWeek, playoffStartWeek int) SeasonPhase {
	if now.Month() >= time.February && now.Month() <= time.August {
		return PhaseOffseason
	}
	return DetectPhase(currentWeek, playoffStartWeek)
}
