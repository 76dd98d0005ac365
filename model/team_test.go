package model

import (
	"testing"
)

func testTeam() Team {
	return Team{
		ID:            "1",
		Name:          "The Commissioners",
		OwnerName:     "Pat Jones",
		Wins:          7,
		Losses:        1,
		PointsFor:     1200.5,
		PointsAgainst: 801.25,
		Streak:        &Streak{Type: STREAK_WIN, Length: 4},
		TopPlayers: []TopPlayer{
			{ID: "6904", Name: "Jalen Hurts", Position: POS_QB, Points: 28.4},
		},
	}
}

func TestTeamEqualIgnoresRankAndCommentary(t *testing.T) {
	a := testTeam()
	b := testTeam()
	b.Rank = 3
	b.Commentary = "still starting kickers in the flex"
	b.PowerScore = 0.91

	if !a.Equal(&b) {
		t.Errorf("teams differing only in rank/commentary/power score should be equal")
	}

	if TeamsFingerprint([]Team{a}) != TeamsFingerprint([]Team{b}) {
		t.Errorf("fingerprints should match when only rank/commentary differ")
	}
}

func TestTeamEqualDetectsStatChanges(t *testing.T) {
	a := testTeam()

	b := testTeam()
	b.Wins = 8
	if a.Equal(&b) {
		t.Errorf("teams with different records should not be equal")
	}

	c := testTeam()
	c.PointsFor += 101.3
	if TeamsFingerprint([]Team{a}) == TeamsFingerprint([]Team{c}) {
		t.Errorf("fingerprint should change when points change")
	}
}

func TestTeamsFingerprintIsOrderInsensitive(t *testing.T) {
	a := testTeam()
	b := testTeam()
	b.ID = "2"
	b.Name = "Taco Tuesday"

	if TeamsFingerprint([]Team{a, b}) != TeamsFingerprint([]Team{b, a}) {
		t.Errorf("fingerprint should not depend on team order")
	}
}

func TestRecord(t *testing.T) {
	team := Team{Wins: 7, Losses: 1}
	if got := team.Record(); got != "7-1" {
		t.Errorf("expected 7-1, got %s", got)
	}

	team.Ties = 2
	if got := team.Record(); got != "7-1-2" {
		t.Errorf("expected 7-1-2, got %s", got)
	}
}

func TestStreakDisplay(t *testing.T) {
	s := &Streak{Type: STREAK_LOSS, Length: 3}
	if got := s.Display(); got != "L3" {
		t.Errorf("expected L3, got %s", got)
	}

	var nilStreak *Streak
	if got := nilStreak.Display(); got != "-" {
		t.Errorf("expected - for nil streak, got %s", got)
	}
}
