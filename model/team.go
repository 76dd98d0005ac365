package model

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

type StreakType string

const (
	STREAK_WIN  StreakType = "W"
	STREAK_LOSS StreakType = "L"
)

type Streak struct {
	Type   StreakType `json:"type"`
	Length int        `json:"length"`
}

func (s *Streak) Display() string {
	if s == nil || s.Length <= 0 {
		return "-"
	}
	return fmt.Sprintf("%s%d", s.Type, s.Length)
}

// TopPlayer is one of the best scoring players on a team's roster, kept for
// display and for the roast request payload.
type TopPlayer struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Points   float64  `json:"points"`
}

// Team is the provider-agnostic view of a fantasy team. Adapters construct a
// brand new Team on every fetch, they never mutate one in place.
type Team struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	OwnerName     string      `json:"owner_name"`
	Wins          int         `json:"wins"`
	Losses        int         `json:"losses"`
	Ties          int         `json:"ties"`
	PointsFor     float64     `json:"points_for"`
	PointsAgainst float64     `json:"points_against"`
	PowerScore    float64     `json:"power_score"`
	Rank          int         `json:"rank"`
	Streak        *Streak     `json:"streak,omitempty"`
	TopPlayers    []TopPlayer `json:"top_players,omitempty"`
	Commentary    string      `json:"commentary,omitempty"`
}

func (t *Team) Record() string {
	if t.Ties > 0 {
		return fmt.Sprintf("%d-%d-%d", t.Wins, t.Losses, t.Ties)
	}
	return fmt.Sprintf("%d-%d", t.Wins, t.Losses)
}

// Equal compares the intrinsic stats of two teams. Rank and commentary are
// deliberately excluded: they change independently of the underlying data, and
// two snapshots of the same team differing only in those must compare equal so
// change detection does not fire spuriously.
func (t *Team) Equal(o *Team) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.fingerprintKey() == o.fingerprintKey()
}

func (t *Team) fingerprintKey() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s|%s|%d|%d|%d|%.4f|%.4f|%s",
		t.ID, t.Name, t.OwnerName, t.Wins, t.Losses, t.Ties,
		t.PointsFor, t.PointsAgainst, t.Streak.Display())
	for _, p := range t.TopPlayers {
		fmt.Fprintf(&b, "|%s:%.4f", p.ID, p.Points)
	}
	return b.String()
}

// TeamsFingerprint produces a stable content hash over a list of teams,
// excluding rank and commentary. It is the change-detection key used to decide
// whether cached roasts are still valid for the current data.
func TeamsFingerprint(teams []Team) string {
	keys := make([]string, 0, len(teams))
	for i := range teams {
		keys = append(keys, teams[i].fingerprintKey())
	}
	slices.Sort(keys)

	b, _ := json.Marshal(keys)
	return fmt.Sprintf("%x", sha256.Sum256(b))
}
