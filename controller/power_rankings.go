package controller

import (
	"slices"

	"github.com/nacallas/SkidmarkOS-sub000/model"
)

// Weights for the power score components.
const (
	recordWeight        = 0.6
	pointsForWeight     = 0.3
	pointsAgainstWeight = 0.1
)

// CalculatePowerRankings scores and ranks a league's teams. It is pure: the
// input is never mutated, and identical input always produces identical
// output, including tie order (the sort is stable with respect to input
// order).
//
// powerScore = 0.6*winPct + 0.3*pointsForNorm + 0.1*pointsAgainstNorm, where
// winPct counts a tie as half a win, pointsForNorm is pointsFor divided by
// the league max, and pointsAgainstNorm is 1 - pointsAgainst/leagueMax. When
// a league-wide max is 0 the normalized value is defined as 0 rather than
// 0/0.
func CalculatePowerRankings(teams []model.Team) []model.Team {
	ranked := make([]model.Team, len(teams))
	copy(ranked, teams)

	var maxPointsFor, maxPointsAgainst float64
	for i := range ranked {
		maxPointsFor = max(maxPointsFor, ranked[i].PointsFor)
		maxPointsAgainst = max(maxPointsAgainst, ranked[i].PointsAgainst)
	}

	for i := range ranked {
		t := &ranked[i]

		winPct := 0.0
		if games := t.Wins + t.Losses + t.Ties; games > 0 {
			winPct = (float64(t.Wins) + 0.5*float64(t.Ties)) / float64(games)
		}

		pointsForNorm := 0.0
		if maxPointsFor > 0 {
			pointsForNorm = t.PointsFor / maxPointsFor
		}

		pointsAgainstNorm := 0.0
		if maxPointsAgainst > 0 {
			pointsAgainstNorm = 1 - t.PointsAgainst/maxPointsAgainst
		}

		t.PowerScore = recordWeight*winPct + pointsForWeight*pointsForNorm + pointsAgainstWeight*pointsAgainstNorm
	}

	slices.SortStableFunc(ranked, func(a, b model.Team) int {
		switch {
		case a.PowerScore > b.PowerScore:
			return -1
		case a.PowerScore < b.PowerScore:
			return 1
		default:
			return 0
		}
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked
}
