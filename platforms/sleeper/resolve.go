package sleeper

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/nacallas/SkidmarkOS-sub000/model"
	"github.com/nacallas/SkidmarkOS-sub000/platforms/sleeper/internal"
)

func toTeam(r *internal.Roster, owner *internal.User) model.Team {
	team := model.Team{
		ID:        fmt.Sprintf("%d", r.RosterID),
		Name:      resolveTeamName(r, owner),
		OwnerName: resolveOwnerName(r, owner),
	}

	if r.Settings != nil {
		s := r.Settings
		team.Wins = max(s.Wins, 0)
		team.Losses = max(s.Losses, 0)
		team.Ties = max(s.Ties, 0)
		// Sleeper splits point totals into whole and hundredths parts.
		team.PointsFor = max(float64(s.Fpts)+float64(s.FptsDecimal)/100, 0)
		team.PointsAgainst = max(float64(s.FptsAgainst)+float64(s.FptsAgainstDecimal)/100, 0)
	}

	if r.Metadata != nil {
		team.Streak = parseStreak(r.Metadata.Streak)
	}

	return team
}

// resolveTeamName: custom team name from user metadata, then display name,
// then username, then a roster-id fallback.
func resolveTeamName(r *internal.Roster, owner *internal.User) string {
	if owner != nil {
		if owner.Metadata != nil {
			if name := strings.TrimSpace(owner.Metadata.TeamName); name != "" {
				return name
			}
		}
		if name := strings.TrimSpace(owner.DisplayName); name != "" {
			return name
		}
		if name := strings.TrimSpace(owner.Username); name != "" {
			return name
		}
	}
	return fmt.Sprintf("Team %d", r.RosterID)
}

func resolveOwnerName(r *internal.Roster, owner *internal.User) string {
	if owner != nil {
		if name := strings.TrimSpace(owner.DisplayName); name != "" {
			return name
		}
		if name := strings.TrimSpace(owner.Username); name != "" {
			return name
		}
	}
	return fmt.Sprintf("Owner %d", r.RosterID)
}

// parseStreak parses sleeper's "4W" / "2L" formatted streak.
func parseStreak(s string) *model.Streak {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return nil
	}

	length, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || length <= 0 {
		return nil
	}

	switch s[len(s)-1] {
	case 'W':
		return &model.Streak{Type: model.STREAK_WIN, Length: length}
	case 'L':
		return &model.Streak{Type: model.STREAK_LOSS, Length: length}
	default:
		return nil
	}
}

// pairMatchups groups roster entries by matchup id. The first two entries
// sharing an id become home and away, in input order; groups without exactly
// two entries are dropped. The provided points total is authoritative.
func pairMatchups(entries []internal.Matchup, week int, catalog map[string]internal.Player) []model.WeeklyMatchup {
	groups := make(map[int][]*internal.Matchup)
	order := make([]int, 0, len(entries)/2)
	for i := range entries {
		e := &entries[i]
		if e.MatchupID == 0 {
			continue
		}
		if _, found := groups[e.MatchupID]; !found {
			order = append(order, e.MatchupID)
		}
		groups[e.MatchupID] = append(groups[e.MatchupID], e)
	}

	matchups := make([]model.WeeklyMatchup, 0, len(order))
	for _, id := range order {
		g := groups[id]
		if len(g) != 2 {
			continue
		}
		home, away := g[0], g[1]

		matchups = append(matchups, model.WeeklyMatchup{
			Week:        week,
			HomeTeamID:  fmt.Sprintf("%d", home.RosterID),
			AwayTeamID:  fmt.Sprintf("%d", away.RosterID),
			HomeScore:   max(home.Points, 0),
			AwayScore:   max(away.Points, 0),
			HomePlayers: toPlayerStats(home, catalog),
			AwayPlayers: toPlayerStats(away, catalog),
		})
	}
	return matchups
}

func toPlayerStats(m *internal.Matchup, catalog map[string]internal.Player) []model.PlayerStat {
	starters := make(map[string]bool, len(m.Starters))
	for _, id := range m.Starters {
		starters[id] = true
	}

	stats := make([]model.PlayerStat, 0, len(m.Players))
	for _, id := range m.Players {
		if id == "" {
			continue
		}
		stats = append(stats, model.PlayerStat{
			PlayerID:  id,
			Name:      playerName(id, catalog),
			Position:  playerPosition(id, catalog),
			Points:    max(m.PlayersPoints[id], 0),
			IsStarter: starters[id],
		})
	}
	return stats
}

func playerName(id string, catalog map[string]internal.Player) string {
	p, found := catalog[id]
	if !found {
		return id
	}
	if p.FullName != "" {
		return p.FullName
	}
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return id
	}
	return name
}

func playerPosition(id string, catalog map[string]internal.Player) model.Position {
	p, found := catalog[id]
	if !found {
		return model.POS_UNKNOWN
	}
	return model.ParsePosition(p.Position)
}

// seedRosters derives playoff seeds the standard way: best record first,
// points for as the tiebreaker.
func seedRosters(rosters []internal.Roster) map[int]int {
	type standing struct {
		rosterID int
		wins     int
		fpts     float64
	}

	standings := make([]standing, 0, len(rosters))
	for i := range rosters {
		r := &rosters[i]
		s := standing{rosterID: r.RosterID}
		if r.Settings != nil {
			s.wins = r.Settings.Wins
			s.fpts = float64(r.Settings.Fpts) + float64(r.Settings.FptsDecimal)/100
		}
		standings = append(standings, s)
	}

	slices.SortStableFunc(standings, func(a, b standing) int {
		if a.wins != b.wins {
			return b.wins - a.wins
		}
		switch {
		case a.fpts > b.fpts:
			return -1
		case a.fpts < b.fpts:
			return 1
		default:
			return 0
		}
	})

	seeds := make(map[int]int, len(standings))
	for i, s := range standings {
		seeds[s.rosterID] = i + 1
	}
	return seeds
}

// parseBrackets merges the winners and losers bracket lists into canonical
// entries, one per team, first occurrence wins. The championship round is the
// maximum round in the winners list.
func parseBrackets(winners, losers []internal.BracketMatch, seeds map[int]int) []model.PlayoffBracketEntry {
	championshipRound := 0
	for _, m := range winners {
		if m.Round > championshipRound {
			championshipRound = m.Round
		}
	}

	entries := make([]model.PlayoffBracketEntry, 0, 8)
	seen := make(map[int]bool)

	process := func(matches []internal.BracketMatch, consolation bool) {
		for _, m := range matches {
			addBracketTeam(&entries, seen, seeds, m, m.Team1, m.Team2, consolation, championshipRound)
			addBracketTeam(&entries, seen, seeds, m, m.Team2, m.Team1, consolation, championshipRound)
		}
	}
	process(winners, false)
	process(losers, true)

	return entries
}

func addBracketTeam(entries *[]model.PlayoffBracketEntry, seen map[int]bool, seeds map[int]int, m internal.BracketMatch, teamID, opponentID int, consolation bool, championshipRound int) {
	if teamID <= 0 || seen[teamID] {
		return
	}
	seen[teamID] = true

	opponent := ""
	if opponentID > 0 {
		opponent = fmt.Sprintf("%d", opponentID)
	}

	decided := m.Win > 0 && m.Lose > 0
	*entries = append(*entries, model.PlayoffBracketEntry{
		TeamID:     fmt.Sprintf("%d", teamID),
		Seed:       max(seeds[teamID], 1),
		Round:      max(m.Round, 1),
		OpponentID: opponent,
		// Losing the championship game marks a team both eliminated and a
		// championship entrant, on purpose.
		IsEliminated:   decided && m.Lose == teamID && !consolation,
		IsConsolation:  consolation,
		IsChampionship: !consolation && m.Round == championshipRound,
	})
}
