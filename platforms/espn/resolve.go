package espn

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nacallas/SkidmarkOS-sub000/model"
	"github.com/nacallas/SkidmarkOS-sub000/platforms/espn/internal"
)

// ESPN playoff tier tags on schedule entries.
const (
	tierNone    = "NONE"
	tierWinners = "WINNERS_BRACKET"
	tierLosers  = "LOSERS_CONSOLATION_LADDER"
)

func toTeam(t *internal.Team, members []internal.Member, nameIndex map[int]string) model.Team {
	owner := resolveOwnerName(t, members)

	team := model.Team{
		ID:        fmt.Sprintf("%d", t.ID),
		Name:      resolveTeamName(t, nameIndex, owner),
		OwnerName: owner,
	}

	if t.Record != nil && t.Record.Overall != nil {
		o := t.Record.Overall
		team.Wins = max(o.Wins, 0)
		team.Losses = max(o.Losses, 0)
		team.Ties = max(o.Ties, 0)
		team.PointsFor = max(o.PointsFor, 0)
		team.PointsAgainst = max(o.PointsAgainst, 0)
		team.Streak = parseStreak(o)
	}

	if t.Roster != nil {
		team.TopPlayers = topPlayers(t.Roster.Entries)
	}

	return team
}

// resolveTeamName walks the name fallback cascade in order; the first
// non-empty value wins.
func resolveTeamName(t *internal.Team, nameIndex map[int]string, ownerName string) string {
	if name := strings.TrimSpace(t.Name); name != "" {
		return name
	}

	location := strings.TrimSpace(t.Location)
	nickname := strings.TrimSpace(t.Nickname)
	if location != "" && nickname != "" {
		return location + " " + nickname
	}
	if location != "" {
		return location
	}
	if nickname != "" {
		return nickname
	}

	if abbrev := strings.TrimSpace(t.Abbrev); abbrev != "" {
		return abbrev
	}

	if name := strings.TrimSpace(nameIndex[t.ID]); name != "" {
		return name
	}

	if ownerName != "" && ownerName != "Unknown Owner" {
		return fmt.Sprintf("Team %s", ownerName)
	}

	return fmt.Sprintf("Team %d", t.ID)
}

// resolveOwnerName looks up the team's primary owner (or first listed owner)
// among the league members.
func resolveOwnerName(t *internal.Team, members []internal.Member) string {
	ownerID := t.PrimaryOwner
	if ownerID == "" && len(t.Owners) > 0 {
		ownerID = t.Owners[0]
	}

	for _, m := range members {
		if m.ID != ownerID {
			continue
		}
		if name := strings.TrimSpace(strings.TrimSpace(m.FirstName) + " " + strings.TrimSpace(m.LastName)); name != "" {
			return name
		}
		if m.DisplayName != "" {
			return m.DisplayName
		}
		break
	}

	return "Unknown Owner"
}

func parseStreak(o *internal.RecordDetail) *model.Streak {
	if o.StreakLength <= 0 {
		return nil
	}
	switch o.StreakType {
	case "WIN":
		return &model.Streak{Type: model.STREAK_WIN, Length: o.StreakLength}
	case "LOSS":
		return &model.Streak{Type: model.STREAK_LOSS, Length: o.StreakLength}
	default:
		return nil
	}
}

// topPlayers picks up to the 5 best scoring non-bench, non-IR players.
func topPlayers(entries []internal.RosterEntry) []model.TopPlayer {
	players := make([]model.TopPlayer, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		if e.LineupSlotID == slotBench || e.LineupSlotID == slotIR {
			continue
		}
		if e.PlayerPoolEntry == nil || e.PlayerPoolEntry.Player == nil {
			continue // malformed entry, skip the row
		}
		p := e.PlayerPoolEntry.Player
		players = append(players, model.TopPlayer{
			ID:       fmt.Sprintf("%d", p.ID),
			Name:     p.FullName,
			Position: parsePositionID(p.DefaultPositionID),
			Points:   playerPoints(p),
		})
	}

	slices.SortStableFunc(players, func(a, b model.TopPlayer) int {
		switch {
		case a.Points > b.Points:
			return -1
		case a.Points < b.Points:
			return 1
		default:
			return 0
		}
	})

	if len(players) > 5 {
		players = players[:5]
	}
	return players
}

// playerPoints returns the first applied total found in the player's stats,
// or 0 when no stat entry exposes one.
func playerPoints(p *internal.Player) float64 {
	for _, s := range p.Stats {
		if s.AppliedTotal != nil {
			return max(*s.AppliedTotal, 0)
		}
	}
	return 0
}

func parsePositionID(id int) model.Position {
	switch id {
	case 1:
		return model.POS_QB
	case 2:
		return model.POS_RB
	case 3:
		return model.POS_WR
	case 4:
		return model.POS_TE
	case 5:
		return model.POS_K
	case 16:
		return model.POS_DST
	default:
		return model.POS_UNKNOWN
	}
}

func toPlayerStats(r *internal.WeeklyRoster) []model.PlayerStat {
	if r == nil {
		return nil
	}

	stats := make([]model.PlayerStat, 0, len(r.Entries))
	for i := range r.Entries {
		e := &r.Entries[i]
		if e.PlayerPoolEntry == nil || e.PlayerPoolEntry.Player == nil {
			continue
		}
		p := e.PlayerPoolEntry.Player
		stats = append(stats, model.PlayerStat{
			PlayerID:  fmt.Sprintf("%d", p.ID),
			Name:      p.FullName,
			Position:  parsePositionID(p.DefaultPositionID),
			Points:    playerPoints(p),
			IsStarter: e.LineupSlotID != slotBench && e.LineupSlotID != slotIR,
		})
	}
	return stats
}

// parseBracket turns playoff-tier schedule rows into bracket entries, one per
// team, first occurrence wins. The championship round is the latest winners
// bracket matchup period anywhere in the schedule.
func parseBracket(schedule []internal.Schedule, seeds map[int]int) []model.PlayoffBracketEntry {
	championshipPeriod := 0
	firstPlayoffPeriod := 0
	for i := range schedule {
		s := &schedule[i]
		if s.PlayoffTierType == tierNone || s.PlayoffTierType == "" {
			continue
		}
		if s.PlayoffTierType == tierWinners && s.MatchupPeriodID > championshipPeriod {
			championshipPeriod = s.MatchupPeriodID
		}
		if firstPlayoffPeriod == 0 || s.MatchupPeriodID < firstPlayoffPeriod {
			firstPlayoffPeriod = s.MatchupPeriodID
		}
	}

	entries := make([]model.PlayoffBracketEntry, 0, 8)
	seen := make(map[int]bool)

	for i := range schedule {
		s := &schedule[i]
		if s.PlayoffTierType == tierNone || s.PlayoffTierType == "" {
			continue
		}
		if s.Home == nil || s.Away == nil {
			continue
		}

		round := s.MatchupPeriodID - firstPlayoffPeriod + 1

		appendEntry := func(teamID, opponentID int, lost bool) {
			if teamID <= 0 || seen[teamID] {
				return
			}
			seen[teamID] = true

			consolation := s.PlayoffTierType == tierLosers
			entries = append(entries, model.PlayoffBracketEntry{
				TeamID:     fmt.Sprintf("%d", teamID),
				Seed:       max(seeds[teamID], 1),
				Round:      round,
				OpponentID: fmt.Sprintf("%d", opponentID),
				// A team that lost the championship game is both eliminated
				// and a championship entrant. That is intentional.
				IsEliminated:   lost && !consolation,
				IsConsolation:  consolation,
				IsChampionship: s.PlayoffTierType == tierWinners && s.MatchupPeriodID == championshipPeriod,
			})
		}

		decided := s.Winner == "HOME" || s.Winner == "AWAY"
		appendEntry(s.Home.TeamID, s.Away.TeamID, decided && s.Winner == "AWAY")
		appendEntry(s.Away.TeamID, s.Home.TeamID, decided && s.Winner == "HOME")
	}

	return entries
}
