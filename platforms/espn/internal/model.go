// Package internal holds the ESPN wire-format schema. Responses are decoded
// into these types in one step, then mapped to the canonical model; none of
// this leaks out of the espn package.
package internal

type LeagueResponse struct {
	Teams    []Team     `json:"teams"`
	Members  []Member   `json:"members"`
	Schedule []Schedule `json:"schedule"`
	Settings *Settings  `json:"settings"`
	Status   *Status    `json:"status"`
}

type Team struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	Nickname     string   `json:"nickname"`
	Abbrev       string   `json:"abbrev"`
	PrimaryOwner string   `json:"primaryOwner"`
	Owners       []string `json:"owners"`
	PlayoffSeed  int      `json:"playoffSeed"`
	Record       *Record  `json:"record"`
	Roster       *Roster  `json:"roster"`
}

type Record struct {
	Overall *RecordDetail `json:"overall"`
}

type RecordDetail struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
	StreakType    string  `json:"streakType"`
	StreakLength  int     `json:"streakLength"`
}

type Roster struct {
	Entries []RosterEntry `json:"entries"`
}

type RosterEntry struct {
	LineupSlotID    int              `json:"lineupSlotId"`
	PlayerPoolEntry *PlayerPoolEntry `json:"playerPoolEntry"`
}

type PlayerPoolEntry struct {
	Player *Player `json:"player"`
}

type Player struct {
	ID                int     `json:"id"`
	FullName          string  `json:"fullName"`
	DefaultPositionID int     `json:"defaultPositionId"`
	Stats             []Stats `json:"stats"`
}

type Stats struct {
	AppliedTotal *float64 `json:"appliedTotal"`
}

type Member struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DisplayName string `json:"displayName"`
}

type Settings struct {
	Name             string            `json:"name"`
	ScheduleSettings *ScheduleSettings `json:"scheduleSettings"`
}

type ScheduleSettings struct {
	RegularSeasonMatchupPeriods int `json:"matchupPeriodCount"`
	PlayoffTeamCount            int `json:"playoffTeamCount"`
}

type Status struct {
	CurrentMatchupPeriod int `json:"currentMatchupPeriod"`
}

type Schedule struct {
	MatchupPeriodID int           `json:"matchupPeriodId"`
	Winner          string        `json:"winner"`
	PlayoffTierType string        `json:"playoffTierType"`
	Home            *ScheduleTeam `json:"home"`
	Away            *ScheduleTeam `json:"away"`
}

type ScheduleTeam struct {
	TeamID      int           `json:"teamId"`
	TotalPoints float64       `json:"totalPoints"`
	Roster      *WeeklyRoster `json:"rosterForCurrentScoringPeriod"`
}

type WeeklyRoster struct {
	Entries []RosterEntry `json:"entries"`
}
