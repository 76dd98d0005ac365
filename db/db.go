package db

import (
	"context"
	"time"

	"github.com/nacallas/SkidmarkOS-sub000/model"
)

// SnapshotStaleAge is how old a team snapshot can get before a refresh is
// recommended.
const SnapshotStaleAge = 24 * time.Hour

type DB interface {
	// SaveLeagueConnections replaces the entire connection list.
	SaveLeagueConnections(ctx context.Context, connections []model.LeagueConnection) error
	// ListLeagueConnections returns the saved list, or an empty list when
	// nothing has been saved. Never an error for absence.
	ListLeagueConnections(ctx context.Context) ([]model.LeagueConnection, error)

	SaveLeagueContext(ctx context.Context, lc *model.LeagueContext) error
	// GetLeagueContext returns nil, nil when no context is stored.
	GetLeagueContext(ctx context.Context, leagueID string) (*model.LeagueContext, error)

	SaveTeamSnapshot(ctx context.Context, leagueID string, teams []model.Team, inputHash string) error
	// GetTeamSnapshot returns ErrSnapshotNotFound when absent.
	GetTeamSnapshot(ctx context.Context, leagueID string) (*TeamSnapshot, error)
	// GetSnapshotAge returns nil when no snapshot exists.
	GetSnapshotAge(ctx context.Context, leagueID string) (*time.Duration, error)
	// IsSnapshotStale is true when no snapshot exists or it is older than
	// SnapshotStaleAge.
	IsSnapshotStale(ctx context.Context, leagueID string) (bool, error)

	// SaveWeeklyRoast overwrites any existing entry for the same league and week.
	SaveWeeklyRoast(ctx context.Context, rc *model.WeeklyRoastCache) error
	// GetWeeklyRoast returns ErrRoastNotFound when absent.
	GetWeeklyRoast(ctx context.Context, leagueID string, week int) (*model.WeeklyRoastCache, error)
	ListRoastWeeks(ctx context.Context, leagueID string) ([]int, error)
	DeleteAllRoasts(ctx context.Context, leagueID string) error

	SaveLastViewedLeague(ctx context.Context, leagueID string) error
	// GetLastViewedLeague returns "" when never saved.
	GetLastViewedLeague(ctx context.Context) (string, error)

	// DeleteLeagueData removes the league's context, team snapshot, and every
	// weekly roast in one transaction. Idempotent; other leagues' data is
	// never touched.
	DeleteLeagueData(ctx context.Context, leagueID string) error
}

// TeamSnapshot is the cached team list for a league with its staleness
// tracking data.
type TeamSnapshot struct {
	LeagueID  string
	Teams     []model.Team
	InputHash string
	Created   time.Time
}
