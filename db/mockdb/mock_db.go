package mockdb

import (
	"context"
	"time"

	"github.com/nacallas/SkidmarkOS-sub000/db"
	"github.com/nacallas/SkidmarkOS-sub000/model"
	"github.com/stretchr/testify/mock"
)

type DB struct {
	mock.Mock
}

func (m *DB) SaveLeagueConnections(ctx context.Context, connections []model.LeagueConnection) error {
	args := m.Called(ctx, connections)
	return args.Error(0)
}

func (m *DB) ListLeagueConnections(ctx context.Context) ([]model.LeagueConnection, error) {
	args := m.Called(ctx)

	var r []model.LeagueConnection
	if args.Get(0) != nil {
		r = args.Get(0).([]model.LeagueConnection)
	}
	return r, args.Error(1)
}

func (m *DB) SaveLeagueContext(ctx context.Context, lc *model.LeagueContext) error {
	args := m.Called(ctx, lc)
	return args.Error(0)
}

func (m *DB) GetLeagueContext(ctx context.Context, leagueID string) (*model.LeagueContext, error) {
	args := m.Called(ctx, leagueID)

	var lc *model.LeagueContext
	if args.Get(0) != nil {
		lc = args.Get(0).(*model.LeagueContext)
	}
	return lc, args.Error(1)
}

func (m *DB) SaveTeamSnapshot(ctx context.Context, leagueID string, teams []model.Team, inputHash string) error {
	args := m.Called(ctx, leagueID, teams, inputHash)
	return args.Error(0)
}

func (m *DB) GetTeamSnapshot(ctx context.Context, leagueID string) (*db.TeamSnapshot, error) {
	args := m.Called(ctx, leagueID)

	var s *db.TeamSnapshot
	if args.Get(0) != nil {
		s = args.Get(0).(*db.TeamSnapshot)
	}
	return s, args.Error(1)
}

func (m *DB) GetSnapshotAge(ctx context.Context, leagueID string) (*time.Duration, error) {
	args := m.Called(ctx, leagueID)

	var age *time.Duration
	if args.Get(0) != nil {
		age = args.Get(0).(*time.Duration)
	}
	return age, args.Error(1)
}

func (m *DB) IsSnapshotStale(ctx context.Context, leagueID string) (bool, error) {
	args := m.Called(ctx, leagueID)
	return args.Bool(0), args.Error(1)
}

func (m *DB) SaveWeeklyRoast(ctx context.Context, rc *model.WeeklyRoastCache) error {
	args := m.Called(ctx, rc)
	return args.Error(0)
}

func (m *DB) GetWeeklyRoast(ctx context.Context, leagueID string, week int) (*model.WeeklyRoastCache, error) {
	args := m.Called(ctx, leagueID, week)

	var rc *model.WeeklyRoastCache
	if args.Get(0) != nil {
		rc = args.Get(0).(*model.WeeklyRoastCache)
	}
	return rc, args.Error(1)
}

func (m *DB) ListRoastWeeks(ctx context.Context, leagueID string) ([]int, error) {
	args := m.Called(ctx, leagueID)

	var weeks []int
	if args.Get(0) != nil {
		weeks = args.Get(0).([]int)
	}
	return weeks, args.Error(1)
}

func (m *DB) DeleteAllRoasts(ctx context.Context, leagueID string) error {
	args := m.Called(ctx, leagueID)
	return args.Error(0)
}

func (m *DB) SaveLastViewedLeague(ctx context.Context, leagueID string) error {
	args := m.Called(ctx, leagueID)
	return args.Error(0)
}

func (m *DB) GetLastViewedLeague(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *DB) DeleteLeagueData(ctx context.Context, leagueID string) error {
	args := m.Called(ctx, leagueID)
	return args.Error(0)
}
