package mockcontroller

import (
	"context"
	"sync"
	"time"

	"github.com/nacallas/SkidmarkOS-sub000/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) ListLeagues(ctx context.Context) ([]model.LeagueConnection, error) {
	args := c.Called(ctx)

	var res []model.LeagueConnection
	if args.Get(0) != nil {
		res = args.Get(0).([]model.LeagueConnection)
	}

	return res, args.Error(1)
}

func (c *C) AddLeague(ctx context.Context, platform, externalID, name string) (*model.LeagueConnection, error) {
	args := c.Called(ctx, platform, externalID, name)

	var l *model.LeagueConnection
	if args.Get(0) != nil {
		l = args.Get(0).(*model.LeagueConnection)
	}

	return l, args.Error(1)
}

func (c *C) RemoveLeague(ctx context.Context, id string) error {
	args := c.Called(ctx, id)
	return args.Error(0)
}

func (c *C) GetLastViewedLeague(ctx context.Context) (string, error) {
	args := c.Called(ctx)
	return args.String(0), args.Error(1)
}

func (c *C) SetLastViewedLeague(ctx context.Context, id string) error {
	args := c.Called(ctx, id)
	return args.Error(0)
}

func (c *C) GetTeams(ctx context.Context, leagueID string, refresh bool) ([]model.Team, error) {
	args := c.Called(ctx, leagueID, refresh)

	var res []model.Team
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Team)
	}

	return res, args.Error(1)
}

func (c *C) RefreshTeams(ctx context.Context, leagueID string) ([]model.Team, error) {
	args := c.Called(ctx, leagueID)

	var res []model.Team
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Team)
	}

	return res, args.Error(1)
}

func (c *C) GetSnapshotAge(ctx context.Context, leagueID string) (*time.Duration, error) {
	args := c.Called(ctx, leagueID)

	var age *time.Duration
	if args.Get(0) != nil {
		age = args.Get(0).(*time.Duration)
	}

	return age, args.Error(1)
}

func (c *C) IsSnapshotStale(ctx context.Context, leagueID string) (bool, error) {
	args := c.Called(ctx, leagueID)
	return args.Bool(0), args.Error(1)
}

func (c *C) RunPeriodicSnapshotRefresh(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	c.Called(frequency, shutdown, wg)
}

func (c *C) GetLeagueSettings(ctx context.Context, leagueID string) (*model.LeagueSettings, error) {
	args := c.Called(ctx, leagueID)

	var s *model.LeagueSettings
	if args.Get(0) != nil {
		s = args.Get(0).(*model.LeagueSettings)
	}

	return s, args.Error(1)
}

func (c *C) GetMatchups(ctx context.Context, leagueID string, week int) ([]model.WeeklyMatchup, error) {
	args := c.Called(ctx, leagueID, week)

	var res []model.WeeklyMatchup
	if args.Get(0) != nil {
		res = args.Get(0).([]model.WeeklyMatchup)
	}

	return res, args.Error(1)
}

func (c *C) GetPlayoffBracket(ctx context.Context, leagueID string, week int) ([]model.PlayoffBracketEntry, error) {
	args := c.Called(ctx, leagueID, week)

	var res []model.PlayoffBracketEntry
	if args.Get(0) != nil {
		res = args.Get(0).([]model.PlayoffBracketEntry)
	}

	return res, args.Error(1)
}

func (c *C) GetLeagueContext(ctx context.Context, leagueID string) (*model.LeagueContext, error) {
	args := c.Called(ctx, leagueID)

	var lc *model.LeagueContext
	if args.Get(0) != nil {
		lc = args.Get(0).(*model.LeagueContext)
	}

	return lc, args.Error(1)
}

func (c *C) SaveLeagueContext(ctx context.Context, lc *model.LeagueContext) error {
	args := c.Called(ctx, lc)
	return args.Error(0)
}

func (c *C) GetWeeklyRoasts(ctx context.Context, leagueID string, week int, force bool) (*model.WeeklyRoastCache, error) {
	args := c.Called(ctx, leagueID, week, force)

	var rc *model.WeeklyRoastCache
	if args.Get(0) != nil {
		rc = args.Get(0).(*model.WeeklyRoastCache)
	}

	return rc, args.Error(1)
}

func (c *C) ListRoastWeeks(ctx context.Context, leagueID string) ([]int, error) {
	args := c.Called(ctx, leagueID)

	var res []int
	if args.Get(0) != nil {
		res = args.Get(0).([]int)
	}

	return res, args.Error(1)
}

func (c *C) CredentialExpirations() <-chan string {
	args := c.Called()

	var ch <-chan string
	if args.Get(0) != nil {
		ch = args.Get(0).(<-chan string)
	}

	return ch
}
