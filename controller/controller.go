package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/nacallas/SkidmarkOS-sub000/db"
	"github.com/nacallas/SkidmarkOS-sub000/model"
	"github.com/nacallas/SkidmarkOS-sub000/platforms"
	"github.com/nacallas/SkidmarkOS-sub000/platforms/espn"
	"github.com/nacallas/SkidmarkOS-sub000/platforms/sleeper"
	"github.com/nacallas/SkidmarkOS-sub000/roast"
)

var ErrUnknownLeague = errors.New("league is not connected")

// C encapsulates business logic without worrying about any web layers
type C interface {
	ListLeagues(ctx context.Context) ([]model.LeagueConnection, error)
	AddLeague(ctx context.Context, platform, externalID, name string) (*model.LeagueConnection, error)
	// RemoveLeague drops the connection and cascade-deletes every record the
	// league ever produced: context, team snapshot, all weekly roasts.
	RemoveLeague(ctx context.Context, id string) error
	GetLastViewedLeague(ctx context.Context) (string, error)
	SetLastViewedLeague(ctx context.Context, id string) error

	// GetTeams serves the cached snapshot when one exists, fetching from the
	// platform only when there is none or refresh is requested.
	GetTeams(ctx context.Context, leagueID string, refresh bool) ([]model.Team, error)
	RefreshTeams(ctx context.Context, leagueID string) ([]model.Team, error)
	// GetSnapshotAge returns nil when no snapshot exists.
	GetSnapshotAge(ctx context.Context, leagueID string) (*time.Duration, error)
	IsSnapshotStale(ctx context.Context, leagueID string) (bool, error)
	RunPeriodicSnapshotRefresh(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup)

	GetLeagueSettings(ctx context.Context, leagueID string) (*model.LeagueSettings, error)
	GetMatchups(ctx context.Context, leagueID string, week int) ([]model.WeeklyMatchup, error)
	GetPlayoffBracket(ctx context.Context, leagueID string, week int) ([]model.PlayoffBracketEntry, error)

	GetLeagueContext(ctx context.Context, leagueID string) (*model.LeagueContext, error)
	SaveLeagueContext(ctx context.Context, lc *model.LeagueContext) error

	// GetWeeklyRoasts returns the cached roasts for the week when the inputs
	// have not changed, and regenerates otherwise. force skips the cache.
	GetWeeklyRoasts(ctx context.Context, leagueID string, week int, force bool) (*model.WeeklyRoastCache, error)
	ListRoastWeeks(ctx context.Context, leagueID string) ([]int, error)

	// CredentialExpirations delivers league ids whose stored credentials were
	// rejected, so the user can be prompted to re-authenticate.
	CredentialExpirations() <-chan string
}

type controller struct {
	clock   clock.Clock
	db      db.DB
	espn    *espn.Client
	sleeper *sleeper.Client
	roast   *roast.Client
}

func New(clock clock.Clock, database db.DB, espnClient *espn.Client, sleeperClient *sleeper.Client, roastClient *roast.Client) (C, error) {
	c := &controller{
		clock:   clock,
		db:      database,
		espn:    espnClient,
		sleeper: sleeperClient,
		roast:   roastClient,
	}
	return c, nil
}

func (c *controller) CredentialExpirations() <-chan string {
	return c.espn.CredentialExpirations()
}

// When we need to make calls that are specific to a platform, grab the
// platform's client. This is internal to the controller package.
func (c *controller) getPlatformClient(platform string) platforms.Client {
	switch platform {
	case model.PlatformESPN:
		return c.espn
	case model.PlatformSleeper:
		return c.sleeper
	default:
		return &nilPlatformClient{err: fmt.Errorf("%s is not a supported platform", platform)}
	}
}

// nilPlatformClient exists so that we can always return a client and simplify
// the usage. It eliminates the need for an extra error check.
type nilPlatformClient struct {
	err error
}

func (c *nilPlatformClient) FetchLeagueData(ctx context.Context, leagueID string) ([]model.Team, error) {
	return nil, c.err
}

func (c *nilPlatformClient) FetchLeagueSettings(ctx context.Context, leagueID string) (*model.LeagueSettings, error) {
	return nil, c.err
}

func (c *nilPlatformClient) FetchMatchupData(ctx context.Context, leagueID string, week int) ([]model.WeeklyMatchup, error) {
	return nil, c.err
}

func (c *nilPlatformClient) FetchPlayoffBracket(ctx context.Context, leagueID string, week int) ([]model.PlayoffBracketEntry, error) {
	return nil, c.err
}
