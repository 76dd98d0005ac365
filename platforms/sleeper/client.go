// Package sleeper talks to the public Sleeper API. No credentials are
// involved; everything is keyed by league id.
package sleeper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nacallas/SkidmarkOS-sub000/model"
	"github.com/nacallas/SkidmarkOS-sub000/platforms"
	"github.com/nacallas/SkidmarkOS-sub000/platforms/sleeper/internal"
	"github.com/nacallas/SkidmarkOS-sub000/retry"
)

const SleeperURL = "https://api.sleeper.app"

type Client struct {
	url        string
	httpClient *http.Client
	policy     retry.Policy

	// The full player catalog is large and effectively static. It is fetched
	// at most once per client lifetime and reused by every later call.
	mu      sync.Mutex
	catalog map[string]internal.Player
}

func New() (*Client, error) {
	return newClient(SleeperURL), nil
}

func NewForTest(url string) *Client {
	return newClient(url)
}

func newClient(url string) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		policy: retry.Default,
	}
}

func (c *Client) FetchLeagueData(ctx context.Context, leagueID string) ([]model.Team, error) {
	return retry.Do(ctx, c.policy, func(ctx context.Context) ([]model.Team, error) {
		// Issue all three legs before awaiting any so total latency is
		// bounded by the slowest leg.
		var league internal.League
		var rosters []internal.Roster
		var users []internal.User

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return c.get(gctx, fmt.Sprintf("/v1/league/%s", leagueID), &league)
		})
		g.Go(func() error {
			return c.get(gctx, fmt.Sprintf("/v1/league/%s/rosters", leagueID), &rosters)
		})
		g.Go(func() error {
			return c.get(gctx, fmt.Sprintf("/v1/league/%s/users", leagueID), &users)
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		if rosters == nil {
			return nil, &platforms.MissingFieldError{Field: "rosters"}
		}

		usersByID := make(map[string]*internal.User, len(users))
		for i := range users {
			usersByID[users[i].UserID] = &users[i]
		}

		teams := make([]model.Team, 0, len(rosters))
		for i := range rosters {
			teams = append(teams, toTeam(&rosters[i], usersByID[rosters[i].OwnerID]))
		}
		return teams, nil
	})
}

func (c *Client) FetchLeagueSettings(ctx context.Context, leagueID string) (*model.LeagueSettings, error) {
	return retry.Do(ctx, c.policy, func(ctx context.Context) (*model.LeagueSettings, error) {
		var league internal.League
		if err := c.get(ctx, fmt.Sprintf("/v1/league/%s", leagueID), &league); err != nil {
			return nil, err
		}
		if league.Settings == nil {
			return nil, &platforms.MissingFieldError{Field: "settings"}
		}

		s := league.Settings
		if s.PlayoffWeekStart <= 0 {
			return nil, &platforms.MissingFieldError{Field: "settings.playoff_week_start"}
		}
		if s.PlayoffTeams <= 0 {
			return nil, &platforms.MissingFieldError{Field: "settings.playoff_teams"}
		}

		return &model.LeagueSettings{
			PlayoffStartWeek:        s.PlayoffWeekStart,
			PlayoffTeamCount:        s.PlayoffTeams,
			CurrentWeek:             max(s.Leg, 1),
			TotalRegularSeasonWeeks: s.PlayoffWeekStart - 1,
		}, nil
	})
}

func (c *Client) FetchMatchupData(ctx context.Context, leagueID string, week int) ([]model.WeeklyMatchup, error) {
	return retry.Do(ctx, c.policy, func(ctx context.Context) ([]model.WeeklyMatchup, error) {
		catalog, err := c.playerCatalog(ctx)
		if err != nil {
			return nil, err
		}

		var entries []internal.Matchup
		if err := c.get(ctx, fmt.Sprintf("/v1/league/%s/matchups/%d", leagueID, week), &entries); err != nil {
			return nil, err
		}
		if entries == nil {
			return nil, &platforms.MissingFieldError{Field: "matchups"}
		}

		return pairMatchups(entries, week, catalog), nil
	})
}

func (c *Client) FetchPlayoffBracket(ctx context.Context, leagueID string, week int) ([]model.PlayoffBracketEntry, error) {
	return retry.Do(ctx, c.policy, func(ctx context.Context) ([]model.PlayoffBracketEntry, error) {
		// Winners and losers brackets are independent; fetch them in
		// parallel. Rosters ride along to derive seeds.
		var winners, losers []internal.BracketMatch
		var rosters []internal.Roster

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return c.get(gctx, fmt.Sprintf("/v1/league/%s/winners_bracket", leagueID), &winners)
		})
		g.Go(func() error {
			return c.get(gctx, fmt.Sprintf("/v1/league/%s/losers_bracket", leagueID), &losers)
		})
		g.Go(func() error {
			return c.get(gctx, fmt.Sprintf("/v1/league/%s/rosters", leagueID), &rosters)
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		return parseBrackets(winners, losers, seedRosters(rosters)), nil
	})
}

// playerCatalog returns the memoized id -> player index, fetching it on first
// use. Later callers reuse the first successful fetch.
func (c *Client) playerCatalog(ctx context.Context) (map[string]internal.Player, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.catalog != nil {
		return c.catalog, nil
	}

	catalog := make(map[string]internal.Player)
	if err := c.get(ctx, "/v1/players/nfl", &catalog); err != nil {
		return nil, fmt.Errorf("error loading player catalog: %w", err)
	}

	c.catalog = catalog
	return catalog, nil
}

func (c *Client) get(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+path, nil)
	if err != nil {
		return fmt.Errorf("error creating http request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusNotFound:
		return platforms.ErrLeagueNotFound
	default:
		return &platforms.ServerError{StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return &platforms.ParsingError{Detail: fmt.Sprintf("decoding response from %s", path), Err: err}
	}
	return nil
}
