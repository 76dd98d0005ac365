// Package espn talks to the ESPN fantasy API. Every request is
// credential-gated: the league's cookie pair must already be in the vault.
package espn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/nacallas/SkidmarkOS-sub000/model"
	"github.com/nacallas/SkidmarkOS-sub000/platforms"
	"github.com/nacallas/SkidmarkOS-sub000/platforms/espn/internal"
	"github.com/nacallas/SkidmarkOS-sub000/retry"
	"github.com/nacallas/SkidmarkOS-sub000/vault"
)

const ESPNURL = "https://lm-api-reads.fantasy.espn.com"

// Lineup slot codes for bench and injured reserve. Players in either slot are
// not starters and are excluded from roster parsing entirely for top-player
// selection.
const (
	slotBench = 20
	slotIR    = 21
)

type Client struct {
	url        string
	year       int
	httpClient *http.Client
	vault      vault.Vault
	policy     retry.Policy

	// expired receives league ids whose stored credential was rejected, so
	// the caller can prompt for re-authentication. Sends never block.
	expired chan string
}

func New(v vault.Vault, year int) (*Client, error) {
	return newClient(ESPNURL, v, year), nil
}

func NewForTest(url string, v vault.Vault, year int) *Client {
	return newClient(url, v, year)
}

func newClient(url string, v vault.Vault, year int) *Client {
	return &Client{
		url:  url,
		year: year,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		vault:   v,
		policy:  retry.Default,
		expired: make(chan string, 8),
	}
}

// CredentialExpirations delivers the league ids whose credentials have been
// invalidated and purged. The consumer prompts the user to re-authenticate.
func (c *Client) CredentialExpirations() <-chan string {
	return c.expired
}

func (c *Client) FetchLeagueData(ctx context.Context, leagueID string) ([]model.Team, error) {
	return retry.Do(ctx, c.policy, func(ctx context.Context) ([]model.Team, error) {
		league, err := c.espnRequest(ctx, leagueID, "view=mTeam&view=mRoster")
		if err != nil {
			return nil, err
		}
		if league.Teams == nil {
			return nil, &platforms.MissingFieldError{Field: "teams"}
		}

		// A slim settings view carries pre-composed team names; it is the
		// fallback name source when a team's own name fields are all empty.
		nameIndex := make(map[int]string)
		if slim, err := c.espnRequest(ctx, leagueID, "view=mSettings"); err == nil {
			for _, t := range slim.Teams {
				if t.Name != "" {
					nameIndex[t.ID] = t.Name
				}
			}
		}

		teams := make([]model.Team, 0, len(league.Teams))
		for i := range league.Teams {
			teams = append(teams, toTeam(&league.Teams[i], league.Members, nameIndex))
		}
		return teams, nil
	})
}

func (c *Client) FetchLeagueSettings(ctx context.Context, leagueID string) (*model.LeagueSettings, error) {
	return retry.Do(ctx, c.policy, func(ctx context.Context) (*model.LeagueSettings, error) {
		league, err := c.espnRequest(ctx, leagueID, "view=mSettings")
		if err != nil {
			return nil, err
		}
		if league.Settings == nil || league.Settings.ScheduleSettings == nil {
			return nil, &platforms.MissingFieldError{Field: "settings.scheduleSettings"}
		}

		ss := league.Settings.ScheduleSettings
		if ss.RegularSeasonMatchupPeriods <= 0 {
			return nil, &platforms.MissingFieldError{Field: "settings.scheduleSettings.matchupPeriodCount"}
		}
		if ss.PlayoffTeamCount <= 0 {
			return nil, &platforms.MissingFieldError{Field: "settings.scheduleSettings.playoffTeamCount"}
		}

		currentWeek := 1
		if league.Status != nil && league.Status.CurrentMatchupPeriod > 0 {
			currentWeek = league.Status.CurrentMatchupPeriod
		}

		return &model.LeagueSettings{
			PlayoffStartWeek:        ss.RegularSeasonMatchupPeriods + 1,
			PlayoffTeamCount:        ss.PlayoffTeamCount,
			CurrentWeek:             currentWeek,
			TotalRegularSeasonWeeks: ss.RegularSeasonMatchupPeriods,
		}, nil
	})
}

func (c *Client) FetchMatchupData(ctx context.Context, leagueID string, week int) ([]model.WeeklyMatchup, error) {
	return retry.Do(ctx, c.policy, func(ctx context.Context) ([]model.WeeklyMatchup, error) {
		league, err := c.espnRequest(ctx, leagueID, fmt.Sprintf("view=mMatchup&scoringPeriodId=%d", week))
		if err != nil {
			return nil, err
		}
		if league.Schedule == nil {
			return nil, &platforms.MissingFieldError{Field: "schedule"}
		}

		matchups := make([]model.WeeklyMatchup, 0, 8)
		for i := range league.Schedule {
			s := &league.Schedule[i]
			if s.MatchupPeriodID != week {
				continue
			}
			// Entries without a usable opponent are byes and dropped entirely.
			if s.Home == nil || s.Away == nil || s.Home.TeamID <= 0 || s.Away.TeamID <= 0 {
				continue
			}

			matchups = append(matchups, model.WeeklyMatchup{
				Week:        week,
				HomeTeamID:  fmt.Sprintf("%d", s.Home.TeamID),
				AwayTeamID:  fmt.Sprintf("%d", s.Away.TeamID),
				HomeScore:   max(s.Home.TotalPoints, 0),
				AwayScore:   max(s.Away.TotalPoints, 0),
				HomePlayers: toPlayerStats(s.Home.Roster),
				AwayPlayers: toPlayerStats(s.Away.Roster),
			})
		}
		return matchups, nil
	})
}

func (c *Client) FetchPlayoffBracket(ctx context.Context, leagueID string, week int) ([]model.PlayoffBracketEntry, error) {
	return retry.Do(ctx, c.policy, func(ctx context.Context) ([]model.PlayoffBracketEntry, error) {
		league, err := c.espnRequest(ctx, leagueID, "view=mMatchup&view=mTeam")
		if err != nil {
			return nil, err
		}
		if league.Schedule == nil {
			return nil, &platforms.MissingFieldError{Field: "schedule"}
		}

		seeds := make(map[int]int, len(league.Teams))
		for _, t := range league.Teams {
			seeds[t.ID] = t.PlayoffSeed
		}

		return parseBracket(league.Schedule, seeds), nil
	})
}

// espnRequest performs one credential-gated GET and decodes the response.
func (c *Client) espnRequest(ctx context.Context, leagueID, query string) (*internal.LeagueResponse, error) {
	cred, err := c.vault.Retrieve(leagueID)
	if err != nil {
		if errors.Is(err, vault.ErrCredentialNotFound) {
			return nil, platforms.ErrAuthRequired
		}
		return nil, fmt.Errorf("error reading credential for league %s: %w", leagueID, err)
	}

	url := fmt.Sprintf("%s/apis/v3/games/ffl/seasons/%d/segments/0/leagues/%s?%s", c.url, c.year, leagueID, query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating http request: %w", err)
	}
	req.AddCookie(&http.Cookie{Name: "espn_s2", Value: cred.S2})
	req.AddCookie(&http.Cookie{Name: "SWID", Value: cred.SWID})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		// The stored credential is useless now. Purge it and tell the caller
		// so the user can be prompted to re-authenticate.
		if err := c.vault.Delete(leagueID); err != nil {
			log.Printf("error deleting expired credential for league %s: %v", leagueID, err)
		}
		select {
		case c.expired <- leagueID:
		default:
		}
		return nil, platforms.ErrInvalidCredentials
	case resp.StatusCode == http.StatusNotFound:
		return nil, platforms.ErrLeagueNotFound
	default:
		return nil, &platforms.ServerError{StatusCode: resp.StatusCode}
	}

	var league internal.LeagueResponse
	if err := json.NewDecoder(resp.Body).Decode(&league); err != nil {
		return nil, &platforms.ParsingError{Detail: "decoding league response", Err: err}
	}
	return &league, nil
}
