// Package roast talks to the commentary-generation backend. The generation
// itself is a black box; this package owns the request/response contract and
// verifying the response is complete.
package roast

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/nacallas/SkidmarkOS-sub000/model"
	"github.com/nacallas/SkidmarkOS-sub000/platforms"
)

// Request is the payload sent to the roast backend.
type Request struct {
	Teams          []RequestTeam               `json:"teams"`
	Context        *model.LeagueContext        `json:"context,omitempty"`
	Matchups       []model.WeeklyMatchup       `json:"matchups,omitempty"`
	WeekNumber     int                         `json:"week_number,omitempty"`
	SeasonPhase    model.SeasonPhase           `json:"season_phase"`
	PlayoffBracket []model.PlayoffBracketEntry `json:"playoff_bracket,omitempty"`
}

// RequestTeam is the slimmed-down team view the backend prompts with.
type RequestTeam struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Owner         string            `json:"owner"`
	Record        string            `json:"record"`
	PointsFor     float64           `json:"points_for"`
	PointsAgainst float64           `json:"points_against"`
	Streak        string            `json:"streak"`
	TopPlayers    []model.TopPlayer `json:"top_players,omitempty"`
}

type response struct {
	Roasts map[string]string `json:"roasts"`
}

// MissingRoastsError says the backend responded but left out some teams.
type MissingRoastsError struct {
	TeamIDs []string
}

func (e *MissingRoastsError) Error() string {
	return fmt.Sprintf("response missing roasts for teams: %s", strings.Join(e.TeamIDs, ", "))
}

type Client struct {
	url        string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

func New(url, apiKey string) (*Client, error) {
	if url == "" {
		return nil, errors.New("roast backend URL must be provided")
	}
	return newClient(url, apiKey), nil
}

func NewForTest(url string) *Client {
	return newClient(url, "")
}

func newClient(url, apiKey string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "roast-backend",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Printf("%s circuit breaker changed from %s to %s", name, from, to)
		},
	})

	return &Client{
		url:    url,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 90 * time.Second, // generation is slow
		},
		breaker: cb,
	}
}

// Generate requests roasts for every team in the request and verifies the
// response covers all of them.
func (c *Client) Generate(ctx context.Context, req *Request) (map[string]string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("error encoding roast request: %w", err)
	}

	result, err := c.breaker.Execute(func() (any, error) {
		return c.send(ctx, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			// Present breaker rejections as a transient server failure.
			return nil, &platforms.ServerError{StatusCode: http.StatusServiceUnavailable}
		}
		return nil, err
	}

	roasts := result.(map[string]string)

	missing := make([]string, 0)
	for _, t := range req.Teams {
		if _, found := roasts[t.ID]; !found {
			missing = append(missing, t.ID)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, &MissingRoastsError{TeamIDs: missing}
	}

	return roasts, nil
}

func (c *Client) send(ctx context.Context, body []byte) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error creating http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending roast request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &platforms.ServerError{StatusCode: resp.StatusCode}
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &platforms.ParsingError{Detail: "decoding roast response", Err: err}
	}
	if parsed.Roasts == nil {
		return nil, platforms.ErrInvalidResponse
	}

	return parsed.Roasts, nil
}

// BuildRequestTeams converts canonical teams into the request shape.
func BuildRequestTeams(teams []model.Team) []RequestTeam {
	out := make([]RequestTeam, 0, len(teams))
	for i := range teams {
		t := &teams[i]
		out = append(out, RequestTeam{
			ID:            t.ID,
			Name:          t.Name,
			Owner:         t.OwnerName,
			Record:        t.Record(),
			PointsFor:     t.PointsFor,
			PointsAgainst: t.PointsAgainst,
			Streak:        t.Streak.Display(),
			TopPlayers:    t.TopPlayers,
		})
	}
	return out
}
