package roast

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/nacallas/SkidmarkOS-sub000/model"
	"github.com/nacallas/SkidmarkOS-sub000/platforms"
	"github.com/nacallas/SkidmarkOS-sub000/testutils"
)

func testRequest() *Request {
	return &Request{
		Teams: []RequestTeam{
			{ID: "1", Name: "Gridiron Gurus", Owner: "Alex Miller", Record: "7-1", Streak: "W4"},
			{ID: "2", Name: "Week Warriors", Owner: "commish99", Record: "5-3", Streak: "L2"},
			{ID: "3", Name: "Waiver Wizards", Owner: "Sam Jones", Record: "1-7", Streak: "L7"},
		},
		WeekNumber:  10,
		SeasonPhase: model.PhaseRegularSeason,
	}
}

func TestGenerate(t *testing.T) {
	fake := testutils.NewFakeRoastServer()
	defer fake.Close()

	c := NewForTest(fake.URL())
	roasts, err := c.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("error generating roasts: %v", err)
	}

	if len(roasts) != 3 {
		t.Fatalf("expected a roast per team, got %d", len(roasts))
	}
	for _, id := range []string{"1", "2", "3"} {
		if roasts[id] == "" {
			t.Errorf("no roast for team %s", id)
		}
	}
	if fake.Requests() != 1 {
		t.Errorf("expected 1 backend call, got %d", fake.Requests())
	}
}

func TestGenerate_missingRoasts(t *testing.T) {
	fake := testutils.NewFakeRoastServer()
	defer fake.Close()
	fake.SkipTeamID = "2"

	c := NewForTest(fake.URL())
	_, err := c.Generate(context.Background(), testRequest())

	var missingErr *MissingRoastsError
	if !errors.As(err, &missingErr) {
		t.Fatalf("expected a missing-roasts error, got: %v", err)
	}
	if !reflect.DeepEqual(missingErr.TeamIDs, []string{"2"}) {
		t.Errorf("wrong missing teams: %v", missingErr.TeamIDs)
	}
}

func TestGenerate_serverError(t *testing.T) {
	fake := testutils.NewFakeRoastServer()
	defer fake.Close()
	fake.FailStatus = http.StatusBadGateway

	c := NewForTest(fake.URL())
	_, err := c.Generate(context.Background(), testRequest())

	var serverErr *platforms.ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected a server error, got: %v", err)
	}
	if serverErr.StatusCode != http.StatusBadGateway {
		t.Errorf("wrong status code: %d", serverErr.StatusCode)
	}
}

func TestGenerate_breakerOpens(t *testing.T) {
	fake := testutils.NewFakeRoastServer()
	defer fake.Close()
	fake.FailStatus = http.StatusInternalServerError

	c := NewForTest(fake.URL())
	for i := 0; i < 3; i++ {
		c.Generate(context.Background(), testRequest())
	}

	// The breaker is open now, requests fail without reaching the backend.
	before := fake.Requests()
	_, err := c.Generate(context.Background(), testRequest())
	var serverErr *platforms.ServerError
	if !errors.As(err, &serverErr) || serverErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected a 503 from the open breaker, got: %v", err)
	}
	if fake.Requests() != before {
		t.Errorf("open breaker must not call the backend")
	}
}

func TestGenerate_invalidResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"unexpected": true}`))
	}))
	defer server.Close()

	c := NewForTest(server.URL)
	_, err := c.Generate(context.Background(), testRequest())
	if !errors.Is(err, platforms.ErrInvalidResponse) {
		t.Errorf("expected ErrInvalidResponse, got: %v", err)
	}
}

func TestGenerate_sendsAPIKey(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"roasts": {"1": "a", "2": "b", "3": "c"}}`))
	}))
	defer server.Close()

	c, err := New(server.URL, "secret-key")
	if err != nil {
		t.Fatalf("error creating client: %v", err)
	}
	if _, err := c.Generate(context.Background(), testRequest()); err != nil {
		t.Fatalf("error generating roasts: %v", err)
	}
	if gotKey != "secret-key" {
		t.Errorf("expected the api key header to be set, got '%s'", gotKey)
	}
}

func TestBuildRequestTeams(t *testing.T) {
	teams := []model.Team{
		{
			ID:            "9",
			Name:          "Gridiron Gurus",
			OwnerName:     "Alex Miller",
			Wins:          7,
			Losses:        1,
			PointsFor:     1204.52,
			PointsAgainst: 1010.18,
			Streak:        &model.Streak{Type: model.STREAK_WIN, Length: 4},
			TopPlayers:    []model.TopPlayer{{Name: "Josh Allen", Position: "QB", Points: 318.42}},
		},
	}

	got := BuildRequestTeams(teams)
	if len(got) != 1 {
		t.Fatalf("expected 1 request team, got %d", len(got))
	}
	rt := got[0]
	if rt.ID != "9" || rt.Owner != "Alex Miller" {
		t.Errorf("identity fields wrong: %+v", rt)
	}
	if rt.Record != "7-1" {
		t.Errorf("expected record 7-1, got %s", rt.Record)
	}
	if rt.Streak != "W4" {
		t.Errorf("expected streak W4, got %s", rt.Streak)
	}
	if len(rt.TopPlayers) != 1 || rt.TopPlayers[0].Name != "Josh Allen" {
		t.Errorf("top players wrong: %+v", rt.TopPlayers)
	}
}
