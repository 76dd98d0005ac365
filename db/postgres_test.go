package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/nacallas/SkidmarkOS-sub000/containers"
	"github.com/nacallas/SkidmarkOS-sub000/model"
)

var (
	// A test global db instance to use for all of the tests instead of setting up a new one each time.
	testDB DB

	// The mock clock behind testDB, so tests can control snapshot ages.
	testClock *clock.Mock
)

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	container := containers.NewDBContainer()

	testClock = clock.NewMock()
	testClock.Set(time.Date(2024, 10, 15, 9, 0, 0, 0, time.UTC))

	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if container != nil {
				container.Shutdown()
			}
			fmt.Println("panic")
		}
	}()

	var err error
	testDB, err = New(context.Background(), container.ConnectionString(), testClock)
	if err != nil {
		fmt.Printf("error connecting to db: %v", err)
		os.Exit(-1)
	}

	code := m.Run()
	container.Shutdown()
	os.Exit(code)
}

func TestLeagueConnections(t *testing.T) {
	ctx := context.Background()

	// Nothing saved yet - expect an empty list, not an error.
	list, err := testDB.ListLeagueConnections(ctx)
	assertFatalf(t, err == nil, "error listing connections: %v", err)
	assertEquals(t, "initial list length", 0, len(list))

	connections := []model.LeagueConnection{
		{ID: "c1", ExternalID: "111222", Platform: model.PlatformESPN, Name: "Topeka Dynasty League", AuthRequired: true, LastUpdated: testClock.Now()},
		{ID: "c2", ExternalID: "924039165950484480", Platform: model.PlatformSleeper, Name: "Dynasty Degenerates"},
	}
	err = testDB.SaveLeagueConnections(ctx, connections)
	assertFatalf(t, err == nil, "error saving connections: %v", err)

	list, err = testDB.ListLeagueConnections(ctx)
	assertFatalf(t, err == nil, "error listing connections: %v", err)
	assertFatalf(t, len(list) == 2, "wrong number of connections: %d", len(list))

	// Order must match the saved order.
	assertEquals(t, "first id", "c1", list[0].ID)
	assertEquals(t, "second id", "c2", list[1].ID)
	assertEquals(t, "platform", model.PlatformESPN, list[0].Platform)
	assertEquals(t, "name", "Topeka Dynasty League", list[0].Name)
	assertTrue(t, "auth required", list[0].AuthRequired)
	assertTrue(t, "last updated", list[0].LastUpdated.Equal(testClock.Now()))

	// Saving again replaces the whole list.
	err = testDB.SaveLeagueConnections(ctx, connections[1:])
	assertFatalf(t, err == nil, "error replacing connections: %v", err)

	list, err = testDB.ListLeagueConnections(ctx)
	assertFatalf(t, err == nil, "error listing connections: %v", err)
	assertFatalf(t, len(list) == 1, "wrong number of connections after replace: %d", len(list))
	assertEquals(t, "remaining id", "c2", list[0].ID)
}

func TestLeagueContext(t *testing.T) {
	ctx := context.Background()

	// Absent context is nil, nil.
	lc, err := testDB.GetLeagueContext(ctx, "ctx-league")
	assertFatalf(t, err == nil, "error loading missing context: %v", err)
	assertFatalf(t, lc == nil, "expected nil context, got %v", lc)

	saved := &model.LeagueContext{
		LeagueID: "ctx-league",
		Jokes: []model.InsideJoke{
			{ID: "j1", Text: "remember the 0.08 point loss 😭"},
		},
		Personalities: []model.Personality{
			{ID: "p1", TeamName: "Gridiron Gurus", Notes: "always trades up, always regrets it"},
		},
		Punishment:   "last place buys the kickoff dinner — £50 minimum",
		CultureNotes: "very active group chat",
	}
	err = testDB.SaveLeagueContext(ctx, saved)
	assertFatalf(t, err == nil, "error saving context: %v", err)

	lc, err = testDB.GetLeagueContext(ctx, "ctx-league")
	assertFatalf(t, err == nil, "error loading context: %v", err)
	assertFatalf(t, lc != nil, "expected a context, got nil")
	assertTrue(t, "round trip equality", lc.Equal(saved))
	assertEquals(t, "joke text", saved.Jokes[0].Text, lc.Jokes[0].Text)

	// Saving again overwrites in place.
	saved.Punishment = "calendar photoshoot"
	err = testDB.SaveLeagueContext(ctx, saved)
	assertFatalf(t, err == nil, "error updating context: %v", err)

	lc, err = testDB.GetLeagueContext(ctx, "ctx-league")
	assertFatalf(t, err == nil, "error reloading context: %v", err)
	assertEquals(t, "updated punishment", "calendar photoshoot", lc.Punishment)
}

func TestTeamSnapshots(t *testing.T) {
	ctx := context.Background()
	const leagueID = "snap-league"

	_, err := testDB.GetTeamSnapshot(ctx, leagueID)
	assertError(t, "missing snapshot", ErrSnapshotNotFound, err)

	age, err := testDB.GetSnapshotAge(ctx, leagueID)
	assertFatalf(t, err == nil, "error getting age of missing snapshot: %v", err)
	assertFatalf(t, age == nil, "expected nil age, got %v", age)

	stale, err := testDB.IsSnapshotStale(ctx, leagueID)
	assertFatalf(t, err == nil, "error checking staleness of missing snapshot: %v", err)
	assertTrue(t, "missing snapshot is stale", stale)

	teams := []model.Team{
		{ID: "1", Name: "Gridiron Gurus", OwnerName: "Alex Miller", Wins: 7, Losses: 1, PointsFor: 1204.52, PointsAgainst: 1010.18, PowerScore: 0.8361, Rank: 1,
			Streak: &model.Streak{Type: model.STREAK_WIN, Length: 4}},
		{ID: "2", Name: "Week Warriors", OwnerName: "commish99", Wins: 5, Losses: 3, PointsFor: 1098.3, PointsAgainst: 1042.7, PowerScore: 0.625, Rank: 2},
	}
	err = testDB.SaveTeamSnapshot(ctx, leagueID, teams, "hash-1")
	assertFatalf(t, err == nil, "error saving snapshot: %v", err)

	s, err := testDB.GetTeamSnapshot(ctx, leagueID)
	assertFatalf(t, err == nil, "error loading snapshot: %v", err)
	assertEquals(t, "league id", leagueID, s.LeagueID)
	assertEquals(t, "input hash", "hash-1", s.InputHash)
	if !reflect.DeepEqual(teams, s.Teams) {
		t.Errorf("teams do not round trip.\nsaved: %+v\nloaded: %+v", teams, s.Teams)
	}

	age, err = testDB.GetSnapshotAge(ctx, leagueID)
	assertFatalf(t, err == nil, "error getting snapshot age: %v", err)
	assertFatalf(t, age != nil, "expected an age, got nil")
	assertEquals(t, "fresh age", time.Duration(0), *age)

	stale, err = testDB.IsSnapshotStale(ctx, leagueID)
	assertFatalf(t, err == nil, "error checking staleness: %v", err)
	assertTrue(t, "fresh snapshot is not stale", !stale)

	// Push the clock past the staleness threshold.
	testClock.Add(SnapshotStaleAge + time.Hour)

	stale, err = testDB.IsSnapshotStale(ctx, leagueID)
	assertFatalf(t, err == nil, "error checking staleness: %v", err)
	assertTrue(t, "old snapshot is stale", stale)

	// A new save resets the age.
	err = testDB.SaveTeamSnapshot(ctx, leagueID, teams, "hash-2")
	assertFatalf(t, err == nil, "error re-saving snapshot: %v", err)

	stale, err = testDB.IsSnapshotStale(ctx, leagueID)
	assertFatalf(t, err == nil, "error checking staleness: %v", err)
	assertTrue(t, "replaced snapshot is not stale", !stale)

	s, err = testDB.GetTeamSnapshot(ctx, leagueID)
	assertFatalf(t, err == nil, "error reloading snapshot: %v", err)
	assertEquals(t, "replaced input hash", "hash-2", s.InputHash)
}

func TestWeeklyRoasts(t *testing.T) {
	ctx := context.Background()
	const leagueID = "roast-league"

	_, err := testDB.GetWeeklyRoast(ctx, leagueID, 6)
	assertError(t, "missing roast", ErrRoastNotFound, err)

	rc := &model.WeeklyRoastCache{
		LeagueID: leagueID,
		Week:     6,
		Roasts: map[string]string{
			"1": "another week, another heartbreak",
			"2": "scoring points is optional, apparently",
		},
		Teams: []model.Team{
			{ID: "1", Name: "Gridiron Gurus", Wins: 5, Losses: 1},
			{ID: "2", Name: "Week Warriors", Wins: 3, Losses: 3},
		},
		InputHash: "hash-a",
	}
	err = testDB.SaveWeeklyRoast(ctx, rc)
	assertFatalf(t, err == nil, "error saving roast: %v", err)

	loaded, err := testDB.GetWeeklyRoast(ctx, leagueID, 6)
	assertFatalf(t, err == nil, "error loading roast: %v", err)
	assertEquals(t, "week", 6, loaded.Week)
	assertEquals(t, "input hash", "hash-a", loaded.InputHash)
	assertEquals(t, "roast 1", rc.Roasts["1"], loaded.Roasts["1"])
	assertEquals(t, "roast 2", rc.Roasts["2"], loaded.Roasts["2"])
	assertEquals(t, "team count", 2, len(loaded.Teams))
	assertTrue(t, "generated set", !loaded.Generated.IsZero())

	// Same league and week overwrites.
	rc.Roasts["1"] = "updated take"
	rc.InputHash = "hash-b"
	err = testDB.SaveWeeklyRoast(ctx, rc)
	assertFatalf(t, err == nil, "error overwriting roast: %v", err)

	loaded, err = testDB.GetWeeklyRoast(ctx, leagueID, 6)
	assertFatalf(t, err == nil, "error reloading roast: %v", err)
	assertEquals(t, "overwritten roast", "updated take", loaded.Roasts["1"])
	assertEquals(t, "overwritten hash", "hash-b", loaded.InputHash)

	weeks, err := testDB.ListRoastWeeks(ctx, leagueID)
	assertFatalf(t, err == nil, "error listing roast weeks: %v", err)
	assertFatalf(t, len(weeks) == 1, "wrong number of roast weeks: %d", len(weeks))

	// Add more weeks, out of order, and expect a sorted list.
	for _, w := range []int{9, 3} {
		err = testDB.SaveWeeklyRoast(ctx, &model.WeeklyRoastCache{LeagueID: leagueID, Week: w, Roasts: map[string]string{"1": "..."}})
		assertFatalf(t, err == nil, "error saving roast for week %d: %v", w, err)
	}
	weeks, err = testDB.ListRoastWeeks(ctx, leagueID)
	assertFatalf(t, err == nil, "error listing roast weeks: %v", err)
	if !reflect.DeepEqual([]int{3, 6, 9}, weeks) {
		t.Errorf("expected weeks [3 6 9], got %v", weeks)
	}

	err = testDB.DeleteAllRoasts(ctx, leagueID)
	assertFatalf(t, err == nil, "error deleting roasts: %v", err)

	weeks, err = testDB.ListRoastWeeks(ctx, leagueID)
	assertFatalf(t, err == nil, "error listing roast weeks: %v", err)
	assertEquals(t, "weeks after delete", 0, len(weeks))
}

func TestDeleteLeagueData(t *testing.T) {
	ctx := context.Background()
	const l1 = "del-league-1"
	const l2 = "del-league-2"

	for _, id := range []string{l1, l2} {
		err := testDB.SaveLeagueContext(ctx, &model.LeagueContext{LeagueID: id, Punishment: "pizza"})
		assertFatalf(t, err == nil, "error saving context for %s: %v", id, err)

		err = testDB.SaveTeamSnapshot(ctx, id, []model.Team{{ID: "1", Name: "Team"}}, "h")
		assertFatalf(t, err == nil, "error saving snapshot for %s: %v", id, err)

		for week := 1; week <= 3; week++ {
			err = testDB.SaveWeeklyRoast(ctx, &model.WeeklyRoastCache{LeagueID: id, Week: week, Roasts: map[string]string{"1": "..."}})
			assertFatalf(t, err == nil, "error saving roast for %s week %d: %v", id, week, err)
		}
	}

	err := testDB.DeleteLeagueData(ctx, l1)
	assertFatalf(t, err == nil, "error deleting league data: %v", err)

	// Everything for l1 is gone.
	lc, err := testDB.GetLeagueContext(ctx, l1)
	assertFatalf(t, err == nil, "error loading deleted context: %v", err)
	assertFatalf(t, lc == nil, "expected nil context after delete, got %v", lc)

	_, err = testDB.GetTeamSnapshot(ctx, l1)
	assertError(t, "deleted snapshot", ErrSnapshotNotFound, err)

	weeks, err := testDB.ListRoastWeeks(ctx, l1)
	assertFatalf(t, err == nil, "error listing deleted roast weeks: %v", err)
	assertEquals(t, "deleted roast weeks", 0, len(weeks))

	// Everything for l2 is untouched.
	lc, err = testDB.GetLeagueContext(ctx, l2)
	assertFatalf(t, err == nil, "error loading surviving context: %v", err)
	assertFatalf(t, lc != nil, "expected l2 context to survive")

	_, err = testDB.GetTeamSnapshot(ctx, l2)
	assertFatalf(t, err == nil, "expected l2 snapshot to survive: %v", err)

	weeks, err = testDB.ListRoastWeeks(ctx, l2)
	assertFatalf(t, err == nil, "error listing surviving roast weeks: %v", err)
	assertEquals(t, "surviving roast weeks", 3, len(weeks))

	// Deleting again is a no-op, not an error.
	err = testDB.DeleteLeagueData(ctx, l1)
	assertFatalf(t, err == nil, "error on repeated delete: %v", err)
}

func TestLastViewedLeague(t *testing.T) {
	ctx := context.Background()

	id, err := testDB.GetLastViewedLeague(ctx)
	assertFatalf(t, err == nil, "error loading unset last viewed league: %v", err)
	assertEquals(t, "unset last viewed", "", id)

	err = testDB.SaveLastViewedLeague(ctx, "league-a")
	assertFatalf(t, err == nil, "error saving last viewed league: %v", err)

	id, err = testDB.GetLastViewedLeague(ctx)
	assertFatalf(t, err == nil, "error loading last viewed league: %v", err)
	assertEquals(t, "last viewed", "league-a", id)

	err = testDB.SaveLastViewedLeague(ctx, "league-b")
	assertFatalf(t, err == nil, "error updating last viewed league: %v", err)

	id, err = testDB.GetLastViewedLeague(ctx)
	assertFatalf(t, err == nil, "error reloading last viewed league: %v", err)
	assertEquals(t, "updated last viewed", "league-b", id)
}

func assertFatalf(t *testing.T, c bool, f string, args ...any) {
	t.Helper()
	if !c {
		t.Fatalf(f, args...)
	}
}

func assertEquals(t *testing.T, field string, expected, actual any) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s - expected: '%v', got: '%v'", field, expected, actual)
	}
}

func assertTrue(t *testing.T, field string, cond bool) {
	t.Helper()
	if !cond {
		t.Errorf("%s - expected to be true but it was false", field)
	}
}

func assertError(t *testing.T, tcName string, expected, actual error) {
	t.Helper()
	if !errors.Is(actual, expected) {
		t.Errorf("unexpected error in %s, expected: %v, got: %v", tcName, expected, actual)
	}
}
