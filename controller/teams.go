package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/nacallas/SkidmarkOS-sub000/db"
	"github.com/nacallas/SkidmarkOS-sub000/model"
)

func (c *controller) GetTeams(ctx context.Context, leagueID string, refresh bool) ([]model.Team, error) {
	if !refresh {
		snapshot, err := c.db.GetTeamSnapshot(ctx, leagueID)
		if err == nil {
			return snapshot.Teams, nil
		}
		if !errors.Is(err, db.ErrSnapshotNotFound) {
			return nil, err
		}
	}

	return c.RefreshTeams(ctx, leagueID)
}

func (c *controller) RefreshTeams(ctx context.Context, leagueID string) ([]model.Team, error) {
	conn, err := c.lookupConnection(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	teams, err := c.getPlatformClient(conn.Platform).FetchLeagueData(ctx, conn.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("error fetching league data for %s: %w", conn.Name, err)
	}

	ranked := CalculatePowerRankings(teams)

	if err := c.db.SaveTeamSnapshot(ctx, leagueID, ranked, model.TeamsFingerprint(ranked)); err != nil {
		return nil, fmt.Errorf("error saving team snapshot: %w", err)
	}

	c.touchConnection(ctx, leagueID)

	return ranked, nil
}

// touchConnection bumps the connection's last-updated timestamp. Failures are
// logged, not fatal: the snapshot is already saved.
func (c *controller) touchConnection(ctx context.Context, leagueID string) {
	connections, err := c.db.ListLeagueConnections(ctx)
	if err != nil {
		log.Printf("error loading connections to update timestamp: %v", err)
		return
	}
	for i := range connections {
		if connections[i].ID == leagueID {
			connections[i].LastUpdated = c.clock.Now().UTC()
		}
	}
	if err := c.db.SaveLeagueConnections(ctx, connections); err != nil {
		log.Printf("error saving connection timestamp: %v", err)
	}
}

func (c *controller) GetSnapshotAge(ctx context.Context, leagueID string) (*time.Duration, error) {
	return c.db.GetSnapshotAge(ctx, leagueID)
}

func (c *controller) IsSnapshotStale(ctx context.Context, leagueID string) (bool, error) {
	return c.db.IsSnapshotStale(ctx, leagueID)
}

func (c *controller) GetLeagueSettings(ctx context.Context, leagueID string) (*model.LeagueSettings, error) {
	conn, err := c.lookupConnection(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	return c.getPlatformClient(conn.Platform).FetchLeagueSettings(ctx, conn.ExternalID)
}

func (c *controller) GetMatchups(ctx context.Context, leagueID string, week int) ([]model.WeeklyMatchup, error) {
	conn, err := c.lookupConnection(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	return c.getPlatformClient(conn.Platform).FetchMatchupData(ctx, conn.ExternalID, week)
}

func (c *controller) GetPlayoffBracket(ctx context.Context, leagueID string, week int) ([]model.PlayoffBracketEntry, error) {
	conn, err := c.lookupConnection(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	return c.getPlatformClient(conn.Platform).FetchPlayoffBracket(ctx, conn.ExternalID, week)
}

// RunPeriodicSnapshotRefresh re-fetches stale snapshots on a fixed cadence.
// It only ever invokes the same refresh entry point a caller would.
func (c *controller) RunPeriodicSnapshotRefresh(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	defer wg.Done()

	ticker := time.NewTicker(frequency)
	defer ticker.Stop()

	for {
		select {
		case <-shutdown:
			log.Printf("shutting down periodic snapshot refresh")
			return
		case <-ticker.C:
			c.refreshStaleSnapshots(context.Background())
		}
	}
}

func (c *controller) refreshStaleSnapshots(ctx context.Context) {
	connections, err := c.db.ListLeagueConnections(ctx)
	if err != nil {
		log.Printf("error listing league connections for refresh: %v", err)
		return
	}

	for _, conn := range connections {
		stale, err := c.db.IsSnapshotStale(ctx, conn.ID)
		if err != nil {
			log.Printf("error checking staleness for league %s: %v", conn.ID, err)
			continue
		}
		if !stale {
			continue
		}
		if _, err := c.RefreshTeams(ctx, conn.ID); err != nil {
			log.Printf("error refreshing teams for league %s: %v", conn.ID, err)
		}
	}
}
