package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nacallas/SkidmarkOS-sub000/model"
)

func (c *controller) ListLeagues(ctx context.Context) ([]model.LeagueConnection, error) {
	return c.db.ListLeagueConnections(ctx)
}

func (c *controller) AddLeague(ctx context.Context, platform, externalID, name string) (*model.LeagueConnection, error) {
	if !model.IsPlatformSupported(platform) {
		return nil, fmt.Errorf("%s is not a supported platform", platform)
	}

	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, errors.New("externalID must be provided")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("league name must be provided")
	}

	connections, err := c.db.ListLeagueConnections(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading league connections: %w", err)
	}
	for _, conn := range connections {
		if conn.Platform == platform && conn.ExternalID == externalID {
			return nil, fmt.Errorf("league %s on %s is already connected", externalID, platform)
		}
	}

	l := &model.LeagueConnection{
		ID:           uuid.NewString(),
		ExternalID:   externalID,
		Platform:     platform,
		Name:         name,
		LastUpdated:  c.clock.Now().UTC(),
		AuthRequired: platform == model.PlatformESPN,
	}

	connections = append(connections, *l)
	if err := c.db.SaveLeagueConnections(ctx, connections); err != nil {
		return nil, fmt.Errorf("error saving league connections: %w", err)
	}
	return l, nil
}

func (c *controller) RemoveLeague(ctx context.Context, id string) error {
	connections, err := c.db.ListLeagueConnections(ctx)
	if err != nil {
		return fmt.Errorf("error loading league connections: %w", err)
	}

	remaining := make([]model.LeagueConnection, 0, len(connections))
	for _, conn := range connections {
		if conn.ID != id {
			remaining = append(remaining, conn)
		}
	}

	if err := c.db.SaveLeagueConnections(ctx, remaining); err != nil {
		return fmt.Errorf("error saving league connections: %w", err)
	}

	// Cascade: no orphaned context, snapshot, or roast records may remain.
	if err := c.db.DeleteLeagueData(ctx, id); err != nil {
		return fmt.Errorf("error deleting league data: %w", err)
	}
	return nil
}

func (c *controller) GetLastViewedLeague(ctx context.Context) (string, error) {
	return c.db.GetLastViewedLeague(ctx)
}

func (c *controller) SetLastViewedLeague(ctx context.Context, id string) error {
	return c.db.SaveLastViewedLeague(ctx, id)
}

func (c *controller) GetLeagueContext(ctx context.Context, leagueID string) (*model.LeagueContext, error) {
	return c.db.GetLeagueContext(ctx, leagueID)
}

func (c *controller) SaveLeagueContext(ctx context.Context, lc *model.LeagueContext) error {
	if lc == nil || strings.TrimSpace(lc.LeagueID) == "" {
		return errors.New("league context must name a league")
	}
	return c.db.SaveLeagueContext(ctx, lc)
}

// lookupConnection finds the connection for an internal league id.
func (c *controller) lookupConnection(ctx context.Context, id string) (*model.LeagueConnection, error) {
	connections, err := c.db.ListLeagueConnections(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading league connections: %w", err)
	}
	for i := range connections {
		if connections[i].ID == id {
			return &connections[i], nil
		}
	}
	return nil, ErrUnknownLeague
}
