// Package platforms defines the provider-facing contract: the Client
// interface every platform adapter implements and the error taxonomy the rest
// of the system branches on.
package platforms

import (
	"context"

	"github.com/nacallas/SkidmarkOS-sub000/model"
)

// Client is implemented once per fantasy platform. Every method builds brand
// new canonical values; nothing is mutated across calls.
type Client interface {
	// FetchLeagueData returns the full normalized team list for a league.
	FetchLeagueData(ctx context.Context, leagueID string) ([]model.Team, error)

	FetchLeagueSettings(ctx context.Context, leagueID string) (*model.LeagueSettings, error)

	FetchMatchupData(ctx context.Context, leagueID string, week int) ([]model.WeeklyMatchup, error)

	FetchPlayoffBracket(ctx context.Context, leagueID string, week int) ([]model.PlayoffBracketEntry, error)
}
