package controller

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/nacallas/SkidmarkOS-sub000/db"
	"github.com/nacallas/SkidmarkOS-sub000/model"
	"github.com/nacallas/SkidmarkOS-sub000/roast"
)

func (c *controller) GetWeeklyRoasts(ctx context.Context, leagueID string, week int, force bool) (*model.WeeklyRoastCache, error) {
	if week < 1 {
		return nil, fmt.Errorf("week must be >= 1, got %d", week)
	}

	teams, err := c.GetTeams(ctx, leagueID, false)
	if err != nil {
		return nil, err
	}

	lc, err := c.db.GetLeagueContext(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	inputHash := roastInputHash(teams, lc, week)

	cached, err := c.db.GetWeeklyRoast(ctx, leagueID, week)
	if err != nil && !errors.Is(err, db.ErrRoastNotFound) {
		return nil, err
	}
	if cached != nil && !force && cached.InputHash == inputHash {
		// Nothing changed since generation, serve the cached roasts.
		return cached, nil
	}

	req, err := c.buildRoastRequest(ctx, leagueID, week, teams, lc)
	if err != nil {
		return nil, err
	}

	roasts, err := c.roast.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("error generating roasts: %w", err)
	}

	rc := &model.WeeklyRoastCache{
		LeagueID:  leagueID,
		Week:      week,
		Generated: c.clock.Now().UTC(),
		Roasts:    roasts,
		Teams:     teams,
		InputHash: inputHash,
	}
	if err := c.db.SaveWeeklyRoast(ctx, rc); err != nil {
		return nil, fmt.Errorf("error caching weekly roasts: %w", err)
	}

	return rc, nil
}

func (c *controller) ListRoastWeeks(ctx context.Context, leagueID string) ([]int, error) {
	return c.db.ListRoastWeeks(ctx, leagueID)
}

func (c *controller) buildRoastRequest(ctx context.Context, leagueID string, week int, teams []model.Team, lc *model.LeagueContext) (*roast.Request, error) {
	matchups, err := c.GetMatchups(ctx, leagueID, week)
	if err != nil {
		return nil, fmt.Errorf("error fetching matchups for roast request: %w", err)
	}

	req := &roast.Request{
		Teams:       roast.BuildRequestTeams(teams),
		Context:     lc,
		Matchups:    matchups,
		WeekNumber:  week,
		SeasonPhase: model.PhaseRegularSeason,
	}

	settings, err := c.GetLeagueSettings(ctx, leagueID)
	if err != nil {
		// Without settings we can't tell if it's the playoffs; roast as
		// regular season rather than failing the whole request.
		log.Printf("error fetching settings for league %s: %v", leagueID, err)
		return req, nil
	}

	req.SeasonPhase = model.DetectPhase(week, settings.PlayoffStartWeek)
	if req.SeasonPhase == model.PhasePlayoffs {
		bracket, err := c.GetPlayoffBracket(ctx, leagueID, week)
		if err != nil {
			log.Printf("error fetching playoff bracket for league %s: %v", leagueID, err)
		} else {
			req.PlayoffBracket = bracket
		}
	}

	return req, nil
}

// roastInputHash fingerprints everything roast generation depends on: team
// stats (excluding rank/commentary), league context content, and the week.
func roastInputHash(teams []model.Team, lc *model.LeagueContext, week int) string {
	h := sha256.New()
	fmt.Fprintf(h, "week=%d;teams=%s;", week, model.TeamsFingerprint(teams))
	if lc != nil {
		// Strip ids the same way LeagueContext equality does.
		content := struct {
			Jokes         []string
			Personalities [][2]string
			Punishment    string
			CultureNotes  string
		}{
			Punishment:   lc.Punishment,
			CultureNotes: lc.CultureNotes,
		}
		for _, j := range lc.Jokes {
			content.Jokes = append(content.Jokes, j.Text)
		}
		for _, p := range lc.Personalities {
			content.Personalities = append(content.Personalities, [2]string{p.TeamName, p.Notes})
		}
		b, _ := json.Marshal(content)
		h.Write(b)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
