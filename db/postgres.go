package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nacallas/SkidmarkOS-sub000/model"
)

var (
	ErrSnapshotNotFound error = errors.New("team snapshot not found")
	ErrRoastNotFound    error = errors.New("weekly roast not found")
)

const lastViewedKey = "last_viewed_league"

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func (db *postgresDB) SaveLeagueConnections(ctx context.Context, connections []model.LeagueConnection) error {
	const insert = `INSERT INTO league_connections (id, external_id, platform, name, last_updated, auth_required, position)
		VALUES (@id, @externalID, @platform, @name, @lastUpdated, @authRequired, @position)`

	// Replace-the-whole-list semantics, atomically.
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM league_connections`); err != nil {
		return fmt.Errorf("error clearing league connections: %w", err)
	}

	for i, c := range connections {
		args := pgx.NamedArgs{
			"id":           c.ID,
			"externalID":   c.ExternalID,
			"platform":     c.Platform,
			"name":         c.Name,
			"lastUpdated":  c.LastUpdated,
			"authRequired": c.AuthRequired,
			"position":     i,
		}
		if _, err := tx.Exec(ctx, insert, args); err != nil {
			return fmt.Errorf("error inserting league connection %s: %w", c.ID, err)
		}
	}

	return tx.Commit(ctx)
}

func (db *postgresDB) ListLeagueConnections(ctx context.Context) ([]model.LeagueConnection, error) {
	const query = `SELECT id, external_id, platform, name, last_updated, auth_required
		FROM league_connections ORDER BY position`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing league connections: %w", err)
	}
	defer rows.Close()

	results := make([]model.LeagueConnection, 0, 4)
	for rows.Next() {
		var c model.LeagueConnection
		var lastUpdated pgtype.Timestamptz
		if err := rows.Scan(&c.ID, &c.ExternalID, &c.Platform, &c.Name, &lastUpdated, &c.AuthRequired); err != nil {
			return nil, fmt.Errorf("error scanning league connection: %w", err)
		}
		c.LastUpdated = lastUpdated.Time
		results = append(results, c)
	}

	return results, rows.Err()
}

func (db *postgresDB) SaveLeagueContext(ctx context.Context, lc *model.LeagueContext) error {
	const query = `INSERT INTO league_contexts (league_id, content) VALUES (@leagueID, @content)
		ON CONFLICT (league_id) DO UPDATE SET content=EXCLUDED.content`

	content, err := json.Marshal(lc)
	if err != nil {
		return fmt.Errorf("error encoding league context: %w", err)
	}

	args := pgx.NamedArgs{
		"leagueID": lc.LeagueID,
		"content":  content,
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error saving league context: %w", err)
	}
	return nil
}

func (db *postgresDB) GetLeagueContext(ctx context.Context, leagueID string) (*model.LeagueContext, error) {
	const query = `SELECT content FROM league_contexts WHERE league_id=@leagueID`

	var content []byte
	err := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"leagueID": leagueID}).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error loading league context: %w", err)
	}

	var lc model.LeagueContext
	if err := json.Unmarshal(content, &lc); err != nil {
		return nil, fmt.Errorf("error decoding league context: %w", err)
	}
	return &lc, nil
}

func (db *postgresDB) SaveTeamSnapshot(ctx context.Context, leagueID string, teams []model.Team, inputHash string) error {
	const query = `INSERT INTO team_snapshots (league_id, teams, input_hash, created)
		VALUES (@leagueID, @teams, @inputHash, @created)
		ON CONFLICT (league_id) DO UPDATE
			SET teams=EXCLUDED.teams, input_hash=EXCLUDED.input_hash, created=EXCLUDED.created`

	encoded, err := json.Marshal(teams)
	if err != nil {
		return fmt.Errorf("error encoding team snapshot: %w", err)
	}

	args := pgx.NamedArgs{
		"leagueID":  leagueID,
		"teams":     encoded,
		"inputHash": nullString(inputHash),
		"created":   db.clock.Now().UTC(),
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error saving team snapshot: %w", err)
	}
	return nil
}

func (db *postgresDB) GetTeamSnapshot(ctx context.Context, leagueID string) (*TeamSnapshot, error) {
	const query = `SELECT teams, input_hash, created FROM team_snapshots WHERE league_id=@leagueID`

	var encoded []byte
	var inputHash *string
	var created pgtype.Timestamptz
	err := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"leagueID": leagueID}).Scan(&encoded, &inputHash, &created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("error loading team snapshot: %w", err)
	}

	s := &TeamSnapshot{
		LeagueID: leagueID,
		Created:  created.Time,
	}
	if inputHash != nil {
		s.InputHash = *inputHash
	}
	if err := json.Unmarshal(encoded, &s.Teams); err != nil {
		return nil, fmt.Errorf("error decoding team snapshot: %w", err)
	}
	return s, nil
}

func (db *postgresDB) GetSnapshotAge(ctx context.Context, leagueID string) (*time.Duration, error) {
	const query = `SELECT created FROM team_snapshots WHERE league_id=@leagueID`

	var created pgtype.Timestamptz
	err := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"leagueID": leagueID}).Scan(&created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error loading team snapshot age: %w", err)
	}

	age := db.clock.Now().Sub(created.Time)
	return &age, nil
}

func (db *postgresDB) IsSnapshotStale(ctx context.Context, leagueID string) (bool, error) {
	age, err := db.GetSnapshotAge(ctx, leagueID)
	if err != nil {
		return false, err
	}
	if age == nil {
		return true, nil
	}
	return *age > SnapshotStaleAge, nil
}

func (db *postgresDB) SaveWeeklyRoast(ctx context.Context, rc *model.WeeklyRoastCache) error {
	const query = `INSERT INTO weekly_roasts (league_id, week, roasts, teams, input_hash, created)
		VALUES (@leagueID, @week, @roasts, @teams, @inputHash, @created)
		ON CONFLICT (league_id, week) DO UPDATE
			SET roasts=EXCLUDED.roasts, teams=EXCLUDED.teams, input_hash=EXCLUDED.input_hash, created=EXCLUDED.created`

	roasts, err := json.Marshal(rc.Roasts)
	if err != nil {
		return fmt.Errorf("error encoding roasts: %w", err)
	}

	var teams []byte
	if rc.Teams != nil {
		teams, err = json.Marshal(rc.Teams)
		if err != nil {
			return fmt.Errorf("error encoding roast team snapshot: %w", err)
		}
	}

	generated := rc.Generated
	if generated.IsZero() {
		generated = db.clock.Now().UTC()
	}

	args := pgx.NamedArgs{
		"leagueID":  rc.LeagueID,
		"week":      rc.Week,
		"roasts":    roasts,
		"teams":     teams,
		"inputHash": nullString(rc.InputHash),
		"created":   generated,
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error saving weekly roast: %w", err)
	}
	return nil
}

func (db *postgresDB) GetWeeklyRoast(ctx context.Context, leagueID string, week int) (*model.WeeklyRoastCache, error) {
	const query = `SELECT roasts, teams, input_hash, created FROM weekly_roasts
		WHERE league_id=@leagueID AND week=@week`

	args := pgx.NamedArgs{
		"leagueID": leagueID,
		"week":     week,
	}

	var roasts, teams []byte
	var inputHash *string
	var created pgtype.Timestamptz
	err := db.pool.QueryRow(ctx, query, args).Scan(&roasts, &teams, &inputHash, &created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoastNotFound
		}
		return nil, fmt.Errorf("error loading weekly roast: %w", err)
	}

	rc := &model.WeeklyRoastCache{
		LeagueID:  leagueID,
		Week:      week,
		Generated: created.Time,
	}
	if inputHash != nil {
		rc.InputHash = *inputHash
	}
	if err := json.Unmarshal(roasts, &rc.Roasts); err != nil {
		return nil, fmt.Errorf("error decoding roasts: %w", err)
	}
	if teams != nil {
		if err := json.Unmarshal(teams, &rc.Teams); err != nil {
			return nil, fmt.Errorf("error decoding roast team snapshot: %w", err)
		}
	}
	return rc, nil
}

func (db *postgresDB) ListRoastWeeks(ctx context.Context, leagueID string) ([]int, error) {
	const query = `SELECT week FROM weekly_roasts WHERE league_id=@leagueID ORDER BY week`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	if err != nil {
		return nil, fmt.Errorf("error listing roast weeks: %w", err)
	}
	defer rows.Close()

	weeks := make([]int, 0, 8)
	for rows.Next() {
		var w int
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("error scanning roast week: %w", err)
		}
		weeks = append(weeks, w)
	}
	return weeks, rows.Err()
}

func (db *postgresDB) DeleteAllRoasts(ctx context.Context, leagueID string) error {
	const query = `DELETE FROM weekly_roasts WHERE league_id=@leagueID`

	if _, err := db.pool.Exec(ctx, query, pgx.NamedArgs{"leagueID": leagueID}); err != nil {
		return fmt.Errorf("error deleting roasts for league %s: %w", leagueID, err)
	}
	return nil
}

func (db *postgresDB) SaveLastViewedLeague(ctx context.Context, leagueID string) error {
	const query = `INSERT INTO app_state (key, value) VALUES (@key, @value)
		ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value`

	args := pgx.NamedArgs{
		"key":   lastViewedKey,
		"value": leagueID,
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error saving last viewed league: %w", err)
	}
	return nil
}

func (db *postgresDB) GetLastViewedLeague(ctx context.Context) (string, error) {
	const query = `SELECT value FROM app_state WHERE key=@key`

	var value string
	err := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"key": lastViewedKey}).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("error loading last viewed league: %w", err)
	}
	return value, nil
}

func (db *postgresDB) DeleteLeagueData(ctx context.Context, leagueID string) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{"leagueID": leagueID}
	for _, query := range []string{
		`DELETE FROM league_contexts WHERE league_id=@leagueID`,
		`DELETE FROM team_snapshots WHERE league_id=@leagueID`,
		`DELETE FROM weekly_roasts WHERE league_id=@leagueID`,
	} {
		if _, err := tx.Exec(ctx, query, args); err != nil {
			return fmt.Errorf("error deleting league data for %s: %w", leagueID, err)
		}
	}

	return tx.Commit(ctx)
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
