package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playmaker/playmaker-data/internal/config"
	"github.com/playmaker/playmaker-data/internal/schema"
)

// Postgres is a Store backed by a pgxpool with prepared statements. Each
// record is one row: (dataset, position, data jsonb). Field merges are a
// single JSONB concatenation, so a write touches only the row it targets.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates and validates a connection pool for the team-record
// store.
func NewPostgres(ctx context.Context, cfg *config.Config) (*Postgres, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Postgres) HealthCheck(ctx context.Context) error {
	var n int
	return p.pool.QueryRow(ctx, "health_check").Scan(&n)
}

// GetRecords returns the dataset's records in position order.
func (p *Postgres) GetRecords(ctx context.Context, datasetID string) ([]schema.TeamRecord, error) {
	rows, err := p.pool.Query(ctx, "get_team_records", datasetID)
	if err != nil {
		return nil, fmt.Errorf("query team records: %w", err)
	}
	defer rows.Close()

	var records []schema.TeamRecord
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan team record: %w", err)
		}
		var rec schema.TeamRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode team record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team records: %w", err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDataset, datasetID)
	}
	return records, nil
}

// ReplaceFields merges fields into the record at teamIndex via JSONB
// concatenation.
func (p *Postgres) ReplaceFields(ctx context.Context, datasetID string, teamIndex int, fields map[string]any) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode field patch: %w", err)
	}
	tag, err := p.pool.Exec(ctx, "replace_team_fields", datasetID, teamIndex, patch)
	if err != nil {
		return fmt.Errorf("replace fields: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("dataset %s: team index %d not found", datasetID, teamIndex)
	}
	return nil
}

// CountRecords returns the number of records stored for a dataset.
func (p *Postgres) CountRecords(ctx context.Context, datasetID string) (int, error) {
	var n int
	if err := p.pool.QueryRow(ctx, "count_team_records", datasetID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count team records: %w", err)
	}
	return n, nil
}

// registerPreparedStatements registers all statements the store uses.
// Prepared statements eliminate parse overhead on every enrichment write.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		"health_check": "SELECT 1",

		"get_team_records": "SELECT data FROM " + config.TeamRecordsTable +
			" WHERE dataset = $1 ORDER BY position",

		"replace_team_fields": "UPDATE " + config.TeamRecordsTable +
			" SET data = data || $3::jsonb, updated_at = now()" +
			" WHERE dataset = $1 AND position = $2",

		"count_team_records": "SELECT count(*) FROM " + config.TeamRecordsTable +
			" WHERE dataset = $1",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
