package db

import (
	"context"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/skillsim/internal/game/status"
)

// StatusRepository stores persistable statuses per character name.
type StatusRepository struct {
	db *pgxpool.Pool
}

// NewStatusRepository creates a new StatusRepository.
func NewStatusRepository(db *pgxpool.Pool) *StatusRepository {
	return &StatusRepository{db: db}
}

const insertStatus = `
	INSERT INTO character_statuses
		(character_name, kind, caster_name, remaining_ms, secondary, params)
	VALUES ($1, $2, $3, $4, $5, $6)
`

// Save replaces the statuses of one character in a single transaction.
func (r *StatusRepository) Save(ctx context.Context, name string, recs []status.Record) error {
	return r.replace(ctx, map[string][]status.Record{name: recs}, false)
}

// SaveAll replaces the whole snapshot: characters missing from snapshot lose
// their saved statuses.
func (r *StatusRepository) SaveAll(ctx context.Context, snapshot map[string][]status.Record) error {
	return r.replace(ctx, snapshot, true)
}

func (r *StatusRepository) replace(ctx context.Context, snapshot map[string][]status.Record, all bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // no-op after commit
	}()

	if all {
		if _, err := tx.Exec(ctx, `DELETE FROM character_statuses`); err != nil {
			return fmt.Errorf("deleting status snapshot: %w", err)
		}
	}

	batch := &pgx.Batch{}
	for _, name := range slices.Sorted(maps.Keys(snapshot)) {
		if !all {
			batch.Queue(`DELETE FROM character_statuses WHERE character_name = $1`, name)
		}
		for _, rec := range snapshot[name] {
			params := rec.Params
			if params == nil {
				params = map[string]string{}
			}
			batch.Queue(insertStatus,
				name,
				string(rec.Kind),
				rec.CasterName,
				int64(math.Round(rec.Remaining*1000)),
				rec.Secondary,
				params,
			)
		}
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("writing statuses: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing statuses: %w", err)
	}
	return nil
}

// Load returns the saved statuses of one character, oldest first.
func (r *StatusRepository) Load(ctx context.Context, name string) ([]status.Record, error) {
	rows, err := r.db.Query(ctx, `
		SELECT character_name, kind, caster_name, remaining_ms, secondary, params
		FROM character_statuses
		WHERE character_name = $1
		ORDER BY id
	`, name)
	if err != nil {
		return nil, fmt.Errorf("querying statuses for %q: %w", name, err)
	}

	out, err := scanStatuses(rows)
	if err != nil {
		return nil, err
	}
	return out[name], nil
}

// LoadAll returns every saved status keyed by character name.
func (r *StatusRepository) LoadAll(ctx context.Context) (map[string][]status.Record, error) {
	rows, err := r.db.Query(ctx, `
		SELECT character_name, kind, caster_name, remaining_ms, secondary, params
		FROM character_statuses
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying statuses: %w", err)
	}
	return scanStatuses(rows)
}

func scanStatuses(rows pgx.Rows) (map[string][]status.Record, error) {
	defer rows.Close()

	out := make(map[string][]status.Record)
	for rows.Next() {
		var (
			name, kind  string
			rec         status.Record
			remainingMs int64
		)
		if err := rows.Scan(&name, &kind, &rec.CasterName, &remainingMs, &rec.Secondary, &rec.Params); err != nil {
			return nil, fmt.Errorf("scanning status row: %w", err)
		}
		rec.Kind = status.Kind(kind)
		rec.Remaining = float64(remainingMs) / 1000
		out[name] = append(out[name], rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status rows: %w", err)
	}
	return out, nil
}
