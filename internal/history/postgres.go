package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"
)

// PostgresStore persists runs to a solver_runs table:
//
//	CREATE TABLE solver_runs (
//	    id           text PRIMARY KEY,
//	    seed         bigint NOT NULL,
//	    score        integer NOT NULL,
//	    feasible     boolean NOT NULL,
//	    recorded_at  timestamptz NOT NULL
//	);
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore wraps an already-open database handle.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type runRow struct {
	ID         string    `db:"id"`
	Seed       int64     `db:"seed"`
	Score      int       `db:"score"`
	Feasible   bool      `db:"feasible"`
	RecordedAt time.Time `db:"recorded_at"`
}

func (s *PostgresStore) RecordRun(ctx context.Context, run Run) error {
	const query = `INSERT INTO solver_runs (id, seed, score, feasible, recorded_at)
		VALUES (:id, :seed, :score, :feasible, :recorded_at)`
	row := runRow{
		ID:         run.ID,
		Seed:       run.Seed,
		Score:      run.Score,
		Feasible:   run.Feasible,
		RecordedAt: run.RecordedAt.UTC(),
	}
	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("record solver run: %w", err)
	}
	return nil
}

func (s *PostgresStore) BestRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `SELECT id, seed, score, feasible, recorded_at FROM solver_runs
		WHERE feasible = true ORDER BY score DESC, recorded_at ASC LIMIT $1`
	var rows []runRow
	if err := s.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("list best solver runs: %w", err)
	}

	runs := make([]Run, 0, len(rows))
	for _, r := range rows {
		runs = append(runs, Run{
			ID:         r.ID,
			Seed:       r.Seed,
			Score:      r.Score,
			Feasible:   r.Feasible,
			RecordedAt: r.RecordedAt,
		})
	}
	return runs, nil
}
