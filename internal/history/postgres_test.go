package history

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoreMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestPostgresStoreRecordRun(t *testing.T) {
	db, mock, cleanup := newStoreMock(t)
	defer cleanup()
	store := NewPostgresStore(db)

	mock.ExpectExec("INSERT INTO solver_runs").
		WithArgs("run-1", int64(42), 85, true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := store.RecordRun(context.Background(), Run{
		ID:         "run-1",
		Seed:       42,
		Score:      85,
		Feasible:   true,
		RecordedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreBestRuns(t *testing.T) {
	db, mock, cleanup := newStoreMock(t)
	defer cleanup()
	store := NewPostgresStore(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "seed", "score", "feasible", "recorded_at"}).
		AddRow("run-2", int64(7), 95, true, now).
		AddRow("run-1", int64(42), 85, true, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, seed, score, feasible, recorded_at FROM solver_runs")).
		WithArgs(10).
		WillReturnRows(rows)

	runs, err := store.BestRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, 95, runs[0].Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}
