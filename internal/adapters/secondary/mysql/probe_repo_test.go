package mysql

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trace-sample-service/internal/config"
	"trace-sample-service/internal/core/domain"
	"trace-sample-service/internal/core/ports/output"
)

var probeRunColumns = []string{"id", "created_at", "kind", "outcome", "result", "error", "duration_ms", "trace_id"}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "127.0.0.1", Port: 3306, User: "user", Password: "password", Name: "mydb"})
	assert.Equal(t, "user:password@tcp(127.0.0.1:3306)/mydb?parseTime=true", dsn)
}

func TestEnsureSchema(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS probe_run").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, EnsureSchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProbeRepo_FetchRow(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 + 1 AS result")).
		WillReturnRows(sqlmock.NewRows([]string{"result"}).AddRow(2))

	result, err := NewProbeRepository(db).FetchRow(context.Background(), "SELECT 1 + 1 AS result")
	require.NoError(t, err)
	assert.Equal(t, int64(2), result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProbeRepo_FetchRow_SyntaxError(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SQL SYNTAX ERROR").WillReturnError(errors.New("Error 1064 (42000): syntax"))

	_, err := NewProbeRepository(db).FetchRow(context.Background(), "SQL SYNTAX ERROR")
	assert.ErrorContains(t, err, "1064")
}

func TestProbeRepo_FetchRow_NoRows(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"result"}))

	_, err := NewProbeRepository(db).FetchRow(context.Background(), "SELECT 1 WHERE FALSE")
	assert.ErrorIs(t, err, domain.ErrFetchRow)
}

func TestProbeRepo_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("dial tcp: connection refused"))
	err = NewProbeRepository(db).Ping(context.Background())
	assert.ErrorIs(t, err, domain.ErrDatabaseUnavailable)
}

func TestProbeRunRepo_Create(t *testing.T) {
	db, mock := newMock(t)
	result := int64(2)
	run := &domain.ProbeRun{
		ID: uuid.New(), CreatedAt: time.Now().UTC(), Kind: domain.ProbeKindRoot,
		Outcome: domain.ProbeOutcomeOK, Result: &result, DurationMs: 12, TraceID: "abc",
	}
	mock.ExpectExec("INSERT INTO probe_run").
		WithArgs(run.ID.String(), run.CreatedAt, "root", "ok", sql.NullInt64{Int64: 2, Valid: true}, "", int64(12), "abc").
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, NewProbeRunRepository(db).Create(context.Background(), run))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProbeRunRepo_GetByID(t *testing.T) {
	db, mock := newMock(t)
	id := uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, created_at, kind").
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(probeRunColumns).
			AddRow(id.String(), now, "cause_error", "failed", nil, "syntax", 3, "trace"))

	run, err := NewProbeRunRepository(db).GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, run.ID)
	assert.Equal(t, domain.ProbeKindCauseError, run.Kind)
	assert.Equal(t, domain.ProbeOutcomeFailed, run.Outcome)
	assert.Nil(t, run.Result)
	assert.Equal(t, "syntax", run.Error)
}

func TestProbeRunRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT id, created_at, kind").WillReturnRows(sqlmock.NewRows(probeRunColumns))

	_, err := NewProbeRunRepository(db).GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrProbeRunNotFound)
}

func TestProbeRunRepo_List(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM probe_run WHERE kind = ?")).
		WithArgs("root").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("ORDER BY created_at DESC").
		WithArgs("root", 10, 0).
		WillReturnRows(sqlmock.NewRows(probeRunColumns).
			AddRow(uuid.NewString(), now, "root", "ok", 2, "", 5, "").
			AddRow(uuid.NewString(), now.Add(-time.Second), "root", "ok", 2, "", 4, ""))

	runs, total, err := NewProbeRunRepository(db).List(context.Background(), ports.ProbeRunListFilter{Kind: "root", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, runs, 2)
	require.NotNil(t, runs[0].Result)
	assert.Equal(t, int64(2), *runs[0].Result)
	assert.NoError(t, mock.ExpectationsWereMet())
}
