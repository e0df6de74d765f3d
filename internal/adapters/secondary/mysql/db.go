package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	driver "github.com/go-sql-driver/mysql"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"trace-sample-service/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS probe_run (
	id          CHAR(36)    NOT NULL PRIMARY KEY,
	created_at  DATETIME(6) NOT NULL,
	kind        VARCHAR(32) NOT NULL,
	outcome     VARCHAR(16) NOT NULL,
	result      BIGINT      NULL,
	error       TEXT        NOT NULL,
	duration_ms BIGINT      NOT NULL,
	trace_id    VARCHAR(32) NOT NULL DEFAULT '',
	INDEX idx_probe_run_kind_created (kind, created_at)
)`

// DSN builds a go-sql-driver DSN from cfg.
func DSN(cfg config.DatabaseConfig) string {
	mc := driver.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	mc.DBName = cfg.Name
	mc.ParseTime = true
	return mc.FormatDSN()
}

// Open returns a connection pool whose queries are traced as child spans of
// the caller's context.
func Open(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := otelsql.Open("mysql", DSN(cfg),
		otelsql.WithAttributes(semconv.DBSystemMySQL),
		otelsql.WithSpanOptions(otelsql.SpanOptions{DisableErrSkip: true}),
	)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// EnsureSchema creates the tables used by the service if they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
