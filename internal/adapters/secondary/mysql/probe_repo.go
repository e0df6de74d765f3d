package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trace-sample-service/internal/core/domain"
	"trace-sample-service/internal/core/ports/output"
)

type probeRepo struct {
	db *sql.DB
}

func NewProbeRepository(db *sql.DB) ports.ProbeRepository {
	return &probeRepo{db: db}
}

func (r *probeRepo) FetchRow(ctx context.Context, query string) (int64, error) {
	var result int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&result); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: no rows", domain.ErrFetchRow)
		}
		return 0, fmt.Errorf("fetch row: %w", err)
	}
	return result, nil
}

func (r *probeRepo) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDatabaseUnavailable, err)
	}
	return nil
}
