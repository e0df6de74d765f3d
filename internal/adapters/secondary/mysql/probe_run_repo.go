package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"trace-sample-service/internal/core/domain"
	"trace-sample-service/internal/core/ports/output"
)

type probeRunRepo struct {
	db *sql.DB
}

func NewProbeRunRepository(db *sql.DB) ports.ProbeRunRepository {
	return &probeRunRepo{db: db}
}

func (r *probeRunRepo) Create(ctx context.Context, run *domain.ProbeRun) error {
	query := `
		INSERT INTO probe_run
			(id, created_at, kind, outcome, result, error, duration_ms, trace_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	var result sql.NullInt64
	if run.Result != nil {
		result = sql.NullInt64{Int64: *run.Result, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		run.ID.String(), run.CreatedAt, string(run.Kind), string(run.Outcome),
		result, run.Error, run.DurationMs, run.TraceID,
	)
	if err != nil {
		return fmt.Errorf("create probe run: %w", err)
	}
	return nil
}

func (r *probeRunRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProbeRun, error) {
	query := `
		SELECT id, created_at, kind, outcome, result, error, duration_ms, trace_id
		FROM probe_run
		WHERE id = ?
	`
	run, err := scanProbeRun(r.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProbeRunNotFound
		}
		return nil, fmt.Errorf("get probe run: %w", err)
	}
	return run, nil
}

func (r *probeRunRepo) List(ctx context.Context, filter ports.ProbeRunListFilter) ([]*domain.ProbeRun, int, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.Kind != "" {
		conditions = append(conditions, "kind = ?")
		args = append(args, filter.Kind)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM probe_run " + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count probe runs: %w", err)
	}

	listQuery := `
		SELECT id, created_at, kind, outcome, result, error, duration_ms, trace_id
		FROM probe_run ` + where + `
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list probe runs: %w", err)
	}
	defer rows.Close()

	runs := make([]*domain.ProbeRun, 0)
	for rows.Next() {
		run, err := scanProbeRun(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan probe run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate probe runs: %w", err)
	}

	return runs, total, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProbeRun(row scanner) (*domain.ProbeRun, error) {
	var (
		run     domain.ProbeRun
		id      string
		kind    string
		outcome string
		result  sql.NullInt64
	)
	if err := row.Scan(&id, &run.CreatedAt, &kind, &outcome, &result, &run.Error, &run.DurationMs, &run.TraceID); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse probe run id %q: %w", id, err)
	}
	run.ID = parsed
	run.Kind = domain.ProbeKind(kind)
	run.Outcome = domain.ProbeOutcome(outcome)
	if result.Valid {
		v := result.Int64
		run.Result = &v
	}
	return &run, nil
}
