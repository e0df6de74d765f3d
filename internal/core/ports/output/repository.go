package ports

import (
	"context"

	"github.com/google/uuid"

	"trace-sample-service/internal/core/domain"
)

type ProbeRunListFilter struct {
	Kind   string
	Limit  int
	Offset int
}

// ProbeRepository runs raw statements against the backing database.
type ProbeRepository interface {
	// FetchRow executes query and scans the first column of the first row.
	FetchRow(ctx context.Context, query string) (int64, error)
	Ping(ctx context.Context) error
}

type ProbeRunRepository interface {
	Create(ctx context.Context, run *domain.ProbeRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ProbeRun, error)
	List(ctx context.Context, filter ProbeRunListFilter) ([]*domain.ProbeRun, int, error)
}
