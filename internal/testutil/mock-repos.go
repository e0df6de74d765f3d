package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"trace-sample-service/internal/core/domain"
	"trace-sample-service/internal/core/ports/output"
)

// MockProbeRepo is a mock of ProbeRepository.
type MockProbeRepo struct {
	mock.Mock
}

func (m *MockProbeRepo) FetchRow(ctx context.Context, query string) (int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProbeRepo) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockProbeRunRepo is a mock of ProbeRunRepository.
type MockProbeRunRepo struct {
	mock.Mock
}

func (m *MockProbeRunRepo) Create(ctx context.Context, run *domain.ProbeRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockProbeRunRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProbeRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProbeRun), args.Error(1)
}

func (m *MockProbeRunRepo) List(ctx context.Context, filter ports.ProbeRunListFilter) ([]*domain.ProbeRun, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.ProbeRun), args.Int(1), args.Error(2)
}

// MockHasher is a mock of PasswordHasher.
type MockHasher struct {
	mock.Mock
}

func (m *MockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}
