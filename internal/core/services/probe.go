package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"trace-sample-service/internal/core/domain"
	"trace-sample-service/internal/core/ports/output"
	"trace-sample-service/internal/metrics"
)

const (
	rootQuery     = "SELECT 1 + 1 AS result"
	brokenQuery   = "SQL SYNTAX ERROR"
	probePassword = "password"

	spanHash     = "some process"
	spanFetchRow = "fetch row"
)

type ProbeService struct {
	probes ports.ProbeRepository
	runs   ports.ProbeRunRepository
	hasher ports.PasswordHasher
	tracer trace.Tracer
}

func NewProbeService(probes ports.ProbeRepository, runs ports.ProbeRunRepository, hasher ports.PasswordHasher, tracer trace.Tracer) *ProbeService {
	return &ProbeService{probes: probes, runs: runs, hasher: hasher, tracer: tracer}
}

// Root hashes a fixed password and reads a computed row. A failed read is
// returned to the caller.
func (s *ProbeService) Root(ctx context.Context) (*domain.ProbeRun, error) {
	start := time.Now()
	log.WithContext(ctx).Info("processing request")

	s.hash(ctx)

	result, err := s.fetchRow(ctx, rootQuery)
	run := s.newRun(ctx, domain.ProbeKindRoot, start)
	if err != nil {
		run.Outcome = domain.ProbeOutcomeFailed
		run.Error = err.Error()
		s.record(ctx, run)
		return run, fmt.Errorf("%w: %v", domain.ErrFetchRow, err)
	}

	run.Result = &result
	s.record(ctx, run)
	return run, nil
}

// CauseError runs a statement the database always rejects. The failure is
// logged and traced, never returned.
func (s *ProbeService) CauseError(ctx context.Context) (*domain.ProbeRun, error) {
	start := time.Now()
	entry := log.WithContext(ctx)
	entry.Info("processing request")
	entry.Warn("possible error")

	result, err := s.fetchRow(ctx, brokenQuery)
	run := s.newRun(ctx, domain.ProbeKindCauseError, start)
	if err != nil {
		entry.WithError(err).Error("fetch row failed")
		run.Outcome = domain.ProbeOutcomeFailed
		run.Error = err.Error()
	} else {
		run.Result = &result
	}

	s.record(ctx, run)
	return run, nil
}

func (s *ProbeService) Get(ctx context.Context, id uuid.UUID) (*domain.ProbeRun, error) {
	return s.runs.GetByID(ctx, id)
}

func (s *ProbeService) List(ctx context.Context, filter ports.ProbeRunListFilter) ([]*domain.ProbeRun, int, error) {
	if filter.Kind != "" && !domain.ProbeKind(filter.Kind).Valid() {
		return nil, 0, domain.ErrInvalidProbeKind
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.runs.List(ctx, filter)
}

func (s *ProbeService) hash(ctx context.Context) {
	_, span := s.tracer.Start(ctx, spanHash)
	defer span.End()

	if _, err := s.hasher.Hash(probePassword); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, domain.ErrHashPassword.Error())
		log.WithContext(ctx).WithError(err).Warn("hash password failed")
	}
}

func (s *ProbeService) fetchRow(ctx context.Context, query string) (int64, error) {
	ctx, span := s.tracer.Start(ctx, spanFetchRow)
	defer span.End()

	result, err := s.probes.FetchRow(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, domain.ErrFetchRow.Error())
		return 0, err
	}
	return result, nil
}

func (s *ProbeService) newRun(ctx context.Context, kind domain.ProbeKind, start time.Time) *domain.ProbeRun {
	run := &domain.ProbeRun{
		ID:         uuid.New(),
		CreatedAt:  start.UTC(),
		Kind:       kind,
		Outcome:    domain.ProbeOutcomeOK,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		run.TraceID = sc.TraceID().String()
	}
	return run
}

// record persists run on a best-effort basis.
func (s *ProbeService) record(ctx context.Context, run *domain.ProbeRun) {
	metrics.ProbeRuns.WithLabelValues(string(run.Kind), string(run.Outcome)).Inc()

	if err := s.runs.Create(ctx, run); err != nil {
		metrics.ProbeRecordFailures.Inc()
		log.WithContext(ctx).WithError(err).WithField("probe_run_id", run.ID).Warn("record probe run failed")
	}
}
