package domain

import (
	"time"

	"github.com/google/uuid"
)

type ProbeKind string

const (
	ProbeKindRoot       ProbeKind = "root"
	ProbeKindCauseError ProbeKind = "cause_error"
)

func (k ProbeKind) Valid() bool {
	switch k {
	case ProbeKindRoot, ProbeKindCauseError:
		return true
	}
	return false
}

type ProbeOutcome string

const (
	ProbeOutcomeOK     ProbeOutcome = "ok"
	ProbeOutcomeFailed ProbeOutcome = "failed"
)

// ProbeRun records a single execution of a probe endpoint.
type ProbeRun struct {
	ID         uuid.UUID
	CreatedAt  time.Time
	Kind       ProbeKind
	Outcome    ProbeOutcome
	Result     *int64
	Error      string
	DurationMs int64
	TraceID    string
}
