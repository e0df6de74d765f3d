package dto

import (
	"time"

	"trace-sample-service/internal/core/domain"
)

type ProbeRunResponse struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Kind       string    `json:"kind"`
	Outcome    string    `json:"outcome"`
	Result     *int64    `json:"result,omitempty"`
	Error      string    `json:"error,omitempty"`
	DurationMs int64     `json:"duration_ms"`
	TraceID    string    `json:"trace_id,omitempty"`
}

type ListProbeRunsResponse struct {
	Items      []ProbeRunResponse `json:"items"`
	Total      int                `json:"total"`
	PageSize   int                `json:"page_size"`
	NextOffset int                `json:"next_offset"`
}

func ToProbeRunResponse(r *domain.ProbeRun) ProbeRunResponse {
	return ProbeRunResponse{
		ID:         r.ID.String(),
		CreatedAt:  r.CreatedAt,
		Kind:       string(r.Kind),
		Outcome:    string(r.Outcome),
		Result:     r.Result,
		Error:      r.Error,
		DurationMs: r.DurationMs,
		TraceID:    r.TraceID,
	}
}
