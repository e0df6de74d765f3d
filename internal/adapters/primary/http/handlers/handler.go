package handlers

import (
	"trace-sample-service/internal/core/ports/output"
	"trace-sample-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	probeSvc *services.ProbeService
	db       ports.ProbeRepository
}

func New(probeSvc *services.ProbeService, db ports.ProbeRepository) *Handler {
	return &Handler{
		probeSvc: probeSvc,
		db:       db,
	}
}

// RegisterProbes mounts the probe endpoints at the router root.
func (h *Handler) RegisterProbes(r gin.IRoutes) {
	r.GET("/", h.Root)
	r.GET("/cause_error", h.CauseError)
	r.GET("/healthz", h.Health)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Probe runs
	r.GET("/probes/runs", h.ListProbeRuns)
	r.GET("/probes/runs/:id", h.GetProbeRun)
}
