package handlers

import (
	"net/http"
	"strconv"

	"trace-sample-service/internal/adapters/primary/http/dto"
	"trace-sample-service/internal/core/domain"
	"trace-sample-service/internal/core/ports/output"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) Root(c *gin.Context) {
	if _, err := h.probeSvc.Root(c.Request.Context()); err != nil {
		log.WithContext(c.Request.Context()).WithError(err).Error("root probe failed")
		mapDomainError(c, err)
		return
	}
	c.String(http.StatusOK, "ok")
}

func (h *Handler) CauseError(c *gin.Context) {
	if _, err := h.probeSvc.CauseError(c.Request.Context()); err != nil {
		mapDomainError(c, err)
		return
	}
	c.String(http.StatusOK, "ok")
}

func (h *Handler) Health(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ListProbeRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := ports.ProbeRunListFilter{
		Kind:   c.Query("kind"),
		Limit:  limit,
		Offset: offset,
	}

	runs, total, err := h.probeSvc.List(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Error("list probe runs failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.ProbeRunResponse, 0, len(runs))
	for _, r := range runs {
		items = append(items, dto.ToProbeRunResponse(r))
	}

	c.JSON(http.StatusOK, dto.ListProbeRunsResponse{
		Items:      items,
		Total:      total,
		PageSize:   len(items),
		NextOffset: offset + len(items),
	})
}

func (h *Handler) GetProbeRun(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		mapDomainError(c, domain.ErrInvalidProbeRun)
		return
	}

	run, err := h.probeSvc.Get(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProbeRunResponse(run))
}
