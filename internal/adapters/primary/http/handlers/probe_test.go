package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trace-sample-service/internal/adapters/primary/http/dto"
	"trace-sample-service/internal/core/domain"
	"trace-sample-service/internal/core/ports/output"
	"trace-sample-service/internal/core/services"
	"trace-sample-service/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type probeMocks struct {
	probes *testutil.MockProbeRepo
	runs   *testutil.MockProbeRunRepo
	hasher *testutil.MockHasher
}

func setupProbeRouter() (*probeMocks, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	m := &probeMocks{
		probes: new(testutil.MockProbeRepo),
		runs:   new(testutil.MockProbeRunRepo),
		hasher: new(testutil.MockHasher),
	}

	svc := services.NewProbeService(m.probes, m.runs, m.hasher, noop.NewTracerProvider().Tracer("test"))
	h := New(svc, m.probes)
	r := gin.New()
	h.RegisterProbes(r)
	h.RegisterRoutes(r.Group("/api/v1"))

	return m, r
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoot(t *testing.T) {
	m, r := setupProbeRouter()
	m.hasher.On("Hash", "password").Return("hash", nil)
	m.probes.On("FetchRow", mock.Anything, "SELECT 1 + 1 AS result").Return(int64(2), nil)
	m.runs.On("Create", mock.Anything, mock.AnythingOfType("*domain.ProbeRun")).Return(nil)

	w := serve(r, "GET", "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestRoot_FetchFails(t *testing.T) {
	m, r := setupProbeRouter()
	m.hasher.On("Hash", "password").Return("hash", nil)
	m.probes.On("FetchRow", mock.Anything, "SELECT 1 + 1 AS result").Return(int64(0), errors.New("bad connection"))
	m.runs.On("Create", mock.Anything, mock.AnythingOfType("*domain.ProbeRun")).Return(nil)

	w := serve(r, "GET", "/")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCauseError_AlwaysOK(t *testing.T) {
	m, r := setupProbeRouter()
	m.probes.On("FetchRow", mock.Anything, "SQL SYNTAX ERROR").Return(int64(0), errors.New("Error 1064"))
	m.runs.On("Create", mock.Anything, mock.AnythingOfType("*domain.ProbeRun")).Return(nil)

	w := serve(r, "GET", "/cause_error")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestHealth(t *testing.T) {
	m, r := setupProbeRouter()
	m.probes.On("Ping", mock.Anything).Return(nil)

	w := serve(r, "GET", "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealth_Unavailable(t *testing.T) {
	m, r := setupProbeRouter()
	m.probes.On("Ping", mock.Anything).Return(domain.ErrDatabaseUnavailable)

	w := serve(r, "GET", "/healthz")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unhealthy")
}

func TestListProbeRuns(t *testing.T) {
	m, r := setupProbeRouter()
	result := int64(2)
	runs := []*domain.ProbeRun{
		{ID: uuid.New(), CreatedAt: time.Now(), Kind: domain.ProbeKindRoot, Outcome: domain.ProbeOutcomeOK, Result: &result},
	}
	m.runs.On("List", mock.Anything, ports.ProbeRunListFilter{Kind: "root", Limit: 5, Offset: 10}).Return(runs, 11, nil)

	w := serve(r, "GET", "/api/v1/probes/runs?kind=root&limit=5&offset=10")

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ListProbeRunsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 11, resp.Total)
	assert.Equal(t, 11, resp.NextOffset)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "root", resp.Items[0].Kind)
}

func TestListProbeRuns_InvalidKind(t *testing.T) {
	_, r := setupProbeRouter()

	w := serve(r, "GET", "/api/v1/probes/runs?kind=nope")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProbeRun(t *testing.T) {
	m, r := setupProbeRouter()
	id := uuid.New()
	m.runs.On("GetByID", mock.Anything, id).Return(&domain.ProbeRun{
		ID: id, Kind: domain.ProbeKindCauseError, Outcome: domain.ProbeOutcomeFailed, Error: "syntax",
	}, nil)

	w := serve(r, "GET", "/api/v1/probes/runs/"+id.String())

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ProbeRunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, id.String(), resp.ID)
	assert.Equal(t, "failed", resp.Outcome)
	assert.Nil(t, resp.Result)
}

func TestGetProbeRun_NotFound(t *testing.T) {
	m, r := setupProbeRouter()
	m.runs.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil, domain.ErrProbeRunNotFound)

	w := serve(r, "GET", "/api/v1/probes/runs/"+uuid.NewString())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProbeRun_BadID(t *testing.T) {
	_, r := setupProbeRouter()

	w := serve(r, "GET", "/api/v1/probes/runs/not-a-uuid")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
