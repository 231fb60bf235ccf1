package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"user-manager-form/internal/infrastructure/metrics"
	"user-manager-form/internal/interface/api/rest/middleware"
)

func setupRouter(t *testing.T) (*gin.Engine, *prometheus.CounterVec, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zapcore.InfoLevel)
	reg := prometheus.NewRegistry()
	c := metrics.NewCounter(reg)

	r := gin.New()
	r.Use(middleware.RequestLogGin(zap.New(core)))
	NewOpsController(r, "usermanagerform", reg)

	return r, c, logs
}

func doReq(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestOpsController_Health(t *testing.T) {
	r, _, logs := setupRouter(t)

	rr := doReq(t, r, RouteHealth)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "usermanagerform", resp["service"])

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, RouteHealth, logs.All()[0].ContextMap()["url"])
}

func TestOpsController_Metrics(t *testing.T) {
	r, c, logs := setupRouter(t)
	c.WithLabelValues(metrics.UserCreated).Inc()

	rr := doReq(t, r, RouteMetrics)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `usermanagerform_general_counters{result="user_created_total"} 1`)
	assert.Zero(t, logs.Len(), "metric scrapes are not logged")
}
