package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/pcbook/internal/adapter/handler/pb"
	"github.com/rl1809/pcbook/internal/adapter/storage"
	"github.com/rl1809/pcbook/internal/core/domain"
	"github.com/rl1809/pcbook/internal/core/service"
	"github.com/rl1809/pcbook/internal/metrics"
)

func newTestHTTPHandler(t *testing.T) (http.Handler, *service.LaptopService) {
	t.Helper()
	svc := service.NewLaptopService(storage.NewMemoryLaptopStore(0), storage.NewDiskImageStore(t.TempDir()), 0)
	registry := prometheus.NewRegistry()
	rpcMetrics := metrics.NewRPCMetrics(registry)
	rpcMetrics.IncSent("/pcbook.LaptopService/SearchLaptop")
	return NewHTTPHandler(svc, nil).Routes(registry), svc
}

func TestHTTP_HealthCheck(t *testing.T) {
	h, _ := newTestHTTPHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHTTP_GetLaptop(t *testing.T) {
	h, svc := newTestHTTPHandler(t)
	id, err := svc.CreateLaptop(context.Background(), domain.Laptop{
		Brand: "Dell",
		RAM:   domain.Memory{Value: 16, Unit: domain.MemoryUnitGigabyte},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/laptops/"+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got pb.Laptop
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, id, got.Id)
	assert.Equal(t, "Dell", got.Brand)
	assert.Equal(t, pb.Memory_GIGABYTE, got.Ram.Unit)
	assert.Contains(t, rec.Body.String(), `"unit":"GIGABYTE"`)
}

func TestHTTP_GetLaptop_NotFound(t *testing.T) {
	h, _ := newTestHTTPHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/laptops/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHTTP_Metrics(t *testing.T) {
	h, _ := newTestHTTPHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "pcbook_rpc_stream_messages_total"))
}

func TestHTTP_MethodNotAllowed(t *testing.T) {
	h, _ := newTestHTTPHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
