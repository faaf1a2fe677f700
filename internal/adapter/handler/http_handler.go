package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rl1809/pcbook/internal/core/domain"
	"github.com/rl1809/pcbook/internal/core/service"
	"github.com/rl1809/pcbook/internal/logger"
)

type HTTPHandler struct {
	laptopService *service.LaptopService
	log           *logger.Logger
}

type ErrorHTTPResponse struct {
	Error string `json:"error"`
}

func NewHTTPHandler(laptopService *service.LaptopService, log *logger.Logger) *HTTPHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &HTTPHandler{laptopService: laptopService, log: log}
}

// Routes wires the side HTTP endpoints. Metrics are served from gatherer.
func (h *HTTPHandler) Routes(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("GET /api/laptops/{id}", h.GetLaptop)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}

func (h *HTTPHandler) GetLaptop(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	laptop, err := h.laptopService.FindLaptop(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorHTTPResponse{Error: "laptop not found"})
			return
		}
		h.log.Error(h.log.WithLaptopID(r.Context(), id), "find laptop", err)
		writeJSON(w, http.StatusInternalServerError, ErrorHTTPResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, LaptopToPB(laptop))
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
