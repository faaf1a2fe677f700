package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RPCMetrics records per-method RPC outcomes and stream traffic.
type RPCMetrics struct {
	handled  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	messages *prometheus.CounterVec
}

// NewRPCMetrics registers the RPC metrics on the provided registerer. A nil
// registerer yields a recorder that drops every observation.
func NewRPCMetrics(reg prometheus.Registerer) *RPCMetrics {
	if reg == nil {
		return &RPCMetrics{}
	}
	handled := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pcbook_rpc_handled_total",
		Help: "RPCs completed, by method and status code.",
	}, []string{"method", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pcbook_rpc_duration_seconds",
		Help:    "Duration of RPCs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
	messages := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pcbook_rpc_stream_messages_total",
		Help: "Stream messages, by method and direction.",
	}, []string{"method", "direction"})
	reg.MustRegister(handled, duration, messages)
	return &RPCMetrics{
		handled:  handled,
		duration: duration,
		messages: messages,
	}
}

// ObserveHandled records one finished call.
func (m *RPCMetrics) ObserveHandled(method, code string, elapsed time.Duration) {
	if m == nil || m.handled == nil {
		return
	}
	method = normalizeLabel(method)
	m.handled.WithLabelValues(method, code).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (m *RPCMetrics) IncReceived(method string) {
	if m == nil || m.messages == nil {
		return
	}
	m.messages.WithLabelValues(normalizeLabel(method), "received").Inc()
}

func (m *RPCMetrics) IncSent(method string) {
	if m == nil || m.messages == nil {
		return
	}
	m.messages.WithLabelValues(normalizeLabel(method), "sent").Inc()
}

func normalizeLabel(method string) string {
	if method == "" {
		return "unknown"
	}
	return method
}
