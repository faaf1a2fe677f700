package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestRPCMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewRPCMetrics(reg)
	method := "/pcbook.LaptopService/RateLaptop"

	metrics.ObserveHandled(method, "OK", 250*time.Millisecond)
	metrics.ObserveHandled(method, "NotFound", time.Millisecond)
	metrics.IncReceived(method)
	metrics.IncReceived(method)
	metrics.IncSent(method)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "pcbook_rpc_handled_total", map[string]string{"method": method, "code": "OK"}); err != nil {
		t.Fatalf("fetch handled: %v", err)
	} else if got != 1 {
		t.Fatalf("expected handled OK=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "pcbook_rpc_stream_messages_total", map[string]string{"method": method, "direction": "received"}); err != nil {
		t.Fatalf("fetch received: %v", err)
	} else if got != 2 {
		t.Fatalf("expected received=2, got %f", got)
	}

	mf := findMetricFamily(mfs, "pcbook_rpc_duration_seconds")
	if mf == nil {
		t.Fatal("duration histogram not exported")
	}
	if count := mf.GetMetric()[0].GetHistogram().GetSampleCount(); count != 2 {
		t.Fatalf("expected 2 duration samples, got %d", count)
	}
}

func TestRPCMetricsNilRegistererIsNoop(t *testing.T) {
	metrics := NewRPCMetrics(nil)
	metrics.ObserveHandled("m", "OK", time.Second)
	metrics.IncReceived("m")
	metrics.IncSent("m")

	var nilMetrics *RPCMetrics
	nilMetrics.IncSent("m")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabels(pairs []*dto.LabelPair, labels map[string]string) bool {
	matched := 0
	for _, pair := range pairs {
		if want, ok := labels[pair.GetName()]; ok {
			if pair.GetValue() != want {
				return false
			}
			matched++
		}
	}
	return matched == len(labels)
}
