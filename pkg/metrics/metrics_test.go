package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func findFamily(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() == name {
			return fam
		}
	}
	return nil
}

func familyValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	fam := findFamily(t, reg, name)
	if fam == nil {
		return 0
	}
	var total float64
	for _, metric := range fam.GetMetric() {
		switch {
		case metric.GetCounter() != nil:
			total += metric.GetCounter().GetValue()
		case metric.GetGauge() != nil:
			total += metric.GetGauge().GetValue()
		}
	}
	return total
}

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "/api/v1/requests/board", "200", 25*time.Millisecond)
	m.Observe("GET", "/api/v1/requests/board", "200", 30*time.Millisecond)

	if got := familyValue(t, reg, "http_requests_total"); got != 2 {
		t.Fatalf("expected 2 requests recorded, got %v", got)
	}
}

func TestLiveViewMetricsObserveRebuild(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLiveViewMetrics(reg)

	m.ObserveRebuild("requests", 5*time.Millisecond, 42)

	if got := familyValue(t, reg, "liveview_rebuilds_total"); got != 1 {
		t.Fatalf("expected 1 rebuild recorded, got %v", got)
	}
	if got := familyValue(t, reg, "liveview_tracked_requests"); got != 42 {
		t.Fatalf("expected tracked requests gauge 42, got %v", got)
	}
}

func TestNilRegistererIsSafe(t *testing.T) {
	m := NewHTTPMetrics(nil)
	m.Observe("GET", "/x", "200", time.Millisecond)

	lv := NewLiveViewMetrics(nil)
	lv.ObserveRebuild("", time.Millisecond, 0)
}
