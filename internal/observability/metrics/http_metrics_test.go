package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/TwinexTecnologia/bodybrothers/internal/config"
)

func TestObserveRecordsRequestCount(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := newHTTPMetrics(registry, config.Config{AppName: "bodybrothers", Environment: "test"})

	m.Observe("GET", "/api/plans", 200, 25*time.Millisecond)
	m.Observe("GET", "/api/plans", 200, 30*time.Millisecond)
	m.Observe("POST", "/api/payments", 422, 5*time.Millisecond)

	if got := testutil.CollectAndCount(m.requests); got != 2 {
		t.Fatalf("expected 2 request series, got %d", got)
	}
}

func TestObserveLabelsUnmatchedRoutes(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := newHTTPMetrics(registry, config.Config{AppName: "bodybrothers", Environment: "test"})

	m.Observe("GET", "", 404, time.Millisecond)

	count := testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404"))
	if count != 1 {
		t.Fatalf("expected unmatched route counter to be 1, got %v", count)
	}
}
