package pagination

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// findMetric gathers the default registry and returns the metric family
// with the given name, or nil if it has not been collected yet.
func findMetric(t *testing.T, name string) *dto.MetricFamily {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestRecordRequest_CountsByMode(t *testing.T) {
	RecordRequest(200, ModeCursor)
	RecordRequest(200, ModeCursor)
	RecordRequest(200, ModeOffset)

	mf := findMetric(t, "recipe_pagination_requests_total")
	if mf == nil {
		t.Fatal("recipe_pagination_requests_total not registered")
	}

	var cursorCount float64
	for _, m := range mf.GetMetric() {
		mode := ""
		for _, lp := range m.GetLabel() {
			if lp.GetName() == "mode" {
				mode = lp.GetValue()
			}
		}
		if mode == string(ModeCursor) {
			cursorCount = m.GetCounter().GetValue()
		}
	}
	if cursorCount < 2 {
		t.Fatalf("cursor-mode request count = %v, want >= 2", cursorCount)
	}
}

func TestUpdateTotalCount(t *testing.T) {
	UpdateTotalCount(321)

	mf := findMetric(t, "recipe_listing_total_count")
	if mf == nil {
		t.Fatal("recipe_listing_total_count not registered")
	}
	if got := mf.GetMetric()[0].GetGauge().GetValue(); got != 321 {
		t.Fatalf("gauge = %v, want 321", got)
	}
}

func TestRecordError(t *testing.T) {
	RecordError("validation")
	mf := findMetric(t, "recipe_pagination_errors_total")
	if mf == nil {
		t.Fatal("recipe_pagination_errors_total not registered")
	}
}
