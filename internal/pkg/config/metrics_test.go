package config

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// promauto registers on the default registry, so the test metric set is
// constructed exactly once for the package.
var testConfigMetrics = NewConfigMetrics("configtest")

func TestConfigMetrics_RecordLoadTimestamp(t *testing.T) {
	testConfigMetrics.RecordLoadTimestamp()
	if v := testutil.ToFloat64(testConfigMetrics.LoadTimestamp); v <= 0 {
		t.Errorf("LoadTimestamp = %v, want a positive Unix timestamp", v)
	}
}

func TestConfigMetrics_RecordValidationError(t *testing.T) {
	before := testutil.ToFloat64(testConfigMetrics.ValidationErrorsTotal.WithLabelValues("cron_schedule"))
	testConfigMetrics.RecordValidationError("cron_schedule")
	testConfigMetrics.RecordValidationError("cron_schedule")
	after := testutil.ToFloat64(testConfigMetrics.ValidationErrorsTotal.WithLabelValues("cron_schedule"))
	if after-before != 2 {
		t.Errorf("validation errors delta = %v, want 2", after-before)
	}
}

func TestConfigMetrics_RecordFallback(t *testing.T) {
	before := testutil.ToFloat64(testConfigMetrics.FallbacksTotal.WithLabelValues("timezone"))
	testConfigMetrics.RecordFallback("timezone", "default")
	after := testutil.ToFloat64(testConfigMetrics.FallbacksTotal.WithLabelValues("timezone"))
	if after-before != 1 {
		t.Errorf("fallbacks delta = %v, want 1", after-before)
	}
}

func TestConfigMetrics_SetFallbackActive(t *testing.T) {
	testConfigMetrics.SetFallbackActive("any", true)
	if v := testutil.ToFloat64(testConfigMetrics.FallbackActive); v != 1 {
		t.Errorf("FallbackActive = %v, want 1", v)
	}
	testConfigMetrics.SetFallbackActive("any", false)
	if v := testutil.ToFloat64(testConfigMetrics.FallbackActive); v != 0 {
		t.Errorf("FallbackActive = %v, want 0", v)
	}
}
