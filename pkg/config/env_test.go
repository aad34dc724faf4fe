package config

import (
	"testing"
	"time"
)

func TestGetEnvString(t *testing.T) {
	if got := GetEnvString("ENV_TEST_STRING", "fallback"); got != "fallback" {
		t.Errorf("unset: got %q, want fallback", got)
	}
	t.Setenv("ENV_TEST_STRING", "configured")
	if got := GetEnvString("ENV_TEST_STRING", "fallback"); got != "configured" {
		t.Errorf("set: got %q, want configured", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	if got := GetEnvInt("ENV_TEST_INT", 42); got != 42 {
		t.Errorf("unset: got %d, want 42", got)
	}
	t.Setenv("ENV_TEST_INT", "8080")
	if got := GetEnvInt("ENV_TEST_INT", 42); got != 8080 {
		t.Errorf("set: got %d, want 8080", got)
	}
	t.Setenv("ENV_TEST_INT", "eighty")
	if got := GetEnvInt("ENV_TEST_INT", 42); got != 42 {
		t.Errorf("invalid: got %d, want default 42", got)
	}
}

func TestGetEnvDuration(t *testing.T) {
	if got := GetEnvDuration("ENV_TEST_DURATION", time.Minute); got != time.Minute {
		t.Errorf("unset: got %v, want 1m", got)
	}
	t.Setenv("ENV_TEST_DURATION", "90s")
	if got := GetEnvDuration("ENV_TEST_DURATION", time.Minute); got != 90*time.Second {
		t.Errorf("set: got %v, want 90s", got)
	}
	t.Setenv("ENV_TEST_DURATION", "soon")
	if got := GetEnvDuration("ENV_TEST_DURATION", time.Minute); got != time.Minute {
		t.Errorf("invalid: got %v, want default 1m", got)
	}
}
