// Package config provides fail-open environment configuration loading.
//
// 環境変数の読み込みは fail-open 方針: 不正な値はデフォルトへフォール
// バックし、警告とメトリクスで通知する。プロセスは必ず起動できる。
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ConfigLoadResult carries the outcome of loading one configuration value.
// Value holds either the parsed environment value or the default;
// FallbackApplied reports which one, and Warnings explains why when the
// default was used.
type ConfigLoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

// ok wraps a successfully loaded value.
func ok(v interface{}) ConfigLoadResult {
	return ConfigLoadResult{Value: v}
}

// fallback wraps a default value with a warning describing the rejected input.
func fallback(envKey, raw string, err error, def interface{}) ConfigLoadResult {
	return ConfigLoadResult{
		Value:           def,
		Warnings:        []string{fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'", envKey, raw, err, def)},
		FallbackApplied: true,
	}
}

// LoadEnvWithFallback reads a string environment variable and validates it.
// An unset or empty variable yields the default silently; a value that
// fails the validator yields the default with a warning. The validator
// may be nil to accept any non-empty value.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return ok(defaultValue)
	}
	if validator != nil {
		if err := validator(raw); err != nil {
			return fallback(envKey, raw, err, defaultValue)
		}
	}
	return ok(raw)
}

// LoadEnvDuration reads a Go duration string ("30s", "10m", "1h30m")
// from the environment. Parse failures and validator rejections both
// fall back to the default with a warning.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return ok(defaultValue)
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback(envKey, raw, err, defaultValue)
	}
	if validator != nil {
		if err := validator(d); err != nil {
			return fallback(envKey, raw, err, defaultValue)
		}
	}
	return ok(d)
}

// LoadEnvInt reads an integer from the environment. Parse failures and
// validator rejections both fall back to the default with a warning.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return ok(defaultValue)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback(envKey, raw, fmt.Errorf("invalid integer format"), defaultValue)
	}
	if validator != nil {
		if err := validator(n); err != nil {
			return fallback(envKey, raw, err, defaultValue)
		}
	}
	return ok(n)
}
