package collaborator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

var (
	collaboratorCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collaborator_calls_total",
			Help: "Total number of outbound collaborator calls",
		},
		[]string{"service", "status"}, // status: success|failure
	)

	collaboratorCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "collaborator_call_duration_seconds",
			Help:    "Outbound collaborator call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"service"},
	)

	// 0 = closed, 1 = half-open, 2 = open
	collaboratorBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "collaborator_circuit_breaker_state",
			Help: "Circuit breaker state per collaborator",
		},
		[]string{"breaker"},
	)
)

func recordCall(service string, err error, elapsed time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	collaboratorCallsTotal.WithLabelValues(service, status).Inc()
	collaboratorCallDuration.WithLabelValues(service).Observe(elapsed.Seconds())
}

func recordBreakerState(name string, state gobreaker.State) {
	var v float64
	switch state {
	case gobreaker.StateHalfOpen:
		v = 1
	case gobreaker.StateOpen:
		v = 2
	}
	collaboratorBreakerState.WithLabelValues(name).Set(v)
}
