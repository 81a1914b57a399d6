package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HttpRequestsTotal counts the number of HTTP requests processed
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payrollapp_http_requests_total",
			Help: "The total number of HTTP requests",
		},
		[]string{"endpoint", "method", "status", "environment"},
	)

	// HttpRequestDuration tracks the duration of HTTP requests
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payrollapp_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "environment"},
	)

	// WageCalculationTotal counts the number of wage calculations performed, by model
	WageCalculationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payrollapp_wage_calculations_total",
			Help: "The total number of wage calculations performed",
		},
		[]string{"model", "environment"},
	)

	// ValidationErrorsTotal counts rejected tool invocations, by offending field
	ValidationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payrollapp_validation_errors_total",
			Help: "The total number of tool calls rejected by input validation",
		},
		[]string{"field", "environment"},
	)

	// UnknownToolTotal counts invocations of tools this service does not provide
	UnknownToolTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payrollapp_unknown_tool_total",
			Help: "The total number of calls naming an unknown tool",
		},
		[]string{"environment"},
	)

	// RateSourceErrors counts the number of errors from the remote rate source
	RateSourceErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payrollapp_rate_source_errors_total",
			Help: "The total number of errors from the remote tax rate source",
		},
		[]string{"environment"},
	)

	// CircuitBreakerState tracks the current state of the circuit breaker (1=closed, 2=half-open, 3=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "payrollapp_circuit_breaker_state",
			Help: "Current state of the circuit breaker: 1=closed, 2=half-open, 3=open",
		},
		[]string{"name", "environment"},
	)

	// CircuitBreakerRejected counts requests rejected due to open circuit
	CircuitBreakerRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payrollapp_circuit_breaker_rejected_total",
			Help: "Number of requests rejected due to open circuit",
		},
		[]string{"name", "environment"},
	)

	// CircuitBreakerRequests counts requests going through circuit breaker
	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payrollapp_circuit_breaker_requests_total",
			Help: "Number of requests going through circuit breaker",
		},
		[]string{"name", "success", "environment"},
	)
)
