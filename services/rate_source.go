package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"paygrade/payroll/logger"
	"paygrade/payroll/metrics"
	"paygrade/payroll/models"

	"github.com/sony/gobreaker"
)

// RateSource fetches the progressive tax bracket table from a remote rates
// service. It is optional; when disabled the application uses the built-in
// table from tables.go. Fetches go through a circuit breaker so a flapping
// rates service cannot stall startup or refreshes.
type RateSource struct {
	cb          *gobreaker.CircuitBreaker
	environment string
	cbEnabled   bool
	timeout     time.Duration
}

// NewRateSource creates a RateSource with default settings, reading the
// environment from APP_ENV
func NewRateSource() *RateSource {
	environment := os.Getenv("APP_ENV")
	if environment == "" {
		environment = "dev"
	}

	return NewRateSourceWithConfig(environment, models.RateSourceConfig{
		TimeoutSeconds:        35,
		CircuitBreakerEnabled: true,
		CircuitBreaker: models.CircuitBreakerConfig{
			RequestThreshold: 5,
			FailureRatio:     0.5,
			Timeout:          60,
			MaxHalfOpenReqs:  100,
		},
	})
}

// NewRateSourceWithConfig creates a RateSource with complete configuration
func NewRateSourceWithConfig(environment string, cfg models.RateSourceConfig) *RateSource {
	source := &RateSource{
		environment: environment,
		cbEnabled:   cfg.CircuitBreakerEnabled,
		timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
	}

	if cfg.CircuitBreakerEnabled {
		cbName := "rate-source"
		cbConfig := cfg.CircuitBreaker
		settings := gobreaker.Settings{
			Name:        cbName,
			MaxRequests: uint32(cbConfig.MaxHalfOpenReqs),
			Interval:    0, // No forced reset based on time (reset only by success/failure events)
			Timeout:     time.Duration(cbConfig.Timeout) * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= uint32(cbConfig.RequestThreshold) && failureRatio >= cbConfig.FailureRatio
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Info("Circuit breaker '%s' changed from '%v' to '%v' [threshold=%d, ratio=%.2f]",
					name, from, to, cbConfig.RequestThreshold, cbConfig.FailureRatio)

				// Record state change in metrics (1=closed, 2=half-open, 3=open)
				var stateValue float64
				switch to {
				case gobreaker.StateClosed:
					stateValue = 1
				case gobreaker.StateHalfOpen:
					stateValue = 2
				case gobreaker.StateOpen:
					stateValue = 3
				}
				metrics.CircuitBreakerState.WithLabelValues(name, environment).Set(stateValue)
			},
		}

		source.cb = gobreaker.NewCircuitBreaker(settings)

		// Initialize the circuit breaker state metric to "closed" (1)
		metrics.CircuitBreakerState.WithLabelValues(cbName, environment).Set(1)
	}

	return source
}

// FetchBrackets retrieves the tax bracket table from the remote rates service
func (rs *RateSource) FetchBrackets(url string) (*models.BracketTableResponse, error) {
	if rs.cbEnabled && rs.cb != nil {
		response, err := rs.cb.Execute(func() (interface{}, error) {
			return rs.doFetchBrackets(url)
		})

		if err != nil {
			if err == gobreaker.ErrOpenState {
				metrics.CircuitBreakerRejected.WithLabelValues("rate-source", rs.environment).Inc()
				return nil, fmt.Errorf("rate source is unavailable (circuit open): too many recent failures")
			} else if err == gobreaker.ErrTooManyRequests {
				metrics.CircuitBreakerRejected.WithLabelValues("rate-source", rs.environment).Inc()
				return nil, fmt.Errorf("rate source is unavailable: too many concurrent requests")
			}

			metrics.CircuitBreakerRequests.WithLabelValues("rate-source", "false", rs.environment).Inc()
			metrics.RateSourceErrors.WithLabelValues(rs.environment).Inc()

			return nil, fmt.Errorf("rate source error: %v", err)
		}

		metrics.CircuitBreakerRequests.WithLabelValues("rate-source", "true", rs.environment).Inc()

		return response.(*models.BracketTableResponse), nil
	}

	response, err := rs.doFetchBrackets(url)
	if err != nil {
		metrics.RateSourceErrors.WithLabelValues(rs.environment).Inc()
		return nil, fmt.Errorf("rate source error: %v", err)
	}

	return response, nil
}

// doFetchBrackets performs the actual HTTP request to the rates service.
// This is wrapped by the circuit breaker in FetchBrackets.
func (rs *RateSource) doFetchBrackets(url string) (*models.BracketTableResponse, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: rs.timeout}

	resp, err := client.Do(req)
	if err != nil {
		logger.Error("===> Error fetching tax brackets: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, readErr := io.ReadAll(resp.Body)
		if readErr == nil && len(errorBody) > 0 {
			return nil, fmt.Errorf("rate source returned: %d - Details: %s", resp.StatusCode, string(errorBody))
		}
		return nil, fmt.Errorf("rate source returned error code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("===> Error reading response body: %v", err)
		return nil, err
	}

	var tableResponse models.BracketTableResponse
	if err := json.Unmarshal(body, &tableResponse); err != nil {
		return nil, fmt.Errorf("failed to parse rate source response: %v", err)
	}

	if err := validateBrackets(tableResponse.TaxBrackets); err != nil {
		return nil, err
	}

	return &tableResponse, nil
}

// validateBrackets rejects tables that would break the bracket-scan
// invariants: the table must be non-empty, start at a zero threshold, and be
// strictly increasing by threshold.
func validateBrackets(brackets []models.TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("no tax brackets returned from rate source")
	}
	if brackets[0].Threshold != 0 {
		return fmt.Errorf("first tax bracket must start at threshold 0, got %v", brackets[0].Threshold)
	}
	for i := 1; i < len(brackets); i++ {
		if brackets[i].Threshold <= brackets[i-1].Threshold {
			return fmt.Errorf("tax bracket thresholds must be strictly increasing: %v followed by %v",
				brackets[i-1].Threshold, brackets[i].Threshold)
		}
	}
	return nil
}
