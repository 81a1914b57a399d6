package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"paygrade/payroll/config"
	"paygrade/payroll/handlers"
	"paygrade/payroll/logger"
	"paygrade/payroll/metrics"
	"paygrade/payroll/models"
	"paygrade/payroll/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Optional .env file for local development
	_ = godotenv.Load()

	// Get environment from command line args
	env := "dev" // Default to dev
	if len(os.Args) > 1 {
		env = os.Args[1]
	}

	// Log with standard log package until logger is configured
	fmt.Printf("===> Starting application with environment: %v\n", env)

	cfg := config.Load(env)

	// Logger is now configured based on settings from config
	logger.Info("===> Application starting with environment: %v", env)
	logger.Debug("===> Loaded configuration: %+v", cfg)

	brackets := loadBrackets(cfg)

	wageToolHandler := handlers.NewWageToolHandlerWithTables(cfg, brackets, services.DefaultContributionSchedule())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", handleHealth)
	r.Route("/mcp", func(r chi.Router) {
		r.Get("/tools", wageToolHandler.HandleListTools)
		r.Post("/call", wageToolHandler.HandleCall)
	})

	// Expose Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// Wrap the router with the metrics middleware
	handler := metrics.Middleware(r, env)

	logger.Info("Server started on port %s in %s environment", cfg.Port, env)
	logger.Info("Metrics available at http://localhost:%s/metrics", cfg.Port)

	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Fatal("Server failed to start: %v", err)
	}
}

// loadBrackets returns the tax bracket table to serve with, preferring the
// remote rate source when enabled and falling back to the built-in table on
// any fetch error.
func loadBrackets(cfg models.Config) []models.TaxBracket {
	if !cfg.RateSource.Enabled {
		return services.DefaultTaxBrackets()
	}

	source := services.NewRateSourceWithConfig(cfg.Environment, cfg.RateSource)
	response, err := source.FetchBrackets(cfg.RateSource.URL)
	if err != nil {
		logger.Warn("Could not fetch tax brackets from %s, using built-in table: %v", cfg.RateSource.URL, err)
		return services.DefaultTaxBrackets()
	}

	logger.Info("Loaded %d tax brackets from %s", len(response.TaxBrackets), cfg.RateSource.URL)
	return response.TaxBrackets
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
