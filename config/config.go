package config

import (
	"log"
	"path/filepath"
	"runtime"

	"paygrade/payroll/logger"
	"paygrade/payroll/models"

	"github.com/spf13/viper"
)

// Load loads application configuration from YAML files
func Load(env ...string) models.Config {
	// Default to "dev" environment if not specified
	environment := "dev"
	if len(env) > 0 && env[0] != "" {
		environment = env[0]
	}

	// Get the directory where config.go is located to find config files
	_, currentFilePath, _, _ := runtime.Caller(0)
	configDir := filepath.Dir(currentFilePath)

	v := viper.New()

	v.SetConfigName("config")
	v.AddConfigPath(configDir)
	v.SetConfigType("yaml")

	// Set default values in case config files are missing
	v.SetDefault("port", "8080")
	v.SetDefault("logging.enabled", true)
	v.SetDefault("logging.level", "INFO")

	// Jurisdiction constants for the wage calculator
	v.SetDefault("payroll.standardMonthlyHours", 174.0) // 20 days x 8.7 hours
	v.SetDefault("payroll.defaultOvertimeRate", 1.5)
	v.SetDefault("payroll.taxFreeAllowance", 5000.0)
	v.SetDefault("payroll.averageMonthlyWage", 10000.0)
	v.SetDefault("payroll.clampContributionBase", true)
	v.SetDefault("payroll.defaultFlatTaxRate", 0.2)

	// Remote rate source is opt-in; built-in bracket table is used otherwise
	v.SetDefault("rateSource.enabled", false)
	v.SetDefault("rateSource.url", "http://localhost:5001/tax-brackets")
	v.SetDefault("rateSource.timeoutSeconds", 35)
	v.SetDefault("rateSource.circuitBreakerEnabled", true)
	v.SetDefault("rateSource.circuitBreaker.requestThreshold", 5)  // 5 requests minimum
	v.SetDefault("rateSource.circuitBreaker.failureRatio", 0.5)    // 50% failures
	v.SetDefault("rateSource.circuitBreaker.timeout", 60)          // seconds before half-open
	v.SetDefault("rateSource.circuitBreaker.maxHalfOpenReqs", 100) // requests when half-open

	// Try to read the common config file
	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	} else {
		log.Printf("Loaded base configuration from %s", v.ConfigFileUsed())
	}

	// If we're not in dev environment, try to load env-specific config
	if environment != "dev" {
		v.SetConfigName("config." + environment)
		if err := v.MergeInConfig(); err != nil {
			log.Printf("Warning: Could not read environment config for '%s': %v", environment, err)
		} else {
			log.Printf("Loaded environment configuration from %s", v.ConfigFileUsed())
		}
	}

	config := models.Config{
		Port:        v.GetString("port"),
		Environment: environment,
		Payroll: models.PayrollConfig{
			StandardMonthlyHours:  v.GetFloat64("payroll.standardMonthlyHours"),
			DefaultOvertimeRate:   v.GetFloat64("payroll.defaultOvertimeRate"),
			TaxFreeAllowance:      v.GetFloat64("payroll.taxFreeAllowance"),
			AverageMonthlyWage:    v.GetFloat64("payroll.averageMonthlyWage"),
			ClampContributionBase: v.GetBool("payroll.clampContributionBase"),
			DefaultFlatTaxRate:    v.GetFloat64("payroll.defaultFlatTaxRate"),
		},
		RateSource: models.RateSourceConfig{
			Enabled:               v.GetBool("rateSource.enabled"),
			URL:                   v.GetString("rateSource.url"),
			TimeoutSeconds:        v.GetInt("rateSource.timeoutSeconds"),
			CircuitBreakerEnabled: v.GetBool("rateSource.circuitBreakerEnabled"),
			CircuitBreaker: models.CircuitBreakerConfig{
				RequestThreshold: v.GetInt("rateSource.circuitBreaker.requestThreshold"),
				FailureRatio:     v.GetFloat64("rateSource.circuitBreaker.failureRatio"),
				Timeout:          v.GetInt("rateSource.circuitBreaker.timeout"),
				MaxHalfOpenReqs:  v.GetInt("rateSource.circuitBreaker.maxHalfOpenReqs"),
			},
		},
		Logging: models.LoggingConfig{
			Enabled: v.GetBool("logging.enabled"),
			Level:   v.GetString("logging.level"),
		},
	}

	// Configure the logger based on the settings
	logger.Configure(logger.Config{
		Enabled: config.Logging.Enabled,
		Level:   logger.LevelFromString(config.Logging.Level),
		Output:  nil, // Use default (stdout)
	})

	logger.Info("Configuration loaded for environment '%s': Port=%s, RateSourceEnabled=%v",
		environment, config.Port, config.RateSource.Enabled)
	logger.Info("Payroll Config: StandardMonthlyHours=%.1f, DefaultOvertimeRate=%.2f, TaxFreeAllowance=%.0f, AverageMonthlyWage=%.0f, ClampContributionBase=%v",
		config.Payroll.StandardMonthlyHours, config.Payroll.DefaultOvertimeRate,
		config.Payroll.TaxFreeAllowance, config.Payroll.AverageMonthlyWage, config.Payroll.ClampContributionBase)
	logger.Info("Logging Config: Enabled=%v, Level=%s",
		config.Logging.Enabled, config.Logging.Level)

	return config
}
