package models

import "fmt"

// Config holds application configuration
type Config struct {
	Port        string
	Environment string
	Payroll     PayrollConfig
	RateSource  RateSourceConfig
	Logging     LoggingConfig
}

// PayrollConfig holds the jurisdiction constants used by the wage calculator
type PayrollConfig struct {
	StandardMonthlyHours  float64 // Hours divisor used to derive the hourly rate from base salary
	DefaultOvertimeRate   float64 // Multiplier applied when the request omits overtime_rate
	TaxFreeAllowance      float64 // Monthly amount exempt from income tax
	AverageMonthlyWage    float64 // Jurisdiction average wage used for contribution base clamping
	ClampContributionBase bool    // Whether the contribution base is clamped to [0.6, 3.0] x average wage
	DefaultFlatTaxRate    float64 // Rate used by the flat model when only deductions are supplied
}

// RateSourceConfig holds settings for the optional remote tax bracket source
type RateSourceConfig struct {
	Enabled               bool
	URL                   string
	TimeoutSeconds        int
	CircuitBreakerEnabled bool
	CircuitBreaker        CircuitBreakerConfig
}

// CircuitBreakerConfig holds the circuit breaker configuration parameters
type CircuitBreakerConfig struct {
	RequestThreshold int     // Minimum number of requests before the circuit can trip
	FailureRatio     float64 // Percentage (0.0-1.0) of failures required to trip the circuit
	Timeout          int     // Seconds before half-open state is tried after circuit opens
	MaxHalfOpenReqs  int     // Maximum requests allowed when circuit is half-open
}

// LoggingConfig holds configuration for application logging
type LoggingConfig struct {
	Enabled bool   // Whether logging is enabled
	Level   string // Log level (NONE, ERROR, WARN, INFO, DEBUG)
}

// TaxBracket is one row of a quick-deduction progressive tax table.
// Threshold is the lower bound of the bracket; for income falling in the
// bracket, tax = income*Rate - QuickDeduction. Brackets are ordered by
// ascending Threshold, starting at zero.
type TaxBracket struct {
	Threshold      float64 `json:"threshold"`
	Rate           float64 `json:"rate"`
	QuickDeduction float64 `json:"quick_deduction"`
}

// ContributionRate carries the personal and employer rates for one
// social-contribution category, both in [0,1].
type ContributionRate struct {
	Category string  `json:"category"`
	Personal float64 `json:"personal"`
	Employer float64 `json:"employer"`
}

// ContributionSchedule is the fixed, ordered set of contribution categories
// for the jurisdiction. Immutable at run time.
type ContributionSchedule []ContributionRate

// BracketTableResponse is the payload returned by a remote rate source
type BracketTableResponse struct {
	TaxBrackets []TaxBracket `json:"tax_brackets"`
}

// WageRequest is a validated, defaulted wage calculation request.
// TaxRate is nil unless the caller supplied one; a non-nil value (or a
// non-zero Deductions) selects the flat-rate model.
type WageRequest struct {
	BaseSalary    float64
	OvertimeHours float64
	OvertimeRate  float64
	Bonus         float64
	TaxRate       *float64
	Deductions    float64
}

// FlatRate reports whether the request selects the flat-rate model
func (r WageRequest) FlatRate() bool {
	return r.TaxRate != nil || r.Deductions > 0
}

// ContributionAmounts holds the computed personal and employer amounts for
// one contribution category.
type ContributionAmounts struct {
	Category string  `json:"category"`
	Personal float64 `json:"personal"`
	Employer float64 `json:"employer"`
}

// ContributionBreakdown holds per-category contribution amounts plus their totals
type ContributionBreakdown struct {
	Base          float64               `json:"contribution_base"`
	Items         []ContributionAmounts `json:"items"`
	PersonalTotal float64               `json:"personal_total"`
	EmployerTotal float64               `json:"employer_total"`
}

// Calculation model identifiers reported in the breakdown
const (
	ModelItemized = "itemized"
	ModelFlat     = "flat"
)

// WageBreakdown is the full result of one wage calculation. Every field is
// derivable from the request and the tables, so the caller can audit each
// intermediate step.
type WageBreakdown struct {
	Model         string                `json:"model"`
	BasicSalary   float64               `json:"basic_salary"`
	OvertimePay   float64               `json:"overtime_pay"`
	Bonus         float64               `json:"bonus"`
	GrossSalary   float64               `json:"gross_salary"`
	Contributions ContributionBreakdown `json:"contributions"`
	TaxableIncome float64               `json:"taxable_income"`
	IncomeTax     float64               `json:"income_tax"`
	Deductions    float64               `json:"other_deductions"`
	NetSalary     float64               `json:"net_salary"`
}

// ValidationError describes a rejected input payload
type ValidationError struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Tool describes a tool exposed by this service and its input schema
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// CallRequest is the body of a tool invocation
type CallRequest struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// TextContent is one block of tool output
type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallResponse wraps tool output in the content envelope callers expect
type CallResponse struct {
	Content []TextContent `json:"content"`
}

// ErrorResponse is the error body for rejected requests
type ErrorResponse struct {
	Error string `json:"error"`
}
