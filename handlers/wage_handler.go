package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"paygrade/payroll/metrics"
	"paygrade/payroll/models"
	"paygrade/payroll/services"

	"github.com/shopspring/decimal"
)

// ToolNameCalculateWage is the one tool this service exposes
const ToolNameCalculateWage = "calculate_wage"

// WageToolHandler handles tool discovery and invocation for the wage
// calculation tool
type WageToolHandler struct {
	config      models.Config
	calculator  *services.WageCalculator
	environment string
}

// NewWageToolHandler creates a wage tool handler using the built-in tables
func NewWageToolHandler(cfg models.Config) *WageToolHandler {
	return NewWageToolHandlerWithTables(cfg, services.DefaultTaxBrackets(), services.DefaultContributionSchedule())
}

// NewWageToolHandlerWithTables creates a wage tool handler with an explicit
// bracket table and contribution schedule (the table may come from a remote
// rate source)
func NewWageToolHandlerWithTables(cfg models.Config, brackets []models.TaxBracket, schedule models.ContributionSchedule) *WageToolHandler {
	return &WageToolHandler{
		config:      cfg,
		calculator:  services.NewWageCalculatorWithTables(cfg.Payroll, brackets, schedule),
		environment: cfg.Environment,
	}
}

// HandleListTools responds with the tool list and input schema
func (h *WageToolHandler) HandleListTools(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	tools := []models.Tool{
		{
			Name:        ToolNameCalculateWage,
			Description: "Calculate a monthly wage breakdown (gross pay, social contributions, income tax, net pay) from compensation inputs",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"base_salary":    map[string]any{"type": "number", "exclusiveMinimum": 0, "description": "Monthly base salary, required"},
					"overtime_hours": map[string]any{"type": "number", "minimum": 0, "description": "Overtime hours worked this month, default 0"},
					"overtime_rate":  map[string]any{"type": "number", "minimum": 1, "description": "Overtime pay multiplier, default 1.5"},
					"bonus":          map[string]any{"type": "number", "minimum": 0, "description": "One-off bonus amount, default 0"},
					"tax_rate":       map[string]any{"type": "number", "minimum": 0, "maximum": 1, "description": "Flat tax rate; supplying it switches to the flat model"},
					"deductions":     map[string]any{"type": "number", "minimum": 0, "description": "Flat other deductions, flat model only, default 0"},
				},
				"required": []string{"base_salary"},
			},
		},
	}

	json.NewEncoder(w).Encode(map[string]any{"tools": tools})
}

// HandleCall processes a tool invocation. Unknown tool names get a 404,
// validation failures a 400; both are terminal for the request only.
func (h *WageToolHandler) HandleCall(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var call models.CallRequest
	if err := json.NewDecoder(r.Body).Decode(&call); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	if call.Name != ToolNameCalculateWage {
		metrics.UnknownToolTotal.WithLabelValues(h.environment).Inc()
		h.respondWithError(w, http.StatusNotFound, "unknown tool: "+call.Name)
		return
	}

	req, err := h.calculator.ParseRequest(call.Arguments)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			metrics.ValidationErrorsTotal.WithLabelValues(verr.Field, h.environment).Inc()
		}
		h.respondWithError(w, http.StatusBadRequest, "invalid arguments: "+err.Error())
		return
	}

	breakdown := h.calculator.Compute(req)

	metrics.WageCalculationTotal.WithLabelValues(breakdown.Model, h.environment).Inc()

	text, err := json.MarshalIndent(roundBreakdown(breakdown), "", "  ")
	if err != nil {
		h.respondWithError(w, http.StatusInternalServerError, "failed to serialize breakdown: "+err.Error())
		return
	}

	json.NewEncoder(w).Encode(models.CallResponse{
		Content: []models.TextContent{
			{Type: "text", Text: string(text)},
		},
	})
}

func (h *WageToolHandler) respondWithError(w http.ResponseWriter, statusCode int, message string) {
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(models.ErrorResponse{Error: message})
}

// roundBreakdown rounds every money field of a breakdown to two decimal
// places for presentation. The calculation itself is unrounded; this is the
// only place rounding happens.
func roundBreakdown(b models.WageBreakdown) models.WageBreakdown {
	b.BasicSalary = roundMoney(b.BasicSalary)
	b.OvertimePay = roundMoney(b.OvertimePay)
	b.Bonus = roundMoney(b.Bonus)
	b.GrossSalary = roundMoney(b.GrossSalary)
	b.TaxableIncome = roundMoney(b.TaxableIncome)
	b.IncomeTax = roundMoney(b.IncomeTax)
	b.Deductions = roundMoney(b.Deductions)
	b.NetSalary = roundMoney(b.NetSalary)

	b.Contributions.Base = roundMoney(b.Contributions.Base)
	b.Contributions.PersonalTotal = roundMoney(b.Contributions.PersonalTotal)
	b.Contributions.EmployerTotal = roundMoney(b.Contributions.EmployerTotal)
	items := make([]models.ContributionAmounts, len(b.Contributions.Items))
	for i, item := range b.Contributions.Items {
		item.Personal = roundMoney(item.Personal)
		item.Employer = roundMoney(item.Employer)
		items[i] = item
	}
	b.Contributions.Items = items

	return b
}

func roundMoney(v float64) float64 {
	rounded, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return rounded
}
