package services

import (
	"fmt"

	"paygrade/payroll/models"
)

// Validation error codes reported in ValidationError.Code
const (
	CodeMissingField = "MISSING_FIELD"
	CodeNotNumeric   = "NOT_NUMERIC"
	CodeOutOfRange   = "OUT_OF_RANGE"
)

// ParseRequest converts an untyped argument payload into a validated,
// defaulted WageRequest. The first violation found is returned as a
// ValidationError; there is no partial acceptance. base_salary is required
// and must be strictly positive; every optional field gets a documented
// default when absent. Downstream calculation code relies on this and never
// re-checks types or ranges.
func (wc *WageCalculator) ParseRequest(args map[string]any) (models.WageRequest, error) {
	req := models.WageRequest{
		OvertimeRate: wc.cfg.DefaultOvertimeRate,
	}

	raw, ok := args["base_salary"]
	if !ok {
		return models.WageRequest{}, &models.ValidationError{
			Code:    CodeMissingField,
			Field:   "base_salary",
			Message: "base_salary is required",
		}
	}
	baseSalary, err := numericField("base_salary", raw)
	if err != nil {
		return models.WageRequest{}, err
	}
	if baseSalary <= 0 {
		return models.WageRequest{}, &models.ValidationError{
			Code:    CodeOutOfRange,
			Field:   "base_salary",
			Message: fmt.Sprintf("base_salary must be greater than zero, got %v", baseSalary),
		}
	}
	req.BaseSalary = baseSalary

	if raw, ok := args["overtime_hours"]; ok {
		hours, err := numericField("overtime_hours", raw)
		if err != nil {
			return models.WageRequest{}, err
		}
		if hours < 0 {
			return models.WageRequest{}, &models.ValidationError{
				Code:    CodeOutOfRange,
				Field:   "overtime_hours",
				Message: fmt.Sprintf("overtime_hours must not be negative, got %v", hours),
			}
		}
		req.OvertimeHours = hours
	}

	if raw, ok := args["overtime_rate"]; ok {
		rate, err := numericField("overtime_rate", raw)
		if err != nil {
			return models.WageRequest{}, err
		}
		if rate < 1 {
			return models.WageRequest{}, &models.ValidationError{
				Code:    CodeOutOfRange,
				Field:   "overtime_rate",
				Message: fmt.Sprintf("overtime_rate is a multiplier and must be at least 1, got %v", rate),
			}
		}
		req.OvertimeRate = rate
	}

	if raw, ok := args["bonus"]; ok {
		bonus, err := numericField("bonus", raw)
		if err != nil {
			return models.WageRequest{}, err
		}
		if bonus < 0 {
			return models.WageRequest{}, &models.ValidationError{
				Code:    CodeOutOfRange,
				Field:   "bonus",
				Message: fmt.Sprintf("bonus must not be negative, got %v", bonus),
			}
		}
		req.Bonus = bonus
	}

	if raw, ok := args["tax_rate"]; ok {
		rate, err := numericField("tax_rate", raw)
		if err != nil {
			return models.WageRequest{}, err
		}
		if rate < 0 || rate > 1 {
			return models.WageRequest{}, &models.ValidationError{
				Code:    CodeOutOfRange,
				Field:   "tax_rate",
				Message: fmt.Sprintf("tax_rate must be between 0 and 1, got %v", rate),
			}
		}
		req.TaxRate = &rate
	}

	if raw, ok := args["deductions"]; ok {
		deductions, err := numericField("deductions", raw)
		if err != nil {
			return models.WageRequest{}, err
		}
		if deductions < 0 {
			return models.WageRequest{}, &models.ValidationError{
				Code:    CodeOutOfRange,
				Field:   "deductions",
				Message: fmt.Sprintf("deductions must not be negative, got %v", deductions),
			}
		}
		req.Deductions = deductions
	}

	return req, nil
}

// numericField coerces a decoded JSON value to float64. JSON numbers decode
// to float64; integers arriving from typed callers are accepted too.
func numericField(field string, raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, &models.ValidationError{
			Code:    CodeNotNumeric,
			Field:   field,
			Message: fmt.Sprintf("%s must be a number, got %T", field, raw),
		}
	}
}
