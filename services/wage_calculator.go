package services

import (
	"paygrade/payroll/models"
)

// WageCalculator computes wage breakdowns from validated requests. The
// bracket table, contribution schedule, and jurisdiction constants are
// injected at construction time and never mutated, so a single instance is
// safe to share across requests.
type WageCalculator struct {
	cfg      models.PayrollConfig
	brackets []models.TaxBracket
	schedule models.ContributionSchedule
}

// NewWageCalculator creates a WageCalculator with the default jurisdiction
// constants and built-in tables
func NewWageCalculator() *WageCalculator {
	return NewWageCalculatorWithConfig(models.PayrollConfig{
		StandardMonthlyHours:  174,
		DefaultOvertimeRate:   1.5,
		TaxFreeAllowance:      5000,
		AverageMonthlyWage:    10000,
		ClampContributionBase: true,
		DefaultFlatTaxRate:    0.2,
	})
}

// NewWageCalculatorWithConfig creates a WageCalculator with the given
// jurisdiction constants and the built-in tables
func NewWageCalculatorWithConfig(cfg models.PayrollConfig) *WageCalculator {
	return NewWageCalculatorWithTables(cfg, DefaultTaxBrackets(), DefaultContributionSchedule())
}

// NewWageCalculatorWithTables creates a WageCalculator with complete
// configuration, including the bracket table and contribution schedule
func NewWageCalculatorWithTables(cfg models.PayrollConfig, brackets []models.TaxBracket, schedule models.ContributionSchedule) *WageCalculator {
	return &WageCalculator{
		cfg:      cfg,
		brackets: brackets,
		schedule: schedule,
	}
}

// OvertimePay computes the overtime amount for the given base salary,
// overtime hours, and rate multiplier. The hourly rate is derived from the
// base salary over the standard monthly hours.
func (wc *WageCalculator) OvertimePay(baseSalary, hours, rate float64) float64 {
	if hours == 0 {
		return 0
	}
	hourlyRate := baseSalary / wc.cfg.StandardMonthlyHours
	return hours * hourlyRate * rate
}

// ProgressiveTax computes the income tax owed on the given taxable income
// using the quick-deduction bracket table. Brackets are scanned from highest
// to lowest; the first bracket whose threshold is below the income applies.
// Non-positive income owes no tax.
func (wc *WageCalculator) ProgressiveTax(income float64) float64 {
	if income <= 0 {
		return 0
	}

	for i := len(wc.brackets) - 1; i >= 0; i-- {
		bracket := wc.brackets[i]
		if income > bracket.Threshold {
			tax := income*bracket.Rate - bracket.QuickDeduction
			if tax < 0 {
				return 0
			}
			return tax
		}
	}

	return 0
}

// Contributions computes the per-category personal and employer contribution
// amounts for the given contribution base, plus their totals. When clamping
// is enabled the base is first clamped to [0.6, 3.0] times the jurisdiction
// average monthly wage. No rounding is applied here; rounding is a
// presentation concern.
func (wc *WageCalculator) Contributions(base float64) models.ContributionBreakdown {
	if wc.cfg.ClampContributionBase {
		floor := wc.cfg.AverageMonthlyWage * 0.6
		ceiling := wc.cfg.AverageMonthlyWage * 3.0
		if base < floor {
			base = floor
		}
		if base > ceiling {
			base = ceiling
		}
	}

	breakdown := models.ContributionBreakdown{
		Base:  base,
		Items: make([]models.ContributionAmounts, 0, len(wc.schedule)),
	}

	for _, rate := range wc.schedule {
		item := models.ContributionAmounts{
			Category: rate.Category,
			Personal: base * rate.Personal,
			Employer: base * rate.Employer,
		}
		breakdown.Items = append(breakdown.Items, item)
		breakdown.PersonalTotal += item.Personal
		breakdown.EmployerTotal += item.Employer
	}

	return breakdown
}

// Compute produces the full wage breakdown for a validated request.
//
// Requests that carry a flat tax rate (or flat deductions) are processed
// under the flat model: tax is the flat rate applied to gross pay, and
// contributions are not withheld. All other requests use the itemized model:
// social contributions are withheld from the clamped base salary, taxable
// income is base plus overtime minus the personal contribution total and the
// tax-free allowance, and tax comes from the progressive bracket table. The
// two models are never mixed within one calculation.
func (wc *WageCalculator) Compute(req models.WageRequest) models.WageBreakdown {
	overtimePay := wc.OvertimePay(req.BaseSalary, req.OvertimeHours, req.OvertimeRate)
	gross := req.BaseSalary + overtimePay + req.Bonus

	if req.FlatRate() {
		rate := wc.cfg.DefaultFlatTaxRate
		if req.TaxRate != nil {
			rate = *req.TaxRate
		}
		tax := gross * rate

		return models.WageBreakdown{
			Model:       models.ModelFlat,
			BasicSalary: req.BaseSalary,
			OvertimePay: overtimePay,
			Bonus:       req.Bonus,
			GrossSalary: gross,
			Contributions: models.ContributionBreakdown{
				Items: []models.ContributionAmounts{},
			},
			TaxableIncome: gross,
			IncomeTax:     tax,
			Deductions:    req.Deductions,
			NetSalary:     gross - tax - req.Deductions,
		}
	}

	contributions := wc.Contributions(req.BaseSalary)

	taxable := req.BaseSalary + overtimePay - contributions.PersonalTotal - wc.cfg.TaxFreeAllowance
	if taxable < 0 {
		taxable = 0
	}
	tax := wc.ProgressiveTax(taxable)

	return models.WageBreakdown{
		Model:         models.ModelItemized,
		BasicSalary:   req.BaseSalary,
		OvertimePay:   overtimePay,
		Bonus:         req.Bonus,
		GrossSalary:   gross,
		Contributions: contributions,
		TaxableIncome: taxable,
		IncomeTax:     tax,
		NetSalary:     req.BaseSalary + overtimePay + req.Bonus - contributions.PersonalTotal - tax,
	}
}
