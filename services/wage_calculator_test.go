package services

import (
	"reflect"
	"testing"

	"paygrade/payroll/models"
)

// approxEqual compares floats with a small tolerance for binary rounding
func approxEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-6
}

func TestProgressiveTax(t *testing.T) {
	calculator := NewWageCalculator()

	tests := []struct {
		name        string
		income      float64
		expectedTax float64
	}{
		{
			name:        "zero income owes no tax",
			income:      0,
			expectedTax: 0,
		},
		{
			name:        "negative income owes no tax",
			income:      -100,
			expectedTax: 0,
		},
		{
			name:        "first bracket",
			income:      2000,
			expectedTax: 60, // 2000 * 0.03
		},
		{
			name:        "second bracket",
			income:      3250,
			expectedTax: 115, // 3250 * 0.10 - 210
		},
		{
			name:        "third bracket",
			income:      20000,
			expectedTax: 2590, // 20000 * 0.20 - 1410
		},
		{
			name:        "top bracket",
			income:      100000,
			expectedTax: 29840, // 100000 * 0.45 - 15160
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tax := calculator.ProgressiveTax(tc.income)

			if !approxEqual(tax, tc.expectedTax) {
				t.Errorf("expected tax %f but got %f", tc.expectedTax, tax)
			}
		})
	}
}

func TestProgressiveTaxMonotonic(t *testing.T) {
	calculator := NewWageCalculator()

	previous := 0.0
	for income := 0.0; income <= 120000; income += 50 {
		tax := calculator.ProgressiveTax(income)
		if tax < previous {
			t.Fatalf("tax decreased from %f to %f at income %f", previous, tax, income)
		}
		previous = tax
	}
}

func TestProgressiveTaxContinuity(t *testing.T) {
	calculator := NewWageCalculator()

	// At each bracket boundary the tax just below and just above must agree
	// within a rounding epsilon. A wrong quick-deduction constant shows up
	// here as a jump.
	const step = 0.001
	for _, bracket := range DefaultTaxBrackets()[1:] {
		below := calculator.ProgressiveTax(bracket.Threshold)
		above := calculator.ProgressiveTax(bracket.Threshold + step)

		diff := above - below
		if diff < 0 {
			diff = -diff
		}
		if diff > 0.01 {
			t.Errorf("tax is discontinuous at threshold %f: %f below, %f above",
				bracket.Threshold, below, above)
		}
	}
}

func TestOvertimePay(t *testing.T) {
	calculator := NewWageCalculator()

	tests := []struct {
		name     string
		base     float64
		hours    float64
		rate     float64
		expected float64
	}{
		{
			name:     "no overtime",
			base:     10000,
			hours:    0,
			rate:     1.5,
			expected: 0,
		},
		{
			name:     "ten hours at default multiplier",
			base:     10000,
			hours:    10,
			rate:     1.5,
			expected: 10 * (10000.0 / 174.0) * 1.5,
		},
		{
			name:     "double pay multiplier",
			base:     8700,
			hours:    4,
			rate:     2.0,
			expected: 4 * 50 * 2.0, // hourly rate is 8700/174 = 50
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pay := calculator.OvertimePay(tc.base, tc.hours, tc.rate)

			if !approxEqual(pay, tc.expected) {
				t.Errorf("expected overtime pay %f but got %f", tc.expected, pay)
			}
		})
	}
}

func TestContributions(t *testing.T) {
	calculator := NewWageCalculator()

	t.Run("unclamped base", func(t *testing.T) {
		breakdown := calculator.Contributions(10000)

		if breakdown.Base != 10000 {
			t.Errorf("expected contribution base 10000 but got %f", breakdown.Base)
		}

		// personal: 8% + 2% + 0.5% + 0% + 7% = 17.5%
		if !approxEqual(breakdown.PersonalTotal, 1750) {
			t.Errorf("expected personal total 1750 but got %f", breakdown.PersonalTotal)
		}

		// employer: 16% + 10% + 0.5% + 0.4% + 7% = 33.9%
		if !approxEqual(breakdown.EmployerTotal, 3390) {
			t.Errorf("expected employer total 3390 but got %f", breakdown.EmployerTotal)
		}
	})

	t.Run("totals equal sum of categories", func(t *testing.T) {
		breakdown := calculator.Contributions(12345.67)

		var personalSum, employerSum float64
		for _, item := range breakdown.Items {
			personalSum += item.Personal
			employerSum += item.Employer
		}

		if !approxEqual(personalSum, breakdown.PersonalTotal) {
			t.Errorf("personal total %f does not match item sum %f", breakdown.PersonalTotal, personalSum)
		}
		if !approxEqual(employerSum, breakdown.EmployerTotal) {
			t.Errorf("employer total %f does not match item sum %f", breakdown.EmployerTotal, employerSum)
		}
	})

	t.Run("base clamped to floor", func(t *testing.T) {
		breakdown := calculator.Contributions(3000)

		// 0.6 x average wage of 10000
		if breakdown.Base != 6000 {
			t.Errorf("expected clamped base 6000 but got %f", breakdown.Base)
		}
	})

	t.Run("base clamped to ceiling", func(t *testing.T) {
		breakdown := calculator.Contributions(50000)

		// 3.0 x average wage of 10000
		if breakdown.Base != 30000 {
			t.Errorf("expected clamped base 30000 but got %f", breakdown.Base)
		}
	})

	t.Run("clamping disabled", func(t *testing.T) {
		cfg := defaultPayrollConfig()
		cfg.ClampContributionBase = false
		unclamped := NewWageCalculatorWithConfig(cfg)

		breakdown := unclamped.Contributions(3000)

		if breakdown.Base != 3000 {
			t.Errorf("expected base 3000 but got %f", breakdown.Base)
		}
	})
}

func TestComputeItemizedWorkedExample(t *testing.T) {
	calculator := NewWageCalculator()

	// base 10000, no overtime, no bonus:
	//   personal contributions = 10000 * 17.5% = 1750
	//   taxable = 10000 - 1750 - 5000 = 3250
	//   tax = 3250 * 0.10 - 210 = 115
	//   net = 10000 - 1750 - 115 = 8135
	breakdown := calculator.Compute(models.WageRequest{BaseSalary: 10000, OvertimeRate: 1.5})

	if breakdown.Model != models.ModelItemized {
		t.Errorf("expected itemized model but got %s", breakdown.Model)
	}
	if !approxEqual(breakdown.GrossSalary, 10000) {
		t.Errorf("expected gross 10000 but got %f", breakdown.GrossSalary)
	}
	if !approxEqual(breakdown.Contributions.PersonalTotal, 1750) {
		t.Errorf("expected personal contributions 1750 but got %f", breakdown.Contributions.PersonalTotal)
	}
	if !approxEqual(breakdown.TaxableIncome, 3250) {
		t.Errorf("expected taxable income 3250 but got %f", breakdown.TaxableIncome)
	}
	if !approxEqual(breakdown.IncomeTax, 115) {
		t.Errorf("expected income tax 115 but got %f", breakdown.IncomeTax)
	}
	if !approxEqual(breakdown.NetSalary, 8135) {
		t.Errorf("expected net salary 8135 but got %f", breakdown.NetSalary)
	}
}

func TestComputeItemizedWithOvertimeAndBonus(t *testing.T) {
	calculator := NewWageCalculator()

	req := models.WageRequest{
		BaseSalary:    8700, // hourly rate 50
		OvertimeHours: 10,
		OvertimeRate:  1.5,
		Bonus:         2000,
	}
	breakdown := calculator.Compute(req)

	overtimePay := 10 * 50.0 * 1.5 // 750

	if !approxEqual(breakdown.OvertimePay, overtimePay) {
		t.Errorf("expected overtime pay %f but got %f", overtimePay, breakdown.OvertimePay)
	}
	if !approxEqual(breakdown.GrossSalary, 8700+overtimePay+2000) {
		t.Errorf("expected gross %f but got %f", 8700+overtimePay+2000, breakdown.GrossSalary)
	}

	// taxable includes overtime but not bonus; contributions come off the base
	personalTotal := 8700 * 0.175
	expectedTaxable := 8700 + overtimePay - personalTotal - 5000
	if !approxEqual(breakdown.TaxableIncome, expectedTaxable) {
		t.Errorf("expected taxable income %f but got %f", expectedTaxable, breakdown.TaxableIncome)
	}

	expectedTax := expectedTaxable * 0.03 // falls in the first bracket
	if !approxEqual(breakdown.IncomeTax, expectedTax) {
		t.Errorf("expected income tax %f but got %f", expectedTax, breakdown.IncomeTax)
	}

	expectedNet := 8700 + overtimePay + 2000 - personalTotal - expectedTax
	if !approxEqual(breakdown.NetSalary, expectedNet) {
		t.Errorf("expected net salary %f but got %f", expectedNet, breakdown.NetSalary)
	}
}

func TestComputeFlatWorkedExample(t *testing.T) {
	calculator := NewWageCalculator()

	rate := 0.2
	req := models.WageRequest{
		BaseSalary: 10000,
		TaxRate:    &rate,
		Deductions: 500,
	}
	breakdown := calculator.Compute(req)

	if breakdown.Model != models.ModelFlat {
		t.Errorf("expected flat model but got %s", breakdown.Model)
	}
	if !approxEqual(breakdown.IncomeTax, 2000) {
		t.Errorf("expected income tax 2000 but got %f", breakdown.IncomeTax)
	}
	if !approxEqual(breakdown.NetSalary, 7500) {
		t.Errorf("expected net salary 7500 but got %f", breakdown.NetSalary)
	}
	if breakdown.Contributions.PersonalTotal != 0 {
		t.Errorf("flat model must not withhold contributions, got %f", breakdown.Contributions.PersonalTotal)
	}
}

func TestComputeFlatDefaultRate(t *testing.T) {
	calculator := NewWageCalculator()

	// Only deductions supplied: the flat model engages with the default rate
	breakdown := calculator.Compute(models.WageRequest{BaseSalary: 10000, Deductions: 100})

	if breakdown.Model != models.ModelFlat {
		t.Errorf("expected flat model but got %s", breakdown.Model)
	}
	if !approxEqual(breakdown.IncomeTax, 2000) { // 10000 * default 0.2
		t.Errorf("expected income tax 2000 but got %f", breakdown.IncomeTax)
	}
	if !approxEqual(breakdown.NetSalary, 7900) {
		t.Errorf("expected net salary 7900 but got %f", breakdown.NetSalary)
	}
}

func TestNetNeverExceedsGross(t *testing.T) {
	calculator := NewWageCalculator()

	for _, base := range []float64{4000, 6000, 10000, 25000, 80000, 200000} {
		breakdown := calculator.Compute(models.WageRequest{BaseSalary: base, OvertimeRate: 1.5})

		if breakdown.NetSalary >= breakdown.GrossSalary {
			t.Errorf("net %f is not below gross %f for base %f with positive rates",
				breakdown.NetSalary, breakdown.GrossSalary, base)
		}
	}
}

func TestNetEqualsGrossUnderZeroRates(t *testing.T) {
	cfg := defaultPayrollConfig()
	cfg.TaxFreeAllowance = 0
	cfg.ClampContributionBase = false

	zeroBrackets := []models.TaxBracket{{Threshold: 0, Rate: 0, QuickDeduction: 0}}
	zeroSchedule := models.ContributionSchedule{
		{Category: CategoryPension, Personal: 0, Employer: 0},
	}
	calculator := NewWageCalculatorWithTables(cfg, zeroBrackets, zeroSchedule)

	breakdown := calculator.Compute(models.WageRequest{BaseSalary: 10000, OvertimeRate: 1.5})

	if !approxEqual(breakdown.NetSalary, breakdown.GrossSalary) {
		t.Errorf("expected net %f to equal gross %f when all rates are zero",
			breakdown.NetSalary, breakdown.GrossSalary)
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	calculator := NewWageCalculator()

	req := models.WageRequest{
		BaseSalary:    12345.67,
		OvertimeHours: 7.5,
		OvertimeRate:  1.5,
		Bonus:         890,
	}

	first := calculator.Compute(req)
	second := calculator.Compute(req)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical requests produced different breakdowns:\n%+v\n%+v", first, second)
	}
}

// defaultPayrollConfig mirrors the constants used by NewWageCalculator
func defaultPayrollConfig() models.PayrollConfig {
	return models.PayrollConfig{
		StandardMonthlyHours:  174,
		DefaultOvertimeRate:   1.5,
		TaxFreeAllowance:      5000,
		AverageMonthlyWage:    10000,
		ClampContributionBase: true,
		DefaultFlatTaxRate:    0.2,
	}
}
