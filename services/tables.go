package services

import "paygrade/payroll/models"

// Built-in jurisdiction data for the monthly payroll calculation.
//
// The bracket table uses the quick-deduction form: for income inside a
// bracket, tax = income*rate - quickDeduction. The quick-deduction constants
// are chosen so that the tax function is continuous at every bracket
// boundary; the continuity test in wage_calculator_test.go guards them.

// DefaultTaxBrackets returns the monthly progressive tax bracket table
func DefaultTaxBrackets() []models.TaxBracket {
	return []models.TaxBracket{
		{Threshold: 0, Rate: 0.03, QuickDeduction: 0},
		{Threshold: 3000, Rate: 0.10, QuickDeduction: 210},
		{Threshold: 12000, Rate: 0.20, QuickDeduction: 1410},
		{Threshold: 25000, Rate: 0.25, QuickDeduction: 2660},
		{Threshold: 35000, Rate: 0.30, QuickDeduction: 4410},
		{Threshold: 55000, Rate: 0.35, QuickDeduction: 7160},
		{Threshold: 80000, Rate: 0.45, QuickDeduction: 15160},
	}
}

// Contribution category names
const (
	CategoryPension      = "pension"
	CategoryMedical      = "medical"
	CategoryUnemployment = "unemployment"
	CategoryInjury       = "injury"
	CategoryHousingFund  = "housing_fund"
)

// DefaultContributionSchedule returns the fixed social-contribution rate
// schedule, personal and employer rates per category
func DefaultContributionSchedule() models.ContributionSchedule {
	return models.ContributionSchedule{
		{Category: CategoryPension, Personal: 0.08, Employer: 0.16},
		{Category: CategoryMedical, Personal: 0.02, Employer: 0.10},
		{Category: CategoryUnemployment, Personal: 0.005, Employer: 0.005},
		{Category: CategoryInjury, Personal: 0, Employer: 0.004},
		{Category: CategoryHousingFund, Personal: 0.07, Employer: 0.07},
	}
}
