package domain

import (
	"errors"
	"fmt"

	"github.com/rpgo/networth-projector/pkg/dateutil"
)

// PensionAge is the age at which the annual pension starts paying.
const PensionAge = 65

var (
	// ErrInvalidRange reports an age range that cannot be simulated.
	ErrInvalidRange = errors.New("invalid age range")
	// ErrInvalidParameter reports a numeric input outside its meaningful domain.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ScenarioContext is the slow-changing identity of a financial plan. It holds
// no running state; every projection takes it as pure input.
type ScenarioContext struct {
	InitialSalary   float64 `yaml:"initial_salary" json:"initial_salary"`
	InitialNetWorth float64 `yaml:"initial_net_worth" json:"initial_net_worth"`
	StartYear       int     `yaml:"start_year" json:"start_year"`
	InitialLoan     float64 `yaml:"initial_loan" json:"initial_loan"` // carried for reporting, not part of the recurrence
	RentalIncome1   float64 `yaml:"rental_income_1" json:"rental_income_1"`
	RentalIncome2   float64 `yaml:"rental_income_2" json:"rental_income_2"`
}

// CombinedRentalIncome returns the starting rental figure of both streams.
func (sc ScenarioContext) CombinedRentalIncome() float64 {
	return sc.RentalIncome1 + sc.RentalIncome2
}

// Validate checks the context for nonsensical monetary inputs.
func (sc ScenarioContext) Validate() error {
	if sc.RentalIncome1 < 0 || sc.RentalIncome2 < 0 {
		return fmt.Errorf("%w: rental income cannot be negative", ErrInvalidParameter)
	}
	if sc.InitialLoan < 0 {
		return fmt.Errorf("%w: initial loan cannot be negative", ErrInvalidParameter)
	}
	return nil
}

// SimulationParameters are the per-call inputs of a projection. Rates are
// fractions (0.02 for 2%).
type SimulationParameters struct {
	SalaryInitial        float64 `yaml:"salary_initial" json:"salary_initial"`
	SavingsInitial       float64 `yaml:"savings_initial" json:"savings_initial"`
	AnnualExpense        float64 `yaml:"annual_expense" json:"annual_expense"`
	DesiredAnnualSavings float64 `yaml:"desired_annual_savings" json:"desired_annual_savings"`
	AnnualPension        float64 `yaml:"annual_pension" json:"annual_pension"`
	CurrentAge           int     `yaml:"current_age" json:"current_age"`
	MaxAge               int     `yaml:"max_age" json:"max_age"`
	DesiredRetirementAge int     `yaml:"desired_retirement_age" json:"desired_retirement_age"`
	MeanInflationRate    float64 `yaml:"mean_inflation_rate" json:"mean_inflation_rate"`
	MeanReturnRate       float64 `yaml:"mean_return_rate" json:"mean_return_rate"`
}

// Validate enforces the age-range and sign invariants before any simulation
// loop runs.
func (p SimulationParameters) Validate() error {
	if p.MaxAge <= p.CurrentAge {
		return fmt.Errorf("%w: max age (%d) must be greater than current age (%d)", ErrInvalidRange, p.MaxAge, p.CurrentAge)
	}
	if p.DesiredRetirementAge < p.CurrentAge || p.DesiredRetirementAge > p.MaxAge {
		return fmt.Errorf("%w: retirement age %d outside [%d, %d]", ErrInvalidRange, p.DesiredRetirementAge, p.CurrentAge, p.MaxAge)
	}
	if p.CurrentAge < 0 {
		return fmt.Errorf("%w: current age cannot be negative", ErrInvalidRange)
	}

	amounts := []struct {
		name  string
		value float64
	}{
		{"salary", p.SalaryInitial},
		{"initial savings", p.SavingsInitial},
		{"annual expense", p.AnnualExpense},
		{"desired annual savings", p.DesiredAnnualSavings},
		{"annual pension", p.AnnualPension},
	}
	for _, a := range amounts {
		if a.value < 0 {
			return fmt.Errorf("%w: %s cannot be negative, got %.2f", ErrInvalidParameter, a.name, a.value)
		}
	}

	// Allow deflation but reject rates that would flip the sign of a balance.
	if p.MeanInflationRate <= -1 {
		return fmt.Errorf("%w: inflation rate must be greater than -100%%", ErrInvalidParameter)
	}
	if p.MeanReturnRate <= -1 {
		return fmt.Errorf("%w: return rate must be greater than -100%%", ErrInvalidParameter)
	}
	return nil
}

// Years returns the number of simulated ages, max age inclusive.
func (p SimulationParameters) Years() int {
	return dateutil.YearsBetween(p.CurrentAge, p.MaxAge)
}
