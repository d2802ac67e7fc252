package calculation

import (
	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/rpgo/networth-projector/pkg/dateutil"
	"github.com/rpgo/networth-projector/pkg/decimal"
)

// yearState carries the running totals from one simulated age to the next.
// Steps take a state by value and return the next one.
type yearState struct {
	salary   float64
	pension  float64
	rentals  float64
	expense  float64
	netWorth float64
}

// income is the total income for the state's current year.
func (s yearState) income() float64 {
	return s.salary + s.pension + s.rentals
}

// settle applies the rules both recurrences share: rentals and expense
// compound with inflation every year, and net worth earns the return on last
// year's balance plus this year's income minus expense.
func (s yearState) settle(inflationFactor, returnFactor float64) yearState {
	s.rentals *= inflationFactor
	s.expense *= inflationFactor
	s.netWorth = s.netWorth*returnFactor + s.income() - s.expense
	return s
}

// seedState builds the starting totals. Desired savings is folded in once as
// a baseline offset on both expense and net worth.
func seedState(sc domain.ScenarioContext, p domain.SimulationParameters) yearState {
	return yearState{
		salary:   p.SalaryInitial,
		rentals:  sc.CombinedRentalIncome(),
		expense:  p.AnnualExpense + p.DesiredAnnualSavings,
		netWorth: p.SavingsInitial + p.DesiredAnnualSavings,
	}
}

// projectYear advances the deterministic projection by one age. Rule order
// matters: the retirement branch runs before the pension-age branches, so a
// retirement age of 65 ends with salary 0 and pension set, while retiring
// after 65 lets the pre-retirement branch zero the pension again.
func projectYear(s yearState, age int, p domain.SimulationParameters) yearState {
	inflationFactor := 1 + p.MeanInflationRate

	switch {
	case age < p.DesiredRetirementAge:
		s.salary *= inflationFactor
		s.pension = 0
	case age == p.DesiredRetirementAge:
		s.salary = 0
	}

	if age == domain.PensionAge {
		s.pension = p.AnnualPension
		s.salary = 0
	}
	if age > domain.PensionAge {
		s.pension *= inflationFactor
		s.salary = 0
	}

	return s.settle(inflationFactor, 1+p.MeanReturnRate)
}

// record snapshots the state as a cents-rounded YearRecord.
func (s yearState) record(age, year int) domain.YearRecord {
	return domain.YearRecord{
		Age:          age,
		Year:         year,
		Salary:       decimal.Cents(s.salary),
		Pension:      decimal.Cents(s.pension),
		RentalIncome: decimal.Cents(s.rentals),
		TotalIncome:  decimal.Cents(s.income()),
		TotalExpense: decimal.Cents(s.expense),
		NetWorth:     decimal.Cents(s.netWorth),
	}
}

// Project computes the deterministic year-by-year trajectory from the current
// age to the max age inclusive. Net worth may go negative; it is not clamped.
func Project(sc domain.ScenarioContext, p domain.SimulationParameters) (domain.Trajectory, error) {
	if err := validateInputs(sc, p); err != nil {
		return nil, err
	}

	trajectory := make(domain.Trajectory, 0, p.Years())
	state := seedState(sc, p)
	for age := p.CurrentAge; age <= p.MaxAge; age++ {
		state = projectYear(state, age, p)
		trajectory = append(trajectory, state.record(age, calendarYear(sc, p, age)))
	}
	return trajectory, nil
}

func calendarYear(sc domain.ScenarioContext, p domain.SimulationParameters, age int) int {
	if sc.StartYear == 0 {
		return 0
	}
	return dateutil.CalendarYear(sc.StartYear, p.CurrentAge, age)
}

func validateInputs(sc domain.ScenarioContext, p domain.SimulationParameters) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return sc.Validate()
}
