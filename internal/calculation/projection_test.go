package calculation

import (
	"testing"

	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// defaultScenario mirrors the settings defaults: 48 years old, retiring at 52.
func defaultScenario() (domain.ScenarioContext, domain.SimulationParameters) {
	sc := domain.ScenarioContext{
		InitialSalary:   25000,
		InitialNetWorth: 100000,
		StartYear:       2025,
	}
	p := domain.SimulationParameters{
		SalaryInitial:        25000,
		SavingsInitial:       100000,
		AnnualExpense:        24000,
		DesiredAnnualSavings: 0,
		AnnualPension:        18000,
		CurrentAge:           48,
		MaxAge:               100,
		DesiredRetirementAge: 52,
		MeanInflationRate:    0.02,
		MeanReturnRate:       0.025,
	}
	return sc, p
}

func recordAt(t *testing.T, trajectory domain.Trajectory, age int) domain.YearRecord {
	t.Helper()
	for _, yr := range trajectory {
		if yr.Age == age {
			return yr
		}
	}
	t.Fatalf("no record for age %d", age)
	return domain.YearRecord{}
}

func assertMoney(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Equal(t, expected, actual.StringFixed(2), msgAndArgs...)
}

func TestProject_DefaultScenarioFirstYear(t *testing.T) {
	sc, p := defaultScenario()

	trajectory, err := Project(sc, p)
	require.NoError(t, err)
	require.Len(t, trajectory, 53)

	first := trajectory[0]
	assert.Equal(t, 48, first.Age)
	assert.Equal(t, 2025, first.Year)
	assertMoney(t, "25500.00", first.Salary)
	assertMoney(t, "0.00", first.Pension)
	assertMoney(t, "0.00", first.RentalIncome)
	assertMoney(t, "25500.00", first.TotalIncome)
	assertMoney(t, "24480.00", first.TotalExpense)
	assertMoney(t, "103520.00", first.NetWorth)

	second := trajectory[1]
	assertMoney(t, "26010.00", second.Salary)
	assertMoney(t, "24969.60", second.TotalExpense)
	assertMoney(t, "107148.40", second.NetWorth)

	last, ok := trajectory.Final()
	require.True(t, ok)
	assert.Equal(t, 100, last.Age)
	assert.Equal(t, 2077, last.Year)
}

func TestProject_RetirementAndPensionTransitions(t *testing.T) {
	sc, p := defaultScenario()

	trajectory, err := Project(sc, p)
	require.NoError(t, err)

	assertMoney(t, "27060.80", recordAt(t, trajectory, 51).Salary)

	atRetirement := recordAt(t, trajectory, 52)
	assertMoney(t, "0.00", atRetirement.Salary)
	assertMoney(t, "0.00", atRetirement.Pension)
	assert.True(t, atRetirement.IsRetired())

	for age := 53; age < domain.PensionAge; age++ {
		yr := recordAt(t, trajectory, age)
		assertMoney(t, "0.00", yr.Salary, "salary at %d", age)
		assertMoney(t, "0.00", yr.Pension, "pension at %d", age)
	}

	assertMoney(t, "18000.00", recordAt(t, trajectory, 65).Pension)
	assertMoney(t, "18360.00", recordAt(t, trajectory, 66).Pension)
	assertMoney(t, "0.00", recordAt(t, trajectory, 66).Salary)
}

func TestProject_RetirementAtPensionAge(t *testing.T) {
	sc, p := defaultScenario()
	p.CurrentAge = 60
	p.MaxAge = 70
	p.DesiredRetirementAge = 65

	trajectory, err := Project(sc, p)
	require.NoError(t, err)

	yr := recordAt(t, trajectory, 65)
	assertMoney(t, "0.00", yr.Salary)
	assertMoney(t, "18000.00", yr.Pension)
	assert.True(t, recordAt(t, trajectory, 64).Salary.IsPositive())
}

func TestProject_RetirementAfterPensionAgeFollowsRuleOrder(t *testing.T) {
	sc := domain.ScenarioContext{}
	p := domain.SimulationParameters{
		SalaryInitial:        50000,
		SavingsInitial:       0,
		AnnualExpense:        10000,
		AnnualPension:        12000,
		CurrentAge:           60,
		MaxAge:               75,
		DesiredRetirementAge: 70,
	}

	trajectory, err := Project(sc, p)
	require.NoError(t, err)

	// The pension is set at 65, then the pre-retirement branch resets it the
	// following year because 66 is still below the retirement age.
	at65 := recordAt(t, trajectory, 65)
	assertMoney(t, "0.00", at65.Salary)
	assertMoney(t, "12000.00", at65.Pension)
	for age := 66; age <= 75; age++ {
		yr := recordAt(t, trajectory, age)
		assertMoney(t, "0.00", yr.Salary, "salary at %d", age)
		assertMoney(t, "0.00", yr.Pension, "pension at %d", age)
	}
	assertMoney(t, "50000.00", recordAt(t, trajectory, 64).Salary)
}

func TestProject_RetiringAtCurrentAge(t *testing.T) {
	sc, p := defaultScenario()
	p.DesiredRetirementAge = p.CurrentAge

	trajectory, err := Project(sc, p)
	require.NoError(t, err)

	assertMoney(t, "0.00", trajectory[0].Salary)
	assertMoney(t, "0.00", trajectory[0].TotalIncome)
	// 100000 * 1.025 - 24480
	assertMoney(t, "78020.00", trajectory[0].NetWorth)
}

func TestProject_LengthAndMonotonicAges(t *testing.T) {
	ranges := []struct{ current, max int }{
		{48, 100},
		{25, 26},
		{64, 66},
		{30, 90},
	}
	for _, r := range ranges {
		_, p := defaultScenario()
		p.CurrentAge = r.current
		p.MaxAge = r.max
		p.DesiredRetirementAge = r.current

		trajectory, err := Project(domain.ScenarioContext{}, p)
		require.NoError(t, err)
		assert.Len(t, trajectory, r.max-r.current+1)
		for i := 1; i < len(trajectory); i++ {
			assert.Equal(t, trajectory[i-1].Age+1, trajectory[i].Age)
		}
	}
}

func TestProject_Deterministic(t *testing.T) {
	sc, p := defaultScenario()
	sc.RentalIncome1 = 6000
	sc.RentalIncome2 = 4500

	first, err := Project(sc, p)
	require.NoError(t, err)
	second, err := Project(sc, p)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.True(t, first[i].NetWorth.Equal(second[i].NetWorth), "net worth differs at age %d", first[i].Age)
		assert.True(t, first[i].TotalIncome.Equal(second[i].TotalIncome), "income differs at age %d", first[i].Age)
	}
}

func TestProject_ZeroRatesKeepExpenseAndRentalsFlat(t *testing.T) {
	sc := domain.ScenarioContext{RentalIncome1: 1000, RentalIncome2: 500}
	p := domain.SimulationParameters{
		SalaryInitial:        30000,
		SavingsInitial:       10000,
		AnnualExpense:        20000,
		DesiredAnnualSavings: 1000,
		CurrentAge:           30,
		MaxAge:               40,
		DesiredRetirementAge: 35,
	}

	trajectory, err := Project(sc, p)
	require.NoError(t, err)

	for _, yr := range trajectory {
		assertMoney(t, "21000.00", yr.TotalExpense, "expense at %d", yr.Age)
		assertMoney(t, "1500.00", yr.RentalIncome, "rentals at %d", yr.Age)
	}

	// 10000 + 1000 seed, plus 31500 income, minus 21000 expense
	assertMoney(t, "21500.00", trajectory[0].NetWorth)
	for i := 1; i < len(trajectory); i++ {
		expected := trajectory[i-1].NetWorth.Add(trajectory[i].TotalIncome).Sub(trajectory[i].TotalExpense)
		assert.True(t, expected.Equal(trajectory[i].NetWorth), "net worth at age %d: want %s got %s",
			trajectory[i].Age, expected, trajectory[i].NetWorth)
	}
}

func TestProject_NetWorthIsNotClamped(t *testing.T) {
	sc, p := defaultScenario()
	p.SavingsInitial = 0
	p.AnnualExpense = 80000

	trajectory, err := Project(sc, p)
	require.NoError(t, err)

	age, insolvent := trajectory.FirstInsolventAge()
	require.True(t, insolvent)
	assert.Equal(t, 48, age)
	assert.True(t, trajectory[len(trajectory)-1].NetWorth.IsNegative())
}

func TestProject_WithoutStartYearLeavesYearUnset(t *testing.T) {
	_, p := defaultScenario()

	trajectory, err := Project(domain.ScenarioContext{}, p)
	require.NoError(t, err)
	assert.Zero(t, trajectory[0].Year)
}

func TestProject_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.ScenarioContext, *domain.SimulationParameters)
		wantErr error
	}{
		{
			name:    "max age equals current age",
			mutate:  func(_ *domain.ScenarioContext, p *domain.SimulationParameters) { p.MaxAge = p.CurrentAge },
			wantErr: domain.ErrInvalidRange,
		},
		{
			name:    "max age below current age",
			mutate:  func(_ *domain.ScenarioContext, p *domain.SimulationParameters) { p.MaxAge = 40 },
			wantErr: domain.ErrInvalidRange,
		},
		{
			name:    "retirement before current age",
			mutate:  func(_ *domain.ScenarioContext, p *domain.SimulationParameters) { p.DesiredRetirementAge = 47 },
			wantErr: domain.ErrInvalidRange,
		},
		{
			name:    "retirement after max age",
			mutate:  func(_ *domain.ScenarioContext, p *domain.SimulationParameters) { p.DesiredRetirementAge = 101 },
			wantErr: domain.ErrInvalidRange,
		},
		{
			name:    "negative salary",
			mutate:  func(_ *domain.ScenarioContext, p *domain.SimulationParameters) { p.SalaryInitial = -1 },
			wantErr: domain.ErrInvalidParameter,
		},
		{
			name:    "negative rental income",
			mutate:  func(sc *domain.ScenarioContext, _ *domain.SimulationParameters) { sc.RentalIncome2 = -500 },
			wantErr: domain.ErrInvalidParameter,
		},
		{
			name:    "return rate wipes out balance",
			mutate:  func(_ *domain.ScenarioContext, p *domain.SimulationParameters) { p.MeanReturnRate = -1 },
			wantErr: domain.ErrInvalidParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, p := defaultScenario()
			tt.mutate(&sc, &p)

			trajectory, err := Project(sc, p)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, trajectory)
		})
	}
}
