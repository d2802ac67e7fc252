package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validParameters() SimulationParameters {
	return SimulationParameters{
		SalaryInitial:        25000,
		SavingsInitial:       100000,
		AnnualExpense:        24000,
		AnnualPension:        18000,
		CurrentAge:           48,
		MaxAge:               100,
		DesiredRetirementAge: 52,
		MeanInflationRate:    0.02,
		MeanReturnRate:       0.025,
	}
}

func TestSimulationParametersValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*SimulationParameters)
		want   error
	}{
		{"valid", func(p *SimulationParameters) {}, nil},
		{"retire at current age", func(p *SimulationParameters) { p.DesiredRetirementAge = 48 }, nil},
		{"retire at max age", func(p *SimulationParameters) { p.DesiredRetirementAge = 100 }, nil},
		{"max equals current", func(p *SimulationParameters) { p.MaxAge = 48 }, ErrInvalidRange},
		{"retire before current", func(p *SimulationParameters) { p.DesiredRetirementAge = 47 }, ErrInvalidRange},
		{"retire after max", func(p *SimulationParameters) { p.DesiredRetirementAge = 101 }, ErrInvalidRange},
		{"negative salary", func(p *SimulationParameters) { p.SalaryInitial = -1 }, ErrInvalidParameter},
		{"negative pension", func(p *SimulationParameters) { p.AnnualPension = -1 }, ErrInvalidParameter},
		{"inflation -100%", func(p *SimulationParameters) { p.MeanInflationRate = -1 }, ErrInvalidParameter},
		{"deflation allowed", func(p *SimulationParameters) { p.MeanInflationRate = -0.01 }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParameters()
			tt.modify(&p)
			err := p.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestScenarioContextValidate(t *testing.T) {
	assert.NoError(t, ScenarioContext{RentalIncome1: 500}.Validate())
	assert.ErrorIs(t, ScenarioContext{RentalIncome2: -1}.Validate(), ErrInvalidParameter)
	assert.ErrorIs(t, ScenarioContext{InitialLoan: -1}.Validate(), ErrInvalidParameter)
	assert.Equal(t, 1500.0, ScenarioContext{RentalIncome1: 500, RentalIncome2: 1000}.CombinedRentalIncome())
}

func TestYears(t *testing.T) {
	assert.Equal(t, 53, validParameters().Years())
}

func TestTrajectoryHelpers(t *testing.T) {
	var empty Trajectory
	_, ok := empty.Final()
	assert.False(t, ok)

	tr := Trajectory{
		{Age: 60, NetWorth: decimal.NewFromInt(10)},
		{Age: 61, NetWorth: decimal.NewFromInt(-5)},
		{Age: 62, NetWorth: decimal.NewFromInt(-20)},
	}
	final, ok := tr.Final()
	assert.True(t, ok)
	assert.Equal(t, 62, final.Age)

	age, insolvent := tr.FirstInsolventAge()
	assert.True(t, insolvent)
	assert.Equal(t, 61, age)
	assert.True(t, tr[0].IsRetired())
}

func TestRetirementCurveAccessors(t *testing.T) {
	rc := &RetirementCurve{Points: []RetirementPoint{
		{Age: 50, SuccessProbability: 0.2},
		{Age: 51, SuccessProbability: 0.95},
	}}
	assert.Equal(t, []int{50, 51}, rc.Ages())
	assert.Equal(t, []float64{0.2, 0.95}, rc.Probabilities())
}
