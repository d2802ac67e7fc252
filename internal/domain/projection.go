package domain

import (
	"github.com/shopspring/decimal"
)

// YearRecord is one simulated age of a trajectory. Monetary values are
// rounded to cents.
type YearRecord struct {
	Age          int             `json:"age"`
	Year         int             `json:"year"`
	Salary       decimal.Decimal `json:"salary"`
	Pension      decimal.Decimal `json:"pension"`
	RentalIncome decimal.Decimal `json:"rental_income"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetWorth     decimal.Decimal `json:"net_worth"`
}

// IsRetired reports whether the record carries no salary.
func (yr YearRecord) IsRetired() bool {
	return yr.Salary.IsZero()
}

// Trajectory is one deterministic projection, ordered by age ascending.
type Trajectory []YearRecord

// Final returns the last record, or false for an empty trajectory.
func (t Trajectory) Final() (YearRecord, bool) {
	if len(t) == 0 {
		return YearRecord{}, false
	}
	return t[len(t)-1], true
}

// FirstInsolventAge returns the first age with negative net worth.
func (t Trajectory) FirstInsolventAge() (int, bool) {
	for _, yr := range t {
		if yr.NetWorth.IsNegative() {
			return yr.Age, true
		}
	}
	return 0, false
}

// RetirementPoint is the estimated success probability for one candidate
// retirement age.
type RetirementPoint struct {
	Age                int     `json:"age"`
	SuccessProbability float64 `json:"success_probability"`
	Successes          int     `json:"successes"`
	Trials             int     `json:"trials"`
}

// RetirementCurve is the Monte Carlo result across candidate retirement ages.
type RetirementCurve struct {
	Points     []RetirementPoint `json:"points"`
	Threshold  float64           `json:"threshold"`
	OptimalAge *int              `json:"optimal_age"`
	Seed       int64             `json:"seed"`
}

// Ages returns the candidate ages in order.
func (rc *RetirementCurve) Ages() []int {
	ages := make([]int, len(rc.Points))
	for i, p := range rc.Points {
		ages[i] = p.Age
	}
	return ages
}

// Probabilities returns the success probabilities, parallel to Ages.
func (rc *RetirementCurve) Probabilities() []float64 {
	probs := make([]float64, len(rc.Points))
	for i, p := range rc.Points {
		probs[i] = p.SuccessProbability
	}
	return probs
}

// DecadeSummary aggregates the records whose age falls in one decade.
type DecadeSummary struct {
	Decade        int             `json:"decade"`
	MeanIncome    decimal.Decimal `json:"mean_income"`
	MeanExpense   decimal.Decimal `json:"mean_expense"`
	FinalNetWorth decimal.Decimal `json:"final_net_worth"`
	Years         int             `json:"years"`
}

// NamedTrajectory labels a trajectory for side-by-side comparison.
type NamedTrajectory struct {
	Name       string               `json:"name"`
	Parameters SimulationParameters `json:"parameters"`
	Trajectory Trajectory           `json:"trajectory"`
}

// ScenarioComparison holds trajectories projected from one context with
// different parameters.
type ScenarioComparison struct {
	Context   ScenarioContext   `json:"context"`
	Scenarios []NamedTrajectory `json:"scenarios"`
}

// Report bundles everything the presentation layer renders for one request.
type Report struct {
	Context    ScenarioContext      `json:"context"`
	Parameters SimulationParameters `json:"parameters"`
	Trajectory Trajectory           `json:"trajectory"`
	Decades    []DecadeSummary      `json:"decades"`
	Curve      *RetirementCurve     `json:"retirement_curve,omitempty"`
	Comparison *ScenarioComparison  `json:"comparison,omitempty"`
	Language   string               `json:"language"`
}
