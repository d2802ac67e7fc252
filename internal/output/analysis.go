package output

import (
	"sort"

	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation names the scenario ending with the highest net worth.
type Recommendation struct {
	ScenarioName      string
	FinalNetWorth     decimal.Decimal
	NetWorthAdvantage decimal.Decimal
	PercentageChange  decimal.Decimal
}

// AnalyzeComparison ranks scenarios by final net worth. The advantage is
// measured against the runner-up.
func AnalyzeComparison(cmp *domain.ScenarioComparison) Recommendation {
	if cmp == nil {
		return Recommendation{}
	}
	type ranked struct {
		name     string
		netWorth decimal.Decimal
	}
	var ranks []ranked
	for _, sc := range cmp.Scenarios {
		final, ok := sc.Trajectory.Final()
		if !ok {
			continue
		}
		ranks = append(ranks, ranked{sc.Name, final.NetWorth})
	}
	if len(ranks) == 0 {
		return Recommendation{}
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].netWorth.GreaterThan(ranks[j].netWorth) })
	best := ranks[0]
	rec := Recommendation{ScenarioName: best.name, FinalNetWorth: best.netWorth}
	if len(ranks) < 2 {
		return rec
	}
	runnerUp := ranks[1].netWorth
	rec.NetWorthAdvantage = best.netWorth.Sub(runnerUp)
	if !runnerUp.IsZero() {
		rec.PercentageChange = rec.NetWorthAdvantage.Div(runnerUp.Abs()).Mul(decimalHundred).Round(2)
	}
	return rec
}
