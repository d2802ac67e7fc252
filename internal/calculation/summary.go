package calculation

import (
	"sort"

	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/rpgo/networth-projector/pkg/dateutil"
	money "github.com/rpgo/networth-projector/pkg/decimal"
	"github.com/shopspring/decimal"
)

type decadeBucket struct {
	incomes  []decimal.Decimal
	expenses []decimal.Decimal
	last     domain.YearRecord
}

// SummarizeByDecade groups a trajectory by floor(age/10)*10 and reports, per
// decade in ascending order, mean income, mean expense and the net worth of
// the oldest record in the decade. Partial decades are treated like full ones.
func SummarizeByDecade(t domain.Trajectory) []domain.DecadeSummary {
	buckets := make(map[int]*decadeBucket)
	var decades []int

	for _, yr := range t {
		d := dateutil.Decade(yr.Age)
		b, ok := buckets[d]
		if !ok {
			b = &decadeBucket{last: yr}
			buckets[d] = b
			decades = append(decades, d)
		}
		b.incomes = append(b.incomes, yr.TotalIncome)
		b.expenses = append(b.expenses, yr.TotalExpense)
		if yr.Age >= b.last.Age {
			b.last = yr
		}
	}
	sort.Ints(decades)

	summaries := make([]domain.DecadeSummary, 0, len(decades))
	for _, d := range decades {
		b := buckets[d]
		summaries = append(summaries, domain.DecadeSummary{
			Decade:        d,
			MeanIncome:    money.Mean(b.incomes),
			MeanExpense:   money.Mean(b.expenses),
			FinalNetWorth: b.last.NetWorth,
			Years:         len(b.incomes),
		})
	}
	return summaries
}
