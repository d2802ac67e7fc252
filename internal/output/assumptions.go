package output

import (
	"fmt"

	"github.com/rpgo/networth-projector/internal/domain"
	money "github.com/rpgo/networth-projector/pkg/decimal"
	"github.com/shopspring/decimal"
)

// GenerateAssumptions lists the modeling assumptions behind a projection, in
// English; the HTML report shows them under the assumptions heading.
func GenerateAssumptions(p domain.SimulationParameters) []string {
	return []string{
		fmt.Sprintf("Inflation: %.2f%% annually (salary, pension, rentals and expenses)", money.ToPercent(p.MeanInflationRate)),
		fmt.Sprintf("Investment return on net worth: %.2f%% annually", money.ToPercent(p.MeanReturnRate)),
		fmt.Sprintf("Salary stops at retirement age %d", p.DesiredRetirementAge),
		fmt.Sprintf("Pension starts at age %d", domain.PensionAge),
		fmt.Sprintf("Desired annual savings of %.2f added to initial net worth and to expenses", p.DesiredAnnualSavings),
		"No taxes; net worth is not clamped at zero",
	}
}

var decimalHundred = decimal.NewFromInt(100)
