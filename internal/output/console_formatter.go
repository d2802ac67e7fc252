package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/rpgo/networth-projector/internal/domain"
)

// ConsoleFormatter renders the report as aligned plain-text tables.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	l := LabelsFor(report.Language)
	lang := report.Language

	writeTitle(&buf, l.ProjectionTitle)
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n", l.Age, l.Year, l.Salary, l.Pension, l.RentalIncome, l.Income, l.Expense, l.NetWorth)
	for _, yr := range report.Trajectory {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			yr.Age, yr.Year,
			FormatCurrency(yr.Salary, lang),
			FormatCurrency(yr.Pension, lang),
			FormatCurrency(yr.RentalIncome, lang),
			FormatCurrency(yr.TotalIncome, lang),
			FormatCurrency(yr.TotalExpense, lang),
			FormatCurrency(yr.NetWorth, lang),
		)
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}
	if age, insolvent := report.Trajectory.FirstInsolventAge(); insolvent {
		fmt.Fprintf(&buf, "\n%s %d\n", l.Insolvent, age)
	}

	fmt.Fprintln(&buf)
	writeDecades(&buf, l, report.Decades, lang)

	if report.Curve != nil {
		fmt.Fprintln(&buf)
		if err := writeCurve(&buf, l, report.Curve); err != nil {
			return nil, err
		}
	}

	if report.Comparison != nil {
		fmt.Fprintln(&buf)
		writeTitle(&buf, l.ComparisonTitle)
		rec := AnalyzeComparison(report.Comparison)
		for _, sc := range report.Comparison.Scenarios {
			final, _ := sc.Trajectory.Final()
			fmt.Fprintf(&buf, "%s: %s %d, %s %s\n", sc.Name, l.RetirementAge, sc.Parameters.DesiredRetirementAge, l.FinalNetWorth, FormatCurrency(final.NetWorth, lang))
		}
		if rec.ScenarioName != "" {
			fmt.Fprintf(&buf, "Δ %s: %s\n", rec.ScenarioName, FormatCurrency(rec.NetWorthAdvantage, lang))
		}
	}

	return buf.Bytes(), nil
}

func writeTitle(buf *bytes.Buffer, title string) {
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, "================================")
}

func writeDecades(buf *bytes.Buffer, l Labels, decades []domain.DecadeSummary, lang string) {
	writeTitle(buf, l.SummaryTitle)
	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", l.Decade, l.MeanIncome, l.MeanExpense, l.FinalNetWorth)
	for _, d := range decades {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n", d.Decade, FormatCurrency(d.MeanIncome, lang), FormatCurrency(d.MeanExpense, lang), FormatCurrency(d.FinalNetWorth, lang))
	}
	_ = tw.Flush()
}

func writeCurve(buf *bytes.Buffer, l Labels, curve *domain.RetirementCurve) error {
	writeTitle(buf, l.CurveTitle)
	trials := 0
	if len(curve.Points) > 0 {
		trials = curve.Points[0].Trials
	}
	fmt.Fprintf(buf, "%s: %s\n", l.Trials, humanize.Comma(int64(trials)))
	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%s\t\n", l.RetirementAge, l.SuccessProbability)
	for _, p := range curve.Points {
		fmt.Fprintf(tw, "%d\t%s\t\n", p.Age, FormatProbability(p.SuccessProbability))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if curve.OptimalAge != nil {
		fmt.Fprintf(buf, "%s: %d (%s ≥ %s)\n", l.OptimalAge, *curve.OptimalAge, l.SuccessProbability, FormatProbability(curve.Threshold))
	} else {
		fmt.Fprintf(buf, "%s (%s)\n", l.NotReached, FormatProbability(curve.Threshold))
	}
	return nil
}
