package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/rpgo/networth-projector/internal/domain"
)

// TrajectoryCSVFormatter emits the year-by-year projection with plain
// numeric amounts.
type TrajectoryCSVFormatter struct{}

func (d TrajectoryCSVFormatter) Name() string      { return "detailed-csv" }
func (d TrajectoryCSVFormatter) Extension() string { return "csv" }

var trajectoryHeader = []string{"Age", "Year", "Salary", "Pension", "RentalIncome", "TotalIncome", "TotalExpense", "NetWorth", "Retired"}

func (d TrajectoryCSVFormatter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(trajectoryHeader); err != nil {
		return nil, err
	}
	if err := writeTrajectoryRows(w, "", report.Trajectory); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ComparisonCSVFormatter emits both scenario trajectories, one row per
// scenario and age.
type ComparisonCSVFormatter struct{}

func (c ComparisonCSVFormatter) Name() string      { return "comparison-csv" }
func (c ComparisonCSVFormatter) Extension() string { return "csv" }

func (c ComparisonCSVFormatter) Format(report *domain.Report) ([]byte, error) {
	if report.Comparison == nil {
		return nil, fmt.Errorf("%w: comparison", ErrMissingSection)
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(append([]string{"Scenario"}, trajectoryHeader...)); err != nil {
		return nil, err
	}
	for _, sc := range report.Comparison.Scenarios {
		if err := writeTrajectoryRows(w, sc.Name, sc.Trajectory); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func writeTrajectoryRows(w *csv.Writer, scenario string, t domain.Trajectory) error {
	for _, yr := range t {
		row := []string{
			intToString(yr.Age),
			intToString(yr.Year),
			FormatPlain(yr.Salary),
			FormatPlain(yr.Pension),
			FormatPlain(yr.RentalIncome),
			FormatPlain(yr.TotalIncome),
			FormatPlain(yr.TotalExpense),
			FormatPlain(yr.NetWorth),
			boolToString(yr.IsRetired()),
		}
		if scenario != "" {
			row = append([]string{scenario}, row...)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
