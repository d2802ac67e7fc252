package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/rpgo/networth-projector/internal/domain"
)

// CurveCSVFormatter exports the Monte Carlo retirement curve: one row per
// candidate age, followed by a trailing optimal-age row.
type CurveCSVFormatter struct{}

func (c CurveCSVFormatter) Name() string      { return "curve-csv" }
func (c CurveCSVFormatter) Extension() string { return "csv" }

func (c CurveCSVFormatter) Format(report *domain.Report) ([]byte, error) {
	curve := report.Curve
	if curve == nil {
		return nil, fmt.Errorf("%w: retirement curve", ErrMissingSection)
	}

	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write([]string{"RetirementAge", "SuccessProbability", "Successes", "Trials", "MeetsThreshold"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for _, p := range curve.Points {
		row := []string{
			intToString(p.Age),
			strconv.FormatFloat(p.SuccessProbability, 'f', 4, 64),
			intToString(p.Successes),
			intToString(p.Trials),
			boolToString(p.SuccessProbability >= curve.Threshold),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write data row: %w", err)
		}
	}

	optimal := ""
	if curve.OptimalAge != nil {
		optimal = intToString(*curve.OptimalAge)
	}
	if err := writer.Write([]string{"OptimalAge", optimal, "", "", strconv.FormatFloat(curve.Threshold, 'f', 2, 64)}); err != nil {
		return nil, fmt.Errorf("failed to write summary row: %w", err)
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}
