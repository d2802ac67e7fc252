package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/networth-projector/internal/domain"
)

// DecadeCSVFormatter implements the decade summary CSV (one row per decade),
// with headers and currency formatted for the report language.
type DecadeCSVFormatter struct{}

func (c DecadeCSVFormatter) Name() string      { return "csv" }
func (c DecadeCSVFormatter) Extension() string { return "csv" }

func (c DecadeCSVFormatter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	l := LabelsFor(report.Language)
	header := []string{l.Decade, l.MeanIncome, l.MeanExpense, l.FinalNetWorth}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, d := range report.Decades {
		row := []string{
			intToString(d.Decade),
			FormatCurrency(d.MeanIncome, report.Language),
			FormatCurrency(d.MeanExpense, report.Language),
			FormatCurrency(d.FinalNetWorth, report.Language),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
