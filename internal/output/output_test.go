package output

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/networth-projector/internal/domain"
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func sampleReport(lang string) *domain.Report {
	trajectory := domain.Trajectory{
		{Age: 48, Year: 2025, Salary: dec("25500"), TotalIncome: dec("25500"), TotalExpense: dec("24480"), NetWorth: dec("103520")},
		{Age: 49, Year: 2026, Salary: dec("26010"), TotalIncome: dec("26010"), TotalExpense: dec("24969.60"), NetWorth: dec("107148.40")},
		{Age: 50, Year: 2027, TotalIncome: dec("0"), TotalExpense: dec("25468.99"), NetWorth: dec("84358.12")},
	}
	return &domain.Report{
		Parameters: domain.SimulationParameters{
			CurrentAge: 48, MaxAge: 50, DesiredRetirementAge: 50,
			MeanInflationRate: 0.02, MeanReturnRate: 0.025,
		},
		Trajectory: trajectory,
		Decades: []domain.DecadeSummary{
			{Decade: 40, MeanIncome: dec("25755"), MeanExpense: dec("24724.80"), FinalNetWorth: dec("107148.40"), Years: 2},
			{Decade: 50, MeanIncome: dec("0"), MeanExpense: dec("25468.99"), FinalNetWorth: dec("84358.12"), Years: 1},
		},
		Language: lang,
	}
}

func withCurve(r *domain.Report, optimal *int) *domain.Report {
	r.Curve = &domain.RetirementCurve{
		Points: []domain.RetirementPoint{
			{Age: 48, SuccessProbability: 0.5, Successes: 500, Trials: 1000},
			{Age: 49, SuccessProbability: 0.95, Successes: 950, Trials: 1000},
			{Age: 50, SuccessProbability: 1, Successes: 1000, Trials: 1000},
		},
		Threshold:  0.9,
		OptimalAge: optimal,
		Seed:       7,
	}
	return r
}

func intPtr(i int) *int { return &i }

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "€25,500.00", FormatCurrency(dec("25500"), "en"))
	assert.Equal(t, "25.500,00 €", FormatCurrency(dec("25500"), "es"))
	assert.Equal(t, "-€25,500.00", FormatCurrency(dec("-25500"), "en"))
	assert.Equal(t, "€0.00", FormatCurrency(decimal.Zero, "en"))
	assert.Equal(t, "€12.35", FormatCurrency(dec("12.345"), "en-GB"))
}

func TestFormatProbability(t *testing.T) {
	assert.Equal(t, "90.00%", FormatProbability(0.9))
	assert.Equal(t, "0.00%", FormatProbability(0))
	assert.Equal(t, "100.00%", FormatProbability(1))
}

func TestResolveLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"en", "en"},
		{"en-GB", "en"},
		{"es", "es"},
		{"es-MX", "es"},
		{"", "es"},
		{"fr", "es"},
		{"not a tag!", "es"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, languageCode(tt.in))
		})
	}
}

func languageCode(lang string) string {
	base, _ := ResolveLanguage(lang).Base()
	return base.String()
}

func TestLabelsFor(t *testing.T) {
	assert.Equal(t, "Década", LabelsFor("es").Decade)
	assert.Equal(t, "Patrimonio Final", LabelsFor("es").FinalNetWorth)
	assert.Equal(t, "Decade", LabelsFor("en").Decade)
	assert.Equal(t, LabelsFor("es"), LabelsFor("de"))
}

func TestFormatterRegistry(t *testing.T) {
	for _, name := range AvailableFormatterNames() {
		f := GetFormatterByName(name)
		require.NotNil(t, f, name)
		assert.Equal(t, name, f.Name())
	}
	for _, alias := range AvailableFormatAliases() {
		assert.NotNil(t, GetFormatterByName(alias), alias)
	}
	assert.Equal(t, "console", NormalizeFormatName("  TEXT "))
	assert.Equal(t, "detailed-csv", NormalizeFormatName("trajectory"))
	assert.Nil(t, GetFormatterByName("pdf"))

	_, err := Render(sampleReport("en"), "pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecadeCSVFormatter(t *testing.T) {
	out, err := DecadeCSVFormatter{}.Format(sampleReport("es"))
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Década", "Promedio Ingresos", "Promedio Gastos", "Patrimonio Final"}, rows[0])
	assert.Equal(t, []string{"40", "25.755,00 €", "24.724,80 €", "107.148,40 €"}, rows[1])
	assert.Equal(t, "50", rows[2][0])

	out, err = DecadeCSVFormatter{}.Format(sampleReport("en"))
	require.NoError(t, err)
	rows, err = csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"40", "€25,755.00", "€24,724.80", "€107,148.40"}, rows[1])
}

func TestTrajectoryCSVFormatter(t *testing.T) {
	out, err := TrajectoryCSVFormatter{}.Format(sampleReport("es"))
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, trajectoryHeader, rows[0])
	assert.Equal(t, []string{"48", "2025", "25500.00", "0.00", "0.00", "25500.00", "24480.00", "103520.00", "false"}, rows[1])
	assert.Equal(t, "true", rows[3][8])
}

func TestComparisonCSVFormatter(t *testing.T) {
	r := sampleReport("en")
	_, err := ComparisonCSVFormatter{}.Format(r)
	assert.ErrorIs(t, err, ErrMissingSection)

	r.Comparison = &domain.ScenarioComparison{Scenarios: []domain.NamedTrajectory{
		{Name: "Scenario A", Trajectory: r.Trajectory[:1]},
		{Name: "Scenario B", Trajectory: r.Trajectory[:2]},
	}}
	out, err := ComparisonCSVFormatter{}.Format(r)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Scenario", rows[0][0])
	assert.Equal(t, "Scenario A", rows[1][0])
	assert.Equal(t, "Scenario B", rows[3][0])
}

func TestCurveCSVFormatter(t *testing.T) {
	_, err := CurveCSVFormatter{}.Format(sampleReport("en"))
	assert.ErrorIs(t, err, ErrMissingSection)

	out, err := CurveCSVFormatter{}.Format(withCurve(sampleReport("en"), intPtr(49)))
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"48", "0.5000", "500", "1000", "false"}, rows[1])
	assert.Equal(t, []string{"49", "0.9500", "950", "1000", "true"}, rows[2])
	assert.Equal(t, []string{"OptimalAge", "49", "", "", "0.90"}, rows[4])

	out, err = CurveCSVFormatter{}.Format(withCurve(sampleReport("en"), nil))
	require.NoError(t, err)
	assert.Contains(t, string(out), "OptimalAge,,,,0.90")
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(withCurve(sampleReport("en"), intPtr(49)))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Len(t, decoded["trajectory"], 3)
	assert.Len(t, decoded["decades"], 2)
	curve, ok := decoded["retirement_curve"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 49, curve["optimal_age"])
	assert.NotContains(t, decoded, "comparison")
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(withCurve(sampleReport("en"), intPtr(49)))
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "Annual Financial Evolution")
	assert.Contains(t, s, "€103,520.00")
	assert.Contains(t, s, "Financial Summary by Decade")
	assert.Contains(t, s, "Trials: 1,000")
	assert.Contains(t, s, "Optimal age: 49")
	assert.NotContains(t, s, "Net worth negative")

	out, err = ConsoleFormatter{}.Format(withCurve(sampleReport("es"), nil))
	require.NoError(t, err)
	assert.Contains(t, string(out), "Ninguna edad alcanza el umbral (90.00%)")
}

func TestHTMLFormatter(t *testing.T) {
	r := withCurve(sampleReport("en"), intPtr(49))
	r.Trajectory[2].NetWorth = dec("-10")
	out, err := HTMLFormatter{}.Format(r)
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `<html lang="en">`)
	assert.Contains(t, s, "€107,148.40")
	assert.Contains(t, s, `class="negative"`)
	assert.Contains(t, s, "Optimal age: 49")
	assert.Contains(t, s, "Inflation: 2.00% annually")
}

func TestAnalyzeComparison(t *testing.T) {
	assert.Equal(t, Recommendation{}, AnalyzeComparison(nil))

	cmp := &domain.ScenarioComparison{Scenarios: []domain.NamedTrajectory{
		{Name: "Scenario A", Trajectory: domain.Trajectory{{Age: 100, NetWorth: dec("1000")}}},
		{Name: "Scenario B", Trajectory: domain.Trajectory{{Age: 100, NetWorth: dec("1500")}}},
	}}
	rec := AnalyzeComparison(cmp)
	assert.Equal(t, "Scenario B", rec.ScenarioName)
	assert.True(t, rec.NetWorthAdvantage.Equal(dec("500")))
	assert.True(t, rec.PercentageChange.Equal(dec("50")))
}

func TestGenerateReport(t *testing.T) {
	prev := nowFunc
	nowFunc = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	t.Cleanup(func() { nowFunc = prev })

	dir := t.TempDir()
	paths, err := GenerateReport(sampleReport("es"), "decades", dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "networth_csv_20250102_030405.csv"), paths[0])
	_, err = os.Stat(paths[0])
	require.NoError(t, err)

	_, err = GenerateReport(sampleReport("es"), "xlsx", dir)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestGenerateReportAllSkipsMissingSections(t *testing.T) {
	dir := t.TempDir()
	paths, err := GenerateReport(sampleReport("en"), "all", dir)
	require.NoError(t, err)
	assert.Len(t, paths, len(builtInFormatters)-2)
	for _, p := range paths {
		assert.False(t, strings.Contains(p, "curve_csv") || strings.Contains(p, "comparison_csv"), p)
	}
}
