package output

import (
	"bytes"
	"html/template"

	"github.com/goccy/go-json"

	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report with the trajectory, the
// decade summary and, when present, the retirement curve and comparison.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

const htmlTemplateSource = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Labels.ProjectionTitle}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 2em; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: right; }
tr.negative td { color: #b00; }
</style>
</head>
<body>
<h1>{{.Labels.ProjectionTitle}}</h1>
<table>
<tr><th>{{.Labels.Age}}</th><th>{{.Labels.Year}}</th><th>{{.Labels.Salary}}</th><th>{{.Labels.Pension}}</th><th>{{.Labels.RentalIncome}}</th><th>{{.Labels.Income}}</th><th>{{.Labels.Expense}}</th><th>{{.Labels.NetWorth}}</th></tr>
{{- range .Report.Trajectory}}
<tr{{if .NetWorth.IsNegative}} class="negative"{{end}}><td>{{.Age}}</td><td>{{.Year}}</td><td>{{curr $.Lang .Salary}}</td><td>{{curr $.Lang .Pension}}</td><td>{{curr $.Lang .RentalIncome}}</td><td>{{curr $.Lang .TotalIncome}}</td><td>{{curr $.Lang .TotalExpense}}</td><td>{{curr $.Lang .NetWorth}}</td></tr>
{{- end}}
</table>

<h2>{{.Labels.SummaryTitle}}</h2>
<table>
<tr><th>{{.Labels.Decade}}</th><th>{{.Labels.MeanIncome}}</th><th>{{.Labels.MeanExpense}}</th><th>{{.Labels.FinalNetWorth}}</th></tr>
{{- range .Report.Decades}}
<tr><td>{{.Decade}}</td><td>{{curr $.Lang .MeanIncome}}</td><td>{{curr $.Lang .MeanExpense}}</td><td>{{curr $.Lang .FinalNetWorth}}</td></tr>
{{- end}}
</table>

{{- with .Report.Curve}}
<h2>{{$.Labels.CurveTitle}}</h2>
<table id="curve" data-ages="{{json .Ages}}" data-probabilities="{{json .Probabilities}}">
<tr><th>{{$.Labels.RetirementAge}}</th><th>{{$.Labels.SuccessProbability}}</th></tr>
{{- range .Points}}
<tr><td>{{.Age}}</td><td>{{prob .SuccessProbability}}</td></tr>
{{- end}}
</table>
{{- if .OptimalAge}}
<p class="optimal">{{$.Labels.OptimalAge}}: {{deref .OptimalAge}}</p>
{{- else}}
<p class="optimal">{{$.Labels.NotReached}} ({{prob .Threshold}})</p>
{{- end}}
{{- end}}

{{- with .Report.Comparison}}
<h2>{{$.Labels.ComparisonTitle}}</h2>
<table>
<tr><th>{{$.Labels.Scenario}}</th><th>{{$.Labels.RetirementAge}}</th><th>{{$.Labels.FinalNetWorth}}</th></tr>
{{- range .Scenarios}}
<tr><td>{{.Name}}</td><td>{{.Parameters.DesiredRetirementAge}}</td><td>{{curr $.Lang (final .Trajectory)}}</td></tr>
{{- end}}
</table>
{{- end}}

<h2>{{.Labels.AssumptionsHead}}</h2>
<ul>
{{- range .Assumptions}}
<li>{{.}}</li>
{{- end}}
</ul>
</body>
</html>
`

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  func(lang string, amount decimal.Decimal) string { return FormatCurrency(amount, lang) },
	"prob":  FormatProbability,
	"deref": func(i *int) int { return *i },
	"final": func(t domain.Trajectory) decimal.Decimal {
		last, _ := t.Final()
		return last.NetWorth
	},
	"json": func(v interface{}) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Report      *domain.Report
		Labels      Labels
		Lang        string
		Assumptions []string
	}{
		Report:      report,
		Labels:      LabelsFor(report.Language),
		Lang:        ResolveLanguage(report.Language).String(),
		Assumptions: GenerateAssumptions(report.Parameters),
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
