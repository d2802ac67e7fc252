package output

import (
	"golang.org/x/text/language"
)

// Labels holds the user-facing strings of one language.
type Labels struct {
	ProjectionTitle string
	CurveTitle      string
	SummaryTitle    string
	ComparisonTitle string
	AssumptionsHead string

	Age          string
	Year         string
	Salary       string
	Pension      string
	RentalIncome string
	Income       string
	Expense      string
	NetWorth     string

	Decade        string
	MeanIncome    string
	MeanExpense   string
	FinalNetWorth string

	RetirementAge      string
	SuccessProbability string
	Trials             string
	OptimalAge         string
	NotReached         string
	Scenario           string
	Insolvent          string
}

// DefaultLanguage is used when a requested language has no label table.
const DefaultLanguage = "es"

var labelTables = map[string]Labels{
	"es": {
		ProjectionTitle: "Evolución Financiera Anual",
		CurveTitle:      "Probabilidad de Éxito Financiero",
		SummaryTitle:    "Resumen Financiero por Década",
		ComparisonTitle: "Comparación de Patrimonio entre Escenarios",
		AssumptionsHead: "Supuestos",

		Age:          "Edad",
		Year:         "Año",
		Salary:       "Salario",
		Pension:      "Pensión",
		RentalIncome: "Alquileres",
		Income:       "Ingresos",
		Expense:      "Gastos",
		NetWorth:     "Patrimonio",

		Decade:        "Década",
		MeanIncome:    "Promedio Ingresos",
		MeanExpense:   "Promedio Gastos",
		FinalNetWorth: "Patrimonio Final",

		RetirementAge:      "Edad de retiro",
		SuccessProbability: "Probabilidad de éxito",
		Trials:             "Simulaciones",
		OptimalAge:         "Edad óptima",
		NotReached:         "Ninguna edad alcanza el umbral",
		Scenario:           "Escenario",
		Insolvent:          "Patrimonio negativo a partir de la edad",
	},
	"en": {
		ProjectionTitle: "Annual Financial Evolution",
		CurveTitle:      "Financial Success Probability",
		SummaryTitle:    "Financial Summary by Decade",
		ComparisonTitle: "Net Worth Comparison Between Scenarios",
		AssumptionsHead: "Assumptions",

		Age:          "Age",
		Year:         "Year",
		Salary:       "Salary",
		Pension:      "Pension",
		RentalIncome: "Rental income",
		Income:       "Income",
		Expense:      "Expenses",
		NetWorth:     "Net worth",

		Decade:        "Decade",
		MeanIncome:    "Mean income",
		MeanExpense:   "Mean expenses",
		FinalNetWorth: "Final net worth",

		RetirementAge:      "Retirement age",
		SuccessProbability: "Success probability",
		Trials:             "Trials",
		OptimalAge:         "Optimal age",
		NotReached:         "No age reaches the threshold",
		Scenario:           "Scenario",
		Insolvent:          "Net worth negative from age",
	},
}

var (
	supportedTags = []language.Tag{language.Spanish, language.English}
	matcher       = language.NewMatcher(supportedTags)
)

// ResolveLanguage maps a user-supplied language ("en", "en-GB", "es_ES") to
// a supported language tag, falling back to Spanish.
func ResolveLanguage(lang string) language.Tag {
	if lang == "" {
		return language.Spanish
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return language.Spanish
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.Spanish
	}
	return supportedTags[index]
}

// LabelsFor returns the label table for lang.
func LabelsFor(lang string) Labels {
	base, _ := ResolveLanguage(lang).Base()
	if labels, ok := labelTables[base.String()]; ok {
		return labels
	}
	return labelTables[DefaultLanguage]
}
