package output

import (
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatCurrency formats a euro amount with the grouping and decimal
// separators of lang: "25.500,00 €" for Spanish, "€25,500.00" for English.
func FormatCurrency(amount decimal.Decimal, lang string) string {
	tag := ResolveLanguage(lang)
	p := message.NewPrinter(tag)

	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	number := p.Sprintf("%.2f", amount.Round(2).InexactFloat64())

	if tag == language.English {
		return sign + "€" + number
	}
	return sign + number + " €"
}

// FormatPlain formats an amount with 2 decimals and no grouping, for
// machine-readable exports.
func FormatPlain(amount decimal.Decimal) string { return amount.StringFixed(2) }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatProbability formats a fraction in [0,1] as a percentage.
func FormatProbability(p float64) string {
	return FormatPercentage(decimal.NewFromFloat(p).Mul(decimalHundred))
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
