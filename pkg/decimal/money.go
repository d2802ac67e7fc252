package decimal

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Cents converts a float amount produced by the projection loop into a
// decimal rounded to 2 places. The exact binary value is rounded, with ties
// to even, so 1000.125 becomes 1000.12 and 2.675 (stored just below) 2.67.
func Cents(value float64) decimal.Decimal {
	return Exact(value).RoundBank(2)
}

// Exact returns the exact decimal expansion of a float64. NaN and infinities
// panic, as in decimal.NewFromFloat.
func Exact(value float64) decimal.Decimal {
	if value == 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.NewFromFloat(value)
	}
	frac, exp := math.Frexp(value)
	mant := int64(frac * (1 << 53))
	exp -= 53
	for mant%2 == 0 {
		mant /= 2
		exp++
	}

	m := big.NewInt(mant)
	if exp >= 0 {
		return decimal.NewFromBigInt(m.Lsh(m, uint(exp)), 0)
	}
	// m * 2^-k == m * 5^k * 10^-k
	k := int64(-exp)
	m.Mul(m, new(big.Int).Exp(big.NewInt(5), big.NewInt(k), nil))
	return decimal.NewFromBigInt(m, int32(-k))
}

// Sum adds the given amounts.
func Sum(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Mean returns the arithmetic mean rounded to cents, or zero for an empty slice.
func Mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return Sum(values).Div(decimal.NewFromInt(int64(len(values)))).Round(2)
}

// FromPercent converts a percentage (2.5) into a fraction (0.025).
func FromPercent(pct float64) float64 {
	return decimal.NewFromFloat(pct).Div(hundred).InexactFloat64()
}

// ToPercent converts a fraction (0.025) into a percentage (2.5).
func ToPercent(fraction float64) float64 {
	return decimal.NewFromFloat(fraction).Mul(hundred).InexactFloat64()
}
