package attendance

import (
	"math"
	"math/big"
)

// FormatHours renders minutes as hours with exactly two decimals. Ties on the
// exact binary value round away from zero, and negative inputs keep their
// sign even when they round to zero ("-0.00").
func FormatHours(minutes float64) string {
	return toFixed2(minutes / 60)
}

func toFixed2(x float64) string {
	if math.IsNaN(x) {
		return "NaN"
	}
	if math.IsInf(x, 0) {
		if x < 0 {
			return "-Infinity"
		}
		return "Infinity"
	}

	sign := ""
	if x < 0 {
		sign = "-"
		x = -x
	}

	// n = floor(x*100 + 1/2), exact.
	r := new(big.Rat).SetFloat64(x)
	r.Mul(r, big.NewRat(100, 1))
	r.Add(r, big.NewRat(1, 2))
	n := new(big.Int).Quo(r.Num(), r.Denom())

	digits := n.String()
	for len(digits) < 3 {
		digits = "0" + digits
	}
	return sign + digits[:len(digits)-2] + "." + digits[len(digits)-2:]
}
