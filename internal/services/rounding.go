package services

import (
	"math"
	"math/big"
	"strconv"
)

// roundHalfUp rounds to the nearest integer, ties toward +Inf.
func roundHalfUp(x float64) float64 {
	f := math.Floor(x)
	if x-f >= 0.5 {
		return f + 1
	}
	return f
}

// roundTo1 rounds to one decimal place, ties toward +Inf.
func roundTo1(x float64) float64 {
	return roundHalfUp(x*10) / 10
}

// toFixed1 formats x with one decimal. Exact ties round away from zero
// (0.25 -> "0.3"), everything else is correctly rounded.
func toFixed1(x float64) string {
	exact := new(big.Float).SetPrec(256).SetFloat64(x)
	exact.Mul(exact, big.NewFloat(10))
	exact.Abs(exact)

	whole, _ := exact.Int(nil)
	frac := new(big.Float).SetPrec(256).Sub(exact, new(big.Float).SetInt(whole))
	if frac.Cmp(big.NewFloat(0.5)) != 0 {
		return strconv.FormatFloat(x, 'f', 1, 64)
	}

	whole.Add(whole, big.NewInt(1))
	digits := whole.String()
	if len(digits) == 1 {
		digits = "0" + digits
	}
	out := digits[:len(digits)-1] + "." + digits[len(digits)-1:]
	if x < 0 {
		out = "-" + out
	}
	return out
}
