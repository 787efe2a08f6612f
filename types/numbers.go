package types

import (
	"math"
	"math/big"
)

// Mul64 multiplies a and b, reporting false when the product overflows int64.
func Mul64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	c := a * b
	return c, c/b == a
}

// Add64 adds a and b, reporting false when the sum overflows int64.
func Add64(a, b int64) (int64, bool) {
	c := a + b
	if (b > 0 && c < a) || (b < 0 && c > a) {
		return c, false
	}
	return c, true
}

// CmpProducts compares a*b with c*d without losing precision, returning
// -1, 0 or +1 like big.Int.Cmp.
func CmpProducts(a, b, c, d int64) int {
	left, okLeft := Mul64(a, b)
	right, okRight := Mul64(c, d)
	if okLeft && okRight {
		switch {
		case left < right:
			return -1
		case left > right:
			return 1
		}
		return 0
	}
	var x, y big.Int
	x.Mul(big.NewInt(a), big.NewInt(b))
	y.Mul(big.NewInt(c), big.NewInt(d))
	return x.Cmp(&y)
}
