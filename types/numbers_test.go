package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMul64(t *testing.T) {
	r, ok := Mul64(2000000000, 3)
	require.True(t, ok)
	require.EqualValues(t, 6000000000, r)

	_, ok = Mul64(math.MaxInt64, 2)
	require.False(t, ok)

	r, ok = Mul64(0, math.MaxInt64)
	require.True(t, ok)
	require.EqualValues(t, 0, r)
}

func TestAdd64(t *testing.T) {
	r, ok := Add64(1, 2)
	require.True(t, ok)
	require.EqualValues(t, 3, r)

	_, ok = Add64(math.MaxInt64, 1)
	require.False(t, ok)
}

func TestCmpProducts(t *testing.T) {
	require.Equal(t, 0, CmpProducts(2, 3, 3, 2))
	require.Equal(t, -1, CmpProducts(2, 3, 7, 1))
	require.Equal(t, 1, CmpProducts(7, 1, 2, 3))

	// both sides overflow int64
	const pctBase = int64(1e18)
	require.Equal(t, 0, CmpProducts(50, pctBase, pctBase/2, 100))
	require.Equal(t, -1, CmpProducts(49, pctBase, pctBase/2, 100))
	require.Equal(t, 1, CmpProducts(math.MaxInt64, pctBase, math.MaxInt64, pctBase-1))
}

func TestMul64MinInt(t *testing.T) {
	_, ok := Mul64(math.MinInt64, -1)
	require.False(t, ok)

	r, ok := Mul64(math.MinInt64, 1)
	require.True(t, ok)
	require.EqualValues(t, math.MinInt64, r)
}
