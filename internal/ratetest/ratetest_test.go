package ratetest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTest_Absence(t *testing.T) {
	tests := []struct {
		name      string
		count1    int
		exposure1 float64
		count2    int
		exposure2 float64
	}{
		{name: "zero first count", count1: 0, exposure1: 1, count2: 10, exposure2: 1},
		{name: "zero second count", count1: 10, exposure1: 1, count2: 0, exposure2: 1},
		{name: "both counts zero", count1: 0, exposure1: 1, count2: 0, exposure2: 1},
		{name: "negative count", count1: -3, exposure1: 1, count2: 10, exposure2: 1},
		{name: "zero first exposure", count1: 10, exposure1: 0, count2: 10, exposure2: 1},
		{name: "zero second exposure", count1: 10, exposure1: 1, count2: 10, exposure2: 0},
		{name: "negative exposure", count1: 10, exposure1: -math.Pi, count2: 10, exposure2: 1},
		{name: "NaN exposure", count1: 10, exposure1: math.NaN(), count2: 10, exposure2: 1},
		{name: "infinite exposure", count1: 10, exposure1: 1, count2: 10, exposure2: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, ok := Test(tt.count1, tt.exposure1, tt.count2, tt.exposure2)
			assert.False(t, ok)
			assert.Equal(t, Stats{}, stats)
		})
	}
}

func TestTest_EqualRates(t *testing.T) {
	for _, tc := range []struct {
		c1, c2 int
		e1, e2 float64
	}{
		{c1: 10, e1: 2, c2: 10, e2: 2},
		{c1: 30, e1: 3, c2: 10, e2: 1},
		{c1: 7, e1: math.Pi, c2: 21, e2: 3 * math.Pi},
	} {
		stats, ok := Test(tc.c1, tc.e1, tc.c2, tc.e2)
		require.True(t, ok)
		assert.InDelta(t, 1.0, stats.Ratio, 1e-12)
		assert.InDelta(t, 1.0, stats.PValue, 1e-6)
		assert.LessOrEqual(t, stats.CILow, 1.0)
		assert.GreaterOrEqual(t, stats.CIHigh, 1.0)
	}
}

func TestTest_ConcentricScenario(t *testing.T) {
	// 100 incidents in a 1 km disk vs 50 in the 1-2 km ring.
	stats, ok := Test(100, math.Pi, 50, 3*math.Pi)
	require.True(t, ok)

	assert.InDelta(t, 100/math.Pi, stats.Rate1, 1e-9)
	assert.InDelta(t, 50/(3*math.Pi), stats.Rate2, 1e-9)
	assert.InDelta(t, 6.0, stats.Ratio, 1e-9)

	se := math.Sqrt(1.0/100 + 1.0/50)
	assert.InDelta(t, se, stats.StdErr, 1e-12)
	assert.InDelta(t, math.Log(6)/se, stats.Z, 1e-9)
	assert.InDelta(t, math.Exp(math.Log(6)-1.96*se), stats.CILow, 1e-9)
	assert.InDelta(t, math.Exp(math.Log(6)+1.96*se), stats.CIHigh, 1e-9)
	assert.Less(t, stats.PValue, 1e-6)
	assert.GreaterOrEqual(t, stats.PValue, 0.0)
}

func TestTest_KnownPValue(t *testing.T) {
	// ln(ratio)/se = 1.96 gives p close to 0.05.
	// With c1=c2=n, se=sqrt(2/n); pick exposures so ln(ratio)=1.96*se.
	n := 50
	se := math.Sqrt(2.0 / float64(n))
	stats, ok := Test(n, 1, n, math.Exp(1.96*se))
	require.True(t, ok)

	assert.InDelta(t, 1.96, stats.Z, 1e-9)
	assert.InDelta(t, 0.05, stats.PValue, 1e-4)
	assert.InDelta(t, 1.0, stats.CILow, 1e-9, "lower bound sits exactly at 1 when z = 1.96")
}

func TestTest_CIBracketsRatio(t *testing.T) {
	for c1 := 1; c1 <= 200; c1 += 13 {
		for c2 := 1; c2 <= 200; c2 += 17 {
			for _, e := range []float64{0.05, 1, 7.5} {
				stats, ok := Test(c1, e, c2, 1.3)
				require.True(t, ok)
				assert.LessOrEqual(t, stats.CILow, stats.Ratio)
				assert.LessOrEqual(t, stats.Ratio, stats.CIHigh)
				assert.Greater(t, stats.CILow, 0.0)
				assert.GreaterOrEqual(t, stats.PValue, 0.0)
				assert.LessOrEqual(t, stats.PValue, 1.0)
				assert.False(t, math.IsNaN(stats.PValue) || math.IsInf(stats.CIHigh, 0))
			}
		}
	}
}

func TestTest_Symmetry(t *testing.T) {
	a, ok := Test(40, 2, 25, 3)
	require.True(t, ok)
	b, ok := Test(25, 3, 40, 2)
	require.True(t, ok)

	assert.InDelta(t, 1/a.Ratio, b.Ratio, 1e-12)
	assert.InDelta(t, a.PValue, b.PValue, 1e-12)
	assert.InDelta(t, 1/a.CIHigh, b.CILow, 1e-12)
}

func TestTest_Deterministic(t *testing.T) {
	a, _ := Test(123, 4.56, 78, 9.1)
	b, _ := Test(123, 4.56, 78, 9.1)
	assert.Equal(t, a, b)
}

func TestErf(t *testing.T) {
	for _, x := range []float64{-3, -1.5, -0.5, 0, 0.1, 0.5, 1, 1.96, 2.5, 4} {
		assert.InDelta(t, math.Erf(x), Erf(x), 2e-7, "x=%v", x)
	}
	assert.InDelta(t, -Erf(0.7), Erf(-0.7), 1e-15)
}

func TestNormalCDF(t *testing.T) {
	assert.InDelta(t, 0.5, NormalCDF(0), 1e-7)
	assert.InDelta(t, 0.975, NormalCDF(1.96), 1e-4)
	assert.InDelta(t, 0.8413, NormalCDF(1), 1e-4)
	assert.InDelta(t, 0.0228, NormalCDF(-2), 1e-4)
	assert.InDelta(t, 1.0, NormalCDF(10), 1e-12)
}
