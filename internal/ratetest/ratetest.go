// Package ratetest implements the two-sample Poisson rate-ratio test using
// the normal approximation to the log rate ratio.
package ratetest

import "math"

// Z95 is the standard normal quantile for a two-sided 95% interval.
const Z95 = 1.96

// Stats holds the outcome of a rate-ratio test. Rate1 and Rate2 are events
// per unit of exposure; Ratio is Rate1/Rate2.
type Stats struct {
	Rate1  float64 `json:"rate1" yaml:"rate1"`
	Rate2  float64 `json:"rate2" yaml:"rate2"`
	Ratio  float64 `json:"ratio" yaml:"ratio"`
	StdErr float64 `json:"std_err" yaml:"std_err"` // standard error of ln(Ratio)
	Z      float64 `json:"z" yaml:"z"`
	PValue float64 `json:"p_value" yaml:"p_value"` // two-sided
	CILow  float64 `json:"ci_low" yaml:"ci_low"`
	CIHigh float64 `json:"ci_high" yaml:"ci_high"`
}

// Test compares two Poisson rates count1/exposure1 and count2/exposure2.
//
// ok is false when either count is not positive or either exposure is not a
// positive finite number. That case means there is no basis for the test and
// is not an error.
func Test(count1 int, exposure1 float64, count2 int, exposure2 float64) (Stats, bool) {
	if count1 <= 0 || count2 <= 0 || !positiveFinite(exposure1) || !positiveFinite(exposure2) {
		return Stats{}, false
	}

	c1 := float64(count1)
	c2 := float64(count2)

	rate1 := c1 / exposure1
	rate2 := c2 / exposure2
	ratio := rate1 / rate2
	logRatio := math.Log(ratio)

	// Delta-method variance of the log count ratio; exposure cancels.
	se := math.Sqrt(1/c1 + 1/c2)
	z := logRatio / se

	return Stats{
		Rate1:  rate1,
		Rate2:  rate2,
		Ratio:  ratio,
		StdErr: se,
		Z:      z,
		PValue: 2 * (1 - NormalCDF(math.Abs(z))),
		CILow:  math.Exp(logRatio - Z95*se),
		CIHigh: math.Exp(logRatio + Z95*se),
	}, true
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Abramowitz and Stegun 7.1.26 coefficients.
const (
	erfA1 = 0.254829592
	erfA2 = -0.284496736
	erfA3 = 1.421413741
	erfA4 = -1.453152027
	erfA5 = 1.061405429
	erfP  = 0.3275911
)

// Erf approximates the error function with the Abramowitz and Stegun
// rational approximation (max absolute error about 1.5e-7). Results differ
// from math.Erf by up to that error.
func Erf(x float64) float64 {
	sign := 1.0
	if x < 0 {
		sign = -1
	}
	x = math.Abs(x)

	t := 1 / (1 + erfP*x)
	y := 1 - (((((erfA5*t+erfA4)*t+erfA3)*t+erfA2)*t+erfA1)*t)*math.Exp(-x*x)
	return sign * y
}

// NormalCDF returns the standard normal cumulative distribution at x.
func NormalCDF(x float64) float64 {
	return 0.5 * (1 + Erf(x/math.Sqrt2))
}
