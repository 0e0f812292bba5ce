package analysis

import "fmt"

// Direction describes which region has the higher rate.
type Direction string

// Direction values.
const (
	DirectionHigher  Direction = "higher"
	DirectionLower   Direction = "lower"
	DirectionSimilar Direction = "similar"
)

// Ratio bands outside which a difference is worth calling out.
const (
	higherThreshold = 1.1
	lowerThreshold  = 0.9
)

// SignificanceLevel is the p-value cutoff used by Significant.
const SignificanceLevel = 0.05

// ClassifyRatio maps a rate ratio to a direction of effect. Ratios within
// [0.9, 1.1] are treated as similar.
func ClassifyRatio(ratio float64) Direction {
	switch {
	case ratio > higherThreshold:
		return DirectionHigher
	case ratio < lowerThreshold:
		return DirectionLower
	default:
		return DirectionSimilar
	}
}

// Significant reports whether p is below SignificanceLevel.
func Significant(p float64) bool {
	return p < SignificanceLevel
}

// Direction returns the direction of the inner rate relative to the ring.
func (r ConcentricResult) Direction() Direction { return ClassifyRatio(r.Stats.Ratio) }

// Summary returns a one-sentence description of the comparison.
func (r ConcentricResult) Summary() string {
	switch d := r.Direction(); d {
	case DirectionHigher, DirectionLower:
		return fmt.Sprintf("The inner circle has a %.2fx %s police activity rate than the surrounding area.", r.Stats.Ratio, d)
	default:
		return "Rates of police activity are similar between the inner circle and surrounding area."
	}
}

// Direction returns the direction of area 1 relative to area 2.
func (r ComparisonResult) Direction() Direction { return ClassifyRatio(r.Stats.Ratio) }

// Summary returns a one-sentence description of the comparison.
func (r ComparisonResult) Summary() string {
	switch d := r.Direction(); d {
	case DirectionHigher, DirectionLower:
		return fmt.Sprintf("Area 1 has a %.2fx %s police activity rate than Area 2.", r.Stats.Ratio, d)
	default:
		return "Rates of police activity are similar between the two areas."
	}
}
