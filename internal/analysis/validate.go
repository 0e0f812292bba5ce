package analysis

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/sells-group/hotspot/internal/geo"
)

// ErrInvalidGeometry marks caller input the engine cannot meaningfully
// analyze. The analysis functions themselves never return it.
var ErrInvalidGeometry = eris.New("analysis: invalid geometry")

// ValidateConcentric checks a center and radius pair before AnalyzeConcentric.
func ValidateConcentric(center geo.Point, innerM, outerM float64) error {
	if err := validateCenter("center", center); err != nil {
		return err
	}
	if err := validateRadius("inner radius", innerM); err != nil {
		return err
	}
	if err := validateRadius("outer radius", outerM); err != nil {
		return err
	}
	if innerM >= outerM {
		return eris.Wrapf(ErrInvalidGeometry, "inner radius %.0f m must be smaller than outer radius %.0f m", innerM, outerM)
	}
	return nil
}

// ValidateComparison checks two centers and a shared radius before CompareAreas.
func ValidateComparison(center1, center2 geo.Point, radiusM float64) error {
	if err := validateCenter("area 1 center", center1); err != nil {
		return err
	}
	if err := validateCenter("area 2 center", center2); err != nil {
		return err
	}
	return validateRadius("radius", radiusM)
}

func validateCenter(name string, p geo.Point) error {
	if !p.Valid() {
		return eris.Wrapf(ErrInvalidGeometry, "%s (%g, %g) is out of range", name, p.Latitude, p.Longitude)
	}
	return nil
}

func validateRadius(name string, m float64) error {
	if !(m > 0) || math.IsInf(m, 0) {
		return eris.Wrapf(ErrInvalidGeometry, "%s must be a positive number of meters, got %g", name, m)
	}
	return nil
}
