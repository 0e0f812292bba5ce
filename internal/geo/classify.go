package geo

// Region labels for concentric classification.
const (
	RegionInner   = "inner"
	RegionRing    = "ring"
	RegionOutside = "outside"
)

// Classify returns the concentric region for a distance from the center.
// Rules:
//   - inner: distance <= innerM
//   - ring: innerM < distance <= outerM
//   - outside: distance > outerM
//
// Both tests are inclusive of their upper radius, so a point exactly on the
// inner boundary is inner and one exactly on the outer boundary is ring.
func Classify(distanceM, innerM, outerM float64) string {
	if distanceM <= innerM {
		return RegionInner
	}
	if distanceM <= outerM {
		return RegionRing
	}
	return RegionOutside
}

// CountConcentric counts points in the inner disk and in the surrounding ring
// out to outerM. Points beyond outerM are dropped from both counts.
func CountConcentric(points []Point, center Point, innerM, outerM float64) (inside, ring int) {
	for _, p := range points {
		switch Classify(center.DistanceTo(p), innerM, outerM) {
		case RegionInner:
			inside++
		case RegionRing:
			ring++
		}
	}
	return inside, ring
}

// CountInCircle counts points contained in c.
func CountInCircle(points []Point, c Circle) int {
	n := 0
	for _, p := range points {
		if c.Contains(p) {
			n++
		}
	}
	return n
}

// CountInCircles counts membership of each point against two circles
// independently. Circles may overlap, in which case a shared point counts
// toward both.
func CountInCircles(points []Point, c1, c2 Circle) (n1, n2 int) {
	for _, p := range points {
		if c1.Contains(p) {
			n1++
		}
		if c2.Contains(p) {
			n2++
		}
	}
	return n1, n2
}
