package meshclip

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// DefaultRelativeEpsilon is the scale factor used by relative epsilon bases
// when Clipper.RelativeEpsilon is 0.
const DefaultRelativeEpsilon = 1e-9

// An EpsilonBasis determines what the on-plane tolerance is measured
// against.
type EpsilonBasis int

const (
	// AbsoluteEpsilon uses Clipper.Epsilon as a distance.
	AbsoluteEpsilon EpsilonBasis = iota

	// BoundsEpsilon scales Clipper.RelativeEpsilon by the diagonal of the
	// mesh's bounding box.
	BoundsEpsilon

	// SpreadEpsilon scales Clipper.RelativeEpsilon by the standard
	// deviation of the vertices' signed distances to the plane.
	SpreadEpsilon
)

// ParseEpsilonBasis parses the result of EpsilonBasis.String().
func ParseEpsilonBasis(s string) (EpsilonBasis, error) {
	switch strings.ToLower(s) {
	case "absolute":
		return AbsoluteEpsilon, nil
	case "bounds":
		return BoundsEpsilon, nil
	case "spread":
		return SpreadEpsilon, nil
	}
	return 0, errors.Errorf("unknown epsilon basis: %s", s)
}

func (e EpsilonBasis) String() string {
	switch e {
	case AbsoluteEpsilon:
		return "absolute"
	case BoundsEpsilon:
		return "bounds"
	case SpreadEpsilon:
		return "spread"
	}
	return "invalid"
}

// ResolveEpsilon computes the on-plane tolerance for cutting m with p.
//
// Relative bases fall back to the absolute epsilon when the mesh has no
// extent to measure.
func (c *Clipper) ResolveEpsilon(m *IndexedMesh, p Plane) float64 {
	abs := c.Epsilon
	if abs == 0 {
		abs = DefaultEpsilon
	}
	rel := c.RelativeEpsilon
	if rel == 0 {
		rel = DefaultRelativeEpsilon
	}

	var eps float64
	switch c.EpsilonBasis {
	case BoundsEpsilon:
		if len(m.Faces) > 0 {
			eps = rel * m.Max().Dist(m.Min())
		}
	case SpreadEpsilon:
		if len(m.Coords) > 1 {
			dists := make([]float64, len(m.Coords))
			for i, x := range m.Coords {
				dists[i] = p.SignedDist(x)
			}
			eps = rel * stat.StdDev(dists, nil)
		}
	default:
		return abs
	}
	if eps <= 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		return abs
	}
	return eps
}
