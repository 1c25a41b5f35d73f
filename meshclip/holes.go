package meshclip

import (
	"cmp"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	"golang.org/x/exp/slices"
)

// A HoleMode determines how a cut that produces several loops is capped.
type HoleMode int

const (
	// HolesIndependent caps every loop as its own polygon, even when one
	// loop lies inside of another.
	HolesIndependent HoleMode = iota

	// HolesFail returns ErrMultipleLoops when more than one loop is found.
	HolesFail

	// HolesNested treats loops nested an odd number of times as holes in
	// the loop directly containing them.
	HolesNested
)

// ParseHoleMode parses the result of HoleMode.String().
func ParseHoleMode(s string) (HoleMode, error) {
	switch strings.ToLower(s) {
	case "independent":
		return HolesIndependent, nil
	case "fail":
		return HolesFail, nil
	case "nested":
		return HolesNested, nil
	}
	return 0, errors.Errorf("unknown hole mode: %s", s)
}

func (h HoleMode) String() string {
	switch h {
	case HolesIndependent:
		return "independent"
	case HolesFail:
		return "fail"
	case HolesNested:
		return "nested"
	}
	return "invalid"
}

// A polygonGroup is an outer polygon and the holes directly inside of it,
// given as indices into a list of polygons.
type polygonGroup struct {
	Outer int
	Holes []int
}

// nestPolygons groups polygons by how many other polygons contain them.
// Polygons at an even depth are outer boundaries, and polygons at an odd
// depth are holes in the smallest polygon containing them.
func nestPolygons(polys [][]model2d.Coord) []polygonGroup {
	depths := make([]int, len(polys))
	areas := make([]float64, len(polys))
	for i, poly := range polys {
		areas[i] = math.Abs(signedArea2D(poly))
		for j, other := range polys {
			if i != j && containsPolygon(other, poly) {
				depths[i]++
			}
		}
	}

	groupIndex := map[int]int{}
	var groups []polygonGroup
	for i, d := range depths {
		if d%2 == 0 {
			groupIndex[i] = len(groups)
			groups = append(groups, polygonGroup{Outer: i})
		}
	}
	for i, d := range depths {
		if d%2 == 0 {
			continue
		}
		parent := -1
		for j := range polys {
			if depths[j] != d-1 || !containsPolygon(polys[j], polys[i]) {
				continue
			}
			if parent == -1 || areas[j] < areas[parent] {
				parent = j
			}
		}
		if parent == -1 {
			// Containment was inconsistent, so cap it on its own.
			groupIndex[i] = len(groups)
			groups = append(groups, polygonGroup{Outer: i})
			continue
		}
		g := &groups[groupIndex[parent]]
		g.Holes = append(g.Holes, i)
	}
	return groups
}

// containsPolygon checks if inner lies inside of outer, using the first
// vertex of inner which is not also a vertex of outer.
func containsPolygon(outer, inner []model2d.Coord) bool {
	shared := map[model2d.Coord]bool{}
	for _, c := range outer {
		shared[c] = true
	}
	for _, c := range inner {
		if !shared[c] {
			return containsPoint2D(outer, c)
		}
	}
	return false
}

// containsPoint2D uses the even-odd rule.
func containsPoint2D(poly []model2d.Coord, p model2d.Coord) bool {
	var inside bool
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// bridgeHoles merges holes into an outer polygon by connecting each hole to
// a visible outer vertex with a pair of coincident edges.
//
// The result is counter-clockwise, and the bridge endpoints appear twice.
func bridgeHoles(outer []model2d.Coord, holes [][]model2d.Coord) []model2d.Coord {
	merged := append([]model2d.Coord{}, outer...)
	if signedArea2D(merged) < 0 {
		merged = reversedCoords(merged)
	}
	pending := make([][]model2d.Coord, len(holes))
	for i, h := range holes {
		if signedArea2D(h) > 0 {
			h = reversedCoords(h)
		}
		pending[i] = h
	}
	slices.SortFunc(pending, func(h1, h2 []model2d.Coord) int {
		return cmp.Compare(maxXCoord(h2).X, maxXCoord(h1).X)
	})

	for i, hole := range pending {
		start := 0
		for j, c := range hole {
			if c.X > hole[start].X {
				start = j
			}
		}
		h := hole[start]

		candidates := make([]int, len(merged))
		for j := range candidates {
			candidates[j] = j
		}
		slices.SortStableFunc(candidates, func(a, b int) int {
			return cmp.Compare(merged[a].Dist(h), merged[b].Dist(h))
		})
		target := candidates[0]
		for _, j := range candidates {
			if bridgeVisible(h, merged[j], merged, pending[i:]) {
				target = j
				break
			}
		}

		spliced := make([]model2d.Coord, 0, len(merged)+len(hole)+2)
		spliced = append(spliced, merged[:target+1]...)
		spliced = append(spliced, hole[start:]...)
		spliced = append(spliced, hole[:start+1]...)
		spliced = append(spliced, merged[target:]...)
		merged = spliced
	}
	return merged
}

// bridgeVisible checks that the segment a-b does not properly cross any
// edge of the given polygons.
func bridgeVisible(a, b model2d.Coord, merged []model2d.Coord,
	holes [][]model2d.Coord) bool {
	for _, poly := range append([][]model2d.Coord{merged}, holes...) {
		for i, p1 := range poly {
			p2 := poly[(i+1)%len(poly)]
			if p1 == a || p1 == b || p2 == a || p2 == b {
				continue
			}
			if segmentsCross2D(a, b, p1, p2) {
				return false
			}
		}
	}
	return true
}

func segmentsCross2D(a1, a2, b1, b2 model2d.Coord) bool {
	d1 := cross2D(a2.Sub(a1), b1.Sub(a1))
	d2 := cross2D(a2.Sub(a1), b2.Sub(a1))
	d3 := cross2D(b2.Sub(b1), a1.Sub(b1))
	d4 := cross2D(b2.Sub(b1), a2.Sub(b1))
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func maxXCoord(poly []model2d.Coord) model2d.Coord {
	res := poly[0]
	for _, c := range poly[1:] {
		if c.X > res.X {
			res = c
		}
	}
	return res
}
