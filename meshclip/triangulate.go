package meshclip

import (
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
)

// parallelEpsilon is the largest cross product between two unit edge
// vectors which is still treated as parallel.
const parallelEpsilon = 1e-9

// A Triangulator fills a planar polygon with triangles.
//
// The polygon may be given in either orientation, and it may touch itself
// at duplicated vertices (as happens when holes are bridged to an outer
// boundary). The resulting triangles may use any orientation.
//
// Triangles should use the exact coordinates of the polygon. New
// coordinates are allowed, but they become new vertices of the mesh.
type Triangulator interface {
	Triangulate(poly []model2d.Coord) ([][3]model2d.Coord, error)
}

// EarClipper is a Triangulator which clips ears until a single triangle
// remains.
//
// Collinear vertices are never clipped while a proper ear exists, so
// polygons with collinear runs do not leave T-junctions in the result.
type EarClipper struct{}

func (e EarClipper) Triangulate(poly []model2d.Coord) ([][3]model2d.Coord, error) {
	var res [][3]model2d.Coord
	for _, t := range earClip(poly) {
		res = append(res, [3]model2d.Coord{poly[t[0]], poly[t[1]], poly[t[2]]})
	}
	return res, nil
}

// Model2DTriangulator is a Triangulator backed by model2d.Triangulate.
type Model2DTriangulator struct{}

func (m Model2DTriangulator) Triangulate(poly []model2d.Coord) (res [][3]model2d.Coord,
	err error) {
	if len(poly) < 3 {
		return nil, nil
	}
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = errors.Errorf("model2d triangulation: %v", r)
		}
	}()
	if signedArea2D(poly) < 0 {
		poly = reversedCoords(poly)
	}
	for _, t := range model2d.Triangulate(poly) {
		res = append(res, [3]model2d.Coord{t[0], t[1], t[2]})
	}
	return res, nil
}

// FanTriangulator connects the first vertex to every other edge. It is only
// correct for convex polygons.
type FanTriangulator struct{}

func (f FanTriangulator) Triangulate(poly []model2d.Coord) ([][3]model2d.Coord, error) {
	var res [][3]model2d.Coord
	for i := 1; i+1 < len(poly); i++ {
		res = append(res, [3]model2d.Coord{poly[0], poly[i], poly[i+1]})
	}
	return res, nil
}

// earClip triangulates a polygon and returns index triples into poly, all
// wound counter-clockwise.
//
// Clipping stops once the remaining area is used up, since whatever is left
// of a polygon pinched at a repeated vertex encloses nothing.
func earClip(poly []model2d.Coord) [][3]int {
	if len(poly) < 3 {
		return nil
	}
	indices := make([]int, len(poly))
	for i := range indices {
		indices[i] = i
	}
	total := signedArea2D(poly)
	if total < 0 {
		total = -total
		for i, j := 0, len(indices)-1; i < j; i, j = i+1, j-1 {
			indices[i], indices[j] = indices[j], indices[i]
		}
	}

	res := make([][3]int, 0, len(poly)-2)
	remaining := total
	for len(indices) > 3 && remaining > parallelEpsilon*total {
		n := len(indices)
		ear := -1
		for i := 0; i < n; i++ {
			if isEar(poly, indices, i) {
				ear = i
				break
			}
		}
		if ear == -1 {
			// Self-touching or numerically tricky polygons may have no
			// proper ear, in which case the most convex corner goes.
			ear = mostConvex(poly, indices)
		}
		tri := [3]int{indices[(ear+n-1)%n], indices[ear], indices[(ear+1)%n]}
		remaining -= cross2D(poly[tri[1]].Sub(poly[tri[0]]), poly[tri[2]].Sub(poly[tri[0]])) / 2
		res = append(res, tri)
		indices = append(indices[:ear], indices[ear+1:]...)
	}
	if len(indices) == 3 && remaining > parallelEpsilon*total {
		res = append(res, [3]int{indices[0], indices[1], indices[2]})
	}
	return res
}

func isEar(poly []model2d.Coord, indices []int, i int) bool {
	n := len(indices)
	ia, ib, ic := indices[(i+n-1)%n], indices[i], indices[(i+1)%n]
	a, b, c := poly[ia], poly[ib], poly[ic]
	if convexity(a, b, c) <= parallelEpsilon {
		return false
	}
	for j, idx := range indices {
		if idx == ia || idx == ib || idx == ic {
			continue
		}
		p := poly[idx]
		if p == b {
			// The polygon passes through this corner again, and neither of
			// the edges at the other visit may enter the ear.
			for _, q := range []int{indices[(j+n-1)%n], indices[(j+1)%n]} {
				d := poly[q].Sub(b)
				if cross2D(b.Sub(a), d) > 0 && cross2D(c.Sub(b), d) > 0 {
					return false
				}
			}
			continue
		} else if p == a || p == c {
			continue
		}
		if cross2D(b.Sub(a), p.Sub(a)) > 0 && cross2D(c.Sub(b), p.Sub(b)) > 0 &&
			cross2D(a.Sub(c), p.Sub(c)) > 0 {
			return false
		}
		if onSegment2D(c, a, p) {
			// Clipping would leave p on the new edge.
			return false
		}
	}
	return true
}

func mostConvex(poly []model2d.Coord, indices []int) int {
	n := len(indices)
	best := 0
	bestValue := math.Inf(-1)
	for i := range indices {
		value := convexity(poly[indices[(i+n-1)%n]], poly[indices[i]], poly[indices[(i+1)%n]])
		if value > bestValue {
			best = i
			bestValue = value
		}
	}
	return best
}

// convexity computes the cross product of the unit edge vectors a->b and
// b->c, which is positive at convex corners of a counter-clockwise polygon.
func convexity(a, b, c model2d.Coord) float64 {
	e1 := b.Sub(a)
	e2 := c.Sub(b)
	n1, n2 := e1.Norm(), e2.Norm()
	if n1 == 0 || n2 == 0 {
		return 0
	}
	return cross2D(e1.Scale(1/n1), e2.Scale(1/n2))
}

// isDegenerate2D checks if a triangle has no area, either because an edge
// has zero length or because its first two edges are parallel.
func isDegenerate2D(a, b, c model2d.Coord) bool {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	n1, n2 := e1.Norm(), e2.Norm()
	if n1 == 0 || n2 == 0 || a == b || b == c || c == a {
		return true
	}
	return math.Abs(cross2D(e1.Scale(1/n1), e2.Scale(1/n2))) < parallelEpsilon
}

func onSegment2D(a, b, p model2d.Coord) bool {
	ab := b.Sub(a)
	length := ab.Norm()
	if length == 0 {
		return false
	}
	if math.Abs(cross2D(ab, p.Sub(a)))/length > parallelEpsilon*length {
		return false
	}
	t := p.Sub(a).Dot(ab) / (length * length)
	return t > 0 && t < 1
}

func cross2D(a, b model2d.Coord) float64 {
	return a.X*b.Y - a.Y*b.X
}

// signedArea2D computes the shoelace area, which is positive for
// counter-clockwise polygons.
func signedArea2D(poly []model2d.Coord) float64 {
	var sum float64
	for i, c := range poly {
		sum += cross2D(c, poly[(i+1)%len(poly)])
	}
	return sum / 2
}

func reversedCoords(poly []model2d.Coord) []model2d.Coord {
	res := make([]model2d.Coord, len(poly))
	for i, c := range poly {
		res[len(poly)-1-i] = c
	}
	return res
}
