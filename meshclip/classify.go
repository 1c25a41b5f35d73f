package meshclip

import (
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// WindingTolerance is the maximum per-axis difference between the unit
// normal of a sub-triangle and the unit normal of the face it came from.
const WindingTolerance = 0.1

// A Segment is a cut edge lying on the plane, stored as two vertex indices.
type Segment [2]int

// A classifier splits faces against a plane, appending the pieces to the
// front and back face lists and collecting cut segments.
type classifier struct {
	Plane   Plane
	Epsilon float64
	Table   *vertexTable

	// Sides caches the side of every vertex in the input table.
	Sides []Side

	Front    [][3]int
	Back     [][3]int
	Segments []Segment

	Coplanar int
}

func newClassifier(m *IndexedMesh, p Plane, eps float64) *classifier {
	sides := make([]Side, len(m.Coords))
	for i, c := range m.Coords {
		sides[i] = p.Classify(c, eps)
	}
	return &classifier{
		Plane:   p,
		Epsilon: eps,
		Table:   newVertexTable(m.Coords),
		Sides:   sides,
	}
}

// SplitFaces classifies every face in order.
func (c *classifier) SplitFaces(faces [][3]int) error {
	for i, f := range faces {
		if err := c.SplitFace(f); err != nil {
			return errors.Wrapf(err, "split face %d", i)
		}
	}
	return nil
}

// SplitFace dispatches a single face to one of the splitting cases.
func (c *classifier) SplitFace(f [3]int) error {
	var sides [3]Side
	var numFront, numBack, numOn int
	for i, idx := range f {
		sides[i] = c.Sides[idx]
		switch sides[i] {
		case Front:
			numFront++
		case Back:
			numBack++
		default:
			numOn++
		}
	}

	if numFront == 3 {
		c.Front = append(c.Front, f)
		return nil
	} else if numBack == 3 {
		c.Back = append(c.Back, f)
		return nil
	}

	switch numOn {
	case 3:
		c.Coplanar++
		return nil
	case 2:
		for i := 0; i < 3; i++ {
			if sides[i] != On {
				c.Segments = append(c.Segments, Segment{f[(i+1)%3], f[(i+2)%3]})
				c.add(sides[i], f)
			}
		}
		return nil
	case 1:
		for i := 0; i < 3; i++ {
			if sides[i] == On {
				return c.splitThroughVertex(f, i, sides)
			}
		}
	}
	return c.splitGeneric(f, sides)
}

// splitThroughVertex handles a face with exactly one vertex on the plane.
func (c *classifier) splitThroughVertex(f [3]int, on int, sides [3]Side) error {
	a, b := (on+1)%3, (on+2)%3
	if sides[a] == sides[b] {
		c.add(sides[a], f)
		return nil
	}

	// Find plane intersection.
	mid, ok := c.Table.Split(f[a], f[b], c.Plane)
	if !ok {
		return errors.Wrapf(ErrNumericalDegeneracy, "edge %d-%d", f[a], f[b])
	}
	c.Segments = append(c.Segments, Segment{f[on], mid})

	orig := c.normal(f)
	c.add(sides[a], c.fixWinding(orig, [3]int{f[on], f[a], mid}))
	c.add(sides[b], c.fixWinding(orig, [3]int{f[on], mid, f[b]}))
	return nil
}

// splitGeneric handles a face with one vertex alone on one side of the
// plane and the other two on the opposite side.
func (c *classifier) splitGeneric(f [3]int, sides [3]Side) error {
	lone := 0
	for i := 0; i < 3; i++ {
		if sides[i] != sides[(i+1)%3] && sides[i] != sides[(i+2)%3] {
			lone = i
			break
		}
	}
	a, b := (lone+1)%3, (lone+2)%3

	// Find plane intersections along both edges touching the lone vertex.
	mid1, ok := c.Table.Split(f[lone], f[a], c.Plane)
	if !ok {
		return errors.Wrapf(ErrNumericalDegeneracy, "edge %d-%d", f[lone], f[a])
	}
	mid2, ok := c.Table.Split(f[b], f[lone], c.Plane)
	if !ok {
		return errors.Wrapf(ErrNumericalDegeneracy, "edge %d-%d", f[b], f[lone])
	}
	c.Segments = append(c.Segments, Segment{mid1, mid2})

	orig := c.normal(f)
	c.add(sides[lone], c.fixWinding(orig, [3]int{f[lone], mid1, mid2}))
	c.add(sides[a], c.fixWinding(orig, [3]int{mid1, f[a], f[b]}))
	c.add(sides[a], c.fixWinding(orig, [3]int{mid1, f[b], mid2}))
	return nil
}

func (c *classifier) add(side Side, f [3]int) {
	if side == Front {
		c.Front = append(c.Front, f)
	} else {
		c.Back = append(c.Back, f)
	}
}

func (c *classifier) normal(f [3]int) model3d.Coord3D {
	return triangleNormal(c.Table.coords[f[0]], c.Table.coords[f[1]], c.Table.coords[f[2]])
}

// fixWinding reverses a sub-triangle whose normal deviates from the normal
// of its source face, as long as the reversed order agrees with the source.
func (c *classifier) fixWinding(orig model3d.Coord3D, f [3]int) [3]int {
	n := c.normal(f)
	if !normalsDeviate(orig, n) {
		return f
	}
	if normalsDeviate(orig, n.Scale(-1)) {
		return f
	}
	return [3]int{f[0], f[2], f[1]}
}

func normalsDeviate(n1, n2 model3d.Coord3D) bool {
	diff := n1.Sub(n2)
	return math.Abs(diff.X) > WindingTolerance ||
		math.Abs(diff.Y) > WindingTolerance ||
		math.Abs(diff.Z) > WindingTolerance
}

// triangleNormal computes the unit normal implied by the winding of a, b, c.
//
// The result contains NaNs for degenerate triangles.
func triangleNormal(a, b, c model3d.Coord3D) model3d.Coord3D {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}
