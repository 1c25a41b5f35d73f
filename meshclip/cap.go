package meshclip

import (
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// A capFrame is an orthonormal basis whose third axis is the plane normal,
// used to flatten loops on the plane into 2D.
type capFrame struct {
	// toWorld has the basis vectors as columns, toLocal is its transpose.
	toWorld *model3d.Matrix3
	toLocal *model3d.Matrix3

	// depth is the third local coordinate shared by every point on the
	// plane.
	depth float64
}

// newCapFrame creates a frame whose first axis points from the plane point
// to the loop vertex farthest from it.
func newCapFrame(p Plane, coords []model3d.Coord3D, loops []Loop) *capFrame {
	var ref model3d.Coord3D
	var refDist float64
	for _, loop := range loops {
		for _, idx := range loop {
			if d := coords[idx].Dist(p.Point); d > refDist {
				ref, refDist = coords[idx], d
			}
		}
	}
	ab := p.Project(ref).Sub(p.Point)
	if norm := ab.Norm(); norm > 0 {
		ab = ab.Scale(1 / norm)
	} else {
		ab = perpendicular(p.Normal)
	}
	ad := p.Normal
	ac := ad.Cross(ab)
	toWorld := model3d.NewMatrix3Columns(ab, ac, ad)
	return &capFrame{
		toWorld: toWorld,
		toLocal: toWorld.Transpose(),
		depth:   ad.Dot(p.Point),
	}
}

func (c *capFrame) To2D(x model3d.Coord3D) model2d.Coord {
	local := c.toLocal.MulColumn(x)
	return model2d.XY(local.X, local.Y)
}

func (c *capFrame) To3D(x model2d.Coord) model3d.Coord3D {
	return c.toWorld.MulColumn(model3d.XYZ(x.X, x.Y, c.depth))
}

// perpendicular finds a unit vector orthogonal to the unit vector n.
func perpendicular(n model3d.Coord3D) model3d.Coord3D {
	axis := model3d.X(1)
	if math.Abs(n.Y) < math.Abs(n.X) && math.Abs(n.Y) <= math.Abs(n.Z) {
		axis = model3d.Y(1)
	} else if math.Abs(n.Z) < math.Abs(n.X) && math.Abs(n.Z) < math.Abs(n.Y) {
		axis = model3d.Z(1)
	}
	return axis.Sub(n.Scale(n.Dot(axis))).Normalize()
}

// A capper triangulates flattened loops and emits cap faces for both sides
// of the cut.
type capper struct {
	Frame        *capFrame
	Table        *vertexTable
	Triangulator Triangulator

	// Front receives caps facing against the plane normal, Back receives
	// caps facing along it. Either may be nil to skip that side.
	Front *[][3]int
	Back  *[][3]int

	Degenerate int
	Uncapped   int
	Area       float64
}

// Flatten converts a loop to 2D.
func (c *capper) Flatten(loop Loop) []model2d.Coord {
	res := make([]model2d.Coord, len(loop))
	for i, idx := range loop {
		res[i] = c.Frame.To2D(c.Table.coords[idx])
	}
	return res
}

// Cap fills a flattened polygon. The lookup maps flattened coordinates back
// to vertex indices.
//
// Triangulation failures leave the polygon uncapped and are returned, but
// they never affect faces that were already emitted.
func (c *capper) Cap(poly []model2d.Coord, lookup map[model2d.Coord]int) error {
	distinct := map[model2d.Coord]bool{}
	for _, p := range poly {
		distinct[p] = true
	}
	if len(distinct) < 3 {
		c.Uncapped++
		return nil
	}

	tris, err := c.Triangulator.Triangulate(poly)
	if err != nil {
		c.Uncapped++
		return errors.Wrap(err, "triangulate cap")
	}
	for _, t := range tris {
		if isDegenerate2D(t[0], t[1], t[2]) {
			c.Degenerate++
			continue
		}
		var face [3]int
		for i, p := range t {
			if idx, ok := lookup[p]; ok {
				face[i] = idx
			} else {
				idx = c.Table.Add(c.Frame.To3D(p))
				lookup[p] = idx
				face[i] = idx
			}
		}
		area := cross2D(t[1].Sub(t[0]), t[2].Sub(t[0])) / 2
		c.Area += math.Abs(area)

		// Counter-clockwise in the frame means facing along the normal.
		up, down := face, [3]int{face[0], face[2], face[1]}
		if area < 0 {
			up, down = down, up
		}
		if c.Front != nil {
			*c.Front = append(*c.Front, down)
		}
		if c.Back != nil {
			*c.Back = append(*c.Back, up)
		}
	}
	return nil
}

// capLookup maps the flattened coordinates of loops to vertex indices.
func capLookup(polys [][]model2d.Coord, loops []Loop) map[model2d.Coord]int {
	res := map[model2d.Coord]int{}
	for i, poly := range polys {
		for j, p := range poly {
			if _, ok := res[p]; !ok {
				res[p] = loops[i][j]
			}
		}
	}
	return res
}
