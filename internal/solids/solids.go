// Package solids generates closed test meshes from signed distance
// functions.
package solids

import (
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// DefaultCells is the marching cubes resolution along the longest axis.
const DefaultCells = 64

// Box creates a box centered at the origin.
func Box(size model3d.Coord3D, cells int) (*model3d.Mesh, error) {
	s, err := sdf.Box3D(v3.Vec{X: size.X, Y: size.Y, Z: size.Z}, 0)
	if err != nil {
		return nil, errors.Wrap(err, "create box")
	}
	return tessellate(s, cells), nil
}

// Cylinder creates a cylinder centered at the origin with its axis along Z.
func Cylinder(height, radius float64, cells int) (*model3d.Mesh, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, errors.Wrap(err, "create cylinder")
	}
	return tessellate(s, cells), nil
}

// Tube creates a box with a cylindrical hole drilled through it along Z.
//
// Cutting it perpendicular to Z yields an outer loop around a hole.
func Tube(size model3d.Coord3D, radius float64, cells int) (*model3d.Mesh, error) {
	box, err := sdf.Box3D(v3.Vec{X: size.X, Y: size.Y, Z: size.Z}, 0)
	if err != nil {
		return nil, errors.Wrap(err, "create tube")
	}
	hole, err := sdf.Cylinder3D(size.Z*2, radius, 0)
	if err != nil {
		return nil, errors.Wrap(err, "create tube")
	}
	return tessellate(sdf.Difference3D(box, hole), cells), nil
}

// repairEpsilon is the distance, relative to the marching cubes cell size,
// within which tessellated vertices are merged.
const repairEpsilon = 1e-5

func tessellate(s sdf.SDF3, cells int) *model3d.Mesh {
	if cells <= 0 {
		cells = DefaultCells
	}
	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))
	res := model3d.NewMesh()
	for _, tri := range triangles {
		t := &model3d.Triangle{}
		for j := 0; j < 3; j++ {
			t[j] = model3d.XYZ(tri[j].X, tri[j].Y, tri[j].Z)
		}
		res.Add(t)
	}
	if res.NumTriangles() == 0 {
		return res
	}

	// Marching cubes places vertices within rounding error of each other
	// near grid corners, which leaves cracks unless they are merged.
	cellSize := res.Max().Sub(res.Min()).MaxCoord() / float64(cells)
	res = res.Repair(cellSize * repairEpsilon)
	for _, t := range res.TriangleSlice() {
		if t[0] == t[1] || t[1] == t[2] || t[2] == t[0] {
			res.Remove(t)
		}
	}
	return res
}
