package meshclip

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

func classifyTriangle(t *testing.T, tri *model3d.Triangle, p Plane) *classifier {
	m := NewIndexedMeshTriangles([]*model3d.Triangle{tri})
	cl := newClassifier(m, p, DefaultEpsilon)
	if err := cl.SplitFaces(m.Faces); err != nil {
		t.Fatal(err)
	}
	return cl
}

func faceTriangles(coords []model3d.Coord3D, faces [][3]int) []*model3d.Triangle {
	m := &IndexedMesh{Coords: coords, Faces: faces}
	res := make([]*model3d.Triangle, len(faces))
	for i := range faces {
		res[i] = m.Triangle(i)
	}
	return res
}

func TestSplitTriangleBasic(t *testing.T) {
	triangle := &model3d.Triangle{
		model3d.XYZ(-1, -1, 0.0),
		model3d.XYZ(1, -1, 0.1),
		model3d.XYZ(1, 1, -0.1),
	}
	p, err := NewAxisPlane(model3d.XYZ(0.01, 0.9, 0.01).Normalize(), 0.1)
	if err != nil {
		t.Fatal(err)
	}

	cl := classifyTriangle(t, triangle, p)
	lt := faceTriangles(cl.Table.coords, cl.Back)
	gt := faceTriangles(cl.Table.coords, cl.Front)
	if len(lt) != 2 || len(gt) != 1 {
		t.Fatalf("expected two back and one front but got %d %d", len(lt), len(gt))
	}
	if len(cl.Segments) != 1 {
		t.Fatalf("expected one segment but got %d", len(cl.Segments))
	}
	for _, idx := range cl.Segments[0] {
		if d := math.Abs(p.SignedDist(cl.Table.coords[idx])); d >= DefaultEpsilon {
			t.Fatalf("segment point is %e from the plane", d)
		}
	}

	totalArea := 0.0
	for _, tri := range append(append([]*model3d.Triangle{}, lt...), gt...) {
		if tri.Normal().Dot(triangle.Normal()) < 1-1e-5 {
			t.Fatalf("triangle normal should be %v but got %v", triangle.Normal(), tri.Normal())
		}
		totalArea += tri.Area()
	}
	if math.Abs(totalArea-triangle.Area()) > 1e-5 {
		t.Fatalf("total area should be %f but got %f", triangle.Area(), totalArea)
	}

	// Make sure permutations yield the same result.
	for i := 0; i < 2; i++ {
		triangle[0], triangle[1], triangle[2] = triangle[1], triangle[2], triangle[0]
		cl1 := classifyTriangle(t, triangle, p)
		lt1 := faceTriangles(cl1.Table.coords, cl1.Back)
		gt1 := faceTriangles(cl1.Table.coords, cl1.Front)
		for j, pair := range [2][2][]*model3d.Triangle{{lt, lt1}, {gt, gt1}} {
			if len(pair[0]) != len(pair[1]) {
				t.Fatalf("invalid pair: %d %d", i, j)
			}
			area1 := 0.0
			area2 := 0.0
			for _, tri := range pair[0] {
				area1 += tri.Area()
			}
			for k, tri := range pair[1] {
				area2 += tri.Area()
				if tri.Normal().Dot(triangle.Normal()) < 1-1e-5 {
					t.Fatalf("invalid normal: %d %d %d", i, j, k)
				}
			}
			if math.Abs(area1-area2) > 1e-5 {
				t.Fatalf("mismatched area: %d %d %f %f", i, j, area1, area2)
			}
		}
	}
}

func TestSplitTriangleCases(t *testing.T) {
	p, err := NewPlane(model3d.Z(1), model3d.Origin)
	if err != nil {
		t.Fatal(err)
	}
	half := DefaultEpsilon * 0.5

	testCases := []struct {
		Name     string
		Triangle *model3d.Triangle
		Front    int
		Back     int
		Segments int
		Coplanar int
	}{
		{
			Name:     "Front",
			Triangle: &model3d.Triangle{model3d.Z(1), model3d.XYZ(1, 0, 2), model3d.XYZ(0, 1, 1)},
			Front:    1,
		},
		{
			Name:     "Back",
			Triangle: &model3d.Triangle{model3d.Z(-1), model3d.XYZ(1, 0, -2), model3d.XYZ(0, 1, -1)},
			Back:     1,
		},
		{
			Name:     "Coplanar",
			Triangle: &model3d.Triangle{model3d.Origin, model3d.XYZ(1, 0, half), model3d.Y(1)},
			Coplanar: 1,
		},
		{
			Name:     "TwoOnPlane",
			Triangle: &model3d.Triangle{model3d.Origin, model3d.X(1), model3d.XYZ(0, 1, -1)},
			Back:     1,
			Segments: 1,
		},
		{
			Name:     "OneOnPlaneSameSide",
			Triangle: &model3d.Triangle{model3d.Z(half), model3d.XYZ(1, 0, 1), model3d.XYZ(0, 1, 2)},
			Front:    1,
		},
		{
			Name:     "OneOnPlaneBisected",
			Triangle: &model3d.Triangle{model3d.Z(half), model3d.XYZ(1, 0, 1), model3d.XYZ(0, 1, -1)},
			Front:    1,
			Back:     1,
			Segments: 1,
		},
		{
			Name:     "Generic",
			Triangle: &model3d.Triangle{model3d.Z(-1), model3d.XYZ(1, 0, 1), model3d.XYZ(0, 1, 2)},
			Front:    2,
			Back:     1,
			Segments: 1,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			cl := classifyTriangle(t, tc.Triangle, p)
			if len(cl.Front) != tc.Front || len(cl.Back) != tc.Back {
				t.Fatalf("expected %d front and %d back but got %d and %d",
					tc.Front, tc.Back, len(cl.Front), len(cl.Back))
			}
			if len(cl.Segments) != tc.Segments {
				t.Fatalf("expected %d segments but got %d", tc.Segments, len(cl.Segments))
			}
			if cl.Coplanar != tc.Coplanar {
				t.Fatalf("expected %d coplanar but got %d", tc.Coplanar, cl.Coplanar)
			}

			var area float64
			normal := tc.Triangle.Normal()
			for _, tri := range faceTriangles(cl.Table.coords, append(cl.Front, cl.Back...)) {
				area += tri.Area()
				if tri.Normal().Dot(normal) < 1-1e-5 {
					t.Errorf("sub-triangle normal %v deviates from %v", tri.Normal(), normal)
				}
			}
			if tc.Coplanar == 0 && math.Abs(area-tc.Triangle.Area()) > 1e-8 {
				t.Errorf("expected area %f but got %f", tc.Triangle.Area(), area)
			}
		})
	}
}

func TestSplitTriangleWholeSides(t *testing.T) {
	p, err := NewPlane(model3d.XYZ(1, -1, 0.5), model3d.XYZ(0.1, 0.2, 0.3))
	if err != nil {
		t.Fatal(err)
	}
	cube := cubeMesh(model3d.XYZ(2, -3, 0), model3d.XYZ(3, -2, 1), false)
	cl := newClassifier(cube, p, DefaultEpsilon)
	if err := cl.SplitFaces(cube.Faces); err != nil {
		t.Fatal(err)
	}
	if len(cl.Back) != 0 || len(cl.Segments) != 0 {
		t.Fatalf("unexpected back faces or segments: %d %d", len(cl.Back), len(cl.Segments))
	}
	if len(cl.Front) != len(cube.Faces) {
		t.Fatalf("expected %d front faces but got %d", len(cube.Faces), len(cl.Front))
	}
	for i, f := range cl.Front {
		if f != cube.Faces[i] {
			t.Fatalf("face %d was modified: %v -> %v", i, cube.Faces[i], f)
		}
	}
}

func TestSplitTriangleDegeneracy(t *testing.T) {
	p, err := NewPlane(model3d.Z(1), model3d.Origin)
	if err != nil {
		t.Fatal(err)
	}
	m := &IndexedMesh{
		Coords: []model3d.Coord3D{model3d.Z(1), model3d.XYZ(1, 0, 1), model3d.XYZ(0, 1, 2)},
		Faces:  [][3]int{{0, 1, 2}},
	}
	cl := newClassifier(m, p, DefaultEpsilon)

	// Pretend the last vertex was classified on the wrong side, so the
	// edges that should cross the plane do not.
	cl.Sides[2] = Back
	err = cl.SplitFaces(m.Faces)
	if !errors.Is(err, ErrNumericalDegeneracy) {
		t.Fatalf("expected numerical degeneracy but got %v", err)
	}
}

func TestFixWinding(t *testing.T) {
	m := &IndexedMesh{
		Coords: []model3d.Coord3D{model3d.Origin, model3d.X(1), model3d.Y(1)},
	}
	cl := newClassifier(m, Plane{Normal: model3d.Z(1)}, DefaultEpsilon)
	orig := model3d.Z(1)
	if f := cl.fixWinding(orig, [3]int{0, 1, 2}); f != [3]int{0, 1, 2} {
		t.Errorf("consistent face was changed: %v", f)
	}
	if f := cl.fixWinding(orig, [3]int{0, 2, 1}); f != [3]int{0, 1, 2} {
		t.Errorf("inconsistent face was not reversed: %v", f)
	}
}
