package solids

import (
	"testing"

	"github.com/unixpickle/model3d/model3d"
)

func TestBox(t *testing.T) {
	size := model3d.XYZ(2, 1, 0.5)
	mesh, err := Box(size, 20)
	if err != nil {
		t.Fatal(err)
	}
	checkClosed(t, mesh)
	min, max := mesh.Min(), mesh.Max()
	for _, c := range []model3d.Coord3D{min.Scale(-1), max} {
		if c.Sub(size.Scale(0.5)).Abs().MaxCoord() > 0.25 {
			t.Errorf("unexpected bounds: %v %v", min, max)
		}
	}
}

func TestCylinder(t *testing.T) {
	mesh, err := Cylinder(2, 0.5, 20)
	if err != nil {
		t.Fatal(err)
	}
	checkClosed(t, mesh)
	if mesh.Max().Z-mesh.Min().Z > 2.2 {
		t.Errorf("cylinder is too tall: %v %v", mesh.Min(), mesh.Max())
	}
}

func TestTube(t *testing.T) {
	box, err := Box(model3d.XYZ(2, 2, 2), 20)
	if err != nil {
		t.Fatal(err)
	}
	tube, err := Tube(model3d.XYZ(2, 2, 2), 0.5, 20)
	if err != nil {
		t.Fatal(err)
	}
	checkClosed(t, tube)
	if tube.NumTriangles() <= box.NumTriangles() {
		t.Fatalf("tube (%d triangles) should have more triangles than box (%d triangles)",
			tube.NumTriangles(), box.NumTriangles())
	}
}

func checkClosed(t *testing.T, mesh *model3d.Mesh) {
	if mesh.NumTriangles() == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	if mesh.NeedsRepair() {
		t.Fatal("mesh has edges without exactly two triangles")
	}
	if volume := mesh.Volume(); volume <= 0 {
		t.Fatalf("expected positive volume but got %f", volume)
	}
}
