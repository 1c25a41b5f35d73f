package meshclip

import "github.com/unixpickle/model3d/model3d"

// BoundaryEdges finds the undirected edges which are not matched by an
// oppositely directed edge in another face.
//
// A closed, consistently oriented mesh has no boundary edges.
func (i *IndexedMesh) BoundaryEdges() [][2]int {
	counts := map[[2]int]int{}
	var order [][2]int
	for _, f := range i.Faces {
		for j := 0; j < 3; j++ {
			a, b := f[j], f[(j+1)%3]
			key, delta := [2]int{a, b}, 1
			if b < a {
				key, delta = [2]int{b, a}, -1
			}
			if _, ok := counts[key]; !ok {
				order = append(order, key)
			}
			counts[key] += delta
		}
	}
	var res [][2]int
	for _, key := range order {
		if counts[key] != 0 {
			res = append(res, key)
		}
	}
	return res
}

// IsClosed checks if the mesh is watertight and consistently oriented.
func (i *IndexedMesh) IsClosed() bool {
	return len(i.BoundaryEdges()) == 0
}

// Area computes the total surface area.
func (i *IndexedMesh) Area() float64 {
	var res float64
	for f := range i.Faces {
		res += i.Triangle(f).Area()
	}
	return res
}

// Volume computes the signed volume enclosed by the mesh.
//
// The result is positive for closed meshes with outward facing normals.
func (i *IndexedMesh) Volume() float64 {
	var res float64
	for _, f := range i.Faces {
		a, b, c := i.Coords[f[0]], i.Coords[f[1]], i.Coords[f[2]]
		res += a.Dot(b.Cross(c))
	}
	return res / 6
}

// Compact creates a copy of the mesh containing only the vertices that are
// referenced by faces, in order of first use.
func (i *IndexedMesh) Compact() *IndexedMesh {
	mapping := make(map[int]int, len(i.Coords))
	res := &IndexedMesh{Faces: make([][3]int, len(i.Faces))}
	for fi, f := range i.Faces {
		for j, idx := range f {
			newIdx, ok := mapping[idx]
			if !ok {
				newIdx = len(res.Coords)
				mapping[idx] = newIdx
				res.Coords = append(res.Coords, i.Coords[idx])
			}
			res.Faces[fi][j] = newIdx
		}
	}
	return res
}

// Centroid computes the mean of the vertices referenced by faces.
func (i *IndexedMesh) Centroid() model3d.Coord3D {
	used := map[int]bool{}
	var sum model3d.Coord3D
	for _, f := range i.Faces {
		for _, idx := range f {
			if !used[idx] {
				used[idx] = true
				sum = sum.Add(i.Coords[idx])
			}
		}
	}
	if len(used) == 0 {
		return model3d.Origin
	}
	return sum.Scale(1 / float64(len(used)))
}
