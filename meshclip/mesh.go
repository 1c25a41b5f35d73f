package meshclip

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// An IndexedMesh is a triangle mesh stored as a shared coordinate table and
// index triples into that table.
//
// Faces are wound counter-clockwise when viewed from outside of the solid.
type IndexedMesh struct {
	Coords []model3d.Coord3D
	Faces  [][3]int
}

// NewIndexedMesh converts a triangle soup into an indexed mesh, merging
// vertices with exactly equal coordinates.
func NewIndexedMesh(m *model3d.Mesh) *IndexedMesh {
	return NewIndexedMeshTriangles(m.TriangleSlice())
}

// NewIndexedMeshTriangles is like NewIndexedMesh, but for a slice of
// triangles. The order of the faces matches the order of tris.
func NewIndexedMeshTriangles(tris []*model3d.Triangle) *IndexedMesh {
	table := newVertexTable(nil)
	faces := make([][3]int, 0, len(tris))
	for _, t := range tris {
		var face [3]int
		for i, c := range t {
			face[i] = table.Add(c)
		}
		faces = append(faces, face)
	}
	return &IndexedMesh{Coords: table.coords, Faces: faces}
}

// Mesh converts i back into a triangle soup.
func (i *IndexedMesh) Mesh() *model3d.Mesh {
	res := model3d.NewMesh()
	for f := range i.Faces {
		res.Add(i.Triangle(f))
	}
	return res
}

// Triangle creates the triangle for the given face index.
func (i *IndexedMesh) Triangle(face int) *model3d.Triangle {
	f := i.Faces[face]
	return &model3d.Triangle{i.Coords[f[0]], i.Coords[f[1]], i.Coords[f[2]]}
}

// Validate checks that every face references existing vertices.
func (i *IndexedMesh) Validate() error {
	for fi, f := range i.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(i.Coords) {
				return errors.Wrapf(ErrInvalidMesh, "face %d references vertex %d of %d",
					fi, idx, len(i.Coords))
			}
		}
	}
	return nil
}

// Min gets the minimum corner of the bounding box of the vertices used by
// faces.
func (i *IndexedMesh) Min() model3d.Coord3D {
	min, _ := i.bounds()
	return min
}

// Max gets the maximum corner of the bounding box of the vertices used by
// faces.
func (i *IndexedMesh) Max() model3d.Coord3D {
	_, max := i.bounds()
	return max
}

func (i *IndexedMesh) bounds() (min, max model3d.Coord3D) {
	first := true
	for _, f := range i.Faces {
		for _, idx := range f {
			c := i.Coords[idx]
			if first {
				min, max = c, c
				first = false
			} else {
				min = min.Min(c)
				max = max.Max(c)
			}
		}
	}
	return
}

// vertexTable is an append-only coordinate table which deduplicates exact
// coordinates and memoizes plane crossings per undirected edge.
type vertexTable struct {
	coords []model3d.Coord3D
	lookup map[model3d.Coord3D]int
	splits map[[2]int]int
}

// newVertexTable creates a table starting with a copy of coords, so that
// appending never aliases the caller's slice.
func newVertexTable(coords []model3d.Coord3D) *vertexTable {
	res := &vertexTable{
		coords: append(make([]model3d.Coord3D, 0, len(coords)+len(coords)/8), coords...),
		lookup: make(map[model3d.Coord3D]int, len(coords)),
		splits: map[[2]int]int{},
	}
	for i, c := range coords {
		if _, ok := res.lookup[c]; !ok {
			res.lookup[c] = i
		}
	}
	return res
}

// Add returns the index of c, adding it if it is not already present.
func (v *vertexTable) Add(c model3d.Coord3D) int {
	if idx, ok := v.lookup[c]; ok {
		return idx
	}
	idx := len(v.coords)
	v.coords = append(v.coords, c)
	v.lookup[c] = idx
	return idx
}

// Split returns the vertex where the edge between i1 and i2 crosses p.
//
// The crossing is always computed from the lower index to the higher one, so
// both faces sharing an edge receive the very same vertex.
func (v *vertexTable) Split(i1, i2 int, p Plane) (int, bool) {
	if i1 > i2 {
		i1, i2 = i2, i1
	}
	key := [2]int{i1, i2}
	if idx, ok := v.splits[key]; ok {
		return idx, true
	}
	c, ok := p.SegmentIntersection(v.coords[i1], v.coords[i2])
	if !ok {
		return -1, false
	}
	idx := v.Add(c)
	v.splits[key] = idx
	return idx, true
}
