package meshclip

import (
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// A welder merges vertices that lie within a distance of each other, using
// a uniform hash grid whose cells are as wide as the merge distance.
type welder struct {
	coords   []model3d.Coord3D
	dist     float64
	cells    map[model3d.Coord3D][]int
	mapping  map[int]int
	numMerge int
}

func newWelder(coords []model3d.Coord3D, dist float64) *welder {
	return &welder{
		coords:  coords,
		dist:    dist,
		cells:   map[model3d.Coord3D][]int{},
		mapping: map[int]int{},
	}
}

// Insert registers a vertex, merging it into an earlier vertex when one is
// close enough.
func (w *welder) Insert(idx int) int {
	if res, ok := w.mapping[idx]; ok {
		return res
	}
	c := w.coords[idx]
	cell := w.cell(c)
	for x := -1.0; x <= 1; x++ {
		for y := -1.0; y <= 1; y++ {
			for z := -1.0; z <= 1; z++ {
				neighbor := cell.Add(model3d.XYZ(x, y, z))
				for _, other := range w.cells[neighbor] {
					if w.coords[other].Dist(c) < w.dist {
						w.mapping[idx] = other
						w.numMerge++
						return other
					}
				}
			}
		}
	}
	w.cells[cell] = append(w.cells[cell], idx)
	w.mapping[idx] = idx
	return idx
}

// Map gets the representative of a vertex, or the vertex itself if it was
// never inserted.
func (w *welder) Map(idx int) int {
	if res, ok := w.mapping[idx]; ok {
		return res
	}
	return idx
}

func (w *welder) cell(c model3d.Coord3D) model3d.Coord3D {
	return model3d.XYZ(
		math.Floor(c.X/w.dist),
		math.Floor(c.Y/w.dist),
		math.Floor(c.Z/w.dist),
	)
}

// weldSegments merges nearly coincident segment endpoints and rewrites the
// segments and the faces in place.
//
// It returns the number of faces that collapsed and were removed.
func weldSegments(coords []model3d.Coord3D, dist float64, segs []Segment,
	faceLists ...*[][3]int) (collapsed int) {
	if dist <= 0 || len(segs) == 0 {
		return 0
	}
	w := newWelder(coords, dist)
	for i, s := range segs {
		segs[i] = Segment{w.Insert(s[0]), w.Insert(s[1])}
	}
	if w.numMerge == 0 {
		return 0
	}
	for _, faces := range faceLists {
		kept := (*faces)[:0]
		for _, f := range *faces {
			f = [3]int{w.Map(f[0]), w.Map(f[1]), w.Map(f[2])}
			if f[0] == f[1] || f[1] == f[2] || f[2] == f[0] {
				collapsed++
				continue
			}
			kept = append(kept, f)
		}
		*faces = kept
	}
	return collapsed
}
