package meshclip

import (
	"log"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// A Clipper cuts closed meshes into two closed halves with a plane.
//
// The zero value is ready to use.
type Clipper struct {
	// Epsilon is the absolute distance below which a vertex is treated as
	// lying on the plane. If zero, DefaultEpsilon is used.
	Epsilon float64

	// RelativeEpsilon scales the measurement chosen by EpsilonBasis.
	// If zero, DefaultRelativeEpsilon is used.
	RelativeEpsilon float64

	// EpsilonBasis determines whether the tolerance is absolute or
	// relative to the size of the mesh.
	EpsilonBasis EpsilonBasis

	// HoleMode determines how cuts with several loops are capped.
	HoleMode HoleMode

	// Triangulator fills cap polygons. If nil, EarClipper is used.
	Triangulator Triangulator

	// NoCaps, if true, leaves the cut open.
	NoCaps bool

	// Verbose, if true, logs anomalies that do not abort the cut.
	Verbose bool
}

// Diagnostics counts the recoverable anomalies encountered during a cut.
type Diagnostics struct {
	// Epsilon is the on-plane tolerance that was used.
	Epsilon float64

	// Segments is the number of cut segments produced by faces.
	Segments int

	// Loops is the number of closed loops assembled from the segments.
	Loops int

	// Coplanar is the number of faces dropped for lying on the plane.
	Coplanar int

	// Collapsed is the number of faces dropped after welding merged two of
	// their vertices.
	Collapsed int

	// DiscardedSegments counts segments that never became part of a loop.
	DiscardedSegments int

	// DegenerateCaps is the number of zero-area cap triangles dropped.
	DegenerateCaps int

	// UncappedLoops counts polygons that could not be filled.
	UncappedLoops int

	// CapArea is the total area of the cap on one side.
	CapArea float64
}

// Result is the outcome of a cut.
type Result struct {
	// Front contains the part of the mesh on the side the plane normal
	// points to, and Back contains the rest. Both share one coordinate
	// table, which may contain vertices that neither references.
	Front *IndexedMesh
	Back  *IndexedMesh

	// Loops are the boundaries of the cross-section, as indices into the
	// shared coordinate table.
	Loops []Loop

	// Points are the distinct vertices of the cut segments, all of which
	// lie on the plane.
	Points []model3d.Coord3D

	Diagnostics Diagnostics
}

// Clip cuts m with p.
//
// Errors while splitting faces abort the cut. Problems while capping are
// recorded in the diagnostics instead, unless HoleMode is HolesFail.
func (c *Clipper) Clip(m *IndexedMesh, p Plane) (*Result, error) {
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "clip mesh")
	}
	if p.Normal.Norm() == 0 {
		return nil, errors.Wrap(ErrZeroNormal, "clip mesh")
	}
	eps := c.ResolveEpsilon(m, p)
	diag := Diagnostics{Epsilon: eps}

	cl := newClassifier(m, p, eps)
	if err := cl.SplitFaces(m.Faces); err != nil {
		return nil, errors.Wrap(err, "clip mesh")
	}
	diag.Coplanar = cl.Coplanar
	diag.Segments = len(cl.Segments)
	diag.Collapsed = weldSegments(cl.Table.coords, eps, cl.Segments, &cl.Front, &cl.Back)

	loops, discarded, err := assembleLoops(cl.Segments)
	if err != nil {
		return nil, errors.Wrap(err, "clip mesh")
	}
	diag.Loops = len(loops)
	diag.DiscardedSegments = discarded
	if c.Verbose && discarded > 0 {
		log.Printf("meshclip: discarded %d segments that did not form loops", discarded)
	}

	if len(loops) > 1 {
		if c.HoleMode == HolesFail {
			return nil, errors.Wrapf(ErrMultipleLoops, "clip mesh: found %d loops", len(loops))
		} else if c.HoleMode == HolesIndependent && c.Verbose {
			log.Printf("meshclip: more than one loop (%d), capping each independently", len(loops))
		}
	}

	if !c.NoCaps && len(loops) > 0 {
		c.capLoops(cl, p, loops, &diag)
	}

	return &Result{
		Front:       &IndexedMesh{Coords: cl.Table.coords, Faces: cl.Front},
		Back:        &IndexedMesh{Coords: cl.Table.coords, Faces: cl.Back},
		Loops:       loops,
		Points:      segmentPoints(cl.Table.coords, cl.Segments),
		Diagnostics: diag,
	}, nil
}

func (c *Clipper) capLoops(cl *classifier, p Plane, loops []Loop, diag *Diagnostics) {
	cp := &capper{
		Frame:        newCapFrame(p, cl.Table.coords, loops),
		Table:        cl.Table,
		Triangulator: c.Triangulator,
	}
	if cp.Triangulator == nil {
		cp.Triangulator = EarClipper{}
	}

	// A side without any surface would only receive a flat sheet.
	if len(cl.Front) > 0 {
		cp.Front = &cl.Front
	}
	if len(cl.Back) > 0 {
		cp.Back = &cl.Back
	}

	polys := make([][]model2d.Coord, len(loops))
	for i, loop := range loops {
		polys[i] = cp.Flatten(loop)
	}
	lookup := capLookup(polys, loops)

	var err error
	if c.HoleMode == HolesNested {
		for _, group := range nestPolygons(polys) {
			holes := make([][]model2d.Coord, len(group.Holes))
			for i, h := range group.Holes {
				holes[i] = polys[h]
			}
			poly := polys[group.Outer]
			if len(holes) > 0 {
				poly = bridgeHoles(poly, holes)
			}
			if capErr := cp.Cap(poly, lookup); capErr != nil && err == nil {
				err = capErr
			}
		}
	} else {
		for _, poly := range polys {
			if capErr := cp.Cap(poly, lookup); capErr != nil && err == nil {
				err = capErr
			}
		}
	}
	if err != nil && c.Verbose {
		log.Printf("meshclip: %s", err)
	}
	if c.Verbose && cp.Degenerate > 0 {
		log.Printf("meshclip: dropped %d degenerate cap triangles", cp.Degenerate)
	}

	diag.DegenerateCaps = cp.Degenerate
	diag.UncappedLoops = cp.Uncapped
	diag.CapArea = cp.Area
}

// ClipMesh cuts a triangle soup with a plane, returning the capped front
// and back halves.
func (c *Clipper) ClipMesh(m *model3d.Mesh, p Plane) (front, back *model3d.Mesh, err error) {
	res, err := c.Clip(NewIndexedMesh(m), p)
	if err != nil {
		return nil, nil, err
	}
	return res.Front.Mesh(), res.Back.Mesh(), nil
}

// ClipMany cuts every mesh with the same plane, using one Goroutine per
// CPU.
//
// If any cut fails, the first error (by index) is returned.
func (c *Clipper) ClipMany(meshes []*IndexedMesh, p Plane) ([]*Result, error) {
	results := make([]*Result, len(meshes))
	errs := make([]error, len(meshes))
	essentials.ConcurrentMap(0, len(meshes), func(i int) {
		results[i], errs[i] = c.Clip(meshes[i], p)
	})
	for i, err := range errs {
		if err != nil {
			return nil, errors.Wrapf(err, "clip mesh %d", i)
		}
	}
	return results, nil
}

// ClipMesh cuts a triangle soup using the default Clipper.
func ClipMesh(m *model3d.Mesh, p Plane) (front, back *model3d.Mesh, err error) {
	return (&Clipper{}).ClipMesh(m, p)
}

// SplitMesh splits a mesh across a plane, potentially dividing up triangles
// in the process to produce a perfect cut. The cut is left open.
//
// Faces in lessThan are below the threshold along axis, and faces in
// greaterEqual are above it.
func SplitMesh(m *model3d.Mesh, axis model3d.Coord3D, threshold float64) (lessThan,
	greaterEqual *model3d.Mesh, err error) {
	p, err := NewAxisPlane(axis, threshold)
	if err != nil {
		return nil, nil, err
	}
	greaterEqual, lessThan, err = (&Clipper{NoCaps: true}).ClipMesh(m, p)
	return
}

func segmentPoints(coords []model3d.Coord3D, segs []Segment) []model3d.Coord3D {
	seen := map[int]bool{}
	var res []model3d.Coord3D
	for _, s := range segs {
		for _, idx := range s {
			if !seen[idx] {
				seen[idx] = true
				res = append(res, coords[idx])
			}
		}
	}
	return res
}
