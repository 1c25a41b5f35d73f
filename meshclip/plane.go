package meshclip

import (
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// DefaultEpsilon is the absolute distance below which a point is considered
// to lie on a cutting plane.
const DefaultEpsilon = 1e-8

// A Side indicates where a point lies relative to a Plane.
type Side int

const (
	Back  Side = -1
	On    Side = 0
	Front Side = 1
)

func (s Side) String() string {
	switch s {
	case Back:
		return "back"
	case On:
		return "on"
	case Front:
		return "front"
	}
	return "invalid"
}

// A Plane is an infinite plane described by a unit normal and any point on
// the plane.
//
// Points with a positive signed distance are in front of the plane.
type Plane struct {
	Normal model3d.Coord3D
	Point  model3d.Coord3D
}

// NewPlane creates a plane, normalizing the normal vector.
func NewPlane(normal, point model3d.Coord3D) (Plane, error) {
	norm := normal.Norm()
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return Plane{}, errors.Wrapf(ErrZeroNormal, "new plane with normal %v", normal)
	}
	return Plane{Normal: normal.Scale(1 / norm), Point: point}, nil
}

// NewAxisPlane creates the plane of points c satisfying
// axis.Dot(c) == threshold.
//
// Points with axis.Dot(c) > threshold are in front of the plane.
func NewAxisPlane(axis model3d.Coord3D, threshold float64) (Plane, error) {
	norm := axis.Norm()
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return Plane{}, errors.Wrapf(ErrZeroNormal, "new axis plane with axis %v", axis)
	}
	normal := axis.Scale(1 / norm)
	return Plane{Normal: normal, Point: normal.Scale(threshold / norm)}, nil
}

// SignedDist computes dot(normal, c - point).
func (p Plane) SignedDist(c model3d.Coord3D) float64 {
	return p.Normal.Dot(c.Sub(p.Point))
}

// Classify determines the side of c, treating any point closer than eps to
// the plane as being on it.
func (p Plane) Classify(c model3d.Coord3D, eps float64) Side {
	return classifyDist(p.SignedDist(c), eps)
}

// Flip returns the same plane with the opposite orientation.
func (p Plane) Flip() Plane {
	return Plane{Normal: p.Normal.Scale(-1), Point: p.Point}
}

// Project returns the closest point on the plane to c.
func (p Plane) Project(c model3d.Coord3D) model3d.Coord3D {
	return c.Sub(p.Normal.Scale(p.SignedDist(c)))
}

// SegmentIntersection finds the point where the segment from p0 to p1
// crosses the plane.
//
// The second return value is false if the segment is parallel to the plane
// or if the crossing lies outside of the segment.
func (p Plane) SegmentIntersection(p0, p1 model3d.Coord3D) (model3d.Coord3D, bool) {
	dir := p1.Sub(p0)
	denom := dir.Dot(p.Normal)
	if denom == 0 {
		return model3d.Coord3D{}, false
	}
	t := p.Point.Sub(p0).Dot(p.Normal) / denom
	if math.IsNaN(t) || t < 0 || t > 1 {
		return model3d.Coord3D{}, false
	}
	return p0.Add(dir.Scale(t)), true
}

func classifyDist(d, eps float64) Side {
	if math.Abs(d) < eps {
		return On
	} else if d > 0 {
		return Front
	}
	return Back
}
