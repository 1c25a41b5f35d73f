package meshclip

import "github.com/pkg/errors"

var (
	// ErrZeroNormal is returned when a plane is created from a vector that
	// cannot be normalized.
	ErrZeroNormal = errors.New("plane normal has zero length")

	// ErrInvalidMesh is returned for meshes whose faces reference vertices
	// that do not exist.
	ErrInvalidMesh = errors.New("invalid mesh")

	// ErrNumericalDegeneracy is returned when an edge whose endpoints lie on
	// opposite sides of the plane does not produce an intersection point.
	ErrNumericalDegeneracy = errors.New("edge expected to cross the plane does not")

	// ErrUncloseableLoop is returned when cut segments cannot be assembled
	// into loops within the iteration bound.
	ErrUncloseableLoop = errors.New("cut segments do not form closed loops")

	// ErrMultipleLoops is returned when HolesFail is used and a cut produced
	// more than one loop.
	ErrMultipleLoops = errors.New("cut produced more than one loop")
)
