package meshclip

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
	"golang.org/x/exp/slices"
)

type sliceResult struct {
	Slabs []*IndexedMesh
	Err   error
}

// Slice cuts m into len(thresholds)+1 slabs with parallel planes
// perpendicular to axis.
//
// The slabs are ordered by increasing axis.Dot(c) and each one is
// compacted. Thresholds need not be sorted, and cuts run concurrently.
func (c *Clipper) Slice(m *IndexedMesh, axis model3d.Coord3D,
	thresholds []float64) ([]*IndexedMesh, error) {
	if axis.Norm() == 0 {
		return nil, errors.Wrap(ErrZeroNormal, "slice mesh")
	}
	sorted := append([]float64{}, thresholds...)
	slices.Sort(sorted)

	queue := newForkQueue[sliceResult](0)
	res := queue.Run(func() sliceResult {
		return c.slice(queue, m, axis, sorted)
	})
	if res.Err != nil {
		return nil, errors.Wrap(res.Err, "slice mesh")
	}
	return res.Slabs, nil
}

func (c *Clipper) slice(queue *forkQueue[sliceResult], m *IndexedMesh,
	axis model3d.Coord3D, thresholds []float64) sliceResult {
	if len(thresholds) == 0 {
		return sliceResult{Slabs: []*IndexedMesh{m.Compact()}}
	}

	// Cutting at the median keeps the recursion balanced.
	mid := len(thresholds) / 2
	p, err := NewAxisPlane(axis, thresholds[mid])
	if err != nil {
		return sliceResult{Err: err}
	}
	cut, err := c.Clip(m, p)
	if err != nil {
		return sliceResult{Err: errors.Wrapf(err, "threshold %f", thresholds[mid])}
	}
	lower, upper := queue.Fork(
		func() sliceResult {
			return c.slice(queue, cut.Back, axis, thresholds[:mid])
		},
		func() sliceResult {
			return c.slice(queue, cut.Front, axis, thresholds[mid+1:])
		},
	)
	if lower.Err != nil {
		return lower
	} else if upper.Err != nil {
		return upper
	}
	return sliceResult{Slabs: append(lower.Slabs, upper.Slabs...)}
}
