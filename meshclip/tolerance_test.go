package meshclip

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model3d"
)

func TestResolveEpsilon(t *testing.T) {
	cube := cubeMesh(model3d.Origin, model3d.XYZ(3, 4, 12), false)
	p, err := NewPlane(model3d.Z(1), model3d.Z(6))
	require.NoError(t, err)

	require.Equal(t, DefaultEpsilon, (&Clipper{}).ResolveEpsilon(cube, p))
	require.Equal(t, 1e-3, (&Clipper{Epsilon: 1e-3}).ResolveEpsilon(cube, p))

	bounds := &Clipper{EpsilonBasis: BoundsEpsilon, RelativeEpsilon: 1e-6}
	require.InDelta(t, 13e-6, bounds.ResolveEpsilon(cube, p), 1e-15)

	// Half of the vertices are 6 below the plane and half are 6 above it.
	spread := &Clipper{EpsilonBasis: SpreadEpsilon, RelativeEpsilon: 1e-6}
	expected := 1e-6 * math.Sqrt(36*8/7.0)
	require.InDelta(t, expected, spread.ResolveEpsilon(cube, p), 1e-15)

	empty := &IndexedMesh{}
	require.Equal(t, DefaultEpsilon, bounds.ResolveEpsilon(empty, p))
}

func TestClipLargeCoordinates(t *testing.T) {
	size := 1e6
	cube := cubeMesh(model3d.Origin, model3d.XYZ(size, size, size), false)

	// The plane is slightly above the top of the cube, which is far closer
	// than the size of the mesh but much farther than the default epsilon.
	p, err := NewPlane(model3d.Z(1), model3d.Z(size+1e-4))
	require.NoError(t, err)

	res, err := (&Clipper{}).Clip(cube, p)
	require.NoError(t, err)
	require.Equal(t, 0, res.Diagnostics.Coplanar)
	require.Equal(t, 0, res.Diagnostics.Segments)
	require.Len(t, res.Back.Faces, 12)

	res, err = (&Clipper{EpsilonBasis: BoundsEpsilon}).Clip(cube, p)
	require.NoError(t, err)
	require.Greater(t, res.Diagnostics.Epsilon, 1e-4)
	require.Equal(t, 2, res.Diagnostics.Coplanar)
	require.Len(t, res.Loops, 1)
	require.Empty(t, res.Front.Faces)
	require.True(t, res.Back.IsClosed())
	require.InDelta(t, 1.0, res.Back.Volume()/(size*size*size), 1e-8)
}

func TestParseEpsilonBasis(t *testing.T) {
	for _, basis := range []EpsilonBasis{AbsoluteEpsilon, BoundsEpsilon, SpreadEpsilon} {
		parsed, err := ParseEpsilonBasis(basis.String())
		require.NoError(t, err)
		require.Equal(t, basis, parsed)
	}
	_, err := ParseEpsilonBasis("huge")
	require.Error(t, err)
}
