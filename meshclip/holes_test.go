package meshclip

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model2d"
)

func squarePolygon(center model2d.Coord, radius float64) []model2d.Coord {
	return []model2d.Coord{
		center.Add(model2d.XY(-radius, -radius)),
		center.Add(model2d.XY(radius, -radius)),
		center.Add(model2d.XY(radius, radius)),
		center.Add(model2d.XY(-radius, radius)),
	}
}

func TestNestPolygons(t *testing.T) {
	polys := [][]model2d.Coord{
		squarePolygon(model2d.XY(0, 0), 0.5),
		squarePolygon(model2d.XY(0, 0), 4),
		squarePolygon(model2d.XY(10, 0), 1),
		squarePolygon(model2d.XY(0, 0), 2),
		squarePolygon(model2d.XY(3, 3), 0.5),
	}
	groups := nestPolygons(polys)
	require.Len(t, groups, 3)

	byOuter := map[int][]int{}
	for _, g := range groups {
		byOuter[g.Outer] = g.Holes
	}
	require.ElementsMatch(t, []int{3, 4}, byOuter[1])
	require.Empty(t, byOuter[0])
	require.Empty(t, byOuter[2])
}

func TestBridgeHoles(t *testing.T) {
	outer := squarePolygon(model2d.XY(0, 0), 2)
	holes := [][]model2d.Coord{
		squarePolygon(model2d.XY(-1, 0), 0.5),
		squarePolygon(model2d.XY(1, 0.5), 0.25),
	}
	merged := bridgeHoles(outer, holes)
	require.Len(t, merged, len(outer)+len(holes[0])+len(holes[1])+4)
	require.InDelta(t, 16-1-0.25, signedArea2D(merged), 1e-8)

	tris, err := EarClipper{}.Triangulate(merged)
	require.NoError(t, err)
	var area float64
	for _, tri := range tris {
		if !isDegenerate2D(tri[0], tri[1], tri[2]) {
			area += math.Abs(cross2D(tri[1].Sub(tri[0]), tri[2].Sub(tri[0]))) / 2
		}
	}
	require.InDelta(t, 16-1-0.25, area, 1e-8)
}

func TestParseHoleMode(t *testing.T) {
	for _, mode := range []HoleMode{HolesIndependent, HolesFail, HolesNested} {
		parsed, err := ParseHoleMode(mode.String())
		require.NoError(t, err)
		require.Equal(t, mode, parsed)
	}
	_, err := ParseHoleMode("sometimes")
	require.Error(t, err)
}
