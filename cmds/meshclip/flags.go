package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/unixpickle/meshclip/meshclip"
	"github.com/unixpickle/model3d/model3d"
)

// clipFlags are the flags shared by every command that cuts a mesh.
type clipFlags struct {
	Normal          string
	Point           string
	Epsilon         float64
	RelativeEpsilon float64
	EpsilonBasis    string
	Holes           string
	Triangulator    string
	NoCaps          bool
	Verbose         bool
}

func (c *clipFlags) Add(cmd *cobra.Command, withPlane bool) {
	f := cmd.Flags()
	if withPlane {
		f.StringVarP(&c.Normal, "normal", "n", "0,0,1", "plane normal as x,y,z")
		f.StringVarP(&c.Point, "point", "p", "0,0,0", "point on the plane as x,y,z")
	}
	f.Float64Var(&c.Epsilon, "epsilon", meshclip.DefaultEpsilon, "absolute on-plane tolerance")
	f.Float64Var(&c.RelativeEpsilon, "relative-epsilon", meshclip.DefaultRelativeEpsilon,
		"tolerance scale for relative epsilon bases")
	f.StringVar(&c.EpsilonBasis, "epsilon-basis", "absolute", "absolute, bounds, or spread")
	f.StringVar(&c.Holes, "holes", "independent", "independent, fail, or nested")
	f.StringVar(&c.Triangulator, "triangulator", "ear", "ear, model2d, or fan")
	f.BoolVar(&c.NoCaps, "no-caps", false, "leave the cut open")
	f.BoolVarP(&c.Verbose, "verbose", "v", false, "log recoverable anomalies")
}

func (c *clipFlags) Clipper() (*meshclip.Clipper, error) {
	basis, err := meshclip.ParseEpsilonBasis(c.EpsilonBasis)
	if err != nil {
		return nil, err
	}
	holes, err := meshclip.ParseHoleMode(c.Holes)
	if err != nil {
		return nil, err
	}
	var triangulator meshclip.Triangulator
	switch c.Triangulator {
	case "ear":
		triangulator = meshclip.EarClipper{}
	case "model2d":
		triangulator = meshclip.Model2DTriangulator{}
	case "fan":
		triangulator = meshclip.FanTriangulator{}
	default:
		return nil, errors.Errorf("unknown triangulator: %s", c.Triangulator)
	}
	return &meshclip.Clipper{
		Epsilon:         c.Epsilon,
		RelativeEpsilon: c.RelativeEpsilon,
		EpsilonBasis:    basis,
		HoleMode:        holes,
		Triangulator:    triangulator,
		NoCaps:          c.NoCaps,
		Verbose:         c.Verbose,
	}, nil
}

func (c *clipFlags) Plane() (meshclip.Plane, error) {
	normal, err := parseCoord(c.Normal)
	if err != nil {
		return meshclip.Plane{}, errors.Wrap(err, "parse normal")
	}
	point, err := parseCoord(c.Point)
	if err != nil {
		return meshclip.Plane{}, errors.Wrap(err, "parse point")
	}
	return meshclip.NewPlane(normal, point)
}

func parseCoord(s string) (model3d.Coord3D, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return model3d.Coord3D{}, errors.Errorf("expected x,y,z but got: %s", s)
	}
	var values [3]float64
	for i, part := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return model3d.Coord3D{}, errors.Wrapf(err, "parse component %d", i)
		}
		values[i] = x
	}
	return model3d.XYZ(values[0], values[1], values[2]), nil
}
