package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/meshclip/internal/solids"
	"github.com/unixpickle/meshclip/meshclip"
	"github.com/unixpickle/model3d/model3d"
)

var (
	generateSize   string
	generateRadius float64
	generateCells  int
)

var generateCmd = &cobra.Command{
	Use:       "generate <box|cylinder|tube> <output>",
	Short:     "Generate a closed test solid",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"box", "cylinder", "tube"},
	Run:       runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&generateSize, "size", "1,1,1", "bounding box size as x,y,z")
	f.Float64Var(&generateRadius, "radius", 0.25, "radius of cylinders and holes")
	f.IntVar(&generateCells, "cells", solids.DefaultCells, "marching cubes resolution")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) {
	kind, outputPath := args[0], args[1]
	size, err := parseCoord(generateSize)
	essentials.Must(err)

	log.Printf("Generating %s...", kind)
	var mesh *model3d.Mesh
	switch kind {
	case "box":
		mesh, err = solids.Box(size, generateCells)
	case "cylinder":
		mesh, err = solids.Cylinder(size.Z, generateRadius, generateCells)
	case "tube":
		mesh, err = solids.Tube(size, generateRadius, generateCells)
	default:
		essentials.Die("unknown solid: " + kind)
	}
	essentials.Must(err)

	log.Printf("Saving %d triangles...", mesh.NumTriangles())
	essentials.Must(meshclip.Save(outputPath, meshclip.NewIndexedMesh(mesh)))
}
