package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/meshclip/meshclip"
	"github.com/unixpickle/model3d/model3d"
	"github.com/unixpickle/model3d/render3d"
)

var (
	renderFlags     clipFlags
	renderGap       float64
	renderGridSize  int
	renderImageSize int
)

var renderCmd = &cobra.Command{
	Use:   "render <input> <output.png>",
	Short: "Render the two halves of a cut pulled apart",
	Args:  cobra.ExactArgs(2),
	Run:   runRender,
}

func init() {
	renderFlags.Add(renderCmd, true)
	f := renderCmd.Flags()
	f.Float64Var(&renderGap, "gap", 0.1, "distance to pull each half away from the plane, "+
		"relative to the mesh size")
	f.IntVar(&renderGridSize, "grid-size", 3, "grid size (used for rows and columns)")
	f.IntVar(&renderImageSize, "image-size", 300, "size of each image in the grid")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) {
	inputPath, outputPath := args[0], args[1]

	clipper, err := renderFlags.Clipper()
	essentials.Must(err)
	plane, err := renderFlags.Plane()
	essentials.Must(err)

	log.Println("Loading mesh...")
	mesh, err := meshclip.Load(inputPath)
	essentials.Must(err)

	log.Println("Cutting mesh...")
	res, err := clipper.Clip(mesh, plane)
	essentials.Must(err)
	logDiagnostics(res)

	log.Println("Creating renderable object...")
	gap := plane.Normal.Scale(renderGap * mesh.Max().Dist(mesh.Min()))
	combined := translated(res.Front, gap).TriangleSlice()
	combined = append(combined, translated(res.Back, gap.Scale(-1)).TriangleSlice()...)
	object := render3d.Objectify(model3d.MeshToCollider(model3d.NewMeshTriangles(combined)), nil)

	log.Println("Rendering...")
	essentials.Must(
		render3d.SaveRandomGrid(outputPath, object, renderGridSize, renderGridSize,
			renderImageSize, nil),
	)
}

func translated(m *meshclip.IndexedMesh, offset model3d.Coord3D) *model3d.Mesh {
	res := &meshclip.IndexedMesh{
		Coords: make([]model3d.Coord3D, len(m.Coords)),
		Faces:  m.Faces,
	}
	for i, c := range m.Coords {
		res.Coords[i] = c.Add(offset)
	}
	return res.Mesh()
}
