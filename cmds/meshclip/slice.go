package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/meshclip/meshclip"
	"github.com/unixpickle/model3d/model3d"
)

var (
	sliceFlags      clipFlags
	sliceAxis       string
	sliceThresholds []float64
	sliceCount      int
)

var sliceCmd = &cobra.Command{
	Use:   "slice <input> <output-dir>",
	Short: "Cut a mesh into closed slabs with parallel planes",
	Long: `Cut a mesh into slabs perpendicular to an axis. The cut positions are
either given explicitly with --thresholds, or spread evenly across the mesh
with --count.`,
	Args: cobra.ExactArgs(2),
	Run:  runSlice,
}

func init() {
	sliceFlags.Add(sliceCmd, false)
	sliceCmd.Flags().StringVar(&sliceAxis, "axis", "0,0,1", "slicing axis as x,y,z")
	sliceCmd.Flags().Float64SliceVar(&sliceThresholds, "thresholds", nil,
		"values of axis·x to cut at")
	sliceCmd.Flags().IntVar(&sliceCount, "count", 4, "number of slabs when no thresholds are given")
	rootCmd.AddCommand(sliceCmd)
}

func runSlice(cmd *cobra.Command, args []string) {
	inputPath, outputDir := args[0], args[1]

	clipper, err := sliceFlags.Clipper()
	essentials.Must(err)
	axis, err := parseCoord(sliceAxis)
	essentials.Must(err)

	log.Println("Loading mesh...")
	mesh, err := meshclip.Load(inputPath)
	essentials.Must(err)

	thresholds := sliceThresholds
	if len(thresholds) == 0 {
		if sliceCount < 1 {
			essentials.Die("slab count must be positive")
		}
		lo, hi := extent(mesh, axis)
		log.Printf("Mesh spans %f to %f along the axis", lo, hi)
		for i := 1; i < sliceCount; i++ {
			thresholds = append(thresholds, lo+(hi-lo)*float64(i)/float64(sliceCount))
		}
	}

	log.Printf("Cutting %d slabs...", len(thresholds)+1)
	slabs, err := clipper.Slice(mesh, axis, thresholds)
	essentials.Must(err)

	essentials.Must(os.MkdirAll(outputDir, 0755))
	for i, slab := range slabs {
		path := filepath.Join(outputDir, fmt.Sprintf("slab_%03d.stl", i))
		log.Printf("Saving %s (%d faces)...", path, len(slab.Faces))
		essentials.Must(meshclip.Save(path, slab))
	}
}

// extent computes the range of axis·x over the vertices of faces.
func extent(m *meshclip.IndexedMesh, axis model3d.Coord3D) (lo, hi float64) {
	first := true
	for _, f := range m.Faces {
		for _, idx := range f {
			d := axis.Dot(m.Coords[idx])
			if first || d < lo {
				lo = d
			}
			if first || d > hi {
				hi = d
			}
			first = false
		}
	}
	return
}
