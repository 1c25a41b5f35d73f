package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/meshclip/meshclip"
)

var splitFlags clipFlags

var splitCmd = &cobra.Command{
	Use:   "split <input> <front> <back>",
	Short: "Cut a mesh into two closed halves",
	Long: `Cut a mesh with a plane and save the half in front of the plane and the
half behind it. Files ending in .stl are read and written as STL, and any
other extension uses the compact binary format.`,
	Args: cobra.ExactArgs(3),
	Run:  runSplit,
}

func init() {
	splitFlags.Add(splitCmd, true)
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) {
	inputPath, frontPath, backPath := args[0], args[1], args[2]

	clipper, err := splitFlags.Clipper()
	essentials.Must(err)
	plane, err := splitFlags.Plane()
	essentials.Must(err)

	log.Println("Loading mesh...")
	mesh, err := meshclip.Load(inputPath)
	essentials.Must(err)

	log.Println("Cutting mesh...")
	res, err := clipper.Clip(mesh, plane)
	essentials.Must(err)
	logDiagnostics(res)

	log.Println("Saving halves...")
	essentials.Must(meshclip.Save(frontPath, res.Front))
	essentials.Must(meshclip.Save(backPath, res.Back))
}

func logDiagnostics(res *meshclip.Result) {
	d := res.Diagnostics
	log.Printf("Front: %d faces, Back: %d faces", len(res.Front.Faces), len(res.Back.Faces))
	log.Printf("Loops: %d (from %d segments, epsilon %g)", d.Loops, d.Segments, d.Epsilon)
	log.Printf("Cap area: %f", d.CapArea)
	if d.Coplanar > 0 || d.Collapsed > 0 {
		log.Printf("Dropped faces: %d coplanar, %d collapsed", d.Coplanar, d.Collapsed)
	}
	if d.DiscardedSegments > 0 || d.DegenerateCaps > 0 || d.UncappedLoops > 0 {
		log.Printf("Anomalies: %d discarded segments, %d degenerate caps, %d uncapped loops",
			d.DiscardedSegments, d.DegenerateCaps, d.UncappedLoops)
	}
}
