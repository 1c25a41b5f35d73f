package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/meshclip/meshclip"
)

var infoCmd = &cobra.Command{
	Use:   "info <input>",
	Short: "Display size and closedness of a mesh",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	log.Println("Loading mesh...")
	mesh, err := meshclip.Load(args[0])
	essentials.Must(err)

	boundary := mesh.BoundaryEdges()
	fmt.Println("Vertices:", len(mesh.Coords))
	fmt.Println("Faces:", len(mesh.Faces))
	fmt.Printf("Bounds: %v to %v\n", mesh.Min(), mesh.Max())
	fmt.Printf("Area: %f\n", mesh.Area())
	fmt.Printf("Volume: %f\n", mesh.Volume())
	fmt.Println("Boundary edges:", len(boundary))
	fmt.Println("Closed:", len(boundary) == 0)
}
