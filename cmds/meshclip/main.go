package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "meshclip",
	Short: "Cut closed triangle meshes with planes",
	Long: `meshclip bisects closed triangle meshes with arbitrary planes and fills
the cross-section with cap triangles, so that both halves stay closed.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
