package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "publist",
	Short: "Render BibTeX publication lists as Markdown for static-site pages",
}

func execute() error {
	// Attach subcommands
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newAutoCmd())
	return rootCmd.Execute()
}

func main() {
	if err := execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
