package main

import (
	"github.com/spf13/cobra"

	"publist/src/cmd/publist/rendercmd"
)

// newRenderCmd creates the "render" command for a single bibliography file.
func newRenderCmd() *cobra.Command { return rendercmd.New() }
