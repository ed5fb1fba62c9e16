package main

import (
	"github.com/spf13/cobra"

	"publist/src/cmd/publist/autocmd"
)

// newAutoCmd creates the "auto" command that discovers page title and bibliographies.
func newAutoCmd() *cobra.Command { return autocmd.New() }
