package rendercmd

import (
	"io"

	"github.com/spf13/cobra"

	"publist/src/cmd/publist/settings"
	"publist/src/internal/citation"
	"publist/src/internal/stringsx"
)

// New returns the render command which prints one bibliography file as a citation list.
func New() *cobra.Command {
	var highlight string
	var flags settings.Flags
	cmd := &cobra.Command{
		Use:          "render <file.bib>",
		Short:        "Print a bibliography file as a year-descending Markdown citation list",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.Resolve()
			if err != nil {
				return err
			}
			path := args[0]
			name := stringsx.FirstNonEmpty(highlight, cfg.Highlight)
			return settings.Write(cmd.OutOrStdout(), cfg.Format, func(w io.Writer) {
				citation.Render(w, path, name)
			})
		},
	}
	cmd.Flags().StringVar(&highlight, "highlight", "", "Author name to emphasise in bold")
	flags.Register(cmd)
	return cmd
}
