package autocmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"publist/src/cmd/publist/settings"
	"publist/src/internal/discover"
	"publist/src/internal/stringsx"
)

// New returns the auto command which renders every bibliography next to the
// current page, highlighting the page title.
func New() *cobra.Command {
	var dir, highlight string
	var flags settings.Flags
	cmd := &cobra.Command{
		Use:          "auto",
		Short:        "Render every bibliography in a page directory, highlighting the page title",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.Resolve()
			if err != nil {
				return err
			}
			if _, err := os.Stat(dir); err != nil {
				// Still print the notice; the page build should not fail.
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: cannot read directory %s: %v\n", dir, err)
			}
			opts := discover.Options{
				PageExt:   cfg.PageExtension,
				BibExt:    cfg.BibExtension,
				Highlight: stringsx.FirstNonEmpty(highlight, cfg.Highlight),
			}
			return settings.Write(cmd.OutOrStdout(), cfg.Format, func(w io.Writer) {
				discover.RenderAuto(w, dir, opts)
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "Page directory to scan")
	cmd.Flags().StringVar(&highlight, "highlight", "", "Author name to emphasise (default: detected page title)")
	flags.Register(cmd)
	return cmd
}
