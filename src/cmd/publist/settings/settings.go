// Package settings resolves configuration shared by the publist commands and
// writes their output in the selected format.
package settings

import (
	"bytes"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"publist/src/internal/config"
	"publist/src/internal/markup"
)

// Flags are the configuration flags every command accepts.
type Flags struct {
	ConfigPath string
	Format     string
}

// Register adds --config and --format to cmd.
func (f *Flags) Register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ConfigPath, "config", "", "Config file (default ./"+config.DefaultFile+" when present)")
	cmd.Flags().StringVar(&f.Format, "format", "", "Output format: markdown or html (overrides config)")
}

// Resolve loads the config file and applies flag overrides. An explicit
// --config must exist; the default file is optional.
func (f Flags) Resolve() (config.Config, error) {
	var (
		c   config.Config
		err error
	)
	if f.ConfigPath != "" {
		c, err = config.Load(f.ConfigPath)
	} else {
		c, err = config.LoadOptional(config.DefaultFile)
	}
	if err != nil {
		return config.Config{}, err
	}
	if f.Format != "" {
		c.Format = strings.ToLower(strings.TrimSpace(f.Format))
	}
	if err := c.Validate(); err != nil {
		return config.Config{}, err
	}
	return c, nil
}

// Write runs render against w, converting its Markdown to HTML first when
// format is html.
func Write(w io.Writer, format string, render func(io.Writer)) error {
	if format != config.FormatHTML {
		render(w)
		return nil
	}
	var buf bytes.Buffer
	render(&buf)
	out, err := markup.ToHTML(buf.Bytes())
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
