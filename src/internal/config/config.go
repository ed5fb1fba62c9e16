package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no --config is given.
const DefaultFile = "publist.yaml"

const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Config holds the optional settings read from publist.yaml.
type Config struct {
	PageExtension string `yaml:"page_extension"`
	BibExtension  string `yaml:"bib_extension"`
	Highlight     string `yaml:"highlight"`
	Format        string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{PageExtension: ".qmd", BibExtension: ".bib", Format: FormatMarkdown}
}

// Load reads path over the defaults. Keys absent from the file keep their default.
func Load(path string) (Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file (%s): %w", path, err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

// LoadOptional is Load, except a missing file yields the defaults.
func LoadOptional(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Validate rejects empty extensions and unknown output formats.
func (c Config) Validate() error {
	if strings.TrimSpace(c.PageExtension) == "" {
		return errors.New("page_extension is required")
	}
	if strings.TrimSpace(c.BibExtension) == "" {
		return errors.New("bib_extension is required")
	}
	switch c.Format {
	case FormatMarkdown, FormatHTML:
	default:
		return fmt.Errorf("invalid format: %s", c.Format)
	}
	return nil
}

// normalize lower-cases the format and gives extensions a leading dot.
func (c *Config) normalize() {
	c.PageExtension = NormalizeExt(c.PageExtension)
	c.BibExtension = NormalizeExt(c.BibExtension)
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	c.Highlight = strings.TrimSpace(c.Highlight)
}

// NormalizeExt turns "bib" or " .bib " into ".bib"; blank stays blank.
func NormalizeExt(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}
