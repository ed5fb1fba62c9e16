// Package discover finds the page title and bibliography files in a page
// directory and renders every bibliography it finds.
//
// Directory entries are visited in the order the filesystem returns them;
// nothing is sorted, so with several candidates the choice follows the host's
// listing order.
package discover

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"publist/src/internal/citation"
	"publist/src/internal/stringsx"
)

// NoBibliographyNotice is printed when a directory holds no bibliography files.
const NoBibliographyNotice = "*No bibliography found in this folder.*"

const titleKey = "title:"

// Options controls RenderAuto.
type Options struct {
	PageExt   string // page-source extension, e.g. ".qmd"
	BibExt    string // bibliography extension, e.g. ".bib"
	Highlight string // when set, used instead of the detected page title
}

// PageTitle returns the title declared by the first page-source file in dir.
// Only that file is read; a missing title line is not retried on other files.
func PageTitle(dir, ext string) (string, bool) {
	page, ok := firstMatch(dir, ext)
	if !ok {
		return "", false
	}
	f, err := os.Open(page)
	if err != nil {
		return "", false
	}
	defer f.Close()
	return titleFrom(f)
}

// titleFrom scans for the first line starting with "title:" once trimmed.
func titleFrom(r io.Reader) (string, bool) {
	br := bufio.NewReader(r)
	for {
		raw, err := br.ReadString('\n')
		line := strings.TrimSpace(raw)
		if strings.HasPrefix(line, titleKey) {
			_, v, _ := strings.Cut(line, ":")
			return stringsx.Unquote(strings.TrimSpace(v)), true
		}
		if err != nil {
			return "", false
		}
	}
}

// BibFiles lists the bibliography files in dir in directory order.
func BibFiles(dir, ext string) ([]string, error) {
	var out []string
	err := scan(dir, ext, func(path string) bool {
		out = append(out, path)
		return true
	})
	return out, err
}

// RenderAuto renders every bibliography file in dir to w, highlighting the
// page title (or opts.Highlight). Per-file failures become inline notices.
func RenderAuto(w io.Writer, dir string, opts Options) {
	highlight := opts.Highlight
	if highlight == "" {
		highlight, _ = PageTitle(dir, opts.PageExt)
	}
	bibs, _ := BibFiles(dir, opts.BibExt)
	if len(bibs) == 0 {
		_, _ = fmt.Fprintln(w, NoBibliographyNotice)
		return
	}
	for _, bib := range bibs {
		citation.Render(w, bib, highlight)
	}
}

// firstMatch stops at the first candidate instead of listing the whole directory.
func firstMatch(dir, ext string) (string, bool) {
	var found string
	_ = scan(dir, ext, func(path string) bool {
		found = path
		return false
	})
	return found, found != ""
}

// scan calls visit for each non-hidden, non-directory entry of dir ending in
// ext, in directory order, until visit returns false. Paths are joined with
// dir unless dir is "" or ".".
func scan(dir, ext string, visit func(path string) bool) error {
	open := dir
	if open == "" {
		open = "."
	}
	d, err := os.Open(open)
	if err != nil {
		return err
	}
	defer d.Close()
	for {
		// File.ReadDir keeps directory order; os.ReadDir would sort.
		ents, err := d.ReadDir(64)
		for _, de := range ents {
			name := de.Name()
			if strings.HasPrefix(name, ".") || de.IsDir() || !strings.HasSuffix(name, ext) {
				continue
			}
			path := name
			if dir != "" && dir != "." {
				path = filepath.Join(dir, name)
			}
			if !visit(path) {
				return nil
			}
		}
		if err != nil && err != io.EOF {
			return err
		}
		if err == io.EOF || len(ents) == 0 {
			return nil
		}
	}
}
