// Package citation renders a bibliography file as a Markdown publication list.
package citation

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"publist/src/internal/bibtex"
	"publist/src/internal/doi"
	"publist/src/internal/schema"
	"publist/src/internal/stringsx"
)

// MissingFileError means the bibliography path does not name a readable file.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("could not find bibliography file: %s", e.Path)
}

// ParseError wraps any failure to read or parse an existing bibliography file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string { return e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// Load parses the bibliography at path.
func Load(path string) ([]schema.Entry, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, &MissingFileError{Path: path}
	}
	if fi.IsDir() {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("%s is a directory", path)}
	}
	bib, err := bibtex.ParseFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingFileError{Path: path}
		}
		return nil, &ParseError{Path: path, Err: err}
	}
	return bib.Entries, nil
}

// Render writes the Markdown list for the bibliography at path to w. Failures
// are written to w as a one-line Markdown notice and never returned.
func Render(w io.Writer, path, highlight string) {
	entries, err := Load(path)
	if err != nil {
		_, _ = fmt.Fprintln(w, Notice(err))
		return
	}
	SortEntries(entries)
	for _, e := range entries {
		_, _ = fmt.Fprintln(w, Format(e, highlight))
	}
}

// Notice turns a Load error into the Markdown line shown in place of the list.
func Notice(err error) string {
	var me *MissingFileError
	if errors.As(err, &me) {
		return fmt.Sprintf("**Error:** Could not find bibliography file: `%s`", me.Path)
	}
	return fmt.Sprintf("**Error parsing bib file:** %s", err)
}

// SortEntries orders entries by SortYear, newest first. Years compare as
// strings; equal years keep file order.
func SortEntries(entries []schema.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SortYear() > entries[j].SortYear()
	})
}

// Format renders one entry as a blank-line padded ordered-list item:
//
//	\n1. <authors> (<year>). **<title>.** *<venue>*.<doi link>\n
func Format(e schema.Entry, highlight string) string {
	title := stringsx.StripBraces(e.TitleOrDefault())
	return fmt.Sprintf("\n1. %s (%s). **%s.** *%s*.%s\n",
		Authors(e, highlight), e.YearOrDefault(), title, e.Venue(), doi.Link(e.DOI()))
}

// Authors joins the display names of the entry's authors with ", ", bolding
// every name that contains highlight.
func Authors(e schema.Entry, highlight string) string {
	out := make([]string, 0, len(e.Authors))
	for _, p := range e.Authors {
		name := p.Display()
		if highlight != "" && strings.Contains(name, highlight) {
			name = "**" + name + "**"
		}
		out = append(out, name)
	}
	return strings.Join(out, ", ")
}
