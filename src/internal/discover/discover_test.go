package discover

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestPageTitle(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "index.qmd", "---\nsubtitle: nope\n  title: \"Jane Doe\"  \nauthor: x\n---\ntitle: later\n")
	got, ok := PageTitle(dir, ".qmd")
	if !ok || got != "Jane Doe" {
		t.Fatalf("PageTitle: got %q %v", got, ok)
	}
}

func TestTitleFromQuotesAndColons(t *testing.T) {
	cases := map[string]string{
		"title: 'Jane Doe'\n":       "Jane Doe",
		"title:Jane Doe\n":          "Jane Doe",
		"title: A: B\n":             "A: B",
		"title: \"Jane\" Doe\"\n":   "Jane\" Doe",
		"title: \"\"Jane Doe\"\"\n": "\"Jane Doe\"",
	}
	for in, want := range cases {
		got, ok := titleFrom(strings.NewReader(in))
		if !ok || got != want {
			t.Fatalf("titleFrom(%q): want %q, got %q (%v)", in, want, got, ok)
		}
	}
	if _, ok := titleFrom(strings.NewReader("subtitle: x\nname: y\n")); ok {
		t.Fatalf("expected no title")
	}
}

func TestTitleFromAfterLongLine(t *testing.T) {
	in := strings.Repeat("x", 2<<20) + "\ntitle: Jane Doe"
	got, ok := titleFrom(strings.NewReader(in))
	if !ok || got != "Jane Doe" {
		t.Fatalf("titleFrom after long line: got %q (%v)", got, ok)
	}
}

func TestPageTitleAbsent(t *testing.T) {
	dir := t.TempDir()
	if _, ok := PageTitle(dir, ".qmd"); ok {
		t.Fatalf("expected no title without page files")
	}
	write(t, dir, "notes.qmd", "no front matter here\n")
	if _, ok := PageTitle(dir, ".qmd"); ok {
		t.Fatalf("expected no title without title line")
	}
	if _, ok := PageTitle(filepath.Join(dir, "missing"), ".qmd"); ok {
		t.Fatalf("expected no title for missing dir")
	}
}

func TestBibFilesSkipsHiddenAndDirs(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.bib", "")
	write(t, dir, "b.bib", "")
	write(t, dir, ".hidden.bib", "")
	write(t, dir, "c.txt", "")
	if err := os.Mkdir(filepath.Join(dir, "d.bib"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	got, err := BibFiles(dir, ".bib")
	if err != nil {
		t.Fatalf("BibFiles: %v", err)
	}
	sort.Strings(got) // listing order is not guaranteed
	want := []string{filepath.Join(dir, "a.bib"), filepath.Join(dir, "b.bib")}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("BibFiles: want %v, got %v", want, got)
	}
}

func TestBibFilesCurrentDirUsesBareNames(t *testing.T) {
	dir := t.TempDir()
	old, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(old) })
	_ = os.Chdir(dir)
	write(t, ".", "pubs.bib", "")
	got, err := BibFiles(".", ".bib")
	if err != nil || len(got) != 1 || got[0] != "pubs.bib" {
		t.Fatalf("BibFiles(.): got %v %v", got, err)
	}
}

func TestRenderAutoNoBibliography(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "index.qmd", "title: Jane Doe\n")
	var buf bytes.Buffer
	RenderAuto(&buf, dir, Options{PageExt: ".qmd", BibExt: ".bib"})
	if got := buf.String(); got != NoBibliographyNotice+"\n" {
		t.Fatalf("RenderAuto empty: got %q", got)
	}
}

func TestRenderAutoHighlightsTitleAndContainsFailures(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "index.qmd", "---\ntitle: \"Jane Doe\"\n---\n")
	write(t, dir, "good.bib", "@article{a, author={Jane Doe and John Smith}, title={Paper}, year={2020}}")
	write(t, dir, "bad.bib", "@article{a, title = {broken")
	var buf bytes.Buffer
	RenderAuto(&buf, dir, Options{PageExt: ".qmd", BibExt: ".bib"})
	out := buf.String()
	if !strings.Contains(out, "**Jane Doe**, John Smith (2020). **Paper.**") {
		t.Fatalf("expected highlighted entry: %q", out)
	}
	if !strings.Contains(out, "**Error parsing bib file:**") {
		t.Fatalf("expected parse notice for bad.bib: %q", out)
	}
}

func TestRenderAutoHighlightOverride(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "index.qmd", "title: Jane Doe\n")
	write(t, dir, "pubs.bib", "@misc{a, author={Jane Doe and John Smith}}")
	var buf bytes.Buffer
	RenderAuto(&buf, dir, Options{PageExt: ".qmd", BibExt: ".bib", Highlight: "John Smith"})
	if out := buf.String(); !strings.Contains(out, "Jane Doe, **John Smith**") {
		t.Fatalf("expected override highlight: %q", out)
	}
}
