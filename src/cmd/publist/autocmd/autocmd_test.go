package autocmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"publist/src/internal/discover"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(old) })
	_ = os.Chdir(dir)
	return dir
}

func TestAutoCommandNoBibliography(t *testing.T) {
	chdirTemp(t)
	cmd := New()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := buf.String(); got != discover.NoBibliographyNotice+"\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestAutoCommandHighlightsPageTitle(t *testing.T) {
	chdirTemp(t)
	_ = os.WriteFile("index.qmd", []byte("---\ntitle: \"Jane Doe\"\n---\n"), 0o644)
	_ = os.WriteFile("pubs.bib", []byte("@article{a, author={Jane Doe and John Smith}, title={Paper}, year={2020}}"), 0o644)
	cmd := New()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "**Jane Doe**, John Smith (2020). **Paper.** *Preprint*.") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestAutoCommandDirAndCustomExtension(t *testing.T) {
	root := chdirTemp(t)
	page := filepath.Join(root, "people", "jane")
	if err := os.MkdirAll(page, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	_ = os.WriteFile(filepath.Join(page, "index.md"), []byte("title: Jane Doe\n"), 0o644)
	_ = os.WriteFile(filepath.Join(page, "pubs.bib"), []byte("@misc{a, author={Jane Doe}}"), 0o644)
	_ = os.WriteFile("publist.yaml", []byte("page_extension: md\n"), 0o644)
	cmd := New()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--dir", page})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "**Jane Doe** (n.d.)") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestAutoCommandMissingDirWarns(t *testing.T) {
	chdirTemp(t)
	cmd := New()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--dir", "nowhere"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.String() != discover.NoBibliographyNotice+"\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "warning: cannot read directory nowhere") {
		t.Fatalf("expected warning, got %q", errOut.String())
	}
}
