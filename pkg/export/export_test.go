package export_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hikmetgulsesli/markdown-notepad/pkg/core"
	"github.com/hikmetgulsesli/markdown-notepad/pkg/export"
)

func TestFilename(t *testing.T) {
	cases := []struct {
		name string
		doc  core.Document
		want string
	}{
		{"Plain", core.Document{Name: "Meeting Notes"}, "Meeting Notes.md"},
		{"Separators Replaced", core.Document{Name: "a/b\\c:d"}, "a-b-c-d.md"},
		{"Falls Back To ID", core.Document{ID: "doc-1", Name: "  . "}, "doc-1.md"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := export.Filename(tc.doc); got != tc.want {
				t.Errorf("Filename = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestWriteDocument(t *testing.T) {
	dir := t.TempDir()
	e := &export.Exporter{Dir: filepath.Join(dir, "out")}

	path, err := e.WriteDocument(core.Document{ID: "x", Name: "Note", Content: "# hi\n"})
	if err != nil {
		t.Fatalf("WriteDocument failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export failed: %v", err)
	}
	if string(data) != "# hi\n" {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestWriteMatching(t *testing.T) {
	docs := []core.Document{
		{ID: "1", Name: "daily/monday", Content: "a"},
		{ID: "2", Name: "daily/friday", Content: "b"},
		{ID: "3", Name: "ideas", Content: "c"},
	}

	t.Run("Glob Selects Subset", func(t *testing.T) {
		e := &export.Exporter{Dir: t.TempDir()}
		paths, err := e.WriteMatching(docs, "daily/*")
		if err != nil {
			t.Fatalf("WriteMatching failed: %v", err)
		}
		if len(paths) != 2 {
			t.Fatalf("expected 2 exports, got %d", len(paths))
		}
	})

	t.Run("Invalid Pattern Reports Error", func(t *testing.T) {
		e := &export.Exporter{Dir: t.TempDir()}
		if _, err := e.WriteMatching(docs, "["); err == nil {
			t.Error("expected invalid pattern error")
		}
	})
}
