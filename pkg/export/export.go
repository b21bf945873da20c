// Package export writes documents out of the notepad as standalone .md files.
// It only reads document state; it never mutates the store.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/hikmetgulsesli/markdown-notepad/pkg/core"
)

// Exporter writes documents into Dir, one markdown file per document.
type Exporter struct {
	Dir string
}

// Filename derives a filesystem-safe name for a document. Falls back to the
// document id when the name sanitizes to nothing.
func Filename(doc core.Document) string {
	name := strings.TrimSpace(doc.Name)
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"\x00", "",
	)
	name = strings.Trim(replacer.Replace(name), ". ")
	if name == "" {
		name = doc.ID
	}
	return name + ".md"
}

// WriteDocument writes one document and returns the created path.
func (e *Exporter) WriteDocument(doc core.Document) (string, error) {
	if err := os.MkdirAll(e.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(e.Dir, Filename(doc))
	if err := os.WriteFile(path, []byte(doc.Content), 0644); err != nil {
		return "", fmt.Errorf("failed to export %q: %w", doc.Name, err)
	}
	return path, nil
}

// Match reports whether the document name matches the doublestar pattern.
func Match(pattern string, doc core.Document) (bool, error) {
	ok, err := doublestar.Match(pattern, doc.Name)
	if err != nil {
		return false, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return ok, nil
}

// WriteMatching exports every document whose name matches pattern and
// returns the created paths in input order.
func (e *Exporter) WriteMatching(docs []core.Document, pattern string) ([]string, error) {
	var paths []string
	for _, doc := range docs {
		ok, err := Match(pattern, doc)
		if err != nil {
			return paths, err
		}
		if !ok {
			continue
		}
		path, err := e.WriteDocument(doc)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
