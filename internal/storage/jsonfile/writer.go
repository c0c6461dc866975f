// Package jsonfile writes the result bundle to its output file.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"ekantipur-scraper/internal/checksum"
	"ekantipur-scraper/internal/scraper"
)

// Writer replaces a single JSON file on every run.
type Writer struct {
	path     string
	checksum *checksum.Generator
}

// Result describes the file that was written.
type Result struct {
	Path     string
	Bytes    int
	CheckSum string
}

func NewWriter(path string) *Writer {
	return &Writer{
		path:     path,
		checksum: checksum.NewGenerator(),
	}
}

// Encode renders the bundle as two-space indented JSON. Non-ASCII text and
// characters like '&' in URLs are written literally.
func Encode(bundle *scraper.ResultBundle) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bundle); err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return buf.Bytes(), nil
}

// Write replaces the output file. The content goes to a temp file in the
// same directory first, so a failed write leaves the previous file intact.
func (w *Writer) Write(bundle *scraper.ResultBundle) (*Result, error) {
	data, err := Encode(bundle)
	if err != nil {
		return nil, err
	}

	// temp file must live next to the target for rename to be atomic
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".output-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	// write, flush to disk, then swap into place
	if _, err := tmp.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return nil, fmt.Errorf("failed to sync output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close output: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return nil, fmt.Errorf("failed to set output permissions: %w", err)
	}
	if err := os.Rename(tmpName, w.path); err != nil {
		return nil, fmt.Errorf("failed to replace %s: %w", w.path, err)
	}
	committed = true

	return &Result{
		Path:     w.path,
		Bytes:    len(data),
		CheckSum: w.checksum.GenerateContentHash(data),
	}, nil
}
