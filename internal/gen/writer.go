package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Writer stores generated files.
type Writer interface {
	WriteFile(path string, content []byte) error
}

// FSWriter writes files to disk, creating parent directories.
type FSWriter struct{}

// WriteFile implements Writer.
func (FSWriter) WriteFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := os.WriteFile(path, content, filePerm); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}

	return nil
}

// MemoryWriter keeps written files in memory.
type MemoryWriter struct {
	Files map[string]string
}

// NewMemoryWriter creates an empty MemoryWriter.
func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{Files: map[string]string{}}
}

// WriteFile implements Writer.
func (w *MemoryWriter) WriteFile(path string, content []byte) error {
	w.Files[path] = string(content)
	return nil
}

// Paths returns the written paths in sorted order.
func (w *MemoryWriter) Paths() []string {
	paths := make([]string, 0, len(w.Files))
	for p := range w.Files {
		paths = append(paths, p)
	}

	sort.Strings(paths)

	return paths
}
