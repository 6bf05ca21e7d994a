// Package fixture materializes txtar archives as source trees for tests.
package fixture

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// Extract writes every file of the txtar archive below a fresh temporary
// directory and returns that directory.
func Extract(tb testing.TB, archive string) string {
	tb.Helper()

	root := tb.TempDir()
	ar := txtar.Parse([]byte(strings.TrimLeft(archive, "\n")))

	for _, f := range ar.Files {
		path := filepath.Join(root, filepath.FromSlash(f.Name))

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			tb.Fatalf("failed to create directory for %s: %v", f.Name, err)
		}

		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			tb.Fatalf("failed to write %s: %v", f.Name, err)
		}
	}

	return root
}

// Read returns the content of a file below root, failing the test when it
// does not exist.
func Read(tb testing.TB, root, name string) string {
	tb.Helper()

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	if err != nil {
		tb.Fatalf("failed to read %s: %v", name, err)
	}

	return string(data)
}

// Exists reports whether a file exists below root.
func Exists(root, name string) bool {
	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(name)))
	return err == nil
}
