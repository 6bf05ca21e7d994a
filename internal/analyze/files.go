package analyze

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultExtensions are the source file extensions scanned when none are configured.
var DefaultExtensions = []string{".ts"}

// skippedDirs are never descended into.
var skippedDirs = []string{"node_modules", ".git"}

// Discover walks the include folders below root and returns the source
// files found as absolute paths. Folders are walked in the configured
// order, each one lexically; a file reached twice keeps its first
// position. Excluded folders and
// declaration files (*.d.ts) are skipped. Relative include and exclude
// entries are resolved against root.
func Discover(root string, include, exclude, extensions []string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}

	if len(include) == 0 {
		include = []string{"."}
	}

	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	excluded := make([]string, 0, len(exclude))
	for _, e := range exclude {
		excluded = append(excluded, resolveAgainst(absRoot, e))
	}

	seen := make(map[string]bool)

	var files []string

	for _, inc := range include {
		dir := resolveAgainst(absRoot, inc)

		walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != dir && (slices.Contains(skippedDirs, d.Name()) || slices.Contains(excluded, path)) {
					return filepath.SkipDir
				}

				return nil
			}

			if !hasExtension(path, extensions) || strings.HasSuffix(path, ".d.ts") || isExcluded(path, excluded) {
				return nil
			}

			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}

			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", dir, walkErr)
		}
	}

	return files, nil
}

func resolveAgainst(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}

	return filepath.Join(root, filepath.FromSlash(p))
}

func hasExtension(path string, extensions []string) bool {
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		if strings.HasSuffix(path, ext) {
			return true
		}
	}

	return false
}

func isExcluded(path string, excluded []string) bool {
	for _, e := range excluded {
		if path == e || strings.HasPrefix(path, e+string(filepath.Separator)) {
			return true
		}
	}

	return false
}
