package analyze

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of parsed files kept by a Loader.
const DefaultCacheSize = 256

// Loader reads and parses source files. Parsed files are cached by
// absolute path, so a module referenced by many models is parsed once.
type Loader struct {
	parser Parser
	cache  *lru.Cache[string, *File]
}

// NewLoader creates a Loader backed by an LRU cache of the given size.
func NewLoader(p Parser, size int) (*Loader, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	cache, err := lru.New[string, *File](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create file cache: %w", err)
	}

	return &Loader{parser: p, cache: cache}, nil
}

// ParseFile reads and parses the file at path.
func (l *Loader) ParseFile(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	if f, ok := l.cache.Get(abs); ok {
		return f, nil
	}

	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", abs, err)
	}

	f, err := l.parser.Parse(abs, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", abs, err)
	}

	l.cache.Add(abs, f)

	return f, nil
}

// ModuleCandidates returns the files tried, in order, for a module path
// given without extension.
func ModuleCandidates(modulePath string) []string {
	return []string{
		modulePath + ".ts",
		filepath.Join(modulePath, "index.ts"),
	}
}

// ResolveModule loads the module at modulePath by trying "<path>.ts" and
// then "<path>/index.ts". The boolean is false when neither file exists.
// A file that exists but cannot be read or parsed is an error.
func (l *Loader) ResolveModule(modulePath string) (*File, bool, error) {
	for _, candidate := range ModuleCandidates(modulePath) {
		info, err := os.Stat(candidate)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
				continue
			}

			return nil, false, fmt.Errorf("failed to stat %s: %w", candidate, err)
		}

		if info.IsDir() {
			continue
		}

		f, err := l.ParseFile(candidate)
		if err != nil {
			return nil, false, err
		}

		return f, true, nil
	}

	return nil, false, nil
}

// Len returns the number of cached files.
func (l *Loader) Len() int {
	return l.cache.Len()
}
