package plan

import (
	"path/filepath"
	"strings"

	"view-generator/internal/common"
)

// resolveDir resolves a directory from a directive against the root.
func resolveDir(root, dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}

	return filepath.Join(root, filepath.FromSlash(dir))
}

// viewFilename returns the absolute path of the view file for a model.
func viewFilename(outDir, model string) string {
	return filepath.Join(outDir, common.LowerFirst(model)+".ts")
}

// mapperModule returns the module path, without extension, of the
// mapper generated for a view type in mapperDir.
func mapperModule(mapperDir, typ string) string {
	return filepath.Join(mapperDir, common.LowerFirst(typ)+"Mapper")
}

// relativeSpecifier returns the import specifier of module as seen from
// fromDir, always starting with "./" or "../" and using forward slashes.
func relativeSpecifier(fromDir, module string) string {
	rel, err := filepath.Rel(fromDir, module)
	if err != nil {
		return filepath.ToSlash(module)
	}

	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}

	return rel
}

// trimModule strips a ".ts" extension and maps ".../index" to its directory.
func trimModule(path string) string {
	path = strings.TrimSuffix(path, ".ts")
	if filepath.Base(path) == "index" {
		return filepath.Dir(path)
	}

	return path
}
