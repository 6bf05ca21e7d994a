package cmd

import (
	"os"
	"path/filepath"
	"strings"
)

// ConfigCandidatePaths returns the flag defaults files tried per format.
// A user path is routed to the loader matching its extension and comes
// first; the working directory and the user config directory follow.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	add := func(slice *[]string, p string) { *slice = append(*slice, p) }

	if userPath != "" {
		switch strings.ToLower(filepath.Ext(userPath)) {
		case ".yaml", ".yml":
			add(&yamlPaths, userPath)
		case ".toml":
			add(&tomlPaths, userPath)
		default:
			add(&jsonPaths, userPath)
		}
	}

	var dirs []string

	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}

	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "view-generator"))
	}

	for _, dir := range dirs {
		add(&jsonPaths, filepath.Join(dir, "view-generator.json"))
		add(&yamlPaths, filepath.Join(dir, "view-generator.yaml"))
		add(&yamlPaths, filepath.Join(dir, "view-generator.yml"))
		add(&tomlPaths, filepath.Join(dir, "view-generator.toml"))
	}

	return jsonPaths, yamlPaths, tomlPaths
}

// FindUserConfig returns the --config-file argument, or VIEWGEN_CONFIG_FILE.
func FindUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config-file=") {
			return a[len("--config-file="):]
		}

		if a == "--config-file" && i+1 < len(args) {
			return args[i+1]
		}
	}

	return os.Getenv("VIEWGEN_CONFIG_FILE")
}
