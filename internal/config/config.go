// Package config loads the generator configuration file (genconfig) and
// defines the command-line layout.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"view-generator/internal/analyze"
)

// DefaultGenConfig is the genconfig file looked up in the root directory.
const DefaultGenConfig = "genconfig.json"

// ErrUnknownFormat is returned for genconfig files with an unsupported extension.
var ErrUnknownFormat = errors.New("unsupported genconfig format")

// GenConfig selects the source files scanned for annotated classes.
type GenConfig struct {
	Check      Check    `json:"check" yaml:"check" toml:"check"`
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty" toml:"extensions,omitempty"`
}

// Check lists the folders to scan and the folders to skip, relative to the root.
type Check struct {
	Folders []string `json:"folders" yaml:"folders" toml:"folders"`
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty" toml:"exclude,omitempty"`
}

// Default returns the configuration used when no genconfig file exists:
// every .ts file below the root.
func Default() *GenConfig {
	return &GenConfig{
		Check:      Check{Folders: []string{"."}},
		Extensions: slices.Clone(analyze.DefaultExtensions),
	}
}

// Format returns the document format of a genconfig path: json, yaml or toml.
func Format(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", "":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	case ".toml":
		return "toml", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Load reads a genconfig file, decoding it by extension.
func Load(path string) (*GenConfig, error) {
	format, err := Format(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read genconfig: %w", err)
	}

	cfg := &GenConfig{}

	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, cfg)
	case "toml":
		err = toml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode genconfig %s: %w", path, err)
	}

	if len(cfg.Check.Folders) == 0 {
		return nil, fmt.Errorf("genconfig %s: check.folders is empty", path)
	}

	return cfg, nil
}

// LoadOrDefault loads path, falling back to Default when path is the
// implicit genconfig and does not exist.
func LoadOrDefault(path string, explicit bool) (*GenConfig, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !explicit {
		return Default(), nil
	}

	return Load(path)
}

// Marshal encodes cfg in the given format.
func Marshal(cfg *GenConfig, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}

		return append(data, '\n'), nil
	case "yaml":
		return yaml.Marshal(cfg)
	case "toml":
		return toml.Marshal(*cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// SourceFiles returns the source files selected by cfg below root.
func (c *GenConfig) SourceFiles(root string) ([]string, error) {
	return analyze.Discover(root, c.Check.Folders, c.Check.Exclude, c.Extensions)
}
