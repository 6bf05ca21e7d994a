package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"view-generator/internal/config"
)

// ConfigCommand groups genconfig subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Write a genconfig template"`
}

// ConfigInit scaffolds a genconfig file.
type ConfigInit struct {
	Format  string   `help:"Output format" enum:"json,yaml,toml" default:"json"`
	Output  string   `help:"Destination file path (defaults to genconfig.<format> in the root)" type:"path"`
	Folders []string `help:"Folders to scan" default:"."`
	Exclude []string `help:"Folders to skip"`
	Force   bool     `help:"Overwrite if the file already exists"`
}

// Run writes the template.
func (c *ConfigInit) Run(g *config.Global) error {
	dest := c.Output
	if dest == "" {
		dest = filepath.Join(g.Root, "genconfig."+c.Format)
	}

	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}

	cfg := config.Default()
	cfg.Check.Folders = c.Folders
	cfg.Check.Exclude = c.Exclude

	data, err := config.Marshal(cfg, c.Format)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dest), err)
	}

	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	return nil
}
