// Package cmd implements the command-line commands.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"view-generator/internal/config"
	"view-generator/internal/diagnostic"
	"view-generator/internal/plan"
)

// CLI is the command-line layout parsed by kong.
type CLI struct {
	Global config.Global `embed:""`

	Log        config.Log `embed:"" prefix:"log-"`
	ConfigFile string     `name:"config-file" help:"Flag defaults file (json, yaml or toml)" type:"path" env:"VIEWGEN_CONFIG_FILE"`

	Gen    Gen           `cmd:"" default:"withargs" help:"Generate view and mapper files"`
	Check  Check         `cmd:"" help:"Report diagnostics without writing files"`
	Config ConfigCommand `cmd:"" help:"Manage genconfig files"`
}

// buildPlan discovers the configured sources below the root and runs the
// pipeline over them.
func buildPlan(ctx context.Context, g *config.Global, strict bool, logger *slog.Logger) (*plan.Plan, error) {
	root, err := filepath.Abs(g.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	path, explicit := g.GenConfig, g.GenConfig != ""
	if !explicit {
		path = filepath.Join(root, config.DefaultGenConfig)
	}

	cfg, err := config.LoadOrDefault(path, explicit)
	if err != nil {
		return nil, err
	}

	files, err := cfg.SourceFiles(root)
	if err != nil {
		return nil, err
	}

	logger.Info("sources discovered", "root", root, "files", len(files))

	opts := plan.Options{Root: root, Strict: strict, CacheSize: g.CacheSize}

	return plan.NewPipeline(opts, logger).Run(ctx, files)
}

// printDiagnostics writes one line per diagnostic, errors first.
func printDiagnostics(out io.Writer, diags diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		_, _ = fmt.Fprintf(out, "%s: %s\n", d.Severity, d.String())
	}
}
