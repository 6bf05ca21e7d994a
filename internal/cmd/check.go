package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"view-generator/internal/config"
)

// Check resolves the plan and prints its diagnostics.
type Check struct {
	Strict bool `help:"Treat warnings as errors" env:"VIEWGEN_STRICT"`
}

// Run prints diagnostics; it fails when any diagnostic is an error.
func (c *Check) Run(ctx context.Context, g *config.Global, logger *slog.Logger, out io.Writer) error {
	p, err := buildPlan(ctx, g, c.Strict, logger)
	if p != nil {
		printDiagnostics(out, p.Diagnostics)
	}

	if err != nil {
		return err
	}

	views := 0
	for _, f := range p.Files {
		views += len(f.Classes)
	}

	_, _ = fmt.Fprintf(out, "%d files, %d views, %d warnings\n", len(p.Files), views, len(p.Diagnostics.Warnings))

	return nil
}
