package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/davecgh/go-spew/spew"

	"view-generator/internal/config"
	"view-generator/internal/gen"
)

// Gen writes the view and mapper files.
type Gen struct {
	DryRun bool `help:"Print the paths that would be written instead of writing them"`
	Dump   bool `help:"Dump the resolved plan before generating"`
	Strict bool `help:"Treat warnings as errors" env:"VIEWGEN_STRICT"`
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Run generates the files.
func (c *Gen) Run(ctx context.Context, g *config.Global, logger *slog.Logger, out io.Writer) error {
	p, err := buildPlan(ctx, g, c.Strict, logger)
	if err != nil {
		if p != nil {
			printDiagnostics(out, p.Diagnostics)
		}

		return err
	}

	if c.Dump {
		dumpConfig.Fdump(out, p.Files)
	}

	var (
		writer gen.Writer = gen.FSWriter{}
		memory *gen.MemoryWriter
	)

	if c.DryRun {
		memory = gen.NewMemoryWriter()
		writer = memory
	}

	res, err := gen.NewEmitter(gen.NewTemplateRenderer(p.Files), writer, logger).Emit(p)
	if err != nil {
		return err
	}

	if memory != nil {
		for _, path := range memory.Paths() {
			_, _ = fmt.Fprintln(out, path)
		}
	}

	logger.Info("generation finished", "views", len(res.Views), "mappers", len(res.Mappers), "dryRun", c.DryRun)

	return nil
}
