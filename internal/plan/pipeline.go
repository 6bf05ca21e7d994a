package plan

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"view-generator/internal/analyze"
	"view-generator/internal/diagnostic"
	"view-generator/internal/mapping"
)

// Options configures a Pipeline.
type Options struct {
	// Root resolves the relative directories of directives; the working
	// directory when empty.
	Root string
	// Strict turns warnings into errors.
	Strict bool
	// CacheSize bounds the parsed module cache.
	CacheSize int
}

// Pipeline runs parsing, directive scanning and resolution over a set of
// source files.
type Pipeline struct {
	opts    Options
	logger  *slog.Logger
	parser  analyze.Parser
	scanner *mapping.Scanner
}

// NewPipeline creates a Pipeline. A nil logger uses slog.Default.
func NewPipeline(opts Options, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		opts:    opts,
		logger:  logger,
		parser:  analyze.NewParser(),
		scanner: mapping.NewScanner(),
	}
}

// Run processes files in order and returns the resolved plan. The plan is
// returned together with the error when diagnostics contain errors. ctx
// is checked before each file.
func (p *Pipeline) Run(ctx context.Context, files []string) (*Plan, error) {
	root, err := p.root()
	if err != nil {
		return nil, err
	}

	loader, err := analyze.NewLoader(p.parser, p.opts.CacheSize)
	if err != nil {
		return nil, err
	}

	diags := &diagnostic.Diagnostics{}
	builder := NewBuilder(root, diags)
	transformers := NewTransformerResolver(loader, diags)
	acc := NewAccumulator()

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		f, err := loader.ParseFile(path)
		if err != nil {
			return nil, err
		}

		classes, err := p.scanner.Scan(f)
		if err != nil {
			return nil, err
		}

		if len(classes) == 0 {
			p.logger.Debug("no views requested", "file", f.Path)
			continue
		}

		for _, cd := range classes {
			for _, v := range builder.Build(f, cd) {
				if err := transformers.Resolve(v.Class); err != nil {
					return nil, fmt.Errorf("%s: %w", f.Path, err)
				}

				acc.Add(v)
			}
		}

		p.logger.Info("processed", "file", f.Path, "classes", len(classes))
	}

	imports := NewImportResolver(diags)

	for _, fm := range acc.Files() {
		imports.Resolve(fm)
		checkMapper(fm, diags)
	}

	p.logger.Debug("plan resolved", "files", len(acc.Files()), "modules", loader.Len())

	for _, d := range diags.Warnings {
		p.logger.Warn(d.String())
	}

	if p.opts.Strict {
		diags.Escalate()
	}

	plan := &Plan{Files: acc.Files(), Diagnostics: *diags}

	return plan, diags.Error()
}

func (p *Pipeline) root() (string, error) {
	if p.opts.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}

		return wd, nil
	}

	root, err := filepath.Abs(p.opts.Root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root %s: %w", p.opts.Root, err)
	}

	return root, nil
}

// checkMapper reports classes whose opt-out suppresses a shared mapper.
func checkMapper(fm *FileMetadata, diags *diagnostic.Diagnostics) {
	if fm.MapperPath == "" {
		return
	}

	for _, cls := range fm.Classes {
		if !cls.MapperOptOut {
			continue
		}

		diags.Add(diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticInfo,
			Code:     diagnostic.CodeMapperSuppressed,
			Message:  fmt.Sprintf("mapper %s is not generated: %s opted out", fm.MapperFilename(), cls.BaseName),
			File:     cls.BaseNamePath,
			Line:     cls.Line,
			Class:    cls.Name,
		})
	}
}
