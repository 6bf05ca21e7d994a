package gen

import (
	"fmt"
	"log/slog"
	"strings"

	"view-generator/internal/diagnostic"
	"view-generator/internal/plan"
)

// Result lists what an Emit call wrote.
type Result struct {
	Views   []string
	Mappers []string
}

// Emitter renders the files of a plan and hands them to a Writer.
type Emitter struct {
	renderer Renderer
	writer   Writer
	logger   *slog.Logger
}

// NewEmitter creates an Emitter. A nil logger uses slog.Default.
func NewEmitter(renderer Renderer, writer Writer, logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}

	return &Emitter{renderer: renderer, writer: writer, logger: logger}
}

// Emit writes every file of p. Files rendering to blank text are skipped
// and reported in p.Diagnostics.
func (e *Emitter) Emit(p *plan.Plan) (Result, error) {
	var res Result

	for _, fm := range p.Files {
		out := *fm
		out.Classes = nil

		for _, cls := range fm.Classes {
			if cls.GenerateView {
				out.Classes = append(out.Classes, cls)
			}
		}

		if out.MapperPath != "" {
			for _, cls := range out.Classes {
				if cls.HasNestedMapper() {
					cls.MapperImportPath = out.MapperSpecifier()
				}
			}
		}

		view, err := e.renderer.RenderView(&out)
		if err != nil {
			return res, fmt.Errorf("rendering %s: %w", out.Filename, err)
		}

		if strings.TrimSpace(view) == "" {
			p.Diagnostics.AddInfo(diagnostic.CodeEmptyView, "nothing to generate for "+out.Filename, "", "")
			e.logger.Debug("skipped empty view", "file", out.Filename)

			continue
		}

		if err := e.writer.WriteFile(out.Filename, []byte(view)); err != nil {
			return res, err
		}

		res.Views = append(res.Views, out.Filename)
		e.logger.Info("view written", "file", out.Filename, "classes", len(out.Classes))

		if !out.WantsMapper() {
			continue
		}

		mapper, err := e.renderer.RenderMapper(&out)
		if err != nil {
			return res, fmt.Errorf("rendering %s: %w", out.MapperFilename(), err)
		}

		if strings.TrimSpace(mapper) == "" {
			continue
		}

		if err := e.writer.WriteFile(out.MapperFilename(), []byte(mapper)); err != nil {
			return res, err
		}

		res.Mappers = append(res.Mappers, out.MapperFilename())
		e.logger.Info("mapper written", "file", out.MapperFilename())
	}

	return res, nil
}
