package gen

import (
	"bytes"
	"fmt"

	"view-generator/internal/plan"
)

// Header is the first line of every generated file.
const Header = "/*Codegen*/"

// Renderer produces the text of a view file and of its mapper. Blank text
// means nothing is written.
type Renderer interface {
	RenderView(f *plan.FileMetadata) (string, error)
	RenderMapper(f *plan.FileMetadata) (string, error)
}

// TemplateRenderer renders files with text/template.
type TemplateRenderer struct {
	classes map[string]*plan.ClassMetadata
}

// NewTemplateRenderer creates a TemplateRenderer. Nested generated views
// are looked up by class name among files.
func NewTemplateRenderer(files []*plan.FileMetadata) *TemplateRenderer {
	classes := map[string]*plan.ClassMetadata{}

	for _, f := range files {
		for _, c := range f.Classes {
			if _, ok := classes[c.Name]; !ok {
				classes[c.Name] = c
			}
		}
	}

	return &TemplateRenderer{classes: classes}
}

// RenderView implements Renderer.
func (r *TemplateRenderer) RenderView(f *plan.FileMetadata) (string, error) {
	if len(f.Classes) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	if err := viewTemplate.Execute(&buf, r.viewData(f)); err != nil {
		return "", fmt.Errorf("executing view template: %w", err)
	}

	return buf.String(), nil
}

// RenderMapper implements Renderer.
func (r *TemplateRenderer) RenderMapper(f *plan.FileMetadata) (string, error) {
	if len(f.Classes) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	if err := mapperTemplate.Execute(&buf, r.mapperData(f)); err != nil {
		return "", fmt.Errorf("executing mapper template: %w", err)
	}

	return buf.String(), nil
}
