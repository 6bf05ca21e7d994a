package plan

import (
	"fmt"
	"slices"

	"view-generator/internal/analyze"
	"view-generator/internal/common"
	"view-generator/internal/diagnostic"
	"view-generator/internal/mapping"
	"view-generator/internal/match"
)

// View is one view class built from a (class, @GenerateView) pair,
// together with the output location it was requested for.
type View struct {
	Class     *ClassMetadata
	Filename  string // Absolute view file path
	MapperDir string // Absolute mapper directory; empty without mapperPath
}

// Builder creates class and field metadata from scanned directives.
type Builder struct {
	root  string
	diags *diagnostic.Diagnostics
}

// NewBuilder creates a Builder resolving directive paths against root.
func NewBuilder(root string, diags *diagnostic.Diagnostics) *Builder {
	return &Builder{root: root, diags: diags}
}

// Build returns one View per @GenerateView of the class, in source order.
func (b *Builder) Build(f *analyze.File, cd mapping.ClassDirectives) []View {
	b.checkScopes(f, cd)

	views := make([]View, 0, len(cd.Views))

	for _, gv := range cd.Views {
		v := View{Filename: viewFilename(resolveDir(b.root, gv.FilePath), gv.Model)}
		if gv.MapperPath != "" {
			v.MapperDir = resolveDir(b.root, gv.MapperPath)
		}

		cls := NewClassMetadata(common.UpperFirst(gv.Model))
		cls.Model = gv.Model
		cls.BaseName = cd.Class.Name
		cls.BaseNamePath = f.Path
		cls.Line = cd.Class.Line
		cls.GenerateView = true
		cls.NeedMapper = v.MapperDir != ""

		if cd.NeedMapper != nil {
			cls.NeedMapper = *cd.NeedMapper
			cls.MapperOptOut = !*cd.NeedMapper
		}

		cls.Candidates = slices.Clone(f.Imports)

		for _, fd := range cd.Fields {
			cls.Fields = append(cls.Fields, b.buildField(cls, v.MapperDir, fd))
		}

		if len(f.Declared) > 0 {
			cls.Candidates = append(cls.Candidates, declaredCandidate(f))
		}

		v.Class = cls
		views = append(views, v)
	}

	return views
}

func (b *Builder) buildField(cls *ClassMetadata, mapperDir string, fd mapping.FieldDirectives) *FieldMetadata {
	base := fd.Field.Type
	if base.Text == "" {
		base = analyze.ParseTypeRef("any")
	}

	fm := &FieldMetadata{
		Name:          fd.Field.Name,
		BaseModelName: fd.Field.Name,
		Type:          base.Base,
		BaseModelType: base.Base,
		IsArray:       base.IsArray(),
		ArrayDepth:    base.ArrayDepth,
		IsNullable:    fd.Field.Optional || base.Nullable,
		Line:          fd.Field.Line,
	}

	for _, d := range fd.Directives {
		if !appliesTo(d, cls) {
			continue
		}

		switch d := d.(type) {
		case mapping.Ignore:
			fm.IgnoredInView = true
		case mapping.Rename:
			fm.Name = d.Name
		case mapping.Retype:
			b.retype(cls, fm, base, mapperDir, d)
			fm.IsNullable = fd.Field.Optional || fm.IsNullable
		}
	}

	fm.IsComplexType = !IsPrimitive(fm.Type)

	return fm
}

func (b *Builder) retype(cls *ClassMetadata, fm *FieldMetadata, base analyze.TypeRef, mapperDir string, d mapping.Retype) {
	ref := analyze.ParseTypeRef(d.Type)

	fm.Type = ref.Base
	fm.IsArray = ref.IsArray()
	fm.ArrayDepth = ref.ArrayDepth
	fm.IsNullable = ref.Nullable
	fm.ToStringWanted = ref.Base == "string" && base.Base != "string"

	if d.Transformer != nil {
		fm.FieldConvertFunction = &Transformer{
			ToView:   newBinding(d.Transformer.ToView),
			FromView: newBinding(d.Transformer.FromView),
		}
	}

	if d.FilePath == "" {
		return
	}

	fm.NeedGeneratedMapper = true

	cls.Candidates = append(cls.Candidates, analyze.ImportNode{
		Clauses: []analyze.Clause{{Name: ref.Base}},
		AbsPath: trimModule(viewFilename(resolveDir(b.root, d.FilePath), ref.Base)),
	})

	if mapperDir != "" {
		cls.Candidates = append(cls.Candidates, analyze.ImportNode{
			Clauses: []analyze.Clause{{Name: ref.Base + "Mapper"}},
			AbsPath: mapperModule(mapperDir, ref.Base),
		})
	}
}

// checkScopes warns about directives scoped to a model the class does
// not generate.
func (b *Builder) checkScopes(f *analyze.File, cd mapping.ClassDirectives) {
	models := make([]string, 0, len(cd.Views))
	names := make([]string, 0, len(cd.Views))

	for _, gv := range cd.Views {
		models = append(models, gv.Model)
		names = append(names, common.UpperFirst(gv.Model))
	}

	for _, fd := range cd.Fields {
		for _, scope := range fd.Scopes() {
			if slices.Contains(names, common.UpperFirst(scope)) {
				continue
			}

			b.diags.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.DiagnosticWarning,
				Code:        diagnostic.CodeScopeUnmatched,
				Message:     fmt.Sprintf("directive scoped to %q matches no view of %s", scope, cd.Class.Name),
				File:        f.Path,
				Line:        fd.Field.Line,
				Class:       cd.Class.Name,
				Field:       fd.Field.Name,
				Suggestions: match.Suggest(scope, models, 0),
			})
		}
	}
}

func appliesTo(d mapping.Directive, cls *ClassMetadata) bool {
	scope := d.Scope()
	return scope == "" || common.UpperFirst(scope) == cls.Name
}

func newBinding(ref *mapping.FunctionRef) *Binding {
	if ref == nil {
		return nil
	}

	return &Binding{Function: ref.Text}
}

// declaredCandidate makes the type-level names declared by the source
// file importable from it.
func declaredCandidate(f *analyze.File) analyze.ImportNode {
	node := analyze.ImportNode{AbsPath: trimModule(f.Path)}
	for _, name := range f.Declared {
		node.Clauses = append(node.Clauses, analyze.Clause{Name: name})
	}

	return node
}
