package plan

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"view-generator/internal/analyze"
	"view-generator/internal/diagnostic"
	"view-generator/internal/match"
)

var (
	// ErrContextTypeConflict is returned when the converters of one mapper
	// direction declare different context parameter types.
	ErrContextTypeConflict = errors.New("context for a one-sided mapper must be of a single type or any")
	// ErrFunctionNotFound is returned when a converter module exists but
	// does not declare the referenced function.
	ErrFunctionNotFound = errors.New("converter function not found")
)

const anyType = "any"

// TransformerResolver binds converter references to the functions they
// name and derives the async flags and context types of each class.
type TransformerResolver struct {
	loader *analyze.Loader
	diags  *diagnostic.Diagnostics
}

// NewTransformerResolver creates a TransformerResolver loading modules
// through loader.
func NewTransformerResolver(loader *analyze.Loader, diags *diagnostic.Diagnostics) *TransformerResolver {
	return &TransformerResolver{loader: loader, diags: diags}
}

// Resolve resolves every converter binding of the class's visible fields.
func (r *TransformerResolver) Resolve(cls *ClassMetadata) error {
	for _, field := range cls.VisibleFields() {
		for _, d := range Directions {
			b := field.Binding(d)
			if b == nil {
				continue
			}

			if err := r.resolveBinding(cls, field, d, b); err != nil {
				return fmt.Errorf("%s.%s %s: %w", cls.Name, field.Name, d, err)
			}
		}
	}

	return nil
}

func (r *TransformerResolver) resolveBinding(cls *ClassMetadata, field *FieldMetadata, d Direction, b *Binding) error {
	imp, clause, ok := findCandidate(cls.Candidates, b.Root())
	if !ok {
		markLiteral(b)
		return nil
	}

	if imp.IsLibrary {
		b.Module = imp.AbsPath
		return nil
	}

	mod, found, err := r.loader.ResolveModule(imp.AbsPath)
	if err != nil {
		return err
	}

	if !found {
		r.diags.Add(diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticWarning,
			Code:     diagnostic.CodeModuleNotFound,
			Message: fmt.Sprintf("module %s of %q not found (tried %s), using it as a literal",
				imp.Specifier, b.Function, strings.Join(analyze.ModuleCandidates(imp.AbsPath), ", ")),
			File:  cls.BaseNamePath,
			Line:  field.Line,
			Class: cls.Name,
			Field: field.Name,
		})
		markLiteral(b)

		return nil
	}

	name := b.Name()
	if !strings.Contains(b.Function, ".") && clause.Kind == analyze.ClauseNamed {
		name = clause.Name
	}

	fn, ok := mod.Function(name)
	if !ok {
		err := fmt.Errorf("%w: %s in %s", ErrFunctionNotFound, name, mod.Path)
		if s := match.Suggest(name, mod.FunctionNames(), 0); len(s) > 0 {
			err = fmt.Errorf("%w (did you mean %s?)", err, strings.Join(s, ", "))
		}

		return err
	}

	b.Module = mod.Path
	b.IsAsync = fn.Async

	if fn.Async {
		cls.Async[d] = true
	}

	if len(fn.Params) < 2 {
		return nil
	}

	param := fn.Params[1]

	typ := param.Type
	if typ == "" {
		typ = anyType
	}

	b.HasContext = true

	if err := unifyContext(cls.ContextType[d], typ, param.Mandatory()); err != nil {
		return err
	}

	if !slices.Contains(cls.ContextTypeFields[d], field.Name) {
		cls.ContextTypeFields[d] = append(cls.ContextTypeFields[d], field.Name)
	}

	r.contextCandidates(cls, field, mod, typ)

	return nil
}

// contextCandidates makes the identifiers of a context type importable,
// either through the converter module's own imports or from the module
// itself.
func (r *TransformerResolver) contextCandidates(cls *ClassMetadata, field *FieldMetadata, mod *analyze.File, typ string) {
	for _, id := range typeIdentifiers(typ) {
		if node, ok := findImport(mod.Imports, id); ok {
			cls.Candidates = append(cls.Candidates, node)
			continue
		}

		if mod.Declares(id) {
			cls.Candidates = append(cls.Candidates, analyze.ImportNode{
				Clauses: []analyze.Clause{{Name: id}},
				AbsPath: trimModule(mod.Path),
			})

			continue
		}

		r.diags.Add(diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticWarning,
			Code:     diagnostic.CodeContextUnresolved,
			Message:  fmt.Sprintf("context type %s is neither imported nor declared by %s", id, mod.Path),
			File:     cls.BaseNamePath,
			Line:     field.Line,
			Class:    cls.Name,
			Field:    field.Name,
		})
	}
}

// unifyContext merges a converter's context type into the direction's.
func unifyContext(info *ContextTypeInfo, typ string, mandatory bool) error {
	switch {
	case info.Value == "", info.Value == anyType:
		info.Value = typ
	case typ == info.Value, typ == anyType:
	default:
		return fmt.Errorf("%w: %s and %s", ErrContextTypeConflict, info.Value, typ)
	}

	info.Mandatory = info.Mandatory || mandatory

	return nil
}

// markLiteral turns a binding whose root matches no import into a value.
func markLiteral(b *Binding) {
	b.IsPrimitive = true
	b.IsPrimitiveString = b.Function != "null" && b.Function != "undefined" && !isNumericLiteral(b.Function)
}

func findCandidate(nodes []analyze.ImportNode, local string) (analyze.ImportNode, analyze.Clause, bool) {
	for _, n := range nodes {
		if c, ok := n.Find(local); ok {
			return n, c, true
		}
	}

	return analyze.ImportNode{}, analyze.Clause{}, false
}

func findImport(nodes []analyze.ImportNode, local string) (analyze.ImportNode, bool) {
	n, _, ok := findCandidate(nodes, local)
	return n, ok
}
