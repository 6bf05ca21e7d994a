package plan

import (
	"fmt"
	"path/filepath"
	"slices"

	"view-generator/internal/analyze"
	"view-generator/internal/diagnostic"
)

// ImportResolver computes the import statements of a view file and of
// its mapper from the candidate imports of its classes.
type ImportResolver struct {
	diags *diagnostic.Diagnostics
}

// NewImportResolver creates an ImportResolver.
func NewImportResolver(diags *diagnostic.Diagnostics) *ImportResolver {
	return &ImportResolver{diags: diags}
}

type importKey struct {
	signature string
	forMapper bool
}

// Resolve sets file.Imports. View imports come first in candidate order,
// mapper imports are restricted to what the mapper references. Records
// sharing a path are merged.
func (r *ImportResolver) Resolve(file *FileMetadata) {
	viewDir := filepath.Dir(file.Filename)
	viewModule := trimModule(file.Filename)
	ownMapper := trimModule(file.MapperFilename())

	var (
		imports []Import
		seen    = map[importKey]bool{}
		covered = map[string]bool{}
	)

	for _, cls := range file.Classes {
		covered[cls.Name] = true
	}

	add := func(imp Import) {
		key := importKey{signature: imp.Type, forMapper: imp.ForMapper}
		if seen[key] {
			return
		}

		seen[key] = true
		imports = append(imports, imp)
	}

	for _, cls := range file.Classes {
		viewNames, mapperNames := referencedNames(cls)

		for _, cand := range cls.Candidates {
			var viewClauses, mapperClauses []analyze.Clause

			for _, c := range cand.Clauses {
				if slices.Contains(viewNames, c.Local()) {
					viewClauses = append(viewClauses, c)
					covered[c.Local()] = true
				}

				if slices.Contains(mapperNames, c.Local()) {
					mapperClauses = append(mapperClauses, c)
				}
			}

			if len(viewClauses) > 0 && (cand.IsLibrary || cand.AbsPath != viewModule) {
				add(newImport(cand, viewClauses, viewDir, false))
			}

			if len(mapperClauses) > 0 && file.MapperPath != "" && (cand.IsLibrary || cand.AbsPath != ownMapper) {
				add(newImport(cand, mapperClauses, file.MapperPath, true))
			}
		}

		for _, name := range viewNames {
			if covered[name] {
				continue
			}

			covered[name] = true

			r.diags.Add(diagnostic.Diagnostic{
				Severity: diagnostic.DiagnosticWarning,
				Code:     diagnostic.CodeUnresolvedImport,
				Message:  fmt.Sprintf("type %s is not imported by %s", name, cls.BaseNamePath),
				File:     cls.BaseNamePath,
				Line:     cls.Line,
				Class:    cls.Name,
			})
		}
	}

	if file.MapperPath != "" {
		imports = r.directMapperImports(file, imports)
	}

	file.Imports = mergeByPath(imports)
}

// directMapperImports appends the view classes and their annotated
// classes to the mapper imports, dropping mapper clauses they cover.
func (r *ImportResolver) directMapperImports(file *FileMetadata, imports []Import) []Import {
	viewModule := trimModule(file.Filename)

	views := Import{Module: viewModule, ForMapper: true, Path: relativeSpecifier(file.MapperPath, viewModule)}
	direct := map[string]bool{}

	for _, cls := range file.Classes {
		if !direct[cls.Name] {
			views.Clauses = append(views.Clauses, analyze.Clause{Name: cls.Name})
			direct[cls.Name] = true
		}
	}

	var bases []Import

	for _, cls := range file.Classes {
		clause := analyze.Clause{Name: cls.BaseName}
		if direct[cls.BaseName] {
			cls.BaseLocal = cls.BaseName + "Base"
			clause.Alias = cls.BaseLocal
		}

		module := trimModule(cls.BaseNamePath)

		i := slices.IndexFunc(bases, func(imp Import) bool { return imp.Module == module })
		if i < 0 {
			bases = append(bases, Import{Module: module, ForMapper: true, Path: relativeSpecifier(file.MapperPath, module)})
			i = len(bases) - 1
		}

		if !slices.Contains(bases[i].Clauses, clause) {
			bases[i].Clauses = append(bases[i].Clauses, clause)
		}

		direct[clause.Local()] = true
	}

	kept := imports[:0]

	for _, imp := range imports {
		if imp.ForMapper {
			imp.Clauses = slices.DeleteFunc(slices.Clone(imp.Clauses), func(c analyze.Clause) bool {
				return direct[c.Local()]
			})

			if len(imp.Clauses) == 0 {
				continue
			}

			imp.Type = ClauseSignature(imp.Clauses)
		}

		kept = append(kept, imp)
	}

	views.Type = ClauseSignature(views.Clauses)
	kept = append(kept, views)

	for _, b := range bases {
		b.Type = ClauseSignature(b.Clauses)
		kept = append(kept, b)
	}

	return kept
}

// referencedNames returns the names the view and the mapper of a class
// need imported.
func referencedNames(cls *ClassMetadata) (viewNames, mapperNames []string) {
	for _, f := range cls.VisibleFields() {
		for _, id := range typeIdentifiers(f.Type) {
			if !slices.Contains(viewNames, id) {
				viewNames = append(viewNames, id)
			}
		}

		for _, d := range Directions {
			if b := f.Binding(d); b != nil && !b.IsPrimitive && !slices.Contains(mapperNames, b.Root()) {
				mapperNames = append(mapperNames, b.Root())
			}
		}

		if f.NeedGeneratedMapper && !slices.Contains(mapperNames, f.Type+"Mapper") {
			mapperNames = append(mapperNames, f.Type+"Mapper")
		}
	}

	for _, d := range Directions {
		info := cls.Context(d)
		if info == nil {
			continue
		}

		for _, id := range typeIdentifiers(info.Value) {
			if !slices.Contains(mapperNames, id) {
				mapperNames = append(mapperNames, id)
			}
		}
	}

	return viewNames, mapperNames
}

func newImport(cand analyze.ImportNode, clauses []analyze.Clause, fromDir string, forMapper bool) Import {
	imp := Import{
		Clauses:   clauses,
		Type:      ClauseSignature(clauses),
		ForMapper: forMapper,
		Module:    cand.AbsPath,
		Path:      cand.Specifier,
	}

	if !cand.IsLibrary {
		imp.Path = relativeSpecifier(fromDir, cand.AbsPath)
	}

	return imp
}

// mergeByPath merges records with the same path and mapper flag by
// clause union, keeping the position of the first record.
func mergeByPath(imports []Import) []Import {
	var merged []Import

	for _, imp := range imports {
		i := slices.IndexFunc(merged, func(m Import) bool {
			return m.Path == imp.Path && m.ForMapper == imp.ForMapper
		})
		if i < 0 {
			merged = append(merged, imp)
			continue
		}

		for _, c := range imp.Clauses {
			if !slices.Contains(merged[i].Clauses, c) {
				merged[i].Clauses = append(merged[i].Clauses, c)
			}
		}

		merged[i].Type = ClauseSignature(merged[i].Clauses)
	}

	return merged
}
