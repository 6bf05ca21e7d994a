package plan

import (
	"path/filepath"
	"strings"

	"view-generator/internal/analyze"
	"view-generator/internal/diagnostic"
)

// Plan is the final output of the pipeline. It contains everything
// needed to render and write the generated files.
type Plan struct {
	// Files in the order their first contributing class was processed.
	Files []*FileMetadata
	// Diagnostics contains all warnings and errors of the run.
	Diagnostics diagnostic.Diagnostics
}

// FileMetadata describes one generated view file and its mapper.
type FileMetadata struct {
	// Filename is the absolute path of the view file.
	Filename string
	// BasePath is the source file of the first contributing class.
	BasePath string
	// MapperPath is the absolute mapper directory; empty when no mapper is wanted.
	MapperPath string
	// Classes are the view classes written to the file, in processing order.
	Classes []*ClassMetadata
	// Imports of the view file (ForMapper unset) and of the mapper (ForMapper set).
	Imports []Import
}

// MapperFilename returns the absolute path of the mapper file, or "" when
// the file has no mapper directory.
func (f *FileMetadata) MapperFilename() string {
	if f.MapperPath == "" {
		return ""
	}

	return filepath.Join(f.MapperPath, strings.TrimSuffix(filepath.Base(f.Filename), ".ts")+"Mapper.ts")
}

// MapperSpecifier returns the mapper module as imported from the view
// directory, or "" without a mapper directory.
func (f *FileMetadata) MapperSpecifier() string {
	if f.MapperPath == "" {
		return ""
	}

	return relativeSpecifier(filepath.Dir(f.Filename), trimModule(f.MapperFilename()))
}

// WantsMapper returns true if the mapper file is generated: a mapper
// directory is set and no class opted out with @NeedMapper(false).
func (f *FileMetadata) WantsMapper() bool {
	if f.MapperPath == "" {
		return false
	}

	for _, c := range f.Classes {
		if c.MapperOptOut {
			return false
		}
	}

	return true
}

// ViewImports returns the imports of the view file.
func (f *FileMetadata) ViewImports() []Import {
	return f.filterImports(false)
}

// MapperImports returns the imports of the mapper file.
func (f *FileMetadata) MapperImports() []Import {
	return f.filterImports(true)
}

func (f *FileMetadata) filterImports(forMapper bool) []Import {
	var out []Import

	for _, imp := range f.Imports {
		if imp.ForMapper == forMapper {
			out = append(out, imp)
		}
	}

	return out
}

// Class returns the class with the given name.
func (f *FileMetadata) Class(name string) (*ClassMetadata, bool) {
	for _, c := range f.Classes {
		if c.Name == name {
			return c, true
		}
	}

	return nil, false
}

// ClassMetadata describes one generated view class.
type ClassMetadata struct {
	// Name of the view class: the model name with the first letter upper-cased.
	Name string
	// Model is the model name as written in the directive.
	Model string
	// BaseName is the name of the annotated class.
	BaseName string
	// BaseNamePath is the absolute path of the file declaring the annotated class.
	BaseNamePath string
	// BaseLocal is the name the mapper imports the annotated class under;
	// it differs from BaseName when a view class has the same name.
	BaseLocal string
	// Line of the annotated class declaration.
	Line int
	// Fields in declaration order, including ignored ones.
	Fields []*FieldMetadata
	// GenerateView is true for classes requested by a view directive.
	GenerateView bool
	// NeedMapper is the explicit mapper marker, or true when a mapper directory is set.
	NeedMapper bool
	// MapperOptOut is set by an explicit @NeedMapper(false); it suppresses
	// the mapper of the whole output file.
	MapperOptOut bool
	// ContextType is the context parameter type of each mapper direction.
	ContextType map[Direction]*ContextTypeInfo
	// ContextTypeFields lists, per direction, the fields whose converter takes the context.
	ContextTypeFields map[Direction][]string
	// Async is true for directions with at least one async converter.
	Async map[Direction]bool
	// Candidates are the import statements visible from the source file,
	// followed by synthesized ones.
	Candidates []analyze.ImportNode
	// MapperImportPath is the mapper module as seen from the view directory;
	// set by the emitter for classes with nested generated mappers.
	MapperImportPath string
}

// NewClassMetadata creates a ClassMetadata with initialized direction maps.
func NewClassMetadata(name string) *ClassMetadata {
	return &ClassMetadata{
		Name: name,
		ContextType: map[Direction]*ContextTypeInfo{
			ToView:   {},
			FromView: {},
		},
		ContextTypeFields: map[Direction][]string{},
		Async:             map[Direction]bool{},
	}
}

// BaseRef returns the name the mapper uses for the annotated class.
func (c *ClassMetadata) BaseRef() string {
	if c.BaseLocal != "" {
		return c.BaseLocal
	}

	return c.BaseName
}

// Context returns the context type of a direction, or nil when no
// converter of the direction takes a context.
func (c *ClassMetadata) Context(d Direction) *ContextTypeInfo {
	if info := c.ContextType[d]; info != nil && info.Value != "" {
		return info
	}

	return nil
}

// VisibleFields returns the fields that are not ignored.
func (c *ClassMetadata) VisibleFields() []*FieldMetadata {
	var out []*FieldMetadata

	for _, f := range c.Fields {
		if !f.IgnoredInView {
			out = append(out, f)
		}
	}

	return out
}

// HasNestedMapper returns true if a visible field uses a generated mapper.
func (c *ClassMetadata) HasNestedMapper() bool {
	for _, f := range c.VisibleFields() {
		if f.NeedGeneratedMapper {
			return true
		}
	}

	return false
}

// FieldMetadata describes one field of a view class.
type FieldMetadata struct {
	// Name of the field in the view.
	Name string
	// BaseModelName is the name of the field in the annotated class.
	BaseModelName string
	// Type is the element type in the view.
	Type string
	// BaseModelType is the element type in the annotated class.
	BaseModelType string
	// IsArray is true when the view type is an array.
	IsArray bool
	// ArrayDepth is the number of array levels around Type.
	ArrayDepth int
	// IsNullable is true for optional fields and unions with null or undefined.
	IsNullable bool
	// IsComplexType is true when Type is not a primitive.
	IsComplexType bool
	// IgnoredInView fields are neither rendered nor imported.
	IgnoredInView bool
	// NeedGeneratedMapper is true when Type is another generated view.
	NeedGeneratedMapper bool
	// ToStringWanted is true when the field was retyped to string.
	ToStringWanted bool
	// FieldConvertFunction holds the converter bindings, if any.
	FieldConvertFunction *Transformer
	// Line of the field declaration.
	Line int
}

// TypeText returns the view type as written in the view, with array levels.
func (f *FieldMetadata) TypeText() string {
	return f.Type + strings.Repeat("[]", f.ArrayDepth)
}

// Binding returns the converter of a direction, or nil.
func (f *FieldMetadata) Binding(d Direction) *Binding {
	if f.FieldConvertFunction == nil {
		return nil
	}

	return f.FieldConvertFunction.Get(d)
}

// Transformer holds the converter bindings of a field.
type Transformer struct {
	ToView   *Binding
	FromView *Binding
}

// Get returns the binding of a direction, or nil.
func (t *Transformer) Get(d Direction) *Binding {
	switch d {
	case ToView:
		return t.ToView
	case FromView:
		return t.FromView
	default:
		return nil
	}
}

// Binding is one converter reference.
type Binding struct {
	// Function reference as written ("helpers.format"), or the literal text.
	Function string
	// IsPrimitive is true when the reference is a literal value.
	IsPrimitive bool
	// IsPrimitiveString is true for literals rendered as string constants.
	IsPrimitiveString bool
	// IsAsync is true when the resolved function is async.
	IsAsync bool
	// HasContext is true when the resolved function declares a second parameter.
	HasContext bool
	// Module is the absolute path of the file declaring the function, or
	// the specifier of a library import.
	Module string
}

// Root returns the identifier before the first ".".
func (b *Binding) Root() string {
	root, _, _ := strings.Cut(b.Function, ".")
	return root
}

// Name returns the last segment of the reference.
func (b *Binding) Name() string {
	return b.Function[strings.LastIndex(b.Function, ".")+1:]
}

// ContextTypeInfo is the context parameter type of one mapper direction.
type ContextTypeInfo struct {
	// Value is empty, "any" or a single type.
	Value string
	// Mandatory is true when at least one converter requires the context.
	Mandatory bool
}

// Import is one import statement of a generated file.
type Import struct {
	// Clauses in statement order.
	Clauses []analyze.Clause
	// Type is the serialized clause set: "{ A, B }", "X", "* as NS" or combinations.
	Type string
	// Path is the module specifier as written in the generated file.
	Path string
	// ForMapper marks imports of the mapper file.
	ForMapper bool
	// Module is the absolute module path without extension, or the library specifier.
	Module string
}

// Names returns the local names bound by the import.
func (i Import) Names() []string {
	names := make([]string, 0, len(i.Clauses))
	for _, c := range i.Clauses {
		names = append(names, c.Local())
	}

	return names
}

// ClauseSignature serializes a clause set the way it is written in an
// import statement: default first, then namespace, then named clauses.
func ClauseSignature(clauses []analyze.Clause) string {
	var (
		parts []string
		named []string
	)

	for _, c := range clauses {
		switch c.Kind {
		case analyze.ClauseDefault:
			parts = append(parts, c.Name)
		case analyze.ClauseNamespace:
			parts = append(parts, c.String())
		default:
			named = append(named, c.String())
		}
	}

	if len(named) > 0 {
		parts = append(parts, "{ "+strings.Join(named, ", ")+" }")
	}

	return strings.Join(parts, ", ")
}
