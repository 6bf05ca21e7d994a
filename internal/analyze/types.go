package analyze

import (
	"fmt"
	"strings"

	"view-generator/internal/common"
)

// File is the structural description of one TypeScript source file.
type File struct {
	Path      string       // Absolute path of the file
	Classes   []Class      // Class declarations in source order
	Functions []Function   // Top-level functions (declarations and const arrow functions)
	Imports   []ImportNode // Import statements in source order
	Declared  []string     // Type-level names declared in the file (classes, interfaces, aliases, enums)
}

// Function returns the top-level function with the given name.
func (f *File) Function(name string) (*Function, bool) {
	for i := range f.Functions {
		if f.Functions[i].Name == name {
			return &f.Functions[i], true
		}
	}

	return nil, false
}

// FunctionNames returns the names of all top-level functions.
func (f *File) FunctionNames() []string {
	names := make([]string, 0, len(f.Functions))
	for _, fn := range f.Functions {
		names = append(names, fn.Name)
	}

	return names
}

// Declares returns true if the file declares a type-level name.
func (f *File) Declares(name string) bool {
	for _, d := range f.Declared {
		if d == name {
			return true
		}
	}

	return false
}

// Class is a class declaration.
type Class struct {
	Name       string
	Exported   bool
	Decorators []Decorator
	Fields     []Field // Instance property declarations; methods and static members are skipped
	Line       int
}

// Field is a class property declaration.
type Field struct {
	Name       string
	Type       TypeRef
	Optional   bool // Declared with "?"
	Decorators []Decorator
	Line       int
}

// Decorator is a decorator application such as @GenerateView({...}).
type Decorator struct {
	Name string  // Last segment of the decorator expression
	Args []Value // Literal arguments; nil when the decorator is not called
	Line int
}

// ValueKind is the kind of a literal decorator argument.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueNumber
	ValueBool
	ValueNull
	ValueIdent  // Identifier, qualified name or any other unparsed expression
	ValueObject // Object literal
	ValueArray  // Array literal
)

// String returns a human-readable representation of the ValueKind.
func (k ValueKind) String() string {
	switch k {
	case ValueString:
		return "string"
	case ValueNumber:
		return "number"
	case ValueBool:
		return "bool"
	case ValueNull:
		return "null"
	case ValueIdent:
		return "ident"
	case ValueObject:
		return "object"
	case ValueArray:
		return "array"
	default:
		return common.UnknownStr
	}
}

// Value is a literal decorator argument.
type Value struct {
	Kind   ValueKind
	Text   string     // Scalar text; unquoted for strings
	Fields []KeyValue // Object members in source order
	Items  []Value    // Array elements
	Line   int
}

// KeyValue is one member of an object literal.
type KeyValue struct {
	Key   string
	Value Value
}

// Get returns the value of an object member.
func (v Value) Get(key string) (Value, bool) {
	for _, kv := range v.Fields {
		if kv.Key == key {
			return kv.Value, true
		}
	}

	return Value{}, false
}

// Function is a top-level function.
type Function struct {
	Name     string
	Async    bool
	Exported bool
	Params   []Param
	Line     int
}

// Param is a function parameter.
type Param struct {
	Name     string
	Type     string // Declared type text; empty when not annotated
	Optional bool   // Declared with "?" or with a default value
	Rest     bool
}

// Mandatory returns true if a caller must pass the parameter.
func (p Param) Mandatory() bool {
	return !p.Optional && !p.Rest
}

// ClauseKind is the binding form of an import clause.
type ClauseKind int

const (
	ClauseNamed     ClauseKind = iota // import { A } / import { A as B }
	ClauseDefault                     // import A
	ClauseNamespace                   // import * as A
)

// Clause is one binding of an import statement.
type Clause struct {
	Name  string // Exported name, or the local name for default/namespace clauses
	Alias string // Local alias for named clauses ("B" in "A as B")
	Kind  ClauseKind
}

// Local returns the name the clause binds in the importing file.
func (c Clause) Local() string {
	if c.Alias != "" {
		return c.Alias
	}

	return c.Name
}

// String returns the clause as written inside an import statement.
func (c Clause) String() string {
	switch {
	case c.Kind == ClauseNamespace:
		return "* as " + c.Name
	case c.Alias != "":
		return c.Name + " as " + c.Alias
	default:
		return c.Name
	}
}

// ImportNode is one import statement.
type ImportNode struct {
	Clauses   []Clause
	Specifier string // Module specifier as written
	AbsPath   string // Absolute module path without extension; the specifier itself for library imports
	IsLibrary bool   // True for bare specifiers resolved from node_modules
}

// Has returns true if one of the clauses binds the local name.
func (n ImportNode) Has(name string) bool {
	_, ok := n.Find(name)
	return ok
}

// Find returns the clause binding the local name.
func (n ImportNode) Find(name string) (Clause, bool) {
	for _, c := range n.Clauses {
		if c.Local() == name {
			return c, true
		}
	}

	return Clause{}, false
}

// Names returns the local names bound by the statement.
func (n ImportNode) Names() []string {
	names := make([]string, 0, len(n.Clauses))
	for _, c := range n.Clauses {
		names = append(names, c.Local())
	}

	return names
}

// TypeRef is a declared property type.
type TypeRef struct {
	Text       string // As written, whitespace collapsed
	Base       string // Innermost element type with nullability stripped
	ArrayDepth int    // Number of array levels unwrapped to reach Base
	Nullable   bool   // Union with null or undefined
}

// IsArray returns true if the declared type is an array at any depth.
func (t TypeRef) IsArray() bool {
	return t.ArrayDepth > 0
}

// ParseTypeRef unwraps a type expression to its innermost element type.
// Examples:
//   - "HeroDetail[][]" -> Base "HeroDetail", ArrayDepth 2
//   - "Array<string> | null" -> Base "string", ArrayDepth 1, Nullable
//   - "ReadonlyArray<(Hero | undefined)>" -> Base "Hero", ArrayDepth 1, Nullable
//   - "string | number[]" -> Base "string | number[]", not an array
func ParseTypeRef(text string) TypeRef {
	ref := TypeRef{Text: collapseSpace(text)}
	cur := ref.Text

	for {
		var nullable bool

		cur, nullable = stripNullable(cur)
		ref.Nullable = ref.Nullable || nullable

		switch {
		case isCompound(cur):
			ref.Base = cur
			return ref
		case strings.HasSuffix(cur, "[]"):
			cur = strings.TrimSpace(strings.TrimSuffix(cur, "[]"))
			ref.ArrayDepth++
		case isWrapped(cur, '(', ')'):
			cur = strings.TrimSpace(cur[1 : len(cur)-1])
		case strings.HasPrefix(cur, "Array<") && strings.HasSuffix(cur, ">"):
			cur = strings.TrimSpace(cur[len("Array<") : len(cur)-1])
			ref.ArrayDepth++
		case strings.HasPrefix(cur, "ReadonlyArray<") && strings.HasSuffix(cur, ">"):
			cur = strings.TrimSpace(cur[len("ReadonlyArray<") : len(cur)-1])
			ref.ArrayDepth++
		default:
			ref.Base = cur
			return ref
		}
	}
}

// isCompound reports whether t is a union, intersection or function type
// at the top level, where a trailing "[]" belongs to the last member only.
func isCompound(t string) bool {
	return len(splitTopLevel(t, '|')) > 1 || len(splitTopLevel(t, '&')) > 1 || hasTopLevelArrow(t)
}

func hasTopLevelArrow(t string) bool {
	depth := 0

	for i := 0; i < len(t); i++ {
		switch t[i] {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}':
			depth--
		case '>':
			if i > 0 && t[i-1] == '=' {
				if depth == 0 {
					return true
				}

				continue
			}

			depth--
		}
	}

	return false
}

// stripNullable removes top-level "null" and "undefined" union members.
func stripNullable(t string) (string, bool) {
	members := splitTopLevel(t, '|')
	if len(members) < 2 {
		return t, false
	}

	kept := make([]string, 0, len(members))
	nullable := false

	for _, m := range members {
		switch m {
		case "null", "undefined":
			nullable = true
		case "":
		default:
			kept = append(kept, m)
		}
	}

	if len(kept) == 0 {
		return members[0], nullable
	}

	return strings.Join(kept, " | "), nullable
}

// splitTopLevel splits s on sep outside of brackets.
func splitTopLevel(s string, sep byte) []string {
	var parts []string

	depth, start := 0, 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}':
			depth--
		case '>':
			if i > 0 && s[i-1] == '=' {
				continue
			}

			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}

	return append(parts, strings.TrimSpace(s[start:]))
}

// isWrapped reports whether s is entirely enclosed by one matching pair.
func isWrapped(s string, open, closing byte) bool {
	if len(s) < 2 || s[0] != open || s[len(s)-1] != closing {
		return false
	}

	depth := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 && i != len(s)-1 {
				return false
			}
		}
	}

	return true
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ParseError is a fatal syntax error in a source file.
type ParseError struct {
	Path string
	Line int
	Col  int
	Msg  string
}

// Error implements error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Col, e.Msg)
}
