package gen

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"view-generator/internal/plan"
)

const (
	modelVar   = "model"
	viewVar    = "viewModel"
	contextVar = "context"
	resultVar  = "result"
)

type viewFileData struct {
	Header  string
	Imports []plan.Import
	Classes []viewClassData
}

type viewClassData struct {
	Name        string
	Fields      []viewFieldData
	Assignments []string
}

type viewFieldData struct {
	Name     string
	Type     string
	Optional bool
}

type mapperFileData struct {
	Header  string
	Imports []plan.Import
	Classes []mapperClassData
}

type mapperClassData struct {
	Name    string
	Methods []mapperMethodData
}

type mapperMethodData struct {
	Name       string
	Async      bool
	Param      string
	Context    string
	Return     string
	Init       string
	Statements []string
}

func (r *TemplateRenderer) viewData(f *plan.FileMetadata) viewFileData {
	data := viewFileData{Header: Header, Imports: f.ViewImports()}

	for _, cls := range f.Classes {
		cd := viewClassData{Name: cls.Name}

		for _, field := range cls.VisibleFields() {
			cd.Fields = append(cd.Fields, viewFieldData{
				Name:     field.Name,
				Type:     field.TypeText(),
				Optional: field.IsNullable,
			})

			cd.Assignments = append(cd.Assignments, viewAssignment(field)...)
		}

		data.Classes = append(data.Classes, cd)
	}

	return data
}

// viewAssignment copies one field in the view constructor. Fields with a
// toView converter are left to the mapper.
func viewAssignment(f *plan.FieldMetadata) []string {
	if f.Binding(plan.ToView) != nil {
		return nil
	}

	src := modelVar + "." + f.BaseModelName
	dst := "this." + f.Name

	switch {
	case f.ArrayDepth > 0:
		return guarded(src, dst+" = "+mapArray(src, f.ArrayDepth, func(item string) string {
			return copyExpr(f, item)
		}, false)+";")
	case f.NeedGeneratedMapper:
		return guarded(src, dst+" = new "+f.Type+"("+src+");")
	case f.IsComplexType:
		return []string{
			"if (" + src + " != null) {",
			"  " + dst + " = JSON.parse(JSON.stringify(" + src + "));",
			"}",
		}
	case f.ToStringWanted:
		return []string{dst + " = " + src + " != null ? String(" + src + ") : " + src + ";"}
	default:
		return []string{dst + " = " + src + ";"}
	}
}

// copyExpr copies one array element.
func copyExpr(f *plan.FieldMetadata, item string) string {
	switch {
	case f.NeedGeneratedMapper:
		return item + " ? new " + f.Type + "(" + item + ") : null"
	case f.IsComplexType:
		return "JSON.parse(JSON.stringify(" + item + "))"
	case f.ToStringWanted:
		return item + " != null ? String(" + item + ") : " + item
	default:
		return item
	}
}

func (r *TemplateRenderer) mapperData(f *plan.FileMetadata) mapperFileData {
	data := mapperFileData{Header: Header, Imports: f.MapperImports()}

	for _, cls := range f.Classes {
		data.Classes = append(data.Classes, mapperClassData{
			Name: cls.Name + "Mapper",
			Methods: []mapperMethodData{
				r.mapperMethod(cls, plan.ToView),
				r.mapperMethod(cls, plan.FromView),
			},
		})
	}

	return data
}

func (r *TemplateRenderer) mapperMethod(cls *plan.ClassMetadata, d plan.Direction) mapperMethodData {
	m := mapperMethodData{Async: r.isAsync(cls, d, map[string]bool{})}

	if info := cls.Context(d); info != nil {
		m.Context = contextVar + "?: " + info.Value
		if info.Mandatory {
			m.Context = contextVar + ": " + info.Value
		}
	}

	hasContext := m.Context != ""

	if d == plan.ToView {
		m.Name = methodName(d, cls.Name)
		m.Param = modelVar + ": " + cls.BaseRef()
		m.Return = cls.Name
		m.Init = "const " + resultVar + " = new " + cls.Name + "(" + modelVar + ");"
	} else {
		m.Name = methodName(d, cls.Name)
		m.Param = viewVar + ": " + cls.Name
		m.Return = cls.BaseRef()
		m.Init = "const " + resultVar + ": any = {};"
	}

	for _, field := range cls.VisibleFields() {
		src, dst := modelVar+"."+field.BaseModelName, resultVar+"."+field.Name
		if d == plan.FromView {
			src, dst = viewVar+"."+field.Name, resultVar+"."+field.BaseModelName
		}

		switch b := field.Binding(d); {
		case b != nil && b.IsPrimitive:
			m.Statements = append(m.Statements, dst+" = "+literal(b)+";")
		case b != nil:
			m.Statements = append(m.Statements, dst+" = "+awaitIf(b.IsAsync)+callExpr(b.Function, src, b.HasContext && hasContext)+";")
		case field.NeedGeneratedMapper:
			m.Statements = append(m.Statements, r.nestedMapperCall(field, d, src, dst, hasContext)...)
		case d == plan.FromView:
			m.Statements = append(m.Statements, dst+" = "+src+";")
		}
	}

	return m
}

// nestedMapperCall maps a field whose type is another generated view
// through that view's mapper.
func (r *TemplateRenderer) nestedMapperCall(f *plan.FieldMetadata, d plan.Direction, src, dst string, hasContext bool) []string {
	fn := f.Type + "Mapper." + methodName(d, f.Type)

	async := false
	passContext := false

	if nested, ok := r.classes[f.Type]; ok {
		async = r.isAsync(nested, d, map[string]bool{})
		passContext = hasContext && nested.Context(d) != nil
	}

	if f.ArrayDepth == 0 {
		return guarded(src, dst+" = "+awaitIf(async)+callExpr(fn, src, passContext)+";")
	}

	expr := mapArray(src, f.ArrayDepth, func(item string) string {
		return item + " ? " + callExpr(fn, item, passContext) + " : " + item
	}, async)

	return guarded(src, dst+" = "+awaitIf(async)+expr+";")
}

// isAsync reports whether the mapper of cls is async in direction d,
// either through its own converters or through nested mappers.
func (r *TemplateRenderer) isAsync(cls *plan.ClassMetadata, d plan.Direction, seen map[string]bool) bool {
	if cls.Async[d] {
		return true
	}

	if seen[cls.Name] {
		return false
	}

	seen[cls.Name] = true

	for _, f := range cls.VisibleFields() {
		if !f.NeedGeneratedMapper || f.Binding(d) != nil {
			continue
		}

		if nested, ok := r.classes[f.Type]; ok && r.isAsync(nested, d, seen) {
			return true
		}
	}

	return false
}

// mapArray maps every element of a depth-dimensional array with elem.
// Async element expressions are collected with Promise.all per level.
func mapArray(expr string, depth int, elem func(item string) string, async bool) string {
	if depth == 0 {
		return elem(expr)
	}

	item := "item"
	if depth > 1 {
		item += strconv.Itoa(depth)
	}

	mapped := expr + ".map((" + item + ": any) => " + mapArray(item, depth-1, elem, async) + ")"
	if async {
		return "Promise.all(" + mapped + ")"
	}

	return mapped
}

func methodName(d plan.Direction, class string) string {
	if d == plan.ToView {
		return "to" + class
	}

	return "from" + class
}

func guarded(src, stmt string) []string {
	return []string{"if (" + src + ") {", "  " + stmt, "}"}
}

func callExpr(fn, arg string, withContext bool) string {
	args := []string{arg}
	if withContext {
		args = append(args, contextVar)
	}

	return fn + "(" + strings.Join(args, ", ") + ")"
}

func awaitIf(async bool) string {
	if async {
		return "await "
	}

	return ""
}

// literal renders a binding that matched no import as a value.
func literal(b *plan.Binding) string {
	if b.IsPrimitiveString {
		return quoteJS(b.Function)
	}

	return b.Function
}

// quoteJS returns s as a double-quoted string literal valid in
// JavaScript. JSON string escapes are a subset of JavaScript's, and the
// encoder escapes U+2028 and U+2029.
func quoteJS(s string) string {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)

	return strings.TrimSuffix(buf.String(), "\n")
}
