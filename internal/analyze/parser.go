package analyze

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Parser turns file text into its structural description.
type Parser interface {
	Parse(path string, src []byte) (*File, error)
}

// TSParser is the structural TypeScript parser.
type TSParser struct{}

// NewParser returns the default TypeScript parser.
func NewParser() Parser {
	return TSParser{}
}

// Parse parses a TypeScript source file. Relative import specifiers are
// resolved against the directory of path.
func (TSParser) Parse(path string, src []byte) (*File, error) {
	toks, err := lex(path, string(src))
	if err != nil {
		return nil, err
	}

	p := &parser{
		path: path,
		dir:  filepath.Dir(path),
		src:  string(src),
		toks: toks,
		file: &File{Path: path},
	}

	if err := p.parseFile(); err != nil {
		return nil, err
	}

	return p.file, nil
}

// statementKeywords start a new top-level statement when seen after a line break.
var statementKeywords = map[string]bool{
	"import": true, "export": true, "class": true, "function": true, "const": true,
	"let": true, "var": true, "interface": true, "type": true, "enum": true,
	"async": true, "declare": true, "abstract": true, "namespace": true, "module": true,
}

// memberModifiers may precede a class member name.
var memberModifiers = map[string]bool{
	"public": true, "private": true, "protected": true, "readonly": true, "static": true,
	"declare": true, "abstract": true, "override": true, "accessor": true,
}

// continuationPuncts end a line without ending the construct.
var continuationPuncts = map[string]bool{
	"|": true, "&": true, ",": true, "<": true, "=>": true, ":": true, "?": true,
	".": true, "(": true, "[": true, "{": true, "=": true, "+": true, "-": true,
	"*": true, "/": true, "??": true, "?.": true,
}

type parser struct {
	path string
	dir  string
	src  string
	toks []token
	pos  int
	file *File
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) peekAt(off int) token {
	if p.pos+off >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}

	return p.toks[p.pos+off]
}

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}

	return tok
}

func (p *parser) prev() token {
	if p.pos == 0 {
		return token{}
	}

	return p.toks[p.pos-1]
}

func (p *parser) atEOF() bool {
	return p.peek().kind == tokEOF
}

func (p *parser) errorf(tok token, format string, args ...any) error {
	return &ParseError{Path: p.path, Line: tok.line, Col: tok.col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expectPunct(text string) (token, error) {
	tok := p.next()
	if !tok.punct(text) {
		return tok, p.errorf(tok, "expected %q, found %q", text, tok.text)
	}

	return tok, nil
}

func (p *parser) expectIdent() (token, error) {
	tok := p.next()
	if tok.kind != tokIdent {
		return tok, p.errorf(tok, "expected identifier, found %q", tok.text)
	}

	return tok, nil
}

func (p *parser) parseFile() error {
	var pending []Decorator

	for !p.atEOF() {
		tok := p.peek()

		switch {
		case tok.punct("@"):
			dec, err := p.parseDecorator()
			if err != nil {
				return err
			}

			pending = append(pending, dec)

			continue
		case tok.punct(";"):
			p.next()
		case tok.ident("import") && !p.peekAt(1).punct("(") && !p.peekAt(1).punct("."):
			if err := p.parseImport(); err != nil {
				return err
			}
		default:
			if err := p.parseDeclaration(pending); err != nil {
				return err
			}
		}

		pending = nil
	}

	return nil
}

// parseDeclaration handles one top-level statement other than imports.
func (p *parser) parseDeclaration(decorators []Decorator) error {
	exported := false

	if p.peek().ident("export") {
		p.next()
		exported = true

		switch {
		case p.peek().ident("default"):
			p.next()
		case p.peek().punct("{"), p.peek().punct("*"):
			p.skipStatement()
			return nil
		case p.peek().punct("="):
			p.skipStatement()
			return nil
		}
	}

	for p.peek().ident("declare") || p.peek().ident("abstract") {
		p.next()
	}

	tok := p.peek()

	switch {
	case tok.ident("class"):
		return p.parseClass(decorators, exported)
	case tok.ident("function"):
		return p.parseFunction(false, exported)
	case tok.ident("async") && p.peekAt(1).ident("function") && !p.peekAt(1).newline:
		p.next()
		return p.parseFunction(true, exported)
	case tok.ident("const"), tok.ident("let"), tok.ident("var"):
		return p.parseVariable(exported)
	case tok.ident("interface"), tok.ident("enum"):
		p.next()

		if name := p.next(); name.kind == tokIdent {
			p.file.Declared = append(p.file.Declared, name.text)
		}

		p.skipStatement()
	case tok.ident("type") && p.peekAt(1).kind == tokIdent && !p.peekAt(1).newline:
		p.next()
		p.file.Declared = append(p.file.Declared, p.next().text)
		p.skipStatement()
	default:
		p.skipStatement()
	}

	return nil
}

// skipStatement consumes tokens up to the end of the current statement.
func (p *parser) skipStatement() {
	depth := 0
	first := true

	for !p.atEOF() {
		tok := p.peek()

		if depth == 0 && !first && tok.newline && p.endsStatement(tok) {
			return
		}

		first = false

		switch {
		case tok.punct("(") || tok.punct("[") || tok.punct("{"):
			depth++
		case tok.punct(")") || tok.punct("]") || tok.punct("}"):
			depth--
			if depth < 0 {
				return
			}

			if depth == 0 && tok.punct("}") {
				p.next()

				if next := p.peek(); next.newline || next.punct(";") {
					if next.punct(";") {
						p.next()
					}

					return
				}

				continue
			}
		case tok.punct(";") && depth == 0:
			p.next()
			return
		}

		p.next()
	}
}

// prevContinues reports whether the previous token cannot end a construct.
func (p *parser) prevContinues() bool {
	prev := p.prev()

	return prev.kind == tokPunct && continuationPuncts[prev.text]
}

// endsStatement reports whether a token starting a new line begins a new statement.
func (p *parser) endsStatement(tok token) bool {
	if p.prevContinues() {
		return false
	}

	return tok.punct("@") || (tok.kind == tokIdent && statementKeywords[tok.text])
}

// skipBalanced consumes a bracketed group starting at the current token.
func (p *parser) skipBalanced() error {
	open := p.next()

	var closing string

	switch open.text {
	case "(":
		closing = ")"
	case "[":
		closing = "]"
	case "{":
		closing = "}"
	case "<":
		closing = ">"
	default:
		return p.errorf(open, "expected bracket, found %q", open.text)
	}

	depth := 1

	for !p.atEOF() {
		tok := p.next()

		switch {
		case tok.punct(open.text):
			depth++
		case tok.punct(closing):
			depth--
			if depth == 0 {
				return nil
			}
		}
	}

	return p.errorf(open, "unbalanced %q", open.text)
}

func (p *parser) parseDecorator() (Decorator, error) {
	at := p.next()

	name, err := p.expectIdent()
	if err != nil {
		return Decorator{}, err
	}

	dec := Decorator{Name: name.text, Line: at.line}

	for p.peek().punct(".") {
		p.next()

		seg, err := p.expectIdent()
		if err != nil {
			return Decorator{}, err
		}

		dec.Name = seg.text
	}

	if !p.peek().punct("(") {
		return dec, nil
	}

	p.next()

	dec.Args = []Value{}

	for !p.peek().punct(")") {
		v, err := p.parseValue()
		if err != nil {
			return Decorator{}, err
		}

		dec.Args = append(dec.Args, v)

		if p.peek().punct(",") {
			p.next()
			continue
		}

		if !p.peek().punct(")") {
			return Decorator{}, p.errorf(p.peek(), "expected \",\" or \")\" in decorator arguments, found %q", p.peek().text)
		}
	}

	p.next()

	return dec, nil
}

// parseValue parses one literal decorator argument.
func (p *parser) parseValue() (Value, error) {
	tok := p.peek()
	v := Value{Line: tok.line}

	switch {
	case tok.kind == tokString:
		p.next()
		v.Kind, v.Text = ValueString, tok.text
	case tok.kind == tokTemplate && !strings.Contains(tok.text, "${"):
		p.next()
		v.Kind, v.Text = ValueString, tok.text[1:len(tok.text)-1]
	case tok.kind == tokNumber:
		p.next()
		v.Kind, v.Text = ValueNumber, tok.text
	case tok.punct("-") && p.peekAt(1).kind == tokNumber:
		p.next()
		v.Kind, v.Text = ValueNumber, "-"+p.next().text
	case tok.ident("true"), tok.ident("false"):
		p.next()
		v.Kind, v.Text = ValueBool, tok.text
	case tok.ident("null"), tok.ident("undefined"):
		p.next()
		v.Kind, v.Text = ValueNull, tok.text
	case tok.punct("{"):
		return p.parseObject()
	case tok.punct("["):
		return p.parseArray()
	default:
		v.Kind, v.Text = ValueIdent, p.skipExpression()
		if v.Text == "" {
			return v, p.errorf(tok, "unexpected %q in decorator arguments", tok.text)
		}
	}

	return v, nil
}

func (p *parser) parseObject() (Value, error) {
	open := p.next()
	v := Value{Kind: ValueObject, Line: open.line, Fields: []KeyValue{}}

	for !p.peek().punct("}") {
		if p.atEOF() {
			return v, p.errorf(open, "unterminated object literal")
		}

		key := p.next()
		if key.kind != tokIdent && key.kind != tokString && key.kind != tokNumber {
			return v, p.errorf(key, "unexpected %q in object literal", key.text)
		}

		var member Value

		if p.peek().punct(":") {
			p.next()

			var err error

			member, err = p.parseValue()
			if err != nil {
				return v, err
			}
		} else {
			member = Value{Kind: ValueIdent, Text: key.text, Line: key.line}
		}

		v.Fields = append(v.Fields, KeyValue{Key: key.text, Value: member})

		if p.peek().punct(",") {
			p.next()
		} else if !p.peek().punct("}") {
			return v, p.errorf(p.peek(), "expected \",\" or \"}\" in object literal, found %q", p.peek().text)
		}
	}

	p.next()

	return v, nil
}

func (p *parser) parseArray() (Value, error) {
	open := p.next()
	v := Value{Kind: ValueArray, Line: open.line, Items: []Value{}}

	for !p.peek().punct("]") {
		if p.atEOF() {
			return v, p.errorf(open, "unterminated array literal")
		}

		item, err := p.parseValue()
		if err != nil {
			return v, err
		}

		v.Items = append(v.Items, item)

		if p.peek().punct(",") {
			p.next()
		} else if !p.peek().punct("]") {
			return v, p.errorf(p.peek(), "expected \",\" or \"]\" in array literal, found %q", p.peek().text)
		}
	}

	p.next()

	return v, nil
}

// skipExpression consumes an expression up to a top-level "," or closing
// bracket and returns its source text.
func (p *parser) skipExpression() string {
	start := p.peek().start
	end := start
	depth := 0

	for !p.atEOF() {
		tok := p.peek()

		switch {
		case tok.punct("(") || tok.punct("[") || tok.punct("{"):
			depth++
		case tok.punct(")") || tok.punct("]") || tok.punct("}"):
			if depth == 0 {
				return strings.TrimSpace(p.src[start:end])
			}

			depth--
		case tok.punct(",") && depth == 0:
			return strings.TrimSpace(p.src[start:end])
		}

		end = p.next().end
	}

	return strings.TrimSpace(p.src[start:end])
}

func (p *parser) parseImport() error {
	kw := p.next()

	if p.peek().ident("type") && !p.peekAt(1).ident("from") && !p.peekAt(1).punct(",") {
		p.next()
	}

	if p.peek().kind == tokString {
		p.next()
		p.skipOptionalSemicolon()

		return nil
	}

	var clauses []Clause

	if tok := p.peek(); tok.kind == tokIdent && !tok.ident("from") {
		p.next()

		if p.peek().punct("=") {
			p.skipStatement()
			return nil
		}

		clauses = append(clauses, Clause{Name: tok.text, Kind: ClauseDefault})

		if p.peek().punct(",") {
			p.next()
		}
	}

	switch {
	case p.peek().punct("*"):
		p.next()

		if as := p.next(); !as.ident("as") {
			return p.errorf(as, "expected \"as\" in namespace import, found %q", as.text)
		}

		name, err := p.expectIdent()
		if err != nil {
			return err
		}

		clauses = append(clauses, Clause{Name: name.text, Kind: ClauseNamespace})
	case p.peek().punct("{"):
		named, err := p.parseNamedClauses()
		if err != nil {
			return err
		}

		clauses = append(clauses, named...)
	}

	if from := p.next(); !from.ident("from") {
		return p.errorf(from, "expected \"from\" in import, found %q", from.text)
	}

	spec := p.next()
	if spec.kind != tokString {
		return p.errorf(spec, "expected module specifier, found %q", spec.text)
	}

	p.skipOptionalSemicolon()

	if len(clauses) == 0 {
		return p.errorf(kw, "import binds no names")
	}

	p.file.Imports = append(p.file.Imports, p.resolveImport(spec.text, clauses))

	return nil
}

func (p *parser) parseNamedClauses() ([]Clause, error) {
	p.next()

	var clauses []Clause

	for !p.peek().punct("}") {
		if p.peek().ident("type") && p.peekAt(1).kind == tokIdent && !p.peekAt(1).ident("as") {
			p.next()
		}

		name := p.next()
		if name.kind != tokIdent && name.kind != tokString {
			return nil, p.errorf(name, "unexpected %q in import clause", name.text)
		}

		c := Clause{Name: name.text, Kind: ClauseNamed}

		if p.peek().ident("as") {
			p.next()

			alias, err := p.expectIdent()
			if err != nil {
				return nil, err
			}

			c.Alias = alias.text
		}

		clauses = append(clauses, c)

		if p.peek().punct(",") {
			p.next()
		} else if !p.peek().punct("}") {
			return nil, p.errorf(p.peek(), "expected \",\" or \"}\" in import clause, found %q", p.peek().text)
		}
	}

	p.next()

	return clauses, nil
}

// resolveImport resolves a specifier relative to the importing file.
func (p *parser) resolveImport(spec string, clauses []Clause) ImportNode {
	node := ImportNode{Clauses: clauses, Specifier: spec}

	if !strings.HasPrefix(spec, ".") && !filepath.IsAbs(spec) {
		node.AbsPath = spec
		node.IsLibrary = true

		return node
	}

	abs := filepath.Clean(filepath.Join(p.dir, filepath.FromSlash(spec)))
	if filepath.IsAbs(spec) {
		abs = filepath.Clean(spec)
	}

	for _, ext := range []string{".ts", ".js"} {
		abs = strings.TrimSuffix(abs, ext)
	}

	node.AbsPath = abs

	return node
}

func (p *parser) skipOptionalSemicolon() {
	if p.peek().punct(";") {
		p.next()
	}
}

func (p *parser) parseClass(decorators []Decorator, exported bool) error {
	kw := p.next()

	cls := Class{Exported: exported, Decorators: decorators, Line: kw.line}

	if tok := p.peek(); tok.kind == tokIdent && !tok.ident("extends") && !tok.ident("implements") {
		p.next()
		cls.Name = tok.text
		p.file.Declared = append(p.file.Declared, tok.text)
	}

	for !p.peek().punct("{") {
		if p.atEOF() {
			return p.errorf(kw, "unterminated class declaration")
		}

		if p.peek().punct("<") || p.peek().punct("(") {
			if err := p.skipBalanced(); err != nil {
				return err
			}

			continue
		}

		p.next()
	}

	p.next()

	for !p.peek().punct("}") {
		if p.atEOF() {
			return p.errorf(kw, "unterminated class body of %s", cls.Name)
		}

		field, ok, err := p.parseMember()
		if err != nil {
			return err
		}

		if ok {
			cls.Fields = append(cls.Fields, field)
		}
	}

	p.next()

	p.file.Classes = append(p.file.Classes, cls)

	return nil
}

// parseMember parses one class member. Only instance properties are returned.
func (p *parser) parseMember() (Field, bool, error) {
	var decorators []Decorator

	for p.peek().punct("@") {
		dec, err := p.parseDecorator()
		if err != nil {
			return Field{}, false, err
		}

		decorators = append(decorators, dec)
	}

	if p.peek().punct(";") {
		p.next()
		return Field{}, false, nil
	}

	static := false

	for p.peek().kind == tokIdent && memberModifiers[p.peek().text] && p.isModifierPosition() {
		if p.next().text == "static" {
			static = true
		}
	}

	if (p.peek().ident("get") || p.peek().ident("set") || p.peek().ident("async")) && p.isModifierPosition() {
		p.next()
	}

	if p.peek().punct("*") {
		p.next()
	}

	nameTok := p.peek()

	switch {
	case nameTok.punct("["):
		// computed name or index signature
		if err := p.skipBalanced(); err != nil {
			return Field{}, false, err
		}

		if p.peek().punct("?") || p.peek().punct("!") {
			p.next()
		}

		if p.peek().punct("(") || p.peek().punct("<") {
			return Field{}, false, p.skipMethod()
		}

		if p.peek().punct(":") {
			p.next()
			p.readType()
		}

		return Field{}, false, p.skipMemberRest()
	case nameTok.punct("{"):
		// static initialization block
		return Field{}, false, p.skipBalanced()
	case nameTok.kind == tokIdent || nameTok.kind == tokString || nameTok.kind == tokNumber:
		p.next()
	default:
		return Field{}, false, p.errorf(nameTok, "unexpected %q in class body", nameTok.text)
	}

	field := Field{Name: nameTok.text, Decorators: decorators, Line: nameTok.line}

	switch {
	case p.peek().punct("?"):
		p.next()
		field.Optional = true
	case p.peek().punct("!"):
		p.next()
	}

	if p.peek().punct("(") || p.peek().punct("<") {
		return Field{}, false, p.skipMethod()
	}

	if p.peek().punct(":") {
		p.next()
		field.Type = ParseTypeRef(p.readType())
	}

	if err := p.skipMemberRest(); err != nil {
		return Field{}, false, err
	}

	if static || nameTok.text == "constructor" || strings.HasPrefix(nameTok.text, "#") {
		return Field{}, false, nil
	}

	return field, true, nil
}

// isModifierPosition reports whether the current identifier is a modifier
// rather than the member name ("readonly: string" names a property).
func (p *parser) isModifierPosition() bool {
	next := p.peekAt(1)

	return next.kind == tokIdent || next.kind == tokString || next.kind == tokNumber ||
		next.punct("[") || next.punct("*") || next.punct("#")
}

// skipMethod consumes a method signature and body.
func (p *parser) skipMethod() error {
	if p.peek().punct("<") {
		if err := p.skipBalanced(); err != nil {
			return err
		}
	}

	if err := p.skipBalanced(); err != nil {
		return err
	}

	if p.peek().punct(":") {
		p.next()
		p.readType()
	}

	if p.peek().punct("{") {
		return p.skipBalanced()
	}

	p.skipOptionalSemicolon()

	return nil
}

// skipMemberRest consumes an optional initializer and the member terminator.
func (p *parser) skipMemberRest() error {
	if p.peek().punct("=") {
		p.next()
		p.skipInitializer()
	}

	p.skipOptionalSemicolon()

	return nil
}

// skipInitializer consumes a property initializer expression.
func (p *parser) skipInitializer() {
	depth := 0
	first := true

	for !p.atEOF() {
		tok := p.peek()

		if depth == 0 {
			if tok.punct(";") || tok.punct("}") {
				return
			}

			if !first && tok.newline && !p.prevContinues() &&
				!tok.punct(".") && !tok.punct("?.") && !tok.punct("?") && !tok.punct(":") && !tok.punct("=>") {
				return
			}
		}

		first = false

		switch {
		case tok.punct("(") || tok.punct("[") || tok.punct("{"):
			depth++
		case tok.punct(")") || tok.punct("]") || tok.punct("}"):
			depth--
		}

		p.next()
	}
}

// readType consumes a type annotation and returns its text. It stops at
// a top-level ";", "=", ",", ")", "}", "{" or at a line break that
// cannot continue the type.
func (p *parser) readType() string {
	start := p.peek().start
	end := start
	depth := 0
	first := true

	for !p.atEOF() {
		tok := p.peek()

		if depth == 0 {
			if tok.punct(";") || tok.punct("=") || tok.punct(",") || tok.punct(")") ||
				tok.punct("}") || tok.punct("]") || tok.punct(">") {
				break
			}

			if !first && tok.punct("{") && !p.prevContinues() {
				break
			}

			if !first && tok.newline && !p.prevContinues() &&
				!tok.punct("|") && !tok.punct("&") && !tok.punct("=>") && !tok.punct(".") {
				break
			}
		}

		first = false

		switch {
		case tok.punct("(") || tok.punct("[") || tok.punct("{") || tok.punct("<"):
			depth++
		case tok.punct(")") || tok.punct("]") || tok.punct("}") || tok.punct(">"):
			depth--
		}

		end = p.next().end
	}

	return collapseSpace(p.src[start:end])
}

func (p *parser) parseFunction(async, exported bool) error {
	kw := p.next()

	if p.peek().punct("*") {
		p.next()
	}

	name, err := p.expectIdent()
	if err != nil {
		return err
	}

	if p.peek().punct("<") {
		if err := p.skipBalanced(); err != nil {
			return err
		}
	}

	params, err := p.parseParams()
	if err != nil {
		return err
	}

	if p.peek().punct(":") {
		p.next()
		p.readType()
	}

	switch {
	case p.peek().punct("{"):
		if err := p.skipBalanced(); err != nil {
			return err
		}
	default:
		p.skipOptionalSemicolon()
	}

	p.file.Functions = append(p.file.Functions, Function{
		Name:     name.text,
		Async:    async,
		Exported: exported,
		Params:   params,
		Line:     kw.line,
	})

	return nil
}

// parseVariable records "const name = [async] (params) => ..." and
// "const name = [async] function (...) {...}" as functions and skips
// every other variable statement.
func (p *parser) parseVariable(exported bool) error {
	kw := p.next()

	name := p.peek()
	if name.kind != tokIdent || !p.peekAt(1).punct("=") && !p.peekAt(1).punct(":") {
		p.skipStatement()
		return nil
	}

	p.next()

	if p.peek().punct(":") {
		p.next()
		p.readType()
	}

	if !p.peek().punct("=") {
		p.skipStatement()
		return nil
	}

	p.next()

	async := false
	if p.peek().ident("async") {
		p.next()
		async = true
	}

	mark := p.pos

	var params []Param

	switch {
	case p.peek().ident("function"):
		p.next()

		if p.peek().kind == tokIdent {
			p.next()
		}

		var err error

		if params, err = p.parseParams(); err != nil {
			return err
		}
	case p.peek().punct("(") || p.peek().punct("<"):
		if p.peek().punct("<") {
			if err := p.skipBalanced(); err != nil {
				return err
			}
		}

		var err error

		params, err = p.parseParams()
		if err != nil {
			p.pos = mark
			p.skipStatement()

			return nil //nolint:nilerr // not an arrow function
		}

		if p.peek().punct(":") {
			p.next()
			p.readType()
		}

		if !p.peek().punct("=>") {
			p.pos = mark
			p.skipStatement()

			return nil
		}
	case p.peek().kind == tokIdent && p.peekAt(1).punct("=>"):
		params = []Param{{Name: p.next().text}}
	default:
		p.skipStatement()
		return nil
	}

	p.file.Functions = append(p.file.Functions, Function{
		Name:     name.text,
		Async:    async,
		Exported: exported,
		Params:   params,
		Line:     kw.line,
	})

	p.skipStatement()

	return nil
}

func (p *parser) parseParams() ([]Param, error) {
	open, err := p.expectPunct("(")
	if err != nil {
		return nil, err
	}

	params := []Param{}

	for !p.peek().punct(")") {
		if p.atEOF() {
			return nil, p.errorf(open, "unterminated parameter list")
		}

		for p.peek().punct("@") {
			if _, err := p.parseDecorator(); err != nil {
				return nil, err
			}
		}

		for p.peek().kind == tokIdent && memberModifiers[p.peek().text] && p.isModifierPosition() {
			p.next()
		}

		var param Param

		if p.peek().punct("...") {
			p.next()
			param.Rest = true
		}

		switch tok := p.peek(); {
		case tok.kind == tokIdent:
			p.next()
			param.Name = tok.text
		case tok.punct("{") || tok.punct("["):
			start := tok.start
			if err := p.skipBalanced(); err != nil {
				return nil, err
			}

			param.Name = collapseSpace(p.src[start:p.prev().end])
		default:
			return nil, p.errorf(tok, "unexpected %q in parameter list", tok.text)
		}

		if p.peek().punct("?") {
			p.next()
			param.Optional = true
		}

		if p.peek().punct(":") {
			p.next()
			param.Type = p.readType()
		}

		if p.peek().punct("=") {
			p.next()
			param.Optional = true
			p.skipExpression()
		}

		if param.Name != "this" {
			params = append(params, param)
		}

		if p.peek().punct(",") {
			p.next()
		} else if !p.peek().punct(")") {
			return nil, p.errorf(p.peek(), "expected \",\" or \")\" in parameter list, found %q", p.peek().text)
		}
	}

	p.next()

	return params, nil
}
