package analyze

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// tokenKind classifies lexer tokens.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokTemplate
	tokRegexp
	tokPunct
)

// token is one lexical token. Comments and whitespace are dropped; a
// line break before the token is recorded in newline.
type token struct {
	kind    tokenKind
	text    string // Raw text; the unquoted value for tokString
	line    int
	col     int
	start   int // Byte offset of the first character
	end     int // Byte offset after the last character
	newline bool
}

func (t token) is(kind tokenKind, text string) bool {
	return t.kind == kind && t.text == text
}

func (t token) punct(text string) bool {
	return t.is(tokPunct, text)
}

func (t token) ident(text string) bool {
	return t.is(tokIdent, text)
}

// multi-character punctuators the parser cares about, longest first.
var punctuators = []string{"...", "=>", "?.", "??"}

// regexpPreceders are punctuators after which "/" starts a regular expression.
const regexpPreceders = "(,=:[!&|?{};+-*%<>~^"

type lexer struct {
	path string
	src  string
	pos  int
	line int
	col  int
	toks []token
}

// lex splits src into tokens.
func lex(path, src string) ([]token, error) {
	l := &lexer{path: path, src: src, line: 1, col: 1}
	newline := false

	for {
		nl, err := l.skipSpaceAndComments()
		if err != nil {
			return nil, err
		}

		newline = newline || nl

		if l.pos >= len(l.src) {
			l.toks = append(l.toks, token{kind: tokEOF, line: l.line, col: l.col, start: l.pos, end: l.pos, newline: true})
			return l.toks, nil
		}

		tok, err := l.next()
		if err != nil {
			return nil, err
		}

		tok.newline = newline
		newline = false
		l.toks = append(l.toks, tok)
	}
}

func (l *lexer) errorf(format string, args ...any) error {
	return &ParseError{Path: l.path, Line: l.line, Col: l.col, Msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) peekByte(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}

	return l.src[l.pos+off]
}

func (l *lexer) advance(n int) {
	for i := 0; i < n && l.pos < len(l.src); i++ {
		if l.src[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}

		l.pos++
	}
}

// skipSpaceAndComments reports whether a line break was crossed.
func (l *lexer) skipSpaceAndComments() (bool, error) {
	newline := false

	for l.pos < len(l.src) {
		c := l.src[l.pos]

		switch {
		case c == '\n':
			newline = true
			l.advance(1)
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			l.advance(1)
		case c == '/' && l.peekByte(1) == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.advance(1)
			}
		case c == '/' && l.peekByte(1) == '*':
			end := strings.Index(l.src[l.pos+2:], "*/")
			if end < 0 {
				return false, l.errorf("unterminated block comment")
			}

			if strings.Contains(l.src[l.pos:l.pos+2+end], "\n") {
				newline = true
			}

			l.advance(end + 4)
		case c == 0xEF && strings.HasPrefix(l.src[l.pos:], "\uFEFF"):
			l.pos += 3
		default:
			return newline, nil
		}
	}

	return newline, nil
}

func (l *lexer) next() (token, error) {
	tok := token{line: l.line, col: l.col, start: l.pos}
	c := l.src[l.pos]

	switch {
	case c == '"' || c == '\'':
		value, err := l.scanString(c)
		if err != nil {
			return tok, err
		}

		tok.kind = tokString
		tok.text = value
	case c == '`':
		if err := l.scanTemplate(); err != nil {
			return tok, err
		}

		tok.kind = tokTemplate
		tok.text = l.src[tok.start:l.pos]
	case isDigit(c) || (c == '.' && isDigit(l.peekByte(1))):
		l.scanNumber()
		tok.kind = tokNumber
		tok.text = l.src[tok.start:l.pos]
	case c == '/' && l.regexpAllowed():
		if err := l.scanRegexp(); err != nil {
			return tok, err
		}

		tok.kind = tokRegexp
		tok.text = l.src[tok.start:l.pos]
	default:
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if isIdentStart(r) {
			l.scanIdent()
			tok.kind = tokIdent
			tok.text = l.src[tok.start:l.pos]

			break
		}

		tok.kind = tokPunct
		tok.text = l.src[l.pos : l.pos+size]

		for _, p := range punctuators {
			if strings.HasPrefix(l.src[l.pos:], p) {
				tok.text = p
				break
			}
		}

		l.advance(len(tok.text))
	}

	tok.end = l.pos

	return tok, nil
}

// regexpAllowed decides whether "/" starts a regular expression literal
// by looking at the previous significant token.
func (l *lexer) regexpAllowed() bool {
	if len(l.toks) == 0 {
		return true
	}

	prev := l.toks[len(l.toks)-1]

	switch prev.kind {
	case tokPunct:
		return prev.text != ")" && prev.text != "]" && prev.text != "}" &&
			(strings.Contains(regexpPreceders, prev.text) || prev.text == "=>")
	case tokIdent:
		switch prev.text {
		case "return", "typeof", "case", "do", "else", "in", "of", "new", "delete", "void", "throw", "yield", "await":
			return true
		}
	}

	return false
}

func (l *lexer) scanString(quote byte) (string, error) {
	var sb strings.Builder

	l.advance(1)

	for l.pos < len(l.src) {
		c := l.src[l.pos]

		switch c {
		case quote:
			l.advance(1)
			return sb.String(), nil
		case '\n':
			return "", l.errorf("unterminated string literal")
		case '\\':
			l.advance(1)

			if l.pos >= len(l.src) {
				return "", l.errorf("unterminated string literal")
			}

			sb.WriteString(unescape(l.src[l.pos]))
			l.advance(1)
		default:
			sb.WriteByte(c)
			l.advance(1)
		}
	}

	return "", l.errorf("unterminated string literal")
}

func unescape(c byte) string {
	switch c {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case '0':
		return "\x00"
	case '\n':
		return ""
	default:
		return string(c)
	}
}

// scanTemplate consumes a template literal including nested substitutions.
func (l *lexer) scanTemplate() error {
	l.advance(1)

	for l.pos < len(l.src) {
		switch c := l.src[l.pos]; {
		case c == '\\':
			l.advance(2)
		case c == '`':
			l.advance(1)
			return nil
		case c == '$' && l.peekByte(1) == '{':
			l.advance(2)

			if err := l.scanSubstitution(); err != nil {
				return err
			}
		default:
			l.advance(1)
		}
	}

	return l.errorf("unterminated template literal")
}

// scanSubstitution consumes a ${...} body up to and including the closing brace.
func (l *lexer) scanSubstitution() error {
	depth := 1

	for l.pos < len(l.src) {
		switch c := l.src[l.pos]; c {
		case '{':
			depth++
			l.advance(1)
		case '}':
			depth--
			l.advance(1)

			if depth == 0 {
				return nil
			}
		case '"', '\'':
			if _, err := l.scanString(c); err != nil {
				return err
			}
		case '`':
			if err := l.scanTemplate(); err != nil {
				return err
			}
		default:
			l.advance(1)
		}
	}

	return l.errorf("unterminated template substitution")
}

func (l *lexer) scanRegexp() error {
	inClass := false

	l.advance(1)

	for l.pos < len(l.src) {
		switch c := l.src[l.pos]; {
		case c == '\\':
			l.advance(2)
		case c == '\n':
			return l.errorf("unterminated regular expression")
		case c == '[':
			inClass = true
			l.advance(1)
		case c == ']':
			inClass = false
			l.advance(1)
		case c == '/' && !inClass:
			l.advance(1)

			for l.pos < len(l.src) && isIdentByte(l.src[l.pos]) {
				l.advance(1)
			}

			return nil
		default:
			l.advance(1)
		}
	}

	return l.errorf("unterminated regular expression")
}

func (l *lexer) scanNumber() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if isIdentByte(c) || c == '.' {
			l.advance(1)
			continue
		}

		if (c == '+' || c == '-') && l.pos > 0 && (l.src[l.pos-1] == 'e' || l.src[l.pos-1] == 'E') &&
			!strings.HasPrefix(strings.ToLower(l.src[:l.pos]), "0x") {
			l.advance(1)
			continue
		}

		return
	}
}

func (l *lexer) scanIdent() {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isIdentStart(r) && !unicode.IsDigit(r) {
			return
		}

		l.pos += size
		l.col++
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || r == '#' || unicode.IsLetter(r)
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || isDigit(c) || (c|0x20 >= 'a' && c|0x20 <= 'z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
