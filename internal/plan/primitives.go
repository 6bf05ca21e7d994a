package plan

import (
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// primitiveTypes never need an import nor a generated mapper.
var primitiveTypes = map[string]bool{
	"string":    true,
	"number":    true,
	"boolean":   true,
	"object":    true,
	"any":       true,
	"unknown":   true,
	"null":      true,
	"undefined": true,
	"void":      true,
	"never":     true,
	"bigint":    true,
	"symbol":    true,
}

// globalTypes are provided by the runtime and are never imported.
var globalTypes = map[string]bool{
	"Array":         true,
	"ReadonlyArray": true,
	"Date":          true,
	"Error":         true,
	"Function":      true,
	"Map":           true,
	"Object":        true,
	"Partial":       true,
	"Pick":          true,
	"Omit":          true,
	"Promise":       true,
	"Readonly":      true,
	"Record":        true,
	"Required":      true,
	"RegExp":        true,
	"Set":           true,
	"String":        true,
	"Number":        true,
	"Boolean":       true,
	"keyof":         true,
	"typeof":        true,
	"infer":         true,
	"extends":       true,
	"true":          true,
	"false":         true,
}

// IsPrimitive returns true for built-in scalar types.
func IsPrimitive(typ string) bool {
	return primitiveTypes[typ]
}

// typeIdentifiers returns the importable identifiers referenced by a type
// expression, in order of appearance. Qualified names contribute their
// root only.
//
// Examples:
//   - "Hero" -> [Hero]
//   - "Map<string, HeroDetail>" -> [HeroDetail]
//   - "ns.Power | null" -> [ns]
//   - "{ id: number; owner: Person }" -> [Person]
func typeIdentifiers(text string) []string {
	var ids []string

	for i := 0; i < len(text); {
		c := text[i]

		switch {
		case c == '"' || c == '\'' || c == '`':
			end := strings.IndexByte(text[i+1:], c)
			if end < 0 {
				return ids
			}

			i += end + 2
		case isDigitByte(c):
			i++
			for i < len(text) && (isIdentPart(text[i]) || text[i] == '.') {
				i++
			}
		default:
			r, size := utf8.DecodeRuneInString(text[i:])
			if !(r == '_' || r == '$' || unicode.IsLetter(r)) {
				i += size
				continue
			}

			start := i
			for i < len(text) {
				r, size := utf8.DecodeRuneInString(text[i:])
				if r != '_' && r != '$' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}

				i += size
			}

			name := text[start:i]
			qualifiedTail := start > 0 && text[start-1] == '.'
			propertyKey := strings.HasPrefix(strings.TrimLeft(text[i:], " ?"), ":")

			if !qualifiedTail && !propertyKey && !primitiveTypes[name] && !globalTypes[name] && !slices.Contains(ids, name) {
				ids = append(ids, name)
			}
		}
	}

	return ids
}

// isNumericLiteral reports whether text is a JavaScript number literal.
func isNumericLiteral(text string) bool {
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return true
	}

	_, err := strconv.ParseInt(text, 0, 64)

	return err == nil
}

func isIdentPart(c byte) bool {
	return c == '_' || c == '$' || isDigitByte(c) || (c|0x20 >= 'a' && c|0x20 <= 'z')
}

func isDigitByte(c byte) bool {
	return c >= '0' && c <= '9'
}
