package mapping

import (
	"slices"

	"view-generator/internal/analyze"
)

// ClassDirectives holds the decoded decorators of one class that
// requests at least one view.
type ClassDirectives struct {
	Class      analyze.Class
	Views      []GenerateView // One per @GenerateView, in source order
	NeedMapper *bool          // Explicit @NeedMapper marker; nil when absent
	Fields     []FieldDirectives
}

// FieldDirectives holds the decoded decorators of one field.
type FieldDirectives struct {
	Field      analyze.Field
	Directives []Directive
}

// Scopes returns the distinct non-empty scopes of the field's directives.
func (f FieldDirectives) Scopes() []string {
	var scopes []string

	for _, d := range f.Directives {
		if s := d.Scope(); s != "" && !slices.Contains(scopes, s) {
			scopes = append(scopes, s)
		}
	}

	return scopes
}

// Scanner extracts generation directives from parsed files.
type Scanner struct{}

// NewScanner creates a new Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan returns the directives of every class of f carrying @GenerateView,
// in source order. Fields are returned in declaration order, including
// fields without directives.
func (s *Scanner) Scan(f *analyze.File) ([]ClassDirectives, error) {
	var result []ClassDirectives

	for _, cls := range f.Classes {
		cd := ClassDirectives{Class: cls}

		for _, dec := range cls.Decorators {
			switch dec.Name {
			case DecoratorGenerateView:
				var gv GenerateView
				if err := decodeDecorator(f.Path, dec, &gv); err != nil {
					return nil, err
				}

				cd.Views = append(cd.Views, gv)
			case DecoratorNeedMapper:
				var nm NeedMapper
				if err := decodeDecorator(f.Path, dec, &nm); err != nil {
					return nil, err
				}

				// an opt-out is sticky across repeated markers
				if cd.NeedMapper == nil || *cd.NeedMapper {
					enabled := nm.Enabled
					cd.NeedMapper = &enabled
				}
			}
		}

		if len(cd.Views) == 0 {
			continue
		}

		for _, field := range cls.Fields {
			fd, err := s.scanField(f.Path, field)
			if err != nil {
				return nil, err
			}

			cd.Fields = append(cd.Fields, fd)
		}

		result = append(result, cd)
	}

	return result, nil
}

func (s *Scanner) scanField(path string, field analyze.Field) (FieldDirectives, error) {
	fd := FieldDirectives{Field: field}

	for _, dec := range field.Decorators {
		var (
			directive Directive
			err       error
		)

		switch dec.Name {
		case DecoratorIgnore:
			var d Ignore
			err = decodeDecorator(path, dec, &d)
			directive = d
		case DecoratorRename:
			var d Rename
			err = decodeDecorator(path, dec, &d)
			directive = d
		case DecoratorRetype:
			var d Retype
			err = decodeDecorator(path, dec, &d)
			directive = d
		default:
			continue
		}

		if err != nil {
			return FieldDirectives{}, err
		}

		fd.Directives = append(fd.Directives, directive)
	}

	return fd, nil
}
