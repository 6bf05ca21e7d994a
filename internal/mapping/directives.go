package mapping

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decorator names recognized by the scanner.
const (
	DecoratorGenerateView = "GenerateView"
	DecoratorNeedMapper   = "NeedMapper"
	DecoratorIgnore       = "IgnoreViewModel"
	DecoratorRename       = "ViewModelName"
	DecoratorRetype       = "ViewModelType"
)

// undefinedTag marks the "undefined" literal, which YAML has no spelling for.
const undefinedTag = "!undefined"

var (
	errExpectedArgs   = errors.New("expected an argument list")
	errTooManyArgs    = errors.New("too many arguments")
	errMissingModel   = errors.New("model is required")
	errMissingPath    = errors.New("filePath is required")
	errMissingName    = errors.New("name is required")
	errMissingType    = errors.New("type is required")
	errBadFunctionRef = errors.New("expected a function reference or { function }")
)

// GenerateView requests one view class for the decorated class.
type GenerateView struct {
	Model      string `yaml:"model"`
	FilePath   string `yaml:"filePath"`
	MapperPath string `yaml:"mapperPath"`
}

// UnmarshalYAML accepts ({model, filePath, mapperPath?}) and the
// positional form (model, filePath, mapperPath?).
func (g *GenerateView) UnmarshalYAML(node *yaml.Node) error {
	type fields GenerateView

	if obj, ok := singleMapping(node); ok {
		var f fields
		if err := obj.Decode(&f); err != nil {
			return err
		}

		*g = GenerateView(f)
	} else {
		if err := decodePositional(node, &g.Model, &g.FilePath, &g.MapperPath); err != nil {
			return err
		}
	}

	if g.Model == "" {
		return errMissingModel
	}

	if g.FilePath == "" {
		return errMissingPath
	}

	return nil
}

// NeedMapper is the explicit mapper marker of a class.
type NeedMapper struct {
	Enabled bool
}

// UnmarshalYAML accepts () as true and (bool).
func (n *NeedMapper) UnmarshalYAML(node *yaml.Node) error {
	n.Enabled = true

	if node.Kind != yaml.SequenceNode {
		return errExpectedArgs
	}

	switch len(node.Content) {
	case 0:
		return nil
	case 1:
		if node.Content[0].ShortTag() == "!!null" {
			return nil
		}

		return node.Content[0].Decode(&n.Enabled)
	default:
		return errTooManyArgs
	}
}

// Directive is a field-level decorator. The set of implementations is
// closed: Ignore, Rename and Retype.
type Directive interface {
	// Scope returns the model name the directive is restricted to, or ""
	// when it applies to every view of the class.
	Scope() string
	isDirective()
}

// Ignore drops the field from the view.
type Ignore struct {
	Model string `yaml:"model"`
}

// Scope implements Directive.
func (d Ignore) Scope() string { return d.Model }

func (Ignore) isDirective() {}

// UnmarshalYAML accepts (), (model) and ({model}).
func (d *Ignore) UnmarshalYAML(node *yaml.Node) error {
	type fields Ignore

	if obj, ok := singleMapping(node); ok {
		var f fields
		if err := obj.Decode(&f); err != nil {
			return err
		}

		*d = Ignore(f)

		return nil
	}

	return decodePositional(node, &d.Model)
}

// Rename gives the field a different name in the view.
type Rename struct {
	Name  string `yaml:"name"`
	Model string `yaml:"model"`
}

// Scope implements Directive.
func (d Rename) Scope() string { return d.Model }

func (Rename) isDirective() {}

// UnmarshalYAML accepts (name, model?) and ({name, model?}).
func (d *Rename) UnmarshalYAML(node *yaml.Node) error {
	type fields Rename

	if obj, ok := singleMapping(node); ok {
		var f fields
		if err := obj.Decode(&f); err != nil {
			return err
		}

		*d = Rename(f)
	} else if err := decodePositional(node, &d.Name, &d.Model); err != nil {
		return err
	}

	if d.Name == "" {
		return errMissingName
	}

	return nil
}

// Retype gives the field a different type in the view, optionally with a
// converter and with the directory of a generated view for that type.
type Retype struct {
	Type        string           `yaml:"type"`
	FilePath    string           `yaml:"filePath"`
	Model       string           `yaml:"modelName"`
	Transformer *TransformerSpec `yaml:"transformer"`
}

// Scope implements Directive.
func (d Retype) Scope() string { return d.Model }

func (Retype) isDirective() {}

// UnmarshalYAML accepts ({type, filePath?, modelName?, transformer?}) and
// the positional form (type, filePath?, modelName?, transformer?).
func (d *Retype) UnmarshalYAML(node *yaml.Node) error {
	type fields Retype

	if obj, ok := singleMapping(node); ok {
		var f fields
		if err := obj.Decode(&f); err != nil {
			return err
		}

		*d = Retype(f)
	} else {
		if node.Kind != yaml.SequenceNode {
			return errExpectedArgs
		}

		args := node.Content
		if len(args) > 4 {
			return errTooManyArgs
		}

		if len(args) == 4 {
			var spec TransformerSpec
			if err := args[3].Decode(&spec); err != nil {
				return err
			}

			if !spec.IsEmpty() {
				d.Transformer = &spec
			}

			args = args[:3]
		}

		if err := decodePositional(&yaml.Node{Kind: yaml.SequenceNode, Content: args}, &d.Type, &d.FilePath, &d.Model); err != nil {
			return err
		}
	}

	if d.Type == "" {
		return errMissingType
	}

	if d.Transformer != nil && d.Transformer.IsEmpty() {
		d.Transformer = nil
	}

	return nil
}

// TransformerSpec binds converter functions per direction.
type TransformerSpec struct {
	ToView   *FunctionRef
	FromView *FunctionRef
}

// IsEmpty returns true if no direction is bound.
func (t TransformerSpec) IsEmpty() bool {
	return t.ToView == nil && t.FromView == nil
}

// UnmarshalYAML accepts {toView?, fromView?}.
func (t *TransformerSpec) UnmarshalYAML(node *yaml.Node) error {
	// Raw nodes keep null and undefined literals, which would otherwise
	// be decoded as absent.
	var raw struct {
		ToView   yaml.Node `yaml:"toView"`
		FromView yaml.Node `yaml:"fromView"`
	}

	if err := node.Decode(&raw); err != nil {
		return err
	}

	var err error

	if t.ToView, err = functionRef(&raw.ToView); err != nil {
		return fmt.Errorf("toView: %w", err)
	}

	if t.FromView, err = functionRef(&raw.FromView); err != nil {
		return fmt.Errorf("fromView: %w", err)
	}

	return nil
}

// FunctionRef is a converter reference as written: a dotted path whose
// root is an imported name ("helpers.format"), or a literal value when
// the root matches no import.
type FunctionRef struct {
	Text string
}

// Root returns the identifier before the first ".".
func (f FunctionRef) Root() string {
	root, _, _ := strings.Cut(f.Text, ".")
	return root
}

// Name returns the last path segment, the function looked up in the
// module bound to Root.
func (f FunctionRef) Name() string {
	return f.Text[strings.LastIndex(f.Text, ".")+1:]
}

// functionRef converts a raw "string" or "{ function }" node. A zero node
// means the direction is not bound.
func functionRef(node *yaml.Node) (*FunctionRef, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!null":
			return &FunctionRef{Text: "null"}, nil
		case undefinedTag:
			return &FunctionRef{Text: "undefined"}, nil
		}

		if node.Value == "" {
			return nil, nil
		}

		return &FunctionRef{Text: node.Value}, nil
	case yaml.MappingNode:
		var obj struct {
			Function string `yaml:"function"`
		}

		if err := node.Decode(&obj); err != nil {
			return nil, err
		}

		if obj.Function == "" {
			return nil, errBadFunctionRef
		}

		return &FunctionRef{Text: obj.Function}, nil
	default:
		return nil, errBadFunctionRef
	}
}

// singleMapping returns the object of a one-argument list holding an object literal.
func singleMapping(node *yaml.Node) (*yaml.Node, bool) {
	switch {
	case node.Kind == yaml.MappingNode:
		return node, true
	case node.Kind == yaml.SequenceNode && len(node.Content) == 1 && node.Content[0].Kind == yaml.MappingNode:
		return node.Content[0], true
	default:
		return nil, false
	}
}

// decodePositional decodes the items of an argument list into dst in order.
func decodePositional(node *yaml.Node, dst ...*string) error {
	if node.Kind != yaml.SequenceNode {
		return errExpectedArgs
	}

	if len(node.Content) > len(dst) {
		return errTooManyArgs
	}

	for i, item := range node.Content {
		if item.Kind != yaml.ScalarNode {
			return fmt.Errorf("argument %d: expected a string", i+1)
		}

		if item.ShortTag() == "!!null" || item.Tag == undefinedTag {
			continue
		}

		if err := item.Decode(dst[i]); err != nil {
			return fmt.Errorf("argument %d: %w", i+1, err)
		}
	}

	return nil
}
