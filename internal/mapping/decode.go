package mapping

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"view-generator/internal/analyze"
)

// DirectiveError reports decorator arguments that do not fit the decorator.
type DirectiveError struct {
	Path      string
	Line      int
	Decorator string
	Err       error
}

// Error implements error.
func (e *DirectiveError) Error() string {
	return fmt.Sprintf("%s:%d: invalid @%s arguments: %v", e.Path, e.Line, e.Decorator, e.Err)
}

// Unwrap returns the underlying decoding error.
func (e *DirectiveError) Unwrap() error {
	return e.Err
}

// decodeDecorator decodes the arguments of dec into out.
func decodeDecorator(path string, dec analyze.Decorator, out yaml.Unmarshaler) error {
	if err := ArgsNode(dec.Args).Decode(out); err != nil {
		return &DirectiveError{Path: path, Line: dec.Line, Decorator: dec.Name, Err: err}
	}

	return nil
}

// ArgsNode converts a decorator argument list into a sequence node.
func ArgsNode(args []analyze.Value) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, a := range args {
		node.Content = append(node.Content, ValueNode(a))
	}

	return node
}

// ValueNode converts one literal argument into a node. Strings and
// unparsed expressions become !!str scalars; numbers and booleans are
// left for YAML to resolve.
func ValueNode(v analyze.Value) *yaml.Node {
	switch v.Kind {
	case analyze.ValueString, analyze.ValueIdent:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Text, Line: v.Line}
	case analyze.ValueNumber, analyze.ValueBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: v.Text, Line: v.Line}
	case analyze.ValueNull:
		if v.Text == "undefined" {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: undefinedTag, Value: v.Text, Line: v.Line}
		}

		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null", Line: v.Line}
	case analyze.ValueObject:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Line: v.Line}
		for _, kv := range v.Fields {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv.Key, Line: kv.Value.Line},
				ValueNode(kv.Value),
			)
		}

		return node
	case analyze.ValueArray:
		node := ArgsNode(v.Items)
		node.Line = v.Line

		return node
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Text, Line: v.Line}
	}
}
