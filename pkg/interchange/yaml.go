package interchange

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MarshalYAML serializes an interchange value to YAML with object keys
// in insertion order.
func MarshalYAML(v Value) ([]byte, error) {
	node, err := toYAMLNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

// UnmarshalYAML parses YAML back into an interchange value, keeping
// mapping key order.
func UnmarshalYAML(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &InterchangeError{Message: err.Error()}
	}
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, nil
		}
		return fromYAMLNode(doc.Content[0])
	}
	return fromYAMLNode(&doc)
}

func toYAMLNode(v Value) (*yaml.Node, error) {
	switch val := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(val)}, nil
	case int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(val, 10)}, nil
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(val, 'g', -1, 64)}, nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: val}, nil
	case List:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range val {
			child, err := toYAMLNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case *Object:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range val.Keys() {
			child, _ := val.Get(key)
			childNode, err := toYAMLNode(child)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				childNode)
		}
		return node, nil
	default:
		return nil, &InterchangeError{Message: fmt.Sprintf("unsupported value type %T", v)}
	}
}

func fromYAMLNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!null":
			return nil, nil
		case "!!bool":
			b, err := strconv.ParseBool(node.Value)
			if err != nil {
				return nil, &InterchangeError{Message: fmt.Sprintf("bad bool %q", node.Value)}
			}
			return b, nil
		case "!!int":
			n, err := strconv.ParseInt(node.Value, 10, 64)
			if err != nil {
				return nil, &InterchangeError{Message: fmt.Sprintf("bad integer %q", node.Value)}
			}
			return n, nil
		case "!!float":
			f, err := strconv.ParseFloat(node.Value, 64)
			if err != nil {
				return nil, &InterchangeError{Message: fmt.Sprintf("bad float %q", node.Value)}
			}
			return f, nil
		default:
			return node.Value, nil
		}
	case yaml.SequenceNode:
		out := make(List, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := fromYAMLNode(child)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			v, err := fromYAMLNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(key, v)
		}
		return obj, nil
	case yaml.AliasNode:
		return fromYAMLNode(node.Alias)
	default:
		return nil, &InterchangeError{Message: fmt.Sprintf("unsupported YAML node kind %d", node.Kind)}
	}
}
