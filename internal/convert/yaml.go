package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlFromValue builds a yaml.Node tree from a parsed JSON value.
// Working at the node level keeps object key order intact, which a
// map-based encode would lose.
func yamlFromValue(v any) *yaml.Node {
	switch t := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(t)}
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(t.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: t.String()}
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t}
	case Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range t {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key},
				yamlFromValue(m.Value),
			)
		}
		return n
	case Array:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, el := range t {
			n.Content = append(n.Content, yamlFromValue(el))
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fmt.Sprintf("%v", t)}
	}
}

// encodeYAML serializes a value tree as YAML with a two-space indent.
// Nodes are built fresh per call, so the output never contains anchors
// or aliases.
func encodeYAML(v any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(yamlFromValue(v)); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// decodeYAML parses YAML text into the ordered value model. Mapping
// order is preserved and alias nodes are resolved in place, so the
// resulting JSON is self-contained.
func decodeYAML(text string) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		return nil, errors.New("empty YAML document")
	}
	return valueFromYAML(&root)
}

func valueFromYAML(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, errors.New("empty YAML document")
		}
		return valueFromYAML(n.Content[0])
	case yaml.AliasNode:
		return valueFromYAML(n.Alias)
	case yaml.MappingNode:
		obj := Object{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			val, err := valueFromYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj = append(obj, Member{Key: n.Content[i].Value, Value: val})
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := Array{}
		for _, c := range n.Content {
			val, err := valueFromYAML(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		return arr, nil
	case yaml.ScalarNode:
		return scalarFromYAML(n)
	}
	return nil, fmt.Errorf("unsupported YAML node kind %d", n.Kind)
}

func scalarFromYAML(n *yaml.Node) (any, error) {
	switch n.Tag {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, err
		}
		return json.Number(strconv.FormatInt(i, 10)), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return json.Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
	default:
		// Strings, timestamps and anything exotic keep their text form.
		return n.Value, nil
	}
}
