// File: yaml.go
// Title: YAML Serializer
// Description: Renders the snapshot as a YAML document preserving field
//              order.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

package enhanced

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// ToYAML renders the composite as a YAML mapping with two-space indent
func (e *Error) ToYAML() (string, error) {
	return e.serialize(FormatYAML, func(snap *Object) (string, error) {
		root, err := yamlNode(snap)
		if err != nil {
			return "", err
		}

		var b strings.Builder
		enc := yaml.NewEncoder(&b)
		enc.SetIndent(2)
		if err := enc.Encode(root); err != nil {
			return "", err
		}
		if err := enc.Close(); err != nil {
			return "", err
		}
		return b.String(), nil
	})
}

func yamlNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case *Object:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			val, err := yamlNode(pair.Value)
			if err != nil {
				return nil, err
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key}
			node.Content = append(node.Content, key, val)
		}
		return node, nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range t {
			val, err := yamlNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, val)
		}
		return node, nil
	}

	node := &yaml.Node{}
	if err := node.Encode(v); err != nil {
		return nil, err
	}
	return node, nil
}
