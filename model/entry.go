package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is one form submission: string values kept in insertion order.
// The zero value is an empty entry ready to use.
type Entry struct {
	keys   []string
	values map[string]string
}

func NewEntry() Entry {
	return Entry{values: map[string]string{}}
}

// Set adds key at the end, or replaces its value in place.
func (e *Entry) Set(key, value string) {
	if e.values == nil {
		e.values = map[string]string{}
	}
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
}

func (e Entry) Get(key string) string {
	return e.values[key]
}

func (e Entry) Lookup(key string) (string, bool) {
	v, ok := e.values[key]
	return v, ok
}

func (e Entry) Keys() []string {
	return append([]string(nil), e.keys...)
}

func (e Entry) Len() int {
	return len(e.keys)
}

func (e Entry) Clone() Entry {
	c := Entry{
		keys:   e.Keys(),
		values: make(map[string]string, len(e.values)),
	}
	for k, v := range e.values {
		c.values[k] = v
	}
	return c
}

// Equal reports whether both entries hold the same keys, in the same order,
// with the same values.
func (e Entry) Equal(o Entry) bool {
	if len(e.keys) != len(o.keys) {
		return false
	}
	for i, k := range e.keys {
		if o.keys[i] != k || o.values[k] != e.values[k] {
			return false
		}
	}
	return true
}

func (e Entry) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range e.keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: validUTF8(k)},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: validUTF8(e.values[k])},
		)
	}
	return node, nil
}

// validUTF8 replaces invalid byte sequences, which cannot be encoded as !!str.
func validUTF8(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}

func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		*e = NewEntry()
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: entry must be a mapping", node.Line)
	}

	out := NewEntry()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], resolveAlias(node.Content[i+1])
		if key.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: entry keys must be scalars", key.Line)
		}
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: value of %q is not a scalar", value.Line, key.Value)
		}
		if value.ShortTag() == "!!null" {
			out.Set(key.Value, "")
			continue
		}
		out.Set(key.Value, value.Value)
	}
	*e = out
	return nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// MarshalJSON writes the entry as a JSON object preserving key order.
func (e Entry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range e.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(e.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
