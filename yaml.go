package outputty

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"gopkg.in/yaml.v3"
)

// MarshalYAML emits the record as a mapping node so keys keep header order.
func (r record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for i, k := range r.keys {
		var key, value yaml.Node
		key.SetString(k)
		if n, ok := r.values[i].(*big.Int); ok && n != nil {
			value = yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: n.String()}
		} else if err := value.Encode(r.values[i]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &key, &value)
	}
	return node, nil
}

func writeYAML(t *Table, w io.Writer) error {
	recs, err := t.objectRecords()
	if err != nil {
		return err
	}
	return t.writeEncoded(w, func(out io.Writer) error {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(recs); err != nil {
			return err
		}
		return enc.Close()
	})
}

// readYAML reads a sequence of mappings. Scalars are kept as their text so
// type inference applies; explicit nulls become nil.
func readYAML(t *Table, r io.Reader) error {
	in, err := t.inputReader(r)
	if err != nil {
		return err
	}
	var doc yaml.Node
	if err := yaml.NewDecoder(in).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if len(doc.Content) == 0 {
		return nil
	}
	seq := doc.Content[0]
	if seq.Kind != yaml.SequenceNode {
		return fmt.Errorf("%w: yaml input must be a sequence of mappings", ErrRowShape)
	}
	var objs objects
	for _, item := range seq.Content {
		if item.Kind != yaml.MappingNode {
			return fmt.Errorf("%w: yaml line %d: expected mapping", ErrRowShape, item.Line)
		}
		var keys []string
		values := map[string]any{}
		for i := 0; i+1 < len(item.Content); i += 2 {
			key := item.Content[i].Value
			cell, err := yamlCell(item.Content[i+1])
			if err != nil {
				return err
			}
			if _, dup := values[key]; !dup {
				keys = append(keys, key)
			}
			values[key] = cell
		}
		objs.add(keys, values)
	}
	return t.load(objs.keys, objs.items, false)
}

func yamlCell(n *yaml.Node) (any, error) {
	if n.Kind == yaml.ScalarNode {
		if n.ShortTag() == "!!null" {
			return nil, nil
		}
		return n.Value, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
