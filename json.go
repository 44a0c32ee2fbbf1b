package outputty

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// record is one row as an object whose keys keep header order.
type record struct {
	keys   []string
	values []any
}

func (r record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.values[i])
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

// objectRecords organizes the table and returns each row as a record with
// values suitable for JSON and YAML encoders.
func (t *Table) objectRecords() ([]record, error) {
	if err := t.organize(); err != nil {
		return nil, err
	}
	out := make([]record, len(t.rows))
	for r, row := range t.rows {
		values := make([]any, len(row))
		for c, v := range row {
			values[c] = plainValue(v)
		}
		out[r] = record{keys: t.headers, values: values}
	}
	return out, nil
}

// plainValue leaves scalars alone and turns everything else into its display
// text.
func plainValue(v any) any {
	switch v.(type) {
	case nil, string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64, *big.Int:
		return v
	}
	return formatValue(v, "")
}

func writeJSON(t *Table, w io.Writer) error {
	recs, err := t.objectRecords()
	if err != nil {
		return err
	}
	return t.writeEncoded(w, func(out io.Writer) error {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	})
}

// objects collects decoded objects and the union of their keys in the order
// first seen.
type objects struct {
	keys  []string
	seen  map[string]bool
	items []any
}

func (o *objects) add(keys []string, values map[string]any) {
	if o.seen == nil {
		o.seen = map[string]bool{}
	}
	for _, k := range keys {
		if !o.seen[k] {
			o.seen[k] = true
			o.keys = append(o.keys, k)
		}
	}
	o.items = append(o.items, values)
}

func readJSON(t *Table, r io.Reader) error {
	in, err := t.inputReader(r)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(in)
	dec.UseNumber()
	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return fmt.Errorf("%w: json input must be an array of objects", ErrRowShape)
	}
	var objs objects
	for dec.More() {
		keys, values, err := decodeObject(dec)
		if err != nil {
			return err
		}
		objs.add(keys, values)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return t.load(objs.keys, objs.items, false)
}

// decodeObject reads one JSON object from dec, keeping its key order.
func decodeObject(dec *json.Decoder) ([]string, map[string]any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("%w: expected json object, got %v", ErrRowShape, tok)
	}
	var keys []string
	values := map[string]any{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key := tok.(string)
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, nil, err
		}
		if _, dup := values[key]; !dup {
			keys = append(keys, key)
		}
		values[key] = jsonCell(v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return keys, values, nil
}

// jsonCell keeps numbers as their literal text so type inference sees the
// same input a delimited file would give.
func jsonCell(v any) any {
	if n, ok := v.(json.Number); ok {
		return n.String()
	}
	return v
}
