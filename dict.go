package outputty

import "slices"

// ToListOfDicts returns one map per row keyed by header. Text values are
// encoded with the output encoding, so they come back as []byte. As a side
// effect the table's cells are left decoded with the output encoding.
func (t *Table) ToListOfDicts() ([]map[string]any, error) {
	if err := t.organize(); err != nil {
		return nil, err
	}
	if err := t.Encode(""); err != nil {
		return nil, err
	}
	out := make([]map[string]any, len(t.rows))
	for r, row := range t.rows {
		m := make(map[string]any, len(t.headers))
		for c, h := range t.headers {
			m[h] = row[c]
		}
		out[r] = m
	}
	return out, t.Decode(t.outputEncoding)
}

// ToDict maps each header to its full column. A nil only selects every
// column; otherwise only the headers listed in only are kept, so an empty
// non-nil slice yields an empty map. A table without rows yields an empty
// map. Text values are encoded as in [Table.ToListOfDicts].
func (t *Table) ToDict(only []string) (map[string][]any, error) {
	if err := t.organize(); err != nil {
		return nil, err
	}
	if err := t.Encode(""); err != nil {
		return nil, err
	}
	out := map[string][]any{}
	if len(t.rows) > 0 {
		for c, h := range t.headers {
			if only != nil && !slices.Contains(only, h) {
				continue
			}
			column := make([]any, len(t.rows))
			for r, row := range t.rows {
				column[r] = row[c]
			}
			out[h] = column
		}
	}
	return out, t.Decode(t.outputEncoding)
}

// ToMap builds a single mapping from the key column to the value column.
// Keys are the key cells as text; when keys repeat the last row wins.
func (t *Table) ToMap(key, value string) (map[string]any, error) {
	ki, err := t.columnIndex(key)
	if err != nil {
		return nil, err
	}
	vi, err := t.columnIndex(value)
	if err != nil {
		return nil, err
	}
	if err := t.organize(); err != nil {
		return nil, err
	}
	if err := t.Encode(""); err != nil {
		return nil, err
	}
	out := make(map[string]any, len(t.rows))
	for _, row := range t.rows {
		out[formatValue(row[ki], "")] = row[vi]
	}
	return out, t.Decode(t.outputEncoding)
}
