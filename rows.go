package outputty

import (
	"fmt"
	"reflect"
	"slices"
)

// normalizeRow converts an accepted row shape into a fresh []any aligned to
// the headers. Caller-owned slices and maps are never retained or mutated.
//
// Accepted shapes are slices and arrays of any element type, already in
// header order, and maps with string keys keyed by header name. Missing keys
// become nil; keys that are not headers are ignored.
func (t *Table) normalizeRow(item any) ([]any, error) {
	var row []any
	switch v := item.(type) {
	case []any:
		row = slices.Clone(v)
		if row == nil {
			row = []any{}
		}
	case []string:
		row = make([]any, len(v))
		for i, s := range v {
			row[i] = s
		}
	case map[string]any:
		row = make([]any, len(t.headers))
		for i, h := range t.headers {
			row[i] = v[h]
		}
	case map[string]string:
		row = make([]any, len(t.headers))
		for i, h := range t.headers {
			if s, ok := v[h]; ok {
				row[i] = s
			}
		}
	default:
		var err error
		if row, err = t.reflectRow(item); err != nil {
			return nil, err
		}
	}
	if len(row) != len(t.headers) {
		return nil, fmt.Errorf("%w: got %d values, want %d", ErrRowLength, len(row), len(t.headers))
	}
	return row, nil
}

// reflectRow handles slices, arrays and string-keyed maps of any other
// element type.
func (t *Table) reflectRow(item any) ([]any, error) {
	rv := reflect.ValueOf(item)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		row := make([]any, rv.Len())
		for i := range row {
			row[i] = rv.Index(i).Interface()
		}
		return row, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		keyType := rv.Type().Key()
		row := make([]any, len(t.headers))
		for i, h := range t.headers {
			if v := rv.MapIndex(reflect.ValueOf(h).Convert(keyType)); v.IsValid() {
				row[i] = v.Interface()
			}
		}
		return row, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrRowShape, item)
}

// Normalize checks that every stored row holds one value per header. Rows
// are normalized as they enter the table, so for a table built through its
// methods this always succeeds and changes nothing.
func (t *Table) Normalize() error {
	for i, row := range t.rows {
		if len(row) != len(t.headers) {
			return fmt.Errorf("%w: row %d has %d values, want %d", ErrRowLength, i, len(row), len(t.headers))
		}
	}
	return nil
}

// Append adds a row at the end.
func (t *Table) Append(item any) error {
	row, err := t.normalizeRow(item)
	if err != nil {
		return err
	}
	t.rows = append(t.rows, row)
	return nil
}

// Insert adds a row before position pos. Negative positions count from the
// end; positions past either end are clamped.
func (t *Table) Insert(pos int, item any) error {
	row, err := t.normalizeRow(item)
	if err != nil {
		return err
	}
	n := len(t.rows)
	if pos < 0 {
		pos = max(pos+n, 0)
	}
	pos = min(pos, n)
	t.rows = slices.Insert(t.rows, pos, row)
	return nil
}

// Extend appends all items. Every item is validated before any is added, so
// a single bad item leaves the table unchanged.
func (t *Table) Extend(items ...any) error {
	rows, err := t.prepare(items)
	if err != nil {
		return err
	}
	t.rows = append(t.rows, rows...)
	return nil
}

func (t *Table) prepare(items []any) ([][]any, error) {
	rows := make([][]any, 0, len(items))
	for i, item := range items {
		row, err := t.normalizeRow(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Row returns a copy of the row at index i. Negative indexes count from the
// end.
func (t *Table) Row(i int) ([]any, error) {
	i, err := t.rowIndex(i)
	if err != nil {
		return nil, err
	}
	return slices.Clone(t.rows[i]), nil
}

// Rows returns a copy of every row.
func (t *Table) Rows() [][]any {
	out := make([][]any, len(t.rows))
	for i, row := range t.rows {
		out[i] = slices.Clone(row)
	}
	return out
}

// SetRow replaces the row at index i.
func (t *Table) SetRow(i int, item any) error {
	i, err := t.rowIndex(i)
	if err != nil {
		return err
	}
	row, err := t.normalizeRow(item)
	if err != nil {
		return err
	}
	t.rows[i] = row
	return nil
}

// Delete removes the row at index i.
func (t *Table) Delete(i int) error {
	i, err := t.rowIndex(i)
	if err != nil {
		return err
	}
	t.rows = slices.Delete(t.rows, i, i+1)
	return nil
}

// Pop removes and returns the last row.
func (t *Table) Pop() ([]any, error) {
	return t.PopAt(-1)
}

// PopAt removes and returns the row at index i.
func (t *Table) PopAt(i int) ([]any, error) {
	i, err := t.rowIndex(i)
	if err != nil {
		return nil, err
	}
	row := t.rows[i]
	t.rows = slices.Delete(t.rows, i, i+1)
	return row, nil
}

// Index returns the position of the first row equal to item.
func (t *Table) Index(item any) (int, error) {
	row, err := t.normalizeRow(item)
	if err != nil {
		return 0, err
	}
	for i, r := range t.rows {
		if reflect.DeepEqual(r, row) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %v", ErrRowNotFound, row)
}

// Count returns how many rows equal item.
func (t *Table) Count(item any) (int, error) {
	row, err := t.normalizeRow(item)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, r := range t.rows {
		if reflect.DeepEqual(r, row) {
			n++
		}
	}
	return n, nil
}

// Remove deletes the first row equal to item.
func (t *Table) Remove(item any) error {
	i, err := t.Index(item)
	if err != nil {
		return err
	}
	t.rows = slices.Delete(t.rows, i, i+1)
	return nil
}

// Reverse reverses the row order in place.
func (t *Table) Reverse() {
	slices.Reverse(t.rows)
}

func (t *Table) rowIndex(i int) (int, error) {
	n := len(t.rows)
	j := i
	if j < 0 {
		j += n
	}
	if j < 0 || j >= n {
		return 0, fmt.Errorf("%w: %d (len %d)", ErrIndex, i, n)
	}
	return j, nil
}
