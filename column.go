package outputty

import "slices"

// Column returns the values of the named column, one per row. A table with
// no rows yields an empty slice.
func (t *Table) Column(name string) ([]any, error) {
	i, err := t.columnIndex(name)
	if err != nil {
		return nil, err
	}
	values := make([]any, len(t.rows))
	for r, row := range t.rows {
		values[r] = row[i]
	}
	return values, nil
}

// DeleteColumn removes the named column from the headers and from every row.
// Removing the last column removes every row too. An unknown name leaves the
// table unchanged.
func (t *Table) DeleteColumn(name string) error {
	i, err := t.columnIndex(name)
	if err != nil {
		return err
	}
	if err := t.setHeaders(slices.Delete(slices.Clone(t.headers), i, i+1)); err != nil {
		return err
	}
	if len(t.headers) == 0 {
		t.rows = nil
	}
	for r, row := range t.rows {
		t.rows[r] = slices.Delete(row, i, i+1)
	}
	delete(t.types, name)
	if t.orderBy == name {
		t.orderBy = ""
	}
	return nil
}
