package outputty

import (
	"encoding/csv"
	"io"
)

// readDelimited reads CSV-style input: the first record is the header and
// every later record is a row of string cells.
func readDelimited(comma rune) ReadFunc {
	return func(t *Table, r io.Reader) error {
		in, err := t.inputReader(r)
		if err != nil {
			return err
		}
		cr := csv.NewReader(in)
		cr.Comma = comma
		cr.FieldsPerRecord = -1
		if comma == '\t' {
			cr.LazyQuotes = true
		}
		records, err := cr.ReadAll()
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		items := make([]any, len(records)-1)
		for i, rec := range records[1:] {
			items[i] = rec
		}
		return t.load(records[0], items, true)
	}
}

func writeDelimited(comma rune) WriteFunc {
	return func(t *Table, w io.Writer) error {
		header, rows, err := t.records()
		if err != nil {
			return err
		}
		return t.writeEncoded(w, func(out io.Writer) error {
			cw := csv.NewWriter(out)
			cw.Comma = comma
			if err := cw.Write(header); err != nil {
				return err
			}
			if err := cw.WriteAll(rows); err != nil {
				return err
			}
			return cw.Error()
		})
	}
}
