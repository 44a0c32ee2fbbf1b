package outputty

import (
	"fmt"
	"io"
	"strings"
)

// writePlain writes each row on its own line with cells separated by a
// single space. No header is written.
func writePlain(t *Table, w io.Writer) error {
	_, rows, err := t.records()
	if err != nil {
		return err
	}
	return t.writeEncoded(w, func(out io.Writer) error {
		for _, row := range rows {
			if _, err := fmt.Fprintln(out, strings.Join(row, " ")); err != nil {
				return err
			}
		}
		return nil
	})
}
