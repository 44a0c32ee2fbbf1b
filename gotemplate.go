package outputty

import (
	"fmt"
	"io"
	"text/template"
)

// templateWriter executes tmplStr once per row, each on its own line. The
// row is a map from header to its decoded value.
func templateWriter(tmplStr string) WriteFunc {
	return func(t *Table, w io.Writer) error {
		tmpl, err := template.New("").Parse(tmplStr)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidTemplate, err)
		}
		if err := t.organize(); err != nil {
			return err
		}
		return t.writeEncoded(w, func(out io.Writer) error {
			for _, row := range t.rows {
				data := make(map[string]any, len(t.headers))
				for c, h := range t.headers {
					data[h] = row[c]
				}
				if err := tmpl.Execute(out, data); err != nil {
					return err
				}
				if _, err := fmt.Fprintln(out); err != nil {
					return err
				}
			}
			return nil
		})
	}
}
