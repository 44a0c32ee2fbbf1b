package outputty

import (
	"fmt"
	"html"
	"io"
)

func writeHTML(t *Table, w io.Writer) error {
	header, rows, err := t.records()
	if err != nil {
		return err
	}
	aligns := t.columnAligns()

	return t.writeEncoded(w, func(out io.Writer) error {
		if _, err := fmt.Fprintln(out, "<table>"); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, "  <thead>"); err != nil {
			return err
		}
		if err := writeHTMLRow(out, "th", header, aligns); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, "  </thead>"); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, "  <tbody>"); err != nil {
			return err
		}
		for _, row := range rows {
			if err := writeHTMLRow(out, "td", row, aligns); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(out, "  </tbody>"); err != nil {
			return err
		}
		_, err := fmt.Fprintln(out, "</table>")
		return err
	})
}

func writeHTMLRow(w io.Writer, tag string, cells []string, aligns []alignment) error {
	if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
		return err
	}
	for i, cell := range cells {
		style := alignStyle(aligns, i)
		if _, err := fmt.Fprintf(w, "      <%s%s>%s</%s>\n", tag, style, html.EscapeString(cell), tag); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "    </tr>")
	return err
}

func alignStyle(aligns []alignment, col int) string {
	if col >= len(aligns) {
		return ""
	}
	switch aligns[col] {
	case alignRight:
		return ` style="text-align: right"`
	case alignCenter:
		return ` style="text-align: center"`
	default:
		return ""
	}
}
