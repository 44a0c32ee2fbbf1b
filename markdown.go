package outputty

import (
	"fmt"
	"io"
	"strings"
)

// columnAligns right-aligns columns last inferred as numeric.
func (t *Table) columnAligns() []alignment {
	aligns := make([]alignment, len(t.headers))
	for i, h := range t.headers {
		if typ, ok := t.types[h]; ok && (typ == Integer || typ == Float) {
			aligns[i] = alignRight
		}
	}
	return aligns
}

func writeMarkdown(t *Table, w io.Writer) error {
	header, rows, err := t.records()
	if err != nil {
		return err
	}
	header = escapeMarkdownRow(header)
	for i, row := range rows {
		rows[i] = escapeMarkdownRow(row)
	}
	numCols := len(header)

	// Minimum width 3 leaves room for alignment markers.
	widths := computeWidths(header, rows)
	for i := range widths {
		widths[i] = max(widths[i], 3)
	}
	aligns := t.columnAligns()

	return t.writeEncoded(w, func(out io.Writer) error {
		if err := writeMarkdownRow(out, header, widths, aligns); err != nil {
			return err
		}
		sep := make([]string, numCols)
		for i, width := range widths {
			switch aligns[i] {
			case alignRight:
				sep[i] = strings.Repeat("-", width-1) + ":"
			case alignCenter:
				sep[i] = ":" + strings.Repeat("-", width-2) + ":"
			default:
				sep[i] = strings.Repeat("-", width)
			}
		}
		if _, err := fmt.Fprintf(out, "| %s |\n", strings.Join(sep, " | ")); err != nil {
			return err
		}
		for _, row := range rows {
			if err := writeMarkdownRow(out, row, widths, aligns); err != nil {
				return err
			}
		}
		return nil
	})
}

func escapeMarkdownRow(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	return out
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int, aligns []alignment) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = alignCell(cell, width, aligns[i])
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}
