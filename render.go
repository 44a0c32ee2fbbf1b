package outputty

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/mattn/go-runewidth"
)

// BorderStyle selects a named set of box-drawing characters.
type BorderStyle int

const (
	BorderASCII   BorderStyle = iota // +-+|
	BorderRounded                    // ╭─╮╰╯│┬┴├┤┼
	BorderHeavy                      // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble                     // ╔═╗╚╝║╦╩╠╣╬
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[BorderStyle]borderChars{
	BorderASCII: symbolBorder("-", "|", "+"),
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

func symbolBorder(dash, pipe, plus string) borderChars {
	return borderChars{
		topLeft: plus, topRight: plus, bottomLeft: plus, bottomRight: plus,
		horizontal: dash, vertical: pipe,
		topTee: plus, bottomTee: plus, leftTee: plus, rightTee: plus,
		cross: plus,
	}
}

type alignment int

const (
	alignLeft alignment = iota
	alignCenter
	alignRight
)

// Render organizes the table (decode, default ordering) and draws it as a
// box: a rule, the centered headers, a rule, one right-aligned line per row
// and a closing rule when there is at least one row. Lines are joined by
// newlines without a trailing one. A table with no headers and no rows
// renders as the empty string.
func (t *Table) Render() (string, error) {
	if err := t.organize(); err != nil {
		return "", err
	}
	if len(t.headers) == 0 && len(t.rows) == 0 {
		return "", nil
	}
	cells := t.cellText(t.nullText)
	widths := computeWidths(t.headers, cells)
	bc := t.border

	var lines []string
	lines = append(lines,
		hLine(widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight),
		cellLine(t.headers, widths, alignCenter, bc.vertical),
		hLine(widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee),
	)
	for _, row := range cells {
		lines = append(lines, cellLine(row, widths, alignRight, bc.vertical))
	}
	if len(cells) > 0 {
		lines = append(lines, hLine(widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight))
	}
	return strings.Join(lines, "\n"), nil
}

// String implements fmt.Stringer.
func (t *Table) String() string {
	s, err := t.Render()
	if err != nil {
		return fmt.Sprintf("%%!v(outputty: %v)", err)
	}
	return s
}

// WriteTo writes the rendering and a trailing newline to w, encoded with the
// output encoding, and reports the encoded byte count. Nothing is written for
// an empty table.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	s, err := t.Render()
	if err != nil || s == "" {
		return 0, err
	}
	cw := &countingWriter{w: w}
	out, err := t.outputWriter(cw)
	if err != nil {
		return 0, err
	}
	if _, err := io.WriteString(out, s+"\n"); err != nil {
		return cw.n, err
	}
	err = out.Close()
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// cellText formats every cell for display.
func (t *Table) cellText(null string) [][]string {
	out := make([][]string, len(t.rows))
	for r, row := range t.rows {
		cells := make([]string, len(row))
		for c, v := range row {
			cells[c] = formatValue(v, null)
		}
		out[r] = cells
	}
	return out
}

func computeWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func hLine(widths []int, left, fill, mid, right string) string {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	return sb.String()
}

func cellLine(cells []string, widths []int, align alignment, vert string) string {
	padded := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = alignCell(cell, width, align)
	}
	return vert + " " + strings.Join(padded, " "+vert+" ") + " " + vert
}

// alignCell pads s to width display cells. Centering puts the odd space on
// the left when both the padding and the width are odd.
func alignCell(s string, width int, align alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case alignRight:
		return strings.Repeat(" ", pad) + s
	case alignCenter:
		left := pad/2 + (pad & width & 1)
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}

// formatValue renders a cell value as text; null stands in for nil.
func formatValue(v any, null string) string {
	switch x := v.(type) {
	case nil:
		return null
	case string:
		return x
	case []byte:
		return string(x)
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	case civil.DateTime:
		return x.Date.String() + " " + x.Time.String()
	case fmt.Stringer:
		return x.String()
	}
	if i, ok := toInt(v); ok {
		if _, isBool := v.(bool); !isBool {
			return strconv.FormatInt(i, 10)
		}
	}
	return fmt.Sprint(v)
}

// formatFloat uses plain notation for ordinary magnitudes and exponent
// notation for very large or very small ones.
func formatFloat(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
