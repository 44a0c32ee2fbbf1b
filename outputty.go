package outputty

import (
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"
)

// Sentinel errors for programmatic error handling.
var (
	ErrInvalidHeader   = errors.New("invalid header")
	ErrDuplicateHeader = errors.New("duplicate header")
	ErrRowLength       = errors.New("row length mismatch")
	ErrRowShape        = errors.New("unsupported row shape")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrIndex           = errors.New("row index out of range")
	ErrRowNotFound     = errors.New("row not found")
	ErrConversion      = errors.New("conversion failed")
	ErrUnknownEncoding = errors.New("unknown encoding")
)

// DefaultEncoding is the input and output codec of a new table.
const DefaultEncoding = "utf-8"

// Table holds an ordered set of unique headers and rows aligned to them.
// Every stored row has exactly one value per header; nil marks an absent
// value. A Table is not safe for concurrent use.
type Table struct {
	headers []string
	index   map[string]int
	rows    [][]any
	types   map[string]Type

	orderBy  string
	ordering Ordering

	border   borderChars
	nullText string

	inputEncoding  string
	outputEncoding string
}

// Option configures a Table.
type Option func(*Table)

// WithInputEncoding sets the codec used to decode raw-byte cell values.
func WithInputEncoding(name string) Option {
	return func(t *Table) { t.inputEncoding = name }
}

// WithOutputEncoding sets the codec used to encode text on the way out.
func WithOutputEncoding(name string) Option {
	return func(t *Table) { t.outputEncoding = name }
}

// WithOrderBy sets the default sort applied before rendering and export.
func WithOrderBy(column string, ordering Ordering) Option {
	return func(t *Table) {
		t.orderBy = column
		t.ordering = ordering
	}
}

// WithSymbols sets the box-drawing characters: dash for horizontal rules,
// pipe between cells and plus at every junction.
func WithSymbols(dash, pipe, plus string) Option {
	return func(t *Table) { t.border = symbolBorder(dash, pipe, plus) }
}

// WithBorder selects one of the named border sets.
func WithBorder(style BorderStyle) Option {
	return func(t *Table) {
		if bc, ok := borderSets[style]; ok {
			t.border = bc
		}
	}
}

// WithNullText sets how absent values render. Default: empty string.
func WithNullText(s string) Option {
	return func(t *Table) { t.nullText = s }
}

// New creates a table with the given headers. Headers must be valid UTF-8
// and unique. Encodings are resolved eagerly so a bad codec name fails here.
func New(headers []string, opts ...Option) (*Table, error) {
	t := &Table{
		types:          map[string]Type{},
		ordering:       Ascending,
		border:         borderSets[BorderASCII],
		inputEncoding:  DefaultEncoding,
		outputEncoding: DefaultEncoding,
	}
	if err := t.setHeaders(headers); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(t)
	}
	if _, err := lookupEncoding(t.inputEncoding); err != nil {
		return nil, err
	}
	if _, err := lookupEncoding(t.outputEncoding); err != nil {
		return nil, err
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Headers returns a copy of the header names in column order.
func (t *Table) Headers() []string { return slices.Clone(t.headers) }

// SetHeaders replaces every header name. When the table already holds rows
// the header count must not change.
func (t *Table) SetHeaders(headers []string) error {
	if len(t.rows) > 0 && len(headers) != len(t.headers) {
		return fmt.Errorf("%w: table has %d columns, got %d headers", ErrRowLength, len(t.headers), len(headers))
	}
	return t.setHeaders(headers)
}

// RenameHeader changes the name of one column in place.
func (t *Table) RenameHeader(old, name string) error {
	i, err := t.columnIndex(old)
	if err != nil {
		return err
	}
	headers := slices.Clone(t.headers)
	headers[i] = name
	if err := t.setHeaders(headers); err != nil {
		return err
	}
	if typ, ok := t.types[old]; ok {
		delete(t.types, old)
		t.types[name] = typ
	}
	if t.orderBy == old {
		t.orderBy = name
	}
	return nil
}

func (t *Table) setHeaders(headers []string) error {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		if !utf8.ValidString(h) {
			return fmt.Errorf("%w: header %d is not text: %q", ErrInvalidHeader, i, h)
		}
		if _, dup := index[h]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateHeader, h)
		}
		index[h] = i
	}
	t.headers = slices.Clone(headers)
	t.index = index
	return nil
}

func (t *Table) columnIndex(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return i, nil
}

// organize prepares the table for output: decode, then apply the default
// ordering when one is configured.
func (t *Table) organize() error {
	if err := t.Decode(""); err != nil {
		return err
	}
	if t.orderBy != "" {
		return t.OrderBy(t.orderBy, t.ordering)
	}
	return nil
}
