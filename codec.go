package outputty

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Common short names that the IANA and WHATWG indexes either lack or map
// to a different charset.
var knownEncodings = map[string]encoding.Encoding{
	"utf8":       unicode.UTF8,
	"utf-8":      unicode.UTF8,
	"utf16":      unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf-16":     unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"latin1":     charmap.ISO8859_1,
	"latin-1":    charmap.ISO8859_1,
	"iso-8859-1": charmap.ISO8859_1,
	"iso8859-1":  charmap.ISO8859_1,
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if enc, ok := knownEncodings[key]; ok {
		return enc, nil
	}
	if enc, err := ianaindex.IANA.Encoding(key); err == nil && enc != nil {
		return enc, nil
	}
	if enc, err := htmlindex.Get(key); err == nil {
		return enc, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

// Decode converts every raw-byte ([]byte) cell into text using codec, or the
// input encoding when codec is empty. Other values pass through. Headers are
// always text and are left alone.
func (t *Table) Decode(codec string) error {
	if codec == "" {
		codec = t.inputEncoding
	}
	enc, err := lookupEncoding(codec)
	if err != nil {
		return err
	}
	return t.mapCells(func(v any) (any, error) { return decodeValue(v, enc) })
}

// Encode converts every text (string) cell into raw bytes using codec, or the
// output encoding when codec is empty. Other values pass through.
func (t *Table) Encode(codec string) error {
	if codec == "" {
		codec = t.outputEncoding
	}
	enc, err := lookupEncoding(codec)
	if err != nil {
		return err
	}
	return t.mapCells(func(v any) (any, error) { return encodeValue(v, enc) })
}

// mapCells rewrites every cell with fn. The table is only updated when every
// cell converts.
func (t *Table) mapCells(fn func(any) (any, error)) error {
	rows := make([][]any, len(t.rows))
	for r, row := range t.rows {
		out := make([]any, len(row))
		for c, v := range row {
			converted, err := fn(v)
			if err != nil {
				return fmt.Errorf("row %d column %q: %w", r, t.headers[c], err)
			}
			out[c] = converted
		}
		rows[r] = out
	}
	t.rows = rows
	return nil
}

func decodeValue(v any, enc encoding.Encoding) (any, error) {
	b, ok := v.([]byte)
	if !ok {
		return v, nil
	}
	s, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrConversion, err)
	}
	return string(s), nil
}

func encodeValue(v any, enc encoding.Encoding) (any, error) {
	s, ok := v.(string)
	if !ok {
		return v, nil
	}
	b, err := enc.NewEncoder().String(s)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %w", ErrConversion, err)
	}
	return []byte(b), nil
}

func (t *Table) inputReader(r io.Reader) (io.Reader, error) {
	enc, err := lookupEncoding(t.inputEncoding)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// outputWriter wraps w so text written through it is encoded with the output
// encoding. The returned writer must be closed to flush.
func (t *Table) outputWriter(w io.Writer) (io.WriteCloser, error) {
	enc, err := lookupEncoding(t.outputEncoding)
	if err != nil {
		return nil, err
	}
	return transform.NewWriter(w, enc.NewEncoder()), nil
}
