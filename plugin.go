package outputty

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

// Sentinel errors returned by the format registry.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrNotReadable       = errors.New("format cannot be read")
	ErrNotWritable       = errors.New("format cannot be written")
	ErrInvalidTemplate   = errors.New("invalid template")
)

// Format names a registered read/write plugin.
type Format string

// Built-in formats.
const (
	TableFormat Format = "table"
	CSV         Format = "csv"
	TSV         Format = "tsv"
	JSON        Format = "json"
	JSONL       Format = "jsonl"
	YAML        Format = "yaml"
	Markdown    Format = "markdown"
	HTML        Format = "html"
	Plain       Format = "plain"
)

const goTemplatePrefix = "go-template="

// String returns the format name.
func (f Format) String() string { return string(f) }

// GoTemplate returns a write-only Format that executes tmpl once per row.
// The row is passed to the template as a map keyed by header.
func GoTemplate(tmpl string) Format {
	return Format(goTemplatePrefix + tmpl)
}

// ReadFunc populates t from r.
type ReadFunc func(t *Table, r io.Reader) error

// WriteFunc serializes t to w.
type WriteFunc func(t *Table, w io.Writer) error

// Plugin is the capability pair behind a format. Either side may be nil for
// one-way formats.
type Plugin struct {
	Read  ReadFunc
	Write WriteFunc
}

var (
	registryMu sync.RWMutex
	registry   = map[Format]Plugin{}
)

func init() {
	Register(TableFormat, Plugin{Write: writeTable})
	Register(CSV, Plugin{Read: readDelimited(','), Write: writeDelimited(',')})
	Register(TSV, Plugin{Read: readDelimited('\t'), Write: writeDelimited('\t')})
	Register(JSON, Plugin{Read: readJSON, Write: writeJSON})
	Register(JSONL, Plugin{Read: readJSONL, Write: writeJSONL})
	Register(YAML, Plugin{Read: readYAML, Write: writeYAML})
	Register(Markdown, Plugin{Write: writeMarkdown})
	Register(HTML, Plugin{Write: writeHTML})
	Register(Plain, Plugin{Write: writePlain})
}

// Register installs or replaces the plugin for f.
func Register(f Format, p Plugin) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[f] = p
}

// Lookup returns the plugin registered for f. Go-template formats resolve to
// a template writer without registration.
func Lookup(f Format) (Plugin, error) {
	if tmpl, ok := strings.CutPrefix(string(f), goTemplatePrefix); ok {
		return Plugin{Write: templateWriter(tmpl)}, nil
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	p, ok := registry[f]
	if !ok {
		return Plugin{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	return p, nil
}

// Formats returns the registered format names, sorted.
// GoTemplate is not included because it is parameterized.
func Formats() []Format {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Format, 0, len(registry))
	for f := range registry {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// ParseFormat parses a format name. Recognizes every registered format and
// go-template=<tmpl> strings.
func ParseFormat(s string) (Format, error) {
	if _, err := Lookup(Format(s)); err != nil {
		return "", err
	}
	return Format(s), nil
}

// Read populates the table from r using the plugin for f.
func (t *Table) Read(f Format, r io.Reader) error {
	p, err := Lookup(f)
	if err != nil {
		return err
	}
	if p.Read == nil {
		return fmt.Errorf("%w: %q", ErrNotReadable, f)
	}
	return p.Read(t, r)
}

// Write serializes the table to w using the plugin for f.
func (t *Table) Write(f Format, w io.Writer) error {
	p, err := Lookup(f)
	if err != nil {
		return err
	}
	if p.Write == nil {
		return fmt.Errorf("%w: %q", ErrNotWritable, f)
	}
	return p.Write(t, w)
}

func writeTable(t *Table, w io.Writer) error {
	_, err := t.WriteTo(w)
	return err
}

// load adds rows read by a plugin. A table without headers takes header from
// the input; otherwise header must match the existing one when strict is
// set. Nothing is changed when any row is rejected.
func (t *Table) load(header []string, items []any, strict bool) error {
	old := t.headers
	if len(t.headers) == 0 {
		if err := t.SetHeaders(header); err != nil {
			return err
		}
	} else if strict && !slices.Equal(header, t.headers) {
		return fmt.Errorf("%w: input header %q does not match %q", ErrInvalidHeader, header, t.headers)
	}
	rows, err := t.prepare(items)
	if err != nil {
		if len(old) == 0 {
			_ = t.setHeaders(old)
		}
		return err
	}
	t.rows = append(t.rows, rows...)
	return nil
}

// records organizes the table and returns its header and cells as text.
func (t *Table) records() ([]string, [][]string, error) {
	if err := t.organize(); err != nil {
		return nil, nil, err
	}
	return t.Headers(), t.cellText(""), nil
}

// writeEncoded runs fn against a writer that applies the output encoding.
func (t *Table) writeEncoded(w io.Writer, fn func(io.Writer) error) error {
	out, err := t.outputWriter(w)
	if err != nil {
		return err
	}
	if err := fn(out); err != nil {
		return err
	}
	return out.Close()
}
