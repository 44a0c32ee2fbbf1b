package outputty_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/bjaus/outputty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func people(t *testing.T) *outputty.Table {
	t.Helper()
	return newTable(t, []string{"name", "age"}, []any{"Ana", 30}, []any{"Bo", nil})
}

func TestParseFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    outputty.Format
		wantErr require.ErrorAssertionFunc
	}{
		"table":       {input: "table", want: outputty.TableFormat, wantErr: require.NoError},
		"csv":         {input: "csv", want: outputty.CSV, wantErr: require.NoError},
		"tsv":         {input: "tsv", want: outputty.TSV, wantErr: require.NoError},
		"json":        {input: "json", want: outputty.JSON, wantErr: require.NoError},
		"jsonl":       {input: "jsonl", want: outputty.JSONL, wantErr: require.NoError},
		"yaml":        {input: "yaml", want: outputty.YAML, wantErr: require.NoError},
		"markdown":    {input: "markdown", want: outputty.Markdown, wantErr: require.NoError},
		"html":        {input: "html", want: outputty.HTML, wantErr: require.NoError},
		"go-template": {input: "go-template={{.name}}", want: outputty.GoTemplate("{{.name}}"), wantErr: require.NoError},
		"unknown":     {input: "xml", wantErr: require.Error},
		"empty":       {input: "", wantErr: require.Error},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := outputty.ParseFormat(tc.input)
			tc.wantErr(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFormatUnsupported(t *testing.T) {
	t.Parallel()
	_, err := outputty.ParseFormat("xml")
	assert.ErrorIs(t, err, outputty.ErrUnsupportedFormat)
}

func TestFormats(t *testing.T) {
	t.Parallel()
	formats := outputty.Formats()
	for _, f := range []outputty.Format{
		outputty.TableFormat, outputty.CSV, outputty.TSV, outputty.JSON,
		outputty.JSONL, outputty.YAML, outputty.Markdown, outputty.HTML,
		outputty.Plain,
	} {
		assert.Contains(t, formats, f)
	}
	assert.Equal(t, "csv", outputty.CSV.String())
}

func TestRegister(t *testing.T) {
	t.Parallel()
	name := outputty.Format("test-upper")
	outputty.Register(name, outputty.Plugin{
		Read: func(tbl *outputty.Table, r io.Reader) error {
			data, err := io.ReadAll(r)
			if err != nil {
				return err
			}
			return tbl.Append([]string{strings.ToUpper(string(data))})
		},
		Write: func(tbl *outputty.Table, w io.Writer) error {
			col, err := tbl.Column("v")
			if err != nil {
				return err
			}
			_, err = io.WriteString(w, col[0].(string))
			return err
		},
	})

	tbl := newTable(t, []string{"v"})
	require.NoError(t, tbl.Read(name, strings.NewReader("spam")))
	var buf bytes.Buffer
	require.NoError(t, tbl.Write(name, &buf))
	assert.Equal(t, "SPAM", buf.String())
	assert.Contains(t, outputty.Formats(), name)
}

func TestReadWriteErrors(t *testing.T) {
	t.Parallel()
	tbl := people(t)
	var buf bytes.Buffer

	assert.ErrorIs(t, tbl.Write("xml", &buf), outputty.ErrUnsupportedFormat)
	assert.ErrorIs(t, tbl.Read("xml", strings.NewReader("")), outputty.ErrUnsupportedFormat)
	assert.ErrorIs(t, tbl.Read(outputty.Markdown, strings.NewReader("")), outputty.ErrNotReadable)
	assert.ErrorIs(t, tbl.Read(outputty.GoTemplate("x"), strings.NewReader("")), outputty.ErrNotReadable)
	assert.ErrorIs(t, tbl.Write(outputty.GoTemplate("{{.name"), &buf), outputty.ErrInvalidTemplate)

	outputty.Register("test-read-only", outputty.Plugin{Read: func(*outputty.Table, io.Reader) error { return nil }})
	assert.ErrorIs(t, tbl.Write("test-read-only", &buf), outputty.ErrNotWritable)
	assert.Empty(t, buf.String())
}

func TestReadCSV(t *testing.T) {
	t.Parallel()
	input := `"ham","spam","eggs"
"ham spam ham","spam eggs spam","eggs ham eggs"
"ham spam","eggs spam","eggs eggs"
`
	tbl := newTable(t, nil)
	require.NoError(t, tbl.Read(outputty.CSV, strings.NewReader(input)))
	assert.Equal(t, []string{"ham", "spam", "eggs"}, tbl.Headers())
	assert.Equal(t, strings.Join([]string{
		"+--------------+----------------+---------------+",
		"|     ham      |      spam      |      eggs     |",
		"+--------------+----------------+---------------+",
		"| ham spam ham | spam eggs spam | eggs ham eggs |",
		"|     ham spam |      eggs spam |     eggs eggs |",
		"+--------------+----------------+---------------+",
	}, "\n"), tbl.String())
}

func TestReadCSVIntoExistingHeaders(t *testing.T) {
	t.Parallel()
	tbl := newTable(t, []string{"a", "b"}, []any{"0", "0"})
	require.NoError(t, tbl.Read(outputty.CSV, strings.NewReader("a,b\n1,2\n")))
	assert.Equal(t, [][]any{{"0", "0"}, {"1", "2"}}, tbl.Rows())

	err := tbl.Read(outputty.CSV, strings.NewReader("b,a\n3,4\n"))
	require.ErrorIs(t, err, outputty.ErrInvalidHeader)
	assert.Equal(t, 2, tbl.Len())
}

func TestReadCSVRejectsRaggedRows(t *testing.T) {
	t.Parallel()
	tbl := newTable(t, nil)
	err := tbl.Read(outputty.CSV, strings.NewReader("a,b\n1,2\n3\n"))
	require.ErrorIs(t, err, outputty.ErrRowLength)
	assert.Empty(t, tbl.Headers())
	assert.Equal(t, 0, tbl.Len())
}

func TestReadEmptyInput(t *testing.T) {
	t.Parallel()
	for _, f := range []outputty.Format{outputty.CSV, outputty.TSV, outputty.JSON, outputty.JSONL, outputty.YAML} {
		t.Run(f.String(), func(t *testing.T) {
			t.Parallel()
			tbl := newTable(t, nil)
			require.NoError(t, tbl.Read(f, strings.NewReader("")))
			assert.Equal(t, 0, tbl.Len())
			assert.Empty(t, tbl.Headers())
		})
	}
}

func TestReadCSVInputEncoding(t *testing.T) {
	t.Parallel()
	data, err := charmap.ISO8859_1.NewEncoder().String("\"Álvaro\"\n\"Píton\"")
	require.NoError(t, err)

	tbl, err := outputty.New(nil,
		outputty.WithInputEncoding("iso-8859-1"),
		outputty.WithOutputEncoding("utf16"),
	)
	require.NoError(t, err)
	require.NoError(t, tbl.Read(outputty.CSV, strings.NewReader(data)))

	var buf bytes.Buffer
	n, err := tbl.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder().Bytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "+--------+\n| Álvaro |\n+--------+\n|  Píton |\n+--------+\n", string(decoded))
}

func TestWriteCSVOutputEncoding(t *testing.T) {
	t.Parallel()
	utf16 := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	cell, err := utf16.NewEncoder().Bytes([]byte("Píton"))
	require.NoError(t, err)

	tbl, err := outputty.New([]string{"Álvaro"},
		outputty.WithInputEncoding("utf16"),
		outputty.WithOutputEncoding("iso-8859-1"),
	)
	require.NoError(t, err)
	require.NoError(t, tbl.Append([]any{cell}))

	var buf bytes.Buffer
	require.NoError(t, tbl.Write(outputty.CSV, &buf))
	want, err := charmap.ISO8859_1.NewEncoder().String("Álvaro\nPíton\n")
	require.NoError(t, err)
	assert.Equal(t, want, buf.String())
}

func TestWriteFormats(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format outputty.Format
		want   string
	}{
		"table": {
			format: outputty.TableFormat,
			want: "+------+-----+\n" +
				"| name | age |\n" +
				"+------+-----+\n" +
				"|  Ana |  30 |\n" +
				"|   Bo |     |\n" +
				"+------+-----+\n",
		},
		"csv": {
			format: outputty.CSV,
			want:   "name,age\nAna,30\nBo,\n",
		},
		"plain": {
			format: outputty.Plain,
			want:   "Ana 30\nBo \n",
		},
		"tsv": {
			format: outputty.TSV,
			want:   "name\tage\nAna\t30\nBo\t\n",
		},
		"json": {
			format: outputty.JSON,
			want: "[\n" +
				"  {\n" +
				"    \"name\": \"Ana\",\n" +
				"    \"age\": 30\n" +
				"  },\n" +
				"  {\n" +
				"    \"name\": \"Bo\",\n" +
				"    \"age\": null\n" +
				"  }\n" +
				"]\n",
		},
		"jsonl": {
			format: outputty.JSONL,
			want:   "{\"name\":\"Ana\",\"age\":30}\n{\"name\":\"Bo\",\"age\":null}\n",
		},
		"yaml": {
			format: outputty.YAML,
			want:   "- name: Ana\n  age: 30\n- name: Bo\n  age: null\n",
		},
		"markdown": {
			format: outputty.Markdown,
			want: "| name | age |\n" +
				"| ---- | --- |\n" +
				"| Ana  | 30  |\n" +
				"| Bo   |     |\n",
		},
		"html": {
			format: outputty.HTML,
			want: "<table>\n" +
				"  <thead>\n" +
				"    <tr>\n" +
				"      <th>name</th>\n" +
				"      <th>age</th>\n" +
				"    </tr>\n" +
				"  </thead>\n" +
				"  <tbody>\n" +
				"    <tr>\n" +
				"      <td>Ana</td>\n" +
				"      <td>30</td>\n" +
				"    </tr>\n" +
				"    <tr>\n" +
				"      <td>Bo</td>\n" +
				"      <td></td>\n" +
				"    </tr>\n" +
				"  </tbody>\n" +
				"</table>\n",
		},
		"go-template": {
			format: outputty.GoTemplate("{{.name}}!"),
			want:   "Ana!\nBo!\n",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, people(t).Write(tc.format, &buf))
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestWriteEmptyTable(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format outputty.Format
		want   string
	}{
		"table": {format: outputty.TableFormat, want: ""},
		"json":  {format: outputty.JSON, want: "[]\n"},
		"jsonl": {format: outputty.JSONL, want: ""},
		"plain": {format: outputty.Plain, want: ""},
		"yaml":  {format: outputty.YAML, want: "[]\n"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, newTable(t, nil).Write(tc.format, &buf))
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestWriteMarkdownAlignsNumbers(t *testing.T) {
	t.Parallel()
	tbl := newTable(t, []string{"name", "age"}, []any{"Ana", "30"}, []any{"B|o", "7"})
	require.NoError(t, tbl.NormalizeTypes())
	var buf bytes.Buffer
	require.NoError(t, tbl.Write(outputty.Markdown, &buf))
	assert.Equal(t, "| name | age |\n"+
		"| ---- | --: |\n"+
		"| Ana  |  30 |\n"+
		"| B\\|o |   7 |\n", buf.String())
}

func TestWriteHTMLEscapes(t *testing.T) {
	t.Parallel()
	tbl := newTable(t, []string{"n"}, []any{"1"}, []any{"<b>"})
	tbl.InferTypes()
	var buf bytes.Buffer
	require.NoError(t, tbl.Write(outputty.HTML, &buf))
	assert.Contains(t, buf.String(), "<td>&lt;b&gt;</td>")
}

func TestWriteHTMLAlignsNumbers(t *testing.T) {
	t.Parallel()
	tbl := newTable(t, []string{"n"}, []any{"1"})
	tbl.InferTypes()
	var buf bytes.Buffer
	require.NoError(t, tbl.Write(outputty.HTML, &buf))
	assert.Contains(t, buf.String(), `<th style="text-align: right">n</th>`)
	assert.Contains(t, buf.String(), `<td style="text-align: right">1</td>`)
}

func TestReadObjects(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format outputty.Format
		input  string
	}{
		"json": {
			format: outputty.JSON,
			input:  `[{"name": "Ana", "age": 30}, {"age": 25.5, "name": "Bo", "city": "Rio"}]`,
		},
		"jsonl": {
			format: outputty.JSONL,
			input:  "{\"name\": \"Ana\", \"age\": 30}\n{\"age\": 25.5, \"name\": \"Bo\", \"city\": \"Rio\"}\n",
		},
		"yaml": {
			format: outputty.YAML,
			input:  "- name: Ana\n  age: 30\n- age: 25.5\n  name: Bo\n  city: Rio\n",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			tbl := newTable(t, nil)
			require.NoError(t, tbl.Read(tc.format, strings.NewReader(tc.input)))
			assert.Equal(t, []string{"name", "age", "city"}, tbl.Headers())
			assert.Equal(t, [][]any{{"Ana", "30", nil}, {"Bo", "25.5", "Rio"}}, tbl.Rows())

			require.NoError(t, tbl.NormalizeTypes())
			col, err := tbl.Column("age")
			require.NoError(t, err)
			assert.Equal(t, []any{30.0, 25.5}, col)
		})
	}
}

func TestReadYAMLNull(t *testing.T) {
	t.Parallel()
	tbl := newTable(t, nil)
	require.NoError(t, tbl.Read(outputty.YAML, strings.NewReader("- a: ~\n  b: x\n")))
	assert.Equal(t, [][]any{{nil, "x"}}, tbl.Rows())
}

func TestReadObjectErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format outputty.Format
		input  string
	}{
		"json not array":    {format: outputty.JSON, input: `{"a": 1}`},
		"json not object":   {format: outputty.JSON, input: `[1, 2]`},
		"json truncated":    {format: outputty.JSON, input: `[{"a": 1}`},
		"jsonl not object":  {format: outputty.JSONL, input: "[1]\n"},
		"yaml not sequence": {format: outputty.YAML, input: "a: 1\n"},
		"yaml not mapping":  {format: outputty.YAML, input: "- 1\n- 2\n"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			tbl := newTable(t, nil)
			err := tbl.Read(tc.format, strings.NewReader(tc.input))
			require.Error(t, err)
			assert.Equal(t, 0, tbl.Len())
		})
	}
}

func TestReadObjectShapeErrors(t *testing.T) {
	t.Parallel()
	tbl := newTable(t, nil)
	err := tbl.Read(outputty.YAML, strings.NewReader("- 1\n"))
	assert.True(t, errors.Is(err, outputty.ErrRowShape))
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()
	src := people(t)
	require.NoError(t, src.NormalizeTypes())
	var buf bytes.Buffer
	require.NoError(t, src.Write(outputty.JSON, &buf))

	dst := newTable(t, nil)
	require.NoError(t, dst.Read(outputty.JSON, &buf))
	require.NoError(t, dst.NormalizeTypes())
	assert.Equal(t, src.Headers(), dst.Headers())
	assert.Equal(t, src.Rows(), dst.Rows())
}
