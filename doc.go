// Package outputty is an in-memory table of rows under an ordered set of
// unique headers, with column access, type inference, box-drawn rendering and
// pluggable readers and writers for external formats.
//
// # Rows
//
// A row enters the table through [Table.Append], [Table.Insert],
// [Table.Extend] or [Table.SetRow] in one of two shapes:
//
//   - an ordered sequence ([]any or []string) already in header order
//   - a mapping (map[string]any or map[string]string) keyed by header name
//
// Every row is normalized on entry into a fresh []any with one value per
// header; missing mapping keys become nil, the absent marker. A row of the
// wrong length fails with [ErrRowLength] and any other shape with
// [ErrRowShape]. Extend validates the whole batch before adding anything.
//
//	t, _ := outputty.New([]string{"City", "Country"})
//	t.Append([]string{"Niterói", "Brazil"})
//	t.Append(map[string]any{"City": "La Paz"})
//
// # Columns
//
// Columns are not stored; [Table.Column] reads one position out of every
// row and [Table.DeleteColumn] removes it from every row and the headers.
//
// # Text and encodings
//
// Cell values of type string are text; []byte values are raw bytes in some
// codec. [Table.Decode] turns raw bytes into text using the input encoding
// and [Table.Encode] does the reverse with the output encoding. Codec names
// are resolved with golang.org/x/text, so "utf-8", "utf-16", "iso-8859-1"
// and the other IANA and WHATWG names work.
//
// # Types
//
// [Table.NormalizeTypes] infers the narrowest type every non-empty value of a
// column admits, in the order [Integer], [Float], [Date] (YYYY-MM-DD),
// [DateTime] (YYYY-MM-DD HH:MM:SS), [Text], then converts the cells to int64,
// float64, civil.Date, civil.DateTime or string. Empty strings become nil.
// Inference is a heuristic, not a schema; later writes are not checked.
//
// # Rendering
//
// [Table.Render] and [Table.String] draw the table with a rule above and
// below the centered headers and right-aligned values:
//
//	+---------+---------+
//	|   City  | Country |
//	+---------+---------+
//	| Niterói |  Brazil |
//	+---------+---------+
//
// Use [WithSymbols] or [WithBorder] to change the box characters and
// [WithOrderBy] to sort before every rendering or export.
//
// # Formats
//
// [Table.Read] and [Table.Write] dispatch to the [Plugin] registered for a
// [Format]. The built-in formats are table, csv, tsv, json, jsonl, yaml,
// markdown, html, plain and [GoTemplate]. Use [Register] to add more and
// [ParseFormat] to validate a name taken from a flag.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrInvalidHeader], [ErrDuplicateHeader]: bad headers
//   - [ErrRowLength], [ErrRowShape]: rejected rows
//   - [ErrUnknownColumn], [ErrIndex], [ErrRowNotFound]: failed lookups
//   - [ErrConversion], [ErrUnknownEncoding]: conversions and codecs
//   - [ErrUnsupportedFormat], [ErrNotReadable], [ErrNotWritable],
//     [ErrInvalidTemplate]: format dispatch
package outputty
