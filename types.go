package outputty

import (
	"errors"
	"fmt"
	"maps"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"golang.org/x/text/encoding"
)

// Type is an inferred column type.
type Type int

// Types from narrowest to widest. Inference picks the first one every value
// in a column admits.
const (
	Integer Type = iota
	Float
	Date
	DateTime
	Text
)

func (t Type) String() string {
	switch t {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Date:
		return "date"
	case DateTime:
		return "datetime"
	default:
		return "text"
	}
}

// typeSet is a bitmask of the types a value admits.
type typeSet uint8

const anyType typeSet = 1<<Integer | 1<<Float | 1<<Date | 1<<DateTime | 1<<Text

func (s typeSet) has(t Type) bool { return s&(1<<t) != 0 }

func (s typeSet) narrowest() Type {
	for t := Integer; t < Text; t++ {
		if s.has(t) {
			return t
		}
	}
	return Text
}

var (
	dateRe     = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
	dateTimeRe = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2} [0-9]{2}:[0-9]{2}:[0-9]{2}$`)
)

// isInteger reports whether s is the canonical decimal form of an integer of
// any size. "1.0", "007" and "+1" are not.
func isInteger(s string) bool {
	_, ok := parseInteger(s)
	return ok
}

func parseInteger(s string) (*big.Int, bool) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.String() != s {
		return nil, false
	}
	return n, true
}

func isFloat(s string) bool {
	_, err := parseFloat(s)
	return err == nil
}

func isDate(s string) bool { return dateRe.MatchString(s) }

func isDateTime(s string) bool { return dateTimeRe.MatchString(s) }

// parseFloat accepts surrounding space, and out-of-range literals as ±Inf.
func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil && errors.Is(err, strconv.ErrRange) {
		return f, nil
	}
	return f, err
}

// admits returns the types v is compatible with. Absent values admit every
// type so they never narrow a column.
func admits(v any) typeSet {
	switch x := v.(type) {
	case nil:
		return anyType
	case string:
		return admitsText(x)
	case []byte:
		return admitsText(string(x))
	case civil.Date:
		return 1<<Date | 1<<Text
	case civil.DateTime, time.Time:
		return 1<<DateTime | 1<<Text
	case bool:
		return 1 << Text
	case float32, float64:
		return 1<<Float | 1<<Text
	case *big.Int:
		return 1<<Integer | 1<<Float | 1<<Text
	}
	if _, ok := toFloat(v); ok {
		return 1<<Integer | 1<<Float | 1<<Text
	}
	return 1 << Text
}

func admitsText(s string) typeSet {
	if s == "" {
		return anyType
	}
	set := typeSet(1 << Text)
	if isInteger(s) {
		set |= 1 << Integer
	}
	if isFloat(s) {
		set |= 1 << Float
	}
	if isDate(s) {
		set |= 1 << Date
	}
	if isDateTime(s) {
		set |= 1 << DateTime
	}
	return set
}

// InferTypes scans every column and records its narrowest common type. A
// table without rows infers Text for every column.
func (t *Table) InferTypes() map[string]Type {
	types := make(map[string]Type, len(t.headers))
	for i, h := range t.headers {
		if len(t.rows) == 0 {
			types[h] = Text
			continue
		}
		set := anyType
		for _, row := range t.rows {
			if i < len(row) {
				set &= admits(row[i])
			}
		}
		types[h] = set.narrowest()
	}
	t.types = types
	return maps.Clone(types)
}

// Types returns the result of the last inference.
func (t *Table) Types() map[string]Type {
	return maps.Clone(t.types)
}

// NormalizeTypes infers column types and converts every cell to its
// column's type: int64, float64, civil.Date, civil.DateTime or string.
// Empty strings become nil. A value that cannot be converted fails the
// whole call with ErrConversion and the rows are left unchanged.
func (t *Table) NormalizeTypes() error {
	types := t.InferTypes()
	enc, err := lookupEncoding(t.inputEncoding)
	if err != nil {
		return err
	}
	return t.mapColumns(func(c int, v any) (any, error) {
		return coerce(v, types[t.headers[c]], enc)
	})
}

func (t *Table) mapColumns(fn func(int, any) (any, error)) error {
	rows := make([][]any, len(t.rows))
	for r, row := range t.rows {
		out := make([]any, len(row))
		for c, v := range row {
			converted, err := fn(c, v)
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

func coerce(v any, typ Type, enc encoding.Encoding) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		if x == "" {
			return nil, nil
		}
	case []byte:
		if len(x) == 0 {
			return nil, nil
		}
	}
	switch typ {
	case Integer:
		return coerceInteger(v)
	case Float:
		return coerceFloat(v)
	case Date:
		return coerceDate(v)
	case DateTime:
		return coerceDateTime(v)
	default:
		return coerceText(v, enc)
	}
}

func rawText(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	}
	return "", false
}

// coerceInteger yields int64, or *big.Int for values outside its range.
func coerceInteger(v any) (any, error) {
	if i, ok := toInt(v); ok {
		return i, nil
	}
	n, ok := toBigInt(v)
	if !ok {
		s, isText := rawText(v)
		if !isText {
			return nil, fmt.Errorf("%w: %T to integer", ErrConversion, v)
		}
		if n, ok = parseInteger(s); !ok {
			return nil, fmt.Errorf("%w: integer %q", ErrConversion, s)
		}
	}
	if n.IsInt64() {
		return n.Int64(), nil
	}
	return n, nil
}

func coerceFloat(v any) (any, error) {
	if f, ok := toFloat(v); ok {
		return f, nil
	}
	s, ok := rawText(v)
	if !ok {
		return nil, fmt.Errorf("%w: %T to float", ErrConversion, v)
	}
	f, err := parseFloat(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConversion, err)
	}
	return f, nil
}

func coerceDate(v any) (any, error) {
	if d, ok := v.(civil.Date); ok {
		return d, nil
	}
	s, ok := rawText(v)
	if !ok {
		return nil, fmt.Errorf("%w: %T to date", ErrConversion, v)
	}
	return parseDate(s)
}

func coerceDateTime(v any) (any, error) {
	switch x := v.(type) {
	case civil.DateTime:
		return x, nil
	case time.Time:
		return civil.DateTimeOf(x), nil
	}
	s, ok := rawText(v)
	if !ok {
		return nil, fmt.Errorf("%w: %T to datetime", ErrConversion, v)
	}
	datePart, timePart, found := strings.Cut(s, " ")
	if !found {
		return nil, fmt.Errorf("%w: datetime %q", ErrConversion, s)
	}
	d, err := parseDate(datePart)
	if err != nil {
		return nil, err
	}
	parts, err := splitInts(timePart, ":", 3)
	if err != nil {
		return nil, fmt.Errorf("%w: datetime %q", ErrConversion, s)
	}
	dt := civil.DateTime{Date: d, Time: civil.Time{Hour: parts[0], Minute: parts[1], Second: parts[2]}}
	if !dt.IsValid() {
		return nil, fmt.Errorf("%w: datetime %q out of range", ErrConversion, s)
	}
	return dt, nil
}

func parseDate(s string) (civil.Date, error) {
	parts, err := splitInts(s, "-", 3)
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: date %q", ErrConversion, s)
	}
	d := civil.Date{Year: parts[0], Month: time.Month(parts[1]), Day: parts[2]}
	if !d.IsValid() {
		return civil.Date{}, fmt.Errorf("%w: date %q out of range", ErrConversion, s)
	}
	return d, nil
}

func splitInts(s, sep string, n int) ([]int, error) {
	fields := strings.Split(s, sep)
	if len(fields) != n {
		return nil, fmt.Errorf("want %d fields, got %d", n, len(fields))
	}
	out := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func coerceText(v any, enc encoding.Encoding) (any, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return decodeValue(x, enc)
	}
	return formatValue(v, ""), nil
}
