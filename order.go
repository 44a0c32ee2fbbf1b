package outputty

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"math/big"
	"slices"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Ordering is a sort direction.
type Ordering string

const (
	Ascending  Ordering = "asc"
	Descending Ordering = "desc"
)

// ParseOrdering maps any string starting with "desc" (case-insensitive) to
// Descending and everything else to Ascending.
func ParseOrdering(s string) Ordering {
	if strings.HasPrefix(strings.ToLower(s), "desc") {
		return Descending
	}
	return Ascending
}

func (o Ordering) descending() bool {
	return strings.HasPrefix(strings.ToLower(string(o)), "desc")
}

// OrderBy decodes the table and stable-sorts its rows by the named column.
// Rows with equal keys keep their relative order in both directions.
func (t *Table) OrderBy(column string, ordering Ordering) error {
	i, err := t.columnIndex(column)
	if err != nil {
		return err
	}
	if err := t.Decode(""); err != nil {
		return err
	}
	desc := ordering.descending()
	slices.SortStableFunc(t.rows, func(a, b []any) int {
		if desc {
			return compareValues(b[i], a[i])
		}
		return compareValues(a[i], b[i])
	})
	return nil
}

// Values of different kinds sort by kind first: nil, numbers, dates,
// datetimes, times, text, bytes, then anything else.
func kindRank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case civil.Date:
		return 2
	case civil.DateTime:
		return 3
	case time.Time:
		return 4
	case string:
		return 5
	case []byte:
		return 6
	}
	if _, ok := toFloat(v); ok {
		return 1
	}
	return 7
}

func compareValues(a, b any) int {
	ra, rb := kindRank(a), kindRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch x := a.(type) {
	case nil:
		return 0
	case string:
		return strings.Compare(x, b.(string))
	case []byte:
		return bytes.Compare(x, b.([]byte))
	case civil.Date:
		return compareOrdered(x.Before(b.(civil.Date)), x.After(b.(civil.Date)))
	case civil.DateTime:
		return compareOrdered(x.Before(b.(civil.DateTime)), x.After(b.(civil.DateTime)))
	case time.Time:
		return x.Compare(b.(time.Time))
	}
	if ia, ok := toInt(a); ok {
		if ib, ok := toInt(b); ok {
			return cmp.Compare(ia, ib)
		}
	}
	if ba, ok := toBigInt(a); ok {
		if bb, ok := toBigInt(b); ok {
			return ba.Cmp(bb)
		}
	}
	if fa, ok := toFloat(a); ok {
		fb, _ := toFloat(b)
		return cmp.Compare(fa, fb)
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func compareOrdered(before, after bool) int {
	switch {
	case before:
		return -1
	case after:
		return 1
	default:
		return 0
	}
}

func toInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint:
		if uint64(x) <= math.MaxInt64 {
			return int64(x), true
		}
	case uint64:
		if x <= math.MaxInt64 {
			return int64(x), true
		}
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	if i, ok := toInt(v); ok {
		return float64(i), true
	}
	switch x := v.(type) {
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case *big.Int:
		if x != nil {
			f, _ := new(big.Float).SetInt(x).Float64()
			return f, true
		}
	}
	return 0, false
}

// toBigInt widens any integer value, including uint64 beyond int64.
func toBigInt(v any) (*big.Int, bool) {
	switch x := v.(type) {
	case *big.Int:
		return x, x != nil
	case uint:
		return new(big.Int).SetUint64(uint64(x)), true
	case uint64:
		return new(big.Int).SetUint64(x), true
	}
	if i, ok := toInt(v); ok {
		return big.NewInt(i), true
	}
	return nil, false
}
