package outputty

import (
	"iter"
	"slices"
)

// All yields each row index and a copy of the row.
func (t *Table) All() iter.Seq2[int, []any] {
	return func(yield func(int, []any) bool) {
		for i, row := range t.rows {
			if !yield(i, slices.Clone(row)) {
				return
			}
		}
	}
}

// ExtendSeq appends every item from seq. Like [Table.Extend], the sequence is
// consumed and validated in full before any row is added.
func (t *Table) ExtendSeq(seq iter.Seq[any]) error {
	return t.Extend(slices.Collect(seq)...)
}

// ExtendChan appends every item received from ch until it is closed.
// It is a thin wrapper around [Table.ExtendSeq].
func (t *Table) ExtendChan(ch <-chan any) error {
	return t.ExtendSeq(chanToIter(ch))
}

func chanToIter[T any](ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range ch {
			if !yield(item) {
				return
			}
		}
	}
}
