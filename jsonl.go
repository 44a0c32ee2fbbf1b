package outputty

import (
	"encoding/json"
	"errors"
	"io"
)

func writeJSONL(t *Table, w io.Writer) error {
	recs, err := t.objectRecords()
	if err != nil {
		return err
	}
	return t.writeEncoded(w, func(out io.Writer) error {
		enc := json.NewEncoder(out)
		for _, rec := range recs {
			if err := enc.Encode(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// readJSONL reads one object per line. Blank lines between objects are
// skipped by the decoder.
func readJSONL(t *Table, r io.Reader) error {
	in, err := t.inputReader(r)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(in)
	dec.UseNumber()
	var objs objects
	for {
		keys, values, err := decodeObject(dec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		objs.add(keys, values)
	}
	return t.load(objs.keys, objs.items, false)
}
