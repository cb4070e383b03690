package vocab

import (
	"fmt"

	"github.com/Firemoon777/Vela-Vocabulary/payload"
)

type leafReader func(t Table) ([]payload.Record, error)

// Lookup resolves word against the encoded vocabulary in buf.
//
// ok=false means the word is not in the vocabulary; errors are reserved for
// buffers that cannot be navigated or decoded.
func Lookup(buf []byte, codec payload.Codec, word string) (payload.Record, bool, error) {
	h, err := ReadHeader(buf)
	if err != nil {
		return payload.Record{}, false, err
	}
	return lookup(buf, h, word, func(t Table) ([]payload.Record, error) {
		return ReadLeaf(buf, codec, t.DataOffset, t.DataLength)
	})
}

// lookup walks from the root one letter at a time. It visits at most
// len(word)+1 tables.
func lookup(buf []byte, h Header, word string, readLeaf leafReader) (payload.Record, bool, error) {
	key, err := NormalizeKey(word)
	if err != nil {
		// A key that could never have been built is simply absent.
		return payload.Record{}, false, nil
	}
	letters := []rune(key)

	ref := h.Root()
	for depth := 0; ; depth++ {
		t, err := ReadTable(buf, ref.Offset, ref.Size)
		if err != nil {
			return payload.Record{}, false, err
		}
		if t.HasLeaf() {
			records, err := readLeaf(t)
			if err != nil {
				return payload.Record{}, false, err
			}
			if r, ok := findRecord(records, key); ok {
				return r, true, nil
			}
		}
		if depth == len(letters) {
			return payload.Record{}, false, nil
		}
		c, ok := t.Child(letters[depth])
		if !ok {
			return payload.Record{}, false, nil
		}
		ref = c.Table
	}
}

func findRecord(records []payload.Record, key string) (payload.Record, bool) {
	for _, r := range records {
		k, err := NormalizeKey(r.ID)
		if err == nil && k == key {
			return r, true
		}
	}
	return payload.Record{}, false
}

// WalkFunc is called for each table visited by Walk. prefix is the string of
// letters leading from the root to the table.
type WalkFunc func(prefix string, t Table) error

// Walk visits every table reachable from the root in pre-order, which is the
// order the tables were written in.
//
// A reference to an already visited table is reported as ErrMalformedTable,
// so Walk terminates on any input.
func Walk(buf []byte, fn WalkFunc) error {
	h, err := ReadHeader(buf)
	if err != nil {
		return err
	}
	visited := make(map[uint32]struct{})
	return walk(buf, h.Root(), "", visited, fn)
}

func walk(buf []byte, ref TableRef, prefix string, visited map[uint32]struct{}, fn WalkFunc) error {
	if _, ok := visited[ref.Offset]; ok {
		return fmt.Errorf("%w: table at %d referenced twice", ErrMalformedTable, ref.Offset)
	}
	visited[ref.Offset] = struct{}{}

	t, err := ReadTable(buf, ref.Offset, ref.Size)
	if err != nil {
		return err
	}
	if err := fn(prefix, t); err != nil {
		return err
	}
	for _, c := range t.Children {
		if err := walk(buf, c.Table, prefix+string(c.Letter), visited, fn); err != nil {
			return err
		}
	}
	return nil
}
