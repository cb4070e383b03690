package vocab

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/Firemoon777/Vela-Vocabulary/payload"
)

// Header is the decoded file header.
type Header struct {
	FirstTableSize uint32
}

// Root returns the reference to the root table.
func (h Header) Root() TableRef {
	return TableRef{Offset: HeaderBytes, Size: h.FirstTableSize}
}

// TableRef locates one table. A table can only be parsed with both fields.
type TableRef struct {
	Offset uint32
	Size   uint32
}

// ChildRef is a decoded child entry.
type ChildRef struct {
	Letter rune
	Words  uint32
	Table  TableRef
}

// Table is a decoded lookup table.
type Table struct {
	Ref        TableRef
	DataOffset uint32
	DataLength uint32
	Children   []ChildRef
}

// HasLeaf reports whether the table owns a leaf block.
func (t Table) HasLeaf() bool {
	return t.DataLength > 0
}

// Child returns the entry for letter. ok=false is a normal negative result.
func (t Table) Child(letter rune) (ChildRef, bool) {
	i := sort.Search(len(t.Children), func(i int) bool {
		return t.Children[i].Letter >= letter
	})
	if i < len(t.Children) && t.Children[i].Letter == letter {
		return t.Children[i], true
	}
	return ChildRef{}, false
}

// checkRange checks that [offset, offset+length) lies past the header and
// inside buf.
func checkRange(buf []byte, offset, length uint32) error {
	if offset < HeaderBytes || uint64(offset)+uint64(length) > uint64(len(buf)) {
		return fmt.Errorf(
			"%w: offset=%d, length=%d, buffer=%d",
			ErrOffsetOutOfRange, offset, length, len(buf),
		)
	}
	return nil
}

// ReadHeader decodes the file header and checks that the root table lies
// inside buf.
func ReadHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderBytes {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, have %d", ErrOffsetOutOfRange, HeaderBytes, len(buf))
	}
	h := Header{FirstTableSize: readU32BE(buf[0:HeaderBytes])}
	if err := checkRange(buf, HeaderBytes, h.FirstTableSize); err != nil {
		return Header{}, err
	}
	return h, nil
}

// ReadTable decodes the table at [offset, offset+length).
//
// The range is checked before anything is read. Parsing never looks past
// offset+length; an entry cut short by the end of the table is an
// ErrMalformedTable.
func ReadTable(buf []byte, offset, length uint32) (Table, error) {
	if err := checkRange(buf, offset, length); err != nil {
		return Table{}, err
	}
	if length < TableHeaderBytes {
		return Table{}, fmt.Errorf("%w: offset=%d: length %d below table header", ErrMalformedTable, offset, length)
	}
	data := buf[offset : offset+length]

	t := Table{
		Ref:        TableRef{Offset: offset, Size: length},
		DataOffset: readU32BE(data[0:4]),
		DataLength: readU32BE(data[4:8]),
	}
	if t.DataLength > 0 && t.DataOffset == 0 {
		return Table{}, fmt.Errorf("%w: offset=%d: leaf length without offset", ErrMalformedTable, offset)
	}

	i := TableHeaderBytes
	for i < len(data) {
		letter, size := utf8.DecodeRune(data[i:])
		if letter == utf8.RuneError && size <= 1 {
			return Table{}, fmt.Errorf("%w: offset=%d: bad letter encoding at %d", ErrMalformedTable, offset, i)
		}
		if letter == 0 {
			return Table{}, fmt.Errorf("%w: offset=%d: NUL letter at %d", ErrMalformedTable, offset, i)
		}
		i += size
		if i+ChildEntryFixedBytes > len(data) {
			return Table{}, fmt.Errorf("%w: offset=%d: truncated entry for %q", ErrMalformedTable, offset, letter)
		}
		if n := len(t.Children); n > 0 && t.Children[n-1].Letter >= letter {
			return Table{}, fmt.Errorf("%w: offset=%d: letters out of order at %q", ErrMalformedTable, offset, letter)
		}
		t.Children = append(t.Children, ChildRef{
			Letter: letter,
			Words:  readU32BE(data[i : i+4]),
			Table: TableRef{
				Offset: readU32BE(data[i+4 : i+8]),
				Size:   readU32BE(data[i+8 : i+12]),
			},
		})
		i += ChildEntryFixedBytes
	}
	return t, nil
}

// ReadLeaf decodes the leaf block at [offset, offset+length).
func ReadLeaf(buf []byte, codec payload.Codec, offset, length uint32) ([]payload.Record, error) {
	if err := checkRange(buf, offset, length); err != nil {
		return nil, err
	}
	records, err := codec.Decode(buf[offset : offset+length])
	if err != nil {
		return nil, fmt.Errorf("%w (leaf offset=%d, length=%d)", err, offset, length)
	}
	return records, nil
}
