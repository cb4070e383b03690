package vocab

import "unicode/utf8"

// ChildEntryBytes returns the encoded width of a child entry for letter.
func ChildEntryBytes(letter rune) uint64 {
	return uint64(utf8.RuneLen(letter)) + ChildEntryFixedBytes
}

// TableBytes returns the encoded width of a table with the given children.
func TableBytes(children []ChildEntry) uint64 {
	n := uint64(TableHeaderBytes)
	for _, c := range children {
		n += ChildEntryBytes(c.Letter)
	}
	return n
}

// CheckSize checks whether a total byte size can be addressed by u32 offsets.
func CheckSize(size uint64) error {
	if size > uint64(^uint32(0)) {
		return ErrLayoutOverflow
	}
	return nil
}
