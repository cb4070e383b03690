package vocab

import "unicode/utf8"

// Encode flattens a laid out vocabulary into a single buffer:
//
//	first_table_size || tables... || leaves...
func Encode(v *Vocabulary) ([]byte, error) {
	if !v.laidOut {
		return nil, ErrNotLaidOut
	}
	buf := make([]byte, v.Size)
	writeU32BE(buf[0:HeaderBytes], v.FirstTableSize)
	for _, n := range v.Nodes {
		writeTable(buf[n.Offset:n.Offset+n.Length], n)
	}
	for _, l := range v.Leaves {
		copy(buf[l.Offset:l.Offset+l.Length], l.Data)
	}
	return buf, nil
}

// Bytes is Encode(v).
func (v *Vocabulary) Bytes() ([]byte, error) {
	return Encode(v)
}

// writeTable writes n into dst, which must be exactly n.Length bytes.
func writeTable(dst []byte, n *Node) {
	writeU32BE(dst[0:4], n.DataOffset)
	writeU32BE(dst[4:8], n.DataLength)
	i := TableHeaderBytes
	for _, c := range n.Children {
		i += utf8.EncodeRune(dst[i:], c.Letter)
		writeU32BE(dst[i:i+4], c.Words)
		writeU32BE(dst[i+4:i+8], c.Offset)
		writeU32BE(dst[i+8:i+12], c.Size)
		i += ChildEntryFixedBytes
	}
}
