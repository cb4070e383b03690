package vocab

import (
	"testing"

	"github.com/Firemoon777/Vela-Vocabulary/payload"
	"github.com/stretchr/testify/require"
)

func TestOffsetIntegrity(t *testing.T) {
	res := mustBuild(t, testRecords(), WithLeafThreshold(3))
	v, buf := res.Vocabulary, res.Data

	byPrefix := make(map[string]*Node, len(v.Nodes))
	for _, n := range v.Nodes {
		byPrefix[n.Prefix] = n
	}

	h, err := ReadHeader(buf)
	require.NoError(t, err)
	require.Equal(t, v.FirstTableSize, h.FirstTableSize)

	for _, n := range v.Nodes {
		tbl, err := ReadTable(buf, n.Offset, n.Length)
		require.NoError(t, err)
		require.Equal(t, n.DataOffset, tbl.DataOffset)
		require.Equal(t, n.DataLength, tbl.DataLength)
		require.Len(t, tbl.Children, len(n.Children))

		for i, c := range tbl.Children {
			require.Equal(t, n.Children[i].Letter, c.Letter)

			// The referenced bytes parse as the table of the child prefix.
			child := byPrefix[n.Prefix+string(c.Letter)]
			require.NotNil(t, child)
			require.Equal(t, child.Offset, c.Table.Offset)
			require.Equal(t, child.Length, c.Table.Size)
			require.Equal(t, child.Total, c.Words)

			ct, err := ReadTable(buf, c.Table.Offset, c.Table.Size)
			require.NoError(t, err)
			require.Equal(t, child.DataOffset, ct.DataOffset)
			require.Len(t, ct.Children, len(child.Children))
		}

		if n.Leaf != nil {
			records, err := ReadLeaf(buf, payload.JSONCodec{}, tbl.DataOffset, tbl.DataLength)
			require.NoError(t, err)
			require.Equal(t, n.Leaf.Records, records)
		}
	}
}

func TestWalkVisitsTablesInWriteOrder(t *testing.T) {
	res := mustBuild(t, testRecords(), WithLeafThreshold(5))

	var got []string
	var offsets []uint32
	require.NoError(t, Walk(res.Data, func(prefix string, tbl Table) error {
		got = append(got, prefix)
		offsets = append(offsets, tbl.Ref.Offset)
		return nil
	}))

	require.Len(t, got, len(res.Vocabulary.Nodes))
	for i, n := range res.Vocabulary.Nodes {
		require.Equal(t, n.Prefix, got[i])
		require.Equal(t, n.Offset, offsets[i])
	}
}

func TestWalkDetectsCycles(t *testing.T) {
	records := []payload.Record{mkRecord("ab"), mkRecord("b")}
	res := mustBuild(t, records, WithLeafThreshold(1))
	buf := append([]byte{}, res.Data...)

	// Point the root's first child back at the root.
	root := res.Vocabulary.Root()
	entry := root.Offset + TableHeaderBytes + 1
	writeU32BE(buf[entry+4:entry+8], root.Offset)
	writeU32BE(buf[entry+8:entry+12], root.Length)

	err := Walk(buf, func(string, Table) error { return nil })
	require.ErrorIs(t, err, ErrMalformedTable)
}

func TestTableChild(t *testing.T) {
	tbl := Table{Children: []ChildRef{{Letter: 'a'}, {Letter: 'c', Words: 3}, {Letter: 'я'}}}

	c, ok := tbl.Child('c')
	require.True(t, ok)
	require.Equal(t, uint32(3), c.Words)

	_, ok = tbl.Child('я')
	require.True(t, ok)

	for _, r := range []rune{'b', 'A', 'z', '日'} {
		_, ok = tbl.Child(r)
		require.False(t, ok)
	}
	_, ok = Table{}.Child('a')
	require.False(t, ok)
}

// table builds a raw table region preceded by a zero header.
func table(body ...[]byte) []byte {
	buf := make([]byte, HeaderBytes+TableHeaderBytes)
	for _, b := range body {
		buf = append(buf, b...)
	}
	return buf
}

func entryBytes(letter string, words, offset, size uint32) []byte {
	b := []byte(letter)
	var f [ChildEntryFixedBytes]byte
	writeU32BE(f[0:4], words)
	writeU32BE(f[4:8], offset)
	writeU32BE(f[8:12], size)
	return append(b, f[:]...)
}

func TestReadTableMalformed(t *testing.T) {
	full := table(entryBytes("a", 1, 4, 8), entryBytes("к", 2, 4, 8))
	tbl, err := ReadTable(full, HeaderBytes, uint32(len(full)-HeaderBytes))
	require.NoError(t, err)
	require.Len(t, tbl.Children, 2)
	require.Equal(t, 'к', tbl.Children[1].Letter)

	cases := []struct {
		name string
		buf  []byte
	}{
		{"short table header", table()[:HeaderBytes+7]},
		{"truncated entry", full[:len(full)-1]},
		{"letter only", table([]byte("a"))},
		{"split multi-byte letter", table([]byte("к")[:1])},
		{"invalid utf8 letter", table([]byte{0xff}, entryBytes("", 1, 4, 8))},
		{"nul letter", table([]byte{0}, entryBytes("", 1, 4, 8))},
		{"unsorted letters", table(entryBytes("b", 1, 4, 8), entryBytes("a", 1, 4, 8))},
		{"duplicate letters", table(entryBytes("a", 1, 4, 8), entryBytes("a", 1, 4, 8))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadTable(tc.buf, HeaderBytes, uint32(len(tc.buf)-HeaderBytes))
			require.ErrorIs(t, err, ErrMalformedTable)
		})
	}

	leafWithoutOffset := table()
	writeU32BE(leafWithoutOffset[HeaderBytes+4:], 10)
	_, err = ReadTable(leafWithoutOffset, HeaderBytes, TableHeaderBytes)
	require.ErrorIs(t, err, ErrMalformedTable)
}

func TestReadTableOutOfRange(t *testing.T) {
	buf := table(entryBytes("a", 1, 4, 8))
	n := uint32(len(buf))

	for _, r := range []TableRef{
		{Offset: HeaderBytes, Size: n},
		{Offset: n, Size: 1},
		{Offset: 0, Size: 8},
		{Offset: ^uint32(0), Size: ^uint32(0)},
	} {
		_, err := ReadTable(buf, r.Offset, r.Size)
		require.ErrorIs(t, err, ErrOffsetOutOfRange, "%+v", r)
	}

	_, err := ReadHeader([]byte{0, 0})
	require.ErrorIs(t, err, ErrOffsetOutOfRange)

	hdr := make([]byte, HeaderBytes)
	writeU32BE(hdr, 8)
	_, err = ReadHeader(hdr)
	require.ErrorIs(t, err, ErrOffsetOutOfRange)
}

func TestReadLeafErrors(t *testing.T) {
	res := mustBuild(t, testRecords(), WithLeafThreshold(40))
	l := res.Vocabulary.Leaves[0]

	_, err := ReadLeaf(res.Data, payload.JSONCodec{}, l.Offset, uint32(len(res.Data)))
	require.ErrorIs(t, err, ErrOffsetOutOfRange)

	corrupt := append([]byte{}, res.Data...)
	corrupt[l.Offset] = 'x'
	_, err = ReadLeaf(corrupt, payload.JSONCodec{}, l.Offset, l.Length)
	require.ErrorIs(t, err, ErrPayloadDecode)

	// Reading with the wrong codec is a decode error, not a crash.
	cborCodec, err := payload.NewCBORCodec()
	require.NoError(t, err)
	_, err = ReadLeaf(res.Data, cborCodec, l.Offset, l.Length)
	require.ErrorIs(t, err, ErrPayloadDecode)
}
