package vocab

import (
	"fmt"

	"github.com/Firemoon777/Vela-Vocabulary/payload"
)

// AssignLayout gives every table and leaf block of v its final byte range and
// resolves every cross reference.
//
// It runs three passes over the whole trie: lengths, then offsets (tables in
// pre-order from HeaderBytes, followed by leaves), then references. No
// reference field is written before its target's offset is known, and after
// AssignLayout returns, Encode is a pure flattening of v.
func AssignLayout(v *Vocabulary, codec payload.Codec) error {
	if v.laidOut {
		return ErrAlreadyLaidOut
	}
	if len(v.Nodes) == 0 {
		return fmt.Errorf("%w: no root node", ErrNotLaidOut)
	}
	if err := assignLengths(v, codec); err != nil {
		return err
	}
	if err := assignOffsets(v); err != nil {
		return err
	}
	resolveReferences(v)
	v.laidOut = true
	return nil
}

func assignLengths(v *Vocabulary, codec payload.Codec) error {
	for _, n := range v.Nodes {
		size := TableBytes(n.Children)
		if err := CheckSize(size); err != nil {
			return fmt.Errorf("%w: table %q is %d bytes", err, n.Prefix, size)
		}
		n.Length = uint32(size)
	}
	for _, l := range v.Leaves {
		data, err := codec.Encode(l.Records)
		if err != nil {
			return fmt.Errorf("leaf %q: %w", v.Nodes[l.Owner].Prefix, err)
		}
		if err := CheckSize(uint64(len(data))); err != nil {
			return err
		}
		l.Data = data
		l.Length = uint32(len(data))
	}
	v.FirstTableSize = v.Root().Length
	return nil
}

func assignOffsets(v *Vocabulary) error {
	cursor := uint64(HeaderBytes)
	for _, n := range v.Nodes {
		n.Offset = uint32(cursor)
		cursor += uint64(n.Length)
		if err := CheckSize(cursor); err != nil {
			return err
		}
	}
	for _, l := range v.Leaves {
		l.Offset = uint32(cursor)
		cursor += uint64(l.Length)
		if err := CheckSize(cursor); err != nil {
			return err
		}
	}
	v.Size = uint32(cursor)
	return nil
}

func resolveReferences(v *Vocabulary) {
	for _, n := range v.Nodes {
		for i := range n.Children {
			c := &n.Children[i]
			target := v.Nodes[c.Target]
			c.Words = target.Total
			c.Offset = target.Offset
			c.Size = target.Length
		}
		if n.Leaf != nil {
			n.DataOffset = n.Leaf.Offset
			n.DataLength = n.Leaf.Length
		}
	}
}
