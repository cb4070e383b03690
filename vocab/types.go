package vocab

import (
	"errors"
	"fmt"

	"github.com/Firemoon777/Vela-Vocabulary/payload"
)

// HeaderBytes is the width of the file header (first_table_size).
const HeaderBytes = 4

// TableHeaderBytes is the fixed prefix of every table: data_offset, data_length.
const TableHeaderBytes = 8

// ChildEntryFixedBytes is the width of the three u32 fields following a letter.
const ChildEntryFixedBytes = 12

// DefaultLeafThreshold is the maximum number of keys collapsed into one leaf
// in the ENG-RU vocabulary.
const DefaultLeafThreshold = 40

var (
	ErrDuplicateKey     = errors.New("vocab: duplicate key")
	ErrMalformedTable   = errors.New("vocab: malformed table")
	ErrOffsetOutOfRange = errors.New("vocab: offset out of range")
	ErrPayloadDecode    = payload.ErrPayloadDecode

	ErrInvalidKey     = errors.New("vocab: invalid key")
	ErrMissingField   = errors.New("vocab: record field missing")
	ErrBadThreshold   = errors.New("vocab: leaf threshold must be positive")
	ErrLayoutOverflow = errors.New("vocab: layout does not fit in uint32 offsets")
	ErrNotLaidOut     = errors.New("vocab: vocabulary has no layout")
	ErrAlreadyLaidOut = errors.New("vocab: vocabulary already laid out")
	ErrKeyTooShort    = errors.New("vocab: key shorter than partition depth")
)

// Entry is a record paired with its normalized key.
type Entry struct {
	Key    string
	Record payload.Record
}

// ChildEntry references a child node by the letter that leads to it.
//
// Words, Offset and Size are zero until AssignLayout resolves them.
type ChildEntry struct {
	Letter rune
	Target int // index into Vocabulary.Nodes

	Words  uint32
	Offset uint32
	Size   uint32
}

// LeafBlock holds the records collapsed under one node.
type LeafBlock struct {
	Owner   int // index into Vocabulary.Nodes
	Records []payload.Record
	Data    []byte // encoded by AssignLayout

	Offset uint32
	Length uint32
}

// Node is one lookup table of the trie.
type Node struct {
	Prefix   string
	Depth    int
	Total    uint32
	Children []ChildEntry
	Leaf     *LeafBlock

	Offset     uint32
	Length     uint32
	DataOffset uint32
	DataLength uint32
}

// Vocabulary is the whole trie: nodes in pre-order, leaves in the same
// relative order as their owners.
type Vocabulary struct {
	Nodes  []*Node
	Leaves []*LeafBlock

	FirstTableSize uint32
	Size           uint32

	laidOut bool
}

// Root returns the root node.
func (v *Vocabulary) Root() *Node {
	return v.Nodes[0]
}

// LaidOut reports whether AssignLayout has run.
func (v *Vocabulary) LaidOut() bool {
	return v.laidOut
}

// DuplicatePolicy selects which record survives when two records share a key.
type DuplicatePolicy uint8

const (
	KeepLast DuplicatePolicy = iota
	KeepFirst
	Reject
)

func (p DuplicatePolicy) String() string {
	switch p {
	case KeepLast:
		return "keep-last"
	case KeepFirst:
		return "keep-first"
	case Reject:
		return "reject"
	default:
		return fmt.Sprintf("DuplicatePolicy(%d)", uint8(p))
	}
}

// ParseDuplicatePolicy is the inverse of DuplicatePolicy.String.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "keep-last", "":
		return KeepLast, nil
	case "keep-first":
		return KeepFirst, nil
	case "reject":
		return Reject, nil
	default:
		return 0, fmt.Errorf("vocab: unknown duplicate policy %q", s)
	}
}

// DuplicateKeyError identifies two input records that normalize to the same key.
type DuplicateKeyError struct {
	Key     string
	Kept    payload.Record
	Dropped payload.Record
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: %q: kept %+v, dropped %+v", ErrDuplicateKey, e.Key, e.Kept, e.Dropped)
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}
