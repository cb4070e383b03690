package vocab

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Firemoon777/Vela-Vocabulary/payload"
)

type partItem struct {
	Entry
	runes []rune
}

type partitioner struct {
	v         *Vocabulary
	threshold int
}

// Partition builds the in-memory trie for entries.
//
// Entries must carry normalized, unique keys (see Dedupe). A subtree with
// fewer than threshold keys still to be split is collapsed into its node's
// leaf. Keys ending exactly at a node's prefix always land in that node's leaf.
//
// Nodes are emitted in pre-order and leaves in the order of their owners, so
// the result depends only on the key set, never on input order.
func Partition(entries []Entry, threshold int) (*Vocabulary, error) {
	if threshold < 1 {
		return nil, ErrBadThreshold
	}
	if err := CheckSize(uint64(len(entries))); err != nil {
		return nil, err
	}

	items := make([]partItem, len(entries))
	for i, e := range entries {
		if e.Key == "" {
			return nil, fmt.Errorf("%w: empty key for %+v", ErrInvalidKey, e.Record)
		}
		items[i] = partItem{Entry: e, runes: []rune(e.Key)}
	}

	p := partitioner{v: &Vocabulary{}, threshold: threshold}
	if _, err := p.partition("", 0, nil, items); err != nil {
		return nil, err
	}
	return p.v, nil
}

// partition emits the node for prefix. own holds the keys ending at prefix,
// rest the keys continuing past it.
func (p *partitioner) partition(prefix string, depth int, own, rest []partItem) (int, error) {
	idx := len(p.v.Nodes)
	n := &Node{Prefix: prefix, Depth: depth}
	p.v.Nodes = append(p.v.Nodes, n)

	if len(rest) < p.threshold {
		own = append(own, rest...)
		rest = nil
	}
	if len(own) > 0 {
		leaf, err := newLeaf(idx, own)
		if err != nil {
			return 0, err
		}
		n.Leaf = leaf
		p.v.Leaves = append(p.v.Leaves, leaf)
	}
	n.Total = uint32(len(own))

	if len(rest) == 0 {
		return idx, nil
	}

	type group struct {
		own, rest []partItem
	}
	groups := make(map[rune]*group)
	for _, it := range rest {
		if len(it.runes) <= depth {
			return 0, fmt.Errorf("%w: %q at depth %d", ErrKeyTooShort, it.Key, depth)
		}
		letter := it.runes[depth]
		g, ok := groups[letter]
		if !ok {
			g = &group{}
			groups[letter] = g
		}
		if len(it.runes) == depth+1 {
			g.own = append(g.own, it)
		} else {
			g.rest = append(g.rest, it)
		}
	}

	letters := make([]rune, 0, len(groups))
	for letter := range groups {
		letters = append(letters, letter)
	}
	slices.Sort(letters)

	n.Children = make([]ChildEntry, len(letters))
	for i, letter := range letters {
		n.Children[i].Letter = letter
	}
	for i, letter := range letters {
		g := groups[letter]
		target, err := p.partition(prefix+string(letter), depth+1, g.own, g.rest)
		if err != nil {
			return 0, err
		}
		n.Children[i].Target = target
		n.Total += p.v.Nodes[target].Total
	}
	return idx, nil
}

// newLeaf collects items into a leaf block ordered by record ID.
func newLeaf(owner int, items []partItem) (*LeafBlock, error) {
	seen := make(map[string]payload.Record, len(items))
	records := make([]payload.Record, 0, len(items))
	for _, it := range items {
		// Equal keys share a path, so a duplicate always meets its twin here.
		if prev, ok := seen[it.Key]; ok {
			return nil, &DuplicateKeyError{Key: it.Key, Kept: prev, Dropped: it.Record}
		}
		seen[it.Key] = it.Record
		records = append(records, it.Record)
	}
	slices.SortStableFunc(records, func(a, b payload.Record) int {
		if c := strings.Compare(a.ID, b.ID); c != 0 {
			return c
		}
		if c := strings.Compare(a.Translation, b.Translation); c != 0 {
			return c
		}
		return strings.Compare(a.Transcription, b.Transcription)
	})
	return &LeafBlock{Owner: owner, Records: records}, nil
}
