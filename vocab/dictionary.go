package vocab

import (
	"github.com/Firemoon777/Vela-Vocabulary/keyfilter"
	"github.com/Firemoon777/Vela-Vocabulary/payload"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Dictionary serves lookups against one immutable encoded vocabulary.
//
// It is safe for concurrent use: the buffer is never written and the optional
// leaf cache is internally locked.
type Dictionary struct {
	buf    []byte
	header Header
	codec  payload.Codec
	leaves *lru.Cache[uint32, []payload.Record]
	filter []byte
}

type DictionaryOptions struct {
	codec     payload.Codec
	cacheSize int
	filter    []byte
}

type DictionaryOption func(*DictionaryOptions)

// WithReaderCodec selects the leaf codec. The default is JSON.
func WithReaderCodec(codec payload.Codec) DictionaryOption {
	return func(o *DictionaryOptions) {
		o.codec = codec
	}
}

// WithLeafCache keeps up to size decoded leaf blocks in memory.
func WithLeafCache(size int) DictionaryOption {
	return func(o *DictionaryOptions) {
		o.cacheSize = size
	}
}

// WithKeyFilter consults a keyfilter region before touching the trie.
func WithKeyFilter(region []byte) DictionaryOption {
	return func(o *DictionaryOptions) {
		o.filter = region
	}
}

// NewDictionary validates the header and root table of buf.
func NewDictionary(buf []byte, opts ...DictionaryOption) (*Dictionary, error) {
	o := DictionaryOptions{codec: payload.JSONCodec{}}
	for _, opt := range opts {
		opt(&o)
	}

	h, err := ReadHeader(buf)
	if err != nil {
		return nil, err
	}
	if _, err := ReadTable(buf, h.Root().Offset, h.Root().Size); err != nil {
		return nil, err
	}
	if o.filter != nil {
		if err := keyfilter.CheckV1(o.filter); err != nil {
			return nil, err
		}
	}

	d := &Dictionary{
		buf:    buf,
		header: h,
		codec:  o.codec,
		filter: o.filter,
	}
	if o.cacheSize > 0 {
		d.leaves, err = lru.New[uint32, []payload.Record](o.cacheSize)
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Header returns the decoded file header.
func (d *Dictionary) Header() Header {
	return d.header
}

// Root returns the root table.
func (d *Dictionary) Root() (Table, error) {
	return d.Table(d.header.Root())
}

// Table decodes the table at ref.
func (d *Dictionary) Table(ref TableRef) (Table, error) {
	return ReadTable(d.buf, ref.Offset, ref.Size)
}

// Leaf decodes the leaf block owned by t, or returns nil if it has none.
//
// The returned slice may be shared with other callers and must not be modified.
func (d *Dictionary) Leaf(t Table) ([]payload.Record, error) {
	if !t.HasLeaf() {
		return nil, nil
	}
	if d.leaves != nil {
		if records, ok := d.leaves.Get(t.DataOffset); ok {
			return records, nil
		}
	}
	records, err := ReadLeaf(d.buf, d.codec, t.DataOffset, t.DataLength)
	if err != nil {
		return nil, err
	}
	if d.leaves != nil {
		d.leaves.Add(t.DataOffset, records)
	}
	return records, nil
}

// Lookup resolves word. ok=false means the word is not in the vocabulary.
func (d *Dictionary) Lookup(word string) (payload.Record, bool, error) {
	if d.filter != nil {
		key, err := NormalizeKey(word)
		if err != nil {
			return payload.Record{}, false, nil
		}
		maybe, err := keyfilter.MaybeContainsV1(d.filter, key)
		if err != nil {
			return payload.Record{}, false, err
		}
		if !maybe {
			return payload.Record{}, false, nil
		}
	}
	return lookup(d.buf, d.header, word, d.Leaf)
}

// Len returns the number of words in the vocabulary.
func (d *Dictionary) Len() (int, error) {
	root, err := d.Root()
	if err != nil {
		return 0, err
	}
	records, err := d.Leaf(root)
	if err != nil {
		return 0, err
	}
	n := len(records)
	for _, c := range root.Children {
		n += int(c.Words)
	}
	return n, nil
}

// Bytes returns the underlying buffer. It must not be modified.
func (d *Dictionary) Bytes() []byte {
	return d.buf
}
