package vocabstore

import (
	"github.com/Firemoon777/Vela-Vocabulary/keyfilter"
	"github.com/Firemoon777/Vela-Vocabulary/vocab"
)

type SaveOptions struct {
	filterBitsPerKey uint64
	filterK          uint8
}

type SaveOption func(*SaveOptions)

// WithKeyFilter also writes a keyfilter sidecar sized at bitsPerKey with k
// probes. bitsPerKey == 0 disables the sidecar.
func WithKeyFilter(bitsPerKey uint64, k uint8) SaveOption {
	return func(o *SaveOptions) {
		o.filterBitsPerKey = bitsPerKey
		o.filterK = k
	}
}

// WithDefaultKeyFilter writes a keyfilter sidecar using the package defaults.
func WithDefaultKeyFilter() SaveOption {
	return WithKeyFilter(keyfilter.DefaultBitsPerKey, keyfilter.DefaultK)
}

type OpenOptions struct {
	cacheSize   int
	skipFilter  bool
	dictOptions []vocab.DictionaryOption
}

type OpenOption func(*OpenOptions)

// WithLeafCache is passed through to the opened Dictionary.
func WithLeafCache(size int) OpenOption {
	return func(o *OpenOptions) {
		o.cacheSize = size
	}
}

// WithoutKeyFilter ignores any key filter sidecar.
func WithoutKeyFilter() OpenOption {
	return func(o *OpenOptions) {
		o.skipFilter = true
	}
}

// WithDictionaryOptions appends raw Dictionary options. They are applied
// after the ones derived from the manifest, so they win.
func WithDictionaryOptions(opts ...vocab.DictionaryOption) OpenOption {
	return func(o *OpenOptions) {
		o.dictOptions = append(o.dictOptions, opts...)
	}
}
