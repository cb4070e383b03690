package keyfilter

import "errors"

const (
	// HeaderBytesV1 is the fixed header size for HeaderV1.
	HeaderBytesV1 = 32

	MagicV1         = "VKF1"
	VersionV1 uint8 = 1

	// HashXXH64Pair probes bit (h1 + i*h2) mod mBits for i in [0, k), where
	// h1 = xxh64(key) and h2 = xxh64(0xB1 || key) | 1.
	HashXXH64Pair uint8 = 1

	// KeyFormNFCLower marks keys that were NFC normalized then lower-cased
	// before insertion, the form vocab.NormalizeKey produces.
	KeyFormNFCLower uint8 = 1

	// DefaultBitsPerKey and DefaultK give roughly a 1% false positive rate.
	DefaultBitsPerKey uint64 = 10
	DefaultK          uint8  = 7
)

var (
	ErrBadRegionSize  = errors.New("keyfilter: region buffer too small")
	ErrNotInitialized = errors.New("keyfilter: header not initialized")

	ErrBadMagic    = errors.New("keyfilter: header magic invalid")
	ErrBadVersion  = errors.New("keyfilter: header version invalid")
	ErrBadHash     = errors.New("keyfilter: hash scheme unsupported")
	ErrBadKeyForm  = errors.New("keyfilter: key form unsupported")
	ErrBadK        = errors.New("keyfilter: header k invalid")
	ErrBadMBits    = errors.New("keyfilter: header mBits invalid")
	ErrBadKeyCount = errors.New("keyfilter: key count invalid")

	ErrMBitsOverflow = errors.New("keyfilter: mBits overflows supported range")
	ErrFilterFull    = errors.New("keyfilter: more keys inserted than the filter was sized for")
)

// HeaderV1 describes a filter region.
//
// KeyCount is the number of keys the bitset was sized for; NInserted never
// exceeds it.
type HeaderV1 struct {
	Hash      uint8
	KeyForm   uint8
	K         uint8
	MBits     uint32
	KeyCount  uint32
	NInserted uint32
}

func (h HeaderV1) validate() error {
	switch {
	case h.Hash != HashXXH64Pair:
		return ErrBadHash
	case h.KeyForm != KeyFormNFCLower:
		return ErrBadKeyForm
	case h.K == 0:
		return ErrBadK
	case h.MBits == 0:
		return ErrBadMBits
	case h.KeyCount == 0, h.NInserted > h.KeyCount:
		return ErrBadKeyCount
	}
	return nil
}
