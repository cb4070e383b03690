package keyfilter

import (
	"github.com/cespare/xxhash/v2"
)

const keyDomainV1 = 0xB1

// InitV1 writes an empty filter sized for keyCount keys into region, which
// must hold at least RegionBytesV1 of the resulting width.
func InitV1(region []byte, keyCount, bitsPerKey uint64, k uint8) error {
	mBits, err := SizeV1(keyCount, bitsPerKey)
	if err != nil {
		return err
	}
	need := RegionBytesV1(mBits)
	if uint64(len(region)) < need {
		return ErrBadRegionSize
	}
	clear(region[:need])
	return EncodeHeaderV1(region, HeaderV1{
		Hash:     HashXXH64Pair,
		KeyForm:  KeyFormNFCLower,
		K:        k,
		MBits:    mBits,
		KeyCount: uint32(keyCount),
	})
}

// Build returns a filter holding every key in keys. Keys must already be in
// KeyFormNFCLower.
//
// An empty key set is sized as one key and rejects everything.
func Build(keys []string, bitsPerKey uint64, k uint8) ([]byte, error) {
	keyCount := max(uint64(len(keys)), 1)
	mBits, err := SizeV1(keyCount, bitsPerKey)
	if err != nil {
		return nil, err
	}
	region := make([]byte, RegionBytesV1(mBits))
	if err := InitV1(region, keyCount, bitsPerKey, k); err != nil {
		return nil, err
	}
	for _, key := range keys {
		if err := InsertV1(region, key); err != nil {
			return nil, err
		}
	}
	return region, nil
}

// CheckV1 validates that region holds a complete filter.
func CheckV1(region []byte) error {
	_, err := openV1(region)
	return err
}

// InsertV1 adds key and counts it in the header.
func InsertV1(region []byte, key string) error {
	f, err := openV1(region)
	if err != nil {
		return err
	}
	if f.header.NInserted >= f.header.KeyCount {
		return ErrFilterFull
	}
	f.probe(key, true)
	f.header.NInserted++
	return EncodeHeaderV1(region, f.header)
}

// MaybeContainsV1 reports false only if key was never inserted.
func MaybeContainsV1(region []byte, key string) (bool, error) {
	f, err := openV1(region)
	if err != nil {
		return false, err
	}
	return f.probe(key, false), nil
}

type filterV1 struct {
	header HeaderV1
	bits   []byte
}

func openV1(region []byte) (filterV1, error) {
	h, err := DecodeHeaderV1(region)
	if err != nil {
		return filterV1{}, err
	}
	end := RegionBytesV1(h.MBits)
	if uint64(len(region)) < end {
		return filterV1{}, ErrBadRegionSize
	}
	return filterV1{header: h, bits: region[HeaderBytesV1:end]}, nil
}

// probe reports whether every bit for key was already set. With set, the
// missing bits are set on the way.
func (f filterV1) probe(key string, set bool) bool {
	h1, h2 := hashPairV1(key)
	m := uint64(f.header.MBits)
	all := true
	for i := uint64(0); i < uint64(f.header.K); i++ {
		j := (h1 + i*h2) % m
		mask := byte(1) << (j & 7)
		if f.bits[j>>3]&mask != 0 {
			continue
		}
		if !set {
			return false
		}
		all = false
		f.bits[j>>3] |= mask
	}
	return all
}

func hashPairV1(key string) (uint64, uint64) {
	d := xxhash.New()
	_, _ = d.Write([]byte{keyDomainV1})
	_, _ = d.WriteString(key)
	return xxhash.Sum64String(key), d.Sum64() | 1
}
