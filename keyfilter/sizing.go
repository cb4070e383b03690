package keyfilter

import "math"

// SizeV1 returns the bitset width in bits for keyCount keys at bitsPerKey
// bits each.
func SizeV1(keyCount, bitsPerKey uint64) (uint32, error) {
	if keyCount == 0 || bitsPerKey == 0 {
		return 0, ErrBadMBits
	}
	if keyCount > math.MaxUint32 || bitsPerKey > math.MaxUint32 {
		return 0, ErrMBitsOverflow
	}
	mBits := keyCount * bitsPerKey
	if mBits > math.MaxUint32 {
		return 0, ErrMBitsOverflow
	}
	return uint32(mBits), nil
}

// RegionBytesV1 returns the region size for an mBits wide bitset.
func RegionBytesV1(mBits uint32) uint64 {
	return HeaderBytesV1 + (uint64(mBits)+7)/8
}
