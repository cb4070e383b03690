package keyfilter

// Header layout, all integers big-endian:
//
//	[0:4]   magic "VKF1"
//	[4]     version
//	[5]     hash scheme
//	[6]     key form
//	[7]     k
//	[8:12]  mBits
//	[12:16] key count
//	[16:20] nInserted
//	[20:32] reserved, zero

// DecodeHeaderV1 decodes and validates the header at the start of region. A
// region whose magic is all zero is ErrNotInitialized.
func DecodeHeaderV1(region []byte) (HeaderV1, error) {
	if len(region) < HeaderBytesV1 {
		return HeaderV1{}, ErrBadRegionSize
	}
	switch string(region[0:4]) {
	case MagicV1:
	case "\x00\x00\x00\x00":
		return HeaderV1{}, ErrNotInitialized
	default:
		return HeaderV1{}, ErrBadMagic
	}
	if region[4] != VersionV1 {
		return HeaderV1{}, ErrBadVersion
	}

	h := HeaderV1{
		Hash:      region[5],
		KeyForm:   region[6],
		K:         region[7],
		MBits:     readU32BE(region[8:12]),
		KeyCount:  readU32BE(region[12:16]),
		NInserted: readU32BE(region[16:20]),
	}
	if err := h.validate(); err != nil {
		return HeaderV1{}, err
	}
	return h, nil
}

// EncodeHeaderV1 validates h and writes it to the start of region.
func EncodeHeaderV1(region []byte, h HeaderV1) error {
	if len(region) < HeaderBytesV1 {
		return ErrBadRegionSize
	}
	if err := h.validate(); err != nil {
		return err
	}
	copy(region[0:4], MagicV1)
	region[4] = VersionV1
	region[5] = h.Hash
	region[6] = h.KeyForm
	region[7] = h.K
	writeU32BE(region[8:12], h.MBits)
	writeU32BE(region[12:16], h.KeyCount)
	writeU32BE(region[16:20], h.NInserted)
	clear(region[20:HeaderBytesV1])
	return nil
}
