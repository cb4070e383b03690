package payload

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// CBORCodec encodes leaf blocks as a core deterministic CBOR array.
type CBORCodec struct {
	encMode cbor.EncMode
	decMode cbor.DecMode
}

func NewCBORCodec() (CBORCodec, error) {
	encMode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return CBORCodec{}, err
	}
	decMode, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return CBORCodec{}, err
	}
	return CBORCodec{encMode: encMode, decMode: decMode}, nil
}

func (CBORCodec) Name() string { return CodecCBOR }

func (c CBORCodec) Encode(records []Record) ([]byte, error) {
	if err := validateAll(records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}
	data, err := c.encMode.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadEncode, err)
	}
	return data, nil
}

func (c CBORCodec) Decode(data []byte) ([]Record, error) {
	var records []Record
	// Unmarshal rejects trailing bytes, which keeps the block self-delimited.
	if err := c.decMode.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadDecode, err)
	}
	return records, nil
}
