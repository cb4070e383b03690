package payload

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	ErrPayloadDecode = errors.New("payload: leaf block is not a valid record sequence")
	ErrPayloadEncode = errors.New("payload: failed to encode record sequence")
	ErrUnknownCodec  = errors.New("payload: unknown codec")
	ErrInvalidUTF8   = errors.New("payload: record field is not valid UTF-8")
)

// Record is one vocabulary entry as stored in a leaf block.
type Record struct {
	ID            string `json:"i" cbor:"i"`
	Translation   string `json:"o" cbor:"o"`
	Transcription string `json:"s" cbor:"s"`
}

// Validate checks that every field of r is valid UTF-8. Both codecs only
// round-trip valid text.
func (r Record) Validate() error {
	for _, f := range [...]struct{ name, value string }{
		{"id", r.ID},
		{"translation", r.Translation},
		{"transcription", r.Transcription},
	} {
		if !utf8.ValidString(f.value) {
			return fmt.Errorf("%w: %s %q", ErrInvalidUTF8, f.name, f.value)
		}
	}
	return nil
}

func validateAll(records []Record) error {
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("%w: record %d: %w", ErrPayloadEncode, i, err)
		}
	}
	return nil
}

// Codec encodes an ordered record list into a self-delimited leaf block and
// back. Decode(Encode(rs)) must reproduce rs exactly, including order.
type Codec interface {
	Name() string
	Encode(records []Record) ([]byte, error)
	Decode(data []byte) ([]Record, error)
}

const (
	CodecJSON = "json"
	CodecCBOR = "cbor"
)

// CodecByName returns the codec registered under name.
func CodecByName(name string) (Codec, error) {
	switch name {
	case CodecJSON, "":
		return JSONCodec{}, nil
	case CodecCBOR:
		c, err := NewCBORCodec()
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, ErrUnknownCodec
	}
}
