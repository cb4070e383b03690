package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSONCodec is the device leaf format: a UTF-8 JSON array of records.
type JSONCodec struct{}

func (JSONCodec) Name() string { return CodecJSON }

func (JSONCodec) Encode(records []Record) ([]byte, error) {
	if err := validateAll(records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadEncode, err)
	}
	// Encoder terminates each value with a newline; the leaf length must not
	// include it.
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

func (JSONCodec) Decode(data []byte) ([]Record, error) {
	if len(data) == 0 || data[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrPayloadDecode)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadDecode, err)
	}
	return records, nil
}
