package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// readRows decodes a JSON array of objects. Scalar values are turned into
// strings; null becomes "". Nested values are rejected.
func readRows(r io.Reader) ([]map[string]string, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("input is not a JSON array of objects: %w", err)
	}

	rows := make([]map[string]string, len(raw))
	for i, obj := range raw {
		row := make(map[string]string, len(obj))
		for k, v := range obj {
			s, err := scalarString(v)
			if err != nil {
				return nil, fmt.Errorf("row %d, field %q: %w", i, k, err)
			}
			row[k] = s
		}
		rows[i] = row
	}
	return rows, nil
}

func scalarString(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("unsupported value of type %T", v)
	}
}
