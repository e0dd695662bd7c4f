package codec

import (
	"bytes"
	"encoding/gob"
)

// Binary is a gob-backed codec. It keeps float arrays bit-exact and
// compact, at the cost of being Go-specific.
type Binary struct{}

// Marshal encodes the value with gob.
func (Binary) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes the gob data into v.
func (Binary) Unmarshal(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// Name returns the unique name of the codec ("binary").
func (Binary) Name() string { return "binary" }
