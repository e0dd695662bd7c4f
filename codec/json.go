package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// JSON is the portable choice: the payload stays human-readable and
// decodable outside this library. Large float arrays pay a size and
// precision-formatting cost compared to Binary.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }
