// Package codec centralizes payload and metadata encoding.
//
// Codec selection is a breaking-change boundary: if you change codecs,
// persisted bytes created by older codecs may no longer decode.
// Snapshot files are self-describing and record the codec name in their
// header, so they are opened by selecting the codec by name.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "binary":
		return Binary{}, true
	default:
		return nil, false
	}
}

// Default is the default codec used by the library.
//
// This affects newly-created snapshots; existing files record the codec
// name in their header and decode with whatever they were written with.
var Default Codec = Binary{}

// MustMarshal is a helper for internal tests/benchmarks.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
