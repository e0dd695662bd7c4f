package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Dim       int
	Positions []float64
	Facets    []uint32
}

func TestCodecs(t *testing.T) {
	in := payload{
		Dim:       3,
		Positions: []float64{0, 0, 0, 1, 0, 0, 0.123456789123456789, 1, 0},
		Facets:    []uint32{0, 1, 2},
	}

	for _, c := range []Codec{JSON{}, Binary{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(in)
			require.NoError(t, err)

			var out payload
			require.NoError(t, c.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "binary"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestMustMarshalFallsBackToDefault(t *testing.T) {
	data := MustMarshal(nil, payload{Dim: 2})
	var out payload
	require.NoError(t, Default.Unmarshal(data, &out))
	assert.Equal(t, 2, out.Dim)
}
