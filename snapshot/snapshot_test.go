package snapshot

import (
	"bytes"
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshgo"
	"github.com/hupe1980/meshgo/attribute"
	"github.com/hupe1980/meshgo/blobstore"
	"github.com/hupe1980/meshgo/codec"
)

func buildTestMesh(t *testing.T) *meshgo.SurfaceMesh[float64, uint32] {
	t.Helper()

	m, err := meshgo.NewSurfaceMesh[float64, uint32](3)
	require.NoError(t, err)

	require.NoError(t, m.AddVertices([]float64{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	}))
	require.NoError(t, m.AddTriangles([]uint32{0, 1, 2, 0, 2, 3}))

	_, err = meshgo.CreateAttribute[float64](m, "height", attribute.ElementVertex, attribute.UsageScalar, 1)
	require.NoError(t, err)
	height, err := meshgo.AttributeOf[float64, float64, uint32](m, "height")
	require.NoError(t, err)
	for v, h := range []float64{0.5, 1.5, 2.5, 3.5} {
		require.NoError(t, height.Set(v, 0, h))
	}

	_, err = meshgo.CreateAttribute[uint32](m, "material", attribute.ElementFacet, attribute.UsageScalar, 1)
	require.NoError(t, err)
	material, err := meshgo.AttributeOf[uint32, float64, uint32](m, "material")
	require.NoError(t, err)
	require.NoError(t, material.Set(0, 0, 7))
	require.NoError(t, material.Set(1, 0, 9))

	_, err = meshgo.CreateIndexedAttribute[float32](m, "uv", attribute.UsageUV, 2, 3)
	require.NoError(t, err)
	uv, err := meshgo.IndexedOf[float32, float64, uint32](m, "uv")
	require.NoError(t, err)
	values, err := uv.Values().RefAll()
	require.NoError(t, err)
	copy(values, []float32{0, 0, 1, 0, 1, 1})
	indices, err := uv.Indices().RefAll()
	require.NoError(t, err)
	copy(indices, []uint32{0, 1, 2, 0, 2, 2})

	return m
}

func assertMeshEqual(t *testing.T, want, got *meshgo.SurfaceMesh[float64, uint32]) {
	t.Helper()

	require.Equal(t, want.Dim(), got.Dim())
	require.Equal(t, want.NumVertices(), got.NumVertices())
	require.Equal(t, want.NumFacets(), got.NumFacets())
	require.Equal(t, want.Positions(), got.Positions())
	require.Equal(t, want.Facets(), got.Facets())
	require.ElementsMatch(t, want.Attributes(), got.Attributes())

	height, err := meshgo.AttributeOf[float64, float64, uint32](got, "height")
	require.NoError(t, err)
	require.Equal(t, []float64{0.5, 1.5, 2.5, 3.5}, height.GetAll())

	material, err := meshgo.AttributeOf[uint32, float64, uint32](got, "material")
	require.NoError(t, err)
	require.Equal(t, attribute.ElementFacet, material.Element())
	require.Equal(t, []uint32{7, 9}, material.GetAll())

	uv, err := meshgo.IndexedOf[float32, float64, uint32](got, "uv")
	require.NoError(t, err)
	require.Equal(t, 3, uv.Values().NumElements())
	require.Equal(t, []float32{0, 0, 1, 0, 1, 1}, uv.Values().GetAll())
	require.Equal(t, []uint32{0, 1, 2, 0, 2, 2}, uv.Indices().GetAll())
}

func TestSnapshotRoundTrip(t *testing.T) {
	m := buildTestMesh(t)

	compressions := map[string]Compression{
		"none": CompressionNone,
		"lz4":  CompressionLZ4,
		"zstd": CompressionZstd,
	}
	codecs := map[string]codec.Codec{
		"binary": codec.Binary{},
		"json":   codec.JSON{},
	}

	for cname, c := range codecs {
		for zname, z := range compressions {
			t.Run(cname+"/"+zname, func(t *testing.T) {
				data, err := Marshal(m, func(o *Options) {
					o.Codec = c
					o.Compression = z
				})
				require.NoError(t, err)

				got, err := Unmarshal[float64, uint32](data)
				require.NoError(t, err)

				assertMeshEqual(t, m, got)
			})
		}
	}
}

func TestSnapshotDefaults(t *testing.T) {
	m := buildTestMesh(t)

	data, err := Marshal(m)
	require.NoError(t, err)

	got, err := Unmarshal[float64, uint32](data)
	require.NoError(t, err)
	assertMeshEqual(t, m, got)
}

func TestSnapshotFloat32Mesh(t *testing.T) {
	m, err := meshgo.NewSurfaceMesh[float32, uint64](2)
	require.NoError(t, err)
	require.NoError(t, m.AddVertices([]float32{0, 0, 1, 0, 0, 1}))
	require.NoError(t, m.AddTriangles([]uint64{0, 1, 2}))

	data, err := Marshal(m)
	require.NoError(t, err)

	got, err := Unmarshal[float32, uint64](data)
	require.NoError(t, err)
	require.Equal(t, m.Positions(), got.Positions())
	require.Equal(t, m.Facets(), got.Facets())
}

func TestSnapshotCorruption(t *testing.T) {
	m := buildTestMesh(t)

	data, err := Marshal(m)
	require.NoError(t, err)

	t.Run("InvalidMagic", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[0] ^= 0xff
		_, err := Unmarshal[float64, uint32](bad)
		require.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("InvalidVersion", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[4] ^= 0xff
		_, err := Unmarshal[float64, uint32](bad)
		require.ErrorIs(t, err, ErrInvalidVersion)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := Unmarshal[float64, uint32](data[:8])
		require.ErrorIs(t, err, ErrTruncated)

		_, err = Unmarshal[float64, uint32](data[:len(data)-1])
		require.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("FlippedPayloadByte", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[len(bad)-1] ^= 0xff
		_, err := Unmarshal[float64, uint32](bad)
		var mismatch *ChecksumMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.NotEqual(t, mismatch.Expected, mismatch.Actual)
	})

	t.Run("UnknownCodec", func(t *testing.T) {
		h := &header{
			compression:      CompressionNone,
			codecName:        "msgpack",
			uncompressedSize: 2,
			checksum:         checksum([]byte("{}")),
			payloadSize:      2,
		}
		bad := append(h.encode(), []byte("{}")...)
		_, err := Unmarshal[float64, uint32](bad)
		var unknown *UnknownCodecError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "msgpack", unknown.Name)
	})
}

func TestCompressRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	compressible := bytes.Repeat([]byte("meshgo snapshot payload "), 256)
	random := make([]byte, 4096)
	rng.Read(random)

	for _, data := range [][]byte{compressible, random} {
		for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
			stored, used, err := compress(data, c)
			require.NoError(t, err)

			got, err := decompress(stored, used, uint64(len(data)))
			require.NoError(t, err)
			require.Equal(t, data, got)
		}
	}

	// Compressible data must actually shrink.
	stored, used, err := compress(compressible, CompressionZstd)
	require.NoError(t, err)
	assert.Equal(t, CompressionZstd, used)
	assert.Less(t, len(stored), len(compressible))
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	m := buildTestMesh(t)

	require.NoError(t, Save(ctx, store, "meshes/square.snap", m))

	got, err := Load[float64, uint32](ctx, store, "meshes/square.snap")
	require.NoError(t, err)
	assertMeshEqual(t, m, got)

	_, err = Load[float64, uint32](ctx, store, "meshes/missing.snap")
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}
