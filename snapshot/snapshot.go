package snapshot

import (
	"context"

	"github.com/hupe1980/meshgo"
	"github.com/hupe1980/meshgo/attribute"
	"github.com/hupe1980/meshgo/blobstore"
	"github.com/hupe1980/meshgo/codec"
)

// Options contains configuration for writing snapshots. Reading is
// self-describing and needs no options.
type Options struct {
	// Codec encodes the mesh payload. Its name is recorded in the
	// snapshot header.
	Codec codec.Codec

	// Compression is applied to the encoded payload. When it does not
	// shrink the payload, the snapshot falls back to CompressionNone.
	Compression Compression
}

// DefaultOptions are the default snapshot write options.
var DefaultOptions = Options{
	Codec:       codec.Default,
	Compression: CompressionZstd,
}

// columnModel holds one attribute's flat values. Exactly one slice is
// populated, matching the attribute's value kind.
type columnModel struct {
	Int8    []int8
	Int16   []int16
	Int32   []int32
	Int64   []int64
	Uint8   []uint8
	Uint16  []uint16
	Uint32  []uint32
	Uint64  []uint64
	Float32 []float32
	Float64 []float64
}

type attributeModel struct {
	Name        string
	Element     int
	Usage       int
	NumChannels int
	Kind        int
	Values      columnModel

	// Indexed attributes only.
	NumValues int
	Indices   []uint64
}

type meshModel[S meshgo.Scalar, I meshgo.Index] struct {
	Dim        int
	Positions  []S
	Corners    []I
	Attributes []attributeModel
}

// Marshal serializes a mesh into a self-describing snapshot blob.
func Marshal[S meshgo.Scalar, I meshgo.Index](m *meshgo.SurfaceMesh[S, I], optFns ...func(o *Options)) ([]byte, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Codec == nil {
		opts.Codec = codec.Default
	}

	model, err := pack(m)
	if err != nil {
		return nil, err
	}

	payload, err := opts.Codec.Marshal(model)
	if err != nil {
		return nil, err
	}

	stored, used, err := compress(payload, opts.Compression)
	if err != nil {
		return nil, err
	}

	h := &header{
		compression:      used,
		codecName:        opts.Codec.Name(),
		uncompressedSize: uint64(len(payload)),
		checksum:         checksum(stored),
		payloadSize:      uint64(len(stored)),
	}
	return append(h.encode(), stored...), nil
}

// Unmarshal reconstructs a mesh from a snapshot blob. The scalar and
// index types must match the ones the snapshot was written with.
func Unmarshal[S meshgo.Scalar, I meshgo.Index](data []byte, optFns ...meshgo.Option) (*meshgo.SurfaceMesh[S, I], error) {
	h, start, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}

	stored := data[start : start+int(h.payloadSize)]
	if sum := checksum(stored); sum != h.checksum {
		return nil, &ChecksumMismatchError{Expected: h.checksum, Actual: sum}
	}

	c, ok := codec.ByName(h.codecName)
	if !ok {
		return nil, &UnknownCodecError{Name: h.codecName}
	}

	payload, err := decompress(stored, h.compression, h.uncompressedSize)
	if err != nil {
		return nil, err
	}

	var model meshModel[S, I]
	if err := c.Unmarshal(payload, &model); err != nil {
		return nil, err
	}

	return unpack(&model, optFns...)
}

// Save writes a mesh snapshot to a blob store.
func Save[S meshgo.Scalar, I meshgo.Index](ctx context.Context, store blobstore.Store, name string, m *meshgo.SurfaceMesh[S, I], optFns ...func(o *Options)) error {
	data, err := Marshal(m, optFns...)
	if err != nil {
		return err
	}
	return store.Put(ctx, name, data)
}

// Load reads a mesh snapshot from a blob store.
func Load[S meshgo.Scalar, I meshgo.Index](ctx context.Context, store blobstore.Store, name string, optFns ...meshgo.Option) (*meshgo.SurfaceMesh[S, I], error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	data, err := blobstore.ReadAll(blob)
	if err != nil {
		return nil, err
	}

	return Unmarshal[S, I](data, optFns...)
}

func pack[S meshgo.Scalar, I meshgo.Index](m *meshgo.SurfaceMesh[S, I]) (*meshModel[S, I], error) {
	model := &meshModel[S, I]{
		Dim:       m.Dim(),
		Positions: append([]S(nil), m.Positions()...),
		Corners:   append([]I(nil), m.Facets()...),
	}

	for _, name := range m.Attributes() {
		// Positions and corners are stored in the model directly.
		if meshgo.IsReservedName(name) {
			continue
		}

		id, err := m.AttributeID(name)
		if err != nil {
			return nil, err
		}
		b, err := m.AttributeBase(id)
		if err != nil {
			return nil, err
		}

		am := attributeModel{
			Name:        name,
			Element:     int(b.Element()),
			Usage:       int(b.Usage()),
			NumChannels: b.NumChannels(),
			Kind:        int(b.ValueKind()),
		}

		if b.Element() == attribute.ElementIndexed {
			err = packIndexed[I](b, &am)
		} else {
			err = packColumn(b, &am)
		}
		if err != nil {
			return nil, err
		}

		model.Attributes = append(model.Attributes, am)
	}

	return model, nil
}

func unpack[S meshgo.Scalar, I meshgo.Index](model *meshModel[S, I], optFns ...meshgo.Option) (*meshgo.SurfaceMesh[S, I], error) {
	m, err := meshgo.NewSurfaceMesh[S, I](model.Dim, optFns...)
	if err != nil {
		return nil, err
	}

	if err := m.AddVertices(model.Positions); err != nil {
		return nil, err
	}
	if err := m.AddTriangles(model.Corners); err != nil {
		return nil, err
	}

	for _, am := range model.Attributes {
		if err := restoreAttribute(m, am); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func packColumn(b attribute.Base, am *attributeModel) error {
	c := &am.Values
	switch b.ValueKind() {
	case attribute.KindInt8:
		return packTyped[int8](b, c)
	case attribute.KindInt16:
		return packTyped[int16](b, c)
	case attribute.KindInt32:
		return packTyped[int32](b, c)
	case attribute.KindInt64:
		return packTyped[int64](b, c)
	case attribute.KindUint8:
		return packTyped[uint8](b, c)
	case attribute.KindUint16:
		return packTyped[uint16](b, c)
	case attribute.KindUint32:
		return packTyped[uint32](b, c)
	case attribute.KindUint64:
		return packTyped[uint64](b, c)
	case attribute.KindFloat32:
		return packTyped[float32](b, c)
	case attribute.KindFloat64:
		return packTyped[float64](b, c)
	default:
		return &meshgo.UnsupportedKindError{Name: am.Name, Op: "snapshot"}
	}
}

func packTyped[V attribute.Value](b attribute.Base, c *columnModel) error {
	a, err := attribute.Cast[V](b)
	if err != nil {
		return err
	}
	setColumn(c, a.GetAll())
	return nil
}

func packIndexed[I meshgo.Index](b attribute.Base, am *attributeModel) error {
	switch b.ValueKind() {
	case attribute.KindInt8:
		return packIndexedTyped[int8, I](b, am)
	case attribute.KindInt16:
		return packIndexedTyped[int16, I](b, am)
	case attribute.KindInt32:
		return packIndexedTyped[int32, I](b, am)
	case attribute.KindInt64:
		return packIndexedTyped[int64, I](b, am)
	case attribute.KindUint8:
		return packIndexedTyped[uint8, I](b, am)
	case attribute.KindUint16:
		return packIndexedTyped[uint16, I](b, am)
	case attribute.KindUint32:
		return packIndexedTyped[uint32, I](b, am)
	case attribute.KindUint64:
		return packIndexedTyped[uint64, I](b, am)
	case attribute.KindFloat32:
		return packIndexedTyped[float32, I](b, am)
	case attribute.KindFloat64:
		return packIndexedTyped[float64, I](b, am)
	default:
		return &meshgo.UnsupportedKindError{Name: am.Name, Op: "snapshot"}
	}
}

func packIndexedTyped[V attribute.Value, I meshgo.Index](b attribute.Base, am *attributeModel) error {
	a, err := attribute.CastIndexed[V, I](b)
	if err != nil {
		return err
	}

	am.NumValues = a.Values().NumElements()
	setColumn(&am.Values, a.Values().GetAll())

	indices := a.Indices().GetAll()
	am.Indices = make([]uint64, len(indices))
	for i, v := range indices {
		am.Indices[i] = uint64(v)
	}
	return nil
}

func restoreAttribute[S meshgo.Scalar, I meshgo.Index](m *meshgo.SurfaceMesh[S, I], am attributeModel) error {
	switch attribute.ValueKind(am.Kind) {
	case attribute.KindInt8:
		return restoreTyped[int8](m, am)
	case attribute.KindInt16:
		return restoreTyped[int16](m, am)
	case attribute.KindInt32:
		return restoreTyped[int32](m, am)
	case attribute.KindInt64:
		return restoreTyped[int64](m, am)
	case attribute.KindUint8:
		return restoreTyped[uint8](m, am)
	case attribute.KindUint16:
		return restoreTyped[uint16](m, am)
	case attribute.KindUint32:
		return restoreTyped[uint32](m, am)
	case attribute.KindUint64:
		return restoreTyped[uint64](m, am)
	case attribute.KindFloat32:
		return restoreTyped[float32](m, am)
	case attribute.KindFloat64:
		return restoreTyped[float64](m, am)
	default:
		return &meshgo.UnsupportedKindError{Name: am.Name, Op: "snapshot"}
	}
}

func restoreTyped[V attribute.Value, S meshgo.Scalar, I meshgo.Index](m *meshgo.SurfaceMesh[S, I], am attributeModel) error {
	if attribute.Element(am.Element) == attribute.ElementIndexed {
		if _, err := meshgo.CreateIndexedAttribute[V](m, am.Name, attribute.Usage(am.Usage), am.NumChannels, am.NumValues); err != nil {
			return err
		}
		a, err := meshgo.IndexedOf[V, S, I](m, am.Name)
		if err != nil {
			return err
		}

		values, err := a.Values().RefAll()
		if err != nil {
			return err
		}
		copy(values, columnOf[V](am.Values))

		indices, err := a.Indices().RefAll()
		if err != nil {
			return err
		}
		for i, v := range am.Indices {
			indices[i] = I(v)
		}
		return nil
	}

	if _, err := meshgo.CreateAttribute[V](m, am.Name, attribute.Element(am.Element), attribute.Usage(am.Usage), am.NumChannels); err != nil {
		return err
	}
	a, err := meshgo.AttributeOf[V, S, I](m, am.Name)
	if err != nil {
		return err
	}

	data, err := a.RefAll()
	if err != nil {
		return err
	}
	copy(data, columnOf[V](am.Values))
	return nil
}

func setColumn(c *columnModel, data any) {
	switch v := data.(type) {
	case []int8:
		c.Int8 = v
	case []int16:
		c.Int16 = v
	case []int32:
		c.Int32 = v
	case []int64:
		c.Int64 = v
	case []uint8:
		c.Uint8 = v
	case []uint16:
		c.Uint16 = v
	case []uint32:
		c.Uint32 = v
	case []uint64:
		c.Uint64 = v
	case []float32:
		c.Float32 = v
	case []float64:
		c.Float64 = v
	}
}

func columnOf[V attribute.Value](c columnModel) []V {
	var data any
	switch attribute.KindOf[V]() {
	case attribute.KindInt8:
		data = c.Int8
	case attribute.KindInt16:
		data = c.Int16
	case attribute.KindInt32:
		data = c.Int32
	case attribute.KindInt64:
		data = c.Int64
	case attribute.KindUint8:
		data = c.Uint8
	case attribute.KindUint16:
		data = c.Uint16
	case attribute.KindUint32:
		data = c.Uint32
	case attribute.KindUint64:
		data = c.Uint64
	case attribute.KindFloat32:
		data = c.Float32
	case attribute.KindFloat64:
		data = c.Float64
	}
	out, _ := data.([]V)
	return out
}
