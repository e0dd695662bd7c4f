package attribute

import "fmt"

// Element is the type of mesh entity an attribute's rows correspond to.
type Element int

// Supported element types. This is a closed vocabulary that external I/O
// and UI layers switch on; adding a value is a breaking change.
const (
	// ElementVertex marks per-vertex attributes.
	ElementVertex Element = iota

	// ElementFacet marks per-facet attributes.
	ElementFacet

	// ElementEdge marks per-edge attributes.
	ElementEdge

	// ElementCorner marks per-corner attributes (one row per facet corner).
	ElementCorner

	// ElementValue marks free-standing value buffers not attached to a
	// specific mesh element, e.g. the value pool behind an indexed
	// attribute. Sizing such attributes is the caller's responsibility.
	ElementValue

	// ElementIndexed marks indexed attributes (a value pool plus a
	// per-corner index buffer).
	ElementIndexed
)

// String returns a string representation of the Element.
func (e Element) String() string {
	switch e {
	case ElementVertex:
		return "Vertex"
	case ElementFacet:
		return "Facet"
	case ElementEdge:
		return "Edge"
	case ElementCorner:
		return "Corner"
	case ElementValue:
		return "Value"
	case ElementIndexed:
		return "Indexed"
	default:
		return fmt.Sprintf("Unknown(%d)", int(e))
	}
}

// Usage is a semantic tag indicating how an attribute should behave under
// mesh transformations. It mostly serves as a hint for downstream
// algorithms and does not affect how the attribute is stored.
type Usage int

// Supported usage tags.
const (
	// UsageVector allows any number of channels (including 1).
	UsageVector Usage = iota

	// UsageScalar requires exactly 1 channel.
	UsageScalar

	// UsagePosition requires 2 or 3 channels.
	UsagePosition

	// UsageNormal requires exactly 3 channels.
	UsageNormal

	// UsageTangent requires exactly 3 channels.
	UsageTangent

	// UsageBitangent requires exactly 3 channels.
	UsageBitangent

	// UsageColor requires 1 to 4 channels.
	UsageColor

	// UsageUV requires exactly 2 channels.
	UsageUV

	// UsageVertexIndex is a single-channel integer attribute indexing a
	// mesh vertex.
	UsageVertexIndex

	// UsageFacetIndex is a single-channel integer attribute indexing a
	// mesh facet.
	UsageFacetIndex

	// UsageCornerIndex is a single-channel integer attribute indexing a
	// mesh corner.
	UsageCornerIndex

	// UsageEdgeIndex is a single-channel integer attribute indexing a
	// mesh edge.
	UsageEdgeIndex
)

// String returns a string representation of the Usage.
func (u Usage) String() string {
	switch u {
	case UsageVector:
		return "Vector"
	case UsageScalar:
		return "Scalar"
	case UsagePosition:
		return "Position"
	case UsageNormal:
		return "Normal"
	case UsageTangent:
		return "Tangent"
	case UsageBitangent:
		return "Bitangent"
	case UsageColor:
		return "Color"
	case UsageUV:
		return "UV"
	case UsageVertexIndex:
		return "VertexIndex"
	case UsageFacetIndex:
		return "FacetIndex"
	case UsageCornerIndex:
		return "CornerIndex"
	case UsageEdgeIndex:
		return "EdgeIndex"
	default:
		return fmt.Sprintf("Unknown(%d)", int(u))
	}
}

// requiresIntegerKind reports whether the usage only makes sense for
// integer value types.
func (u Usage) requiresIntegerKind() bool {
	switch u {
	case UsageVertexIndex, UsageFacetIndex, UsageCornerIndex, UsageEdgeIndex:
		return true
	default:
		return false
	}
}

// validChannels reports whether numChannels is compatible with the usage.
func (u Usage) validChannels(numChannels int) bool {
	switch u {
	case UsageVector:
		return numChannels >= 1
	case UsageScalar, UsageVertexIndex, UsageFacetIndex, UsageCornerIndex, UsageEdgeIndex:
		return numChannels == 1
	case UsagePosition:
		return numChannels == 2 || numChannels == 3
	case UsageNormal, UsageTangent, UsageBitangent:
		return numChannels == 3
	case UsageColor:
		return numChannels >= 1 && numChannels <= 4
	case UsageUV:
		return numChannels == 2
	default:
		return false
	}
}

// ValueKind is the runtime tag identifying the concrete value type of a
// type-erased attribute.
type ValueKind int

// Supported value kinds.
const (
	KindInt8 ValueKind = iota
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
)

// String returns a string representation of the ValueKind.
func (k ValueKind) String() string {
	switch k {
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUint8:
		return "uint8"
	case KindUint16:
		return "uint16"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// IsInteger reports whether the kind is an integer type.
func (k ValueKind) IsInteger() bool {
	return k != KindFloat32 && k != KindFloat64
}

// Value constrains the numeric types an attribute can store.
type Value interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64
}

// IndexValue constrains the integer types an indexed attribute can use
// for its index buffer.
type IndexValue interface {
	uint32 | uint64
}

// KindOf returns the ValueKind tag for the value type V.
func KindOf[V Value]() ValueKind {
	var v V
	switch any(v).(type) {
	case int8:
		return KindInt8
	case int16:
		return KindInt16
	case int32:
		return KindInt32
	case int64:
		return KindInt64
	case uint8:
		return KindUint8
	case uint16:
		return KindUint16
	case uint32:
		return KindUint32
	case uint64:
		return KindUint64
	case float32:
		return KindFloat32
	default:
		return KindFloat64
	}
}
