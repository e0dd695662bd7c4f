package meshgo

import (
	"strings"

	"github.com/hupe1980/meshgo/attribute"
	"github.com/hupe1980/meshgo/geom"
)

// Scalar constrains the coordinate type of a mesh. The terms are exact,
// not approximate, so positions can live in the attribute system like
// any other value type.
type Scalar interface {
	float32 | float64
}

// Index constrains the vertex index type of a mesh. Exact terms for the
// same reason as Scalar: the corner buffer is a reserved attribute.
type Index interface {
	uint32 | uint64
}

// Reserved attribute names. Reserved names start with '$' and are
// managed by the mesh itself; user code cannot create or delete them
// without attribute.DeleteForce.
const (
	// AttributeNamePosition is the per-vertex position attribute.
	AttributeNamePosition = "$position"

	// AttributeNameCornerToVertex maps each facet corner to its vertex.
	AttributeNameCornerToVertex = "$corner_to_vertex"
)

// Names of attributes produced by the Compute* functions.
const (
	AttributeNameFacetNormal  = "@facet_normal"
	AttributeNameVertexNormal = "@vertex_normal"
	AttributeNameFacetArea    = "@facet_area"
	AttributeNameComponentID  = "@component_id"
)

// IsReservedName reports whether name belongs to the mesh-managed
// namespace.
func IsReservedName(name string) bool {
	return strings.HasPrefix(name, "$")
}

// SurfaceMesh is a triangle mesh with named attributes attached to its
// vertices, facets, and corners. Positions and facet connectivity are
// themselves attributes under reserved names, so they resize and copy
// through the same machinery as user data.
//
// A SurfaceMesh is not safe for concurrent mutation. Concurrent reads
// are fine once mutation has stopped.
type SurfaceMesh[S Scalar, I Index] struct {
	dim         int
	numVertices int
	numFacets   int
	logger      *Logger

	entries []attrEntry // indexed by AttributeID; deleted slots are nil
	byName  map[string]AttributeID

	positions      *attribute.Attribute[S]
	cornerToVertex *attribute.Attribute[I]
}

type attrEntry struct {
	name string
	attr attribute.Base
}

// AttributeID identifies an attribute within one mesh. IDs are stable
// across deletions of other attributes.
type AttributeID int

// NewSurfaceMesh creates an empty mesh of the given ambient dimension
// (2 or 3).
func NewSurfaceMesh[S Scalar, I Index](dim int, optFns ...Option) (*SurfaceMesh[S, I], error) {
	opts := applyOptions(optFns)

	if dim < 2 || dim > 3 {
		return nil, &DimensionError{Got: dim, Want: 3}
	}

	m := &SurfaceMesh[S, I]{
		dim:    dim,
		logger: opts.logger,
		byName: make(map[string]AttributeID),
	}

	positions, err := attribute.New[S](attribute.ElementVertex, attribute.UsagePosition, dim, 0)
	if err != nil {
		return nil, err
	}
	m.positions = positions
	m.register(AttributeNamePosition, positions)

	cornerToVertex, err := attribute.New[I](attribute.ElementCorner, attribute.UsageVertexIndex, 1, 0)
	if err != nil {
		return nil, err
	}
	m.cornerToVertex = cornerToVertex
	m.register(AttributeNameCornerToVertex, cornerToVertex)

	return m, nil
}

// register adds an attribute under name and returns its id. The caller
// has already checked name availability.
func (m *SurfaceMesh[S, I]) register(name string, attr attribute.Base) AttributeID {
	id := AttributeID(len(m.entries))
	m.entries = append(m.entries, attrEntry{name: name, attr: attr})
	m.byName[name] = id
	return id
}

// Dim returns the ambient dimension.
func (m *SurfaceMesh[S, I]) Dim() int { return m.dim }

// NumVertices returns the number of vertices.
func (m *SurfaceMesh[S, I]) NumVertices() int { return m.numVertices }

// NumFacets returns the number of triangles.
func (m *SurfaceMesh[S, I]) NumFacets() int { return m.numFacets }

// NumCorners returns the number of facet corners (3 per triangle).
func (m *SurfaceMesh[S, I]) NumCorners() int { return 3 * m.numFacets }

// elementCount returns the current row count for the given element type.
func (m *SurfaceMesh[S, I]) elementCount(e attribute.Element) int {
	switch e {
	case attribute.ElementVertex:
		return m.numVertices
	case attribute.ElementFacet:
		return m.numFacets
	case attribute.ElementCorner, attribute.ElementIndexed:
		return m.NumCorners()
	default:
		return 0
	}
}

// resizeElement resizes every attribute attached to the given element
// type to n rows.
func (m *SurfaceMesh[S, I]) resizeElement(e attribute.Element, n int) error {
	for _, entry := range m.entries {
		if entry.attr == nil {
			continue
		}
		el := entry.attr.Element()
		if el == e || (e == attribute.ElementCorner && el == attribute.ElementIndexed) {
			if err := entry.attr.Resize(n); err != nil {
				return err
			}
		}
	}
	return nil
}

// AddVertex appends one vertex at position p and returns its index.
// Every per-vertex attribute grows by one row filled with its default
// value.
func (m *SurfaceMesh[S, I]) AddVertex(p []S) (I, error) {
	if len(p) != m.dim {
		return 0, &DimensionError{Got: len(p), Want: m.dim}
	}

	if err := m.resizeElement(attribute.ElementVertex, m.numVertices+1); err != nil {
		return 0, err
	}
	m.numVertices++

	row, err := m.positions.RefRow(m.numVertices - 1)
	if err != nil {
		return 0, err
	}
	copy(row, p)

	return I(m.numVertices - 1), nil
}

// AddVertices appends vertices from a flat row-major coordinate array.
func (m *SurfaceMesh[S, I]) AddVertices(coords []S) error {
	if len(coords)%m.dim != 0 {
		return &DimensionError{Got: len(coords), Want: m.dim}
	}

	added := len(coords) / m.dim
	first := m.numVertices
	if err := m.resizeElement(attribute.ElementVertex, m.numVertices+added); err != nil {
		return err
	}
	m.numVertices += added

	all, err := m.positions.RefAll()
	if err != nil {
		return err
	}
	copy(all[first*m.dim:], coords)

	return nil
}

// AddTriangle appends one triangle and returns its facet index. Every
// per-facet and per-corner attribute grows accordingly.
func (m *SurfaceMesh[S, I]) AddTriangle(v0, v1, v2 I) (int, error) {
	for _, v := range []I{v0, v1, v2} {
		if int(v) >= m.numVertices {
			return 0, &OutOfRangeError{What: "vertex", Index: int(v), Size: m.numVertices}
		}
	}

	if err := m.resizeElement(attribute.ElementFacet, m.numFacets+1); err != nil {
		return 0, err
	}
	if err := m.resizeElement(attribute.ElementCorner, 3*(m.numFacets+1)); err != nil {
		return 0, err
	}
	m.numFacets++

	corners, err := m.cornerToVertex.RefAll()
	if err != nil {
		return 0, err
	}
	base := 3 * (m.numFacets - 1)
	corners[base] = v0
	corners[base+1] = v1
	corners[base+2] = v2

	return m.numFacets - 1, nil
}

// AddTriangles appends triangles from a flat index array (three vertex
// indices per triangle).
func (m *SurfaceMesh[S, I]) AddTriangles(indices []I) error {
	if len(indices)%3 != 0 {
		return &OutOfRangeError{What: "corner", Index: len(indices), Size: len(indices) / 3 * 3}
	}
	for _, v := range indices {
		if int(v) >= m.numVertices {
			return &OutOfRangeError{What: "vertex", Index: int(v), Size: m.numVertices}
		}
	}

	added := len(indices) / 3
	first := m.numFacets
	if err := m.resizeElement(attribute.ElementFacet, m.numFacets+added); err != nil {
		return err
	}
	if err := m.resizeElement(attribute.ElementCorner, 3*(m.numFacets+added)); err != nil {
		return err
	}
	m.numFacets += added

	corners, err := m.cornerToVertex.RefAll()
	if err != nil {
		return err
	}
	copy(corners[3*first:], indices)

	return nil
}

// Position returns the position of vertex v as a view into the position
// attribute. Callers must treat the result as read-only.
func (m *SurfaceMesh[S, I]) Position(v int) ([]S, error) {
	if v < 0 || v >= m.numVertices {
		return nil, &OutOfRangeError{What: "vertex", Index: v, Size: m.numVertices}
	}
	return m.positions.GetRow(v)
}

// Positions returns all vertex positions as a flat row-major view.
// Callers must treat the result as read-only.
func (m *SurfaceMesh[S, I]) Positions() []S {
	return m.positions.GetAll()
}

// Facets returns the corner-to-vertex mapping as a flat view, three
// vertex indices per triangle. Callers must treat the result as
// read-only.
func (m *SurfaceMesh[S, I]) Facets() []I {
	return m.cornerToVertex.GetAll()
}

// FacetVertices returns the three vertex indices of facet f as a view.
// Callers must treat the result as read-only.
func (m *SurfaceMesh[S, I]) FacetVertices(f int) ([]I, error) {
	if f < 0 || f >= m.numFacets {
		return nil, &OutOfRangeError{What: "facet", Index: f, Size: m.numFacets}
	}
	all := m.cornerToVertex.GetAll()
	return all[3*f : 3*f+3 : 3*f+3], nil
}

// BoundingBox returns the axis-aligned bounds of all vertices. The box
// is empty when the mesh has no vertices.
func (m *SurfaceMesh[S, I]) BoundingBox() geom.Box[S] {
	box := geom.NewBox[S](m.dim)
	coords := m.Positions()
	for v := 0; v < m.numVertices; v++ {
		box.Extend(coords[v*m.dim : (v+1)*m.dim])
	}
	return box
}

// Clone returns a deep copy of the mesh. Attributes wrapping external
// buffers follow their copy policies, so a clone can fail or keep
// aliasing depending on how those attributes were created.
func (m *SurfaceMesh[S, I]) Clone() (*SurfaceMesh[S, I], error) {
	c := &SurfaceMesh[S, I]{
		dim:         m.dim,
		numVertices: m.numVertices,
		numFacets:   m.numFacets,
		logger:      m.logger,
		byName:      make(map[string]AttributeID, len(m.byName)),
		entries:     make([]attrEntry, len(m.entries)),
	}

	for id, entry := range m.entries {
		if entry.attr == nil {
			continue
		}
		cloned, err := entry.attr.CloneBase()
		if err != nil {
			return nil, err
		}
		c.entries[id] = attrEntry{name: entry.name, attr: cloned}
		c.byName[entry.name] = AttributeID(id)
	}

	positions, err := attribute.Cast[S](c.entries[m.byName[AttributeNamePosition]].attr)
	if err != nil {
		return nil, err
	}
	c.positions = positions

	cornerToVertex, err := attribute.Cast[I](c.entries[m.byName[AttributeNameCornerToVertex]].attr)
	if err != nil {
		return nil, err
	}
	c.cornerToVertex = cornerToVertex

	return c, nil
}
