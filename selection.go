package meshgo

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/meshgo/geom"
)

// Selection is a set of element ids (vertices, facets, or encoded
// edges), backed by a compressed bitmap so large contiguous selections
// stay cheap.
type Selection struct {
	bits *roaring64.Bitmap
}

// NewSelection creates a selection containing the given ids.
func NewSelection(ids ...uint64) *Selection {
	s := &Selection{bits: roaring64.New()}
	s.bits.AddMany(ids)
	return s
}

// Add inserts id into the selection.
func (s *Selection) Add(id uint64) { s.bits.Add(id) }

// Remove deletes id from the selection.
func (s *Selection) Remove(id uint64) { s.bits.Remove(id) }

// Contains reports whether id is selected.
func (s *Selection) Contains(id uint64) bool { return s.bits.Contains(id) }

// Count returns the number of selected ids.
func (s *Selection) Count() uint64 { return s.bits.GetCardinality() }

// Union adds every id in o to the selection.
func (s *Selection) Union(o *Selection) { s.bits.Or(o.bits) }

// Intersect keeps only ids also present in o.
func (s *Selection) Intersect(o *Selection) { s.bits.And(o.bits) }

// Subtract removes every id present in o.
func (s *Selection) Subtract(o *Selection) { s.bits.AndNot(o.bits) }

// Clone returns an independent copy of the selection.
func (s *Selection) Clone() *Selection {
	return &Selection{bits: s.bits.Clone()}
}

// ForEach calls fn for every selected id in ascending order; returning
// false stops the iteration.
func (s *Selection) ForEach(fn func(id uint64) bool) {
	it := s.bits.Iterator()
	for it.HasNext() {
		if !fn(it.Next()) {
			return
		}
	}
}

// ToSlice returns the selected ids in ascending order.
func (s *Selection) ToSlice() []uint64 {
	return s.bits.ToArray()
}

// EdgeKey encodes an undirected edge as a single id for use in
// selections, e.g. as component blockers. Vertex ids must fit in 32
// bits or keys collide; consumers reject larger meshes via
// checkEdgeKeyRange before building edge maps.
func EdgeKey[I Index](a, b I) uint64 {
	if b < a {
		a, b = b, a
	}
	return uint64(a)<<32 | uint64(b)&0xffffffff
}

// checkEdgeKeyRange reports whether every vertex id below numVertices
// can be encoded by EdgeKey without collisions.
func checkEdgeKeyRange(numVertices int) error {
	limit := uint64(1) << 32
	if uint64(numVertices) > limit {
		return &OutOfRangeError{What: "edge key vertex", Index: numVertices - 1, Size: int(limit)}
	}
	return nil
}

// SelectVerticesInBox returns the vertices whose position lies inside
// or on the boundary of box.
func SelectVerticesInBox[S Scalar, I Index](m *SurfaceMesh[S, I], box geom.Box[S]) *Selection {
	s := NewSelection()
	coords := m.Positions()
	for v := 0; v < m.NumVertices(); v++ {
		if box.Contains(coords[v*m.dim : (v+1)*m.dim]) {
			s.Add(uint64(v))
		}
	}
	return s
}

// SelectFacetsInBox returns the facets whose three vertices all lie
// inside or on the boundary of box.
func SelectFacetsInBox[S Scalar, I Index](m *SurfaceMesh[S, I], box geom.Box[S]) *Selection {
	s := NewSelection()
	coords := m.Positions()
	facets := m.Facets()
	for f := 0; f < m.NumFacets(); f++ {
		inside := true
		for _, v := range facets[3*f : 3*f+3] {
			if !box.Contains(coords[int(v)*m.dim : (int(v)+1)*m.dim]) {
				inside = false
				break
			}
		}
		if inside {
			s.Add(uint64(f))
		}
	}
	return s
}
