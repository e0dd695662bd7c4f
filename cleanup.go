package meshgo

import (
	"context"
	"encoding/binary"
	"math"

	"github.com/hupe1980/meshgo/attribute"
	"github.com/hupe1980/meshgo/ds"
)

// RemoveDuplicateVertices welds vertices with bit-identical positions
// and returns the number of vertices removed. Among duplicates the
// lowest vertex index survives; every per-vertex attribute is gathered
// onto the surviving vertices and facet corners are remapped. Facets
// whose corners collapse onto the same vertex are kept.
func RemoveDuplicateVertices[S Scalar, I Index](m *SurfaceMesh[S, I]) (int, error) {
	if m.numVertices == 0 {
		return 0, nil
	}

	coords := m.Positions()

	// Exact welding: positions are keyed by their raw bit patterns, so
	// -0 and +0 stay distinct and no tolerance is involved.
	d := ds.New[I](m.numVertices)
	first := make(map[string]I, m.numVertices)
	key := make([]byte, m.dim*8)
	for v := 0; v < m.numVertices; v++ {
		for dd := 0; dd < m.dim; dd++ {
			binary.LittleEndian.PutUint64(key[dd*8:], math.Float64bits(float64(coords[v*m.dim+dd])))
		}
		if g, ok := first[string(key)]; ok {
			d.Merge(g, I(v))
		} else {
			first[string(key)] = I(v)
		}
	}

	ids, kept := d.ExtractDisjointSetIndices(nil)
	removed := m.numVertices - kept
	if removed == 0 {
		return 0, nil
	}

	// The root of every component is its lowest vertex, so components
	// are numbered by surviving vertex order and rows can be gathered
	// by first occurrence.
	rows := make([]int, kept)
	seen := make([]bool, kept)
	for v := 0; v < m.numVertices; v++ {
		if id := ids[v]; !seen[id] {
			seen[id] = true
			rows[id] = v
		}
	}

	for _, entry := range m.entries {
		if entry.attr == nil || entry.attr.Element() != attribute.ElementVertex {
			continue
		}
		if err := entry.attr.Gather(rows); err != nil {
			return 0, err
		}
	}
	m.numVertices = kept

	corners, err := m.cornerToVertex.RefAll()
	if err != nil {
		return 0, err
	}
	for i, v := range corners {
		corners[i] = ids[v]
	}

	m.logger.LogCompute(context.Background(), "remove_duplicate_vertices", removed, nil)

	return removed, nil
}
