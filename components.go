package meshgo

import (
	"context"

	"github.com/hupe1980/meshgo/attribute"
	"github.com/hupe1980/meshgo/ds"
)

// Connectivity selects what makes two facets neighbors when computing
// connected components.
type Connectivity int

const (
	// ConnectivityVertex joins facets sharing at least one vertex.
	ConnectivityVertex Connectivity = iota

	// ConnectivityEdge joins facets sharing an edge.
	ConnectivityEdge
)

// ComponentOptions contains configuration for ComputeComponents.
type ComponentOptions struct {
	// Connectivity selects vertex- or edge-based adjacency.
	Connectivity Connectivity

	// Blockers holds encoded edge keys (see EdgeKey) across which
	// connectivity does not propagate. Only honored with
	// ConnectivityEdge.
	Blockers *Selection
}

// ComputeComponents labels each facet with the id of its connected
// component in the "@component_id" attribute, creating it if needed,
// and returns the number of components. Component ids are in [0, n)
// and deterministic for a given mesh and option set.
func ComputeComponents[S Scalar, I Index](m *SurfaceMesh[S, I], optFns ...func(o *ComponentOptions)) (int, AttributeID, error) {
	opts := ComponentOptions{
		Connectivity: ConnectivityVertex,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	d := ds.New[I](m.numFacets)
	facets := m.Facets()

	switch opts.Connectivity {
	case ConnectivityEdge:
		if err := checkEdgeKeyRange(m.numVertices); err != nil {
			return 0, 0, err
		}
		first := make(map[uint64]I, m.NumCorners())
		for f := 0; f < m.numFacets; f++ {
			for c := 0; c < 3; c++ {
				a := facets[3*f+c]
				b := facets[3*f+(c+1)%3]
				key := EdgeKey(a, b)
				if opts.Blockers != nil && opts.Blockers.Contains(key) {
					continue
				}
				if g, ok := first[key]; ok {
					d.Merge(I(f), g)
				} else {
					first[key] = I(f)
				}
			}
		}
	default:
		first := make([]int, m.numVertices)
		for i := range first {
			first[i] = -1
		}
		for f := 0; f < m.numFacets; f++ {
			for _, v := range facets[3*f : 3*f+3] {
				if g := first[v]; g >= 0 {
					d.Merge(I(f), I(g))
				} else {
					first[v] = f
				}
			}
		}
	}

	ids, numComponents := d.ExtractDisjointSetIndices(nil)

	attr, id, err := ensureComputed[I](m, AttributeNameComponentID, attribute.ElementFacet, attribute.UsageScalar, 1)
	if err != nil {
		return 0, 0, err
	}
	out, err := attr.RefAll()
	if err != nil {
		return 0, 0, err
	}
	copy(out, ids)

	m.logger.LogCompute(context.Background(), "components", m.numFacets, nil)

	return numComponents, id, nil
}
