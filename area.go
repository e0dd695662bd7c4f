package meshgo

import (
	"context"

	"github.com/hupe1980/meshgo/attribute"
	"github.com/hupe1980/meshgo/geom"
)

// facetArea returns the unsigned area of facet f.
func (m *SurfaceMesh[S, I]) facetArea(f int) S {
	coords := m.Positions()
	facets := m.Facets()
	v0 := coords[int(facets[3*f])*m.dim : int(facets[3*f])*m.dim+m.dim]
	v1 := coords[int(facets[3*f+1])*m.dim : int(facets[3*f+1])*m.dim+m.dim]
	v2 := coords[int(facets[3*f+2])*m.dim : int(facets[3*f+2])*m.dim+m.dim]

	if m.dim == 2 {
		a := geom.TriangleSignedArea2(v0, v1, v2)
		if a < 0 {
			a = -a
		}
		return a
	}
	return geom.TriangleArea3(v0, v1, v2)
}

// ComputeFacetArea computes per-facet unsigned areas into the
// "@facet_area" attribute, creating it if needed.
func ComputeFacetArea[S Scalar, I Index](m *SurfaceMesh[S, I]) (AttributeID, error) {
	attr, id, err := ensureComputed[S](m, AttributeNameFacetArea, attribute.ElementFacet, attribute.UsageScalar, 1)
	if err != nil {
		return 0, err
	}

	areas, err := attr.RefAll()
	if err != nil {
		return 0, err
	}
	for f := 0; f < m.numFacets; f++ {
		areas[f] = m.facetArea(f)
	}

	m.logger.LogCompute(context.Background(), "facet_area", m.numFacets, nil)

	return id, nil
}

// ComputeMeshArea returns the total surface area of the mesh.
func ComputeMeshArea[S Scalar, I Index](m *SurfaceMesh[S, I]) S {
	var total S
	for f := 0; f < m.numFacets; f++ {
		total += m.facetArea(f)
	}
	return total
}
