package meshgo

import (
	"context"
	"math"

	"github.com/hupe1980/meshgo/attribute"
	"github.com/hupe1980/meshgo/geom"
)

// ensureComputed returns the typed attribute under name, creating it
// when absent. Existing attributes are reused in place so repeated
// Compute* calls do not churn the registry.
func ensureComputed[V attribute.Value, S Scalar, I Index](m *SurfaceMesh[S, I], name string, element attribute.Element, usage attribute.Usage, numChannels int) (*attribute.Attribute[V], AttributeID, error) {
	if m.HasAttribute(name) {
		attr, err := AttributeOf[V](m, name)
		if err != nil {
			return nil, 0, err
		}
		id, err := m.AttributeID(name)
		if err != nil {
			return nil, 0, err
		}
		return attr, id, nil
	}

	id, err := CreateAttribute[V](m, name, element, usage, numChannels)
	if err != nil {
		return nil, 0, err
	}
	attr, err := AttributeOf[V](m, name)
	if err != nil {
		return nil, 0, err
	}
	return attr, id, nil
}

// ComputeFacetNormal computes per-facet unit normals into the
// "@facet_normal" attribute, creating it if needed. Normals follow the
// right-hand rule over the corner order; degenerate facets get a zero
// normal. Requires a 3D mesh.
func ComputeFacetNormal[S Scalar, I Index](m *SurfaceMesh[S, I]) (AttributeID, error) {
	if m.dim != 3 {
		return 0, &DimensionError{Got: m.dim, Want: 3}
	}

	attr, id, err := ensureComputed[S](m, AttributeNameFacetNormal, attribute.ElementFacet, attribute.UsageNormal, 3)
	if err != nil {
		return 0, err
	}

	normals, err := attr.RefAll()
	if err != nil {
		return 0, err
	}

	coords := m.Positions()
	facets := m.Facets()

	var e0, e1 [3]S
	for f := 0; f < m.numFacets; f++ {
		v0 := coords[int(facets[3*f])*3 : int(facets[3*f])*3+3]
		v1 := coords[int(facets[3*f+1])*3 : int(facets[3*f+1])*3+3]
		v2 := coords[int(facets[3*f+2])*3 : int(facets[3*f+2])*3+3]

		n := normals[3*f : 3*f+3]
		geom.Cross3(n, geom.Sub(e0[:], v1, v0), geom.Sub(e1[:], v2, v0))
		if !geom.Normalize(n) {
			n[0], n[1], n[2] = 0, 0, 0
		}
	}

	m.logger.LogCompute(context.Background(), "facet_normal", m.numFacets, nil)

	return id, nil
}

// ComputeVertexNormal computes per-vertex unit normals into the
// "@vertex_normal" attribute, creating it if needed. Each incident
// facet normal is weighted by the corner angle at the vertex, so long
// thin fans do not dominate. Facet normals are computed first when
// absent. Requires a 3D mesh.
func ComputeVertexNormal[S Scalar, I Index](m *SurfaceMesh[S, I]) (AttributeID, error) {
	if m.dim != 3 {
		return 0, &DimensionError{Got: m.dim, Want: 3}
	}

	if _, err := ComputeFacetNormal(m); err != nil {
		return 0, err
	}
	facetNormals, err := AttributeOf[S](m, AttributeNameFacetNormal)
	if err != nil {
		return 0, err
	}
	fn := facetNormals.GetAll()

	attr, id, err := ensureComputed[S](m, AttributeNameVertexNormal, attribute.ElementVertex, attribute.UsageNormal, 3)
	if err != nil {
		return 0, err
	}

	normals, err := attr.RefAll()
	if err != nil {
		return 0, err
	}
	for i := range normals {
		normals[i] = 0
	}

	coords := m.Positions()
	facets := m.Facets()

	var e0, e1, cr [3]S
	for f := 0; f < m.numFacets; f++ {
		for c := 0; c < 3; c++ {
			v := int(facets[3*f+c])
			prev := int(facets[3*f+(c+2)%3])
			next := int(facets[3*f+(c+1)%3])

			p := coords[v*3 : v*3+3]
			geom.Sub(e0[:], coords[next*3:next*3+3], p)
			geom.Sub(e1[:], coords[prev*3:prev*3+3], p)

			// Corner angle via atan2 so near-degenerate corners stay
			// numerically stable.
			geom.Cross3(cr[:], e0[:], e1[:])
			angle := S(math.Atan2(
				float64(geom.Sqrt(geom.SquaredNorm(cr[:]))),
				float64(geom.Dot(e0[:], e1[:]))))

			for d := 0; d < 3; d++ {
				normals[v*3+d] += angle * fn[3*f+d]
			}
		}
	}

	for v := 0; v < m.numVertices; v++ {
		n := normals[v*3 : v*3+3]
		if !geom.Normalize(n) {
			n[0], n[1], n[2] = 0, 0, 0
		}
	}

	m.logger.LogCompute(context.Background(), "vertex_normal", m.numVertices, nil)

	return id, nil
}
