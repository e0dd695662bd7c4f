package meshgo

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshgo/attribute"
)

func TestComputeFacetNormal(t *testing.T) {
	t.Run("FlatSquare", func(t *testing.T) {
		m := newSquare(t)
		id, err := ComputeFacetNormal(m)
		require.NoError(t, err)

		name, err := m.AttributeName(id)
		require.NoError(t, err)
		assert.Equal(t, AttributeNameFacetNormal, name)

		normals, err := AttributeOf[float64](m, AttributeNameFacetNormal)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0, 1, 0, 0, 1}, normals.GetAll())
	})

	t.Run("Degenerate", func(t *testing.T) {
		m, err := NewSurfaceMesh[float64, uint32](3)
		require.NoError(t, err)
		require.NoError(t, m.AddVertices([]float64{0, 0, 0, 1, 1, 1, 2, 2, 2}))
		_, err = m.AddTriangle(0, 1, 2) // collinear
		require.NoError(t, err)

		_, err = ComputeFacetNormal(m)
		require.NoError(t, err)

		normals, err := AttributeOf[float64](m, AttributeNameFacetNormal)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0, 0}, normals.GetAll())
	})

	t.Run("Needs3D", func(t *testing.T) {
		m, err := NewSurfaceMesh[float64, uint32](2)
		require.NoError(t, err)
		_, err = ComputeFacetNormal(m)
		var de *DimensionError
		require.ErrorAs(t, err, &de)
	})

	t.Run("Recompute", func(t *testing.T) {
		m := newSquare(t)
		id1, err := ComputeFacetNormal(m)
		require.NoError(t, err)
		id2, err := ComputeFacetNormal(m)
		require.NoError(t, err)
		assert.Equal(t, id1, id2)
	})
}

func TestComputeVertexNormal(t *testing.T) {
	t.Run("FlatSquare", func(t *testing.T) {
		m := newSquare(t)
		_, err := ComputeVertexNormal(m)
		require.NoError(t, err)

		normals, err := AttributeOf[float64](m, AttributeNameVertexNormal)
		require.NoError(t, err)
		all := normals.GetAll()
		for v := 0; v < 4; v++ {
			assert.InDelta(t, 0.0, all[v*3], 1e-12)
			assert.InDelta(t, 0.0, all[v*3+1], 1e-12)
			assert.InDelta(t, 1.0, all[v*3+2], 1e-12)
		}
	})

	t.Run("AngleWeighted", func(t *testing.T) {
		// A fan of two coplanar triangles plus one orthogonal triangle
		// around vertex 0. With angle weighting, the two coplanar
		// triangles together count by their total angle, not by their
		// facet count.
		m, err := NewSurfaceMesh[float64, uint32](3)
		require.NoError(t, err)
		require.NoError(t, m.AddVertices([]float64{
			0, 0, 0, // 0: apex
			1, 0, 0, // 1
			1, 1, 0, // 2
			0, 1, 0, // 3
			0, 0, 1, // 4
			-1, 0, 1, // 5
		}))
		// Two triangles spanning a 90 degree fan in the z = 0 plane.
		require.NoError(t, m.AddTriangles([]uint32{0, 1, 2, 0, 2, 3}))
		// One triangle in the x = 0 plane with a 90 degree corner at 0.
		require.NoError(t, m.AddTriangles([]uint32{0, 3, 4}))

		_, err = ComputeVertexNormal(m)
		require.NoError(t, err)

		normals, err := AttributeOf[float64](m, AttributeNameVertexNormal)
		require.NoError(t, err)
		n := normals.GetAll()[:3]

		// Both fans contribute a total angle of pi/2 at vertex 0, one
		// along +z and one along +x, so the normal bisects them.
		inv := 1 / math.Sqrt(2)
		assert.InDelta(t, inv, n[0], 1e-12)
		assert.InDelta(t, 0.0, n[1], 1e-12)
		assert.InDelta(t, inv, n[2], 1e-12)
	})
}

func TestComputeArea(t *testing.T) {
	t.Run("FacetArea3D", func(t *testing.T) {
		m := newSquare(t)
		_, err := ComputeFacetArea(m)
		require.NoError(t, err)

		areas, err := AttributeOf[float64](m, AttributeNameFacetArea)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, areas.GetAll()[0], 1e-12)
		assert.InDelta(t, 0.5, areas.GetAll()[1], 1e-12)

		assert.InDelta(t, 1.0, ComputeMeshArea(m), 1e-12)
	})

	t.Run("FacetArea2D", func(t *testing.T) {
		m, err := NewSurfaceMesh[float64, uint32](2)
		require.NoError(t, err)
		require.NoError(t, m.AddVertices([]float64{0, 0, 2, 0, 0, 2}))
		// Clockwise winding still yields an unsigned area.
		_, err = m.AddTriangle(0, 2, 1)
		require.NoError(t, err)

		_, err = ComputeFacetArea(m)
		require.NoError(t, err)
		areas, err := AttributeOf[float64](m, AttributeNameFacetArea)
		require.NoError(t, err)
		assert.InDelta(t, 2.0, areas.GetAll()[0], 1e-12)
	})
}

func TestComputeComponents(t *testing.T) {
	// Facets 0 and 1 share an edge, facet 2 shares only vertex 2 with
	// facet 1, facet 3 is isolated.
	m, err := NewSurfaceMesh[float64, uint32](3)
	require.NoError(t, err)
	require.NoError(t, m.AddVertices([]float64{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
		2, 2, 0,
		3, 2, 0,
		10, 10, 0,
		11, 10, 0,
		10, 11, 0,
	}))
	require.NoError(t, m.AddTriangles([]uint32{
		0, 1, 2,
		0, 2, 3,
		2, 4, 5,
		6, 7, 8,
	}))

	t.Run("VertexConnectivity", func(t *testing.T) {
		n, id, err := ComputeComponents(m)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		name, err := m.AttributeName(id)
		require.NoError(t, err)
		assert.Equal(t, AttributeNameComponentID, name)

		ids, err := AttributeOf[uint32](m, AttributeNameComponentID)
		require.NoError(t, err)
		got := ids.GetAll()
		assert.Equal(t, got[0], got[1])
		assert.Equal(t, got[1], got[2])
		assert.NotEqual(t, got[0], got[3])
	})

	t.Run("EdgeConnectivity", func(t *testing.T) {
		n, _, err := ComputeComponents(m, func(o *ComponentOptions) {
			o.Connectivity = ConnectivityEdge
		})
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		ids, err := AttributeOf[uint32](m, AttributeNameComponentID)
		require.NoError(t, err)
		got := ids.GetAll()
		assert.Equal(t, got[0], got[1])
		assert.NotEqual(t, got[1], got[2])
		assert.NotEqual(t, got[2], got[3])
	})

	t.Run("BlockerEdge", func(t *testing.T) {
		blockers := NewSelection(EdgeKey[uint32](0, 2))
		n, _, err := ComputeComponents(m, func(o *ComponentOptions) {
			o.Connectivity = ConnectivityEdge
			o.Blockers = blockers
		})
		require.NoError(t, err)
		assert.Equal(t, 4, n)
	})
}

func TestRemoveDuplicateVertices(t *testing.T) {
	t.Run("WeldsSoup", func(t *testing.T) {
		// Two triangles as an indexed soup: the shared edge vertices
		// appear twice.
		m, err := NewSurfaceMesh[float64, uint32](3)
		require.NoError(t, err)
		require.NoError(t, m.AddVertices([]float64{
			0, 0, 0, // 0
			1, 0, 0, // 1
			1, 1, 0, // 2
			0, 0, 0, // 3 dup of 0
			1, 1, 0, // 4 dup of 2
			0, 1, 0, // 5
		}))
		require.NoError(t, m.AddTriangles([]uint32{0, 1, 2, 3, 4, 5}))

		_, err = CreateAttribute[float64](m, "tagged", attribute.ElementVertex, attribute.UsageScalar, 1)
		require.NoError(t, err)
		tagged, err := AttributeOf[float64](m, "tagged")
		require.NoError(t, err)
		for v := 0; v < 6; v++ {
			require.NoError(t, tagged.Set(v, 0, float64(v)))
		}

		areaBefore := ComputeMeshArea(m)

		removed, err := RemoveDuplicateVertices(m)
		require.NoError(t, err)
		assert.Equal(t, 2, removed)
		assert.Equal(t, 4, m.NumVertices())
		assert.Equal(t, 2, m.NumFacets())

		// Geometry is unchanged by welding.
		assert.InDelta(t, areaBefore, ComputeMeshArea(m), 1e-12)

		// The first occurrence survives, attribute rows included.
		assert.Equal(t, []float64{0, 1, 2, 5}, tagged.GetAll())
		assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Facets())
		p, err := m.Position(3)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 1, 0}, p)
	})

	t.Run("NoDuplicates", func(t *testing.T) {
		m := newSquare(t)
		removed, err := RemoveDuplicateVertices(m)
		require.NoError(t, err)
		assert.Zero(t, removed)
		assert.Equal(t, 4, m.NumVertices())
	})

	t.Run("EmptyMesh", func(t *testing.T) {
		m, err := NewSurfaceMesh[float64, uint32](3)
		require.NoError(t, err)
		removed, err := RemoveDuplicateVertices(m)
		require.NoError(t, err)
		assert.Zero(t, removed)
	})
}

func TestTransferAttributes(t *testing.T) {
	src := newSquare(t)
	_, err := CreateAttribute[float64](src, "height", attribute.ElementVertex, attribute.UsageScalar, 1)
	require.NoError(t, err)
	height, err := AttributeOf[float64](src, "height")
	require.NoError(t, err)
	// height(x, y) = x, linear over the square so barycentric
	// interpolation reproduces it exactly.
	coords := src.Positions()
	for v := 0; v < src.NumVertices(); v++ {
		require.NoError(t, height.Set(v, 0, coords[v*3]))
	}

	t.Run("LinearField", func(t *testing.T) {
		dst, err := NewSurfaceMesh[float64, uint32](3)
		require.NoError(t, err)
		require.NoError(t, dst.AddVertices([]float64{
			0.25, 0.5, 1, // projects to (0.25, 0.5, 0)
			0.75, 0.25, -2, // projects to (0.75, 0.25, 0)
			0.5, 0.5, 0, // already on the surface
		}))

		err = TransferAttributes(context.Background(), src, dst, []string{"height"})
		require.NoError(t, err)

		got, err := AttributeOf[float64](dst, "height")
		require.NoError(t, err)
		assert.InDelta(t, 0.25, got.GetAll()[0], 1e-12)
		assert.InDelta(t, 0.75, got.GetAll()[1], 1e-12)
		assert.InDelta(t, 0.5, got.GetAll()[2], 1e-12)
	})

	t.Run("Float32Attribute", func(t *testing.T) {
		_, err := CreateAttribute[float32](src, "temp", attribute.ElementVertex, attribute.UsageScalar, 1,
			func(o *attribute.Options[float32]) { o.DefaultValue = 2 })
		require.NoError(t, err)

		dst, err := NewSurfaceMesh[float64, uint32](3)
		require.NoError(t, err)
		require.NoError(t, dst.AddVertices([]float64{0.5, 0.5, 3}))

		err = TransferAttributes(context.Background(), src, dst, []string{"temp"})
		require.NoError(t, err)

		got, err := AttributeOf[float32](dst, "temp")
		require.NoError(t, err)
		assert.InDelta(t, 2.0, float64(got.GetAll()[0]), 1e-6)
	})

	t.Run("IntegerAttributeRejected", func(t *testing.T) {
		_, err := CreateAttribute[uint32](src, "label", attribute.ElementVertex, attribute.UsageScalar, 1)
		require.NoError(t, err)

		dst, err := NewSurfaceMesh[float64, uint32](3)
		require.NoError(t, err)
		require.NoError(t, dst.AddVertices([]float64{0, 0, 1}))

		err = TransferAttributes(context.Background(), src, dst, []string{"label"})
		var uk *UnsupportedKindError
		require.ErrorAs(t, err, &uk)
	})

	t.Run("FacetAttributeRejected", func(t *testing.T) {
		_, err := CreateAttribute[float64](src, "facetval", attribute.ElementFacet, attribute.UsageScalar, 1)
		require.NoError(t, err)

		dst, err := NewSurfaceMesh[float64, uint32](3)
		require.NoError(t, err)
		require.NoError(t, dst.AddVertices([]float64{0, 0, 1}))

		err = TransferAttributes(context.Background(), src, dst, []string{"facetval"})
		var em *ElementMismatchError
		require.ErrorAs(t, err, &em)
	})

	t.Run("MissingAttribute", func(t *testing.T) {
		dst, err := NewSurfaceMesh[float64, uint32](3)
		require.NoError(t, err)
		require.NoError(t, dst.AddVertices([]float64{0, 0, 1}))

		err = TransferAttributes(context.Background(), src, dst, []string{"nope"})
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
	})
}
