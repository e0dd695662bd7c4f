package meshgo

import (
	"context"

	"github.com/hupe1980/meshgo/attribute"
	"github.com/hupe1980/meshgo/bvh"
	"github.com/hupe1980/meshgo/geom"
)

// TransferOptions contains configuration for TransferAttributes.
type TransferOptions struct {
	// Concurrency is the number of worker goroutines used for the
	// closest-point queries. Zero means one per CPU.
	Concurrency int
}

// TransferAttributes interpolates the named per-vertex attributes of
// src onto the vertices of dst. Each dst vertex is projected onto the
// closest src triangle and values are blended with the barycentric
// coordinates of the projection. Only float-kind attributes can be
// transferred; target attributes are created on dst, reusing existing
// ones with the same name.
func TransferAttributes[S Scalar, I Index](ctx context.Context, src, dst *SurfaceMesh[S, I], names []string, optFns ...func(o *TransferOptions)) error {
	opts := TransferOptions{}

	for _, fn := range optFns {
		fn(&opts)
	}

	if src.dim != dst.dim {
		return &DimensionError{Got: dst.dim, Want: src.dim}
	}
	if len(names) == 0 || dst.numVertices == 0 {
		return nil
	}

	tree, err := bvh.New[S, I](src.Positions(), src.dim, src.Facets())
	if err != nil {
		return err
	}

	coords := dst.Positions()
	queries := make([][]S, dst.numVertices)
	for v := range queries {
		queries[v] = coords[v*dst.dim : (v+1)*dst.dim]
	}

	results, err := tree.BatchClosestPoint(ctx, queries, func(o *bvh.BatchOptions) {
		if opts.Concurrency > 0 {
			o.Concurrency = opts.Concurrency
		}
	})
	if err != nil {
		src.logger.LogTransfer(ctx, len(names), dst.numVertices, err)
		return err
	}

	// Barycentric weights of each projection, recomputed on the winning
	// triangle.
	srcCoords := src.Positions()
	srcFacets := src.Facets()
	tris := make([]int, dst.numVertices)
	weights := make([][3]S, dst.numVertices)
	tmp := make([]S, src.dim)
	for v, r := range results {
		f := int(r.TriangleID)
		v0, v1, v2 := triangleCorners(srcCoords, srcFacets, src.dim, f)
		_, l0, l1, l2 := geom.PointTriangleSquaredDistance(queries[v], v0, v1, v2, tmp)
		tris[v] = f
		weights[v] = [3]S{l0, l1, l2}
	}

	for _, name := range names {
		base, err := src.lookup(name)
		if err != nil {
			return err
		}
		if base.Element() != attribute.ElementVertex {
			return &ElementMismatchError{Name: name, Got: base.Element(), Want: attribute.ElementVertex}
		}

		switch base.ValueKind() {
		case attribute.KindFloat32:
			err = transferVertexAttribute[float32](src, dst, name, tris, weights)
		case attribute.KindFloat64:
			err = transferVertexAttribute[float64](src, dst, name, tris, weights)
		default:
			err = &UnsupportedKindError{Name: name, Op: "TransferAttributes"}
		}
		if err != nil {
			return err
		}
	}

	src.logger.LogTransfer(ctx, len(names), dst.numVertices, nil)

	return nil
}

// transferVertexAttribute blends one named attribute onto dst using the
// precomputed triangle and barycentric weight per dst vertex.
func transferVertexAttribute[V attribute.Value, S Scalar, I Index](src, dst *SurfaceMesh[S, I], name string, tris []int, weights [][3]S) error {
	srcAttr, err := AttributeOf[V](src, name)
	if err != nil {
		return err
	}

	dstAttr, _, err := ensureComputed[V](dst, name, attribute.ElementVertex, srcAttr.Usage(), srcAttr.NumChannels())
	if err != nil {
		return err
	}
	if dstAttr.NumChannels() != srcAttr.NumChannels() {
		return &DuplicateNameError{Name: name}
	}

	numChannels := srcAttr.NumChannels()
	srcValues := srcAttr.GetAll()
	dstValues, err := dstAttr.RefAll()
	if err != nil {
		return err
	}
	srcFacets := src.Facets()

	for v := range tris {
		c0 := int(srcFacets[3*tris[v]]) * numChannels
		c1 := int(srcFacets[3*tris[v]+1]) * numChannels
		c2 := int(srcFacets[3*tris[v]+2]) * numChannels
		w := weights[v]
		for ch := 0; ch < numChannels; ch++ {
			dstValues[v*numChannels+ch] = V(w[0])*srcValues[c0+ch] +
				V(w[1])*srcValues[c1+ch] +
				V(w[2])*srcValues[c2+ch]
		}
	}

	return nil
}

// triangleCorners returns the corner positions of facet f.
func triangleCorners[S Scalar, I Index](coords []S, facets []I, dim, f int) (v0, v1, v2 []S) {
	i0 := int(facets[3*f]) * dim
	i1 := int(facets[3*f+1]) * dim
	i2 := int(facets[3*f+2]) * dim
	return coords[i0 : i0+dim], coords[i1 : i1+dim], coords[i2 : i2+dim]
}
