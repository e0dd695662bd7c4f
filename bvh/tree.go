package bvh

import (
	"log/slog"
	"sort"

	"github.com/hupe1980/meshgo/geom"
)

// Index constrains the integer type used for vertex indices in the
// facet array.
type Index interface {
	~uint32 | ~uint64
}

// Options contains configuration for building a tree.
type Options struct {
	// Logger receives build statistics at debug level.
	Logger *slog.Logger
}

// DefaultOptions are the default build options.
var DefaultOptions = Options{
	Logger: slog.New(slog.DiscardHandler),
}

// TriangleAABBTree is an axis-aligned bounding box tree over the
// triangles of a mesh, supporting closest-point, k-nearest and radius
// queries. The tree holds views into the caller's vertex and facet
// arrays; it is immutable after construction and safe for concurrent
// queries, but the caller must not mutate the arrays while querying.
type TriangleAABBTree[S geom.Scalar, I Index] struct {
	vertices []S
	facets   []I
	dim      int
	nodes    []node[S]
	root     int32
}

// node is one tree entry. Leaves carry the triangle id in elem and have
// no children; internal nodes have elem == -1.
type node[S geom.Scalar] struct {
	box   geom.Box[S]
	left  int32
	right int32
	elem  int32
}

// ConfigurationError indicates invalid build input.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid tree input: " + e.Reason
}

// New builds a tree over the given triangle mesh. The vertices array
// holds numVertices*dim coordinates in row-major order, and facets holds
// three vertex indices per triangle. Construction is O(n log² n) from
// sorting triangle centroids at each split.
func New[S geom.Scalar, I Index](vertices []S, dim int, facets []I, optFns ...func(o *Options)) (*TriangleAABBTree[S, I], error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if dim < 2 || dim > 3 {
		return nil, &ConfigurationError{Reason: "dim must be 2 or 3"}
	}
	if len(vertices)%dim != 0 {
		return nil, &ConfigurationError{Reason: "vertex array length not divisible by dim"}
	}
	if len(facets)%3 != 0 {
		return nil, &ConfigurationError{Reason: "facet array length not divisible by 3"}
	}

	numVertices := len(vertices) / dim
	for _, vi := range facets {
		if int(vi) >= numVertices {
			return nil, &ConfigurationError{Reason: "facet references a vertex out of range"}
		}
	}

	t := &TriangleAABBTree[S, I]{
		vertices: vertices,
		facets:   facets,
		dim:      dim,
		root:     -1,
	}

	numTriangles := len(facets) / 3
	if numTriangles > 0 {
		// Triangle centroids drive the split ordering.
		centroids := make([]S, numTriangles*dim)
		for f := 0; f < numTriangles; f++ {
			for _, vi := range facets[3*f : 3*f+3] {
				v := vertices[int(vi)*dim : (int(vi)+1)*dim]
				for d := 0; d < dim; d++ {
					centroids[f*dim+d] += v[d]
				}
			}
			for d := 0; d < dim; d++ {
				centroids[f*dim+d] /= 3
			}
		}

		order := make([]int32, numTriangles)
		for i := range order {
			order[i] = int32(i)
		}

		t.nodes = make([]node[S], 0, 2*numTriangles-1)
		t.root = t.build(order, centroids)
	}

	opts.Logger.Debug("built triangle tree",
		slog.Int("triangles", numTriangles),
		slog.Int("nodes", len(t.nodes)))

	return t, nil
}

// build recursively constructs the subtree over the given triangles and
// returns its node index. The order slice is reordered in place.
func (t *TriangleAABBTree[S, I]) build(order []int32, centroids []S) int32 {
	if len(order) == 1 {
		return t.addNode(node[S]{
			box:   t.triangleBox(order[0]),
			left:  -1,
			right: -1,
			elem:  order[0],
		})
	}

	// Split at the median along the longest axis of the centroid bounds.
	cbox := geom.NewBox[S](t.dim)
	for _, f := range order {
		cbox.Extend(centroids[int(f)*t.dim : (int(f)+1)*t.dim])
	}
	axis := cbox.LongestAxis()

	sort.Slice(order, func(i, j int) bool {
		return centroids[int(order[i])*t.dim+axis] < centroids[int(order[j])*t.dim+axis]
	})
	mid := len(order) / 2

	left := t.build(order[:mid], centroids)
	right := t.build(order[mid:], centroids)

	box := geom.NewBox[S](t.dim)
	box.ExtendBox(t.nodes[left].box)
	box.ExtendBox(t.nodes[right].box)

	return t.addNode(node[S]{box: box, left: left, right: right, elem: -1})
}

func (t *TriangleAABBTree[S, I]) addNode(n node[S]) int32 {
	t.nodes = append(t.nodes, n)
	return int32(len(t.nodes) - 1)
}

// triangleBox returns the bounding box of triangle f.
func (t *TriangleAABBTree[S, I]) triangleBox(f int32) geom.Box[S] {
	box := geom.NewBox[S](t.dim)
	for _, vi := range t.facets[3*f : 3*f+3] {
		box.Extend(t.vertices[int(vi)*t.dim : (int(vi)+1)*t.dim])
	}
	return box
}

// triangle returns the three corner positions of triangle f.
func (t *TriangleAABBTree[S, I]) triangle(f int32) (v0, v1, v2 []S) {
	i0 := int(t.facets[3*f]) * t.dim
	i1 := int(t.facets[3*f+1]) * t.dim
	i2 := int(t.facets[3*f+2]) * t.dim
	return t.vertices[i0 : i0+t.dim], t.vertices[i1 : i1+t.dim], t.vertices[i2 : i2+t.dim]
}

// Dim returns the ambient dimension.
func (t *TriangleAABBTree[S, I]) Dim() int { return t.dim }

// NumTriangles returns the number of indexed triangles.
func (t *TriangleAABBTree[S, I]) NumTriangles() int { return len(t.facets) / 3 }

// Empty reports whether the tree indexes no triangles.
func (t *TriangleAABBTree[S, I]) Empty() bool { return t.root < 0 }
