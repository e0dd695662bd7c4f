package bvh

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/hupe1980/meshgo/geom"
	"github.com/hupe1980/meshgo/internal/queue"
)

// ErrInvalidK is returned when a k-nearest query asks for fewer than one
// result.
var ErrInvalidK = errors.New("k must be positive")

// ErrInvalidRadius is returned when a radius query uses a negative
// radius.
var ErrInvalidRadius = errors.New("radius must be non-negative")

// ErrEmptyTree is returned by queries on a tree built over zero
// triangles.
var ErrEmptyTree = errors.New("tree indexes no triangles")

// DimensionError indicates a query point whose dimension does not match
// the tree.
type DimensionError struct {
	Got  int
	Want int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("query point has dimension %d, tree has %d", e.Got, e.Want)
}

// ClosestPoint is the result of a proximity query: the id of a triangle,
// the closest position on it, and the squared distance to the query.
type ClosestPoint[S geom.Scalar, I Index] struct {
	TriangleID      I
	Point           []S
	SquaredDistance S
}

// ClosestPoint returns the triangle closest to q. Ties on squared
// distance resolve to the lowest triangle id, so results are
// deterministic for a given mesh. Querying an empty tree returns
// ErrEmptyTree.
func (t *TriangleAABBTree[S, I]) ClosestPoint(q []S) (ClosestPoint[S, I], error) {
	if len(q) != t.dim {
		return ClosestPoint[S, I]{}, &DimensionError{Got: len(q), Want: t.dim}
	}
	cp, ok := t.closest(q)
	if !ok {
		return ClosestPoint[S, I]{}, ErrEmptyTree
	}
	return cp, nil
}

// pruneBound inflates a squared distance by a few ulps before it is
// used to discard subtrees. Box exterior distances and exact triangle
// distances come from different expression trees; when the closest
// point sits on a box corner they can disagree in the last bits, and a
// strict comparison against the raw incumbent would prune the true
// nearest leaf.
func pruneBound[S geom.Scalar](d S) S {
	return d + d*(8*geom.Eps[S]())
}

// closest runs the traversal without input validation.
func (t *TriangleAABBTree[S, I]) closest(q []S) (ClosestPoint[S, I], bool) {
	if t.root < 0 {
		return ClosestPoint[S, I]{}, false
	}

	best := S(math.Inf(1))
	bestID := int32(-1)
	bestPoint := make([]S, t.dim)
	closest := make([]S, t.dim)

	stack := make([]int32, 0, 64)
	stack = append(stack, t.root)

	for len(stack) > 0 {
		ni := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[ni]

		// Equal distances must not be pruned, or an equidistant
		// lower-id triangle in this subtree could be lost.
		if n.box.SquaredExteriorDistance(q) > pruneBound(best) {
			continue
		}

		if n.elem >= 0 {
			v0, v1, v2 := t.triangle(n.elem)
			d, _, _, _ := geom.PointTriangleSquaredDistance(q, v0, v1, v2, closest)
			if d < best || (d == best && n.elem < bestID) {
				best = d
				bestID = n.elem
				copy(bestPoint, closest)
			}
			continue
		}

		// Descend into the nearer child first so the far child is more
		// likely to be pruned when popped.
		dl := t.nodes[n.left].box.SquaredExteriorDistance(q)
		dr := t.nodes[n.right].box.SquaredExteriorDistance(q)
		if dl <= dr {
			stack = append(stack, n.right, n.left)
		} else {
			stack = append(stack, n.left, n.right)
		}
	}

	return ClosestPoint[S, I]{
		TriangleID:      I(bestID),
		Point:           bestPoint,
		SquaredDistance: best,
	}, true
}

// KNearest returns up to k triangles closest to q, sorted by ascending
// squared distance with ties broken by ascending triangle id.
func (t *TriangleAABBTree[S, I]) KNearest(q []S, k int) ([]ClosestPoint[S, I], error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if len(q) != t.dim {
		return nil, &DimensionError{Got: len(q), Want: t.dim}
	}
	if t.root < 0 {
		return nil, nil
	}

	// Bounded max-heap of the best k candidates seen so far; the top is
	// the current worst, which drives pruning.
	h := queue.NewMax[S](k)
	worst := func() S {
		if h.Len() < k {
			return S(math.Inf(1))
		}
		top, _ := h.Top()
		return top.Distance
	}

	closest := make([]S, t.dim)
	stack := make([]int32, 0, 64)
	stack = append(stack, t.root)

	for len(stack) > 0 {
		ni := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[ni]

		if n.box.SquaredExteriorDistance(q) > pruneBound(worst()) {
			continue
		}

		if n.elem >= 0 {
			v0, v1, v2 := t.triangle(n.elem)
			d, _, _, _ := geom.PointTriangleSquaredDistance(q, v0, v1, v2, closest)
			if h.Len() < k {
				h.Push(queue.Item[S]{Ref: int64(n.elem), Distance: d})
			} else if d < worst() {
				h.Pop()
				h.Push(queue.Item[S]{Ref: int64(n.elem), Distance: d})
			}
			continue
		}

		dl := t.nodes[n.left].box.SquaredExteriorDistance(q)
		dr := t.nodes[n.right].box.SquaredExteriorDistance(q)
		if dl <= dr {
			stack = append(stack, n.right, n.left)
		} else {
			stack = append(stack, n.left, n.right)
		}
	}

	results := make([]ClosestPoint[S, I], 0, h.Len())
	for h.Len() > 0 {
		item, _ := h.Pop()
		f := int32(item.Ref)
		v0, v1, v2 := t.triangle(f)
		point := make([]S, t.dim)
		d, _, _, _ := geom.PointTriangleSquaredDistance(q, v0, v1, v2, point)
		results = append(results, ClosestPoint[S, I]{
			TriangleID:      I(f),
			Point:           point,
			SquaredDistance: d,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].SquaredDistance != results[j].SquaredDistance {
			return results[i].SquaredDistance < results[j].SquaredDistance
		}
		return results[i].TriangleID < results[j].TriangleID
	})

	return results, nil
}

// ForEachInRadius calls fn for every triangle whose closest point to q
// lies within radius (inclusive). Iteration order is unspecified;
// returning false from fn stops early. Each result carries its own
// Point slice, so callbacks may retain them.
func (t *TriangleAABBTree[S, I]) ForEachInRadius(q []S, radius S, fn func(cp ClosestPoint[S, I]) bool) error {
	if radius < 0 {
		return ErrInvalidRadius
	}
	if len(q) != t.dim {
		return &DimensionError{Got: len(q), Want: t.dim}
	}
	if t.root < 0 {
		return nil
	}

	sqRadius := radius * radius
	closest := make([]S, t.dim)
	stack := make([]int32, 0, 64)
	stack = append(stack, t.root)

	for len(stack) > 0 {
		ni := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[ni]

		if n.box.SquaredExteriorDistance(q) > pruneBound(sqRadius) {
			continue
		}

		if n.elem >= 0 {
			v0, v1, v2 := t.triangle(n.elem)
			d, _, _, _ := geom.PointTriangleSquaredDistance(q, v0, v1, v2, closest)
			if d <= sqRadius {
				point := make([]S, t.dim)
				copy(point, closest)
				if !fn(ClosestPoint[S, I]{TriangleID: I(n.elem), Point: point, SquaredDistance: d}) {
					return nil
				}
			}
			continue
		}

		stack = append(stack, n.left, n.right)
	}

	return nil
}
