// Package ds provides a disjoint-sets (union-find) structure over a
// fixed universe of indices, used by the clustering-based mesh
// algorithms (connected components, vertex welding).
package ds

import "fmt"

// Index constrains the integer type used to label set elements.
type Index interface {
	~int | ~int32 | ~int64 | ~uint32 | ~uint64
}

// BoundsError indicates an element index outside the current universe.
type BoundsError struct {
	Index int
	Size  int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Size)
}

// DisjointSets tracks a dynamic partition of [0, n) into disjoint
// components. Not safe for concurrent mutation: callers running merges
// in parallel must partition work so no two goroutines touch overlapping
// indices.
type DisjointSets[I Index] struct {
	parent []I
}

// New creates a DisjointSets of n singleton components.
func New[I Index](n int) *DisjointSets[I] {
	d := &DisjointSets[I]{}
	d.Init(n)
	return d
}

// Init resets the structure to n singleton components {0}, {1}, ... {n-1}.
func (d *DisjointSets[I]) Init(n int) {
	if cap(d.parent) >= n {
		d.parent = d.parent[:n]
	} else {
		d.parent = make([]I, n)
	}
	for i := range d.parent {
		d.parent[i] = I(i)
	}
}

// Size returns the number of elements in the universe.
func (d *DisjointSets[I]) Size() int { return len(d.parent) }

// Find returns the canonical root of the component containing i,
// compressing the path as a side effect.
func (d *DisjointSets[I]) Find(i I) (I, error) {
	if int(i) < 0 || int(i) >= len(d.parent) {
		return 0, &BoundsError{Index: int(i), Size: len(d.parent)}
	}
	return d.find(i), nil
}

// find applies path halving: every element on the walk to the root is
// re-pointed at its grandparent.
func (d *DisjointSets[I]) find(i I) I {
	for d.parent[i] != i {
		d.parent[i] = d.parent[d.parent[i]]
		i = d.parent[i]
	}
	return i
}

// Merge unions the components containing i and j and returns the
// surviving root: the root of i becomes the parent of the root of j.
// Callers must not rely on which root survives.
func (d *DisjointSets[I]) Merge(i, j I) I {
	rootI := d.find(i)
	rootJ := d.find(j)
	d.parent[rootJ] = rootI
	return rootI
}

// ExtractDisjointSetIndices assigns every element the canonical id of its
// component, in [0, k) where k is the number of components. Roots are
// numbered in increasing element order, so the output is deterministic
// for a given merge history. The result is written into out (grown if
// needed); the possibly reallocated slice and k are returned.
//
// Repeated calls without intervening merges produce identical output;
// the only internal mutation is further path compression.
func (d *DisjointSets[I]) ExtractDisjointSetIndices(out []I) ([]I, int) {
	n := len(d.parent)
	if cap(out) >= n {
		out = out[:n]
	} else {
		out = make([]I, n)
	}

	// Assign each root a unique id, in element order.
	var counter I
	for i := 0; i < n; i++ {
		if d.find(I(i)) == I(i) {
			out[i] = counter
			counter++
		}
	}

	// Point every member at its root's id.
	for i := 0; i < n; i++ {
		out[i] = out[d.find(I(i))]
	}
	return out, int(counter)
}
