// Package queue provides value-based binary heaps keyed by squared
// distance, used by the spatial-query traversals. Storage is a plain
// slice of items (no pointer indirection) so pushes and pops stay
// allocation-free once capacity is reached.
package queue

// Scalar mirrors geom.Scalar; duplicated locally to keep this internal
// package dependency-free.
type Scalar interface {
	~float32 | ~float64
}

// Item is an element reference with its squared-distance priority.
type Item[S Scalar] struct {
	Ref      int64 // element or node index
	Distance S
}

// Heap is a binary min- or max-heap of Items.
type Heap[S Scalar] struct {
	isMax bool
	items []Item[S]
}

// NewMin initializes a min-heap with the given capacity.
func NewMin[S Scalar](capacity int) *Heap[S] {
	return &Heap[S]{isMax: false, items: make([]Item[S], 0, capacity)}
}

// NewMax initializes a max-heap with the given capacity.
func NewMax[S Scalar](capacity int) *Heap[S] {
	return &Heap[S]{isMax: true, items: make([]Item[S], 0, capacity)}
}

// Len returns the number of items in the heap.
func (h *Heap[S]) Len() int { return len(h.items) }

// Top returns the top element of the heap without removing it.
func (h *Heap[S]) Top() (Item[S], bool) {
	if len(h.items) == 0 {
		return Item[S]{}, false
	}
	return h.items[0], true
}

// Push inserts an item while maintaining the heap invariant.
func (h *Heap[S]) Push(item Item[S]) {
	h.items = append(h.items, item)
	h.siftUp(len(h.items) - 1)
}

// Pop removes and returns the top element while maintaining the heap
// invariant.
func (h *Heap[S]) Pop() (Item[S], bool) {
	n := len(h.items)
	if n == 0 {
		return Item[S]{}, false
	}
	root := h.items[0]
	last := h.items[n-1]
	h.items[n-1] = Item[S]{}
	h.items = h.items[:n-1]
	if n-1 > 0 {
		h.items[0] = last
		h.siftDown(0)
	}
	return root, true
}

func (h *Heap[S]) less(i, j int) bool {
	if h.isMax {
		return h.items[i].Distance > h.items[j].Distance
	}
	return h.items[i].Distance < h.items[j].Distance
}

func (h *Heap[S]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !h.less(i, p) {
			return
		}
		h.items[i], h.items[p] = h.items[p], h.items[i]
		i = p
	}
}

func (h *Heap[S]) siftDown(i int) {
	n := len(h.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		if r := l + 1; r < n && h.less(r, l) {
			best = r
		}
		if !h.less(best, i) {
			return
		}
		h.items[i], h.items[best] = h.items[best], h.items[i]
		i = best
	}
}
