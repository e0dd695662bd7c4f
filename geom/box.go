package geom

import "math"

// Box is an axis-aligned bounding box of dimension len(Min).
// A freshly created Box is empty: Min at +inf, Max at -inf, so that
// extending it with any point yields that point's degenerate box.
type Box[S Scalar] struct {
	Min []S
	Max []S
}

// NewBox creates an empty box of the given dimension.
func NewBox[S Scalar](dim int) Box[S] {
	b := Box[S]{
		Min: make([]S, dim),
		Max: make([]S, dim),
	}
	for d := 0; d < dim; d++ {
		b.Min[d] = S(math.Inf(1))
		b.Max[d] = S(math.Inf(-1))
	}
	return b
}

// Dim returns the dimension of the box.
func (b Box[S]) Dim() int { return len(b.Min) }

// Extend grows the box to contain the point p.
func (b Box[S]) Extend(p []S) {
	for d := range b.Min {
		if p[d] < b.Min[d] {
			b.Min[d] = p[d]
		}
		if p[d] > b.Max[d] {
			b.Max[d] = p[d]
		}
	}
}

// ExtendBox grows the box to contain the box o.
func (b Box[S]) ExtendBox(o Box[S]) {
	for d := range b.Min {
		if o.Min[d] < b.Min[d] {
			b.Min[d] = o.Min[d]
		}
		if o.Max[d] > b.Max[d] {
			b.Max[d] = o.Max[d]
		}
	}
}

// Center stores the box center into dst and returns dst.
func (b Box[S]) Center(dst []S) []S {
	for d := range b.Min {
		dst[d] = (b.Min[d] + b.Max[d]) / 2
	}
	return dst
}

// Contains reports whether p lies inside or on the boundary of the box.
func (b Box[S]) Contains(p []S) bool {
	for d := range b.Min {
		if p[d] < b.Min[d] || p[d] > b.Max[d] {
			return false
		}
	}
	return true
}

// Intersects reports whether the two boxes overlap (boundaries included).
func (b Box[S]) Intersects(o Box[S]) bool {
	for d := range b.Min {
		if b.Max[d] < o.Min[d] || o.Max[d] < b.Min[d] {
			return false
		}
	}
	return true
}

// LongestAxis returns the axis along which the box has greatest extent.
func (b Box[S]) LongestAxis() int {
	axis := 0
	best := b.Max[0] - b.Min[0]
	for d := 1; d < len(b.Min); d++ {
		if ext := b.Max[d] - b.Min[d]; ext > best {
			best = ext
			axis = d
		}
	}
	return axis
}

// SquaredExteriorDistance returns the squared distance from p to the box,
// zero if p is inside the box.
func (b Box[S]) SquaredExteriorDistance(p []S) S {
	var sum S
	for d := range b.Min {
		if p[d] < b.Min[d] {
			diff := b.Min[d] - p[d]
			sum += diff * diff
		} else if p[d] > b.Max[d] {
			diff := p[d] - b.Max[d]
			sum += diff * diff
		}
	}
	return sum
}
