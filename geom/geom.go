package geom

import (
	"math"
	"unsafe"
)

// Scalar is the floating-point type used for coordinates.
type Scalar interface {
	~float32 | ~float64
}

// Eps returns the machine epsilon of S, the gap between 1 and the next
// representable value.
func Eps[S Scalar]() S {
	var s S
	if unsafe.Sizeof(s) == 4 {
		return S(0x1p-23)
	}
	return S(0x1p-52)
}

// Sqrt returns the square root of s in the scalar type S.
func Sqrt[S Scalar](s S) S {
	return S(math.Sqrt(float64(s)))
}

// Dot returns the dot product of a and b.
// Assumes len(a) == len(b) (caller's responsibility).
func Dot[S Scalar](a, b []S) S {
	var sum S
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// SquaredNorm returns the squared L2 norm of v.
func SquaredNorm[S Scalar](v []S) S {
	return Dot(v, v)
}

// SquaredDistance returns the squared L2 distance between a and b.
// Assumes len(a) == len(b).
func SquaredDistance[S Scalar](a, b []S) S {
	var sum S
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Sub stores a-b into dst and returns dst.
func Sub[S Scalar](dst, a, b []S) []S {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
	return dst
}

// Normalize scales v to unit length in place.
// Returns false if v has zero norm (v is left unchanged).
func Normalize[S Scalar](v []S) bool {
	n2 := SquaredNorm(v)
	if n2 == 0 {
		return false
	}
	inv := 1 / Sqrt(n2)
	for i := range v {
		v[i] *= inv
	}
	return true
}

// Cross3 stores the 3D cross product of a and b into dst and returns dst.
// All slices must have length 3.
func Cross3[S Scalar](dst, a, b []S) []S {
	x := a[1]*b[2] - a[2]*b[1]
	y := a[2]*b[0] - a[0]*b[2]
	z := a[0]*b[1] - a[1]*b[0]
	dst[0], dst[1], dst[2] = x, y, z
	return dst
}

// TriangleArea3 returns the area of the 3D triangle (v0, v1, v2).
func TriangleArea3[S Scalar](v0, v1, v2 []S) S {
	var e0, e1, n [3]S
	Sub(e0[:], v1, v0)
	Sub(e1[:], v2, v0)
	Cross3(n[:], e0[:], e1[:])
	return Sqrt(SquaredNorm(n[:])) / 2
}

// TriangleSignedArea2 returns the signed area of the 2D triangle (v0, v1, v2).
// Positive for counter-clockwise winding.
func TriangleSignedArea2[S Scalar](v0, v1, v2 []S) S {
	return ((v1[0]-v0[0])*(v2[1]-v0[1]) - (v2[0]-v0[0])*(v1[1]-v0[1])) / 2
}
