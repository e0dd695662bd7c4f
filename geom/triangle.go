package geom

// PointSegmentSquaredDistance computes the point on the segment (v0, v1)
// closest to p. The closest point is written into closest (which must have
// the same length as p). Returns the squared distance and the barycentric
// coordinates (t0, t1) of the closest point, with closest = t0*v0 + t1*v1.
//
// Intermediate arithmetic is carried out in float64 regardless of S to
// keep the clamping decisions stable across scalar precisions.
func PointSegmentSquaredDistance[S Scalar](p, v0, v1, closest []S) (sqDist, t0, t1 S) {
	dim := len(p)

	var l2, dt float64
	for d := 0; d < dim; d++ {
		e := float64(v1[d]) - float64(v0[d])
		l2 += e * e
		dt += (float64(p[d]) - float64(v0[d])) * e
	}

	var t float64
	if l2 == 0 {
		// Degenerate segment, closest point is v0.
		t = 0
	} else {
		t = dt / l2
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}

	var sum float64
	for d := 0; d < dim; d++ {
		c := float64(v0[d]) + t*(float64(v1[d])-float64(v0[d]))
		closest[d] = S(c)
		diff := float64(p[d]) - c
		sum += diff * diff
	}
	return S(sum), S(1 - t), S(t)
}

// PointTriangleSquaredDistance computes the point in the triangle
// (v0, v1, v2) closest to p. The closest point is written into closest
// (same length as p). Returns the squared distance and the barycentric
// coordinates (l0, l1, l2) of the closest point relative to v0, v1, v2.
//
// This is the classic Geometric Tools region decomposition: the closest
// point is found by locating the minimum of the squared-distance quadratic
// over the (s, t) parameter domain, clamping to the appropriate edge or
// vertex region. Degenerate (near-zero area) triangles fall back to the
// nearest of the three edges.
func PointTriangleSquaredDistance[S Scalar](p, v0, v1, v2, closest []S) (sqDist, l0, l1, l2 S) {
	dim := len(p)

	var a00, a01, a11, b0, b1, c float64
	for d := 0; d < dim; d++ {
		diff := float64(v0[d]) - float64(p[d])
		e0 := float64(v1[d]) - float64(v0[d])
		e1 := float64(v2[d]) - float64(v0[d])
		a00 += e0 * e0
		a01 += e0 * e1
		a11 += e1 * e1
		b0 += diff * e0
		b1 += diff * e1
		c += diff * diff
	}
	det := a00*a11 - a01*a01
	if det < 0 {
		det = -det
	}

	if det < 1e-30 {
		// Degenerate triangle: closest of the three edges.
		var buf [3]S
		edgeClosest := buf[:dim]
		best, e0, e1 := PointSegmentSquaredDistance(p, v0, v1, closest)
		sqDist, l0, l1, l2 = best, e0, e1, 0
		if d2, f0, f1 := PointSegmentSquaredDistance(p, v0, v2, edgeClosest); d2 < sqDist {
			sqDist, l0, l1, l2 = d2, f0, 0, f1
			copy(closest, edgeClosest)
		}
		if d2, f0, f1 := PointSegmentSquaredDistance(p, v1, v2, edgeClosest); d2 < sqDist {
			sqDist, l0, l1, l2 = d2, 0, f0, f1
			copy(closest, edgeClosest)
		}
		return sqDist, l0, l1, l2
	}

	s := a01*b1 - a11*b0
	t := a01*b0 - a00*b1
	var d2 float64

	if s+t <= det {
		if s < 0 {
			if t < 0 { // region 4
				if b0 < 0 {
					t = 0
					if -b0 >= a00 {
						s = 1
						d2 = a00 + 2*b0 + c
					} else {
						s = -b0 / a00
						d2 = b0*s + c
					}
				} else {
					s = 0
					if b1 >= 0 {
						t = 0
						d2 = c
					} else if -b1 >= a11 {
						t = 1
						d2 = a11 + 2*b1 + c
					} else {
						t = -b1 / a11
						d2 = b1*t + c
					}
				}
			} else { // region 3
				s = 0
				if b1 >= 0 {
					t = 0
					d2 = c
				} else if -b1 >= a11 {
					t = 1
					d2 = a11 + 2*b1 + c
				} else {
					t = -b1 / a11
					d2 = b1*t + c
				}
			}
		} else if t < 0 { // region 5
			t = 0
			if b0 >= 0 {
				s = 0
				d2 = c
			} else if -b0 >= a00 {
				s = 1
				d2 = a00 + 2*b0 + c
			} else {
				s = -b0 / a00
				d2 = b0*s + c
			}
		} else { // region 0: interior minimum
			invDet := 1 / det
			s *= invDet
			t *= invDet
			d2 = s*(a00*s+a01*t+2*b0) + t*(a01*s+a11*t+2*b1) + c
		}
	} else {
		var tmp0, tmp1, numer, denom float64

		if s < 0 { // region 2
			tmp0 = a01 + b0
			tmp1 = a11 + b1
			if tmp1 > tmp0 {
				numer = tmp1 - tmp0
				denom = a00 - 2*a01 + a11
				if numer >= denom {
					s = 1
					t = 0
					d2 = a00 + 2*b0 + c
				} else {
					s = numer / denom
					t = 1 - s
					d2 = s*(a00*s+a01*t+2*b0) + t*(a01*s+a11*t+2*b1) + c
				}
			} else {
				s = 0
				if tmp1 <= 0 {
					t = 1
					d2 = a11 + 2*b1 + c
				} else if b1 >= 0 {
					t = 0
					d2 = c
				} else {
					t = -b1 / a11
					d2 = b1*t + c
				}
			}
		} else if t < 0 { // region 6
			tmp0 = a01 + b1
			tmp1 = a00 + b0
			if tmp1 > tmp0 {
				numer = tmp1 - tmp0
				denom = a00 - 2*a01 + a11
				if numer >= denom {
					t = 1
					s = 0
					d2 = a11 + 2*b1 + c
				} else {
					t = numer / denom
					s = 1 - t
					d2 = s*(a00*s+a01*t+2*b0) + t*(a01*s+a11*t+2*b1) + c
				}
			} else {
				t = 0
				if tmp1 <= 0 {
					s = 1
					d2 = a00 + 2*b0 + c
				} else if b0 >= 0 {
					s = 0
					d2 = c
				} else {
					s = -b0 / a00
					d2 = b0*s + c
				}
			}
		} else { // region 1
			numer = a11 + b1 - a01 - b0
			if numer <= 0 {
				s = 0
				t = 1
				d2 = a11 + 2*b1 + c
			} else {
				denom = a00 - 2*a01 + a11
				if numer >= denom {
					s = 1
					t = 0
					d2 = a00 + 2*b0 + c
				} else {
					s = numer / denom
					t = 1 - s
					d2 = s*(a00*s+a01*t+2*b0) + t*(a01*s+a11*t+2*b1) + c
				}
			}
		}
	}

	// Guard against numerical round-off producing a tiny negative value.
	if d2 < 0 {
		d2 = 0
	}

	for d := 0; d < dim; d++ {
		e0 := float64(v1[d]) - float64(v0[d])
		e1 := float64(v2[d]) - float64(v0[d])
		closest[d] = S(float64(v0[d]) + s*e0 + t*e1)
	}
	return S(d2), S(1 - s - t), S(s), S(t)
}
