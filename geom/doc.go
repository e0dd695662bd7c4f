// Package geom provides the low-level geometric kernels shared by the
// mesh processing algorithms: small-vector arithmetic over row slices,
// axis-aligned bounding boxes, and exact point/segment/triangle squared
// distances with barycentric output.
//
// Points are represented as plain []S slices of length Dim (2 or 3),
// matching the row-major storage of mesh attributes. All functions are
// pure and safe for concurrent use.
package geom
