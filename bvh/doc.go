// Package bvh implements an axis-aligned bounding box tree over mesh
// triangles for proximity queries.
//
// The tree is built once over a vertex and facet array and is immutable
// afterwards, so any number of goroutines may query it concurrently.
// Supported queries are single and batched closest point, k-nearest
// triangles, and iteration over all triangles within a radius. All
// distances are squared Euclidean distances.
package bvh
