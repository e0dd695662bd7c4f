// Package meshgo provides an in-memory triangle mesh with a typed,
// policy-gated attribute system and spatial queries.
//
// A SurfaceMesh stores positions and connectivity as reserved
// attributes alongside arbitrary user data attached to vertices,
// facets, or corners. Attributes can wrap caller-owned buffers with
// explicit growth, write, and copy policies (see the attribute
// package), so meshes can be built zero-copy over external data.
//
// On top of the container, the package offers per-facet and per-vertex
// normals, areas, connected components, duplicate-vertex welding,
// box selections, and closest-point attribute transfer between meshes
// backed by an AABB tree (see the bvh package).
//
// Meshes can be serialized with the snapshot package and stored through
// the blobstore package.
package meshgo
