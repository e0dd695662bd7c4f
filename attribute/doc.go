// Package attribute implements typed, policy-gated value arrays for mesh
// elements.
//
// An Attribute is a dense row-major array with one row per mesh element
// (vertex, facet, edge, or corner) and a fixed number of channels per
// row. Attributes either own their storage or wrap caller-provided
// buffers; growth, write, and copy policies decide whether operations on
// wrapped buffers adjust the view, copy to internal storage, or fail.
//
// IndexedAttribute adds a level of indirection for per-corner data with
// shared values, such as UVs or split normals.
//
// The Base interface erases the value type so containers can hold
// attributes of mixed types; Cast and CastIndexed recover the typed
// form.
package attribute
