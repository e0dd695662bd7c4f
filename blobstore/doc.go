// Package blobstore abstracts where serialized meshes live.
//
// A Store holds named immutable blobs. The in-tree implementations are
// MemoryStore (testing), LocalStore (filesystem, mmap reads, optional
// write throttling), and the minio and s3 subpackages for object
// storage. The snapshot package writes through this interface, so
// persistence targets are swappable.
package blobstore
