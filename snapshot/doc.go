// Package snapshot serializes surface meshes into self-describing,
// versioned blobs.
//
// A snapshot records the codec and compression it was written with, so
// readers need no out-of-band configuration. Payloads can be stored
// raw, LZ4-compressed, or zstd-compressed, and every blob carries a
// CRC32 checksum that is verified on read. Save and Load move
// snapshots through a blobstore.Store, keeping the persistence target
// swappable between memory, local disk, MinIO and S3.
package snapshot
