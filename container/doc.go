// Package container implements a self-describing hierarchical binary
// container: a tree of named groups, each holding typed attributes and
// typed n-dimensional datasets.
//
// The on-disk encoding is deterministic (entries are sorted by name),
// integrity-checked with CRC32, and optionally compressed with zstd or LZ4.
// Files are written to a temporary path and atomically renamed, so readers
// never observe a partially written container.
package container
