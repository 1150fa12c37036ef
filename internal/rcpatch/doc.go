// Package rcpatch appends a marker-guarded block to a shell startup file.
//
// The startup file is treated as an append-only log keyed by a unique marker:
// Apply decides purely from the existing content whether the block is needed,
// and Patcher performs the read-check-append sequence through a FileSystem,
// optionally under an advisory file lock so concurrent installs append once.
// Watch keeps the block present while something else rewrites the file.
package rcpatch
