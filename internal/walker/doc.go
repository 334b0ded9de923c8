// Package walker enumerates candidate files under a scan root.
//
// The walker descends recursively, pruning a fixed set of noise directories
// (version control metadata, dependency caches, build output) plus any
// hidden directory. Pruned directories contribute zero files no matter how
// deep in the tree they appear. A `.gitignore` at the root can optionally be
// honored as well.
//
// Symbolic links are not followed, and link cycles are not otherwise guarded
// against; this is a known gap inherited from the scan contract.
package walker
