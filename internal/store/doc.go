// Package store provides file-based persistence for Crypt-Talk's core
// data, serialising records as JSON on disk. All methods are
// concurrency-safe via internal locking; writes go through a temp file
// and rename.
//
// The package includes stores for:
//   - The sealed long-term identity (IdentityFileStore)
//   - Per-conversation ratchet state with optimistic concurrency
//     (SessionFileStore)
package store
