// Package disk implements the file operations of typedisk on typed paths.
//
// A Disk sequences single host filesystem steps into hardened operations:
//
//   - Atomic writes: content goes to a temporary file next to the target
//     (<name>-<random>-tmp) and is renamed over it, so readers see the old
//     or the new content and never a partial write.
//   - Collision-safe unique naming: CreateUnique claims "a.txt",
//     "a (1).txt", ... with exclusive creation and never overwrites.
//   - Two recursive delete policies: DeleteDir retries on lock contention,
//     DeleteDirReadOnly clears read-only attributes depth first.
//   - Attribute-preserving copy of files and directory trees.
//   - Lazy directory enumeration as iter.Seq2 sequences.
//
// Queries are existence tolerant: enumerating a missing directory yields
// nothing. Mutations are not. Handing a directory path to a file operation
// (or the reverse) fails with NOT_A_FILE or NOT_A_DIRECTORY before anything
// is touched.
//
// A Disk is safe for concurrent use. It takes no locks on the filesystem;
// safety comes from exclusive create, retry on conflict and rename.
package disk
