// Package testutil provides utilities for testing typedisk components.
//
// Key components:
//   - File helpers: create, read and inspect real files under t.TempDir()
//   - Typed path helpers: AbsDir / AbsFile built from test paths
//   - FaultFS: wraps a filesystem.FS and fails selected operations a set
//     number of times (lock contention, busy files)
//   - MockFS: a testify mock of filesystem.FS for exact call expectations
//
// Usage guidelines:
//   - Use t.TempDir() and the OS filesystem when attributes or timestamps
//     matter; the in-memory filesystem does not model them faithfully
//   - Use FaultFS around a real filesystem to exercise retry paths
//   - All test data should be defined inline, not in external files
package testutil
