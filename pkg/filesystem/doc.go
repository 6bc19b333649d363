// Package filesystem is the host filesystem boundary for typedisk.
//
// The FS interface covers the single-step operations pkg/disk sequences:
// stat, enumerate, create, exclusive create, delete, rename with overwrite,
// copy, attributes and timestamps. Implementations are built on afero:
//
//   - NewOS() for the real filesystem
//   - NewMemory() for fast, isolated tests
//   - NewAfero(fs) for any other afero.Fs, such as a fault injecting wrapper
//
// Errors are returned as the host produced them (*fs.PathError and friends)
// so callers can classify them with errors.Is and errors.As.
package filesystem
