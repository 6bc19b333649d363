// Package paths provides strongly typed path values for typedisk.
//
// Path strings are easy to misuse: a relative path handed to code that
// expects an absolute one, a directory where a file was meant, or a string
// built with the wrong separator. This package encodes the path kind in the
// type so those mistakes fail at construction instead of at the disk.
//
//   - AbsFile and AbsDir hold a canonical absolute path. Construction fails
//     with INVALID_PATH unless the input already is in canonical form.
//   - RelFile and RelDir hold a normalized relative path that never starts
//     with a separator.
//   - Relativize and Resolve bridge the two: subtracting a root from an
//     absolute value, and joining a relative value back onto a root.
//
// Values never touch the disk. Existence, content and attributes are the
// business of pkg/disk.
//
// # Case sensitivity
//
// Every absolute value carries the CaseMode it was constructed with and uses
// it for Equal, StartsWith and Compare. HostCaseMode is computed once at
// startup; the ...Mode constructors take the mode explicitly so any
// behaviour can be exercised on any host.
//
// # Usage
//
//	root, err := paths.NewAbsDir("/tmp/src")
//	file, err := paths.NewAbsFile("/tmp/src/sub/a.txt")
//
//	rel, err := paths.Relativize(file, root)   // sub/a.txt
//	back := paths.Resolve(root, rel)          // /tmp/src/sub/a.txt
//	next := back.NextUnique()                 // /tmp/src/sub/a (1).txt
package paths
