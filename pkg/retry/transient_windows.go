//go:build windows

package retry

import "syscall"

// ERROR_SHARING_VIOLATION and ERROR_LOCK_VIOLATION.
var hostTransientErrnos = []syscall.Errno{32, 33}
