//go:build !windows

package retry

import "syscall"

var hostTransientErrnos []syscall.Errno
