package retry

import (
	"errors"
	"os"
	"syscall"
)

// Classifier decides whether an error is worth retrying.
type Classifier interface {
	IsTransient(err error) bool
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(err error) bool

func (f ClassifierFunc) IsTransient(err error) bool { return f(err) }

// IOClassifier recognizes lock contention and momentary access denial
// during deletes.
type IOClassifier struct{}

var transientErrnos = append([]syscall.Errno{
	syscall.EBUSY,
	syscall.EACCES,
	syscall.EPERM,
	syscall.ETXTBSY,
	syscall.ENOTEMPTY,
	syscall.EAGAIN,
}, hostTransientErrnos...)

// IsTransient reports whether err is a contention error.
func (IOClassifier) IsTransient(err error) bool {
	return IsTransient(err)
}

// IsTransient reports whether err is a contention error. A missing path is
// never transient; deleters treat it as success instead.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return false
	}

	if errors.Is(err, os.ErrPermission) {
		return true
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		for _, e := range transientErrnos {
			if errno == e {
				return true
			}
		}
		return false
	}

	var temp interface{ Temporary() bool }
	if errors.As(err, &temp) {
		return temp.Temporary()
	}
	return false
}
