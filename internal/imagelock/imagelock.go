// Package imagelock provides the advisory exclusive lock spec.md §5
// requires: a second process targeting the same image must fail fast at
// acquisition rather than block or silently interleave writes.
package imagelock

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"os8util/internal/oserrs"
)

// Acquire takes a non-blocking exclusive flock on f, held for the
// process's lifetime. The returned release function drops it; call it
// when the image is closed. Acquire fails immediately (rather than
// waiting) if another process already holds the lock.
func Acquire(f *os.File) (release func() error, err error) {
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		return nil, errors.Wrapf(oserrs.IoError, "image %s is locked by another process: %v", f.Name(), err)
	}
	return func() error {
		return unix.Flock(int(f.Fd()), unix.LOCK_UN)
	}, nil
}
