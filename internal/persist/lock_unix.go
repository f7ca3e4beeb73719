//go:build unix

package persist

import (
	"os"
	"syscall"
)

// flockFile takes a non-blocking exclusive flock on the snapshot lock file.
func flockFile(f *os.File) error {
	return syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
}

// unlockFile releases the flock.
func unlockFile(f *os.File) error {
	return syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
}
