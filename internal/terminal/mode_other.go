//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package terminal

import "time"

func Acquire(fd int, mode Mode, policy RestorePolicy) (Restore, error) {
	return nil, ErrUnsupported
}

func waitReadable(fd int, timeout time.Duration) (bool, error) {
	return false, ErrUnsupported
}

func readFd(fd int, p []byte) (int, error) {
	return 0, ErrUnsupported
}
