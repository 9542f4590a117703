//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// Acquire applies mode to the terminal behind fd and returns a func that
// restores the previous attributes and file status flags.
func Acquire(fd int, mode Mode, policy RestorePolicy) (Restore, error) {
	saved, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, fmt.Errorf("read terminal attributes: %w", err)
	}
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		return nil, fmt.Errorf("read file status flags: %w", err)
	}

	if mode&CBreak != 0 {
		t := *saved
		t.Lflag &^= unix.ICANON | unix.ECHO
		t.Cc[unix.VMIN] = 1
		t.Cc[unix.VTIME] = 0
		if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &t); err != nil {
			return nil, fmt.Errorf("enter cbreak mode: %w", err)
		}
	}
	if mode&NonBlocking != 0 {
		if _, err := unix.FcntlInt(uintptr(fd), unix.F_SETFL, flags|unix.O_NONBLOCK); err != nil {
			_ = unix.IoctlSetTermios(fd, ioctlSetTermios, saved)
			return nil, fmt.Errorf("enter non-blocking mode: %w", err)
		}
	}

	req := uint(ioctlSetTermios)
	switch policy {
	case RestoreDrain:
		req = ioctlSetTermiosDrain
	case RestoreFlush:
		req = ioctlSetTermiosFlush
	}

	var (
		once       sync.Once
		restoreErr error
	)
	return func() error {
		once.Do(func() {
			var flagErr error
			if mode&NonBlocking != 0 {
				_, flagErr = unix.FcntlInt(uintptr(fd), unix.F_SETFL, flags)
			}
			restoreErr = errors.Join(unix.IoctlSetTermios(fd, req, saved), flagErr)
		})
		return restoreErr
	}, nil
}
