//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package termin

import (
	"errors"
	"time"
)

var errUnsupported = errors.New("termin: terminal input is not supported on this platform")

// MakeRaw is not supported on this platform.
func MakeRaw(fd int) (restore func() error, err error) {
	return nil, errUnsupported
}

// Size is not supported on this platform.
func Size(fd int) (cols, rows int, err error) {
	return 0, 0, errUnsupported
}

func waitReadable(fd int, timeout time.Duration) (bool, error) {
	return false, errUnsupported
}

func readFd(fd int, buf []byte) (int, error) {
	return 0, errUnsupported
}
