package termin

import (
	"errors"
	"io"
	"time"
)

// ErrClosed is returned by Poll after Close.
var ErrClosed = errors.New("termin: reader closed")

// Reader polls a raw-mode terminal file descriptor for input.
type Reader struct {
	fd      int
	buf     []byte
	partial []byte
	pending []Input
	closed  bool
}

// NewReader creates a reader for fd. The terminal should already be in raw
// mode with mouse reporting enabled.
func NewReader(fd int) *Reader {
	return &Reader{fd: fd, buf: make([]byte, 256)}
}

// Poll returns the next input, waiting up to timeout. A negative timeout
// blocks. ok is false on timeout.
func (r *Reader) Poll(timeout time.Duration) (in Input, ok bool, err error) {
	if r.closed {
		return Input{}, false, ErrClosed
	}
	if len(r.pending) > 0 {
		in = r.pending[0]
		r.pending = r.pending[1:]
		return in, true, nil
	}

	ready, err := waitReadable(r.fd, timeout)
	if err != nil || !ready {
		return Input{}, false, err
	}

	n, err := readFd(r.fd, r.buf)
	if err != nil {
		return Input{}, false, err
	}
	if n == 0 {
		return Input{}, false, io.EOF
	}

	data := r.buf[:n]
	if len(r.partial) > 0 {
		data = append(r.partial, data...)
		r.partial = nil
	}

	inputs, rest := parseInput(data)
	if len(rest) > 0 {
		r.partial = append([]byte(nil), rest...)
	}
	r.pending = inputs
	if len(r.pending) == 0 {
		return Input{}, false, nil
	}
	in = r.pending[0]
	r.pending = r.pending[1:]
	return in, true, nil
}

// Close marks the reader closed. The descriptor is owned by the caller.
func (r *Reader) Close() error {
	r.closed = true
	return nil
}

// EnableMouse writes the escape sequences that turn on any-motion tracking
// with SGR encoding.
func EnableMouse(w io.Writer) error {
	_, err := io.WriteString(w, "\x1b[?1003h\x1b[?1006h")
	return err
}

// DisableMouse reverses EnableMouse.
func DisableMouse(w io.Writer) error {
	_, err := io.WriteString(w, "\x1b[?1006l\x1b[?1003l")
	return err
}
