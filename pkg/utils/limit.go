package utils

import (
	"errors"
	"io"
)

// ErrTooLarge reports a reader holding more bytes than the caller allows.
var ErrTooLarge = errors.New("content exceeds size limit")

// ReadAllLimit reads at most max bytes from r. It reads one byte past the
// limit to tell "exactly max" apart from "more than max".
func ReadAllLimit(r io.Reader, max int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, ErrTooLarge
	}
	return b, nil
}
