package utils

import (
	"errors"
	"io"
)

var ErrTooLarge = errors.New("payload too large")

// ReadAllLimit reads r fully, failing with ErrTooLarge when the stream
// exceeds max bytes.
func ReadAllLimit(r io.Reader, max int64) ([]byte, error) {
	lr := io.LimitReader(r, max+1)
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, ErrTooLarge
	}
	return b, nil
}
