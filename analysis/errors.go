package analysis

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks structurally invalid audio input: empty
// buffers or non-finite samples. Degenerate but structurally valid
// audio (silence, short buffers, unvoiced speech) never produces this
// error; it resolves to documented numeric fallbacks instead.
var ErrInvalidInput = errors.New("invalid input")

func invalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
