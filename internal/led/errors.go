package led

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownColor is returned for names outside the color set.
	ErrUnknownColor = errors.New("unknown color")
	// ErrNotInitialized is returned when writing to a driver before Initialize.
	ErrNotInitialized = errors.New("led strip not initialized")
	// ErrAlreadyInitialized is returned when Initialize is called twice.
	ErrAlreadyInitialized = errors.New("led strip already initialized")
	// ErrNoHardware is returned when the binary was built without ws281x support.
	ErrNoHardware = errors.New("ws281x support not compiled in")
)

// InitError reports a failure to bring up the strip. It is fatal.
type InitError struct {
	Pin   int
	Count int
	Cause error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("DRIVER_INIT: led strip on GPIO%d (%d pixels): %v", e.Pin, e.Count, e.Cause)
}

func (e *InitError) Unwrap() error {
	return e.Cause
}

// WriteError reports a failed color write. The previously shown color persists.
type WriteError struct {
	Color Color
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("DRIVER_WRITE: set color %s: %v", e.Color, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}
