package inkwell

import (
	"errors"
	"fmt"
)

// Sentinel errors. Match them with errors.Is; resource failures arrive
// wrapped in a *ResourceError.
var (
	// ErrGPU is reported when a text texture cannot be uploaded.
	ErrGPU = errors.New("GPU error creating text texture")

	// ErrLayout is reported when a string produces no usable layout frame.
	ErrLayout = errors.New("text layout produced no usable frame")

	// ErrInvalidSize is reported for point sizes below 1.
	ErrInvalidSize = errors.New("point size must be positive")

	// ErrUnknownFamily is reported when a writer asks for a font family
	// other than the one its renderer was configured with.
	ErrUnknownFamily = errors.New("font family not configured on renderer")

	// ErrNoTarget is reported when drawing before Renderer.SetTarget.
	ErrNoTarget = errors.New("renderer has no target image")

	// ErrClosed is reported when drawing through a closed renderer.
	ErrClosed = errors.New("renderer is closed")
)

// ResourceError reports a failure to create a font, glyph or texture
// resource. Any partially created resource has already been released when
// a ResourceError is returned.
type ResourceError struct {
	Op   string // operation that failed, e.g. "upload text texture"
	Size int    // device point size involved, 0 if not applicable
	Err  error
}

func (e *ResourceError) Error() string {
	if e.Size > 0 {
		return fmt.Sprintf("inkwell: %s (size %d): %v", e.Op, e.Size, e.Err)
	}
	return fmt.Sprintf("inkwell: %s: %v", e.Op, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// resourceError wraps err as a *ResourceError unless it already is one.
func resourceError(op string, size int, err error) error {
	var re *ResourceError
	if errors.As(err, &re) {
		return err
	}
	return &ResourceError{Op: op, Size: size, Err: err}
}
