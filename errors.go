package tileraster

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the façade.
var (
	// ErrInvalidDimensions is returned by New when width or height is
	// not positive.
	ErrInvalidDimensions = errors.New("tileraster: invalid dimensions")

	// ErrDisposed is returned by any operation on a disposed Rasterizer.
	ErrDisposed = errors.New("tileraster: rasterizer disposed")
)

// WorkerError reports a resolve job that failed during a parallel flush.
// The framebuffer of the affected tile is left in an indeterminate state;
// the caller may reissue the polygons and flush again.
type WorkerError struct {
	// Tile is the index of the strip tile whose job failed.
	Tile int

	// Err is the underlying cause.
	Err error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("tileraster: worker failed on tile %d: %v", e.Tile, e.Err)
}

func (e *WorkerError) Unwrap() error {
	return e.Err
}
