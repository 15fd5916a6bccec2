package morph

import (
	"errors"
	"fmt"
)

// Domain errors for morph operations.
var (
	// ErrLengthMismatch indicates sample sets of different cardinality were paired.
	ErrLengthMismatch = errors.New("morph: sample sets differ in length")

	// ErrEmptyImage indicates an image with zero width or height.
	ErrEmptyImage = errors.New("morph: image has no pixels")

	// ErrInvalidParams indicates a parameter outside its valid range.
	ErrInvalidParams = errors.New("morph: invalid parameters")

	// ErrNotReady indicates a start was requested before both images were loaded.
	ErrNotReady = errors.New("morph: target and source must both be loaded")

	// ErrAnimating indicates a replay was requested while the current animation runs.
	ErrAnimating = errors.New("morph: animation still running")
)

// LoadError records which image failed to load.
type LoadError struct {
	Role    string
	Path    string
	Wrapped error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load %s: %v", e.Role, e.Wrapped)
	}
	return fmt.Sprintf("load %s %s: %v", e.Role, e.Path, e.Wrapped)
}

func (e *LoadError) Unwrap() error {
	return e.Wrapped
}
