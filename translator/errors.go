package translator

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedFileKind is returned when a changed path is outside the
	// documentation, use case and tutorial roots.
	ErrUnrecognizedFileKind = errors.New("translator: unrecognized file kind")
	// ErrMalformedFrontMatter is returned when a use case's YAML cannot be parsed.
	ErrMalformedFrontMatter = errors.New("translator: malformed front matter")
	// ErrChangeLogUnavailable is returned when the change log cannot be read.
	ErrChangeLogUnavailable = errors.New("translator: change log unavailable")
	// ErrTutorialCatalogUnavailable is returned when the tutorial catalog cannot be loaded.
	ErrTutorialCatalogUnavailable = errors.New("translator: tutorial catalog unavailable")
	// ErrInvalidWindow is returned for a lookback window below one day.
	ErrInvalidWindow = errors.New("translator: days must be a positive integer")
)

// UnrecognizedFileKindError carries the path that matched no content root.
type UnrecognizedFileKindError struct {
	Path string
}

func (e *UnrecognizedFileKindError) Error() string {
	return fmt.Sprintf("%s: the following file did not match documentation, use cases or tutorials: %s", ErrUnrecognizedFileKind.Error(), e.Path)
}

func (e *UnrecognizedFileKindError) Unwrap() error { return ErrUnrecognizedFileKind }

// MalformedFrontMatterError carries the use case path and the parser error.
type MalformedFrontMatterError struct {
	Path string
	Err  error
}

func (e *MalformedFrontMatterError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrMalformedFrontMatter.Error(), e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", ErrMalformedFrontMatter.Error(), e.Path, e.Err)
}

func (e *MalformedFrontMatterError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedFrontMatter}
	}
	return []error{ErrMalformedFrontMatter, e.Err}
}
