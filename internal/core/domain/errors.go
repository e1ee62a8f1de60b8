package domain

import (
	"errors"
	"fmt"
)

// ConfigError reports an unusable invocation, such as a missing input directory.
// The run halts before any file is touched.
type ConfigError struct {
	Path   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Path)
}

// FormatError reports a manifest file that exists but cannot be parsed
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed manifest %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

var (
	// ErrDuplicateContent is returned when a manifest already holds the same content hash
	ErrDuplicateContent = errors.New("duplicate content hash")

	// ErrPathTaken is returned when a manifest path is already recorded
	ErrPathTaken = errors.New("manifest path already recorded")
)
