package rimloc

import "fmt"

// ConfigError indicates an invalid or ambiguous configuration: an unknown
// policy or strategy, a duplicate key within one input set, or the same key
// carrying different text across namespaces. Configuration errors are fatal
// and abort the run before any file is written.
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// ParseError indicates that one resource file could not be read as
// well-formed XML. The file is skipped and the pass continues.
type ParseError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error (%s): %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error (%s): %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// SerializeError indicates that one target file could not be written. Other
// files are still committed; the run ends with a failure count instead of a
// hard abort.
type SerializeError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SerializeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("serialize error (%s): %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("serialize error (%s): %s", e.Path, e.Message)
}

func (e *SerializeError) Unwrap() error {
	return e.Cause
}

// ProviderError indicates a machine-translation backend failure (API error,
// rate limit, etc.).
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a translation-cache operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// CountMismatchError indicates the provider returned a different number of
// translations than requested.
type CountMismatchError struct {
	Expected int
	Got      int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("translation count mismatch: expected %d, got %d", e.Expected, e.Got)
}
