package formatter

import (
	"errors"
	"fmt"
)

// ErrFormatInFlight is returned when a format request arrives for a
// buffer that already has one in progress.
var ErrFormatInFlight = errors.New("format already in flight for this buffer")

// Kind classifies a formatting failure.
type Kind uint8

const (
	// KindNotFound means no usable executable was located or launched.
	KindNotFound Kind = iota
	// KindTimeout means the subprocess exceeded the configured timeout.
	KindTimeout
	// KindFormatter means the subprocess exited non-zero.
	KindFormatter
	// KindConfig means a configuration file could not be used.
	KindConfig
	// KindUnsupported means no Prettier parser handles the buffer's language.
	KindUnsupported
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindTimeout:
		return "timeout"
	case KindFormatter:
		return "formatter error"
	case KindConfig:
		return "config error"
	case KindUnsupported:
		return "unsupported language"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// FormatError is a classified formatting failure. The buffer is always
// left in its pre-invocation state when one is returned.
type FormatError struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("prettier %s: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("prettier %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("prettier %s", e.Kind)
}

// Unwrap returns the underlying cause.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a FormatError of the given kind.
func IsKind(err error, kind Kind) bool {
	var fe *FormatError
	return errors.As(err, &fe) && fe.Kind == kind
}
