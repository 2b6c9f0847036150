package opcda

import (
	"errors"
	"fmt"
)

var (
	// ErrOperationFailed indicates a generic backend failure.
	ErrOperationFailed = errors.New("opcda: operation failed")

	// ErrConnectionFailed indicates a host or server connection error.
	ErrConnectionFailed = errors.New("opcda: connection failed")

	// ErrInvalidParameters indicates invalid parameters were provided.
	ErrInvalidParameters = errors.New("opcda: invalid parameters")

	// ErrValueConversion indicates the value codec could not convert between
	// the native representation and a Value.
	ErrValueConversion = errors.New("opcda: value conversion error")

	// ErrInitializationFailed indicates the native backend rejected
	// initialization, or is unavailable on this platform.
	ErrInitializationFailed = errors.New("opcda: initialization failed")

	// ErrServerNotFound indicates the named server does not exist.
	ErrServerNotFound = errors.New("opcda: server not found")

	// ErrItemNotFound indicates the named item does not exist in the
	// server's namespace.
	ErrItemNotFound = errors.New("opcda: item not found")

	// ErrGroupCreationFailed indicates the server refused to create a group.
	ErrGroupCreationFailed = errors.New("opcda: group creation failed")

	// ErrSubscriptionFailed indicates async notifications could not be
	// enabled for a group.
	ErrSubscriptionFailed = errors.New("opcda: subscription failed")

	// ErrTimeout indicates an externally imposed deadline expired.
	ErrTimeout = errors.New("opcda: operation timed out")
)

// typeMismatch reports a conversion between incompatible value kinds.
func typeMismatch(expected, actual string) error {
	return fmt.Errorf("%w: type mismatch: expected %s, got %s", ErrValueConversion, expected, actual)
}

// conversionErrorf reports a codec-level conversion failure.
func conversionErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValueConversion}, args...)...)
}

// invalidValueType reports an unrecognized native type tag, carrying the raw
// tag for diagnostics.
func invalidValueType(vt Type) error {
	return fmt.Errorf("%w: invalid value type 0x%04x", ErrValueConversion, uint16(vt))
}
