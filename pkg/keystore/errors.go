package keystore

import (
	"errors"
	"fmt"
)

// ErrNoEntry indicates that no entry exists in the credential store for
// the requested identity. Returned by reads and deletes of absent entries.
var ErrNoEntry = errors.New("no entry found in credential store")

// InvalidError indicates that a required attribute is structurally
// unusable (for example, empty) before any store call was attempted.
type InvalidError struct {
	// Field is the name of the offending attribute.
	Field string

	// Reason describes why the value is unusable.
	Reason string
}

func (e InvalidError) Error() string {
	return fmt.Sprintf("attribute %q is invalid: %s", e.Field, e.Reason)
}

// TooLongError indicates that an attribute exceeds a size limit imposed
// by the credential store. It carries the field name and the limit so
// callers can report exactly what to shorten.
type TooLongError struct {
	// Field is the name of the offending attribute.
	Field string

	// Limit is the store-imposed maximum length in bytes.
	Limit uint32
}

func (e TooLongError) Error() string {
	return fmt.Sprintf("attribute %q is longer than the limit of %d bytes", e.Field, e.Limit)
}

// BadEncodingError indicates that a retrieved secret blob cannot be
// decoded as text under the backend's encoding policy. The original
// bytes are preserved so the caller may still recover raw data written
// by another tool.
type BadEncodingError struct {
	// Raw is the blob exactly as stored, not a lossy decode.
	Raw []byte
}

func (e BadEncodingError) Error() string {
	return fmt.Sprintf("stored secret of %d bytes is not valid encoded text", len(e.Raw))
}

// NoStorageAccessError indicates that the credential store is
// unreachable in the current session context.
type NoStorageAccessError struct {
	// Cause is the platform error, retained for diagnostics.
	Cause error
}

func (e NoStorageAccessError) Error() string {
	return fmt.Sprintf("credential store is not accessible in this session: %v", e.Cause)
}

func (e NoStorageAccessError) Unwrap() error {
	return e.Cause
}

// PlatformFailureError wraps any other store-level failure. The cause is
// opaque to callers but retained for logging.
type PlatformFailureError struct {
	Cause error
}

func (e PlatformFailureError) Error() string {
	return fmt.Sprintf("credential store operation failed: %v", e.Cause)
}

func (e PlatformFailureError) Unwrap() error {
	return e.Cause
}
