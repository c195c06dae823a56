package wincred

import (
	"errors"
	"fmt"

	"github.com/systmms/credstore/pkg/keystore"
)

// Errno is a Windows system error code, captured from the GetLastError
// value of the failing store call. The Go syscall layer records it
// atomically with the call itself, so translation never observes the
// last-error state of a later call.
type Errno uint32

// Codes the credential-store API is documented to set (winerror.h).
const (
	ErrnoInvalidParameter   Errno = 87
	ErrnoInvalidFlags       Errno = 1004
	ErrnoNotFound           Errno = 1168
	ErrnoNoSuchLogonSession Errno = 1312
	ErrnoBadUsername        Errno = 2202
)

func (e Errno) Error() string {
	switch e {
	case ErrnoInvalidParameter:
		return "Windows ERROR_INVALID_PARAMETER"
	case ErrnoInvalidFlags:
		return "Windows ERROR_INVALID_FLAGS"
	case ErrnoNotFound:
		return "Windows ERROR_NOT_FOUND"
	case ErrnoNoSuchLogonSession:
		return "Windows ERROR_NO_SUCH_LOGON_SESSION"
	case ErrnoBadUsername:
		return "Windows ERROR_BAD_USERNAME"
	default:
		return fmt.Sprintf("Windows error code %d", uint32(e))
	}
}

// translateErr maps a failed vault call's error into the portable
// taxonomy. Errors that are already portable pass through unchanged.
func translateErr(err error) error {
	var code Errno
	if errors.As(err, &code) {
		switch code {
		case ErrnoNotFound:
			return keystore.ErrNoEntry
		case ErrnoNoSuchLogonSession:
			return keystore.NoStorageAccessError{Cause: code}
		default:
			return keystore.PlatformFailureError{Cause: code}
		}
	}
	return err
}
