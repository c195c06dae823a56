//go:build !windows

package credstore

import (
	"github.com/systmms/credstore/internal/keyringstore"
	"github.com/systmms/credstore/pkg/keystore"
)

// DefaultBuilder returns the builder for the platform's native secret
// store: the macOS Keychain or the Linux Secret Service, via the
// platform keyring.
func DefaultBuilder() keystore.Builder {
	return keyringstore.NewBuilder()
}
