//go:build windows

package credstore

import (
	"github.com/systmms/credstore/internal/wincred"
	"github.com/systmms/credstore/pkg/keystore"
)

// DefaultBuilder returns the builder for the platform's native secret
// store: the Windows credential store.
func DefaultBuilder() keystore.Builder {
	return wincred.NewBuilder()
}
