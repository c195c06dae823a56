//go:build !windows

package wincred

import (
	"errors"

	"github.com/systmms/credstore/pkg/keystore"
)

// The Windows credential store only exists on Windows. On other
// platforms the system vault reports the store as unreachable. Callers
// normally never see this: the platform default builder selects a
// different backend at process startup.

type systemVault struct{}

// NewSystemVault returns a Vault that reports the Windows credential
// store as unavailable.
func NewSystemVault() Vault {
	return systemVault{}
}

func (systemVault) Write(Record) error {
	return errUnavailable()
}

func (systemVault) Read(string) (*Record, error) {
	return nil, errUnavailable()
}

func (systemVault) Delete(string) error {
	return errUnavailable()
}

func errUnavailable() error {
	return keystore.NoStorageAccessError{
		Cause: errors.New("the Windows credential store does not exist on this platform"),
	}
}
