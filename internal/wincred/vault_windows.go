//go:build windows

package wincred

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/systmms/credstore/pkg/keystore"
)

const (
	credTypeGeneric       = 1 // CRED_TYPE_GENERIC
	credPersistEnterprise = 3 // CRED_PERSIST_ENTERPRISE
)

var (
	advapi32        = windows.NewLazySystemDLL("advapi32.dll")
	procCredWriteW  = advapi32.NewProc("CredWriteW")
	procCredReadW   = advapi32.NewProc("CredReadW")
	procCredDeleteW = advapi32.NewProc("CredDeleteW")
	procCredFree    = advapi32.NewProc("CredFree")
)

// nativeCredential mirrors CREDENTIALW (wincred.h).
type nativeCredential struct {
	Flags              uint32
	Type               uint32
	TargetName         *uint16
	Comment            *uint16
	LastWritten        windows.Filetime
	CredentialBlobSize uint32
	CredentialBlob     *byte
	Persist            uint32
	AttributeCount     uint32
	Attributes         uintptr
	TargetAlias        *uint16
	UserName           *uint16
}

// systemVault talks to the Windows credential store through advapi32.
type systemVault struct{}

// NewSystemVault returns the Vault backed by the Windows credential
// store.
func NewSystemVault() Vault {
	return systemVault{}
}

func (systemVault) Write(rec Record) error {
	targetName, err := utf16Field("target", rec.TargetName)
	if err != nil {
		return err
	}
	comment, err := utf16Field("comment", rec.Comment)
	if err != nil {
		return err
	}
	targetAlias, err := utf16Field("target alias", rec.TargetAlias)
	if err != nil {
		return err
	}
	username, err := utf16Field("username", rec.Username)
	if err != nil {
		return err
	}
	var blobPtr *byte
	if len(rec.Blob) > 0 {
		blobPtr = &rec.Blob[0]
	}
	// LastWritten is ignored by CredWriteW; an existing entry with the
	// same target name is replaced in full.
	cred := nativeCredential{
		Type:               credTypeGeneric,
		TargetName:         targetName,
		Comment:            comment,
		CredentialBlobSize: uint32(len(rec.Blob)),
		CredentialBlob:     blobPtr,
		Persist:            credPersistEnterprise,
		TargetAlias:        targetAlias,
		UserName:           username,
	}
	ret, _, callErr := procCredWriteW.Call(uintptr(unsafe.Pointer(&cred)), 0)
	if ret == 0 {
		return lastErr(callErr)
	}
	return nil
}

func (systemVault) Read(targetName string) (*Record, error) {
	target, err := utf16Field("target", targetName)
	if err != nil {
		return nil, err
	}
	var pcred *nativeCredential
	ret, _, callErr := procCredReadW.Call(
		uintptr(unsafe.Pointer(target)),
		credTypeGeneric,
		0,
		uintptr(unsafe.Pointer(&pcred)),
	)
	if ret == 0 {
		// the lookup failed, so nothing was allocated
		return nil, lastErr(callErr)
	}
	var blob []byte
	if pcred.CredentialBlob != nil && pcred.CredentialBlobSize > 0 {
		// A view into the store-owned allocation; valid until Close.
		blob = unsafe.Slice(pcred.CredentialBlob, pcred.CredentialBlobSize)
	}
	return &Record{
		Username:    windows.UTF16PtrToString(pcred.UserName),
		TargetName:  windows.UTF16PtrToString(pcred.TargetName),
		TargetAlias: windows.UTF16PtrToString(pcred.TargetAlias),
		Comment:     windows.UTF16PtrToString(pcred.Comment),
		Blob:        blob,
		Free: func() {
			procCredFree.Call(uintptr(unsafe.Pointer(pcred))) //nolint:errcheck // CredFree has no failure mode
		},
	}, nil
}

func (systemVault) Delete(targetName string) error {
	target, err := utf16Field("target", targetName)
	if err != nil {
		return err
	}
	ret, _, callErr := procCredDeleteW.Call(
		uintptr(unsafe.Pointer(target)),
		credTypeGeneric,
		0,
	)
	if ret == 0 {
		return lastErr(callErr)
	}
	return nil
}

// utf16Field converts a string attribute to a NUL-terminated wide
// string for the store.
func utf16Field(field, value string) (*uint16, error) {
	p, err := windows.UTF16PtrFromString(value)
	if err != nil {
		return nil, keystore.InvalidError{Field: field, Reason: "contains a NUL character"}
	}
	return p, nil
}

// lastErr normalizes the error the syscall layer captured for the
// failing call. For advapi32 calls this is the GetLastError value.
func lastErr(callErr error) error {
	if e, ok := callErr.(windows.Errno); ok {
		return Errno(e)
	}
	return callErr
}
