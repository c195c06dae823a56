// Package wincred implements the credstore backend for the Windows
// credential store (the "Credential Manager" vault).
//
// Windows has only one credential store, and each credential is
// identified by a single string called the "target name". Generic
// credentials also carry three pieces of metadata with suggestive names:
// a username, a target alias, and a free-text comment. None of the
// metadata participates in lookup; the target name is the sole key.
package wincred

import (
	"fmt"

	"github.com/systmms/credstore/pkg/keystore"
)

// Limits the credential store imposes on generic credentials, in bytes
// (wincred.h).
const (
	// MaxUsernameLength is CRED_MAX_USERNAME_LENGTH.
	MaxUsernameLength = 513
	// MaxTargetNameLength is CRED_MAX_GENERIC_TARGET_NAME_LENGTH.
	MaxTargetNameLength = 32767
	// MaxStringLength is CRED_MAX_STRING_LENGTH, the cap on the target
	// alias and comment fields.
	MaxStringLength = 256
	// MaxBlobSize is CRED_MAX_CREDENTIAL_BLOB_SIZE.
	MaxBlobSize = 5 * 512
)

// Credential identifies one entry in the Windows credential store.
// TargetName is the sole lookup key and is never empty on a validated
// credential; the other three fields are metadata stored alongside the
// secret.
type Credential struct {
	Username    string
	TargetName  string
	TargetAlias string
	Comment     string
}

// NewCredential builds a credential for a (service, user) pair using the
// default naming convention: the target name is "user.service". The
// store has a single flat namespace keyed only by target name, so the
// concatenation keeps distinct pairs distinct unless their concatenation
// collides. Empty service or user is rejected, since the synthesized key
// would no longer identify the pair.
func NewCredential(service, user string) (Credential, error) {
	if service == "" {
		return Credential{}, keystore.InvalidError{Field: "service", Reason: "cannot be empty"}
	}
	if user == "" {
		return Credential{}, keystore.InvalidError{Field: "user", Reason: "cannot be empty"}
	}
	cred := Credential{
		Username:   user,
		TargetName: user + "." + service,
		Comment:    provenance(service, user),
	}
	if err := cred.validate(""); err != nil {
		return Credential{}, err
	}
	return cred, nil
}

// NewCredentialWithTarget builds a credential whose target name is the
// caller-supplied target, verbatim, for clients that want their own
// naming convention. An empty target is rejected: empty strings are
// never valid lookup keys, and falling back to synthesis here would
// silently change which entry the credential addresses.
func NewCredentialWithTarget(target, service, user string) (Credential, error) {
	if target == "" {
		return Credential{}, keystore.InvalidError{Field: "target", Reason: "cannot be empty"}
	}
	cred := Credential{
		Username:   user,
		TargetName: target,
		Comment:    provenance(service, user),
	}
	if err := cred.validate(""); err != nil {
		return Credential{}, err
	}
	return cred, nil
}

// provenance is the fixed-format diagnostic string stored in the comment
// field of every entry this backend creates.
func provenance(service, user string) string {
	return fmt.Sprintf("credstore v%s for service '%s', user '%s'", keystore.Version, service, user)
}

// validate checks every attribute against the store's limits before a
// vault call is made. The first failing rule wins. Reads and deletes
// validate with an empty secret, since the blob limit does not apply to
// them.
func (c Credential) validate(secret string) error {
	if len(c.Username) > MaxUsernameLength {
		return keystore.TooLongError{Field: "username", Limit: MaxUsernameLength}
	}
	if c.TargetName == "" {
		return keystore.InvalidError{Field: "target", Reason: "cannot be empty"}
	}
	if len(c.TargetName) > MaxTargetNameLength {
		return keystore.TooLongError{Field: "target", Limit: MaxTargetNameLength}
	}
	if len(c.TargetAlias) > MaxStringLength {
		return keystore.TooLongError{Field: "target alias", Limit: MaxStringLength}
	}
	if len(c.Comment) > MaxStringLength {
		return keystore.TooLongError{Field: "comment", Limit: MaxStringLength}
	}
	if len(secret) > MaxBlobSize {
		return keystore.TooLongError{Field: "secret", Limit: MaxBlobSize}
	}
	return nil
}
