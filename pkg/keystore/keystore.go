package keystore

// Version is the credstore release version. Backends embed it in the
// provenance metadata they attach to entries they create.
const Version = "0.1.0"

// Backend is a handle on one secret in a native OS credential store.
//
// Each operation is synchronous and validates the handle's attributes
// against the store's limits before touching the store. Implementations
// must be safe for concurrent use.
type Backend interface {
	// SetSecret stores the secret, entirely replacing any existing entry
	// with the same identity. Metadata not carried by this handle is lost
	// on overwrite.
	SetSecret(secret string) error

	// GetSecret retrieves the stored secret. Returns ErrNoEntry if no
	// entry exists, or BadEncodingError if the stored bytes were written
	// by a third party in a form this backend cannot decode as text.
	GetSecret() (string, error)

	// DeleteSecret removes the entry. Returns ErrNoEntry if no entry
	// exists.
	DeleteSecret() error
}

// Builder constructs backends for a platform's native credential store.
//
// Build derives the store-level identity from the (service, user) pair
// using the backend's naming convention. BuildWithTarget bypasses the
// convention and uses target verbatim as the store-level key; an empty
// target is rejected with InvalidError rather than falling back to
// synthesis, since an empty string is never a valid lookup key.
type Builder interface {
	Build(service, user string) (Backend, error)
	BuildWithTarget(target, service, user string) (Backend, error)
}
