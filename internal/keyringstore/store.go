// Package keyringstore implements the credstore backend for the
// platform keyring on macOS (Keychain) and Linux (Secret Service),
// through github.com/zalando/go-keyring. It backs the portable contract
// on platforms without the Windows credential store.
package keyringstore

import (
	"errors"

	"github.com/zalando/go-keyring"

	"github.com/systmms/credstore/internal/logging"
	"github.com/systmms/credstore/pkg/keystore"
)

// maxSecretSize is the payload cap go-keyring enforces on Set.
const maxSecretSize = 128 * 1024

// Store is a handle on one secret in the platform keyring, addressed by
// a (service, user) pair. It implements keystore.Backend.
type Store struct {
	service string
	user    string
	logger  *logging.Logger
}

var _ keystore.Backend = (*Store)(nil)

// SetSecret stores the secret, replacing any existing value for the
// (service, user) pair.
func (s *Store) SetSecret(secret string) error {
	if err := keyring.Set(s.service, s.user, secret); err != nil {
		return translate(err)
	}
	s.logger.Debug("wrote keyring entry %s/%s", s.service, s.user)
	return nil
}

// GetSecret retrieves the stored secret.
func (s *Store) GetSecret() (string, error) {
	secret, err := keyring.Get(s.service, s.user)
	if err != nil {
		return "", translate(err)
	}
	s.logger.Debug("read keyring entry %s/%s", s.service, s.user)
	return secret, nil
}

// DeleteSecret removes the entry.
func (s *Store) DeleteSecret() error {
	if err := keyring.Delete(s.service, s.user); err != nil {
		return translate(err)
	}
	s.logger.Debug("deleted keyring entry %s/%s", s.service, s.user)
	return nil
}

// translate maps go-keyring errors into the portable taxonomy.
func translate(err error) error {
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return keystore.ErrNoEntry
	case errors.Is(err, keyring.ErrSetDataTooBig):
		return keystore.TooLongError{Field: "secret", Limit: maxSecretSize}
	default:
		return keystore.PlatformFailureError{Cause: err}
	}
}

// Builder constructs stores backed by the platform keyring.
type Builder struct {
	logger *logging.Logger
}

var _ keystore.Builder = (*Builder)(nil)

// NewBuilder creates a builder backed by the platform keyring.
func NewBuilder() *Builder {
	return &Builder{}
}

// SetLogger attaches a debug logger to stores the builder produces.
// Secret values are never logged.
func (b *Builder) SetLogger(logger *logging.Logger) {
	b.logger = logger
}

// Build creates a store for the (service, user) pair. The keyring keys
// entries by the pair itself, so no target-name synthesis is needed,
// but the same emptiness rules apply.
func (b *Builder) Build(service, user string) (keystore.Backend, error) {
	if service == "" {
		return nil, keystore.InvalidError{Field: "service", Reason: "cannot be empty"}
	}
	if user == "" {
		return nil, keystore.InvalidError{Field: "user", Reason: "cannot be empty"}
	}
	return &Store{service: service, user: user, logger: b.logger}, nil
}

// BuildWithTarget creates a store using target in place of the service
// name, for callers with their own naming convention. The keyring has
// no separate target concept, so the target becomes the service key.
func (b *Builder) BuildWithTarget(target, service, user string) (keystore.Backend, error) {
	if target == "" {
		return nil, keystore.InvalidError{Field: "target", Reason: "cannot be empty"}
	}
	return &Store{service: target, user: user, logger: b.logger}, nil
}
