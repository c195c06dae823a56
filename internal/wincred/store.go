package wincred

import (
	"github.com/awnumar/memguard"

	"github.com/systmms/credstore/internal/logging"
	"github.com/systmms/credstore/pkg/keystore"
)

// Store is a handle on one entry in the Windows credential store. It
// implements keystore.Backend. Every operation revalidates the
// credential's attributes before touching the store; the store itself
// serializes access per target name, so Store holds no locks.
type Store struct {
	cred   Credential
	vault  Vault
	logger *logging.Logger
}

var _ keystore.Backend = (*Store)(nil)

// NewStore creates a store for cred backed by vault. Most callers go
// through a Builder; tests and advanced callers can assemble the
// credential directly.
func NewStore(cred Credential, vault Vault) *Store {
	return &Store{cred: cred, vault: vault}
}

// SetSecret stores the secret under the credential's target name,
// entirely replacing any existing entry. An existing alias or comment
// not carried by this credential is lost, not merged.
func (s *Store) SetSecret(secret string) error {
	if err := s.cred.validate(secret); err != nil {
		return err
	}
	blob := encodeBlob(secret)
	defer memguard.WipeBytes(blob)
	rec := Record{
		Username:    s.cred.Username,
		TargetName:  s.cred.TargetName,
		TargetAlias: s.cred.TargetAlias,
		Comment:     s.cred.Comment,
		Blob:        blob,
	}
	if err := s.vault.Write(rec); err != nil {
		return translateErr(err)
	}
	s.logger.Debug("wrote credential %q (%d byte blob)", s.cred.TargetName, len(blob))
	return nil
}

// GetSecret retrieves and decodes the stored secret.
func (s *Store) GetSecret() (string, error) {
	rec, err := s.lookup()
	if err != nil {
		return "", err
	}
	// Release the store-owned record on every path, including decode
	// failures.
	defer rec.Close()
	secret, err := decodeBlob(rec.Blob)
	if err != nil {
		return "", err
	}
	s.logger.Debug("read credential %q", s.cred.TargetName)
	return secret, nil
}

// DeleteSecret removes the entry. A missing entry reports
// keystore.ErrNoEntry, not a generic failure.
func (s *Store) DeleteSecret() error {
	if err := s.cred.validate(""); err != nil {
		return err
	}
	if err := s.vault.Delete(s.cred.TargetName); err != nil {
		return translateErr(err)
	}
	s.logger.Debug("deleted credential %q", s.cred.TargetName)
	return nil
}

// Credential returns the identity this store addresses.
func (s *Store) Credential() Credential {
	return s.cred
}

// StoredCredential reads the entry back and reconstructs all four
// identity fields as the store has them. The stored metadata is not
// required to match this handle's: another writer may have replaced the
// entry since it was created. Used for introspection and diagnostics.
func (s *Store) StoredCredential() (Credential, error) {
	rec, err := s.lookup()
	if err != nil {
		return Credential{}, err
	}
	defer rec.Close()
	return Credential{
		Username:    rec.Username,
		TargetName:  rec.TargetName,
		TargetAlias: rec.TargetAlias,
		Comment:     rec.Comment,
	}, nil
}

// lookup validates and performs the read shared by GetSecret and
// StoredCredential.
func (s *Store) lookup() (*Record, error) {
	if err := s.cred.validate(""); err != nil {
		return nil, err
	}
	rec, err := s.vault.Read(s.cred.TargetName)
	if err != nil {
		return nil, translateErr(err)
	}
	return rec, nil
}

// Builder constructs stores backed by the Windows credential store.
type Builder struct {
	vault  Vault
	logger *logging.Logger
}

var _ keystore.Builder = (*Builder)(nil)

// NewBuilder creates a builder backed by the system credential store.
func NewBuilder() *Builder {
	return &Builder{vault: NewSystemVault()}
}

// NewBuilderWithVault creates a builder with a custom vault. This is
// primarily for testing, allowing the native store to be faked.
func NewBuilderWithVault(vault Vault) *Builder {
	return &Builder{vault: vault}
}

// SetLogger attaches a debug logger to stores the builder produces.
// Secret values are never logged.
func (b *Builder) SetLogger(logger *logging.Logger) {
	b.logger = logger
}

// Build creates a store for the (service, user) pair using the default
// target-name convention.
func (b *Builder) Build(service, user string) (keystore.Backend, error) {
	cred, err := NewCredential(service, user)
	if err != nil {
		return nil, err
	}
	return &Store{cred: cred, vault: b.vault, logger: b.logger}, nil
}

// BuildWithTarget creates a store addressing target verbatim.
func (b *Builder) BuildWithTarget(target, service, user string) (keystore.Backend, error) {
	cred, err := NewCredentialWithTarget(target, service, user)
	if err != nil {
		return nil, err
	}
	return &Store{cred: cred, vault: b.vault, logger: b.logger}, nil
}
