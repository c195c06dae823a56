package wincred

// Vault is the native credential-store API surface consumed by this
// backend. The production implementation calls advapi32; tests
// substitute an in-memory fake.
type Vault interface {
	// Write creates or entirely replaces the entry named by
	// rec.TargetName. The store copies the record, so the caller keeps
	// ownership of rec.Blob.
	Write(rec Record) error

	// Read looks up an entry by target name. On success the returned
	// record may be backed by a store-owned allocation; the caller must
	// Close it exactly once, on every path, before returning. On
	// failure nothing was allocated.
	Read(targetName string) (*Record, error)

	// Delete removes an entry by target name.
	Delete(targetName string) error
}

// Record is one credential record exchanged with the native store. For
// records returned by Vault.Read, Blob may view memory owned by the
// store and is only valid until Close.
type Record struct {
	Username    string
	TargetName  string
	TargetAlias string
	Comment     string
	Blob        []byte

	// Free releases the store-owned allocation backing a record
	// returned by Read. Vault implementations set it; callers release
	// through Close.
	Free func()
}

// Close releases the native allocation backing the record. Extra calls
// are no-ops; the release itself runs exactly once.
func (r *Record) Close() {
	if r.Free != nil {
		r.Free()
		r.Free = nil
	}
}
