package fakes

import (
	"sync"

	"github.com/systmms/credstore/internal/wincred"
)

// FakeVault is an in-memory test double for wincred.Vault. It records
// call and release counts so tests can assert that validation failures
// never reach the store, and that the allocation behind a successful
// read is released exactly once on every path.
type FakeVault struct {
	mu      sync.Mutex
	entries map[string]wincred.Record

	WriteCalls  int
	ReadCalls   int
	DeleteCalls int
	FreeCalls   int

	// WriteErr, ReadErr, and DeleteErr force the matching call to fail
	// with the given error, the way the native API reports a platform
	// code. Usually a wincred.Errno.
	WriteErr  error
	ReadErr   error
	DeleteErr error
}

// NewFakeVault creates an empty fake vault.
func NewFakeVault() *FakeVault {
	return &FakeVault{entries: make(map[string]wincred.Record)}
}

// Write stores a copy of the record, replacing any existing entry with
// the same target name, like the native store does.
func (f *FakeVault) Write(rec wincred.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.WriteCalls++
	if f.WriteErr != nil {
		return f.WriteErr
	}
	stored := rec
	stored.Blob = append([]byte(nil), rec.Blob...)
	stored.Free = nil
	f.entries[rec.TargetName] = stored
	return nil
}

// Read returns a copy of the stored record whose Free callback counts
// releases. A missing target fails with ERROR_NOT_FOUND, like the
// native store.
func (f *FakeVault) Read(targetName string) (*wincred.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ReadCalls++
	if f.ReadErr != nil {
		return nil, f.ReadErr
	}
	stored, ok := f.entries[targetName]
	if !ok {
		return nil, wincred.ErrnoNotFound
	}
	out := stored
	out.Blob = append([]byte(nil), stored.Blob...)
	out.Free = func() {
		f.mu.Lock()
		f.FreeCalls++
		f.mu.Unlock()
	}
	return &out, nil
}

// Delete removes an entry. A missing target fails with ERROR_NOT_FOUND.
func (f *FakeVault) Delete(targetName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	if _, ok := f.entries[targetName]; !ok {
		return wincred.ErrnoNotFound
	}
	delete(f.entries, targetName)
	return nil
}

// SetRawBlob stores bytes for a target directly, the way a third-party
// tool writing arbitrary binary data would.
func (f *FakeVault) SetRawBlob(targetName string, blob []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[targetName] = wincred.Record{
		TargetName: targetName,
		Blob:       append([]byte(nil), blob...),
	}
}

// Ensure FakeVault implements wincred.Vault
var _ wincred.Vault = (*FakeVault)(nil)
