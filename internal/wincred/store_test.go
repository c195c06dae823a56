package wincred_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/credstore/internal/logging"
	"github.com/systmms/credstore/internal/wincred"
	"github.com/systmms/credstore/pkg/keystore"
	"github.com/systmms/credstore/tests/fakes"
)

func newTestBackend(t *testing.T, fake *fakes.FakeVault) keystore.Backend {
	t.Helper()
	backend, err := wincred.NewBuilderWithVault(fake).Build("service", "user")
	require.NoError(t, err)
	return backend
}

func TestStoreLifecycle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		secret string
	}{
		{name: "ascii", secret: "test ascii password"},
		{name: "non_ascii", secret: "このきれいな花は桜です"},
		{name: "empty", secret: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := fakes.NewFakeVault()
			backend := newTestBackend(t, fake)

			require.NoError(t, backend.SetSecret(tt.secret))

			got, err := backend.GetSecret()
			require.NoError(t, err)
			assert.Equal(t, tt.secret, got)

			require.NoError(t, backend.DeleteSecret())

			_, err = backend.GetSecret()
			assert.ErrorIs(t, err, keystore.ErrNoEntry, "able to read a deleted secret")
		})
	}
}

func TestStoreOverwriteReplacesEntirely(t *testing.T) {
	t.Parallel()

	fake := fakes.NewFakeVault()
	backend := newTestBackend(t, fake)

	require.NoError(t, backend.SetSecret("first"))
	require.NoError(t, backend.SetSecret("このきれいな花は桜です"))

	got, err := backend.GetSecret()
	require.NoError(t, err)
	assert.Equal(t, "このきれいな花は桜です", got, "read must return only the most recent secret")
}

func TestStoreMissingEntry(t *testing.T) {
	t.Parallel()

	fake := fakes.NewFakeVault()
	backend := newTestBackend(t, fake)

	_, err := backend.GetSecret()
	assert.ErrorIs(t, err, keystore.ErrNoEntry)

	var platform keystore.PlatformFailureError
	assert.False(t, errors.As(err, &platform), "missing entry must not be a platform failure")

	assert.ErrorIs(t, backend.DeleteSecret(), keystore.ErrNoEntry)
}

func TestStoreReleasesRecordExactlyOnce(t *testing.T) {
	t.Parallel()

	t.Run("success_path", func(t *testing.T) {
		t.Parallel()

		fake := fakes.NewFakeVault()
		backend := newTestBackend(t, fake)
		require.NoError(t, backend.SetSecret("secret"))

		_, err := backend.GetSecret()
		require.NoError(t, err)
		assert.Equal(t, 1, fake.FreeCalls)
	})

	t.Run("decode_failure_path", func(t *testing.T) {
		t.Parallel()

		fake := fakes.NewFakeVault()
		backend := newTestBackend(t, fake)

		// A third-party tool may store raw bytes of odd length; that is
		// a read failure, not something writes prevent.
		raw := []byte{0x01, 0x02, 0x03}
		fake.SetRawBlob("user.service", raw)

		_, err := backend.GetSecret()

		var badEnc keystore.BadEncodingError
		require.ErrorAs(t, err, &badEnc)
		assert.Equal(t, raw, badEnc.Raw)
		assert.Equal(t, 1, fake.FreeCalls, "record must be released on the decode-failure path too")
	})
}

func TestStoreValidatesBeforeVaultCall(t *testing.T) {
	t.Parallel()

	t.Run("overlong_secret", func(t *testing.T) {
		t.Parallel()

		fake := fakes.NewFakeVault()
		backend := newTestBackend(t, fake)

		err := backend.SetSecret(strings.Repeat("x", wincred.MaxBlobSize+1))

		var tooLong keystore.TooLongError
		require.ErrorAs(t, err, &tooLong)
		assert.Equal(t, "secret", tooLong.Field)
		assert.Equal(t, uint32(wincred.MaxBlobSize), tooLong.Limit)
		assert.Zero(t, fake.WriteCalls, "no vault call may happen on validation failure")
	})

	t.Run("overlong_alias", func(t *testing.T) {
		t.Parallel()

		fake := fakes.NewFakeVault()
		store := wincred.NewStore(wincred.Credential{
			Username:    "user",
			TargetName:  "target",
			TargetAlias: strings.Repeat("x", wincred.MaxStringLength+1),
		}, fake)

		err := store.SetSecret("secret")

		var tooLong keystore.TooLongError
		require.ErrorAs(t, err, &tooLong)
		assert.Equal(t, "target alias", tooLong.Field)
		assert.Zero(t, fake.WriteCalls)
	})

	t.Run("empty_target_on_read_and_delete", func(t *testing.T) {
		t.Parallel()

		fake := fakes.NewFakeVault()
		store := wincred.NewStore(wincred.Credential{Username: "user"}, fake)

		var invalid keystore.InvalidError
		_, err := store.GetSecret()
		require.ErrorAs(t, err, &invalid)

		require.ErrorAs(t, store.DeleteSecret(), &invalid)

		assert.Zero(t, fake.ReadCalls)
		assert.Zero(t, fake.DeleteCalls)
	})
}

func TestStoreErrorTranslation(t *testing.T) {
	t.Parallel()

	t.Run("no_such_logon_session", func(t *testing.T) {
		t.Parallel()

		fake := fakes.NewFakeVault()
		backend := newTestBackend(t, fake)
		fake.ReadErr = wincred.ErrnoNoSuchLogonSession

		_, err := backend.GetSecret()

		var noAccess keystore.NoStorageAccessError
		require.ErrorAs(t, err, &noAccess)

		var code wincred.Errno
		require.ErrorAs(t, err, &code, "original platform code must be wrapped for diagnostics")
		assert.Equal(t, wincred.ErrnoNoSuchLogonSession, code)
	})

	t.Run("named_code_renders_fixed_string", func(t *testing.T) {
		t.Parallel()

		fake := fakes.NewFakeVault()
		backend := newTestBackend(t, fake)
		fake.WriteErr = wincred.ErrnoInvalidParameter

		err := backend.SetSecret("secret")

		var platform keystore.PlatformFailureError
		require.ErrorAs(t, err, &platform)
		assert.Contains(t, err.Error(), "Windows ERROR_INVALID_PARAMETER")
	})

	t.Run("unknown_code_renders_number", func(t *testing.T) {
		t.Parallel()

		fake := fakes.NewFakeVault()
		backend := newTestBackend(t, fake)
		fake.DeleteErr = wincred.Errno(31)

		err := backend.DeleteSecret()

		var platform keystore.PlatformFailureError
		require.ErrorAs(t, err, &platform)
		assert.Contains(t, err.Error(), "Windows error code 31")
	})
}

func TestStoreStoredCredential(t *testing.T) {
	t.Parallel()

	fake := fakes.NewFakeVault()
	builder := wincred.NewBuilderWithVault(fake)

	backend, err := builder.Build("service", "user")
	require.NoError(t, err)
	require.NoError(t, backend.SetSecret("secret"))

	store, ok := backend.(*wincred.Store)
	require.True(t, ok, "not a wincred store")

	stored, err := store.StoredCredential()
	require.NoError(t, err)
	assert.Equal(t, store.Credential(), stored, "all four identity fields must round-trip")
	assert.Equal(t, 1, fake.FreeCalls, "introspection read must release its record")
}

func TestStoreStoredCredentialSeesOverwrite(t *testing.T) {
	t.Parallel()

	fake := fakes.NewFakeVault()
	builder := wincred.NewBuilderWithVault(fake)

	first, err := builder.Build("service", "user")
	require.NoError(t, err)
	require.NoError(t, first.SetSecret("secret"))

	// Another handle on the same target, created with an explicit
	// target name, fully replaces the entry including its metadata.
	second, err := builder.BuildWithTarget("user.service", "other-service", "other-user")
	require.NoError(t, err)
	require.NoError(t, second.SetSecret("other"))

	stored, err := first.(*wincred.Store).StoredCredential()
	require.NoError(t, err)
	assert.Equal(t, "other-user", stored.Username)
	assert.Contains(t, stored.Comment, "other-service")
}

func TestStoreDebugLoggingRedactsSecrets(t *testing.T) {
	t.Parallel()

	fake := fakes.NewFakeVault()
	var buf bytes.Buffer
	builder := wincred.NewBuilderWithVault(fake)
	builder.SetLogger(logging.NewWithWriter(true, true, &buf))

	backend, err := builder.Build("service", "user")
	require.NoError(t, err)

	require.NoError(t, backend.SetSecret("super-secret-value"))

	assert.Contains(t, buf.String(), "user.service")
	assert.NotContains(t, buf.String(), "super-secret-value")
}
