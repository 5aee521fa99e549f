package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Charangowdasb/qrmedia/pkg/crypto/encryption"
	"github.com/Charangowdasb/qrmedia/pkg/envelope"
)

func testSession(t *testing.T) (*Session, *encryption.Manager) {
	t.Helper()

	enc, err := encryption.NewManager()
	require.NoError(t, err)

	env, err := envelope.Pack("https://example.com/video.mp4", 2, 3, enc, nil)
	require.NoError(t, err)

	return NewSession(env, enc.KeyHex()), enc
}

func TestSessionRoundTrip(t *testing.T) {
	sess, enc := testSession(t)
	path := filepath.Join(t.TempDir(), "session.json")

	require.NoError(t, SaveSession(path, sess))

	loaded, err := LoadSession(path)
	require.NoError(t, err)
	assert.Equal(t, sess.Envelope, loaded.Envelope)
	assert.Equal(t, sess.KeyHex, loaded.KeyHex)

	// the loaded session is fully usable
	url, err := loaded.Envelope.Unpack(enc, 2)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/video.mp4", url)
}

func TestLoadSessionErrors(t *testing.T) {
	_, err := LoadSession(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	_, err = UnmarshalSession([]byte("not json"))
	require.Error(t, err)

	_, err = UnmarshalSession([]byte(`{"created":"2024-01-01T00:00:00Z"}`))
	require.Error(t, err)
}

func TestVaultRoundTrip(t *testing.T) {
	sess, _ := testSession(t)
	vault := NewVault(filepath.Join(t.TempDir(), "session.vault"))

	require.False(t, vault.Exists())
	require.NoError(t, vault.SaveSession(sess, []byte("password123")))
	require.True(t, vault.Exists())

	loaded, err := vault.LoadSession([]byte("password123"))
	require.NoError(t, err)
	assert.Equal(t, sess.Envelope, loaded.Envelope)
}

func TestVaultWrongPassword(t *testing.T) {
	sess, _ := testSession(t)
	vault := NewVault(filepath.Join(t.TempDir(), "session.vault"))

	require.NoError(t, vault.SaveSession(sess, []byte("password123")))

	_, err := vault.LoadSession([]byte("wrong"))
	require.Error(t, err)
}

func TestVaultDelete(t *testing.T) {
	sess, _ := testSession(t)
	vault := NewVault(filepath.Join(t.TempDir(), "session.vault"))

	require.NoError(t, vault.SaveSession(sess, []byte("pw")))
	require.NoError(t, vault.Delete())
	assert.False(t, vault.Exists())

	// deleting a missing vault is a no-op
	require.NoError(t, vault.Delete())
}

func TestVaultEmptyPassword(t *testing.T) {
	sess, _ := testSession(t)
	vault := NewVault(filepath.Join(t.TempDir(), "session.vault"))

	require.Error(t, vault.SaveSession(sess, nil))
	_, err := vault.LoadSession(nil)
	require.Error(t, err)
}
