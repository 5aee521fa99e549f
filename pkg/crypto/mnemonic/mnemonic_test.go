package mnemonic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"

	"github.com/Charangowdasb/qrmedia/pkg/crypto/encryption"
)

func TestKeyPhraseRoundTrip(t *testing.T) {
	m, err := encryption.NewManager()
	require.NoError(t, err)

	words, err := FromKey(m.Key())
	require.NoError(t, err)
	assert.Len(t, strings.Fields(words), 24)

	key, err := ToKey(words)
	require.NoError(t, err)
	assert.Equal(t, m.Key(), key)

	// restored key decrypts what the original encrypted
	restored, err := encryption.NewManagerWithKey(key)
	require.NoError(t, err)

	ct, err := m.Encrypt([]byte("1:42,1:43"))
	require.NoError(t, err)
	pt, err := restored.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, []byte("1:42,1:43"), pt)
}

func TestToKeyNormalizesWhitespaceAndCase(t *testing.T) {
	m, err := encryption.NewManager()
	require.NoError(t, err)

	words, err := FromKey(m.Key())
	require.NoError(t, err)

	messy := "  " + strings.ToUpper(strings.ReplaceAll(words, " ", "   ")) + "\n"
	key, err := ToKey(messy)
	require.NoError(t, err)
	assert.Equal(t, m.Key(), key)
}

func TestFromKeyRejectsBadLength(t *testing.T) {
	_, err := FromKey(make([]byte, 16))
	require.Error(t, err)
}

func TestToKeyRejectsInvalidPhrases(t *testing.T) {
	_, err := ToKey("definitely not a mnemonic")
	require.Error(t, err)

	// valid 12-word phrase encodes only 16 bytes, not an envelope key
	entropy, err := bip39.NewEntropy(128)
	require.NoError(t, err)
	twelve, err := bip39.NewMnemonic(entropy)
	require.NoError(t, err)
	_, err = ToKey(twelve)
	require.Error(t, err)
}

func TestKeyringDerivation(t *testing.T) {
	words, err := Generate()
	require.NoError(t, err)

	kr1, err := NewKeyring(words, "")
	require.NoError(t, err)
	kr2, err := NewKeyring(words, "")
	require.NoError(t, err)

	k0a, err := kr1.EnvelopeKey(0)
	require.NoError(t, err)
	k0b, err := kr2.EnvelopeKey(0)
	require.NoError(t, err)
	assert.Equal(t, k0a, k0b)
	assert.Len(t, k0a, encryption.KeySize)

	k1, err := kr1.EnvelopeKey(1)
	require.NoError(t, err)
	assert.NotEqual(t, k0a, k1)
}

func TestKeyringPassphraseSeparatesKeys(t *testing.T) {
	words, err := Generate()
	require.NoError(t, err)

	plain, err := NewKeyring(words, "")
	require.NoError(t, err)
	protected, err := NewKeyring(words, "hunter2")
	require.NoError(t, err)

	a, err := plain.EnvelopeKey(0)
	require.NoError(t, err)
	b, err := protected.EnvelopeKey(0)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNewKeyringRejectsInvalidPhrase(t *testing.T) {
	_, err := NewKeyring("not a phrase", "")
	require.Error(t, err)
}
