// Package encryption provides the share encryptor capability: an
// authenticated cipher over an opaque hex-encoded ciphertext. The envelope
// layer never looks inside the ciphertext; it only moves these strings
// around.
package encryption

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"

	"github.com/Charangowdasb/qrmedia/pkg/secure"
)

const (
	KeySize  = chacha20poly1305.KeySize
	SaltSize = 32

	// PBKDF2 parameters for password-derived keys.
	Iterations = 100000

	// Argon2id parameters for passphrase-derived keys.
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// ErrDecrypt is returned when a ciphertext fails to authenticate: wrong key,
// tampered data, or a string that was never a ciphertext.
var ErrDecrypt = errors.New("decryption failed")

// Encryptor is the capability injected into the envelope layer.
type Encryptor interface {
	Encrypt(plaintext []byte) (string, error)
	Decrypt(ciphertext string) ([]byte, error)
}

// Manager is a ChaCha20-Poly1305 Encryptor bound to a single key. The key
// lives in a wipeable buffer; call Destroy when the Manager is done.
type Manager struct {
	aead cipher.AEAD
	key  *secure.Buffer
}

// NewManager creates a Manager with a freshly generated random key.
func NewManager() (*Manager, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return NewManagerWithKey(key)
}

// NewManagerWithKey creates a Manager from an existing 32-byte key.
func NewManagerWithKey(key []byte) (*Manager, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d", KeySize, len(key))
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	return &Manager{aead: aead, key: secure.NewBuffer(key)}, nil
}

// NewManagerFromHex creates a Manager from a hex-encoded key, the form keys
// take in session files.
func NewManagerFromHex(keyHex string) (*Manager, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid hex key: %w", err)
	}
	return NewManagerWithKey(key)
}

// Key returns a copy of the key; the caller owns it.
func (m *Manager) Key() []byte {
	return m.key.Bytes()
}

// KeyHex returns the key hex-encoded.
func (m *Manager) KeyHex() string {
	key := m.key.Bytes()
	defer secure.Zero(key)
	return hex.EncodeToString(key)
}

// Destroy wipes the key material. The Manager must not be used afterwards.
func (m *Manager) Destroy() {
	m.key.Destroy()
}

// Encrypt seals plaintext under a random nonce and returns
// hex(nonce || ciphertext).
func (m *Manager) Encrypt(plaintext []byte) (string, error) {
	nonce := make([]byte, m.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := m.aead.Seal(nonce, nonce, plaintext, nil)
	return hex.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Any authentication failure surfaces as
// ErrDecrypt.
func (m *Manager) Decrypt(ciphertext string) ([]byte, error) {
	raw, err := hex.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: ciphertext is not hex", ErrDecrypt)
	}

	if len(raw) < m.aead.NonceSize() {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecrypt)
	}

	nonce, sealed := raw[:m.aead.NonceSize()], raw[m.aead.NonceSize():]
	plaintext, err := m.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}

	return plaintext, nil
}

// KeyFromPassword derives a key with PBKDF2-SHA256. A nil salt generates a
// fresh one; the salt used is always returned so it can be stored.
func KeyFromPassword(password, salt []byte) (key, usedSalt []byte, err error) {
	if len(password) == 0 {
		return nil, nil, fmt.Errorf("password cannot be empty")
	}

	if salt == nil {
		salt = make([]byte, SaltSize)
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return nil, nil, fmt.Errorf("failed to generate salt: %w", err)
		}
	}

	return pbkdf2.Key(password, salt, Iterations, KeySize, sha256.New), salt, nil
}

// KeyFromPassphrase derives a key with Argon2id, the memory-hard option for
// interactive use.
func KeyFromPassphrase(passphrase string, salt []byte) (key, usedSalt []byte, err error) {
	if passphrase == "" {
		return nil, nil, fmt.Errorf("passphrase cannot be empty")
	}

	if salt == nil {
		salt = make([]byte, SaltSize)
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return nil, nil, fmt.Errorf("failed to generate salt: %w", err)
		}
	}

	return argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, KeySize), salt, nil
}
