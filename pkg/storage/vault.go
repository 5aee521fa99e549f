package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Charangowdasb/qrmedia/pkg/crypto/encryption"
	"github.com/Charangowdasb/qrmedia/pkg/secure"
)

const nonceSize = 12

// Vault stores a session file encrypted at rest under a password. A session
// carries the envelope key, so leaving it in plaintext would defeat the
// point of encrypting the shares.
type Vault struct {
	path string
}

type vaultRecord struct {
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

func NewVault(path string) *Vault {
	return &Vault{path: path}
}

// SaveSession encrypts the session under password and writes it to disk.
func (v *Vault) SaveSession(s *Session, password []byte) error {
	if len(password) == 0 {
		return fmt.Errorf("password cannot be empty")
	}

	data, err := s.Marshal()
	if err != nil {
		return err
	}

	key, salt, err := encryption.KeyFromPassword(password, nil)
	if err != nil {
		return err
	}
	defer secure.Zero(key)

	gcm, err := newGCM(key)
	if err != nil {
		return err
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	record := vaultRecord{
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: gcm.Seal(nil, nonce, data, nil),
	}

	blob, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal vault record: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(v.path), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(v.path, blob, 0600); err != nil {
		return fmt.Errorf("failed to write vault: %w", err)
	}
	return nil
}

// LoadSession decrypts and parses the stored session.
func (v *Vault) LoadSession(password []byte) (*Session, error) {
	if len(password) == 0 {
		return nil, fmt.Errorf("password cannot be empty")
	}

	blob, err := os.ReadFile(v.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vault: %w", err)
	}

	var record vaultRecord
	if err := json.Unmarshal(blob, &record); err != nil {
		return nil, fmt.Errorf("failed to parse vault record: %w", err)
	}

	key, _, err := encryption.KeyFromPassword(password, record.Salt)
	if err != nil {
		return nil, err
	}
	defer secure.Zero(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	data, err := gcm.Open(nil, record.Nonce, record.Ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt vault: %w", err)
	}

	return UnmarshalSession(data)
}

func (v *Vault) Exists() bool {
	_, err := os.Stat(v.path)
	return err == nil
}

// Delete overwrites the vault file with random bytes before removing it.
func (v *Vault) Delete() error {
	if !v.Exists() {
		return nil
	}

	info, err := os.Stat(v.path)
	if err != nil {
		return fmt.Errorf("failed to stat vault: %w", err)
	}

	junk := make([]byte, info.Size())
	if _, err := rand.Read(junk); err != nil {
		return fmt.Errorf("failed to generate overwrite data: %w", err)
	}
	if err := os.WriteFile(v.path, junk, 0600); err != nil {
		return fmt.Errorf("failed to overwrite vault: %w", err)
	}

	return os.Remove(v.path)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}
