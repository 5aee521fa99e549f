// Package mnemonic backs up envelope encryption keys as BIP39 word phrases,
// and derives per-envelope subkeys from a single backup phrase so that one
// set of words covers any number of envelopes.
package mnemonic

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
)

// FromKey encodes a 32-byte envelope key as a 24-word phrase. The words are
// the key; anyone holding them holds the key.
func FromKey(key []byte) (string, error) {
	if len(key) != 32 {
		return "", fmt.Errorf("key must be 32 bytes, got %d", len(key))
	}

	words, err := bip39.NewMnemonic(key)
	if err != nil {
		return "", fmt.Errorf("failed to encode key: %w", err)
	}
	return words, nil
}

// ToKey decodes a 24-word phrase back into the 32-byte key it encodes.
func ToKey(words string) ([]byte, error) {
	words = normalize(words)
	if !bip39.IsMnemonicValid(words) {
		return nil, fmt.Errorf("invalid mnemonic phrase")
	}

	key, err := bip39.EntropyFromMnemonic(words)
	if err != nil {
		return nil, fmt.Errorf("failed to decode mnemonic: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("mnemonic encodes %d bytes, expected a 32-byte key (24 words)", len(key))
	}
	return key, nil
}

// Keyring derives envelope keys from a backup phrase.
type Keyring struct {
	master *bip32.Key
}

// NewKeyring builds a keyring from a phrase and optional passphrase. With a
// passphrase, the same words yield entirely different keys.
func NewKeyring(words, passphrase string) (*Keyring, error) {
	words = normalize(words)
	if !bip39.IsMnemonicValid(words) {
		return nil, fmt.Errorf("invalid mnemonic phrase")
	}

	seed := bip39.NewSeed(words, passphrase)
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("failed to derive master key: %w", err)
	}

	return &Keyring{master: master}, nil
}

// Generate creates a fresh random phrase suitable for NewKeyring.
func Generate() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}

	words, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return words, nil
}

// EnvelopeKey derives the 32-byte key for the envelope at the given index.
// Derivation is hardened, so one leaked envelope key does not expose its
// siblings or the phrase.
func (k *Keyring) EnvelopeKey(index uint32) ([]byte, error) {
	child, err := k.master.NewChildKey(bip32.FirstHardenedChild + index)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key %d: %w", index, err)
	}

	key := make([]byte, len(child.Key))
	copy(key, child.Key)
	return key, nil
}

func normalize(words string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(words))), " ")
}
