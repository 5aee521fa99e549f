// Package envelope implements the transport protocol object that binds
// threshold metadata, per-share ciphertexts and an integrity fingerprint.
//
// The fingerprint is load-bearing: Lagrange interpolation produces an answer
// for any share count, so the hash comparison in Unpack is the only check
// that distinguishes a genuine reconstruction from noise.
package envelope

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/Charangowdasb/qrmedia/pkg/crypto/encryption"
	"github.com/Charangowdasb/qrmedia/pkg/crypto/shamir"
	"github.com/Charangowdasb/qrmedia/pkg/secure"
)

// ErrIntegrity is returned when the reconstructed secret does not hash to
// the stored fingerprint. This is the signal for wrong or too few shares.
var ErrIntegrity = errors.New("fingerprint mismatch")

// Envelope binds everything a holder needs to attempt reconstruction.
// Instances are immutable after Pack; reconstruction never mutates them.
type Envelope struct {
	K           int
	N           int
	Shares      []string // encrypted serialized shares, length N
	Fingerprint string   // hex SHA-256 of the secret
	SecretLen   int      // exact byte length, fixes the final chunk width
}

// Pack splits the secret, serializes and encrypts each share independently,
// and seals the result with a fingerprint of the plaintext. The plaintext
// itself is never stored.
func Pack(secret string, k, n int, enc encryption.Encryptor, splitter *shamir.Splitter) (*Envelope, error) {
	if splitter == nil {
		splitter = shamir.NewSplitter()
	}

	shares, err := splitter.Split([]byte(secret), shamir.Config{Threshold: k, Parts: n})
	if err != nil {
		return nil, err
	}

	encrypted := make([]string, len(shares))
	for i, share := range shares {
		ct, err := enc.Encrypt([]byte(share.Encode()))
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt share %d: %w", share.Index, err)
		}
		encrypted[i] = ct
	}

	return &Envelope{
		K:           k,
		N:           n,
		Shares:      encrypted,
		Fingerprint: Fingerprint([]byte(secret)),
		SecretLen:   len(secret),
	}, nil
}

// Unpack decrypts the first useCount shares, reconstructs the secret and
// verifies it against the fingerprint. useCount below K is rejected here
// because the math alone cannot reject it.
func (e *Envelope) Unpack(dec encryption.Encryptor, useCount int) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	if useCount < e.K {
		return "", fmt.Errorf("%w: need at least %d shares, requested %d", shamir.ErrThreshold, e.K, useCount)
	}
	if useCount > e.N {
		return "", fmt.Errorf("%w: only %d shares exist, requested %d", shamir.ErrThreshold, e.N, useCount)
	}

	selected := make([]shamir.Share, 0, useCount)
	for _, ct := range e.Shares[:useCount] {
		plain, err := dec.Decrypt(ct)
		if err != nil {
			return "", err
		}

		share, err := shamir.DecodeShare(string(plain))
		if err != nil {
			return "", err
		}
		selected = append(selected, share)
	}

	secret, err := shamir.Combine(selected, e.SecretLen)
	if err != nil {
		return "", err
	}

	if !secure.Compare([]byte(Fingerprint(secret)), []byte(e.Fingerprint)) {
		return "", fmt.Errorf("%w: reconstructed secret does not match envelope fingerprint", ErrIntegrity)
	}

	return string(secret), nil
}

// Validate checks the structural invariants of a received envelope.
func (e *Envelope) Validate() error {
	if e.K < 2 || e.K > e.N {
		return fmt.Errorf("%w: k=%d, n=%d", shamir.ErrThreshold, e.K, e.N)
	}
	if len(e.Shares) != e.N {
		return fmt.Errorf("envelope carries %d shares, header says %d", len(e.Shares), e.N)
	}
	if e.Fingerprint == "" {
		return fmt.Errorf("envelope has no fingerprint")
	}
	if e.SecretLen <= 0 {
		return fmt.Errorf("envelope has no recorded secret length")
	}
	return nil
}

// Fingerprint computes the one-way integrity value stored in the envelope.
func Fingerprint(secret []byte) string {
	sum := sha256.Sum256(secret)
	return hex.EncodeToString(sum[:])
}
