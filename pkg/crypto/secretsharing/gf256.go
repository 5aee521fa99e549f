package secretsharing

import (
	"encoding/hex"
	"fmt"

	vaultshamir "github.com/hashicorp/vault/shamir"
)

// GF256Scheme shares secrets byte-wise over GF(2^8). Shares are roughly the
// size of the secret itself, which matters when a share has to fit somewhere
// small; the trade-off is that share strings are opaque hex rather than
// inspectable x:y points.
type GF256Scheme struct{}

func (s *GF256Scheme) Type() SchemeType { return SchemeGF256 }

func (s *GF256Scheme) Split(secret []byte, threshold, parts int) ([]string, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("secret cannot be empty")
	}

	raw, err := vaultshamir.Split(secret, parts, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to split secret: %w", err)
	}

	shares := make([]string, len(raw))
	for i, b := range raw {
		shares[i] = hex.EncodeToString(b)
	}
	return shares, nil
}

// Combine reassembles the secret. GF(256) shares carry one byte per secret
// byte, so secretLen is not needed and is ignored.
func (s *GF256Scheme) Combine(shares []string, _ int) ([]byte, error) {
	raw := make([][]byte, len(shares))
	for i, share := range shares {
		b, err := hex.DecodeString(share)
		if err != nil {
			return nil, fmt.Errorf("share %d is not valid hex: %w", i+1, err)
		}
		raw[i] = b
	}

	secret, err := vaultshamir.Combine(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to combine shares: %w", err)
	}
	return secret, nil
}
