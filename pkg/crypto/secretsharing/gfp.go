package secretsharing

import (
	"github.com/Charangowdasb/qrmedia/pkg/crypto/shamir"
)

// GFPScheme adapts the prime-field engine to the Scheme interface.
type GFPScheme struct {
	// Splitter overrides the default splitter; nil uses crypto/rand.
	Splitter *shamir.Splitter
}

func (s *GFPScheme) Type() SchemeType { return SchemeGFP }

func (s *GFPScheme) Split(secret []byte, threshold, parts int) ([]string, error) {
	splitter := s.Splitter
	if splitter == nil {
		splitter = shamir.NewSplitter()
	}

	shares, err := splitter.Split(secret, shamir.Config{Threshold: threshold, Parts: parts})
	if err != nil {
		return nil, err
	}

	encoded := make([]string, len(shares))
	for i, share := range shares {
		encoded[i] = share.Encode()
	}
	return encoded, nil
}

func (s *GFPScheme) Combine(shares []string, secretLen int) ([]byte, error) {
	decoded := make([]shamir.Share, len(shares))
	for i, raw := range shares {
		share, err := shamir.DecodeShare(raw)
		if err != nil {
			return nil, err
		}
		decoded[i] = share
	}

	return shamir.Combine(decoded, secretLen)
}
