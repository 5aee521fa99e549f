// Package shamir implements threshold secret sharing over a 256-bit prime
// field. A secret is cut into 16-byte chunks; each chunk becomes the constant
// term of a fresh random polynomial of degree threshold-1, and share i holds
// the evaluations of every chunk polynomial at x=i.
package shamir

import (
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"math/big"

	"github.com/Charangowdasb/qrmedia/pkg/crypto/gf"
)

// ChunkSize is the number of secret bytes covered by one polynomial.
// 128 bits stays well below the 256-bit field modulus, so every chunk
// integer is a valid field element.
const ChunkSize = 16

// MaxParts bounds the number of shares; x-coordinates are small positive
// integers and there is no reason to allow more.
const MaxParts = 255

type Config struct {
	Threshold int
	Parts     int
}

func (c Config) Validate() error {
	if c.Threshold < 2 {
		return fmt.Errorf("%w: threshold must be at least 2, got %d", ErrThreshold, c.Threshold)
	}
	if c.Threshold > c.Parts {
		return fmt.Errorf("%w: threshold (%d) cannot exceed parts (%d)", ErrThreshold, c.Threshold, c.Parts)
	}
	if c.Parts > MaxParts {
		return fmt.Errorf("%w: parts cannot exceed %d, got %d", ErrThreshold, MaxParts, c.Parts)
	}
	return nil
}

// Splitter generates shares. Randomness and logging are injected so tests
// can substitute a deterministic reader; Rand must be cryptographically
// secure in production.
type Splitter struct {
	Rand   io.Reader
	Logger *slog.Logger
}

func NewSplitter() *Splitter {
	return &Splitter{
		Rand:   rand.Reader,
		Logger: slog.Default(),
	}
}

// Split cuts secret into chunks and returns cfg.Parts shares, any
// cfg.Threshold of which reconstruct it. Coefficients are drawn fresh on
// every call; two splits of the same secret share nothing but the secret.
func (s *Splitter) Split(secret []byte, cfg Config) ([]Share, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("secret cannot be empty")
	}

	chunks := chunkSecret(secret)

	shares := make([]Share, cfg.Parts)
	for i := range shares {
		shares[i] = Share{
			Index:  i + 1,
			Points: make([]Point, 0, len(chunks)),
		}
	}

	for _, chunk := range chunks {
		coeffs, err := s.randomPolynomial(chunk, cfg.Threshold)
		if err != nil {
			return nil, err
		}

		for i := range shares {
			x := big.NewInt(int64(i + 1))
			shares[i].Points = append(shares[i].Points, Point{
				X: x,
				Y: evaluate(coeffs, x),
			})
		}
	}

	s.Logger.Debug("secret split into shares",
		"parts", cfg.Parts,
		"threshold", cfg.Threshold,
		"chunks", len(chunks))

	return shares, nil
}

// Split is the package-level convenience using crypto/rand and the default
// logger.
func Split(secret []byte, cfg Config) ([]Share, error) {
	return NewSplitter().Split(secret, cfg)
}

// randomPolynomial builds [constant, a1 .. a(k-1)] with the tail drawn
// uniformly from the field.
func (s *Splitter) randomPolynomial(constant *big.Int, threshold int) ([]*big.Int, error) {
	coeffs := make([]*big.Int, threshold)
	coeffs[0] = constant

	for i := 1; i < threshold; i++ {
		c, err := rand.Int(s.Rand, gf.P)
		if err != nil {
			return nil, fmt.Errorf("failed to generate random coefficient: %w", err)
		}
		coeffs[i] = c
	}

	return coeffs, nil
}

// evaluate computes the polynomial at x with Horner's method under field
// arithmetic.
func evaluate(coeffs []*big.Int, x *big.Int) *big.Int {
	result := big.NewInt(0)
	for i := len(coeffs) - 1; i >= 0; i-- {
		result = gf.Add(gf.Mul(result, x), coeffs[i])
	}
	return result
}

// chunkSecret partitions the secret into ChunkSize-byte big-endian integers;
// the final chunk may be shorter.
func chunkSecret(secret []byte) []*big.Int {
	chunks := make([]*big.Int, 0, (len(secret)+ChunkSize-1)/ChunkSize)
	for i := 0; i < len(secret); i += ChunkSize {
		end := i + ChunkSize
		if end > len(secret) {
			end = len(secret)
		}
		chunks = append(chunks, new(big.Int).SetBytes(secret[i:end]))
	}
	return chunks
}
