package shamir

import (
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/Charangowdasb/qrmedia/pkg/crypto/gf"
)

// Combine rebuilds the secret from shares by Lagrange interpolation at x=0,
// chunk by chunk. secretLen is the byte length recorded at split time; it
// fixes the width of every chunk so that leading zero bytes survive the
// round trip. Passing secretLen == 0 renders each chunk at its minimal
// width, which is only useful when probing the raw math.
//
// The computation is identical for any number of shares >= 2. Fewer than
// threshold shares still produce output; it is simply a point on the wrong
// polynomial. Telling those apart is the envelope fingerprint's job, not
// this function's.
func Combine(shares []Share, secretLen int) ([]byte, error) {
	if len(shares) < 2 {
		return nil, fmt.Errorf("%w: at least 2 shares are required, got %d", ErrInsufficientData, len(shares))
	}

	numChunks := len(shares[0].Points)
	if numChunks == 0 {
		return nil, fmt.Errorf("%w: share %d has no points", ErrInsufficientData, shares[0].Index)
	}
	for _, share := range shares[1:] {
		if len(share.Points) != numChunks {
			return nil, fmt.Errorf("%w: share %d has %d chunks, expected %d",
				ErrChunkMismatch, share.Index, len(share.Points), numChunks)
		}
	}

	if secretLen > 0 {
		expected := (secretLen + ChunkSize - 1) / ChunkSize
		if expected != numChunks {
			return nil, fmt.Errorf("%w: %d chunks cannot hold a %d-byte secret",
				ErrReconstruction, numChunks, secretLen)
		}
	}

	secret := make([]byte, 0, numChunks*ChunkSize)
	for j := 0; j < numChunks; j++ {
		points := make([]Point, len(shares))
		for i, share := range shares {
			points[i] = share.Points[j]
		}

		value, err := interpolateAtZero(points)
		if err != nil {
			return nil, err
		}

		chunk, err := renderChunk(value, chunkWidth(j, numChunks, secretLen))
		if err != nil {
			return nil, err
		}
		secret = append(secret, chunk...)
	}

	if !utf8.Valid(secret) {
		return nil, fmt.Errorf("%w: recovered bytes are not valid UTF-8", ErrReconstruction)
	}

	return secret, nil
}

// interpolateAtZero evaluates the interpolation polynomial through points at
// x=0, recovering the constant term.
func interpolateAtZero(points []Point) (*big.Int, error) {
	result := big.NewInt(0)

	for i, pi := range points {
		num := big.NewInt(1)
		den := big.NewInt(1)

		for m, pm := range points {
			if m == i {
				continue
			}
			num = gf.Mul(num, gf.Sub(big.NewInt(0), pm.X))
			den = gf.Mul(den, gf.Sub(pi.X, pm.X))
		}

		invDen, err := gf.Inverse(den)
		if err != nil {
			return nil, fmt.Errorf("lagrange denominator for x=%s: %w", pi.X, err)
		}

		result = gf.Add(result, gf.Mul(pi.Y, gf.Mul(num, invDen)))
	}

	return result, nil
}

// chunkWidth returns the byte width of chunk j: ChunkSize for all but the
// final chunk, whose exact length follows from the recorded secret length.
// Width 0 means unknown.
func chunkWidth(j, numChunks, secretLen int) int {
	if secretLen <= 0 {
		return 0
	}
	if j < numChunks-1 {
		return ChunkSize
	}
	return secretLen - ChunkSize*(numChunks-1)
}

func renderChunk(value *big.Int, width int) ([]byte, error) {
	if width <= 0 {
		// No recorded width; minimal big-endian rendering.
		if value.Sign() == 0 {
			return []byte{0}, nil
		}
		return value.Bytes(), nil
	}

	if (value.BitLen()+7)/8 > width {
		// The interpolation produced a value wider than the slot recorded at
		// split time: the supplied shares do not describe this secret.
		return nil, fmt.Errorf("%w: recovered chunk does not fit its recorded %d-byte width",
			ErrReconstruction, width)
	}

	out := make([]byte, width)
	value.FillBytes(out)
	return out, nil
}
