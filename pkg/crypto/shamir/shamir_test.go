package shamir

import (
	"bytes"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Charangowdasb/qrmedia/pkg/crypto/gf"
)

// seqReader is a deterministic byte source standing in for crypto/rand in
// tests that need reproducible coefficients.
type seqReader struct {
	state byte
}

func (r *seqReader) Read(p []byte) (int, error) {
	for i := range p {
		r.state++
		p[i] = r.state
	}
	return len(p), nil
}

func TestSplitAndCombine(t *testing.T) {
	tests := []struct {
		name      string
		secret    []byte
		parts     int
		threshold int
	}{
		{
			name:      "Short URL 3 of 5",
			secret:    []byte("https://example.com/video.mp4"),
			parts:     5,
			threshold: 3,
		},
		{
			name:      "Single chunk 2 of 3",
			secret:    []byte("short"),
			parts:     3,
			threshold: 2,
		},
		{
			name:      "Exact chunk boundary 2 of 4",
			secret:    bytes.Repeat([]byte{'x'}, 32),
			parts:     4,
			threshold: 2,
		},
		{
			name:      "33 bytes across three chunks 4 of 6",
			secret:    bytes.Repeat([]byte{'y'}, 33),
			parts:     6,
			threshold: 4,
		},
		{
			name:      "Long URL 5 of 7",
			secret:    []byte("https://media.example.org/library/2024/concert-recording-fullhd.m3u8"),
			parts:     7,
			threshold: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Threshold: tt.threshold, Parts: tt.parts}

			shares, err := Split(tt.secret, cfg)
			require.NoError(t, err)
			require.Len(t, shares, tt.parts)

			wantChunks := (len(tt.secret) + ChunkSize - 1) / ChunkSize
			for i, share := range shares {
				assert.Equal(t, i+1, share.Index)
				assert.Len(t, share.Points, wantChunks)
				for _, p := range share.Points {
					assert.Equal(t, int64(i+1), p.X.Int64())
					assert.True(t, p.Y.Cmp(gf.P) < 0)
				}
			}

			reconstructed, err := Combine(shares[:tt.threshold], len(tt.secret))
			require.NoError(t, err)
			assert.Equal(t, tt.secret, reconstructed)
		})
	}
}

func TestRoundTripAllThresholds(t *testing.T) {
	secret := []byte("https://example.com/video.mp4")

	for n := 2; n <= 20; n++ {
		for k := 2; k <= n; k++ {
			shares, err := Split(secret, Config{Threshold: k, Parts: n})
			require.NoError(t, err)

			got, err := Combine(shares[:k], len(secret))
			require.NoError(t, err, "k=%d n=%d", k, n)
			require.Equal(t, secret, got, "k=%d n=%d", k, n)
		}
	}
}

func TestOverThresholdStability(t *testing.T) {
	secret := []byte("https://example.com/video.mp4")
	shares, err := Split(secret, Config{Threshold: 3, Parts: 6})
	require.NoError(t, err)

	subsets := [][]int{
		{0, 1, 2},
		{3, 4, 5},
		{5, 2, 0},
		{1, 3, 5},
		{0, 1, 2, 3},
		{5, 4, 3, 2, 1},
		{0, 1, 2, 3, 4, 5},
	}

	for _, idx := range subsets {
		subset := make([]Share, len(idx))
		for i, j := range idx {
			subset[i] = shares[j]
		}

		got, err := Combine(subset, len(secret))
		require.NoError(t, err, "subset %v", idx)
		assert.Equal(t, secret, got, "subset %v", idx)
	}
}

func TestSubThresholdDiverges(t *testing.T) {
	const trials = 1000

	for i := 0; i < trials; i++ {
		secret := make([]byte, 24)
		_, err := rand.Read(secret)
		require.NoError(t, err)
		for j := range secret {
			secret[j] = 'a' + secret[j]%26
		}

		shares, err := Split(secret, Config{Threshold: 3, Parts: 5})
		require.NoError(t, err)

		got, err := Combine(shares[:2], len(secret))
		if err == nil {
			require.NotEqual(t, secret, got, "trial %d accidentally reconstructed the secret", i)
		}
	}
}

func TestFreshCoefficientsEachSplit(t *testing.T) {
	secret := []byte("https://example.com/video.mp4")
	cfg := Config{Threshold: 2, Parts: 3}

	first, err := Split(secret, cfg)
	require.NoError(t, err)
	second, err := Split(secret, cfg)
	require.NoError(t, err)

	assert.NotEqual(t, first[0].Encode(), second[0].Encode())

	a, err := Combine(first[:2], len(secret))
	require.NoError(t, err)
	b, err := Combine(second[:2], len(secret))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestInjectedRandomnessIsDeterministic(t *testing.T) {
	secret := []byte("https://example.com/video.mp4")
	cfg := Config{Threshold: 3, Parts: 5}

	s1 := NewSplitter()
	s1.Rand = &seqReader{}
	s2 := NewSplitter()
	s2.Rand = &seqReader{}

	a, err := s1.Split(secret, cfg)
	require.NoError(t, err)
	b, err := s2.Split(secret, cfg)
	require.NoError(t, err)

	for i := range a {
		assert.Equal(t, a[i].Encode(), b[i].Encode())
	}
}

func TestLeadingZeroChunkBytesPreserved(t *testing.T) {
	// Second chunk starts with a zero byte; width rendering must keep it.
	secret := append(bytes.Repeat([]byte{'a'}, ChunkSize), 0x00, 'b', 'c')

	shares, err := Split(secret, Config{Threshold: 2, Parts: 3})
	require.NoError(t, err)

	got, err := Combine(shares[:2], len(secret))
	require.NoError(t, err)
	assert.Equal(t, secret, got)
	assert.Len(t, got, ChunkSize+3)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{name: "valid 3 of 5", cfg: Config{Threshold: 3, Parts: 5}, ok: true},
		{name: "k equals n", cfg: Config{Threshold: 2, Parts: 2}, ok: true},
		{name: "threshold too small", cfg: Config{Threshold: 1, Parts: 5}},
		{name: "threshold above parts", cfg: Config{Threshold: 6, Parts: 5}},
		{name: "too many parts", cfg: Config{Threshold: 2, Parts: 300}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrThreshold)
			}
		})
	}
}

func TestSplitRejectsEmptySecret(t *testing.T) {
	_, err := Split(nil, Config{Threshold: 2, Parts: 3})
	require.Error(t, err)
}

func TestCombineInputValidation(t *testing.T) {
	secret := []byte("boundary case secret")
	shares, err := Split(secret, Config{Threshold: 2, Parts: 2})
	require.NoError(t, err)

	_, err = Combine(nil, len(secret))
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = Combine(shares[:1], len(secret))
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = Combine([]Share{{Index: 1}, {Index: 2}}, len(secret))
	assert.ErrorIs(t, err, ErrInsufficientData)

	mixed := []Share{shares[0], {Index: 2, Points: shares[1].Points[:1]}}
	_, err = Combine(mixed, len(secret))
	assert.ErrorIs(t, err, ErrChunkMismatch)
}

func TestCombineDuplicateXCoordinates(t *testing.T) {
	secret := []byte("duplicate x secret")
	shares, err := Split(secret, Config{Threshold: 2, Parts: 3})
	require.NoError(t, err)

	_, err = Combine([]Share{shares[0], shares[0]}, len(secret))
	require.ErrorIs(t, err, gf.ErrNoInverse)
}

func TestCombineChunkCountLengthMismatch(t *testing.T) {
	secret := []byte("https://example.com/video.mp4")
	shares, err := Split(secret, Config{Threshold: 2, Parts: 3})
	require.NoError(t, err)

	// Recorded length implies one chunk, shares carry two.
	_, err = Combine(shares[:2], 10)
	require.ErrorIs(t, err, ErrReconstruction)
}

func TestShareCodecRoundTrip(t *testing.T) {
	secret := []byte("https://example.com/some/longer/path/video.mp4")
	shares, err := Split(secret, Config{Threshold: 3, Parts: 5})
	require.NoError(t, err)

	for _, share := range shares {
		decoded, err := DecodeShare(share.Encode())
		require.NoError(t, err)

		assert.Equal(t, share.Index, decoded.Index)
		require.Len(t, decoded.Points, len(share.Points))
		for i := range share.Points {
			assert.Equal(t, 0, share.Points[i].X.Cmp(decoded.Points[i].X))
			assert.Equal(t, 0, share.Points[i].Y.Cmp(decoded.Points[i].Y))
		}
	}
}

func TestDecodeShareMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "no separator", raw: "abc"},
		{name: "missing y component", raw: "1:2,3"},
		{name: "non-integer y", raw: "1:xyz"},
		{name: "non-integer x", raw: "a:2"},
		{name: "extra colon", raw: "1:2:3"},
		{name: "empty", raw: ""},
		{name: "trailing comma", raw: "1:2,"},
		{name: "mixed x-coordinates", raw: "1:5,2:7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeShare(tt.raw)
			assert.ErrorIs(t, err, ErrShareFormat)
		})
	}
}

func TestEncodeFormat(t *testing.T) {
	share := Share{
		Index: 1,
		Points: []Point{
			{X: big.NewInt(1), Y: big.NewInt(482910)},
			{X: big.NewInt(1), Y: big.NewInt(88213)},
		},
	}

	assert.Equal(t, "1:482910,1:88213", share.Encode())
}
