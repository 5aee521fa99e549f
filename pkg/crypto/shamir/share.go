package shamir

import (
	"fmt"
	"math/big"
	"strings"
)

// Point is a single polynomial evaluation (x, y) over the field.
type Point struct {
	X *big.Int
	Y *big.Int
}

// Share holds one evaluation point per chunk of the secret, all at the same
// x-coordinate. Shares are positionally aligned: point j of every share
// belongs to chunk j.
type Share struct {
	Index  int
	Points []Point
}

// Encode renders the share as comma-separated "x:y" decimal pairs in chunk
// order, e.g. "1:482910,1:88213".
func (s Share) Encode() string {
	var b strings.Builder
	for i, p := range s.Points {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.X.String())
		b.WriteByte(':')
		b.WriteString(p.Y.String())
	}
	return b.String()
}

// DecodeShare parses the "x:y,x:y" form back into a Share. Parsing is
// strict: any token that is not a pair of decimal integers fails with
// ErrShareFormat naming the token.
func DecodeShare(raw string) (Share, error) {
	if strings.TrimSpace(raw) == "" {
		return Share{}, fmt.Errorf("%w: empty input", ErrShareFormat)
	}

	tokens := strings.Split(raw, ",")
	points := make([]Point, 0, len(tokens))

	for _, token := range tokens {
		parts := strings.Split(token, ":")
		if len(parts) != 2 {
			return Share{}, fmt.Errorf("%w: token %q is not an x:y pair", ErrShareFormat, token)
		}

		x, ok := new(big.Int).SetString(parts[0], 10)
		if !ok {
			return Share{}, fmt.Errorf("%w: token %q has non-integer x", ErrShareFormat, token)
		}

		y, ok := new(big.Int).SetString(parts[1], 10)
		if !ok {
			return Share{}, fmt.Errorf("%w: token %q has non-integer y", ErrShareFormat, token)
		}

		points = append(points, Point{X: x, Y: y})
	}

	// Every point of a share sits at the same x-coordinate; a mix means the
	// tokens came from different shares.
	for _, p := range points[1:] {
		if p.X.Cmp(points[0].X) != 0 {
			return Share{}, fmt.Errorf("%w: mixed x-coordinates %s and %s",
				ErrShareFormat, points[0].X, p.X)
		}
	}

	share := Share{Points: points}
	if points[0].X.IsInt64() {
		share.Index = int(points[0].X.Int64())
	}

	return share, nil
}
