package shamir

import "errors"

var (
	// ErrThreshold is returned for invalid (threshold, parts) combinations,
	// and by the envelope layer when too few shares are selected.
	ErrThreshold = errors.New("invalid threshold parameters")

	// ErrShareFormat is returned when a serialized share does not parse.
	ErrShareFormat = errors.New("malformed share")

	// ErrChunkMismatch is returned when shares disagree on chunk count,
	// which means shares from different secrets were mixed.
	ErrChunkMismatch = errors.New("shares disagree on chunk count")

	// ErrInsufficientData is returned when fewer than two shares, or shares
	// without any points, are handed to the reconstructor.
	ErrInsufficientData = errors.New("insufficient share data")

	// ErrReconstruction is returned when recovered bytes cannot represent
	// the original secret. This is the usual symptom of combining fewer
	// than threshold shares.
	ErrReconstruction = errors.New("reconstruction failed")
)
