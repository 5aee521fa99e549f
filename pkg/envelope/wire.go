package envelope

import (
	"encoding/json"
	"fmt"
)

// wireEnvelope is the record that crosses the transport. Keys are
// single-letter to keep the payload inside QR capacity.
type wireEnvelope struct {
	K         int      `json:"k"`
	N         int      `json:"n"`
	Shares    []string `json:"s"`
	Print     string   `json:"f"`
	SecretLen int      `json:"l"`
}

// Marshal renders the envelope in its wire format.
func Marshal(e *Envelope) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	return json.Marshal(wireEnvelope{
		K:         e.K,
		N:         e.N,
		Shares:    e.Shares,
		Print:     e.Fingerprint,
		SecretLen: e.SecretLen,
	})
}

// Unmarshal parses wire bytes back into an Envelope and validates its
// structural invariants.
func Unmarshal(data []byte) (*Envelope, error) {
	var w wireEnvelope
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("invalid envelope data: %w", err)
	}

	e := &Envelope{
		K:           w.K,
		N:           w.N,
		Shares:      w.Shares,
		Fingerprint: w.Print,
		SecretLen:   w.SecretLen,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}

	return e, nil
}
