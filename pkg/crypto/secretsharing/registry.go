// Package secretsharing provides a unified interface over the available
// sharing schemes: the prime-field scheme used by the envelope protocol, and
// a byte-oriented GF(256) scheme for callers that want compact binary shares.
package secretsharing

import (
	"fmt"
	"sort"
)

// SchemeType identifies a secret sharing scheme.
type SchemeType string

const (
	// SchemeGFP is the chunked prime-field scheme with decimal point shares.
	SchemeGFP SchemeType = "gfp"
	// SchemeGF256 is byte-wise sharing over GF(2^8) with hex shares.
	SchemeGF256 SchemeType = "gf256"
)

// Scheme splits secrets into transport-safe share strings and back.
// Combine takes the secret's byte length when the scheme needs it to size
// the output; schemes that do not may ignore it.
type Scheme interface {
	Split(secret []byte, threshold, parts int) ([]string, error)
	Combine(shares []string, secretLen int) ([]byte, error)
	Type() SchemeType
}

// Registry maps scheme types to implementations.
type Registry struct {
	schemes map[SchemeType]Scheme
}

func NewRegistry() *Registry {
	return &Registry{schemes: make(map[SchemeType]Scheme)}
}

func (r *Registry) Register(s Scheme) {
	r.schemes[s.Type()] = s
}

func (r *Registry) Get(t SchemeType) (Scheme, error) {
	s, ok := r.schemes[t]
	if !ok {
		return nil, fmt.Errorf("unsupported scheme: %s", t)
	}
	return s, nil
}

func (r *Registry) List() []SchemeType {
	types := make([]SchemeType, 0, len(r.schemes))
	for t := range r.schemes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Default holds the schemes available out of the box.
var Default = NewRegistry()

func init() {
	Default.Register(&GFPScheme{})
	Default.Register(&GF256Scheme{})
}
