// Package storage persists protection sessions: the envelope, the key that
// opens it, and when it was created. A session file is everything needed to
// re-render the QR code or reveal the URL later.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Charangowdasb/qrmedia/pkg/envelope"
)

// Session is the flat record written to disk. KeyHex is optional: a session
// saved without it can only be opened by supplying the key (or its mnemonic)
// out of band.
type Session struct {
	Envelope *envelope.Envelope `json:"envelope"`
	KeyHex   string             `json:"key_hex,omitempty"`
	Created  time.Time          `json:"created"`
}

// NewSession stamps a session with the current time.
func NewSession(env *envelope.Envelope, keyHex string) *Session {
	return &Session{
		Envelope: env,
		KeyHex:   keyHex,
		Created:  time.Now().UTC(),
	}
}

// Marshal renders the session as a JSON blob.
func (s *Session) Marshal() ([]byte, error) {
	if s.Envelope == nil {
		return nil, fmt.Errorf("session has no envelope")
	}
	if err := s.Envelope.Validate(); err != nil {
		return nil, err
	}
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalSession parses a session blob and validates the envelope inside.
func UnmarshalSession(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid session data: %w", err)
	}
	if s.Envelope == nil {
		return nil, fmt.Errorf("session has no envelope")
	}
	if err := s.Envelope.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveSession writes the session to path with owner-only permissions.
func SaveSession(path string, s *Session) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// LoadSession reads a session back from path.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	return UnmarshalSession(data)
}
