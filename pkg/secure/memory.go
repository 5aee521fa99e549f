// Package secure holds small helpers for handling key material and
// fingerprints: wiping buffers and comparing digests in constant time.
package secure

import (
	"crypto/subtle"
	"runtime"
	"sync"
)

// Zero overwrites b with zero bytes.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// Compare reports whether a and b are equal without leaking the position of
// the first difference.
func Compare(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Buffer is a wipeable byte container for keys that outlive a single call.
type Buffer struct {
	mu   sync.RWMutex
	data []byte
}

func NewBuffer(data []byte) *Buffer {
	b := &Buffer{data: make([]byte, len(data))}
	copy(b.data, data)
	return b
}

// Bytes returns a copy; the caller owns it and should Zero it when done.
func (b *Buffer) Bytes() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data)
}

// Destroy wipes the underlying storage. The buffer is unusable afterwards.
func (b *Buffer) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	Zero(b.data)
	b.data = nil
}
