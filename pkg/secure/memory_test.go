package secure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	Zero(b)
	assert.Equal(t, []byte{0, 0, 0, 0}, b)
}

func TestCompare(t *testing.T) {
	assert.True(t, Compare([]byte("abc"), []byte("abc")))
	assert.False(t, Compare([]byte("abc"), []byte("abd")))
	assert.False(t, Compare([]byte("abc"), []byte("abcd")))
	assert.True(t, Compare(nil, nil))
}

func TestBuffer(t *testing.T) {
	src := []byte("key material")
	b := NewBuffer(src)

	// buffer is a copy, not an alias
	src[0] = 'X'
	assert.Equal(t, []byte("key material"), b.Bytes())
	assert.Equal(t, 12, b.Len())

	out := b.Bytes()
	out[0] = 'Y'
	assert.Equal(t, []byte("key material"), b.Bytes())

	b.Destroy()
	assert.Equal(t, 0, b.Len())
}
