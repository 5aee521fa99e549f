package media

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandPlayerValidation(t *testing.T) {
	p := NewCommandPlayer("")
	require.Error(t, p.Play("https://example.com/video.mp4"))

	p = NewCommandPlayer("definitely-not-a-real-player")
	require.Error(t, p.Play("https://example.com/video.mp4"))
}

func TestCommandPlayerLaunches(t *testing.T) {
	// "true" exists on any POSIX system and exits immediately
	p := NewCommandPlayer("true")
	if err := p.Play("https://example.com/video.mp4"); err != nil {
		t.Skipf("no 'true' binary available: %v", err)
	}
}
