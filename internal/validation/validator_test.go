package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMediaURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		ok   bool
	}{
		{name: "plain https", url: "https://example.com/video.mp4", ok: true},
		{name: "plain http", url: "http://example.com/video.mp4", ok: true},
		{name: "stream playlist", url: "https://cdn.example.org/live/channel.m3u8", ok: true},
		{name: "too short", url: "http://a"},
		{name: "too long", url: "https://example.com/" + strings.Repeat("x", 1000)},
		{name: "wrong scheme", url: "ftp://example.com/video.mp4"},
		{name: "no scheme", url: "example.com/video.mp4"},
		{name: "no host", url: "https:///video.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMediaURL(tt.url, 10, 1000)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestHasMediaExtension(t *testing.T) {
	exts := []string{".mp4", ".m3u8", ".mp3"}

	assert.True(t, HasMediaExtension("https://example.com/clip.mp4", exts))
	assert.True(t, HasMediaExtension("https://example.com/clip.MP4?token=abc", exts))
	assert.False(t, HasMediaExtension("https://example.com/page.html", exts))
	assert.False(t, HasMediaExtension("https://example.com/stream", exts))
}

func TestValidateSplitParams(t *testing.T) {
	assert.NoError(t, ValidateSplitParams(2, 3))
	assert.NoError(t, ValidateSplitParams(2, 2))
	assert.Error(t, ValidateSplitParams(1, 3))
	assert.Error(t, ValidateSplitParams(4, 3))
	assert.Error(t, ValidateSplitParams(2, 1))
	assert.Error(t, ValidateSplitParams(2, 256))
}
