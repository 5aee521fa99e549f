package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Charangowdasb/qrmedia/pkg/crypto/encryption"
	"github.com/Charangowdasb/qrmedia/pkg/envelope"
)

func testEnvelope(t *testing.T) *envelope.Envelope {
	t.Helper()
	enc, err := encryption.NewManager()
	require.NoError(t, err)
	env, err := envelope.Pack("https://example.com/video.mp4", 2, 3, enc, nil)
	require.NoError(t, err)
	return env
}

func TestWriteSuccessReport(t *testing.T) {
	env := testEnvelope(t)

	var b strings.Builder
	err := Write(&b, NewVerification(env, 1200, 2, nil))
	require.NoError(t, err)

	out := b.String()
	assert.Contains(t, out, "# Protection Session Report")
	assert.Contains(t, out, "| Total shares (n) | 3 |")
	assert.Contains(t, out, "| Required shares (k) | 2 |")
	assert.Contains(t, out, "Share 1:")
	assert.Contains(t, out, "Share 3:")
	assert.Contains(t, out, env.Fingerprint)
	assert.Contains(t, out, "succeeded and matched the fingerprint")
	assert.NotContains(t, out, "FAILED")
}

func TestWriteFailureReport(t *testing.T) {
	env := testEnvelope(t)

	var b strings.Builder
	err := Write(&b, NewVerification(env, 1200, 2, errors.New("fingerprint mismatch")))
	require.NoError(t, err)

	assert.Contains(t, b.String(), "FAILED: fingerprint mismatch")
}

func TestWriteRequiresEnvelope(t *testing.T) {
	var b strings.Builder
	err := Write(&b, Verification{})
	require.Error(t, err)
}
