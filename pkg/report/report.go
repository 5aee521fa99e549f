// Package report renders a markdown summary of a protection session and its
// verification outcome, suitable for archiving next to the QR image.
package report

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/Charangowdasb/qrmedia/pkg/envelope"
)

// Verification is the input to the report: the envelope under test and what
// happened when reconstruction was attempted.
type Verification struct {
	GeneratedAt   time.Time
	Envelope      *envelope.Envelope
	WireBytes     int
	SharesUsed    int
	Reconstructed bool
	FailureReason string
}

// NewVerification captures a verification run against env.
func NewVerification(env *envelope.Envelope, wireBytes, sharesUsed int, err error) Verification {
	v := Verification{
		GeneratedAt:   time.Now().UTC(),
		Envelope:      env,
		WireBytes:     wireBytes,
		SharesUsed:    sharesUsed,
		Reconstructed: err == nil,
	}
	if err != nil {
		v.FailureReason = err.Error()
	}
	return v
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"add": func(a, b int) int { return a + b },
}).Parse(`# Protection Session Report

Generated: {{.GeneratedAt.Format "2006-01-02 15:04:05 UTC"}}

## Threshold Parameters

| Parameter | Value |
|-----------|-------|
| Total shares (n) | {{.Envelope.N}} |
| Required shares (k) | {{.Envelope.K}} |
| Secret length | {{.Envelope.SecretLen}} bytes |
| Wire payload | {{.WireBytes}} bytes |

## Shares

{{range $i, $s := .Envelope.Shares}}- Share {{add $i 1}}: {{len $s}} ciphertext characters
{{end}}
## Integrity

Fingerprint (SHA-256): ` + "`{{.Envelope.Fingerprint}}`" + `

## Verification

{{if .Reconstructed}}Reconstruction with {{.SharesUsed}} of {{.Envelope.N}} shares succeeded and matched the fingerprint.
{{else}}Reconstruction with {{.SharesUsed}} of {{.Envelope.N}} shares FAILED: {{.FailureReason}}
{{end}}`))

// Write renders the report as markdown.
func Write(w io.Writer, v Verification) error {
	if v.Envelope == nil {
		return fmt.Errorf("verification has no envelope")
	}
	return reportTemplate.Execute(w, v)
}
