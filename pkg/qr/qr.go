// Package qr moves envelope bytes through QR images. The symbology itself
// is delegated to external tools (qrencode to render, zbarimg to read); this
// package owns only the capacity policy and the process plumbing.
package qr

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

// MaxPayload is the byte capacity of a version 40 QR code at error
// correction level L, the largest symbol the scanner side accepts.
const MaxPayload = 2953

// ErrCapacity is returned before any rendering happens when the payload
// cannot fit a single symbol.
var ErrCapacity = errors.New("payload exceeds QR capacity")

// Codec encodes opaque bytes to a QR image file and back. Implementations
// are external collaborators; the envelope layer only sees []byte.
type Codec interface {
	Encode(data []byte, path string) error
	Decode(path string) ([]byte, error)
	Capacity() int
}

// CommandCodec shells out to qrencode and zbarimg.
type CommandCodec struct {
	// ModuleSize is the pixel size of one QR module (qrencode -s).
	ModuleSize int
	// Format is the qrencode output type: PNG, SVG, ASCII, UTF8.
	Format string

	EncoderPath string
	DecoderPath string
	Logger      *slog.Logger
}

func NewCommandCodec() *CommandCodec {
	return &CommandCodec{
		ModuleSize:  8,
		Format:      "PNG",
		EncoderPath: "qrencode",
		DecoderPath: "zbarimg",
		Logger:      slog.Default(),
	}
}

func (c *CommandCodec) Capacity() int { return MaxPayload }

// Encode writes data as a QR image at path.
func (c *CommandCodec) Encode(data []byte, path string) error {
	if len(data) > MaxPayload {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrCapacity, len(data), MaxPayload)
	}
	if len(data) == 0 {
		return fmt.Errorf("nothing to encode")
	}

	cmd := exec.Command(c.EncoderPath,
		"-s", strconv.Itoa(c.ModuleSize),
		"-t", c.Format,
		"-l", "L",
		"-o", path)
	cmd.Stdin = bytes.NewReader(data)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("qrencode failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	c.Logger.Debug("QR image written", "path", path, "bytes", len(data))
	return nil
}

// Decode reads the QR image at path back into bytes. Returns nil, nil when
// the image contains no recognizable symbol.
func (c *CommandCodec) Decode(path string) ([]byte, error) {
	cmd := exec.Command(c.DecoderPath, "--raw", "-q", "-Sbinary", path)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 4 {
			// zbarimg exit code 4: no symbol found
			return nil, nil
		}
		return nil, fmt.Errorf("zbarimg failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return stdout.Bytes(), nil
}

// Available reports whether the external tools are installed.
func (c *CommandCodec) Available() error {
	if _, err := exec.LookPath(c.EncoderPath); err != nil {
		return fmt.Errorf("%s not found: %w", c.EncoderPath, err)
	}
	if _, err := exec.LookPath(c.DecoderPath); err != nil {
		return fmt.Errorf("%s not found: %w", c.DecoderPath, err)
	}
	return nil
}
