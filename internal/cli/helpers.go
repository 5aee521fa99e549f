package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/Charangowdasb/qrmedia/pkg/crypto/encryption"
	"github.com/Charangowdasb/qrmedia/pkg/crypto/mnemonic"
	"github.com/Charangowdasb/qrmedia/pkg/envelope"
	"github.com/Charangowdasb/qrmedia/pkg/qr"
	"github.com/Charangowdasb/qrmedia/pkg/storage"
)

// readHidden reads a line without echoing when stdin is a terminal.
func readHidden(prompt string) (string, error) {
	fmt.Print(prompt)

	if term.IsTerminal(int(syscall.Stdin)) {
		data, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readLine reads a plain line from stdin.
func readLine(prompt string) (string, error) {
	fmt.Print(prompt)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// resolveEncryptor builds the share encryptor from whichever credential the
// user supplied: an explicit hex key, a mnemonic phrase, or the key stored
// in the session.
func resolveEncryptor(keyHex, words, sessionKeyHex string) (*encryption.Manager, error) {
	switch {
	case keyHex != "":
		return encryption.NewManagerFromHex(keyHex)
	case words != "":
		key, err := mnemonic.ToKey(words)
		if err != nil {
			return nil, err
		}
		return encryption.NewManagerWithKey(key)
	case sessionKeyHex != "":
		return encryption.NewManagerFromHex(sessionKeyHex)
	default:
		return nil, fmt.Errorf("no key available: pass --key or --words, or use a session that stores one")
	}
}

// loadEnvelope reads an envelope from a QR image or a session file,
// whichever was given. Returns the envelope plus the session key hex when a
// session supplied one.
func loadEnvelope(imagePath, sessionPath string) (*envelope.Envelope, string, error) {
	switch {
	case imagePath != "":
		codec := qr.NewCommandCodec()
		data, err := codec.Decode(imagePath)
		if err != nil {
			return nil, "", err
		}
		if data == nil {
			return nil, "", fmt.Errorf("no QR code found in %s", imagePath)
		}
		env, err := envelope.Unmarshal(data)
		return env, "", err
	case sessionPath != "":
		sess, err := storage.LoadSession(sessionPath)
		if err != nil {
			return nil, "", err
		}
		return sess.Envelope, sess.KeyHex, nil
	default:
		return nil, "", fmt.Errorf("either --image or --session is required")
	}
}

func printEnvelopeSummary(env *envelope.Envelope) {
	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Println("Envelope:")
	fmt.Printf("  Shares:      %d total, %d required\n", env.N, env.K)
	fmt.Printf("  Secret:      %d bytes\n", env.SecretLen)
	fmt.Printf("  Fingerprint: %s\n", env.Fingerprint)
}
