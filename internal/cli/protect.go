package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Charangowdasb/qrmedia/internal/validation"
	"github.com/Charangowdasb/qrmedia/pkg/config"
	"github.com/Charangowdasb/qrmedia/pkg/crypto/encryption"
	"github.com/Charangowdasb/qrmedia/pkg/crypto/mnemonic"
	"github.com/Charangowdasb/qrmedia/pkg/envelope"
	"github.com/Charangowdasb/qrmedia/pkg/qr"
	"github.com/Charangowdasb/qrmedia/pkg/storage"
)

// NewProtectCommand splits a media URL into encrypted shares and renders
// the envelope as a QR code.
func NewProtectCommand() *cobra.Command {
	var (
		mediaURL    string
		threshold   int
		shares      int
		keyHex      string
		outputFile  string
		sessionFile string
		configFile  string
		skipQR      bool
		showWords   bool
	)

	cmd := &cobra.Command{
		Use:   "protect",
		Short: "Split a media URL into encrypted shares inside a QR envelope",
		Long: `Protect splits a media URL with threshold secret sharing, encrypts each
share independently, and packs the result into a transport envelope with an
integrity fingerprint. The envelope is rendered as a QR code and the session
is saved for later reveal.

Any K of the N shares reconstruct the URL; fewer reveal nothing.`,
		Example: `  # 2-of-3 protection with a fresh key
  qrmedia protect --url https://example.com/video.mp4

  # 3-of-5 with explicit output paths
  qrmedia protect --url https://example.com/video.mp4 -k 3 -n 5 \
      -o envelope.png -s session.json

  # reuse an existing key
  qrmedia protect --url https://example.com/video.mp4 --key <hex>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}

			if threshold == 0 {
				threshold = cfg.Defaults.Threshold
			}
			if shares == 0 {
				shares = cfg.Defaults.Shares
			}
			if outputFile == "" {
				outputFile = cfg.QR.OutputPath
			}
			if sessionFile == "" {
				sessionFile = cfg.Storage.SessionPath
			}

			if err := validation.ValidateSplitParams(threshold, shares); err != nil {
				return err
			}

			if mediaURL == "" {
				mediaURL, err = readHidden("Enter media URL: ")
				if err != nil {
					return err
				}
			}
			if err := validation.ValidateMediaURL(mediaURL, cfg.Validation.MinURLLength, cfg.Validation.MaxURLLength); err != nil {
				return err
			}
			if !validation.HasMediaExtension(mediaURL, cfg.Validation.MediaExtensions) {
				color.Yellow("Note: URL has no recognized media extension")
			}

			var enc *encryption.Manager
			if keyHex != "" {
				enc, err = encryption.NewManagerFromHex(keyHex)
			} else {
				enc, err = encryption.NewManager()
			}
			if err != nil {
				return err
			}

			env, err := envelope.Pack(mediaURL, threshold, shares, enc, nil)
			if err != nil {
				return fmt.Errorf("failed to pack envelope: %w", err)
			}

			wire, err := envelope.Marshal(env)
			if err != nil {
				return err
			}

			codec := qr.NewCommandCodec()
			codec.ModuleSize = cfg.QR.ModuleSize
			codec.Format = cfg.QR.Format

			if len(wire) > codec.Capacity() {
				return fmt.Errorf("%w: envelope is %d bytes; reduce share count or URL length",
					qr.ErrCapacity, len(wire))
			}

			if !skipQR {
				if err := codec.Available(); err != nil {
					color.Yellow("Skipping QR image (%v)", err)
				} else if err := codec.Encode(wire, outputFile); err != nil {
					return err
				} else {
					color.Green("✅ QR code written to %s", outputFile)
				}
			}

			session := storage.NewSession(env, enc.KeyHex())
			if cfg.Storage.EncryptAtRest {
				password, err := readHidden("Vault password: ")
				if err != nil {
					return err
				}
				vault := storage.NewVault(sessionFile)
				if err := vault.SaveSession(session, []byte(password)); err != nil {
					return err
				}
				color.Green("✅ Session sealed to %s", sessionFile)
			} else {
				if err := storage.SaveSession(sessionFile, session); err != nil {
					return err
				}
				color.Green("✅ Session saved to %s", sessionFile)
			}

			fmt.Println()
			printEnvelopeSummary(env)
			fmt.Printf("  Wire size:   %d bytes (capacity %d)\n", len(wire), codec.Capacity())

			yellow := color.New(color.FgYellow, color.Bold)
			fmt.Println()
			yellow.Printf("Encryption key: %s\n", enc.KeyHex())

			if showWords {
				words, err := mnemonic.FromKey(enc.Key())
				if err != nil {
					return err
				}
				yellow.Println("Key backup phrase:")
				fmt.Printf("  %s\n", words)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&mediaURL, "url", "u", "", "Media URL to protect")
	cmd.Flags().IntVarP(&threshold, "threshold", "k", 0, "Shares required to reconstruct (default from config)")
	cmd.Flags().IntVarP(&shares, "shares", "n", 0, "Total shares to generate (default from config)")
	cmd.Flags().StringVar(&keyHex, "key", "", "Reuse an existing hex encryption key")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "QR image output path")
	cmd.Flags().StringVarP(&sessionFile, "session", "s", "", "Session file path")
	cmd.Flags().StringVar(&configFile, "config", "qrmedia.json", "Config file path")
	cmd.Flags().BoolVar(&skipQR, "no-qr", false, "Skip QR image rendering")
	cmd.Flags().BoolVar(&showWords, "words", false, "Print the key as a 24-word backup phrase")

	return cmd
}
