package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Charangowdasb/qrmedia/pkg/config"
	"github.com/Charangowdasb/qrmedia/pkg/media"
)

// NewRevealCommand reconstructs the media URL from an envelope.
func NewRevealCommand() *cobra.Command {
	var (
		imageFile   string
		sessionFile string
		keyHex      string
		words       string
		useShares   int
		play        bool
		playerPath  string
		configFile  string
	)

	cmd := &cobra.Command{
		Use:   "reveal",
		Short: "Reconstruct a media URL from a QR envelope or session",
		Long: `Reveal reads an envelope from a QR image or a session file, decrypts the
selected shares, reconstructs the URL and verifies it against the envelope
fingerprint. Reconstruction with fewer than the required shares is rejected
before any cryptographic work.`,
		Example: `  # reveal from a scanned QR image, key from flag
  qrmedia reveal -i envelope.png --key <hex>

  # reveal from a session file (key stored inside) and play
  qrmedia reveal -s session.json --play

  # use more shares than strictly required
  qrmedia reveal -s session.json --use 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, sessionKey, err := loadEnvelope(imageFile, sessionFile)
			if err != nil {
				return err
			}

			enc, err := resolveEncryptor(keyHex, words, sessionKey)
			if err != nil {
				return err
			}

			if useShares == 0 {
				useShares = env.K
			}

			url, err := env.Unpack(enc, useShares)
			if err != nil {
				return fmt.Errorf("reveal failed: %w", err)
			}

			color.Green("✅ URL reconstructed and verified")
			fmt.Println(url)

			if play {
				cfg, err := config.Load(configFile)
				if err != nil {
					return err
				}

				var player media.Player
				if playerPath != "" {
					player = media.NewCommandPlayer(playerPath)
				} else if cfg.Media.PlayerPath != "" && !cfg.Media.UseBrowser {
					player = media.NewCommandPlayer(cfg.Media.PlayerPath)
				} else {
					player = media.NewBrowserPlayer()
				}

				if err := player.Play(url); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&imageFile, "image", "i", "", "QR image to scan")
	cmd.Flags().StringVarP(&sessionFile, "session", "s", "", "Session file to load")
	cmd.Flags().StringVar(&keyHex, "key", "", "Hex encryption key")
	cmd.Flags().StringVar(&words, "words", "", "Key backup phrase")
	cmd.Flags().IntVar(&useShares, "use", 0, "Number of shares to use (default: required threshold)")
	cmd.Flags().BoolVar(&play, "play", false, "Open the URL after reveal")
	cmd.Flags().StringVar(&playerPath, "player", "", "Media player binary (default: browser)")
	cmd.Flags().StringVar(&configFile, "config", "qrmedia.json", "Config file path")

	return cmd
}
