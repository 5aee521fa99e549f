package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Charangowdasb/qrmedia/pkg/envelope"
	"github.com/Charangowdasb/qrmedia/pkg/report"
)

// NewVerifyCommand checks that an envelope reconstructs correctly.
func NewVerifyCommand() *cobra.Command {
	var (
		imageFile   string
		sessionFile string
		keyHex      string
		words       string
		reportFile  string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify that an envelope reconstructs and matches its fingerprint",
		Example: `  # verify a session end to end
  qrmedia verify -s session.json

  # verify a QR image and write a markdown report
  qrmedia verify -i envelope.png --key <hex> --report report.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, sessionKey, err := loadEnvelope(imageFile, sessionFile)
			if err != nil {
				return err
			}

			enc, err := resolveEncryptor(keyHex, words, sessionKey)
			if err != nil {
				return err
			}

			wire, err := envelope.Marshal(env)
			if err != nil {
				return err
			}

			_, unpackErr := env.Unpack(enc, env.K)

			printEnvelopeSummary(env)
			fmt.Println()
			if unpackErr == nil {
				color.Green("✅ Reconstruction with %d of %d shares verified", env.K, env.N)
			} else {
				color.Red("❌ Verification failed: %v", unpackErr)
			}

			if reportFile != "" {
				f, err := os.Create(reportFile)
				if err != nil {
					return fmt.Errorf("failed to create report: %w", err)
				}
				defer f.Close()

				v := report.NewVerification(env, len(wire), env.K, unpackErr)
				if err := report.Write(f, v); err != nil {
					return err
				}
				color.Green("✅ Report written to %s", reportFile)
			}

			if unpackErr != nil {
				return fmt.Errorf("verification failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&imageFile, "image", "i", "", "QR image to scan")
	cmd.Flags().StringVarP(&sessionFile, "session", "s", "", "Session file to load")
	cmd.Flags().StringVar(&keyHex, "key", "", "Hex encryption key")
	cmd.Flags().StringVar(&words, "words", "", "Key backup phrase")
	cmd.Flags().StringVar(&reportFile, "report", "", "Write a markdown report to this path")

	return cmd
}
