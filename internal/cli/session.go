package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Charangowdasb/qrmedia/pkg/storage"
)

// NewSessionCommand manages saved sessions: inspection and at-rest
// encryption.
func NewSessionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect and protect saved session files",
	}

	cmd.AddCommand(
		newSessionShowCommand(),
		newSessionSealCommand(),
		newSessionOpenCommand(),
	)

	return cmd
}

func newSessionShowCommand() *cobra.Command {
	var sessionFile string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a session summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := storage.LoadSession(sessionFile)
			if err != nil {
				return err
			}

			printEnvelopeSummary(sess.Envelope)
			fmt.Printf("  Created:     %s\n", sess.Created.Format("2006-01-02 15:04:05 UTC"))
			if sess.KeyHex != "" {
				color.Yellow("  Key:         stored in session (consider 'session seal')")
			} else {
				fmt.Println("  Key:         not stored")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sessionFile, "session", "s", "session.json", "Session file")
	return cmd
}

func newSessionSealCommand() *cobra.Command {
	var (
		sessionFile string
		vaultFile   string
		keepPlain   bool
	)

	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Encrypt a session file at rest under a password",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := storage.LoadSession(sessionFile)
			if err != nil {
				return err
			}

			password, err := readHidden("Vault password: ")
			if err != nil {
				return err
			}
			confirm, err := readHidden("Confirm password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}

			vault := storage.NewVault(vaultFile)
			if err := vault.SaveSession(sess, []byte(password)); err != nil {
				return err
			}
			color.Green("✅ Session sealed to %s", vaultFile)

			if !keepPlain {
				plain := storage.NewVault(sessionFile)
				if err := plain.Delete(); err != nil {
					return fmt.Errorf("sealed, but failed to remove plaintext session: %w", err)
				}
				color.Green("✅ Plaintext session removed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sessionFile, "session", "s", "session.json", "Plaintext session file")
	cmd.Flags().StringVarP(&vaultFile, "vault", "o", "session.vault", "Encrypted vault output")
	cmd.Flags().BoolVar(&keepPlain, "keep", false, "Keep the plaintext session file")
	return cmd
}

func newSessionOpenCommand() *cobra.Command {
	var (
		vaultFile   string
		sessionFile string
	)

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Decrypt a sealed session back to a plaintext file",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readHidden("Vault password: ")
			if err != nil {
				return err
			}

			vault := storage.NewVault(vaultFile)
			sess, err := vault.LoadSession([]byte(password))
			if err != nil {
				return err
			}

			if err := storage.SaveSession(sessionFile, sess); err != nil {
				return err
			}
			color.Green("✅ Session restored to %s", sessionFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&vaultFile, "vault", "i", "session.vault", "Encrypted vault file")
	cmd.Flags().StringVarP(&sessionFile, "session", "o", "session.json", "Plaintext session output")
	return cmd
}
