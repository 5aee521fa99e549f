package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Charangowdasb/qrmedia/pkg/crypto/encryption"
	"github.com/Charangowdasb/qrmedia/pkg/crypto/mnemonic"
)

// NewKeyCommand groups key management: generation, mnemonic backup and
// derivation of per-envelope keys from a backup phrase.
func NewKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Generate and back up envelope encryption keys",
	}

	cmd.AddCommand(
		newKeyGenerateCommand(),
		newKeyWordsCommand(),
		newKeyDeriveCommand(),
		newKeyPasswordCommand(),
		newKeyMasterCommand(),
	)

	return cmd
}

func newKeyGenerateCommand() *cobra.Command {
	var withWords bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a fresh 32-byte encryption key",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := encryption.NewManager()
			if err != nil {
				return err
			}

			fmt.Println(m.KeyHex())

			if withWords {
				words, err := mnemonic.FromKey(m.Key())
				if err != nil {
					return err
				}
				fmt.Println()
				color.Yellow("Backup phrase:")
				fmt.Println(words)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withWords, "words", false, "Also print the 24-word backup phrase")
	return cmd
}

func newKeyWordsCommand() *cobra.Command {
	var keyHex string

	cmd := &cobra.Command{
		Use:   "words",
		Short: "Convert between a hex key and its 24-word backup phrase",
		Long: `With --key, prints the backup phrase for that key. Without it, reads a
phrase from stdin and prints the hex key it encodes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if keyHex != "" {
				m, err := encryption.NewManagerFromHex(keyHex)
				if err != nil {
					return err
				}
				words, err := mnemonic.FromKey(m.Key())
				if err != nil {
					return err
				}
				fmt.Println(words)
				return nil
			}

			phrase, err := readLine("Enter backup phrase: ")
			if err != nil {
				return err
			}
			key, err := mnemonic.ToKey(phrase)
			if err != nil {
				return err
			}
			fmt.Printf("%x\n", key)
			return nil
		},
	}

	cmd.Flags().StringVar(&keyHex, "key", "", "Hex key to convert to words")
	return cmd
}

func newKeyDeriveCommand() *cobra.Command {
	var (
		index      uint32
		passphrase string
	)

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive a per-envelope key from a backup phrase",
		Long: `Derive computes the envelope key at the given index from a master backup
phrase, so a single phrase can protect any number of envelopes. Derivation
is hardened; individual envelope keys do not expose the phrase.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			phrase, err := readHidden("Enter master phrase: ")
			if err != nil {
				return err
			}

			kr, err := mnemonic.NewKeyring(phrase, passphrase)
			if err != nil {
				return err
			}

			key, err := kr.EnvelopeKey(index)
			if err != nil {
				return err
			}

			fmt.Printf("%x\n", key)
			return nil
		},
	}

	cmd.Flags().Uint32Var(&index, "index", 0, "Envelope index to derive")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "Optional BIP39 passphrase")
	return cmd
}

func newKeyPasswordCommand() *cobra.Command {
	var saltHex string

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Derive an encryption key from a passphrase",
		Long: `Password derives a 32-byte key from a passphrase with Argon2id. The salt
is printed alongside the key; pass it back with --salt to re-derive the
same key later.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			passphrase, err := readHidden("Enter passphrase: ")
			if err != nil {
				return err
			}
			if passphrase == "" {
				return fmt.Errorf("passphrase cannot be empty")
			}

			var salt []byte
			if saltHex != "" {
				salt, err = hex.DecodeString(saltHex)
				if err != nil {
					return fmt.Errorf("invalid salt: %w", err)
				}
			}

			key, usedSalt, err := encryption.KeyFromPassphrase(passphrase, salt)
			if err != nil {
				return err
			}

			fmt.Printf("Key:  %x\n", key)
			fmt.Printf("Salt: %x\n", usedSalt)
			return nil
		},
	}

	cmd.Flags().StringVar(&saltHex, "salt", "", "Hex salt from a previous derivation")
	return cmd
}

func newKeyMasterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "master",
		Short: "Generate a master backup phrase for per-envelope derivation",
		Long: `Master generates a fresh 24-word phrase for use with 'key derive'. Unlike
the phrase printed by 'generate --words', which encodes a single key, a
master phrase derives an independent key per envelope index.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := mnemonic.Generate()
			if err != nil {
				return err
			}

			color.Yellow("Master phrase (write it down, it is shown once):")
			fmt.Println(words)
			return nil
		},
	}
}
