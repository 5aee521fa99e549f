package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Charangowdasb/qrmedia/internal/cli"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:   "qrmedia",
		Short: "Threshold-protected media URLs over QR transport",
		Long: `qrmedia protects a media URL by splitting it into N shares such that any
K reconstruct it exactly while K-1 reveal nothing, encrypting each share
independently, and packing the result into a QR-sized envelope with an
integrity fingerprint.

Workflow:
  protect  split + encrypt a URL, write QR image and session
  reveal   scan/load an envelope and reconstruct the URL
  verify   check that an envelope round-trips, optionally with a report
  qr       re-render a session as a QR image
  key      manage encryption keys and backup phrases
  session  inspect and seal session files
  shares   split and combine raw shares without an envelope`,
		Version: fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
	}

	rootCmd.AddCommand(
		cli.NewProtectCommand(),
		cli.NewRevealCommand(),
		cli.NewVerifyCommand(),
		cli.NewQRCommand(),
		cli.NewKeyCommand(),
		cli.NewSessionCommand(),
		cli.NewSharesCommand(),
	)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level.Set(slog.LevelDebug)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}
