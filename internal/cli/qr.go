package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Charangowdasb/qrmedia/pkg/envelope"
	"github.com/Charangowdasb/qrmedia/pkg/qr"
	"github.com/Charangowdasb/qrmedia/pkg/storage"
)

// NewQRCommand re-renders a saved session's envelope as a QR image,
// e.g. after the original image was lost or a different size is needed.
func NewQRCommand() *cobra.Command {
	var (
		sessionFile string
		outputFile  string
		moduleSize  int
		format      string
	)

	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Render a session's envelope as a QR image (requires qrencode)",
		Example: `  # re-render with defaults
  qrmedia qr -s session.json -o envelope.png

  # large modules for printing, SVG for engraving
  qrmedia qr -s session.json -o envelope.svg --size 12 --format SVG`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := storage.LoadSession(sessionFile)
			if err != nil {
				return err
			}

			wire, err := envelope.Marshal(sess.Envelope)
			if err != nil {
				return err
			}

			codec := qr.NewCommandCodec()
			codec.ModuleSize = moduleSize
			codec.Format = format

			if err := codec.Available(); err != nil {
				color.Red("❌ qrencode is not installed")
				return err
			}

			if err := codec.Encode(wire, outputFile); err != nil {
				return err
			}

			color.Green("✅ QR code written to %s (%d bytes of %d capacity)",
				outputFile, len(wire), codec.Capacity())
			return nil
		},
	}

	cmd.Flags().StringVarP(&sessionFile, "session", "s", "session.json", "Session file to render")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "envelope_qr.png", "Output image path")
	cmd.Flags().IntVar(&moduleSize, "size", 8, "Pixel size of one QR module")
	cmd.Flags().StringVar(&format, "format", "PNG", "Output format (PNG, SVG, ASCII, UTF8)")

	return cmd
}
