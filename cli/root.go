// Package cli implements the nibtools command-line surface: n2d, n2g,
// g2d, and mnib, one file per command, self-registering on rootCmd the
// way the reference tool's adapter commands do.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbrenner/nibtools/config"
	"github.com/mbrenner/nibtools/drive"
)

var activeDrive drive.Drive

var rootCmd = &cobra.Command{
	Use:   "nibtools",
	Short: "Read, reconstruct, and convert Commodore 1541/1571 GCR disk images",
	Long: `nibtools reads Commodore 1541/1571 floppy disks via a USB or serial
bridge cable and converts between the three GCR image containers it
understands:

  D64  - decoded 256-byte sectors, track/sector order
  G64  - raw GCR bitstream, one fixed-size slot per half-track
  NIB  - raw oversampled captures, one per half-track`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cmd.Name() != "mnib" {
			// Pure file-to-file conversions don't touch hardware.
			return
		}

		if err := config.Initialize(); err != nil {
			cobra.CheckErr(fmt.Errorf("failed to initialize config: %w", err))
		}

		d, err := drive.Open()
		if err != nil {
			cobra.CheckErr(fmt.Errorf("%w", err))
		}
		activeDrive = d
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
