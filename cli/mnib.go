package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbrenner/nibtools/config"
	"github.com/mbrenner/nibtools/image"
)

var mnibOpts image.CaptureOptions

var mnibCmd = &cobra.Command{
	Use:   "mnib <out.nib>",
	Short: "Capture a raw NIB image from a 1541/1571 drive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if activeDrive == nil {
			return errors.New("mnib: no drive resolved (PersistentPreRun should have set one)")
		}

		if only35, _ := cmd.Flags().GetBool("35"); only35 {
			mnibOpts.MaxTrack = 35
		} else if mnibOpts.MaxTrack == 0 {
			mnibOpts.MaxTrack = config.MaxTrack
		}

		n, err := image.CaptureNIB(context.Background(), activeDrive, mnibOpts)
		if err != nil {
			return fmt.Errorf("mnib: %w", err)
		}

		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("mnib: %w", err)
		}
		defer f.Close()
		if err := image.WriteNIB(f, n); err != nil {
			return fmt.Errorf("mnib: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "captured %d half-tracks to %s\n", len(n.Entries), args[0])
		return nil
	},
}

func init() {
	mnibCmd.Flags().IntVarP(&mnibOpts.MaxTrack, "maxtrack", "m", 0, "highest track to capture (defaults to the configured drive profile)")
	mnibCmd.Flags().BoolVarP(&mnibOpts.HalfTracks, "halftracks", "h", false, "capture every half-track, not just whole tracks")
	mnibCmd.Flags().BoolVarP(&mnibOpts.ScanDensity, "density", "d", false, "classify each track's speed zone before capture")
	mnibCmd.Flags().BoolVarP(&mnibOpts.ResetFirst, "reset", "r", false, "reset the drive before capturing")
	mnibCmd.Flags().BoolVarP(&mnibOpts.GEOS12, "geos", "g", false, "force density 3 on half-track 73 (GEOS 1.2 boot disks)")
	mnibCmd.Flags().Bool("35", false, "shorthand for --maxtrack=35")
	rootCmd.AddCommand(mnibCmd)
}
