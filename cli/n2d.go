package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mbrenner/nibtools/image"
)

var n2dMaxTrack int

var n2dCmd = &cobra.Command{
	Use:   "n2d <nib-in> [d64-out]",
	Short: "Convert a NIB capture to a D64 image",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := args[0]
		out := outputName(args, in, ".d64")

		buf, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("n2d: %w", err)
		}
		n, err := image.ReadNIB(buf)
		if err != nil {
			return fmt.Errorf("n2d: %w", err)
		}

		disk, err := image.NIBToD64(n, n2dMaxTrack)
		if err != nil {
			return fmt.Errorf("n2d: %w", err)
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("n2d: %w", err)
		}
		defer f.Close()
		if err := image.WriteD64(f, disk); err != nil {
			return fmt.Errorf("n2d: %w", err)
		}

		report := image.VerifyDisk(disk)
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: %d ok, %d errors\n", in, out, report.OkSectors, report.ErrorSectors)
		if !report.Clean() {
			fmt.Fprintf(cmd.OutOrStdout(), "first error: %s\n", report.FirstError)
		}
		return nil
	},
}

func init() {
	n2dCmd.Flags().IntVarP(&n2dMaxTrack, "maxtrack", "m", 35, "highest track to convert (35 or 40)")
	rootCmd.AddCommand(n2dCmd)
}

// outputName derives an output path from args[1] if present, otherwise
// from in's base name with ext substituted for whatever extension it has.
func outputName(args []string, in, ext string) string {
	if len(args) > 1 {
		return args[1]
	}
	base := in
	if dot := strings.LastIndex(base, "."); dot >= 0 {
		base = base[:dot]
	}
	return base + ext
}
