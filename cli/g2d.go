package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbrenner/nibtools/image"
)

var g2dMaxTrack int

var g2dCmd = &cobra.Command{
	Use:   "g2d <g64-in> [d64-out]",
	Short: "Convert a G64 image to a D64 image",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := args[0]
		out := outputName(args, in, ".d64")

		buf, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("g2d: %w", err)
		}
		g, err := image.ReadG64(buf)
		if err != nil {
			return fmt.Errorf("g2d: %w", err)
		}

		disk, err := image.G64ToD64(g, g2dMaxTrack)
		if err != nil {
			return fmt.Errorf("g2d: %w", err)
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("g2d: %w", err)
		}
		defer f.Close()
		if err := image.WriteD64(f, disk); err != nil {
			return fmt.Errorf("g2d: %w", err)
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
	g2dCmd.Flags().IntVarP(&g2dMaxTrack, "maxtrack", "m", 35, "highest track to convert (35 or 40)")
	rootCmd.AddCommand(g2dCmd)
}
