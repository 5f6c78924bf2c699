package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbrenner/nibtools/image"
)

var n2gCmd = &cobra.Command{
	Use:   "n2g <nib-in> [g64-out]",
	Short: "Repack a NIB capture into canonical G64 track slots",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := args[0]
		out := outputName(args, in, ".g64")

		buf, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("n2g: %w", err)
		}
		n, err := image.ReadNIB(buf)
		if err != nil {
			return fmt.Errorf("n2g: %w", err)
		}

		g, err := image.NIBToG64(n)
		if err != nil {
			return fmt.Errorf("n2g: %w", err)
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("n2g: %w", err)
		}
		defer f.Close()
		if err := image.WriteG64(f, g); err != nil {
			return fmt.Errorf("n2g: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: %d half-tracks packed\n", in, out, len(n.Entries))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(n2gCmd)
}
