package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thebagchi/go-cbs/lib/cbs"
)

func init() {
	roundtripCmd.Flags().String("codec", "", "codec of the input file: mpeg2|vp9")
	roundtripCmd.MarkFlagRequired("codec")
	rootCmd.AddCommand(roundtripCmd)
}

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip <file>",
	Short: "Decode then re-encode a fragment and compare it against the original bytes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		codecName, _ := cmd.Flags().GetString("codec")

		ctx, err := newContext(codecName)
		if err != nil {
			return err
		}

		original, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		var frag cbs.Fragment
		if err := ctx.Read(&frag, original); err != nil {
			return fmt.Errorf("read: %w", err)
		}

		if err := ctx.WriteFragmentData(&frag); err != nil {
			return fmt.Errorf("write: %w", err)
		}

		if bytes.Equal(frag.Data, original) {
			fmt.Fprintf(cmd.OutOrStdout(), "round-trip OK: %d units, %d bytes\n", len(frag.Units), len(frag.Data))
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "round-trip MISMATCH: original %d bytes, re-encoded %d bytes\n", len(original), len(frag.Data))
		return fmt.Errorf("re-encoded fragment does not match the original bytes")
	},
}
