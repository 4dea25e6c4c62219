package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thebagchi/go-cbs/lib/cbs"
)

func init() {
	dumpCmd.Flags().String("codec", "", "codec of the input file: mpeg2|vp9")
	dumpCmd.Flags().Bool("trace", false, "enable syntax-element tracing while decoding")
	dumpCmd.MarkFlagRequired("codec")
	rootCmd.AddCommand(dumpCmd)
}

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Split a bitstream into units and print one line per unit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		codecName, _ := cmd.Flags().GetString("codec")
		trace, _ := cmd.Flags().GetBool("trace")

		ctx, err := newContext(codecName)
		if err != nil {
			return err
		}
		if trace {
			ctx.SetTrace(true, traceLevel())
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		var frag cbs.Fragment
		if err := ctx.Read(&frag, data); err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		defer w.Flush()
		fmt.Fprintln(w, "index\ttype\tbytes")
		for i, u := range frag.Units {
			fmt.Fprintf(w, "%d\t%d\t%d\n", i, u.Type, len(u.Data))
		}
		return nil
	},
}
