package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"carte/internal/menu"
)

func newLanguagesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the target languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			langs := menu.Languages()
			if opts.Format != "text" {
				return writeStructured(cmd.OutOrStdout(), opts.Format, langs)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tNAME\tDISPLAY")
			for _, l := range langs {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Code, l.Name, l.DisplayName)
			}
			return tw.Flush()
		},
	}
}
