package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"carte/internal/domain"
	"carte/internal/menu"
)

func newMergeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "merge <menu.json>...",
		Short: "Merge per-page menu JSON files offline",
		Long:  "Combines menus extracted from separate pages, in argument order, into one menu.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pages := make([]*domain.ParsedMenu, 0, len(args))
			for _, p := range args {
				raw, err := os.ReadFile(p)
				if err != nil {
					return fmt.Errorf("reading %s: %w", p, err)
				}
				m, _, err := menu.DecodeMenu(string(raw))
				if err != nil {
					return fmt.Errorf("decoding %s: %w", p, err)
				}
				pages = append(pages, m)
			}

			merged, err := menu.Merge(pages)
			if err != nil {
				return err
			}
			if opts.Format == "text" {
				writeMenuText(cmd.OutOrStdout(), merged)
				return nil
			}
			return writeStructured(cmd.OutOrStdout(), opts.Format, merged)
		},
	}
}
