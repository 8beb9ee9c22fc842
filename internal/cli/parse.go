package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"carte/internal/domain"
	"carte/internal/imaging"
	"carte/internal/menu"
	"carte/internal/session"
)

// ParseOptions holds flags for the parse command.
type ParseOptions struct {
	*RootOptions
	Language string
}

func newParseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "parse <image>...",
		Short: "Extract a translated menu from photos",
		Long:  "Compresses each photo, sends the pages to the vision model and prints one merged menu.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := opts.deps(opts.RootOptions)
			if err != nil {
				return err
			}
			s, err := translate(cmd, deps, args, opts.Language)
			if err != nil {
				return err
			}

			m := s.State().Menu
			if opts.Format == "text" {
				writeMenuText(cmd.OutOrStdout(), m)
				return nil
			}
			return writeStructured(cmd.OutOrStdout(), opts.Format, m)
		},
	}

	cmd.Flags().StringVarP(&opts.Language, "lang", "l", menu.DefaultLanguage, "target language (name, short code or BCP 47 tag)")

	return cmd
}

// translate loads and normalizes the images, then runs a session translation.
func translate(cmd *cobra.Command, deps *Deps, paths []string, lang string) (*session.Session, error) {
	language, ok := menu.ResolveLanguage(lang)
	if !ok {
		language = lang
	}

	pages, err := loadPages(cmd, deps.Normalizer, paths)
	if err != nil {
		return nil, err
	}

	s := session.New(deps.Extraction, deps.Logger)
	if err := s.Translate(contextOf(cmd), pages, language); err != nil {
		return nil, err
	}
	return s, nil
}

func loadPages(cmd *cobra.Command, n *imaging.Normalizer, paths []string) ([]domain.ImagePayload, error) {
	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("compressing"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	pages := make([]domain.ImagePayload, 0, len(paths))
	for _, p := range paths {
		raw, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		pages = append(pages, n.Normalize(raw))
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	return pages, nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
