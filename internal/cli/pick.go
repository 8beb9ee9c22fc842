package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"carte/internal/cart"
	"carte/internal/domain"
	"carte/internal/menu"
	"carte/internal/service"
)

// PickOptions holds flags for the pick command.
type PickOptions struct {
	*RootOptions
	Language    string
	PartySize   int
	Hunger      string
	Adventurous bool
}

// pickOutput is the structured result of pick.
type pickOutput struct {
	Explanation string       `json:"explanation"`
	Order       cart.Summary `json:"order"`
}

func newPickCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PickOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "pick <image>...",
		Short: "Let the model choose dishes for the party",
		Long:  "Extracts the menu, asks for wildcard selections and prints the resulting order.",
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

			state := s.State()
			res, err := deps.Wildcard.Recommend(contextOf(cmd), service.WildcardRequest{
				Menu:              state.Menu,
				PartySize:         opts.PartySize,
				HungerLevel:       domain.HungerLevel(opts.Hunger),
				Adventurous:       opts.Adventurous,
				PreferredLanguage: state.Language,
				CurrentCart:       state.Cart,
			})
			if err != nil {
				return err
			}

			state = s.ApplyWildcard(res.Selections)
			out := pickOutput{Explanation: res.Explanation, Order: cart.Summarize(state.Menu, state.Cart)}
			if opts.Format == "text" {
				fmt.Fprintln(cmd.OutOrStdout(), out.Explanation)
				fmt.Fprintln(cmd.OutOrStdout())
				writeSummaryText(cmd.OutOrStdout(), out.Order)
				return nil
			}
			return writeStructured(cmd.OutOrStdout(), opts.Format, out)
		},
	}

	cmd.Flags().StringVarP(&opts.Language, "lang", "l", menu.DefaultLanguage, "target language")
	cmd.Flags().IntVarP(&opts.PartySize, "party", "p", 2, "number of diners")
	cmd.Flags().StringVar(&opts.Hunger, "hunger", string(domain.HungerModerate), "light, moderate, hungry or feast")
	cmd.Flags().BoolVar(&opts.Adventurous, "adventurous", false, "favor unusual dishes")

	return cmd
}
