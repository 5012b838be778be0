package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"nebula/app"
	"nebula/config"
	"nebula/keybind"
)

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys [context]",
		Short: "Print the effective key bindings",
		Long: `Print the effective key bindings per context, with the user's
configured bindings applied on top of the defaults. Pass a context name
(composer, autocomplete, room_list, room, navigation) to limit the output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, warnings, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			for _, w := range warnings {
				fmt.Fprintf(os.Stderr, "nebula: warning: %s\n", w)
			}

			manager, _, bindWarnings := app.BuildManager(cfg)
			for _, w := range bindWarnings {
				fmt.Fprintf(os.Stderr, "nebula: warning: %s\n", w)
			}

			contexts := keybind.Contexts()
			if len(args) == 1 {
				ctx := keybind.Context(args[0])
				if ctx.Actions() == nil {
					return fmt.Errorf("unknown context %q", args[0])
				}
				contexts = []keybind.Context{ctx}
			}

			printBindings(cmd.OutOrStdout(), manager, contexts)
			return nil
		},
	}
}

func printBindings(out io.Writer, manager *keybind.Manager, contexts []keybind.Context) {
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	defer w.Flush()

	mac := manager.Mac()
	for _, ctx := range contexts {
		fmt.Fprintf(w, "%s\n", strings.ReplaceAll(string(ctx), "_", " "))

		for _, action := range ctx.Actions() {
			labels := comboLabels(manager, ctx, action, mac)
			if len(labels) == 0 {
				continue
			}
			fmt.Fprintf(w, "  %s\t%s\n", strings.ReplaceAll(action.ShortName(), "_", " "), strings.Join(labels, ", "))
		}
		fmt.Fprintln(w)
	}
}

// comboLabels returns the display labels of the combos bound to action
// under the manager's precedence: the first provider that binds the
// action at all supplies its combos.
func comboLabels(manager *keybind.Manager, ctx keybind.Context, action keybind.Action, mac bool) []string {
	for _, provider := range manager.Providers() {
		var labels []string
		for _, binding := range keybind.BindingsFor(provider, ctx) {
			if binding.Action == action {
				labels = append(labels, binding.Combo.Label(mac))
			}
		}
		if len(labels) > 0 {
			return labels
		}
	}
	return nil
}
