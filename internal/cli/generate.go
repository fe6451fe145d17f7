package cli

import (
	"fmt"

	"github.com/gopasspw/gitform"
	"github.com/gopasspw/gitform/internal/selection"
	"github.com/gopasspw/gopass/pkg/debug"
	"github.com/spf13/cobra"
)

func newGenerateCmd(a *app) *cobra.Command {
	var noEnv bool

	cmd := &cobra.Command{
		Use:   "generate [selection]",
		Short: "Generate a git config from a selection file",
		Long: `Generate reads a selection file (TOML or JSON), applies the environment
overlay on top of it and prints the resulting git config.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}

			sel := gitform.NewSelection()
			if len(args) > 0 {
				s, err := selection.Load(args[0])
				if err != nil {
					return err
				}
				sel = s
			}

			if !noEnv {
				overlay, err := gitform.EnabledFromEnv(a.settings.EnvPrefix)
				if err != nil {
					return fmt.Errorf("failed to read environment overlay: %w", err)
				}
				debug.V(1).Log("applying %d options and %d aliases from %s_*", overlay.Options.Len(), overlay.Aliases.Len(), a.settings.EnvPrefix)
				sel.Merge(overlay)
			}

			return a.output(cmd, a.serializer().Serialize(sel))
		},
	}

	cmd.Flags().BoolVar(&noEnv, "no-env", false, "Ignore the environment overlay")

	return cmd
}
