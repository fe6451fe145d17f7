// Package cli provides the command-line interface for gitform.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gopasspw/gitform"
	"github.com/gopasspw/gitform/internal/settings"
	"github.com/gopasspw/gopass/pkg/debug"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	viper    *viper.Viper
	settings *settings.Settings
	catalog  *gitform.Catalog
	colors   *gitform.Colors
}

// NewRootCmd creates the root command for gitform.
func NewRootCmd(version, commit, buildDate string) *cobra.Command {
	a := &app{viper: settings.New()}

	var bindErr error

	rootCmd := &cobra.Command{
		Use:   "gitform",
		Short: "Generate and parse git configuration files",
		Long: `gitform turns a selection of git options and aliases into a git config
file, and parses existing git config files back into a selection.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if bindErr != nil {
				return bindErr
			}

			s, err := settings.Load(a.viper)
			if err != nil {
				return err
			}
			a.settings = s

			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String(settings.KeyCatalog, "", "Path of the option catalog (JSON)")
	pf.String(settings.KeyColors, "", "Path of the terminal color catalog (JSON)")
	pf.StringP(settings.KeyOutput, "o", "", "Write the result to this file instead of stdout")
	pf.String("env-prefix", "", "Prefix of the environment overlay variables")

	bindErr = bindFlags(a.viper, rootCmd, map[string]string{
		settings.KeyCatalog:   settings.KeyCatalog,
		settings.KeyColors:    settings.KeyColors,
		settings.KeyOutput:    settings.KeyOutput,
		settings.KeyEnvPrefix: "env-prefix",
	})

	rootCmd.AddCommand(
		newGenerateCmd(a),
		newParseCmd(a),
		newFormatCmd(a),
		newWatchCmd(a),
		newFetchCmd(a),
		newOptionsCmd(a),
		newSchemaCmd(),
		newVersionCmd(version, commit, buildDate),
	)

	return rootCmd
}

// bindFlags binds the persistent flags of cmd to settings keys, given as
// key -> flag name.
func bindFlags(v *viper.Viper, cmd *cobra.Command, flags map[string]string) error {
	var errs []error
	for key, flag := range flags {
		if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
			debug.Log("failed to bind flag %q to setting %q: %s", flag, key, err)
			errs = append(errs, fmt.Errorf("failed to bind flag %q: %w", flag, err))
		}
	}

	return errors.Join(errs...)
}

// load loads the catalogs once per invocation.
func (a *app) load(ctx context.Context) error {
	if a.catalog != nil {
		return nil
	}

	cat, colors, err := a.settings.LoadCatalogs(ctx)
	if err != nil {
		return err
	}
	a.catalog = cat
	a.colors = colors

	debug.V(1).Log("loaded %d options and %d colors", cat.Len(), colors.Len())

	return nil
}

func (a *app) parser() *gitform.Parser {
	return gitform.NewParser(a.catalog)
}

func (a *app) serializer() *gitform.Serializer {
	return gitform.NewSerializer(a.catalog, a.colors)
}

// output writes content to the configured output file or to the command's
// stdout.
func (a *app) output(cmd *cobra.Command, content string) error {
	if a.settings == nil || a.settings.Output == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), content+"\n")

		return err
	}

	if err := os.WriteFile(a.settings.Output, []byte(content+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", a.settings.Output, err)
	}

	debug.V(1).Log("wrote %d bytes to %s", len(content)+1, a.settings.Output)

	return nil
}

// readConfig parses the config file fn, or stdin if fn is empty or "-".
func (a *app) readConfig(cmd *cobra.Command, fn string) (*gitform.Tree, error) {
	if fn == "" || fn == "-" {
		return a.parser().Parse(cmd.InOrStdin()), nil
	}

	tree, err := a.parser().ParseFile(fn)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return tree, nil
}

func newVersionCmd(version, commit, buildDate string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "gitform %s\n", version)
			fmt.Fprintf(out, "commit: %s\n", commit)
			fmt.Fprintf(out, "built: %s\n", buildDate)
		},
	}
}
