package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gopasspw/gitform"
	"github.com/gopasspw/gitform/internal/selection"
	"github.com/spf13/cobra"
)

// gitName is the application name git uses for its XDG config dir.
const gitName = "git"

func newParseCmd(a *app) *cobra.Command {
	var (
		scope  string
		format string
	)

	cmd := &cobra.Command{
		Use:   "parse [config]",
		Short: "Parse a git config into a selection file",
		Long: `Parse reads a git config (a file, stdin or one of the system, global or
local configs) and prints every option found as a selection file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := selection.ParseFormat(format)
			if err != nil {
				return err
			}

			fn, err := configPath(args, scope)
			if err != nil {
				return err
			}

			if err := a.load(cmd.Context()); err != nil {
				return err
			}

			tree, err := a.readConfig(cmd, fn)
			if err != nil {
				return err
			}

			sel := gitform.Project(tree, a.catalog, a.colors)

			buf := &strings.Builder{}
			if err := selection.Encode(buf, selection.FromSelection(sel), f); err != nil {
				return err
			}

			return a.output(cmd, strings.TrimRight(buf.String(), "\n"))
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "Import the system, global or local git config")
	cmd.Flags().StringVarP(&format, "format", "f", string(selection.TOML), "Output format (toml or json)")

	return cmd
}

func newFormatCmd(a *app) *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "format [config]",
		Short: "Parse and re-serialize a git config",
		Long: `Format reads a git config and writes it back in canonical form: aliases
first, catalog spellings for known keys, one tab indentation.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, err := configPath(args, scope)
			if err != nil {
				return err
			}

			if err := a.load(cmd.Context()); err != nil {
				return err
			}

			return a.format(cmd, fn)
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "Format the system, global or local git config")

	return cmd
}

func (a *app) format(cmd *cobra.Command, fn string) error {
	tree, err := a.readConfig(cmd, fn)
	if err != nil {
		return err
	}

	return a.output(cmd, a.serializer().Serialize(gitform.Project(tree, a.catalog, a.colors)))
}

// configPath picks the config to read: the argument if given, otherwise
// the first existing config of scope, otherwise stdin.
func configPath(args []string, scope string) (string, error) {
	if len(args) > 0 {
		if scope != "" {
			return "", errors.New("a config file and --scope are mutually exclusive")
		}

		return args[0], nil
	}
	if scope == "" {
		return "", nil
	}

	sc, err := gitform.ParseScope(scope)
	if err != nil {
		return "", err
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	loc, err := gitform.FindLocation(sc, gitName, wd)
	if err != nil {
		return "", fmt.Errorf("error parsing config file: %w", err)
	}

	return loc.Path, nil
}
