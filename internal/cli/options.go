package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gopasspw/gitform"
	"github.com/spf13/cobra"
)

var (
	keyStyle     = lipgloss.NewStyle().Bold(true)
	typeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	defaultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	descStyle    = lipgloss.NewStyle().PaddingLeft(2)
)

func newOptionsCmd(a *app) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "options [pattern]",
		Short: "List the options of the catalog",
		Long: `Options lists the catalog entries whose key (section.name or
section.subsection.name) matches the glob pattern, e.g. "color.*".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}

			pattern := ""
			if len(args) > 0 {
				pattern = args[0]
			}

			ds, err := a.catalog.Match(pattern)
			if err != nil {
				return err
			}
			if len(ds) == 0 {
				return fmt.Errorf("no options match %q", pattern)
			}

			lines := make([]string, 0, len(ds))
			for _, d := range ds {
				lines = append(lines, renderOption(d, verbose))
			}

			return a.output(cmd, lipgloss.JoinVertical(lipgloss.Left, lines...))
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show descriptions")

	return cmd
}

func renderOption(d gitform.Descriptor, verbose bool) string {
	typ := string(d.InputType())
	if d.InputType() == gitform.TypeSelect {
		typ += " [" + strings.Join(d.Options, "|") + "]"
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top,
		keyStyle.Render(d.Key()), " ",
		typeStyle.Render(typ), " ",
		defaultStyle.Render(d.Placeholder()),
	)
	if !verbose || d.Description == "" {
		return line
	}

	return lipgloss.JoinVertical(lipgloss.Left, line, descStyle.Render(d.Description))
}
