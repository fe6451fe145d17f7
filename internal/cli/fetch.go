package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/gopasspw/gitform"
	"github.com/spf13/cobra"
)

const fetchTimeout = 30 * time.Second

func newFetchCmd(a *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch remote preferences and print them as a git config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			text, err := gitform.Fetch(ctx, &http.Client{Timeout: timeout}, args[0])
			if err != nil {
				return err
			}

			sel := gitform.Project(a.parser().ParseString(text), a.catalog, a.colors)

			return a.output(cmd, a.serializer().Serialize(sel))
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", fetchTimeout, "Timeout of the request")

	return cmd
}
