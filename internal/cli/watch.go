package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/gopasspw/gopass/pkg/debug"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <config>",
		Short: "Re-format a git config whenever it changes",
		Long: `Watch formats the given git config once and again on every change until
interrupted. Parse errors are reported and watching continues.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out := a.settings.Output; out != "" && samePath(out, args[0]) {
				return fmt.Errorf("refusing to watch %s: it is also the output file", args[0])
			}

			if err := a.load(cmd.Context()); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return watchFile(ctx, args[0], func() error {
				return a.format(cmd, args[0])
			})
		},
	}
}

// watchFile calls run once and then after every write to fn until ctx is
// done. The parent directory is watched so that editors replacing the file
// are noticed too. Errors of run are printed, not returned.
func watchFile(ctx context.Context, fn string, run func() error) error {
	fn = filepath.Clean(fn)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close() //nolint:errcheck

	if err := w.Add(filepath.Dir(fn)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", fn, err)
	}

	call := func() {
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
	}
	call()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != fn || (!ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create)) {
				continue
			}
			debug.V(2).Log("%s: %s", ev.Op, ev.Name)
			call()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			debug.Log("watch error: %s", err)
		}
	}
}

// samePath reports whether a and b name the same file. Files which do not
// exist yet are compared by their absolute path.
func samePath(a, b string) bool {
	if fa, err := os.Stat(a); err == nil {
		if fb, err := os.Stat(b); err == nil {
			return os.SameFile(fa, fb)
		}
	}

	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}

	return absA == absB
}
