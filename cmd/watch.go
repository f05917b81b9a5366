package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/conneroisu/jsonconf/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch <name>",
	Short: "Print a document every time it changes",
	Long: `Watch a document and print its properties whenever it is written,
replaced or removed. Stops on interrupt.

Examples:
  jsonconf watch settings
  jsonconf watch settings -o json --delay 500ms`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var (
	watchFlags *OutputFlags
	watchDelay time.Duration
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchFlags = AddOutputFlags(watchCmd)
	watchCmd.Flags().DurationVar(&watchDelay, "delay", watcher.DefaultDelay, "Debounce delay")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := watchFlags.ValidateFlags(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	s, logger, err := newStore(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path := resolveDocument(args[0])
	w, err := watcher.New(path, watcher.WithDelay(watchDelay), watcher.WithLogger(logger))
	if err != nil {
		return err
	}
	defer w.Stop()

	out := cmd.OutOrStdout()
	w.AddHandler(func(ctx context.Context, event watcher.ChangeEvent) error {
		fmt.Fprintf(out, "%s %s\n", event.Type, event.Path)
		if event.Type == watcher.EventTypeDeleted || watchFlags.Quiet {
			return nil
		}

		doc, found, err := s.Read(ctx, path)
		if err != nil || !found {
			return err
		}
		return writeDocument(out, doc, watchFlags.Format)
	})

	if err := w.Start(ctx); err != nil {
		return err
	}

	fmt.Fprintf(out, "Watching %s\n", w.Path())
	<-ctx.Done()
	return nil
}
