package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/askitty/askitty/internal/adapters/driving/watcher"
)

var watchNoDelete bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the objects directory and ingest new documents",
	Long: `Monitors the objects directory for new and changed documents and
ingests them automatically. Deleting a watched file removes its chunks from
the corpus unless --keep-deleted is set.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchNoDelete, "keep-deleted", false, "keep chunks of files removed from the directory")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	var deleter watcher.Deleter
	if !watchNoDelete {
		deleter = chunkStore
	}

	w, err := watcher.New(ingestService, deleter, watcher.Config{
		Dir:    objectStore.Root(),
		KeyFor: objectStore.KeyFor,
	})
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (Ctrl-C to stop)\n", objectStore.Root())
	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
