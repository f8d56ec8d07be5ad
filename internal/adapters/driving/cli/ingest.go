package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/askitty/askitty/internal/adapters/driven/objectstore/filesystem"
)

var ingestAll bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [file|key]...",
	Short: "Ingest documents into the searchable corpus",
	Long: `Extracts text from the given documents, splits it into page-aware
chunks, embeds each chunk and stores the result.

Arguments may be paths to local files (they are copied into the objects
directory first) or keys of objects already in it. Re-ingesting a document
replaces its previous chunks.`,
	Args: cobra.ArbitraryArgs,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestAll, "all", false, "ingest every object in the store")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if !ingestAll && len(args) == 0 {
		return errors.New("nothing to ingest: pass files or use --all")
	}

	var keys []string
	var err error
	if ingestAll {
		keys, err = objectStore.List(cmd.Context())
		if err != nil {
			return err
		}
	} else {
		for _, arg := range args {
			key, err := resolveKey(arg)
			if err != nil {
				return err
			}
			keys = append(keys, key)
		}
	}

	if len(keys) == 0 {
		cmd.Println("Nothing to ingest.")
		return nil
	}

	batch, err := ingestService.IngestBatch(cmd.Context(), keys)
	if err != nil {
		return err
	}

	for _, res := range batch.Results {
		if res.Skipped {
			cmd.Printf("skipped  %s (no text)\n", res.Key)
			continue
		}
		cmd.Printf("ingested %s: %d chunks, %d pages\n", res.Key, res.Chunks, res.Pages)
	}
	for key, ingestErr := range batch.Errors {
		cmd.Printf("failed   %s: %v\n", key, ingestErr)
	}

	if len(batch.Errors) > 0 {
		return fmt.Errorf("%d of %d documents failed", len(batch.Errors), len(keys))
	}
	return nil
}

// resolveKey treats an existing local path as a file to copy into the
// object store; anything else is assumed to already be a key.
func resolveKey(arg string) (string, error) {
	info, err := os.Stat(arg)
	if err != nil || info.IsDir() {
		return filesystem.SanitizeKey(arg), nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", arg, err)
	}

	key := filesystem.SanitizeKey("uploads/" + filepath.Base(arg))
	dest := filepath.Join(objectStore.Root(), filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("copy %s into object store: %w", arg, err)
	}
	return key, nil
}
