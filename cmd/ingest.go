package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vidyayathra/tutor/internal/llm"
	"github.com/vidyayathra/tutor/internal/retrieval"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <dir>",
	Short: "Embed a directory of reference material for retrieval",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		chunkSize, _ := cmd.Flags().GetInt("chunk-size")
		chunkOverlap, _ := cmd.Flags().GetInt("chunk-overlap")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		ctx := cmd.Context()
		embedder, err := llm.NewEmbedderFromEnv(ctx)
		if err != nil {
			return fmt.Errorf("configure embedder: %w", err)
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		vectors := retrieval.NewVectorStore(resolveVectorsPath(dbPath))

		result, err := retrieval.IngestDir(ctx, vectors, embedder, args[0], retrieval.IngestOptions{
			Topic:        topic,
			Difficulty:   difficulty,
			ChunkSize:    chunkSize,
			ChunkOverlap: chunkOverlap,
		}, logger)
		if err != nil {
			return fmt.Errorf("ingest %s: %w", args[0], err)
		}

		fmt.Printf("Ingested %d files (%d chunks).\n", result.Files, result.Chunks)
		return nil
	},
}

func init() {
	ingestCmd.Flags().String("topic", "", "Topic tag attached to every chunk (default general)")
	ingestCmd.Flags().String("difficulty", "", "Difficulty tag attached to every chunk (default Beginner)")
	ingestCmd.Flags().Int("chunk-size", 0, "Max chunk size in characters (default 512)")
	ingestCmd.Flags().Int("chunk-overlap", 0, "Overlap carried between chunks (default 50)")
}
