package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vidyayathra/tutor/internal/llm"
)

// IngestOptions configures a corpus ingest run.
type IngestOptions struct {
	// Topic and Difficulty are attached to every chunk's metadata.
	Topic      string
	Difficulty string

	// ChunkSize and ChunkOverlap bound chunking; zero values use the
	// package defaults.
	ChunkSize    int
	ChunkOverlap int
}

// IngestResult summarizes one ingest run.
type IngestResult struct {
	Files  int
	Chunks int
}

// IngestDir chunks every regular file under dir, embeds the chunks, and
// upserts them into the store's default index. Unlike retrieval, ingest
// is a deliberate operator action, so failures are returned rather than
// swallowed.
func IngestDir(ctx context.Context, store *VectorStore, embedder llm.Embedder, dir string, opts IngestOptions, logger *slog.Logger) (*IngestResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Topic == "" {
		opts.Topic = "general"
	}
	if opts.Difficulty == "" {
		opts.Difficulty = "Beginner"
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read ingest dir: %w", err)
	}

	store.Load()

	result := &IngestResult{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		chunks := ChunkText(string(raw), opts.ChunkSize, opts.ChunkOverlap)
		if len(chunks) == 0 {
			logger.Warn("skipping empty file", "file", name)
			continue
		}

		vectors, err := embedder.Embed(ctx, chunks)
		if err != nil {
			return nil, fmt.Errorf("embed %s: %w", name, err)
		}
		if len(vectors) != len(chunks) {
			return nil, fmt.Errorf("embed %s: got %d vectors for %d chunks", name, len(vectors), len(chunks))
		}

		records := make([]Record, len(chunks))
		idBase := strings.ReplaceAll(name, ".", "_")
		for i, chunk := range chunks {
			records[i] = Record{
				ID:     fmt.Sprintf("%s_%d", idBase, i),
				Values: vectors[i],
				Metadata: map[string]string{
					"source":     name,
					"topic":      opts.Topic,
					"difficulty": opts.Difficulty,
					"text":       chunk,
				},
			}
		}

		if err := store.Upsert(DefaultIndex, records); err != nil {
			return nil, fmt.Errorf("upsert %s: %w", name, err)
		}

		logger.Info("ingested file", "file", name, "chunks", len(chunks))
		result.Files++
		result.Chunks += len(chunks)
	}

	return result, nil
}
