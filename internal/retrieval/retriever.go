package retrieval

import (
	"context"
	"log/slog"

	"github.com/vidyayathra/tutor/internal/llm"
)

// DefaultIndex is the vector store index holding ingested course material.
const DefaultIndex = "rag_embeddings"

// snippetLimit caps how much ingested text leaks into a prompt. Signals
// steer generation; they are not quoted source material.
const snippetLimit = 100

// RAGSignal is a compact retrieval hint passed to question generation.
type RAGSignal struct {
	Topic      string
	Snippet    string
	Difficulty string
}

// Retriever answers retrieval queries against the vector store.
// Retrieval is strictly best effort: every failure degrades to an empty
// result so a broken embedding path never blocks a tutoring turn.
type Retriever struct {
	store    *VectorStore
	embedder llm.Embedder
	logger   *slog.Logger
}

// NewRetriever builds a Retriever. logger may be nil.
func NewRetriever(store *VectorStore, embedder llm.Embedder, logger *slog.Logger) *Retriever {
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{store: store, embedder: embedder, logger: logger}
}

// Retrieve embeds query and returns up to topK signals. Missing
// collaborators, embedding errors, and empty indexes all yield an empty
// slice, never an error.
func (r *Retriever) Retrieve(ctx context.Context, query, topic, difficulty string, topK int) []RAGSignal {
	if r == nil || r.store == nil || r.embedder == nil {
		return nil
	}

	vectors, err := r.embedder.Embed(ctx, []string{query})
	if err != nil || len(vectors) == 0 {
		r.logger.Warn("retrieval skipped", "error", err)
		return nil
	}

	matches := r.store.Query(DefaultIndex, vectors[0], topK, nil)

	signals := make([]RAGSignal, 0, len(matches))
	for _, m := range matches {
		signals = append(signals, RAGSignal{
			Topic:      metadataOr(m.Metadata, "topic", topic),
			Snippet:    snippetFrom(m.Metadata),
			Difficulty: metadataOr(m.Metadata, "difficulty", difficulty),
		})
	}
	return signals
}

func metadataOr(metadata map[string]string, key, fallback string) string {
	if v := metadata[key]; v != "" {
		return v
	}
	return fallback
}

// snippetFrom truncates on a rune boundary so non-ASCII course material
// stays valid UTF-8.
func snippetFrom(metadata map[string]string) string {
	text := metadata["text"]
	if text == "" {
		return "concept reference"
	}
	if len(text) <= snippetLimit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= snippetLimit {
		return text
	}
	return string(runes[:snippetLimit])
}
