package retrieval

import "strings"

// Chunking bounds matching the ingest defaults: chunks of up to maxSize
// characters with overlap characters of trailing context carried into
// the next chunk.
const (
	defaultChunkSize    = 512
	defaultChunkOverlap = 50
)

// ChunkText splits text into chunks of at most maxSize characters,
// preferring paragraph then sentence boundaries, with overlap characters
// of context repeated between consecutive chunks. Whitespace-only input
// yields no chunks.
func ChunkText(text string, maxSize, overlap int) []string {
	if maxSize <= 0 {
		maxSize = defaultChunkSize
	}
	if overlap < 0 || overlap >= maxSize {
		overlap = defaultChunkOverlap
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		chunk := strings.TrimSpace(current.String())
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		current.Reset()
		if overlap > 0 && len(chunk) > overlap {
			current.WriteString(chunk[len(chunk)-overlap:])
			current.WriteString(" ")
		}
	}

	for _, piece := range splitPieces(text, maxSize) {
		if current.Len()+len(piece)+1 > maxSize && current.Len() > 0 {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(piece)
	}
	if strings.TrimSpace(current.String()) != "" {
		chunk := strings.TrimSpace(current.String())
		chunks = append(chunks, chunk)
	}

	return chunks
}

// splitPieces breaks text into paragraph and sentence units no longer
// than maxSize, hard-splitting pathological runs as a last resort.
func splitPieces(text string, maxSize int) []string {
	var pieces []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if len(para) <= maxSize {
			pieces = append(pieces, para)
			continue
		}
		for _, sentence := range splitSentences(para) {
			for len(sentence) > maxSize {
				pieces = append(pieces, sentence[:maxSize])
				sentence = sentence[maxSize:]
			}
			if sentence != "" {
				pieces = append(pieces, sentence)
			}
		}
	}
	return pieces
}

func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			end := i + 1
			s := strings.TrimSpace(text[start:end])
			if s != "" {
				sentences = append(sentences, s)
			}
			start = end
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
