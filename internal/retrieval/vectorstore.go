package retrieval

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"sync"
)

// Record is one embedded chunk stored in an index.
type Record struct {
	ID       string            `json:"id"`
	Values   []float32         `json:"values"`
	Metadata map[string]string `json:"metadata"`
}

// Match is a query hit with its cosine similarity to the query vector.
type Match struct {
	Record
	Similarity float64
}

// VectorStore is a brute-force cosine-similarity store persisted as a
// single JSON file. Indexes map names to record lists. Suited to the
// corpus sizes a single tutor instance ingests; swap for a real vector
// database if the corpus outgrows memory.
type VectorStore struct {
	mu      sync.Mutex
	path    string
	indexes map[string][]Record
}

// NewVectorStore returns a store persisted at path. Call Load before
// first use; a missing or unreadable file loads as empty.
func NewVectorStore(path string) *VectorStore {
	return &VectorStore{
		path:    path,
		indexes: make(map[string][]Record),
	}
}

// Load reads the store file. A missing or corrupt file resets the store
// to empty rather than failing.
func (s *VectorStore) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.indexes = make(map[string][]Record)
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var indexes map[string][]Record
	if err := json.Unmarshal(data, &indexes); err != nil {
		return
	}
	s.indexes = indexes
}

// save writes the store file. Caller holds the lock.
func (s *VectorStore) save() error {
	data, err := json.MarshalIndent(s.indexes, "", "  ")
	if err != nil {
		return fmt.Errorf("encode vector store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write vector store: %w", err)
	}
	return nil
}

// Upsert inserts records into index, replacing any record with the same
// ID, and persists the store.
func (s *VectorStore) Upsert(index string, records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.indexes[index]
	for _, r := range records {
		replaced := false
		for i := range existing {
			if existing[i].ID == r.ID {
				existing[i] = r
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, r)
		}
	}
	s.indexes[index] = existing

	return s.save()
}

// Query returns the topK records of index most similar to query,
// highest similarity first. filter, when non-nil, keeps only records
// whose metadata matches every filter entry.
func (s *VectorStore) Query(index string, query []float32, topK int, filter map[string]string) []Match {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []Match
	for _, r := range s.indexes[index] {
		if !metadataMatches(r.Metadata, filter) {
			continue
		}
		matches = append(matches, Match{
			Record:     r,
			Similarity: cosineSimilarity(query, r.Values),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches
}

// Clear removes index and persists the store.
func (s *VectorStore) Clear(index string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.indexes, index)
	return s.save()
}

// Count returns the number of records in index.
func (s *VectorStore) Count(index string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.indexes[index])
}

func metadataMatches(metadata, filter map[string]string) bool {
	for k, v := range filter {
		if metadata[k] != v {
			return false
		}
	}
	return true
}

// cosineSimilarity returns 0 for mismatched or zero-norm vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
