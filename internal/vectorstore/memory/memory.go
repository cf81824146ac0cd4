package memory

import (
	"errors"
	"sort"
	"sync"

	"lexsim/internal/domain"
	"lexsim/internal/similarity"
	"lexsim/internal/vectorstore"
)

// Storage is a simple in-memory vector store using brute-force cosine similarity.
// A zero dimension is valid and describes an empty vocabulary.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float64
	entries   []domain.Entry
}

var _ vectorstore.Storage = (*Storage)(nil)

func NewStorage() *Storage { return &Storage{} }

func (s *Storage) Init(dimension int) error {
	if dimension < 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.vectors = nil
	s.entries = nil
	return nil
}

func (s *Storage) Upsert(entries []domain.Entry, vectors [][]float64) error {
	if len(entries) != len(vectors) {
		return errors.New("entries and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if len(v) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	s.entries = append(s.entries, entries...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

// Search returns up to topK entries by descending cosine similarity.
// Equal scores keep insertion order.
func (s *Storage) Search(vector []float64, topK int) ([]domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		topK = 5
	}
	scores := s.scores(vector)
	idxs := make([]int, len(scores))
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(a, b int) bool { return scores[idxs[a]] > scores[idxs[b]] })
	if topK > len(idxs) {
		topK = len(idxs)
	}
	results := make([]domain.Match, 0, topK)
	for _, j := range idxs[:topK] {
		results = append(results, domain.Match{Entry: s.entries[j], Score: scores[j]})
	}
	return results, nil
}

// Best returns the highest scoring entry. The scan uses a strict comparison,
// so the first of several equal scores wins. It reports false when the store
// is empty.
func (s *Storage) Best(vector []float64) (domain.Match, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bestIdx := -1
	bestScore := -1.0
	for i, score := range s.scores(vector) {
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return domain.Match{}, false
	}
	return domain.Match{Entry: s.entries[bestIdx], Score: bestScore}, true
}

func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Storage) scores(vector []float64) []float64 {
	scores := make([]float64, len(s.vectors))
	for i := range s.vectors {
		scores[i] = similarity.Cosine(s.vectors[i], vector)
	}
	return scores
}
