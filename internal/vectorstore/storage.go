package vectorstore

import "lexsim/internal/domain"

// Storage holds corpus vectors and supports similarity search.
type Storage interface {
	Init(dimension int) error
	Upsert(entries []domain.Entry, vectors [][]float64) error
	Search(vector []float64, topK int) ([]domain.Match, error)
	Best(vector []float64) (domain.Match, bool)
	Len() int
}
