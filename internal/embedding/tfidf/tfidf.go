package tfidf

import (
	"errors"

	"lexsim/internal/domain"
)

// Embedder is a TF-IDF vectorizer over a fixed reference corpus.
// Term frequency is the raw count; vectors are not normalized.
type Embedder struct {
	vocabulary *Vocabulary
	idf        []float64
	prepared   bool
}

var _ domain.Embedder = (*Embedder)(nil)

// NewEmbedder creates an unprepared TF-IDF embedder.
func NewEmbedder() *Embedder {
	return &Embedder{}
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "tfidf" }

// Prepare builds the vocabulary and IDF values from the provided corpus.
// An empty corpus yields an empty vocabulary rather than an error.
func (e *Embedder) Prepare(corpus []string) error {
	vocab := BuildVocabulary(corpus)
	counts := make([][]float64, len(corpus))
	for i, doc := range corpus {
		counts[i] = vocab.Vectorize(doc)
	}
	e.vocabulary = vocab
	e.idf = idfFromCounts(counts, vocab.Size())
	e.prepared = true
	return nil
}

// Dimension returns the dimensionality of the produced embedding vectors.
func (e *Embedder) Dimension() int { return e.vocabulary.Size() }

// Vocabulary returns the frozen vocabulary built by Prepare.
func (e *Embedder) Vocabulary() *Vocabulary { return e.vocabulary }

// IDF returns a copy of the IDF vector built by Prepare.
func (e *Embedder) IDF() []float64 {
	out := make([]float64, len(e.idf))
	copy(out, e.idf)
	return out
}

// Embed computes the TF-IDF vector for the given text.
func (e *Embedder) Embed(text string) ([]float64, error) {
	if !e.prepared {
		return nil, errors.New("tfidf embedder not prepared")
	}
	return TFIDF(text, e.vocabulary, e.idf), nil
}
