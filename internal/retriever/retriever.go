// Package retriever answers free-text queries from a fixed question/answer
// corpus using TF-IDF vectors and cosine similarity.
//
// An Index is built once by Load and never mutated afterwards, so a single
// Index can serve concurrent Respond and Matches calls without locking.
package retriever

import (
	"fmt"
	"math"
	"strings"

	"lexsim/internal/domain"
	"lexsim/internal/embedding/tfidf"
	"lexsim/internal/vectorstore"
	"lexsim/internal/vectorstore/memory"
)

// DefaultThreshold is the minimum cosine similarity for an answer to be accepted.
const DefaultThreshold = 0.05

// Options configures an Index.
type Options struct {
	Threshold float64
	Fallback  string
}

// DefaultOptions returns the reference threshold and fallback message.
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold, Fallback: domain.FallbackAnswer}
}

// Index is the vector space over the corpus questions.
type Index struct {
	embedder  domain.Embedder
	store     vectorstore.Storage
	threshold float64
	fallback  string
}

var _ domain.Retriever = (*Index)(nil)

// Load lowercases every question, builds the vocabulary and IDF over the
// questions only and indexes one TF-IDF vector per pair. Answers never enter
// the vector space.
func Load(pairs []domain.QAPair, opts Options) (*Index, error) {
	if math.IsNaN(opts.Threshold) || opts.Threshold < 0 || opts.Threshold > 1 {
		return nil, fmt.Errorf("%w: threshold %v outside [0, 1]", domain.ErrInvalidArgument, opts.Threshold)
	}
	if opts.Fallback == "" {
		opts.Fallback = domain.FallbackAnswer
	}

	questions := make([]string, len(pairs))
	entries := make([]domain.Entry, len(pairs))
	for i, p := range pairs {
		questions[i] = strings.ToLower(p.Question)
		entries[i] = domain.Entry{Index: i, Question: p.Question, Answer: p.Answer}
	}

	emb := tfidf.NewEmbedder()
	if err := emb.Prepare(questions); err != nil {
		return nil, err
	}
	vectors := make([][]float64, len(questions))
	for i, q := range questions {
		vec, err := emb.Embed(q)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}

	store := memory.NewStorage()
	if err := store.Init(emb.Dimension()); err != nil {
		return nil, err
	}
	if err := store.Upsert(entries, vectors); err != nil {
		return nil, err
	}
	return &Index{embedder: emb, store: store, threshold: opts.Threshold, fallback: opts.Fallback}, nil
}

// Respond returns the answer whose question is most similar to query, or the
// fallback message when the corpus is empty or the best score is below the
// threshold. Ties go to the earliest corpus entry.
func (ix *Index) Respond(query string) string {
	answer, _ := ix.RespondMatch(query)
	return answer
}

// RespondMatch is Respond that also reports whether the answer came from the
// corpus. It is false exactly when the fallback message is returned.
func (ix *Index) RespondMatch(query string) (string, bool) {
	best, ok := ix.store.Best(ix.queryVector(query))
	if !ok || best.Score < ix.threshold {
		return ix.fallback, false
	}
	return best.Entry.Answer, true
}

// Matches returns up to topK corpus entries with a positive score, best first.
func (ix *Index) Matches(query string, topK int) []domain.Match {
	res, err := ix.store.Search(ix.queryVector(query), topK)
	if err != nil {
		return nil
	}
	out := res[:0]
	for _, m := range res {
		if m.Score > 0 {
			out = append(out, m)
		}
	}
	return out
}

// Size returns the number of corpus entries.
func (ix *Index) Size() int { return ix.store.Len() }

// VocabularySize returns the number of distinct question tokens.
func (ix *Index) VocabularySize() int { return ix.embedder.Dimension() }

// EmbedderName names the vectorizer behind the index.
func (ix *Index) EmbedderName() string { return ix.embedder.Name() }

// Threshold returns the acceptance threshold.
func (ix *Index) Threshold() float64 { return ix.threshold }

func (ix *Index) queryVector(query string) []float64 {
	// Embed only fails before Prepare, which Load always runs.
	vec, _ := ix.embedder.Embed(strings.ToLower(query))
	return vec
}
