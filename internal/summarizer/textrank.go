package summarizer

import (
	"fmt"
	"sort"
	"strings"

	"lexsim/internal/chunker"
	"lexsim/internal/domain"
	"lexsim/internal/embedding/tfidf"
	"lexsim/internal/ranker"
	"lexsim/internal/similarity"
	"lexsim/internal/tokenizer"
)

// TextRankSummarizer ranks sentences with PageRank over their pairwise cosine
// similarity and keeps the best ones in their original order.
type TextRankSummarizer struct {
	splitter *chunker.SentenceSplitter
	opts     ranker.Options
}

var _ domain.Summarizer = (*TextRankSummarizer)(nil)

// NewTextRankSummarizer creates a summarizer. A nil splitter keeps
// unterminated trailing fragments.
func NewTextRankSummarizer(splitter *chunker.SentenceSplitter, opts ranker.Options) (*TextRankSummarizer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if splitter == nil {
		splitter = chunker.NewSentenceSplitter(false)
	}
	return &TextRankSummarizer{splitter: splitter, opts: opts}, nil
}

// Summarize returns the n highest ranked sentences of text joined by single
// spaces. Text with n or fewer sentences is returned unchanged.
func (s *TextRankSummarizer) Summarize(text string, n int) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("%w: summary length %d, want at least 1", domain.ErrInvalidArgument, n)
	}
	sentences := s.splitter.Split(text)
	if len(sentences) <= n {
		return text, nil
	}
	scores, err := ranker.RankWithOptions(SimilarityMatrix(sentences), s.opts)
	if err != nil {
		return "", err
	}
	return strings.Join(pick(sentences, scores, n), " "), nil
}

// pick keeps the n best sentences by score, then restores original order.
// Equal scores favour the earlier sentence.
func pick(sentences []string, scores []float64, n int) []string {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })
	selected := append([]int(nil), order[:n]...)
	sort.Ints(selected)
	out := make([]string, 0, n)
	for _, idx := range selected {
		out = append(out, sentences[idx])
	}
	return out
}

// SimilarityMatrix returns the N x N cosine matrix of sentences, diagonal
// included.
func SimilarityMatrix(sentences []string) [][]float64 {
	tokens := make([][]string, len(sentences))
	for i, sent := range sentences {
		tokens[i] = tokenizer.Tokenize(sent)
	}
	m := make([][]float64, len(sentences))
	for i := range m {
		m[i] = make([]float64, len(sentences))
		for j := range m[i] {
			m[i][j] = tokenSimilarity(tokens[i], tokens[j])
		}
	}
	return m
}

// SentenceSimilarity is the cosine of the term counts of a and b over a
// vocabulary built from just those two sentences.
func SentenceSimilarity(a, b string) float64 {
	return tokenSimilarity(tokenizer.Tokenize(a), tokenizer.Tokenize(b))
}

func tokenSimilarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	vocab := tfidf.VocabularyFromTokens(a, b)
	return similarity.Cosine(vocab.Count(a), vocab.Count(b))
}
