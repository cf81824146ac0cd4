package tfidf

import "lexsim/internal/tokenizer"

// Vocabulary maps each distinct token to a stable 0-based index.
// It has no mutators: once built it is safe to share between goroutines.
type Vocabulary struct {
	index map[string]int
	terms []string
}

// BuildVocabulary tokenizes every document and assigns indices in order of
// first occurrence across the whole set.
func BuildVocabulary(documents []string) *Vocabulary {
	tokens := make([][]string, len(documents))
	for i, doc := range documents {
		tokens[i] = tokenizer.Tokenize(doc)
	}
	return VocabularyFromTokens(tokens...)
}

// VocabularyFromTokens builds a vocabulary from already tokenized documents.
func VocabularyFromTokens(documents ...[]string) *Vocabulary {
	v := &Vocabulary{index: make(map[string]int)}
	for _, doc := range documents {
		for _, tok := range doc {
			if tok == "" {
				continue
			}
			if _, ok := v.index[tok]; ok {
				continue
			}
			v.index[tok] = len(v.terms)
			v.terms = append(v.terms, tok)
		}
	}
	return v
}

// Size returns the number of distinct terms.
func (v *Vocabulary) Size() int {
	if v == nil {
		return 0
	}
	return len(v.terms)
}

// Index returns the index assigned to term.
func (v *Vocabulary) Index(term string) (int, bool) {
	if v == nil {
		return 0, false
	}
	i, ok := v.index[term]
	return i, ok
}

// Terms returns the terms in index order.
func (v *Vocabulary) Terms() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Vectorize returns the raw term counts of doc. Tokens outside the vocabulary
// are ignored.
func (v *Vocabulary) Vectorize(doc string) []float64 {
	return v.Count(tokenizer.Tokenize(doc))
}

// Count is Vectorize for an already tokenized document.
func (v *Vocabulary) Count(tokens []string) []float64 {
	vec := make([]float64, v.Size())
	for _, tok := range tokens {
		if idx, ok := v.Index(tok); ok {
			vec[idx]++
		}
	}
	return vec
}
