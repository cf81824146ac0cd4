package domain

import "errors"

// ErrInvalidArgument is wrapped by every boundary check that rejects caller input.
var ErrInvalidArgument = errors.New("invalid argument")

// FallbackAnswer is returned by the retriever when nothing in the corpus is close enough.
const FallbackAnswer = "Sorry, I don't know the answer to that yet."

// QAPair is one corpus entry. Its identity is its position in the loaded corpus.
type QAPair struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

// Entry is a corpus entry as stored in a vector store.
type Entry struct {
	Index    int
	Question string
	Answer   string
}

// Match is a corpus entry with its similarity to a query.
type Match struct {
	Entry Entry
	Score float64
}

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// Retriever maps a free-text query to the best-matching corpus answer.
type Retriever interface {
	Respond(query string) string
	Matches(query string, topK int) []Match
	Size() int
}

// Summarizer produces an extractive summary of the provided text.
type Summarizer interface {
	Summarize(text string, sentences int) (string, error)
}
