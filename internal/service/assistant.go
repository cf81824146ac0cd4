package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"lexsim/internal/corpus"
	"lexsim/internal/domain"
	"lexsim/internal/retriever"
)

// ErrNoCorpus is returned by operations that need a loaded corpus.
var ErrNoCorpus = errors.New("no corpus loaded")

// DefaultEmptyPrompt answers a blank question.
const DefaultEmptyPrompt = "Say something, please."

// Options configures an Assistant.
type Options struct {
	Retriever        retriever.Options
	EmptyPrompt      string
	TopK             int
	SummarySentences int
}

// Status is a snapshot of the assistant state.
type Status struct {
	CorpusSource   string    `json:"corpus_source"`
	CorpusSize     int       `json:"corpus_size"`
	Embedder       string    `json:"embedder,omitempty"`
	Vocabulary     int       `json:"vocabulary"`
	SkippedEntries int       `json:"skipped_entries"`
	LoadedAt       time.Time `json:"loaded_at"`
	Questions      int64     `json:"questions"`
	Fallbacks      int64     `json:"fallbacks"`
	Summaries      int64     `json:"summaries"`
}

// Assistant answers questions from a loaded corpus and summarizes text.
// A reload swaps in a new immutable index; calls already running keep the old one.
type Assistant struct {
	summarizer domain.Summarizer
	opts       Options
	logger     *logrus.Entry

	mu       sync.RWMutex
	index    *retriever.Index
	source   string
	skipped  int
	loadedAt time.Time

	questions atomic.Int64
	fallbacks atomic.Int64
	summaries atomic.Int64
}

func NewAssistant(summarizer domain.Summarizer, opts Options, logger *logrus.Entry) *Assistant {
	if opts.Retriever.Fallback == "" {
		opts.Retriever.Fallback = domain.FallbackAnswer
	}
	if opts.EmptyPrompt == "" {
		opts.EmptyPrompt = DefaultEmptyPrompt
	}
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	if opts.SummarySentences <= 0 {
		opts.SummarySentences = 3
	}
	return &Assistant{
		summarizer: summarizer,
		opts:       opts,
		logger:     logger.WithField("component", "assistant"),
	}
}

// LoadCorpus reads the corpus at path and replaces the current index.
func (a *Assistant) LoadCorpus(ctx context.Context, path string, format corpus.Format) (corpus.LoadStats, error) {
	start := time.Now()
	pairs, stats, err := corpus.Open(ctx, path, format)
	if err != nil {
		return stats, err
	}
	if err := a.install(pairs, path, stats.Skipped); err != nil {
		return stats, err
	}
	entry := a.logger.WithFields(logrus.Fields{
		"source":   path,
		"loaded":   stats.Loaded,
		"skipped":  stats.Skipped,
		"duration": time.Since(start),
	})
	if stats.Skipped > 0 {
		entry.Warn("Corpus loaded with malformed entries skipped")
	} else {
		entry.Info("Corpus loaded")
	}
	return stats, nil
}

// UsePairs indexes pairs supplied directly by the caller.
func (a *Assistant) UsePairs(pairs []domain.QAPair, source string) error {
	if err := a.install(pairs, source, 0); err != nil {
		return err
	}
	a.logger.WithFields(logrus.Fields{"source": source, "loaded": len(pairs)}).Info("Corpus loaded")
	return nil
}

func (a *Assistant) install(pairs []domain.QAPair, source string, skipped int) error {
	ix, err := retriever.Load(pairs, a.opts.Retriever)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}
	a.mu.Lock()
	a.index = ix
	a.source = source
	a.skipped = skipped
	a.loadedAt = time.Now()
	a.mu.Unlock()
	return nil
}

func (a *Assistant) current() *retriever.Index {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.index
}

// Ask returns the corpus answer for query. A blank query gets the empty prompt
// and a missing corpus gets the fallback answer.
func (a *Assistant) Ask(query string) string {
	if strings.TrimSpace(query) == "" {
		return a.opts.EmptyPrompt
	}
	a.questions.Add(1)
	ix := a.current()
	if ix == nil {
		a.fallbacks.Add(1)
		a.logger.Warn("Question received before a corpus was loaded")
		return a.opts.Retriever.Fallback
	}
	answer, matched := ix.RespondMatch(query)
	if !matched {
		a.fallbacks.Add(1)
		a.logger.WithField("query", query).Debug("No corpus entry above threshold")
	}
	return answer
}

// Matches lists the best scoring corpus entries for query. topK <= 0 uses the
// configured default.
func (a *Assistant) Matches(query string, topK int) ([]domain.Match, error) {
	ix := a.current()
	if ix == nil {
		return nil, ErrNoCorpus
	}
	if topK <= 0 {
		topK = a.opts.TopK
	}
	return ix.Matches(query, topK), nil
}

// Summarize returns an extractive summary of text. n == 0 uses the configured
// sentence count; negative values are rejected.
func (a *Assistant) Summarize(text string, n int) (string, error) {
	if n == 0 {
		n = a.opts.SummarySentences
	}
	start := time.Now()
	summary, err := a.summarizer.Summarize(text, n)
	if err != nil {
		return "", err
	}
	a.summaries.Add(1)
	a.logger.WithFields(logrus.Fields{
		"sentences":  n,
		"input_len":  len(text),
		"output_len": len(summary),
		"duration":   time.Since(start),
	}).Debug("Summary generated")
	return summary, nil
}

// Status returns counters and corpus metadata.
func (a *Assistant) Status() Status {
	a.mu.RLock()
	st := Status{CorpusSource: a.source, SkippedEntries: a.skipped, LoadedAt: a.loadedAt}
	if a.index != nil {
		st.CorpusSize = a.index.Size()
		st.Embedder = a.index.EmbedderName()
		st.Vocabulary = a.index.VocabularySize()
	}
	a.mu.RUnlock()
	st.Questions = a.questions.Load()
	st.Fallbacks = a.fallbacks.Load()
	st.Summaries = a.summaries.Load()
	return st
}
