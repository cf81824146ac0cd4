package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexsim/internal/corpus"
	"lexsim/internal/domain"
	"lexsim/internal/logging"
	"lexsim/internal/ranker"
	"lexsim/internal/retriever"
	"lexsim/internal/service"
	"lexsim/internal/summarizer"
)

var faq = []domain.QAPair{
	{Question: "What is AI?", Answer: "AI is artificial intelligence."},
	{Question: "What is machine learning?", Answer: "Machine learning lets computers learn from data."},
}

func newAssistant(t *testing.T, opts service.Options) *service.Assistant {
	t.Helper()
	sum, err := summarizer.NewTextRankSummarizer(nil, ranker.DefaultOptions())
	require.NoError(t, err)
	return service.NewAssistant(sum, opts, logging.Discard())
}

func TestAssistant_AskBlank(t *testing.T) {
	a := newAssistant(t, service.Options{Retriever: retriever.DefaultOptions()})
	assert.Equal(t, service.DefaultEmptyPrompt, a.Ask(""))
	assert.Equal(t, service.DefaultEmptyPrompt, a.Ask("   \t"))
	assert.Equal(t, int64(0), a.Status().Questions)
}

func TestAssistant_AskWithoutCorpus(t *testing.T) {
	a := newAssistant(t, service.Options{Retriever: retriever.DefaultOptions()})
	assert.Equal(t, domain.FallbackAnswer, a.Ask("what is AI"))

	st := a.Status()
	assert.Equal(t, int64(1), st.Questions)
	assert.Equal(t, int64(1), st.Fallbacks)
	assert.Equal(t, 0, st.CorpusSize)
}

func TestAssistant_UsePairs(t *testing.T) {
	a := newAssistant(t, service.Options{
		Retriever:   retriever.Options{Threshold: 0.05, Fallback: "Dunno."},
		EmptyPrompt: "Speak up.",
	})
	require.NoError(t, a.UsePairs(faq, "inline"))

	assert.Equal(t, "AI is artificial intelligence.", a.Ask("What is AI"))
	assert.Equal(t, "Dunno.", a.Ask("quantum chromodynamics"))
	assert.Equal(t, "Speak up.", a.Ask(""))

	st := a.Status()
	assert.Equal(t, "inline", st.CorpusSource)
	assert.Equal(t, 2, st.CorpusSize)
	assert.Equal(t, "tfidf", st.Embedder)
	assert.Greater(t, st.Vocabulary, 0)
	assert.Equal(t, int64(2), st.Questions)
	assert.Equal(t, int64(1), st.Fallbacks)
	assert.False(t, st.LoadedAt.IsZero())
}

func TestAssistant_FallbackCountedByMatch(t *testing.T) {
	a := newAssistant(t, service.Options{Retriever: retriever.DefaultOptions()})
	require.NoError(t, a.UsePairs([]domain.QAPair{
		{Question: "what can you not answer", Answer: domain.FallbackAnswer},
	}, "inline"))

	assert.Equal(t, domain.FallbackAnswer, a.Ask("what can you not answer"))
	assert.Equal(t, int64(0), a.Status().Fallbacks)

	assert.Equal(t, domain.FallbackAnswer, a.Ask("zzz"))
	assert.Equal(t, int64(1), a.Status().Fallbacks)
}

func TestAssistant_UsePairsInvalidThreshold(t *testing.T) {
	a := newAssistant(t, service.Options{Retriever: retriever.Options{Threshold: 2}})
	assert.ErrorIs(t, a.UsePairs(faq, "inline"), domain.ErrInvalidArgument)
}

func TestAssistant_LoadCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.tsv")
	require.NoError(t, os.WriteFile(path, []byte("What is AI?\tAI is artificial intelligence.\nbroken line\nWhat is machine learning?\tMachine learning lets computers learn from data.\n"), 0o644))

	a := newAssistant(t, service.Options{Retriever: retriever.DefaultOptions()})
	stats, err := a.LoadCorpus(context.Background(), path, corpus.FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, corpus.LoadStats{Loaded: 2, Skipped: 1}, stats)

	assert.Equal(t, "Machine learning lets computers learn from data.", a.Ask("machine learning?"))
	st := a.Status()
	assert.Equal(t, path, st.CorpusSource)
	assert.Equal(t, 1, st.SkippedEntries)
}

func TestAssistant_LoadCorpusMissingKeepsPrevious(t *testing.T) {
	a := newAssistant(t, service.Options{Retriever: retriever.DefaultOptions()})
	require.NoError(t, a.UsePairs(faq, "inline"))

	_, err := a.LoadCorpus(context.Background(), filepath.Join(t.TempDir(), "missing.tsv"), corpus.FormatAuto)
	require.Error(t, err)
	assert.Equal(t, "AI is artificial intelligence.", a.Ask("what is AI"))
}

func TestAssistant_Matches(t *testing.T) {
	a := newAssistant(t, service.Options{Retriever: retriever.DefaultOptions(), TopK: 1})
	_, err := a.Matches("what is AI", 0)
	assert.ErrorIs(t, err, service.ErrNoCorpus)

	require.NoError(t, a.UsePairs(faq, "inline"))
	matches, err := a.Matches("what is AI", 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 0, matches[0].Entry.Index)

	matches, err = a.Matches("what is AI", 5)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestAssistant_Summarize(t *testing.T) {
	a := newAssistant(t, service.Options{SummarySentences: 1})
	text := "Red blue green. Red. Blue. Green."

	got, err := a.Summarize(text, 0)
	require.NoError(t, err)
	assert.Equal(t, "Red blue green.", got)

	got, err = a.Summarize(text, 4)
	require.NoError(t, err)
	assert.Equal(t, text, got)

	_, err = a.Summarize(text, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Equal(t, int64(2), a.Status().Summaries)
}
