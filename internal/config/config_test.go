package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexsim/internal/config"
	"lexsim/internal/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LEXSIM_CORPUS_PATH", "LEXSIM_CORPUS_FORMAT", "LEXSIM_THRESHOLD", "LEXSIM_TOP_K",
		"LEXSIM_SUMMARY_SENTENCES", "LEXSIM_DAMPING", "LEXSIM_ITERATIONS", "LEXSIM_TOLERANCE",
		"LEXSIM_DROP_UNTERMINATED", "LEXSIM_ADDR", "LEXSIM_LOG_LEVEL", "LEXSIM_LOG_FORMAT", "LEXSIM_LOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 0.05, cfg.Retriever.Threshold)
	assert.Equal(t, domain.FallbackAnswer, cfg.Retriever.Fallback)
	assert.Equal(t, 5, cfg.Retriever.TopK)
	assert.Equal(t, 3, cfg.Summarizer.Sentences)
	assert.Equal(t, 0.85, cfg.Summarizer.Damping)
	assert.Equal(t, 50, cfg.Summarizer.Iterations)
	assert.Equal(t, 0.0, cfg.Summarizer.Tolerance)
	assert.False(t, cfg.Summarizer.DropUnterminated)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_PartialFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "lexsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retriever:\n  threshold: 0.2\n  fallback: \"\"\nsummarizer:\n  sentences: 2\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.2, cfg.Retriever.Threshold)
	assert.Equal(t, domain.FallbackAnswer, cfg.Retriever.Fallback)
	assert.Equal(t, 2, cfg.Summarizer.Sentences)
	assert.Equal(t, 0.85, cfg.Summarizer.Damping)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retriever: [unclosed"), 0o644))
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LEXSIM_CORPUS_PATH", "/data/faq.yaml")
	t.Setenv("LEXSIM_THRESHOLD", "0.3")
	t.Setenv("LEXSIM_TOP_K", "7")
	t.Setenv("LEXSIM_TOLERANCE", "1e-6")
	t.Setenv("LEXSIM_DROP_UNTERMINATED", "true")
	t.Setenv("LEXSIM_ITERATIONS", "not-a-number")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/data/faq.yaml", cfg.Retriever.CorpusPath)
	assert.Equal(t, 0.3, cfg.Retriever.Threshold)
	assert.Equal(t, 7, cfg.Retriever.TopK)
	assert.Equal(t, 1e-6, cfg.Summarizer.Tolerance)
	assert.True(t, cfg.Summarizer.DropUnterminated)
	assert.Equal(t, 50, cfg.Summarizer.Iterations)
}

func TestSaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.Default()
	cfg.Retriever.CorpusPath = "faq.db"
	cfg.Log.Format = "json"

	require.NoError(t, config.Save(path, cfg))
	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	cfg.Retriever.Threshold = 1.5
	cfg.Retriever.CorpusFormat = "csv"
	cfg.Summarizer.Damping = -1
	cfg.Summarizer.Sentences = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "retriever.threshold")
	assert.Contains(t, err.Error(), "retriever.corpus_format")
	assert.Contains(t, err.Error(), "summarizer.damping")
	assert.Contains(t, err.Error(), "summarizer.sentences")
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("LEXSIM_TEST_STR", "value")
	t.Setenv("LEXSIM_TEST_INT", "12")
	t.Setenv("LEXSIM_TEST_FLOAT", "0.5")
	t.Setenv("LEXSIM_TEST_BOOL", "nope")

	assert.Equal(t, "value", config.GetStringEnv("LEXSIM_TEST_STR", "d"))
	assert.Equal(t, "d", config.GetStringEnv("LEXSIM_TEST_UNSET", "d"))
	assert.Equal(t, 12, config.GetIntEnv("LEXSIM_TEST_INT", 1))
	assert.Equal(t, 0.5, config.GetFloatEnv("LEXSIM_TEST_FLOAT", 1))
	assert.True(t, config.GetBoolEnv("LEXSIM_TEST_BOOL", true))
}
