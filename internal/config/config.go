package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"lexsim/internal/domain"
)

// RetrieverConfig configures corpus loading and answer selection.
type RetrieverConfig struct {
	CorpusPath   string  `yaml:"corpus_path"`
	CorpusFormat string  `yaml:"corpus_format"`
	Threshold    float64 `yaml:"threshold"`
	Fallback     string  `yaml:"fallback"`
	EmptyPrompt  string  `yaml:"empty_prompt"`
	TopK         int     `yaml:"top_k"`
}

// SummarizerConfig configures sentence splitting and ranking.
type SummarizerConfig struct {
	Sentences        int     `yaml:"sentences"`
	Damping          float64 `yaml:"damping"`
	Iterations       int     `yaml:"iterations"`
	Tolerance        float64 `yaml:"tolerance"`
	DropUnterminated bool    `yaml:"drop_unterminated"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Retriever  RetrieverConfig  `yaml:"retriever"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyConfigDefaults(cfg)
	applyEnv(cfg)
	return cfg, nil
}

// LoadDefault tries ./lexsim.yaml first, then ~/.config/lexsim/config.yaml.
// If neither exists, it writes defaults to ~/.config/lexsim/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "lexsim.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnv(cfg)
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects values the engine cannot run with.
func (c *AppConfig) Validate() error {
	var errs []error
	if t := c.Retriever.Threshold; math.IsNaN(t) || t < 0 || t > 1 {
		errs = append(errs, fmt.Errorf("retriever.threshold %v outside [0, 1]", t))
	}
	if c.Retriever.TopK < 1 {
		errs = append(errs, fmt.Errorf("retriever.top_k %d, want at least 1", c.Retriever.TopK))
	}
	switch strings.ToLower(c.Retriever.CorpusFormat) {
	case "", "auto", "tsv", "yaml", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("retriever.corpus_format %q unknown", c.Retriever.CorpusFormat))
	}
	if c.Summarizer.Sentences < 1 {
		errs = append(errs, fmt.Errorf("summarizer.sentences %d, want at least 1", c.Summarizer.Sentences))
	}
	if d := c.Summarizer.Damping; math.IsNaN(d) || d < 0 || d > 1 {
		errs = append(errs, fmt.Errorf("summarizer.damping %v outside [0, 1]", d))
	}
	if c.Summarizer.Iterations < 0 {
		errs = append(errs, fmt.Errorf("summarizer.iterations %d is negative", c.Summarizer.Iterations))
	}
	if c.Summarizer.Tolerance < 0 {
		errs = append(errs, fmt.Errorf("summarizer.tolerance %v is negative", c.Summarizer.Tolerance))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", domain.ErrInvalidArgument, errors.Join(errs...))
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lexsim", "config.yaml"), nil
}

// Default returns the reference engine parameters.
func Default() *AppConfig {
	return &AppConfig{
		Retriever: RetrieverConfig{
			CorpusPath:   "qa_corpus.tsv",
			CorpusFormat: "auto",
			Threshold:    0.05,
			Fallback:     domain.FallbackAnswer,
			EmptyPrompt:  "Say something, please.",
			TopK:         5,
		},
		Summarizer: SummarizerConfig{Sentences: 3, Damping: 0.85, Iterations: 50},
		Server:     ServerConfig{Addr: ":8080", MaxBodyBytes: 1 << 20},
		Log:        LogConfig{Level: "info", Format: "text"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	def := Default()
	if cfg.Retriever.Fallback == "" {
		cfg.Retriever.Fallback = def.Retriever.Fallback
	}
	if cfg.Retriever.EmptyPrompt == "" {
		cfg.Retriever.EmptyPrompt = def.Retriever.EmptyPrompt
	}
	if cfg.Retriever.TopK == 0 {
		cfg.Retriever.TopK = def.Retriever.TopK
	}
	if cfg.Summarizer.Sentences == 0 {
		cfg.Summarizer.Sentences = def.Summarizer.Sentences
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = def.Server.MaxBodyBytes
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
}

// applyEnv overrides file values with LEXSIM_* environment variables.
func applyEnv(cfg *AppConfig) {
	cfg.Retriever.CorpusPath = GetStringEnv("LEXSIM_CORPUS_PATH", cfg.Retriever.CorpusPath)
	cfg.Retriever.CorpusFormat = GetStringEnv("LEXSIM_CORPUS_FORMAT", cfg.Retriever.CorpusFormat)
	cfg.Retriever.Threshold = GetFloatEnv("LEXSIM_THRESHOLD", cfg.Retriever.Threshold)
	cfg.Retriever.TopK = GetIntEnv("LEXSIM_TOP_K", cfg.Retriever.TopK)
	cfg.Summarizer.Sentences = GetIntEnv("LEXSIM_SUMMARY_SENTENCES", cfg.Summarizer.Sentences)
	cfg.Summarizer.Damping = GetFloatEnv("LEXSIM_DAMPING", cfg.Summarizer.Damping)
	cfg.Summarizer.Iterations = GetIntEnv("LEXSIM_ITERATIONS", cfg.Summarizer.Iterations)
	cfg.Summarizer.Tolerance = GetFloatEnv("LEXSIM_TOLERANCE", cfg.Summarizer.Tolerance)
	cfg.Summarizer.DropUnterminated = GetBoolEnv("LEXSIM_DROP_UNTERMINATED", cfg.Summarizer.DropUnterminated)
	cfg.Server.Addr = GetStringEnv("LEXSIM_ADDR", cfg.Server.Addr)
	cfg.Log.Level = GetStringEnv("LEXSIM_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = GetStringEnv("LEXSIM_LOG_FORMAT", cfg.Log.Format)
	cfg.Log.File = GetStringEnv("LEXSIM_LOG_FILE", cfg.Log.File)
}

func GetStringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
