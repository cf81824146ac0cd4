// Package corpus loads question/answer pairs for the retriever from TSV, YAML
// or SQLite sources. Malformed entries are skipped and counted, never fatal.
package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lexsim/internal/domain"
)

// Format names a corpus encoding.
type Format string

const (
	FormatAuto   Format = "auto"
	FormatTSV    Format = "tsv"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// LoadStats reports how many entries were accepted and skipped.
type LoadStats struct {
	Loaded  int
	Skipped int
}

// ParseFormat validates a format name. The empty string means auto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatTSV, FormatYAML, FormatSQLite:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown corpus format %q", domain.ErrInvalidArgument, s)
	}
}

// DetectFormat picks a format from the file extension, defaulting to TSV.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatTSV
	}
}

// Open reads the corpus at path in the given format.
func Open(ctx context.Context, path string, format Format) ([]domain.QAPair, LoadStats, error) {
	if format == "" || format == FormatAuto {
		format = DetectFormat(path)
	}
	switch format {
	case FormatTSV, FormatYAML:
		f, err := os.Open(path)
		if err != nil {
			return nil, LoadStats{}, fmt.Errorf("open corpus: %w", err)
		}
		defer f.Close()
		if format == FormatTSV {
			return ReadTSV(f)
		}
		return ReadYAML(f)
	case FormatSQLite:
		if _, err := os.Stat(path); err != nil {
			return nil, LoadStats{}, fmt.Errorf("open corpus: %w", err)
		}
		store, err := OpenSQLite(path)
		if err != nil {
			return nil, LoadStats{}, err
		}
		defer store.Close()
		return store.Load(ctx)
	default:
		return nil, LoadStats{}, fmt.Errorf("%w: unknown corpus format %q", domain.ErrInvalidArgument, format)
	}
}
