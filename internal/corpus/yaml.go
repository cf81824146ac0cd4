package corpus

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"lexsim/internal/domain"
)

// ReadYAML parses a YAML sequence of {question, answer} mappings. Entries with
// a blank question are skipped.
func ReadYAML(r io.Reader) ([]domain.QAPair, LoadStats, error) {
	var raw []domain.QAPair
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, LoadStats{}, fmt.Errorf("read yaml corpus: %w", err)
	}
	var stats LoadStats
	pairs := make([]domain.QAPair, 0, len(raw))
	for _, p := range raw {
		if strings.TrimSpace(p.Question) == "" {
			stats.Skipped++
			continue
		}
		pairs = append(pairs, p)
		stats.Loaded++
	}
	return pairs, stats, nil
}

// WriteYAML encodes pairs as ReadYAML expects them.
func WriteYAML(w io.Writer, pairs []domain.QAPair) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(pairs); err != nil {
		return err
	}
	return enc.Close()
}
