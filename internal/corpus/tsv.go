package corpus

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"lexsim/internal/domain"
)

const maxLineBytes = 1 << 20

// ReadTSV parses "question<TAB>answer" lines. Blank lines are ignored. A line
// is skipped when it has fewer than two fields once trailing empty fields are
// dropped. Fields after the answer are ignored.
func ReadTSV(r io.Reader) ([]domain.QAPair, LoadStats, error) {
	var (
		pairs []domain.QAPair
		stats LoadStats
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := trimTrailingEmpty(strings.Split(line, "\t"))
		if len(parts) < 2 {
			stats.Skipped++
			continue
		}
		pairs = append(pairs, domain.QAPair{Question: parts[0], Answer: parts[1]})
		stats.Loaded++
	}
	if err := sc.Err(); err != nil {
		return nil, stats, fmt.Errorf("read tsv corpus: %w", err)
	}
	return pairs, stats, nil
}

// WriteTSV writes pairs in the format ReadTSV accepts. Tabs and newlines
// inside fields are replaced by spaces.
func WriteTSV(w io.Writer, pairs []domain.QAPair) error {
	bw := bufio.NewWriter(w)
	for _, p := range pairs {
		if _, err := fmt.Fprintf(bw, "%s\t%s\n", flatten(p.Question), flatten(p.Answer)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func trimTrailingEmpty(parts []string) []string {
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

var fieldReplacer = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ")

func flatten(s string) string { return fieldReplacer.Replace(s) }
