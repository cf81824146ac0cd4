// Package ranker scores the nodes of a weighted graph with power-iteration
// PageRank.
package ranker

import (
	"fmt"
	"math"

	"lexsim/internal/domain"
)

// Default parameters.
const (
	DefaultDamping    = 0.85
	DefaultIterations = 50
)

// Options controls the power iteration.
//
// Tolerance, when positive, stops early once the L1 change between two rounds
// drops below it. Zero disables the check and always runs Iterations rounds.
type Options struct {
	Damping    float64
	Iterations int
	Tolerance  float64
}

// DefaultOptions returns d=0.85, 50 iterations and no early exit.
func DefaultOptions() Options {
	return Options{Damping: DefaultDamping, Iterations: DefaultIterations}
}

// Validate checks the option ranges.
func (o Options) Validate() error {
	if math.IsNaN(o.Damping) || o.Damping < 0 || o.Damping > 1 {
		return fmt.Errorf("%w: damping %v outside [0, 1]", domain.ErrInvalidArgument, o.Damping)
	}
	if o.Iterations < 0 {
		return fmt.Errorf("%w: negative iteration count %d", domain.ErrInvalidArgument, o.Iterations)
	}
	if math.IsNaN(o.Tolerance) || o.Tolerance < 0 {
		return fmt.Errorf("%w: negative tolerance %v", domain.ErrInvalidArgument, o.Tolerance)
	}
	return nil
}

// Rank runs a fixed number of PageRank rounds over the similarity matrix m.
func Rank(m [][]float64, damping float64, iterations int) ([]float64, error) {
	return RankWithOptions(m, Options{Damping: damping, Iterations: iterations})
}

// RankWithOptions scores every node of m. Each round computes
//
//	score'[i] = (1-d)/N + d * sum_j score[j] * m[j][i] / rowSum(j)
//
// from the previous round's scores. A row summing to zero contributes nothing
// to any node; its mass is not redistributed.
func RankWithOptions(m [][]float64, opts Options) ([]float64, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	n := len(m)
	for i, row := range m {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", domain.ErrInvalidArgument, i, len(row), n)
		}
	}
	if n == 0 {
		return []float64{}, nil
	}

	rowSums := make([]float64, n)
	for j, row := range m {
		for _, w := range row {
			rowSums[j] += w
		}
	}

	d := opts.Damping
	base := (1 - d) / float64(n)
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1 / float64(n)
	}
	next := make([]float64, n)
	for it := 0; it < opts.Iterations; it++ {
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < n; j++ {
				if rowSums[j] != 0 {
					sum += scores[j] * (m[j][i] / rowSums[j])
				}
			}
			next[i] = base + d*sum
		}
		delta := 0.0
		for i := range next {
			delta += math.Abs(next[i] - scores[i])
		}
		scores, next = next, scores
		if opts.Tolerance > 0 && delta < opts.Tolerance {
			break
		}
	}
	return scores, nil
}
