package similarity_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"lexsim/internal/similarity"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"scaled", []float64{1, 2, 3}, []float64{2, 4, 6}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"half overlap", []float64{1, 1, 0}, []float64{1, 0, 1}, 0.5},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0},
		{"both zero", []float64{0, 0}, []float64{0, 0}, 0},
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, similarity.Cosine(tt.a, tt.b), 1e-12)
		})
	}
}

func TestCosine_SymmetricAndBounded(t *testing.T) {
	a := []float64{0.3, 1.7, 0, 4.2}
	b := []float64{2.1, 0, 0.9, 1.1}
	ab := similarity.Cosine(a, b)
	assert.Equal(t, ab, similarity.Cosine(b, a))
	assert.True(t, ab >= -1 && ab <= 1)
	assert.False(t, math.IsNaN(ab))
}
