// Package similarity holds the vector similarity primitives shared by the
// retriever and the summarizer.
package similarity

import "math"

// Cosine returns dot(a, b) / (|a| |b|). It returns 0 when either vector has
// zero magnitude or the lengths differ.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

