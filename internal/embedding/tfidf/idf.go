package tfidf

import "math"

// ComputeIDF returns the smoothed inverse document frequency of every
// vocabulary term over documents:
//
//	idf[i] = ln((N+1)/(df[i]+1)) + 1
//
// df counts documents that contain the term at least once.
func ComputeIDF(documents []string, vocabulary *Vocabulary) []float64 {
	counts := make([][]float64, len(documents))
	for i, doc := range documents {
		counts[i] = vocabulary.Vectorize(doc)
	}
	return idfFromCounts(counts, vocabulary.Size())
}

func idfFromCounts(counts [][]float64, size int) []float64 {
	df := make([]float64, size)
	for _, vec := range counts {
		for i, c := range vec {
			if c > 0 {
				df[i]++
			}
		}
	}
	n := float64(len(counts))
	idf := make([]float64, size)
	for i := range idf {
		idf[i] = math.Log((n+1)/(df[i]+1)) + 1
	}
	return idf
}

// TFIDF scales the term counts of doc by idf.
func TFIDF(doc string, vocabulary *Vocabulary, idf []float64) []float64 {
	return Weight(vocabulary.Vectorize(doc), idf)
}

// Weight multiplies tf by idf in place and returns it.
func Weight(tf, idf []float64) []float64 {
	for i := range tf {
		if i < len(idf) {
			tf[i] *= idf[i]
		} else {
			tf[i] = 0
		}
	}
	return tf
}
