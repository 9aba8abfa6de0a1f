// Package mathkernel implements the numeric core shared by enrollment and
// verification: cosine similarity over embeddings, normalized edit
// distance and medoid selection over phoneme sequences.
package mathkernel

import "math"

// CosineSimilarity returns the cosine similarity of a and b in [-1, 1].
// If either vector has zero norm, it returns exactly 0.0 rather than
// dividing by zero.
func CosineSimilarity(a, b []float32) float64 {
	dot := dotProduct(a, b)
	normA := math.Sqrt(float64(dotProduct(a, a)))
	normB := math.Sqrt(float64(dotProduct(b, b)))
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return float64(dot) / (normA * normB)
}
