package phoneme

import (
	"fmt"

	"github.com/example/voice-auth-engine/internal/mathkernel"
)

// ErrEmptyPassphrase reports that the source text had no content to
// phonemize.
var ErrEmptyPassphrase = fmt.Errorf("passphrase is empty")

// ErrInsufficientPhoneme reports a phoneme sequence below the configured
// diversity floor.
type ErrInsufficientPhoneme struct {
	UniqueCount int
	MinRequired int
}

func (e *ErrInsufficientPhoneme) Error() string {
	return fmt.Sprintf("insufficient unique phonemes: %d < %d", e.UniqueCount, e.MinRequired)
}

// ErrPhonemeInconsistency reports the first enrollment sample pair whose
// normalized edit distance exceeds the consistency threshold.
type ErrPhonemeInconsistency struct {
	I, J     int
	Distance float64
}

func (e *ErrPhonemeInconsistency) Error() string {
	return fmt.Sprintf("phoneme inconsistency between samples %d and %d: distance %.3f", e.I, e.J, e.Distance)
}

// CheckUnique fails if seq has fewer than minUnique distinct phonemes.
func CheckUnique(seq Sequence, minUnique int) error {
	if seq.UniqueCount() < minUnique {
		return &ErrInsufficientPhoneme{UniqueCount: seq.UniqueCount(), MinRequired: minUnique}
	}
	return nil
}

// CheckConsistency verifies every pair of enrollment phoneme sequences is
// within threshold of each other under normalized edit distance. It scans
// row-major by i then j and fails on the first offending pair.
func CheckConsistency(samples []Sequence, threshold float64) error {
	for i := 0; i < len(samples); i++ {
		for j := i + 1; j < len(samples); j++ {
			d := mathkernel.NormalizedEditDistance(samples[i], samples[j])
			if d > threshold {
				return &ErrPhonemeInconsistency{I: i, J: j, Distance: d}
			}
		}
	}
	return nil
}

// SelectReference returns the medoid of samples: the sequence minimizing
// the sum of normalized edit distances to every other sample, with
// lowest-index tie-breaking.
func SelectReference(samples []Sequence) Sequence {
	if len(samples) == 0 {
		return nil
	}
	generic := make([][]string, len(samples))
	for i, s := range samples {
		generic[i] = []string(s)
	}
	idx := mathkernel.Medoid(generic)
	return samples[idx]
}
