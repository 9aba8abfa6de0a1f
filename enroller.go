package voiceauth

import (
	"github.com/example/voice-auth-engine/internal/phoneme"
)

// Enroller accumulates per-sample speaker embeddings (and, when the
// phonetic-consistency policy is active, per-sample phoneme sequences)
// across an enrollment session. Not safe for concurrent use: AddSample
// mutates the accumulator lists, so the caller must externally serialize
// calls or confine an Enroller to a single goroutine.
type Enroller struct {
	models *Models
	policy PolicyConfig

	embeddings []Embedding
	phonemes   []phoneme.Sequence
}

// SampleCount returns the number of samples successfully accumulated so
// far.
func (e *Enroller) SampleCount() int { return len(e.embeddings) }

// AddSample runs the common feature pipeline over in and, on success,
// appends its embedding (and phoneme sequence, if the phonetic policy
// requires one) to the accumulator. A failing call does not mutate the
// accumulator: errors propagate unchanged from whichever pipeline stage
// raised them.
func (e *Enroller) AddSample(in AudioInput) error {
	features, err := runPipeline(e.models, e.policy, in)
	if err != nil {
		return err
	}

	e.embeddings = append(e.embeddings, features.embedding)
	if e.policy.requiresPhonemes() {
		e.phonemes = append(e.phonemes, features.phonemes)
	}
	return nil
}

// Finalize produces the EnrollmentArtifact for this session: the
// element-wise mean of every accumulated embedding (not renormalized to
// unit norm, since cosine similarity is scale-invariant) and, iff the phonetic-
// consistency policy (PolicyConfig.PhonemeThreshold) is active, a
// reference phoneme sequence chosen as the medoid of the accumulated
// sequences.
//
// Fails with ErrNoSamples if no sample was ever successfully added.
// Fails with *phoneme.ErrPhonemeInconsistency if any two accumulated
// sequences differ by more than PhonemeThreshold under normalized edit
// distance — enrollment requires every sample pair to agree within
// threshold, not just consecutive pairs.
func (e *Enroller) Finalize() (EnrollmentArtifact, error) {
	if len(e.embeddings) == 0 {
		return EnrollmentArtifact{}, ErrNoSamples
	}

	artifact := EnrollmentArtifact{MeanEmbedding: mean(e.embeddings)}

	if e.policy.phoneticPolicyActive() {
		if err := phoneme.CheckConsistency(e.phonemes, *e.policy.PhonemeThreshold); err != nil {
			return EnrollmentArtifact{}, err
		}
		artifact.ReferencePhonemes = phoneme.SelectReference(e.phonemes)
		artifact.HasReference = true
	}

	return artifact, nil
}
