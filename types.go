// Package voiceauth performs text-dependent (passphrase) speaker
// verification over short Japanese utterances: it decides whether an
// audio sample is the previously enrolled speaker uttering the
// previously enrolled passphrase.
package voiceauth

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/example/voice-auth-engine/internal/embedder"
	"github.com/example/voice-auth-engine/internal/phoneme"
)

// EmbeddingDim is the speaker embedding dimensionality (CAM++ 3D-Speaker).
const EmbeddingDim = embedder.Dim

// embeddingBytes is the fixed serialized size: 192 float32 values, no
// header and no version tag (spec.md §3).
const embeddingBytes = EmbeddingDim * 4

// Embedding is a fixed-dimension speaker embedding vector.
type Embedding [EmbeddingDim]float32

// Bytes serializes e as EmbeddingDim little-endian IEEE-754 float32
// values, with no header and no version tag. Round-trips exactly through
// DecodeEmbedding.
func (e Embedding) Bytes() []byte {
	out := make([]byte, embeddingBytes)
	for i, v := range e {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

// ErrInvalidEmbeddingSize reports a byte slice that isn't exactly
// EmbeddingDim*4 bytes long.
type ErrInvalidEmbeddingSize struct {
	Got int
}

func (e *ErrInvalidEmbeddingSize) Error() string {
	return fmt.Sprintf("invalid embedding size: got %d bytes, want %d", e.Got, embeddingBytes)
}

// DecodeEmbedding deserializes b, as produced by Embedding.Bytes, back
// into an Embedding.
func DecodeEmbedding(b []byte) (Embedding, error) {
	var e Embedding
	if len(b) != embeddingBytes {
		return e, &ErrInvalidEmbeddingSize{Got: len(b)}
	}
	for i := range e {
		e[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return e, nil
}

// mean returns the element-wise arithmetic mean of embeddings, computed
// in float32. The result is not renormalized to unit norm: the downstream
// cosine similarity is scale-invariant, so an unnormalized mean and a
// renormalized one would score identically. See DESIGN.md's Open
// Questions for the explicit decision record.
func mean(embeddings []Embedding) Embedding {
	var sum [EmbeddingDim]float32
	for _, e := range embeddings {
		for i, v := range e {
			sum[i] += v
		}
	}
	n := float32(len(embeddings))
	var out Embedding
	for i, v := range sum {
		out[i] = v / n
	}
	return out
}

// PolicyConfig describes the checks active for a given Enroller/Verifier
// pair. It is immutable once handed to Configurator.CreateEnroller or
// Configurator.CreateVerifier: each created instance copies the value, so
// later mutation of a PolicyConfig held by the caller never affects a
// session already in flight.
type PolicyConfig struct {
	// CosineThreshold is the minimum speaker-embedding cosine similarity
	// to accept a verification. Default 0.5.
	CosineThreshold float64
	// MinSpeechSeconds is the minimum speech duration, after VAD, that
	// AddSample/Verify will accept. Default 3.0.
	MinSpeechSeconds float64
	// MinUniquePhonemes is the minimum distinct-phoneme count an
	// enrollment/verification sample's transcript must exhibit. Nil
	// disables the check. Default 5.
	MinUniquePhonemes *int
	// PhonemeThreshold is the maximum normalized edit distance allowed
	// between enrollment samples' phoneme sequences (at Finalize) and
	// between the enrolled reference and a verification sample's
	// sequence (at Verify). Nil disables both checks. Default disabled.
	PhonemeThreshold *float64
}

// DefaultPolicy returns the spec-documented defaults: cosine threshold
// 0.5, minimum speech 3.0s, minimum unique phonemes 5, phoneme
// consistency disabled.
func DefaultPolicy() PolicyConfig {
	minUnique := 5
	return PolicyConfig{
		CosineThreshold:   0.5,
		MinSpeechSeconds:  3.0,
		MinUniquePhonemes: &minUnique,
		PhonemeThreshold:  nil,
	}
}

// requiresPhonemes reports whether any phonetic check is active, meaning
// the common pipeline must run ASR + G2P at all.
func (p PolicyConfig) requiresPhonemes() bool {
	return p.MinUniquePhonemes != nil || p.PhonemeThreshold != nil
}

// phoneticPolicyActive reports whether the consistency/medoid machinery
// (enrollment reference sequence, Verify's phoneme_score) is active. This
// is distinct from requiresPhonemes: a policy can require the unique-
// phoneme floor without ever comparing sequences to each other.
func (p PolicyConfig) phoneticPolicyActive() bool {
	return p.PhonemeThreshold != nil
}

// EnrollmentArtifact is the persistable outcome of Enroller.Finalize: the
// mean speaker embedding across enrollment samples, plus — iff the
// phonetic-consistency policy was active during enrollment — a reference
// phoneme sequence chosen by medoid. Callers persist this value (e.g. as
// JSON or a custom binary record) and supply it back to
// Configurator.CreateVerifier in later sessions.
type EnrollmentArtifact struct {
	MeanEmbedding     Embedding        `json:"mean_embedding"`
	ReferencePhonemes phoneme.Sequence `json:"reference_phonemes,omitempty"`
	HasReference      bool             `json:"has_reference"`
}

// VerificationResult is the outcome of Verifier.Verify.
type VerificationResult struct {
	// Accepted is the final decision: Accepted when phonetic policy is
	// inactive equals SpeakerAccepted; otherwise SpeakerAccepted AND
	// PassphraseAccepted.
	Accepted bool
	// SpeakerScore is the cosine similarity of the enrolled mean
	// embedding and the test sample's embedding, in [-1, 1].
	SpeakerScore float64
	// PhonemeScore is the normalized edit distance between the enrolled
	// reference phoneme sequence and the test sample's sequence, present
	// iff the phonetic policy was active on the Verifier AND the
	// artifact carries a reference sequence.
	PhonemeScore *float64
	// PassphraseAccepted mirrors PhonemeScore's presence: non-nil iff
	// PhonemeScore is non-nil.
	PassphraseAccepted *bool
}
