package voiceauth

import (
	"github.com/example/voice-auth-engine/internal/mathkernel"
)

// Verifier scores a test sample against a previously produced
// EnrollmentArtifact under a fixed PolicyConfig. Not safe for concurrent
// use (consistent with Enroller, though Verify itself holds no mutable
// session state beyond what the common pipeline allocates per call).
type Verifier struct {
	models   *Models
	policy   PolicyConfig
	artifact EnrollmentArtifact
}

// Verify runs the common feature pipeline over in and combines speaker
// and (where active) phonetic evidence into a VerificationResult.
//
// The decision rule (spec.md §4.10):
//  1. speaker_score = cosine(artifact.MeanEmbedding, e_test)
//  2. speaker_accepted = speaker_score >= policy.CosineThreshold (inclusive)
//  3. if the phonetic policy is active AND the artifact carries a
//     reference sequence: phoneme_score = normalized_edit_distance(...),
//     passphrase_accepted = phoneme_score <= policy.PhonemeThreshold
//     (inclusive), accepted = speaker_accepted AND passphrase_accepted,
//     and PhonemeScore/PassphraseAccepted are both populated.
//  4. otherwise: accepted = speaker_accepted, and PhonemeScore/
//     PassphraseAccepted stay nil.
func (v *Verifier) Verify(in AudioInput) (VerificationResult, error) {
	features, err := runPipeline(v.models, v.policy, in)
	if err != nil {
		return VerificationResult{}, err
	}

	speakerScore := mathkernel.CosineSimilarity(v.artifact.MeanEmbedding[:], features.embedding[:])
	speakerAccepted := speakerScore >= v.policy.CosineThreshold

	result := VerificationResult{SpeakerScore: speakerScore}

	if v.policy.phoneticPolicyActive() && v.artifact.HasReference {
		phonemeScore := mathkernel.NormalizedEditDistance(v.artifact.ReferencePhonemes, features.phonemes)
		passphraseAccepted := phonemeScore <= *v.policy.PhonemeThreshold

		result.PhonemeScore = &phonemeScore
		result.PassphraseAccepted = &passphraseAccepted
		result.Accepted = speakerAccepted && passphraseAccepted
		return result, nil
	}

	result.Accepted = speakerAccepted
	return result, nil
}
