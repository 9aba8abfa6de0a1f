package voiceauth

import (
	"github.com/example/voice-auth-engine/internal/audio"
	"github.com/example/voice-auth-engine/internal/phoneme"
	"github.com/example/voice-auth-engine/internal/vad"
)

// AudioInput is either raw bytes or a filesystem path. Exactly one field
// is set; constructors below enforce this.
type AudioInput struct {
	bytes []byte
	path  string

	// pcm, when non-nil, bypasses decoding entirely. It exists only so
	// this package's own tests can drive the pipeline with synthetic PCM
	// instead of real container bytes; production AudioInput values
	// always come from FromBytes/FromPath.
	pcm *audio.PCM
}

// FromBytes wraps an in-memory audio payload. The container format is
// sniffed by the decoder; no extension check applies (spec.md §4.1, §9).
func FromBytes(data []byte) AudioInput { return AudioInput{bytes: data} }

// FromPath wraps a filesystem path. audio.LoadFile rejects unrecognized extensions
// before ever touching the decoder.
func FromPath(path string) AudioInput { return AudioInput{path: path} }

func (in AudioInput) load() (audio.PCM, error) {
	if in.pcm != nil {
		return *in.pcm, nil
	}
	if in.path != "" {
		return audio.LoadFile(in.path)
	}
	return audio.LoadBytes(in.bytes)
}

// sampleFeatures is the output of runPipeline: the speaker embedding
// always present, the phoneme sequence present only when the policy
// requires phonetic work.
type sampleFeatures struct {
	embedding Embedding
	phonemes  phoneme.Sequence
}

// runPipeline is the common feature pipeline shared by Enroller.AddSample
// and Verifier.Verify (spec.md §4.11), executed in this exact order:
// load → VAD detect+extract → duration validate → (ASR → G2P →
// unique-phoneme check, iff required) → embed.
//
// Empty speech after VAD surfaces as audio.ErrEmpty at the duration-
// validate step, not earlier: extracting zero segments is not itself an
// error (spec.md §4.3), it just produces a zero-length buffer that then
// fails the duration floor.
func runPipeline(m *Models, policy PolicyConfig, in AudioInput) (sampleFeatures, error) {
	pcm, err := in.load()
	if err != nil {
		return sampleFeatures{}, err
	}

	segments, err := m.vad.DetectSpeech(pcm)
	if err != nil {
		return sampleFeatures{}, err
	}
	speech := vad.ExtractSpeech(segments)

	if err := audio.Validate(speech, policy.MinSpeechSeconds); err != nil {
		return sampleFeatures{}, err
	}

	var phonemes phoneme.Sequence
	if policy.requiresPhonemes() {
		text, err := m.asr.Transcribe(speech)
		if err != nil {
			return sampleFeatures{}, err
		}

		phonemes, err = phoneme.Extract(m.g2p, text)
		if err != nil {
			return sampleFeatures{}, err
		}

		if policy.MinUniquePhonemes != nil {
			if err := phoneme.CheckUnique(phonemes, *policy.MinUniquePhonemes); err != nil {
				return sampleFeatures{}, err
			}
		}
	}

	embedding, err := m.embedder.Extract(speech)
	if err != nil {
		return sampleFeatures{}, err
	}

	return sampleFeatures{embedding: Embedding(embedding), phonemes: phonemes}, nil
}
