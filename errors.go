package voiceauth

import "fmt"

// ErrNoSamples reports Finalize called on an Enroller that never received
// a successful AddSample call.
var ErrNoSamples = fmt.Errorf("enroller has no samples")

// Every other error category in spec.md §7 — NotFound, UnsupportedFormat,
// DecodeError, EmptyAudio, InsufficientDuration, EmptyPassphrase,
// InsufficientPhoneme, PhonemeInconsistency, ModelLoadError,
// EmbeddingExtraction, RecognitionError — is raised by the component that
// owns it (internal/audio, internal/phoneme, internal/vad, internal/asr,
// internal/embedder) and propagated unchanged through AddSample/Verify, as
// spec.md §7's propagation policy requires. Callers type-switch on those
// concrete types (e.g. *audio.ErrInsufficientDuration,
// *phoneme.ErrPhonemeInconsistency) rather than on anything declared here.
