package voiceauth

import (
	"fmt"
	"log/slog"

	"github.com/example/voice-auth-engine/internal/asr"
	"github.com/example/voice-auth-engine/internal/audio"
	"github.com/example/voice-auth-engine/internal/embedder"
	"github.com/example/voice-auth-engine/internal/mathkernel"
	"github.com/example/voice-auth-engine/internal/vad"
)

// speechDetector, transcriber, and embedExtractor narrow the three native
// wrappers down to the single method the pipeline calls. Models is built
// against these interfaces — rather than the concrete *vad.Detector/
// *asr.Recognizer/*embedder.Extractor types directly — so tests can swap
// in deterministic fakes for S1-style scenarios without a real ONNX
// runtime or model files on disk; *vad.Detector etc. satisfy them as-is.
type speechDetector interface {
	DetectSpeech(pcm audio.PCM) (vad.Segments, error)
}

type transcriber interface {
	Transcribe(pcm audio.PCM) (string, error)
}

type embedExtractor interface {
	Extract(pcm audio.PCM) ([embedder.Dim]float32, error)
}

// ModelsConfig names the on-disk model artifacts to load. Resolving
// this directory (env var, project-local convenience path, or OS cache
// dir) happens once at application start — see internal/model.
// ResolveModelsDir — never inside the core's per-call pipeline.
type ModelsConfig struct {
	VADModelPath      string
	ASRModelDir       string
	ASRLanguage       string
	EmbedderModelPath string
	Threads           int
}

// Models bundles the three owned native model handles the pipeline needs:
// one Silero VAD detector, one SenseVoice recognizer, one CAM++ speaker
// embedding extractor. It is constructed once and threaded through a
// Configurator, mirroring the Design Note in spec.md §9 ("Dynamic
// container of models"): explicit injection in place of the original's
// process-global lazy singletons. The core never reaches out to the
// filesystem or an environment variable on its own to find a model.
type Models struct {
	vad      speechDetector
	asr      transcriber
	embedder embedExtractor
	g2p      phonemeEngine

	closers []func()
}

// phonemeEngine is a type alias for an interface with the same method set
// as phoneme.G2PEngine, kept private so callers pass their G2P engine to
// NewModels rather than reaching into internal/phoneme directly.
type phonemeEngine = interface {
	Phonemize(text string) ([]string, error)
}

// NewModels constructs the ASR and speaker-embedder native handles
// eagerly; the VAD detector only checks its model file here and creates
// its native handle per DetectSpeech call. g2p is the external Japanese grapheme-to-phoneme
// collaborator (spec.md §1); it is only invoked when a policy's unique-
// phoneme count or phoneme threshold is active, so it may be nil when
// every Configurator built from these Models uses a policy with both
// disabled.
func NewModels(cfg ModelsConfig, g2p phonemeEngine) (*Models, error) {
	slog.Info("math kernel dispatch", "cpu_capabilities", mathkernel.Capabilities())

	vadDetector, err := vad.NewDetector(vad.Config{ModelPath: cfg.VADModelPath})
	if err != nil {
		return nil, fmt.Errorf("construct VAD: %w", err)
	}

	recognizer, err := asr.NewRecognizer(asr.Config{
		ModelDir: cfg.ASRModelDir,
		Language: cfg.ASRLanguage,
		Threads:  cfg.Threads,
	})
	if err != nil {
		return nil, fmt.Errorf("construct ASR: %w", err)
	}

	extractor, err := embedder.NewExtractor(embedder.Config{
		ModelPath: cfg.EmbedderModelPath,
		Threads:   cfg.Threads,
	})
	if err != nil {
		recognizer.Close()
		return nil, fmt.Errorf("construct embedder: %w", err)
	}

	return &Models{
		vad:      vadDetector,
		asr:      recognizer,
		embedder: extractor,
		g2p:      g2p,
		closers:  []func(){recognizer.Close, extractor.Close},
	}, nil
}

// Close releases every native handle. Safe to call once after the last
// live Enroller/Verifier built from these Models has gone out of scope.
func (m *Models) Close() {
	for _, closer := range m.closers {
		closer()
	}
}
