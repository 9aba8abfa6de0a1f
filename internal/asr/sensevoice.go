// Package asr recognizes short Japanese utterances using the SenseVoice
// offline recognizer via sherpa-onnx-go.
package asr

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sherpa "github.com/k2-fsa/sherpa-onnx-go/sherpa_onnx"

	"github.com/example/voice-auth-engine/internal/audio"
)

// Config configures the SenseVoice recognizer.
type Config struct {
	ModelDir string
	Language string
	Threads  int
}

// ErrModelLoad reports a failure locating or constructing the recognizer.
type ErrModelLoad struct {
	Cause error
}

func (e *ErrModelLoad) Error() string { return fmt.Sprintf("load ASR model: %v", e.Cause) }
func (e *ErrModelLoad) Unwrap() error { return e.Cause }

// ErrRecognition reports a failure during decode, including an empty
// input that the native model cannot process.
var ErrRecognition = fmt.Errorf("recognition failed")

// Recognizer wraps a loaded SenseVoice model. Safe to reuse across calls;
// not safe for concurrent use from multiple goroutines.
type Recognizer struct {
	native *sherpa.OfflineRecognizer
}

// NewRecognizer validates the model directory layout (model.int8.onnx +
// tokens.txt, mirroring the upstream sherpa-onnx release layout) and
// constructs the native recognizer.
func NewRecognizer(cfg Config) (*Recognizer, error) {
	if cfg.Language == "" {
		cfg.Language = "ja"
	}
	if cfg.Threads == 0 {
		cfg.Threads = 1
	}

	modelFile := filepath.Join(cfg.ModelDir, "model.int8.onnx")
	tokensFile := filepath.Join(cfg.ModelDir, "tokens.txt")
	if _, err := os.Stat(modelFile); err != nil {
		return nil, &ErrModelLoad{Cause: fmt.Errorf("model file: %w", err)}
	}
	if _, err := os.Stat(tokensFile); err != nil {
		return nil, &ErrModelLoad{Cause: fmt.Errorf("tokens file: %w", err)}
	}

	recognizerConfig := sherpa.OfflineRecognizerConfig{
		FeatConfig: sherpa.FeatureConfig{
			SampleRate: audio.TargetSampleRate,
			FeatureDim: 80,
		},
		ModelConfig: sherpa.OfflineModelConfig{
			SenseVoice: sherpa.OfflineSenseVoiceModelConfig{
				Model:                       modelFile,
				Language:                    cfg.Language,
				UseInverseTextNormalization: 1,
			},
			Tokens:     tokensFile,
			NumThreads: cfg.Threads,
		},
	}

	native := sherpa.NewOfflineRecognizer(&recognizerConfig)
	if native == nil {
		return nil, &ErrModelLoad{Cause: fmt.Errorf("recognizer init returned nil")}
	}
	return &Recognizer{native: native}, nil
}

// Close releases the native recognizer handle.
func (r *Recognizer) Close() {
	if r.native != nil {
		sherpa.DeleteOfflineRecognizer(r.native)
		r.native = nil
	}
}

// Transcribe decodes pcm and returns the recognized text, trimmed of
// surrounding whitespace.
func (r *Recognizer) Transcribe(pcm audio.PCM) (string, error) {
	if len(pcm.Samples) == 0 {
		return "", ErrRecognition
	}

	stream := sherpa.NewOfflineStream(r.native)
	defer sherpa.DeleteOfflineStream(stream)

	stream.AcceptWaveform(pcm.SampleRate, pcm.Float32())
	r.native.Decode(stream)

	result := stream.GetResult()
	return strings.TrimSpace(result.Text), nil
}
