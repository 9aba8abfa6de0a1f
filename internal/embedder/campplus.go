// Package embedder extracts fixed-dimension speaker embeddings from PCM
// audio using the CAM++ (3D-Speaker) model via sherpa-onnx-go.
package embedder

import (
	"fmt"
	"os"

	sherpa "github.com/k2-fsa/sherpa-onnx-go/sherpa_onnx"

	"github.com/example/voice-auth-engine/internal/audio"
)

// Dim is the CAM++ 3D-Speaker embedding dimensionality.
const Dim = 192

// minDurationSeconds is the floor below which the native extractor
// refuses to produce a reliable embedding.
const minDurationSeconds = 0.1

// Config configures the CAM++ speaker embedding extractor.
type Config struct {
	ModelPath string
	Threads   int
}

// ErrModelLoad reports a failure locating or constructing the extractor.
type ErrModelLoad struct {
	Cause error
}

func (e *ErrModelLoad) Error() string { return fmt.Sprintf("load embedding model: %v", e.Cause) }
func (e *ErrModelLoad) Unwrap() error { return e.Cause }

// ErrExtraction reports a failure computing an embedding: empty input,
// input shorter than the model's minimum duration, or the native
// extractor declining to produce a result.
type ErrExtraction struct {
	Reason string
}

func (e *ErrExtraction) Error() string { return fmt.Sprintf("embedding extraction: %s", e.Reason) }

// Extractor wraps a loaded CAM++ model. Safe to reuse across calls; not
// safe for concurrent use from multiple goroutines.
type Extractor struct {
	native *sherpa.SpeakerEmbeddingExtractor
}

// NewExtractor validates the model file exists and constructs the native
// extractor.
func NewExtractor(cfg Config) (*Extractor, error) {
	if cfg.Threads == 0 {
		cfg.Threads = 1
	}
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, &ErrModelLoad{Cause: err}
	}

	config := sherpa.SpeakerEmbeddingExtractorConfig{
		Model:      cfg.ModelPath,
		NumThreads: cfg.Threads,
	}
	native := sherpa.NewSpeakerEmbeddingExtractor(&config)
	if native == nil {
		return nil, &ErrModelLoad{Cause: fmt.Errorf("extractor init returned nil")}
	}
	return &Extractor{native: native}, nil
}

// Close releases the native extractor handle.
func (e *Extractor) Close() {
	if e.native != nil {
		sherpa.DeleteSpeakerEmbeddingExtractor(e.native)
		e.native = nil
	}
}

// Extract computes a speaker embedding from pcm.
func (e *Extractor) Extract(pcm audio.PCM) ([Dim]float32, error) {
	var out [Dim]float32

	if len(pcm.Samples) == 0 {
		return out, &ErrExtraction{Reason: "empty audio"}
	}
	minSamples := int(float64(pcm.SampleRate) * minDurationSeconds)
	if len(pcm.Samples) < minSamples {
		return out, &ErrExtraction{Reason: "audio too short"}
	}

	stream := sherpa.NewSpeakerEmbeddingExtractorStream(e.native)
	defer sherpa.DeleteSpeakerEmbeddingExtractorStream(stream)

	stream.AcceptWaveform(pcm.SampleRate, pcm.Float32())
	stream.InputFinished()

	if !e.native.IsReady(stream) {
		return out, &ErrExtraction{Reason: "audio too short"}
	}

	values := e.native.Compute(stream)
	if len(values) != Dim {
		return out, &ErrExtraction{Reason: fmt.Sprintf("unexpected embedding dimension %d", len(values))}
	}
	copy(out[:], values)
	return out, nil
}
