// Package vad detects speech segments in PCM audio using Silero VAD via
// sherpa-onnx-go.
package vad

import (
	"fmt"
	"os"

	sherpa "github.com/k2-fsa/sherpa-onnx-go/sherpa_onnx"

	"github.com/example/voice-auth-engine/internal/audio"
)

// windowSize matches the fixed Silero VAD frame size used throughout the
// sherpa-onnx examples.
const windowSize = 512

// bufferSeconds bounds the detector's internal ring buffer; 60s comfortably
// covers a short passphrase utterance.
const bufferSeconds = 60

// Segment is a detected speech region, given as sample indices into the
// source PCM plus the equivalent times in seconds.
type Segment struct {
	Start    int
	End      int
	StartSec float64
	EndSec   float64
}

// Segments is the result of running DetectSpeech over a PCM buffer.
type Segments struct {
	Ranges []Segment
	Audio  audio.PCM
}

// Config configures the Silero VAD model.
type Config struct {
	ModelPath          string
	Threshold          float32
	MinSpeechDuration  float32
	MinSilenceDuration float32
}

// ErrModelLoad reports a failure constructing the native VAD detector.
type ErrModelLoad struct {
	Cause error
}

func (e *ErrModelLoad) Error() string { return fmt.Sprintf("load VAD model: %v", e.Cause) }
func (e *ErrModelLoad) Unwrap() error { return e.Cause }

// Detector wraps a loaded Silero VAD model. Not safe for concurrent use.
type Detector struct {
	cfg Config
}

// NewDetector validates that the configured model exists on disk and
// returns a Detector. The native model is loaded lazily per DetectSpeech
// call since sherpa-onnx-go's VAD is stateful and must be reset between
// independent utterances.
func NewDetector(cfg Config) (*Detector, error) {
	if cfg.Threshold == 0 {
		cfg.Threshold = 0.5
	}
	if cfg.MinSpeechDuration == 0 {
		cfg.MinSpeechDuration = 0.25
	}
	if cfg.MinSilenceDuration == 0 {
		cfg.MinSilenceDuration = 0.5
	}
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, &ErrModelLoad{Cause: err}
	}
	return &Detector{cfg: cfg}, nil
}

// DetectSpeech streams pcm through the Silero VAD model in fixed windows
// and returns every detected segment, with end indices clamped to the
// input length.
func (d *Detector) DetectSpeech(pcm audio.PCM) (Segments, error) {
	if len(pcm.Samples) == 0 {
		return Segments{Audio: pcm}, nil
	}

	modelConfig := sherpa.VadModelConfig{
		SileroVad: sherpa.SileroVadModelConfig{
			Model:              d.cfg.ModelPath,
			Threshold:          d.cfg.Threshold,
			MinSilenceDuration: d.cfg.MinSilenceDuration,
			MinSpeechDuration:  d.cfg.MinSpeechDuration,
			WindowSize:         windowSize,
		},
		SampleRate: pcm.SampleRate,
		NumThreads: 1,
	}

	detector := sherpa.NewVoiceActivityDetector(&modelConfig, bufferSeconds)
	if detector == nil {
		return Segments{}, &ErrModelLoad{Cause: fmt.Errorf("model %q", d.cfg.ModelPath)}
	}
	defer sherpa.DeleteVoiceActivityDetector(detector)

	samples := pcm.Float32()
	var ranges []Segment

	for offset := 0; offset < len(samples); offset += windowSize {
		end := offset + windowSize
		if end > len(samples) {
			end = len(samples)
		}
		detector.AcceptWaveform(samples[offset:end])
		ranges = append(ranges, drain(detector, pcm)...)
	}

	detector.Flush()
	ranges = append(ranges, drain(detector, pcm)...)

	return Segments{Ranges: ranges, Audio: pcm}, nil
}

func drain(detector *sherpa.VoiceActivityDetector, pcm audio.PCM) []Segment {
	var out []Segment
	for !detector.IsEmpty() {
		seg := detector.Front()
		detector.Pop()

		start := seg.Start
		end := start + len(seg.Samples)
		if end > len(pcm.Samples) {
			end = len(pcm.Samples)
		}
		out = append(out, Segment{
			Start:    start,
			End:      end,
			StartSec: float64(start) / float64(pcm.SampleRate),
			EndSec:   float64(end) / float64(pcm.SampleRate),
		})
	}
	return out
}

// ExtractSpeech concatenates the detected speech regions of segments into
// a single PCM buffer. Returns an empty buffer (same sample rate) if no
// speech was detected.
func ExtractSpeech(segments Segments) audio.PCM {
	if len(segments.Ranges) == 0 {
		return audio.PCM{SampleRate: segments.Audio.SampleRate}
	}
	parts := make([]audio.PCM, len(segments.Ranges))
	for i, seg := range segments.Ranges {
		parts[i] = segments.Audio.Slice(seg.Start, seg.End)
	}
	return audio.Concat(parts...)
}
