// Package model resolves, downloads, and verifies the three pinned
// sherpa-onnx model files this library depends on.
package model

// File describes one downloadable model artifact.
type File struct {
	Name      string // human-readable label, e.g. "Silero VAD"
	URL       string
	LocalPath string // relative to the models directory
	SHA256    string // empty when unknown; an empty value skips checksum verification
	Archive   bool   // true if URL points at a .tar.bz2 that must be extracted
	InnerDir  string // archive's top-level directory, hoisted into LocalPath
}

// DefaultManifest returns the three models this library needs, with URLs
// and pinned layout mirroring the upstream sherpa-onnx release assets.
func DefaultManifest() []File {
	return []File{
		{
			Name:      "Silero VAD",
			URL:       "https://github.com/k2-fsa/sherpa-onnx/releases/download/asr-models/silero_vad.onnx",
			LocalPath: "silero-vad/silero_vad.onnx",
		},
		{
			Name:      "SenseVoice",
			URL:       "https://github.com/k2-fsa/sherpa-onnx/releases/download/asr-models/sherpa-onnx-sense-voice-zh-en-ja-ko-yue-int8-2024-07-17.tar.bz2",
			LocalPath: "sense-voice",
			Archive:   true,
			InnerDir:  "sherpa-onnx-sense-voice-zh-en-ja-ko-yue-int8-2024-07-17",
		},
		{
			Name:      "CAM++ (3D-Speaker)",
			URL:       "https://github.com/k2-fsa/sherpa-onnx/releases/download/speaker-recongition-models/3dspeaker_speech_campplus_sv_zh_en_16k-common_advanced.onnx",
			LocalPath: "3dspeaker/3dspeaker_speech_campplus_sv_zh_en_16k-common_advanced.onnx",
		},
	}
}

// VADModelFile returns the Silero VAD file path relative to a models dir.
func VADModelFile() string { return DefaultManifest()[0].LocalPath }

// ASRModelDir returns the SenseVoice directory path relative to a models dir.
func ASRModelDir() string { return DefaultManifest()[1].LocalPath }

// EmbedderModelFile returns the CAM++ file path relative to a models dir.
func EmbedderModelFile() string { return DefaultManifest()[2].LocalPath }
