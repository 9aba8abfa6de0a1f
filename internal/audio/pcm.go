// Package audio decodes arbitrary audio containers into the fixed PCM
// shape (16 kHz, mono, 16-bit signed) the rest of the pipeline expects,
// and validates the result against minimum-duration policy.
package audio

// TargetSampleRate is the sample rate every PCM buffer in this package is
// normalized to.
const TargetSampleRate = 16000

// PCM is 16kHz mono signed 16-bit audio.
type PCM struct {
	Samples    []int16
	SampleRate int
}

// Float32 returns the samples normalized to [-1.0, 1.0], the view the
// VAD/ASR/embedder models consume.
func (p PCM) Float32() []float32 {
	out := make([]float32, len(p.Samples))
	for i, s := range p.Samples {
		out[i] = float32(s) / 32768.0
	}
	return out
}

// Duration returns the buffer's length in seconds.
func (p PCM) Duration() float64 {
	if p.SampleRate == 0 {
		return 0
	}
	return float64(len(p.Samples)) / float64(p.SampleRate)
}

// Slice returns the sample range [start, end) as a new PCM sharing the
// same sample rate. end is clamped to len(p.Samples).
func (p PCM) Slice(start, end int) PCM {
	if end > len(p.Samples) {
		end = len(p.Samples)
	}
	if start > end {
		start = end
	}
	return PCM{Samples: p.Samples[start:end], SampleRate: p.SampleRate}
}

// Concat joins PCM buffers sharing the same sample rate in order.
func Concat(parts ...PCM) PCM {
	var n int
	rate := TargetSampleRate
	for _, p := range parts {
		n += len(p.Samples)
		if p.SampleRate != 0 {
			rate = p.SampleRate
		}
	}
	out := make([]int16, 0, n)
	for _, p := range parts {
		out = append(out, p.Samples...)
	}
	return PCM{Samples: out, SampleRate: rate}
}
