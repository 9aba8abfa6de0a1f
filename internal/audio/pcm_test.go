package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestPCM_Float32(t *testing.T) {
	p := PCM{Samples: []int16{0, 16384, -32768, 32767}, SampleRate: TargetSampleRate}
	got := p.Float32()

	want := []float32{0, 0.5, -1.0, 32767.0 / 32768.0}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Errorf("Float32()[%d] = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestPCM_Duration(t *testing.T) {
	p := PCM{Samples: make([]int16, 16000), SampleRate: 16000}
	if d := p.Duration(); math.Abs(d-1.0) > 1e-9 {
		t.Errorf("Duration() = %f, want 1.0", d)
	}
}

func TestPCM_Duration_zeroRate(t *testing.T) {
	p := PCM{Samples: make([]int16, 10), SampleRate: 0}
	if d := p.Duration(); d != 0 {
		t.Errorf("Duration() = %f, want 0", d)
	}
}

func TestPCM_Slice_clampsEnd(t *testing.T) {
	p := PCM{Samples: []int16{1, 2, 3, 4}, SampleRate: 16000}
	got := p.Slice(2, 100)
	if len(got.Samples) != 2 || got.Samples[0] != 3 {
		t.Errorf("Slice(2, 100) = %v, want [3 4]", got.Samples)
	}
}

func TestConcat(t *testing.T) {
	a := PCM{Samples: []int16{1, 2}, SampleRate: 16000}
	b := PCM{Samples: []int16{3, 4}, SampleRate: 16000}
	got := Concat(a, b)
	want := []int16{1, 2, 3, 4}
	if len(got.Samples) != len(want) {
		t.Fatalf("Concat() len = %d, want %d", len(got.Samples), len(want))
	}
	for i := range want {
		if got.Samples[i] != want[i] {
			t.Errorf("Concat()[%d] = %d, want %d", i, got.Samples[i], want[i])
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		samples    int
		minSeconds float64
		wantErr    bool
	}{
		{"empty", 0, 0.5, true},
		{"too short", 4000, 0.5, true},
		{"exactly at threshold", 8000, 0.5, false},
		{"well above threshold", 48000, 0.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PCM{Samples: make([]int16, tt.samples), SampleRate: 16000}
			err := Validate(p, tt.minSeconds)
			if tt.wantErr && err == nil {
				t.Errorf("Validate() = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestLoadFile_unsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.xyz")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFile(path)
	var unsupported *ErrUnsupportedFormat
	if err == nil {
		t.Fatal("LoadFile() = nil, want unsupported format error")
	}
	if !asErrUnsupported(err, &unsupported) {
		t.Errorf("LoadFile() error = %v, want *ErrUnsupportedFormat", err)
	}
}

func asErrUnsupported(err error, target **ErrUnsupportedFormat) bool {
	e, ok := err.(*ErrUnsupportedFormat)
	if ok {
		*target = e
	}
	return ok
}

func TestLoadFile_notFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.wav"))
	var notFound *ErrNotFound
	if err == nil {
		t.Fatal("LoadFile() = nil, want not-found error")
	}
	if !errors.As(err, &notFound) {
		t.Errorf("LoadFile() error = %v, want *ErrNotFound", err)
	}
}

func TestLoadBytes_empty(t *testing.T) {
	_, err := LoadBytes(nil)
	if err != ErrEmpty {
		t.Errorf("LoadBytes(nil) error = %v, want ErrEmpty", err)
	}
}
