package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/asticode/go-astiav"
)

// SupportedExtensions lists the container extensions LoadFile accepts for
// path input. Byte input is not extension-checked: the container format
// is sniffed by the demuxer instead, so the same asymmetry the original
// implementation has is preserved here rather than "fixed" — bytes never
// carried an extension to check in the first place.
var SupportedExtensions = map[string]struct{}{
	".wav":  {},
	".mp3":  {},
	".ogg":  {},
	".webm": {},
	".aac":  {},
	".flac": {},
	".m4a":  {},
}

// ErrNotFound reports a path input that does not exist on disk.
type ErrNotFound struct {
	Path string
}

func (e *ErrNotFound) Error() string { return fmt.Sprintf("audio file not found: %s", e.Path) }

// ErrUnsupportedFormat reports a path input whose extension LoadFile does
// not recognize.
type ErrUnsupportedFormat struct {
	Ext string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported audio extension %q", e.Ext)
}

// ErrDecode wraps a failure in the underlying demux/decode/resample chain.
type ErrDecode struct {
	Cause error
}

func (e *ErrDecode) Error() string { return fmt.Sprintf("decode audio: %v", e.Cause) }
func (e *ErrDecode) Unwrap() error { return e.Cause }

// ErrEmpty indicates the input produced zero decoded samples.
var ErrEmpty = fmt.Errorf("audio data is empty")

// LoadFile reads and decodes an audio file: it fails with ErrNotFound if
// path does not exist, then with ErrUnsupportedFormat if the extension is
// not recognized, before the bytes are read at all. The bytes themselves
// are handed to LoadBytes.
func LoadFile(path string) (PCM, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return PCM{}, &ErrNotFound{Path: path}
		}
		return PCM{}, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := SupportedExtensions[ext]; !ok {
		return PCM{}, &ErrUnsupportedFormat{Ext: ext}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return PCM{}, err
	}
	return LoadBytes(data)
}

// LoadBytes decodes an arbitrary audio container (format auto-detected)
// into 16kHz mono s16 PCM. Unlike LoadFile, it applies no
// SupportedExtensions check: byte input is left to the demuxer.
func LoadBytes(data []byte) (PCM, error) {
	if len(data) == 0 {
		return PCM{}, ErrEmpty
	}

	samples, err := decodeToPCM(data)
	if err != nil {
		return PCM{}, &ErrDecode{Cause: err}
	}
	if len(samples) == 0 {
		return PCM{}, ErrEmpty
	}

	return PCM{Samples: samples, SampleRate: TargetSampleRate}, nil
}

func decodeToPCM(data []byte) ([]int16, error) {
	ioCtx, err := astiav.AllocIOContext(len(data), false,
		func(b []byte) (int, error) {
			n := copy(b, data)
			if n == 0 {
				return 0, astiav.ErrEof
			}
			data = data[n:]
			return n, nil
		}, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("alloc io context: %w", err)
	}
	defer ioCtx.Free()

	fc := astiav.AllocFormatContext()
	if fc == nil {
		return nil, fmt.Errorf("alloc format context")
	}
	defer fc.Free()
	fc.SetPb(ioCtx)

	if err := fc.OpenInput("", nil, nil); err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer fc.CloseInput()

	if err := fc.FindStreamInfo(nil); err != nil {
		return nil, fmt.Errorf("find stream info: %w", err)
	}

	var stream *astiav.Stream
	for _, s := range fc.Streams() {
		if s.CodecParameters().MediaType() == astiav.MediaTypeAudio {
			stream = s
			break
		}
	}
	if stream == nil {
		return nil, fmt.Errorf("no audio stream found")
	}

	codec := astiav.FindDecoder(stream.CodecParameters().CodecID())
	if codec == nil {
		return nil, fmt.Errorf("no decoder for codec %s", stream.CodecParameters().CodecID())
	}

	codecCtx := astiav.AllocCodecContext(codec)
	if codecCtx == nil {
		return nil, fmt.Errorf("alloc codec context")
	}
	defer codecCtx.Free()

	if err := stream.CodecParameters().ToCodecContext(codecCtx); err != nil {
		return nil, fmt.Errorf("copy codec parameters: %w", err)
	}
	if err := codecCtx.Open(codec, nil); err != nil {
		return nil, fmt.Errorf("open codec: %w", err)
	}

	outLayout := astiav.ChannelLayoutMono

	resampler := astiav.AllocSoftwareResampleContext()
	if resampler == nil {
		return nil, fmt.Errorf("alloc resample context")
	}
	defer resampler.Free()

	pkt := astiav.AllocPacket()
	defer pkt.Free()
	inFrame := astiav.AllocFrame()
	defer inFrame.Free()
	outFrame := astiav.AllocFrame()
	defer outFrame.Free()

	var samples []int16

	flushFrame := func(f *astiav.Frame) error {
		b, err := f.Data().Bytes(0)
		if err != nil {
			return fmt.Errorf("read resampled frame: %w", err)
		}
		out := make([]int16, len(b)/2)
		for i := range out {
			out[i] = int16(b[2*i]) | int16(b[2*i+1])<<8
		}
		samples = append(samples, out...)
		return nil
	}

	resample := func(src *astiav.Frame) error {
		outFrame.Unref()
		outFrame.SetChannelLayout(outLayout)
		outFrame.SetSampleFormat(astiav.SampleFormatS16)
		outFrame.SetSampleRate(TargetSampleRate)
		if err := resampler.ConvertFrame(src, outFrame); err != nil {
			return fmt.Errorf("resample: %w", err)
		}
		return flushFrame(outFrame)
	}

	for {
		if err := fc.ReadFrame(pkt); err != nil {
			break
		}
		if pkt.StreamIndex() != stream.Index() {
			pkt.Unref()
			continue
		}
		if err := codecCtx.SendPacket(pkt); err != nil {
			pkt.Unref()
			return nil, fmt.Errorf("send packet: %w", err)
		}
		pkt.Unref()

		for {
			if err := codecCtx.ReceiveFrame(inFrame); err != nil {
				break
			}
			if err := resample(inFrame); err != nil {
				return nil, err
			}
			inFrame.Unref()
		}
	}

	return samples, nil
}
