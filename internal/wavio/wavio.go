// Package wavio loads and stores chain signals as PCM WAV files.
//
// Samples are exchanged as float64 in [-1, 1]. Input files of any channel
// count are mixed down to mono by averaging; outputs are always mono.
package wavio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/rs/zerolog"
)

const (
	bitsPerSample8  = 8
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt8  = 127.0
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	// uint8Offset centers unsigned 8-bit PCM around zero.
	uint8Offset = 128

	pcmFormat    = 1
	monoChannels = 1

	// DefaultBitDepth is the bit depth used when none is configured.
	DefaultBitDepth = bitsPerSample16
)

// ErrUnsupportedBitDepth is returned for PCM bit depths other than 8, 16, 24 or 32.
var ErrUnsupportedBitDepth = errors.New("unsupported bit depth")

// Info describes a decoded WAV file.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Frames     int
}

// FileSource loads a WAV file.
type FileSource struct {
	Path string

	info Info
}

// NewFileSource creates a source reading path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Info returns the format of the last loaded file.
func (s *FileSource) Info() Info {
	return s.info
}

// Load decodes the whole file and returns its sample rate and mono samples.
func (s *FileSource) Load() (sampleRate float64, samples []float64, err error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return 0, nil, fmt.Errorf("invalid WAV file: %s", s.Path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read PCM data: %w", err)
	}

	bitDepth := int(decoder.BitDepth)
	maxVal, err := maxValue(bitDepth)
	if err != nil {
		return 0, nil, err
	}

	channels := int(decoder.NumChans)
	if channels < monoChannels {
		return 0, nil, fmt.Errorf("invalid WAV file: %s has no channels", s.Path)
	}

	samples = mixDown(buf.Data, channels, bitDepth, maxVal)
	s.info = Info{
		SampleRate: int(decoder.SampleRate),
		Channels:   channels,
		BitDepth:   bitDepth,
		Frames:     len(samples),
	}
	return float64(decoder.SampleRate), samples, nil
}

// mixDown converts interleaved PCM frames to mono float samples by averaging.
func mixDown(data []int, channels, bitDepth int, maxVal float64) []float64 {
	frames := len(data) / channels
	out := make([]float64, frames)
	invMax := 1.0 / maxVal
	invChannels := 1.0 / float64(channels)

	for i := range frames {
		var sum float64
		for ch := range channels {
			v := data[i*channels+ch]
			if bitDepth == bitsPerSample8 {
				v -= uint8Offset
			}
			sum += float64(v)
		}
		out[i] = sum * invChannels * invMax
	}
	return out
}

// FileSink writes named outputs to WAV files.
type FileSink struct {
	// Paths maps output names to file paths. Outputs without an entry are skipped.
	Paths map[string]string

	// BitDepth of the written PCM data.
	BitDepth int

	logger zerolog.Logger
}

// SinkOption configures a FileSink.
type SinkOption func(*FileSink)

// WithLogger sets the logger reporting written files.
func WithLogger(logger zerolog.Logger) SinkOption {
	return func(s *FileSink) {
		s.logger = logger
	}
}

// NewFileSink creates a sink writing the given outputs at bitDepth.
func NewFileSink(paths map[string]string, bitDepth int, opts ...SinkOption) (*FileSink, error) {
	if _, err := maxValue(bitDepth); err != nil {
		return nil, err
	}
	s := &FileSink{
		Paths:    paths,
		BitDepth: bitDepth,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Store writes samples to the file registered for name. Samples are clamped
// to [-1, 1] and the rate is rounded to whole Hz.
func (s *FileSink) Store(name string, sampleRate float64, samples []float64) error {
	path, ok := s.Paths[name]
	if !ok || path == "" {
		s.logger.Debug().Str("output", name).Msg("no path configured, skipping")
		return nil
	}
	if err := WriteFile(path, int(math.Round(sampleRate)), s.BitDepth, samples); err != nil {
		return err
	}
	s.logger.Info().
		Str("output", name).
		Str("path", path).
		Int("samples", len(samples)).
		Msg("wrote WAV file")
	return nil
}

// WriteFile writes mono samples in [-1, 1] to path as integer PCM.
func WriteFile(path string, sampleRate, bitDepth int, samples []float64) (err error) {
	maxVal, err := maxValue(bitDepth)
	if err != nil {
		return err
	}
	if sampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d", sampleRate)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	encoder := wav.NewEncoder(f, sampleRate, bitDepth, monoChannels, pcmFormat)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: monoChannels,
			SampleRate:  sampleRate,
		},
		Data:           quantize(samples, bitDepth, maxVal),
		SourceBitDepth: bitDepth,
	}
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write PCM data: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return nil
}

// quantize scales float samples to integer PCM, clamping to [-1, 1].
func quantize(samples []float64, bitDepth int, maxVal float64) []int {
	out := make([]int, len(samples))
	for i, v := range samples {
		v = max(-1.0, min(1.0, v))
		q := int(math.Round(v * maxVal))
		if bitDepth == bitsPerSample8 {
			q += uint8Offset
		}
		out[i] = q
	}
	return out
}

// maxValue returns the full-scale integer value for a PCM bit depth.
func maxValue(bitDepth int) (float64, error) {
	switch bitDepth {
	case bitsPerSample8:
		return maxInt8, nil
	case bitsPerSample16:
		return maxInt16, nil
	case bitsPerSample24:
		return maxInt24, nil
	case bitsPerSample32:
		return maxInt32, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}
