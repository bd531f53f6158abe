package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// Metadata contains audio file metadata
type Metadata struct {
	Duration   float64 // seconds
	SampleRate int
	Channels   int
	BitDepth   int
}

// ReadFile decodes a WAV file into a normalized Signal.
func ReadFile(filename string) (*Signal, *Metadata, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s: %w", filename, err)
	}
	if buf.Format == nil || buf.Format.NumChannels == 0 || buf.Format.SampleRate == 0 {
		return nil, nil, fmt.Errorf("no PCM audio found in file: %s", filename)
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}

	// Normalize integer PCM to [-1, 1]
	scale := float64(int64(1) << (bitDepth - 1))
	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) / scale
	}

	sig := &Signal{
		Samples:    samples,
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
	}

	meta := &Metadata{
		Duration:   sig.Duration(),
		SampleRate: sig.SampleRate,
		Channels:   sig.Channels,
		BitDepth:   bitDepth,
	}

	return sig, meta, nil
}
