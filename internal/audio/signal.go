// Package audio provides WAV file I/O and in-memory signal operations
package audio

import (
	"fmt"
)

// Signal holds decoded PCM audio as normalized float64 samples.
// Samples are interleaved when Channels > 1 and scaled to [-1.0, 1.0].
type Signal struct {
	Samples    []float64
	SampleRate int
	Channels   int
}

// Frames returns the number of sample frames (samples per channel).
func (s *Signal) Frames() int {
	if s.Channels == 0 {
		return 0
	}
	return len(s.Samples) / s.Channels
}

// Duration returns the signal length in seconds.
func (s *Signal) Duration() float64 {
	if s.SampleRate == 0 {
		return 0
	}
	return float64(s.Frames()) / float64(s.SampleRate)
}

// Extract returns a copy of the [start, end) time range as a new Signal.
// Times are in seconds and are clamped to the signal bounds, matching how
// annotation intervals may extend marginally past the audio due to rounding.
func (s *Signal) Extract(start, end float64) (*Signal, error) {
	if end < start {
		return nil, fmt.Errorf("invalid extraction range: start %.4f > end %.4f", start, end)
	}

	startFrame := int(start * float64(s.SampleRate))
	endFrame := int(end * float64(s.SampleRate))

	frames := s.Frames()
	if startFrame < 0 {
		startFrame = 0
	}
	if endFrame > frames {
		endFrame = frames
	}
	if startFrame > endFrame {
		startFrame = endFrame
	}

	out := make([]float64, (endFrame-startFrame)*s.Channels)
	copy(out, s.Samples[startFrame*s.Channels:endFrame*s.Channels])

	return &Signal{
		Samples:    out,
		SampleRate: s.SampleRate,
		Channels:   s.Channels,
	}, nil
}

// Concat joins the given signals into one, in order. All parts must share
// the same sample rate and channel count.
func Concat(parts []*Signal) (*Signal, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("nothing to concatenate")
	}

	total := 0
	for i, p := range parts {
		if p.SampleRate != parts[0].SampleRate {
			return nil, fmt.Errorf("sample rate mismatch at part %d: %d != %d",
				i, p.SampleRate, parts[0].SampleRate)
		}
		if p.Channels != parts[0].Channels {
			return nil, fmt.Errorf("channel count mismatch at part %d: %d != %d",
				i, p.Channels, parts[0].Channels)
		}
		total += len(p.Samples)
	}

	out := make([]float64, 0, total)
	for _, p := range parts {
		out = append(out, p.Samples...)
	}

	return &Signal{
		Samples:    out,
		SampleRate: parts[0].SampleRate,
		Channels:   parts[0].Channels,
	}, nil
}
