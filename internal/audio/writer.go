package audio

import (
	"fmt"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteFile encodes a Signal as a PCM WAV file with the given bit depth.
func WriteFile(filename string, sig *Signal, bitDepth int) error {
	if bitDepth == 0 {
		bitDepth = 16
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	scale := float64(int64(1) << (bitDepth - 1))
	maxVal := int(scale) - 1
	minVal := -int(scale)

	data := make([]int, len(sig.Samples))
	for i, v := range sig.Samples {
		n := int(v * scale)
		if n > maxVal {
			n = maxVal
		} else if n < minVal {
			n = minVal
		}
		data[i] = n
	}

	buf := &gaudio.IntBuffer{
		Format: &gaudio.Format{
			NumChannels: sig.Channels,
			SampleRate:  sig.SampleRate,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	enc := wav.NewEncoder(f, sig.SampleRate, bitDepth, sig.Channels, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write PCM data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}

	return nil
}
