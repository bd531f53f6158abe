package processor

import (
	"math"
	"testing"

	"github.com/phonlab/cleantalking/internal/audio"
)

func TestMeanIntensityDBSine(t *testing.T) {
	// A sine of amplitude a has mean square a²/2; the dB value follows
	// directly from the 2e-5 reference
	amp := 0.1
	sig := testTone(t, 1.0, 16000, 440, amp)

	want := 10 * math.Log10((amp*amp/2)/(2e-5*2e-5))
	got := MeanIntensityDB(sig)
	if math.Abs(got-want) > 0.05 {
		t.Errorf("MeanIntensityDB = %.3f dB, want %.3f dB", got, want)
	}
}

func TestMeanIntensityDBSilence(t *testing.T) {
	sig := &audio.Signal{Samples: make([]float64, 1600), SampleRate: 16000, Channels: 1}
	if got := MeanIntensityDB(sig); !math.IsInf(got, -1) {
		t.Errorf("MeanIntensityDB of silence = %g, want -Inf", got)
	}

	empty := &audio.Signal{SampleRate: 16000, Channels: 1}
	if got := MeanIntensityDB(empty); !math.IsInf(got, -1) {
		t.Errorf("MeanIntensityDB of empty signal = %g, want -Inf", got)
	}
}

func TestMaxIntensityDBSteadyTone(t *testing.T) {
	// A steady tone's contour is flat, so the interpolated maximum stays
	// close to the mean intensity
	sig := testTone(t, 1.0, 16000, 220, 0.2)

	mean := MeanIntensityDB(sig)
	max := MaxIntensityDB(sig, DefaultPitchFloor)

	if max < mean-0.5 {
		t.Errorf("max intensity %.2f dB below mean %.2f dB", max, mean)
	}
	if max > mean+1.5 {
		t.Errorf("max intensity %.2f dB implausibly above mean %.2f dB for a steady tone", max, mean)
	}
}

func TestMaxIntensityDBLoudBurst(t *testing.T) {
	// Quiet tone with a 10x louder middle section: the contour peak must
	// sit near the burst level, well above the overall mean
	sig := testTone(t, 1.0, 16000, 220, 0.05)
	for i := 6400; i < 9600; i++ {
		sig.Samples[i] *= 10
	}

	mean := MeanIntensityDB(sig)
	max := MaxIntensityDB(sig, DefaultPitchFloor)

	if max <= mean {
		t.Errorf("max intensity %.2f dB not above mean %.2f dB", max, mean)
	}

	burstLevel := 10 * math.Log10((0.5*0.5/2)/(2e-5*2e-5))
	if math.Abs(max-burstLevel) > 1.0 {
		t.Errorf("max intensity %.2f dB, want near burst level %.2f dB", max, burstLevel)
	}
}

func TestMaxIntensityDBShortSignal(t *testing.T) {
	// Shorter than one analysis window: falls back to the mean
	sig := testTone(t, 0.01, 16000, 440, 0.1)

	mean := MeanIntensityDB(sig)
	max := MaxIntensityDB(sig, DefaultPitchFloor)
	if max != mean {
		t.Errorf("short-signal max = %g, want mean %g", max, mean)
	}
}

func TestParabolicPeak(t *testing.T) {
	// Symmetric neighbors leave the sampled maximum unchanged
	if got := parabolicPeak([]float64{0, 1, 0}, 1); got != 1 {
		t.Errorf("symmetric peak = %g, want 1", got)
	}

	// The refined peak never falls below the sampled maximum
	contour := []float64{0, 4, 2}
	if got := parabolicPeak(contour, 1); got < 4 {
		t.Errorf("refined peak %g below sampled maximum 4", got)
	}

	// Edge maxima are returned as-is
	if got := parabolicPeak([]float64{5, 1, 0}, 0); got != 5 {
		t.Errorf("edge peak = %g, want 5", got)
	}
}
