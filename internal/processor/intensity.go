package processor

import (
	"math"

	"github.com/phonlab/cleantalking/internal/audio"
)

// intensityRef is the auditory threshold pressure (2e-5 Pa) used as the 0 dB
// reference, so intensities come out on the conventional SPL-like scale for
// full-scale-normalized samples.
const intensityRef = 2e-5

// MeanIntensityDB returns the mean intensity of the signal in dB: the
// energy mean over all samples relative to the auditory threshold.
// A silent or empty signal yields -Inf.
func MeanIntensityDB(sig *audio.Signal) float64 {
	if len(sig.Samples) == 0 {
		return math.Inf(-1)
	}
	var sum float64
	for _, v := range sig.Samples {
		sum += v * v
	}
	return meanSquareToDB(sum / float64(len(sig.Samples)))
}

// MaxIntensityDB estimates the peak of a smoothed intensity contour. Frames
// of 3.2/pitchFloor seconds are Hann-weighted and advanced by a quarter
// window, so the smoothing spans several pitch periods at the given floor;
// the contour maximum is then refined by parabolic interpolation across its
// neighbors. Signals shorter than one analysis window fall back to the mean
// intensity.
func MaxIntensityDB(sig *audio.Signal, pitchFloor float64) float64 {
	contour := intensityContour(sig, pitchFloor)
	if len(contour) == 0 {
		return MeanIntensityDB(sig)
	}

	peak := 0
	for i := range contour {
		if contour[i] > contour[peak] {
			peak = i
		}
	}

	return parabolicPeak(contour, peak)
}

// intensityContour computes the Hann-windowed mean-square intensity in dB
// per analysis frame. Window length is 3.2/pitchFloor seconds, hop is a
// quarter window.
func intensityContour(sig *audio.Signal, pitchFloor float64) []float64 {
	if pitchFloor <= 0 || sig.SampleRate == 0 || sig.Channels == 0 {
		return nil
	}

	windowFrames := int(3.2 / pitchFloor * float64(sig.SampleRate))
	if windowFrames < 2 {
		return nil
	}
	hop := windowFrames / 4
	if hop < 1 {
		hop = 1
	}

	frames := sig.Frames()
	if frames < windowFrames {
		return nil
	}

	// Hann window and its sum, computed once
	window := make([]float64, windowFrames)
	var windowSum float64
	for j := range window {
		window[j] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(j)/float64(windowFrames-1))
		windowSum += window[j]
	}

	ch := sig.Channels
	var contour []float64
	for start := 0; start+windowFrames <= frames; start += hop {
		var energy float64
		for j := 0; j < windowFrames; j++ {
			base := (start + j) * ch
			for k := 0; k < ch; k++ {
				v := sig.Samples[base+k]
				energy += window[j] * v * v
			}
		}
		contour = append(contour, meanSquareToDB(energy/(windowSum*float64(ch))))
	}

	return contour
}

// parabolicPeak refines the contour maximum at index i by fitting a
// parabola through it and its two neighbors. Edge maxima and degenerate
// fits return the sampled value unchanged.
func parabolicPeak(contour []float64, i int) float64 {
	if i <= 0 || i >= len(contour)-1 {
		return contour[i]
	}
	alpha, beta, gamma := contour[i-1], contour[i], contour[i+1]
	if math.IsInf(alpha, -1) || math.IsInf(gamma, -1) {
		return beta
	}
	denom := alpha - 2*beta + gamma
	if denom >= 0 {
		return beta
	}
	p := 0.5 * (alpha - gamma) / denom
	return beta - 0.25*(alpha-gamma)*p
}

func meanSquareToDB(meanSquare float64) float64 {
	if meanSquare <= 0 {
		return math.Inf(-1)
	}
	return 10 * math.Log10(meanSquare/(intensityRef*intensityRef))
}
