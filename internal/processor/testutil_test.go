package processor

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phonlab/cleantalking/internal/audio"
	"github.com/phonlab/cleantalking/internal/textgrid"
)

// testTone generates a mono sine signal for testing.
func testTone(t *testing.T, durationSecs float64, sampleRate int, freq, amp float64) *audio.Signal {
	t.Helper()

	frames := int(durationSecs * float64(sampleRate))
	samples := make([]float64, frames)
	for i := range samples {
		samples[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return &audio.Signal{Samples: samples, SampleRate: sampleRate, Channels: 1}
}

// testTier builds an interval tier covering the given labeled spans.
// Spans are (start, end, label) triples in order.
func testTier(name string, spans ...[3]interface{}) textgrid.Tier {
	tier := textgrid.Tier{Class: "IntervalTier", Name: name}
	for _, s := range spans {
		tier.Intervals = append(tier.Intervals, textgrid.Interval{
			Min:   s[0].(float64),
			Max:   s[1].(float64),
			Label: s[2].(string),
		})
	}
	if n := len(tier.Intervals); n > 0 {
		tier.Min = tier.Intervals[0].Min
		tier.Max = tier.Intervals[n-1].Max
	}
	return tier
}

// writeTokenFixture writes <base>.wav (a 220 Hz tone) and its matching
// <base>.wav.TextGrid (long format, single "words" tier) into dir.
// Returns the WAV path.
func writeTokenFixture(t *testing.T, dir, base string, durationSecs float64, intervals []textgrid.Interval) string {
	t.Helper()

	wavPath := filepath.Join(dir, base+".wav")
	sig := testTone(t, durationSecs, 16000, 220, 0.3)
	if err := audio.WriteFile(wavPath, sig, 16); err != nil {
		t.Fatalf("writing fixture WAV: %v", err)
	}

	writeGridFixture(t, wavPath+".TextGrid", "words", durationSecs, intervals)
	return wavPath
}

// writeGridFixture writes a long-format TextGrid with one interval tier.
func writeGridFixture(t *testing.T, path, tierName string, xmax float64, intervals []textgrid.Interval) {
	t.Helper()

	var sb strings.Builder
	sb.WriteString("File type = \"ooTextFile\"\n")
	sb.WriteString("Object class = \"TextGrid\"\n\n")
	fmt.Fprintf(&sb, "xmin = 0\nxmax = %g\n", xmax)
	sb.WriteString("tiers? <exists>\nsize = 1\nitem []:\n")
	sb.WriteString("    item [1]:\n")
	sb.WriteString("        class = \"IntervalTier\"\n")
	fmt.Fprintf(&sb, "        name = %q\n", tierName)
	fmt.Fprintf(&sb, "        xmin = 0\n        xmax = %g\n", xmax)
	fmt.Fprintf(&sb, "        intervals: size = %d\n", len(intervals))
	for i, iv := range intervals {
		fmt.Fprintf(&sb, "        intervals [%d]:\n", i+1)
		fmt.Fprintf(&sb, "            xmin = %g\n", iv.Min)
		fmt.Fprintf(&sb, "            xmax = %g\n", iv.Max)
		fmt.Fprintf(&sb, "            text = %q\n", iv.Label)
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		t.Fatalf("writing fixture TextGrid: %v", err)
	}
}

// captureLog records progress lines for assertions.
type captureLog struct {
	prefix string
	lines  []string
}

func (c *captureLog) SetPrefix(p string) { c.prefix = p }

func (c *captureLog) Printf(format string, args ...interface{}) {
	c.lines = append(c.lines, c.prefix+fmt.Sprintf(format, args...))
}

func (c *captureLog) contains(substr string) bool {
	for _, line := range c.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// mustClassifier builds a Classifier with the default policy.
func mustClassifier(t *testing.T) *Classifier {
	t.Helper()
	cls, err := NewClassifier(DefaultSilencePattern, DefaultShortPauseMax)
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	return cls
}
