package processor

import (
	"testing"
)

func TestExtractable(t *testing.T) {
	cls := mustClassifier(t)

	tests := []struct {
		name     string
		label    string
		duration float64
		want     bool
	}{
		{"speech", "hello", 0.5, true},
		{"silence", "sil", 0.5, false},
		{"silence_short", "sil", 0.05, false},
		{"long_pause", "sp", 0.5, false},
		{"pause_just_over_threshold", "sp", 0.150001, false},
		// A pause at or under the threshold is kept
		{"short_pause", "sp", 0.1, true},
		{"pause_at_threshold", "sp", 0.15, true},
		{"zero_duration_pause", "sp", 0.0, true},
		// The silence pattern is anchored; containing "sil" is not silence
		{"sil_prefix", "silver", 0.5, true},
		{"sil_embedded", "fossil", 0.5, true},
		// Empty labels never match silence or pause, so they count as speech
		{"empty_label", "", 0.5, true},
		{"empty_label_zero_duration", "", 0.0, true},
		// Pause detection is an exact label match
		{"sp_prefix", "spoon", 10.0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cls.Extractable(tt.label, tt.duration)
			if got != tt.want {
				t.Errorf("Extractable(%q, %g) = %v, want %v", tt.label, tt.duration, got, tt.want)
			}
		})
	}
}

func TestExtractableFormula(t *testing.T) {
	// The classifier must agree with the defining formula:
	// !silence && !(pause && long)
	cls := mustClassifier(t)

	labels := []string{"", "sil", "sp", "hello", "uh", "silence"}
	durations := []float64{0, 0.05, 0.15, 0.16, 1.0, 5.0}

	for _, label := range labels {
		for _, dur := range durations {
			want := label != "sil" && !(label == "sp" && dur > 0.15)
			if got := cls.Extractable(label, dur); got != want {
				t.Errorf("Extractable(%q, %g) = %v, want %v", label, dur, got, want)
			}
		}
	}
}

func TestNewClassifierCustomPattern(t *testing.T) {
	cls, err := NewClassifier(`^(sil|<p:>)$`, 0.2)
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	if cls.Extractable("<p:>", 0.5) {
		t.Error("custom silence label extracted")
	}
	if !cls.Extractable("sp", 0.2) {
		t.Error("pause at custom threshold dropped")
	}
	if cls.Extractable("sp", 0.21) {
		t.Error("pause over custom threshold extracted")
	}
}

func TestNewClassifierInvalidPattern(t *testing.T) {
	if _, err := NewClassifier(`([`, 0.15); err == nil {
		t.Error("NewClassifier accepted an invalid pattern")
	}
}
