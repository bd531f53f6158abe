package logging

import (
	"math"
	"strings"
	"testing"
)

func TestFormatMetric(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		decimals int
		want     string
	}{
		{"zero", 0.0, 2, "0.00"},
		{"positive", 3.14159, 2, "3.14"},
		{"negative", -16.5, 1, "-16.5"},
		{"large", 12345.6789, 2, "12345.68"},
		{"small_normal", 0.001, 3, "0.001"},
		{"very_small_scientific", 0.00001, 2, "1.00e-05"},
		{"nan", math.NaN(), 2, MissingValue},
		{"positive_inf", math.Inf(1), 2, MissingValue},
		{"negative_inf", math.Inf(-1), 2, MissingValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatMetric(tt.value, tt.decimals)
			if got != tt.want {
				t.Errorf("formatMetric(%v, %d) = %q, want %q", tt.value, tt.decimals, got, tt.want)
			}
		})
	}
}

func TestFormatMetricDB(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		decimals int
		want     string
	}{
		{"typical", 70.97, 2, "70.97"},
		{"negative_inf", math.Inf(-1), 2, "< -120"},
		{"below_floor", -130.0, 2, "< -120"},
		{"nan", math.NaN(), 2, MissingValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatMetricDB(tt.value, tt.decimals)
			if got != tt.want {
				t.Errorf("formatMetricDB(%v, %d) = %q, want %q", tt.value, tt.decimals, got, tt.want)
			}
		})
	}
}

func TestFormatMetricSigned(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		decimals int
		want     string
	}{
		{"positive", 2.5, 1, "+2.5"},
		{"negative", -1.2, 1, "-1.2"},
		{"zero", 0.0, 1, "+0.0"},
		{"nan", math.NaN(), 1, MissingValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatMetricSigned(tt.value, tt.decimals)
			if got != tt.want {
				t.Errorf("formatMetricSigned(%v, %d) = %q, want %q", tt.value, tt.decimals, got, tt.want)
			}
		})
	}
}

func TestMetricTable(t *testing.T) {
	table := NewMetricTable()
	table.AddMetricRow("Duration", 1.0, 0.85, 3, "s")
	table.AddMetricRow("Mean intensity", 70.97, 70.95, 2, "dB")

	out := table.String()

	for _, want := range []string{"Raw", "Cleaned", "Duration", "1.000", "0.850", "70.97", "dB"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}

	// Column alignment: every line has the same header offset
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("table has %d lines, want 3", len(lines))
	}
}

func TestMetricTableEmpty(t *testing.T) {
	table := NewMetricTable()
	if got := table.String(); got != "" {
		t.Errorf("empty table rendered %q", got)
	}
}

func TestMetricTableMissingValues(t *testing.T) {
	table := NewMetricTable()
	table.AddRow("Max intensity", []string{"71.20", ""}, "dB")

	out := table.String()
	if !strings.Contains(out, MissingValue) {
		t.Errorf("missing value not rendered as %q:\n%s", MissingValue, out)
	}
}
