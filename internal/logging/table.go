// Package logging provides the batch progress log, the CSV report writer
// and the text analysis report for cleaned recordings. This file contains
// reusable table formatting infrastructure for metric comparison tables
// (Raw → Cleaned).
package logging

import (
	"fmt"
	"math"
	"strings"
)

// MetricRow represents a single row in a comparison table.
// Values are pre-formatted strings to allow for mixed formatting.
type MetricRow struct {
	Label  string   // Row label, e.g., "Duration"
	Values []string // One value per column (Raw, Cleaned)
	Unit   string   // Unit suffix, e.g., "s", "dB", "" for unitless
}

// MetricTable formats aligned columns for metric comparison.
// Handles variable column widths and missing values.
type MetricTable struct {
	Headers []string    // Column headers, e.g., ["Raw", "Cleaned"]
	Rows    []MetricRow // Data rows
}

// String renders the table with aligned columns.
// Labels are left-aligned, numeric values right-aligned within their
// column, units appended after the last value column.
func (t *MetricTable) String() string {
	if len(t.Rows) == 0 {
		return ""
	}

	labelWidth := 0
	for _, row := range t.Rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
	}

	// Value column widths start at their header width
	valueWidths := make([]int, len(t.Headers))
	for i, header := range t.Headers {
		valueWidths[i] = len(header)
	}
	for _, row := range t.Rows {
		for i, val := range row.Values {
			if i < len(valueWidths) && len(val) > valueWidths[i] {
				valueWidths[i] = len(val)
			}
		}
	}

	var sb strings.Builder

	// Header row
	sb.WriteString(strings.Repeat(" ", labelWidth+2))
	for i, header := range t.Headers {
		sb.WriteString(fmt.Sprintf("%*s  ", valueWidths[i], header))
	}
	sb.WriteString("\n")

	// Data rows
	for _, row := range t.Rows {
		sb.WriteString(fmt.Sprintf("%-*s  ", labelWidth, row.Label))

		for i := 0; i < len(t.Headers); i++ {
			val := MissingValue
			if i < len(row.Values) && row.Values[i] != "" {
				val = row.Values[i]
			}
			sb.WriteString(fmt.Sprintf("%*s  ", valueWidths[i], val))
		}

		if row.Unit != "" {
			sb.WriteString(row.Unit)
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

// MissingValue is the placeholder for unavailable measurements
const MissingValue = "-"

// DigitalSilenceThreshold is the dB level below which we consider the signal
// to be digital silence. A true-zero signal measures -Inf; anything below
// this floor is effectively silent.
const DigitalSilenceThreshold = -120.0

// formatMetric formats a numeric value with appropriate precision.
// NaN/Inf return MissingValue; very small non-zero values use scientific
// notation.
func formatMetric(value float64, decimals int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return MissingValue
	}

	if value != 0 && math.Abs(value) < 0.0001 {
		return fmt.Sprintf("%.2e", value)
	}

	format := fmt.Sprintf("%%.%df", decimals)
	return fmt.Sprintf(format, value)
}

// formatMetricDB formats a dB value with special handling for digital
// silence. Shows "< -120" for values at or below the measurement floor.
func formatMetricDB(value float64, decimals int) string {
	if math.IsNaN(value) || math.IsInf(value, 1) {
		return MissingValue
	}
	if math.IsInf(value, -1) || value <= DigitalSilenceThreshold {
		return "< -120"
	}
	format := fmt.Sprintf("%%.%df", decimals)
	return fmt.Sprintf(format, value)
}

// formatMetricSigned formats a value with explicit sign for positive values.
// Useful for showing deltas like "+2.5 dB" or "-1.2 dB".
func formatMetricSigned(value float64, decimals int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return MissingValue
	}

	format := fmt.Sprintf("%%+.%df", decimals)
	return fmt.Sprintf(format, value)
}

// NewMetricTable creates a new MetricTable with standard Raw/Cleaned headers.
func NewMetricTable() *MetricTable {
	return &MetricTable{
		Headers: []string{"Raw", "Cleaned"},
		Rows:    make([]MetricRow, 0),
	}
}

// AddRow adds a row to the table with pre-formatted values.
func (t *MetricTable) AddRow(label string, values []string, unit string) {
	t.Rows = append(t.Rows, MetricRow{
		Label:  label,
		Values: values,
		Unit:   unit,
	})
}

// AddMetricRow adds a row with numeric values, formatting them automatically.
// Pass math.NaN() for missing values - they will display as "-".
func (t *MetricTable) AddMetricRow(label string, raw, cleaned float64, decimals int, unit string) {
	t.Rows = append(t.Rows, MetricRow{
		Label: label,
		Values: []string{
			formatMetric(raw, decimals),
			formatMetric(cleaned, decimals),
		},
		Unit: unit,
	})
}
