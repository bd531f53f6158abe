package logging

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/phonlab/cleantalking/internal/processor"
)

// ReportHeader is the CSV column order. It mirrors the ReportRow field
// order and is part of the report's contract: downstream analysis scripts
// key on these names.
var ReportHeader = []string{
	"Token",
	"DurationRaw",
	"AmplitudeRaw",
	"MaxAmplitudeRaw",
	"DurationNoPauses",
	"AmplitudeNoPauses",
}

// WriteReportCSV serializes the batch rows to a UTF-8, comma-separated file
// with a header row. The report is written exactly once, at the end of the
// batch; an empty batch still produces the header.
func WriteReportCSV(path string, rows []processor.ReportRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ReportHeader); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, r := range rows {
		record := []string{
			r.Token,
			formatReportFloat(r.DurationRaw),
			formatReportFloat(r.AmplitudeRaw),
			formatReportFloat(r.MaxAmplitudeRaw),
			formatReportFloat(r.DurationNoPauses),
			formatReportFloat(r.AmplitudeNoPauses),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", r.Token, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return f.Close()
}

func formatReportFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// ReportData collects everything the text analysis report needs.
type ReportData struct {
	InputDir  string
	CSVPath   string
	StartTime time.Time
	EndTime   time.Time
	Rows      []processor.ReportRow
	Skipped   []string
}

// GenerateReport writes a human-readable analysis log next to the CSV, with
// a Raw/Cleaned comparison table per token. Enabled by the --logs flag.
func GenerateReport(data ReportData) error {
	path := strings.TrimSuffix(data.CSVPath, filepath.Ext(data.CSVPath)) + "_analysis.log"

	var sb strings.Builder
	sb.WriteString("cleantalking batch analysis\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")
	sb.WriteString(fmt.Sprintf("Input directory: %s\n", data.InputDir))
	sb.WriteString(fmt.Sprintf("Report:          %s\n", data.CSVPath))
	sb.WriteString(fmt.Sprintf("Started:         %s\n", data.StartTime.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Finished:        %s (%.1fs)\n\n",
		data.EndTime.Format(time.RFC3339), data.EndTime.Sub(data.StartTime).Seconds()))

	for _, row := range data.Rows {
		sb.WriteString(row.Token + "\n")
		sb.WriteString(strings.Repeat("-", len(row.Token)) + "\n")

		table := NewMetricTable()
		table.AddRow("Duration", []string{
			formatMetric(row.DurationRaw, 3),
			formatMetric(row.DurationNoPauses, 3),
		}, "s")
		table.AddRow("Mean intensity", []string{
			formatMetricDB(row.AmplitudeRaw, 2),
			formatMetricDB(row.AmplitudeNoPauses, 2),
		}, "dB")
		table.AddRow("Max intensity", []string{
			formatMetricDB(row.MaxAmplitudeRaw, 2),
			MissingValue,
		}, "dB")
		sb.WriteString(table.String())

		removed := row.DurationNoPauses - row.DurationRaw
		sb.WriteString(fmt.Sprintf("Pauses/silence removed: %s s\n\n", formatMetricSigned(removed, 3)))
	}

	if len(data.Skipped) > 0 {
		sb.WriteString("Skipped (no extractable speech):\n")
		for _, token := range data.Skipped {
			sb.WriteString("  " + token + "\n")
		}
		sb.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write analysis log: %w", err)
	}
	return nil
}
