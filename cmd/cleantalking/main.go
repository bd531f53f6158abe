package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/phonlab/cleantalking/internal/cli"
	"github.com/phonlab/cleantalking/internal/config"
	"github.com/phonlab/cleantalking/internal/logging"
	"github.com/phonlab/cleantalking/internal/processor"
	"github.com/phonlab/cleantalking/internal/ui"
)

var (
	version = "0.1.0"
)

// CLI defines the command-line interface
type CLI struct {
	Version     bool   `short:"v" help:"Show version information"`
	Config      string `short:"c" type:"path" help:"Path to TOML config file (optional)"`
	Logs        bool   `help:"Save a detailed analysis log next to the CSV report"`
	SaveCleaned bool   `help:"Write each cleaned recording to the output directory"`
	InputDir    string `arg:"" type:"existingdir" optional:"" help:"Directory of .wav recordings with .wav.TextGrid annotations"`
	OutputDir   string `arg:"" type:"existingdir" optional:"" help:"Directory to receive the report"`
	TableName   string `arg:"" optional:"" help:"Report base name, no extension"`
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("cleantalking"),
		kong.Description("Silence and pause remover for annotated speech recordings"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	// Handle version flag
	if cliArgs.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	// Validate input
	if cliArgs.InputDir == "" || cliArgs.OutputDir == "" || cliArgs.TableName == "" {
		cli.PrintError("input directory, output directory and table name are required")
		ctx.PrintUsage(false)
		os.Exit(1)
	}

	cfg, err := config.Load(cliArgs.Config)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
	if cliArgs.SaveCleaned {
		cfg.SaveCleaned = true
	}

	files, err := processor.ListTokens(cliArgs.InputDir)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
	}

	csvPath := filepath.Join(cliArgs.OutputDir, cliArgs.TableName+".csv")

	// Progress log lives next to the report
	progressFile, err := os.Create(filepath.Join(cliArgs.OutputDir, cliArgs.TableName+".log"))
	if err != nil {
		cli.PrintError(fmt.Sprintf("cannot create progress log: %v", err))
		os.Exit(1)
	}
	defer progressFile.Close()
	plog := logging.NewProgress(progressFile)

	// Create the Bubbletea UI model
	model := ui.NewModel(names, files)

	// Start the TUI
	p := tea.NewProgram(model, tea.WithAltScreen())

	var batchErr error

	// Start processing in background
	go func() {
		startTime := time.Now()

		opts := processor.Options{
			TierName:       cfg.Tier,
			SilencePattern: cfg.SilencePattern,
			ShortPauseMax:  cfg.ShortPauseMax,
			PitchFloor:     cfg.PitchFloor,
			OutputDir:      cliArgs.OutputDir,
			SaveCleaned:    cfg.SaveCleaned,
			Log:            plog,
			Events: func(e processor.Event) {
				switch ev := e.(type) {
				case processor.TokenStarted:
					p.Send(ui.TokenStartMsg{TokenIndex: ev.Index, TokenName: ev.Token})
				case processor.TokenProgress:
					p.Send(ui.IntervalProgressMsg{TokenIndex: ev.Index, Interval: ev.Interval, Total: ev.Total})
				case processor.TokenFinished:
					p.Send(ui.TokenCompleteMsg{
						TokenIndex:  ev.Index,
						Row:         ev.Row,
						Skipped:     ev.Skipped,
						CleanedPath: ev.CleanedPath,
						Error:       ev.Err,
					})
				}
			},
		}

		result, err := processor.RunBatch(files, opts)
		if err != nil {
			batchErr = err
			p.Send(ui.AllCompleteMsg{Err: err})
			return
		}

		// The report is flushed exactly once, after the whole batch succeeded
		if err := logging.WriteReportCSV(csvPath, result.Rows); err != nil {
			batchErr = err
			p.Send(ui.AllCompleteMsg{Err: err})
			return
		}

		// Generate analysis report if --logs flag is set
		if cliArgs.Logs {
			reportData := logging.ReportData{
				InputDir:  cliArgs.InputDir,
				CSVPath:   csvPath,
				StartTime: startTime,
				EndTime:   time.Now(),
				Rows:      result.Rows,
				Skipped:   result.Skipped,
			}
			if err := logging.GenerateReport(reportData); err != nil {
				plog.Printf("failed to generate analysis log: %v", err)
			}
		}

		p.Send(ui.AllCompleteMsg{ReportPath: csvPath})
	}()

	// Run the program
	if _, err := p.Run(); err != nil {
		cli.PrintError(fmt.Sprintf("UI error: %v", err))
		os.Exit(1)
	}

	if batchErr != nil {
		cli.PrintError(batchErr.Error())
		os.Exit(1)
	}
}
