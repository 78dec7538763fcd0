package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/user/fluvis_go/internal/analysis"
	"github.com/user/fluvis_go/internal/config"
	"github.com/user/fluvis_go/internal/parser"
	"github.com/user/fluvis_go/internal/report"
)

// App holds what every command needs: the loaded config and where to write.
type App struct {
	cfg    *config.Config
	out    io.Writer
	logger *log.Logger
}

// NewApp creates an App using the default configuration.
func NewApp(out io.Writer, logger *log.Logger) *App {
	return &App{cfg: config.Default(), out: out, logger: logger}
}

func (a *App) sendStatus(message string) {
	a.logger.Println(message)
}

func (a *App) inputPath(arg string) string {
	if arg != "" {
		return arg
	}
	return a.cfg.Input
}

// loadDataset parses the input file. A file that cannot be opened is
// reported and treated as an empty dataset; malformed content is an error.
func (a *App) loadDataset(path string) (*parser.Dataset, error) {
	a.sendStatus(fmt.Sprintf("Parsing: %s", path))
	ds, err := parser.ParseDayGrids(path, a.cfg.ParseOptions()...)
	if err != nil {
		var accessErr *parser.FileAccessError
		if errors.As(err, &accessErr) {
			a.sendStatus(fmt.Sprintf("Warning: %v. Continuing with no data.", accessErr))
			return parser.NewDataset(path), nil
		}
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	a.sendStatus(fmt.Sprintf("Parsed %d days.", ds.Days()))
	if len(ds.Warnings) > 0 {
		a.sendStatus("Parsing Warnings:")
		for _, w := range ds.Warnings {
			a.sendStatus(fmt.Sprintf("- %s", w))
		}
	}
	return ds, nil
}

func (a *App) analyze(ds *parser.Dataset) (*analysis.CensusResults, error) {
	res, err := analysis.AnalyzeDataset(ds, analysis.Options{InfectedState: a.cfg.InfectedState})
	if err != nil {
		return nil, fmt.Errorf("error analyzing data: %w", err)
	}
	if len(res.AnalysisErrors) > 0 {
		a.sendStatus("Analysis Warnings:")
		for _, e := range res.AnalysisErrors {
			a.sendStatus(fmt.Sprintf("- %s", e))
		}
	}
	return res, nil
}

func (a *App) loadAndAnalyze(arg string) (*parser.Dataset, *analysis.CensusResults, error) {
	ds, err := a.loadDataset(a.inputPath(arg))
	if err != nil {
		return nil, nil, err
	}
	res, err := a.analyze(ds)
	if err != nil {
		return nil, nil, err
	}
	return ds, res, nil
}

// HandleSummary prints the census table.
func (a *App) HandleSummary(arg string) error {
	_, res, err := a.loadAndAnalyze(arg)
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.out, report.RenderCensusTable(res, a.cfg))
	return err
}

// HandleExport writes the census as CSV to outPath, or to the output stream for "-".
func (a *App) HandleExport(arg, outPath string) error {
	_, res, err := a.loadAndAnalyze(arg)
	if err != nil {
		return err
	}
	if outPath == "" {
		outPath = a.cfg.Report.CSV
	}
	if outPath == "-" {
		return report.EncodeCensusCSV(a.out, res, a.cfg)
	}
	if err := report.WriteCensusCSV(outPath, res, a.cfg); err != nil {
		return err
	}
	a.sendStatus(fmt.Sprintf("Census CSV written: %s", outPath))
	return nil
}

// HandleReport builds the PDF census report.
func (a *App) HandleReport(arg, outPath string) error {
	ds, res, err := a.loadAndAnalyze(arg)
	if err != nil {
		return err
	}
	if outPath == "" {
		outPath = a.cfg.Report.PDF
	}

	plotImages := make(map[string][]byte)
	if len(res.Days) > 0 {
		a.sendStatus("Generating epidemic curve...")
		img, errPlt := report.CreateEpidemicCurvePlot(res, a.cfg)
		if errPlt != nil {
			a.sendStatus(fmt.Sprintf("Error generating epidemic curve: %v", errPlt))
		} else {
			plotImages[report.EpidemicCurveKey] = img
		}
	}

	a.sendStatus(fmt.Sprintf("Generating PDF: %s...", outPath))
	meta := report.ReportMeta{
		Title:         a.cfg.Report.Title,
		SourcePath:    ds.Path,
		InfectedState: a.cfg.InfectedState,
		Labels:        a.cfg,
		Warnings:      ds.Warnings,
	}
	if err := report.BuildPDFReport(outPath, res, meta, plotImages); err != nil {
		return fmt.Errorf("error generating PDF report: %w", err)
	}
	a.sendStatus(fmt.Sprintf("PDF report successfully generated: %s", outPath))
	return nil
}

// HandleNormalize rewrites the dataset in canonical "Day N" form.
func (a *App) HandleNormalize(arg, outPath string) error {
	ds, err := a.loadDataset(a.inputPath(arg))
	if err != nil {
		return err
	}
	if outPath == "" || outPath == "-" {
		return parser.WriteDayGrids(a.out, ds)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	if err := parser.WriteDayGrids(f, ds); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	a.sendStatus(fmt.Sprintf("Wrote %d days to %s", ds.Days(), outPath))
	return nil
}
