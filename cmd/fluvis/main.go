// Command fluvis reads the day-by-day grid output of the flu transmission
// simulator and summarizes it as a census table, a CSV export or a PDF
// report with an epidemic curve.
//
// A missing input file is logged and treated as an empty dataset (exit 0).
// Malformed input exits non-zero with the offending line and column.
package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/user/fluvis_go/internal/config"
)

const (
	Version = "1.0.0"
	AppName = "fluvis"
)

func newRootCommand(app *App) *cli.Command {
	outFlag := func(usage string) *cli.StringFlag {
		return &cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: usage}
	}

	return &cli.Command{
		Name:    AppName,
		Usage:   "summarize flu transmission simulation output",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
				Sources: cli.EnvVars("FLUVIS_CONFIG"),
			},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				app.logger.SetFlags(log.LstdFlags | log.Lshortfile)
			}
			if path := cmd.String("config"); path != "" {
				cfg, err := config.Load(path)
				if err != nil {
					return ctx, err
				}
				app.cfg = cfg
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:      "summary",
				Usage:     "print the per-day census table",
				ArgsUsage: "[path]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return app.HandleSummary(cmd.Args().First())
				},
			},
			{
				Name:      "export",
				Usage:     "write the per-day census as CSV",
				ArgsUsage: "[path]",
				Flags:     []cli.Flag{outFlag("CSV output path, - for stdout")},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return app.HandleExport(cmd.Args().First(), cmd.String("out"))
				},
			},
			{
				Name:      "report",
				Usage:     "build a PDF census report with an epidemic curve",
				ArgsUsage: "[path]",
				Flags:     []cli.Flag{outFlag("PDF output path")},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return app.HandleReport(cmd.Args().First(), cmd.String("out"))
				},
			},
			{
				Name:      "normalize",
				Usage:     "rewrite the input in canonical Day N form",
				ArgsUsage: "[path]",
				Flags:     []cli.Flag{outFlag("output path, - for stdout")},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return app.HandleNormalize(cmd.Args().First(), cmd.String("out"))
				},
			},
		},
	}
}

func main() {
	logger := log.New(os.Stderr, AppName+": ", log.LstdFlags)
	app := NewApp(os.Stdout, logger)

	if err := newRootCommand(app).Run(context.Background(), os.Args); err != nil {
		logger.Printf("Error: %v", err)
		os.Exit(1)
	}
}
