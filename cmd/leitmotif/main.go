// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/poiesic/leitmotif"
	"github.com/poiesic/leitmotif/core"
	"github.com/poiesic/leitmotif/ingestion"
	"github.com/poiesic/leitmotif/report"
	"github.com/poiesic/leitmotif/search"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "leitmotif",
		Usage: "Find motifs in a library of symbolic scores",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory (overrides " + leitmotif.EnvDBPath + ")",
			},
			&cli.BoolFlag{
				Name:  "in-memory",
				Usage: "Keep the library in memory for this run only",
			},
			&cli.IntFlag{
				Name:  "pool-size",
				Usage: "Number of workers for imports and searches (overrides " + leitmotif.EnvPoolSize + ")",
			},
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "Dotenv file(s) to read before the environment",
				Value: cli.NewStringSlice(".env"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log each search stage",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import Standard MIDI Files into the library",
				ArgsUsage: "FILE...",
				Action:    importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "composer",
						Usage: "Composer recorded for every imported score",
					},
					&cli.Float64Flag{
						Name:  "grid",
						Usage: "Quantization step in quarter lengths (overrides " + leitmotif.EnvGrid + ")",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N files (0 disables progress)",
						Value: 0,
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List the scores in the library",
				Action: listCommand,
			},
			{
				Name:   "search",
				Usage:  "Search a score for a motif",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "score",
						Aliases:  []string{"s"},
						Usage:    "Score ID or title",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "mode",
						Aliases: []string{"m"},
						Usage:   "Comparison mode (note, pitch, rhythm, chromatic, generic, contour)",
						Value:   "note",
					},
					&cli.StringFlag{
						Name:  "motif",
						Usage: "Motif notation; when empty the motif is sliced from the score",
					},
					&cli.IntFlag{
						Name:  "part",
						Usage: "Part to slice the motif from",
					},
					&cli.IntFlag{
						Name:  "start",
						Usage: "First note of the sliced motif",
					},
					&cli.IntFlag{
						Name:  "end",
						Usage: "Note after the last note of the sliced motif",
					},
					&cli.BoolFlag{
						Name:  "ignore-octave",
						Usage: "Compare pitch names only",
					},
					&cli.BoolFlag{
						Name:  "approx",
						Usage: "Accept approximate generic intervals",
					},
					&cli.BoolFlag{
						Name:  "inverse",
						Usage: "Also report melodic inversions",
					},
					&cli.IntFlag{
						Name:  "context",
						Usage: fmt.Sprintf("Events of context around each match (0-%d)", search.MaxContextRadius),
					},
					&cli.StringFlag{
						Name:  "order",
						Usage: "Result order (source, measure)",
						Value: "source",
					},
					&cli.StringFlag{
						Name:  "highlight",
						Usage: "Print highlight ranges in this color",
					},
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a score from the library",
				ArgsUsage: "ID|TITLE",
				Action:    deleteCommand,
			},
		},
	}
}

func openLibrary(c *cli.Context) (*leitmotif.Library, error) {
	var opts []leitmotif.ConfigOption
	if c.IsSet("db") {
		opts = append(opts, leitmotif.WithDBPath(c.String("db")))
	}
	if c.Bool("in-memory") {
		opts = append(opts, leitmotif.WithInMemory(true))
	}
	if c.IsSet("pool-size") {
		opts = append(opts, leitmotif.WithPoolSize(c.Int("pool-size")))
	}
	if c.IsSet("grid") {
		opts = append(opts, leitmotif.WithGrid(c.Float64("grid")))
	}

	cfg, err := leitmotif.LoadConfig(c.StringSlice("env-file"), opts...)
	if err != nil {
		return nil, err
	}
	lib, err := leitmotif.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	return lib, nil
}

func importCommand(c *cli.Context) error {
	paths := c.Args().Slice()
	if len(paths) == 0 {
		return errors.New("at least one file is required")
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	var opts []ingestion.Option
	if c.IsSet("composer") {
		opts = append(opts, ingestion.WithComposer(c.String("composer")))
	}
	if interval := c.Int("report-interval"); interval > 0 {
		opts = append(opts, ingestion.WithProgress(c.App.ErrWriter, interval))
	}
	pipeline, err := lib.NewPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	result, err := pipeline.Import(c.Context, paths...)
	if result != nil {
		for _, s := range result.Imported {
			fmt.Fprintf(c.App.Writer, "imported %d\t%s\n", s.Id, s.Title)
		}
		for _, f := range result.Failed {
			fmt.Fprintf(c.App.ErrWriter, "failed %s: %v\n", f.Path, f.Err)
		}
	}
	if err != nil {
		return fmt.Errorf("import interrupted: %w", err)
	}
	if len(result.Failed) > 0 {
		return fmt.Errorf("%d of %d file(s) failed to import", len(result.Failed), len(paths))
	}
	return nil
}

func listCommand(c *cli.Context) error {
	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	scores, err := lib.List(c.Context)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCOMPOSER\tPARTS\tNOTES")
	for _, s := range scores {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n", s.Id, s.Title, s.Composer, s.Parts, s.Notes)
	}
	return w.Flush()
}

func searchCommand(c *cli.Context) error {
	query, err := queryFromFlags(c)
	if err != nil {
		return err
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	var monitor search.SearchMonitor
	if c.Bool("verbose") {
		monitor = &logMonitor{logger: slog.Default()}
	}

	score, result, err := lib.SearchWithMonitor(c.Context, c.String("score"), query, monitor)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "%s: %s search for %s\n", score.Title, query.Mode, result.Motif.Source)
	if err := report.Write(c.App.Writer, result); err != nil {
		return err
	}

	if c.IsSet("highlight") {
		highlights, err := report.Highlights(score, result.All(), c.String("highlight"))
		for _, h := range highlights {
			fmt.Fprintf(c.App.Writer, "highlight part %d elements %d-%d %s\n", h.PartIndex, h.First, h.Last, h.Color)
		}
		if err != nil {
			slog.Warn("some matches could not be highlighted", "err", err)
		}
	}
	return nil
}

func queryFromFlags(c *cli.Context) (search.Query, error) {
	mode, err := search.ParseMode(c.String("mode"))
	if err != nil {
		return search.Query{}, err
	}
	order, err := search.ParseOrder(c.String("order"))
	if err != nil {
		return search.Query{}, err
	}
	query := search.Query{
		Mode:          mode,
		Motif:         c.String("motif"),
		Part:          c.Int("part"),
		Start:         c.Int("start"),
		End:           c.Int("end"),
		IgnoreOctave:  c.Bool("ignore-octave"),
		AllowApprox:   c.Bool("approx"),
		AllowInverse:  c.Bool("inverse"),
		ContextRadius: c.Int("context"),
		Order:         order,
	}
	return query, query.Validate()
}

func deleteCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("exactly one score ID or title is required")
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	score, err := lib.Delete(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "deleted %d\t%s\n", score.Id, score.Title)
	return nil
}

// logMonitor logs each search stage.
type logMonitor struct {
	logger *slog.Logger
}

var _ search.SearchMonitor = (*logMonitor)(nil)

func (m *logMonitor) Start(q search.Query) {
	m.logger.Info("search started", "mode", q.Mode, "order", q.Order, "inverse", q.AllowInverse, "approx", q.AllowApprox)
}

func (m *logMonitor) MotifResolved(motif core.Motif) {
	m.logger.Info("motif resolved", "source", motif.Source, "events", motif.Len())
}

func (m *logMonitor) PartScanned(partIndex int, regular, inverse []core.Match) {
	m.logger.Info("part scanned", "part", partIndex, "regular", len(regular), "inverse", len(inverse))
}

func (m *logMonitor) Finish(result *search.Result) {
	m.logger.Info("search finished", "matches", result.Len())
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
