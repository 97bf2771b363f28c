package ingestion

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/leitmotif/core"
	"github.com/poiesic/leitmotif/midi"
	"github.com/poiesic/leitmotif/storage"
)

// Pipeline orchestrates the import of score files into a repository.
type Pipeline struct {
	repository    storage.ScoreRepository
	pool          *ants.Pool
	proc          processor
	midiOpts      []midi.Option
	progress      io.Writer
	progressEvery int
	logger        *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent imports.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if p.pool != nil {
			p.pool.Release()
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithGrid sets the quantization step, in quarter lengths, used when reading files.
func WithGrid(quarters float64) Option {
	return func(p *Pipeline) error {
		if quarters <= 0 {
			return midi.ErrInvalidGrid
		}
		p.midiOpts = append(p.midiOpts, midi.WithGrid(quarters))
		return nil
	}
}

// WithComposer tags every imported score with a composer.
func WithComposer(composer string) Option {
	return func(p *Pipeline) error {
		p.midiOpts = append(p.midiOpts, midi.WithComposer(composer))
		return nil
	}
}

// WithProgress reports progress to w every n files.
func WithProgress(w io.Writer, every int) Option {
	return func(p *Pipeline) error {
		p.progress = w
		p.progressEvery = every
		return nil
	}
}

// NewPipeline creates a new import pipeline. Call Release when done with it.
func NewPipeline(repository storage.ScoreRepository, opts ...Option) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrScoreRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repository: repository,
		pool:       pool,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	p.proc = newMidiProcessor(repository, p.midiOpts, p.logger)
	return p, nil
}

// ImportFailure records a file that could not be imported.
type ImportFailure struct {
	Path string
	Err  error
}

// ImportReport lists the outcome of an import batch, in input order.
type ImportReport struct {
	Imported []storage.ScoreSummary
	Failed   []ImportFailure
}

type outcome struct {
	score *core.Score
	err   error
}

// Import reads and stores each file concurrently. Per-file errors are
// logged and collected in the report. If ctx is cancelled no further files
// are started and the context error is returned with the partial report.
func (p *Pipeline) Import(ctx context.Context, paths ...string) (*ImportReport, error) {
	var tracker *ProgressTracker
	if p.progress != nil {
		tracker = NewProgressTracker(p.progress, len(paths), p.progressEvery)
		tracker.Start()
	}

	outcomes := make([]outcome, len(paths))
	var wg sync.WaitGroup
	submitted := 0
	var ctxErr error
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			ctxErr = err
			break
		}
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			score, err := p.proc.process(ctx, path)
			outcomes[i] = outcome{score: score, err: err}
			if tracker != nil {
				tracker.FileDone(err)
			}
		})
		if err != nil {
			wg.Done()
			outcomes[i] = outcome{err: err}
		}
		submitted++
	}
	wg.Wait()

	if tracker != nil {
		tracker.Finish()
	}

	report := &ImportReport{}
	for i := range submitted {
		o := outcomes[i]
		if o.err != nil {
			p.logger.Error("error importing file", "path", paths[i], "err", o.err)
			report.Failed = append(report.Failed, ImportFailure{Path: paths[i], Err: o.err})
			continue
		}
		report.Imported = append(report.Imported, storage.Summarize(o.score))
	}

	p.logger.Debug("import finished", "files", len(paths), "imported", len(report.Imported), "failed", len(report.Failed))
	return report, ctxErr
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
