package ingestion

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker counts finished files of an import batch and prints a
// status line to a writer every reportEvery files.
type ProgressTracker struct {
	mu          sync.Mutex
	out         io.Writer
	total       int
	done        int
	failed      int
	reportEvery int
	nextReport  int
	began       time.Time
	running     bool
}

// NewProgressTracker creates a tracker for total files. An interval below
// one reports after every file.
func NewProgressTracker(out io.Writer, total, reportEvery int) *ProgressTracker {
	if reportEvery < 1 {
		reportEvery = 1
	}
	return &ProgressTracker{
		out:         out,
		total:       total,
		reportEvery: reportEvery,
	}
}

// Start resets the counters and the clock.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.began = time.Now()
	p.running = true
	p.done, p.failed = 0, 0
	p.nextReport = p.reportEvery
}

// FileDone records one finished file; a non-nil err counts it as failed.
func (p *ProgressTracker) FileDone(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running || p.done >= p.total {
		return
	}
	p.done++
	if err != nil {
		p.failed++
	}
	if p.done >= p.nextReport {
		p.writeStatus()
		p.nextReport = p.done + p.reportEvery
	}
}

// Counts returns the finished and failed file counts.
func (p *ProgressTracker) Counts() (done, failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done, p.failed
}

// Finish prints the final status and ends the line. Files that were never
// processed are not counted.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.writeStatus()
	fmt.Fprintln(p.out)
	p.running = false
}

// Elapsed returns the time since Start, or zero when not running.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return 0
	}
	return time.Since(p.began)
}

// writeStatus must be called with the lock held.
func (p *ProgressTracker) writeStatus() {
	var rate, pct float64
	if secs := time.Since(p.began).Seconds(); secs > 0 {
		rate = float64(p.done) / secs
	}
	if p.total > 0 {
		pct = float64(p.done) / float64(p.total) * 100
	}
	fmt.Fprintf(p.out, "\rProgress: %d/%d (%.1f%%), %d failed - %.1f files/s",
		p.done, p.total, pct, p.failed, rate)
}
