package ingestion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/leitmotif/core"
	"github.com/poiesic/leitmotif/midi"
	"github.com/poiesic/leitmotif/storage"
	"github.com/poiesic/leitmotif/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// writeMelody writes a one-track file of consecutive quarter notes.
func writeMelody(t *testing.T, dir, name string, keys ...uint8) string {
	t.Helper()
	var tr smf.Track
	for _, k := range keys {
		tr.Add(0, gomidi.NoteOn(0, k, 100))
		tr.Add(480, gomidi.NoteOff(0, k))
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)
	require.NoError(t, s.Add(tr))

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func newRepo(t *testing.T) storage.ScoreRepository {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func newPipeline(t *testing.T, repo storage.ScoreRepository, opts ...Option) *Pipeline {
	t.Helper()
	p, err := NewPipeline(repo, opts...)
	require.NoError(t, err)
	t.Cleanup(p.Release)
	return p
}

func TestNewPipeline(t *testing.T) {
	t.Run("requires repository", func(t *testing.T) {
		p, err := NewPipeline(nil)
		assert.ErrorIs(t, err, ErrScoreRepositoryRequired)
		assert.Nil(t, p)
	})

	t.Run("pool size floor", func(t *testing.T) {
		p := newPipeline(t, newRepo(t), WithPoolSize(0))
		assert.Equal(t, 1, p.pool.Cap())
	})

	t.Run("invalid grid", func(t *testing.T) {
		p, err := NewPipeline(newRepo(t), WithGrid(0))
		assert.ErrorIs(t, err, midi.ErrInvalidGrid)
		assert.Nil(t, p)
	})

	t.Run("nil logger falls back", func(t *testing.T) {
		p := newPipeline(t, newRepo(t), WithLogger(nil))
		assert.NotNil(t, p.logger)
	})
}

func TestImport(t *testing.T) {
	repo := newRepo(t)
	p := newPipeline(t, repo, WithPoolSize(2), WithComposer("Anon"))
	dir := t.TempDir()

	air := writeMelody(t, dir, "air.mid", 60, 62, 64)
	broken := filepath.Join(dir, "broken.mid")
	require.NoError(t, os.WriteFile(broken, []byte("not a midi file"), 0644))
	jig := writeMelody(t, dir, "jig.mid", 67, 69)
	missing := filepath.Join(dir, "missing.mid")

	report, err := p.Import(context.Background(), air, broken, jig, missing)
	require.NoError(t, err)

	require.Len(t, report.Imported, 2)
	assert.Equal(t, "air", report.Imported[0].Title)
	assert.Equal(t, 3, report.Imported[0].Notes)
	assert.Equal(t, "jig", report.Imported[1].Title)
	assert.Equal(t, "Anon", report.Imported[1].Composer)

	require.Len(t, report.Failed, 2)
	assert.Equal(t, broken, report.Failed[0].Path)
	assert.ErrorIs(t, report.Failed[0].Err, midi.ErrUnreadable)
	assert.Equal(t, missing, report.Failed[1].Path)
	assert.ErrorIs(t, report.Failed[1].Err, os.ErrNotExist)

	stored, err := repo.FindScoreByTitle(context.Background(), "AIR")
	require.NoError(t, err)
	assert.Equal(t, "Anon", stored.Composer)
	notes := stored.Parts[0].Notes()
	require.Len(t, notes, 3)
	assert.Equal(t, 64, notes[2].Pitch.PS())
}

func TestImport_Duplicate(t *testing.T) {
	p := newPipeline(t, newRepo(t))
	path := writeMelody(t, t.TempDir(), "air.mid", 60, 62)

	report, err := p.Import(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, report.Imported, 1)

	report, err = p.Import(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, report.Imported)
	require.Len(t, report.Failed, 1)
	assert.ErrorIs(t, report.Failed[0].Err, storage.ErrDuplicateKey)
}

func TestImport_Empty(t *testing.T) {
	p := newPipeline(t, newRepo(t))

	report, err := p.Import(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Imported)
	assert.Empty(t, report.Failed)
}

func TestImport_Cancelled(t *testing.T) {
	p := newPipeline(t, newRepo(t))
	path := writeMelody(t, t.TempDir(), "air.mid", 60)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := p.Import(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Empty(t, report.Imported)
	assert.Empty(t, report.Failed)
}

func TestImport_Progress(t *testing.T) {
	var out bytes.Buffer
	p := newPipeline(t, newRepo(t), WithProgress(&out, 1))
	dir := t.TempDir()

	_, err := p.Import(context.Background(),
		writeMelody(t, dir, "a.mid", 60),
		writeMelody(t, dir, "b.mid", 62),
	)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Progress: 2/2 (100.0%)")
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
}

// slowProcessor finishes files in reverse order of submission.
type slowProcessor struct {
	mu    sync.Mutex
	calls int
}

func (s *slowProcessor) process(ctx context.Context, path string) (*core.Score, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	var n int
	fmt.Sscanf(filepath.Base(path), "%d", &n)
	time.Sleep(time.Duration(10-n) * 2 * time.Millisecond)
	if n == 3 {
		return nil, errors.New("boom")
	}
	return &core.Score{Title: path}, nil
}

func TestImport_KeepsInputOrder(t *testing.T) {
	p := newPipeline(t, newRepo(t), WithPoolSize(4))
	proc := &slowProcessor{}
	p.proc = proc

	var paths []string
	for i := range 8 {
		paths = append(paths, fmt.Sprintf("%d.mid", i))
	}

	report, err := p.Import(context.Background(), paths...)
	require.NoError(t, err)
	assert.Equal(t, 8, proc.calls)

	require.Len(t, report.Failed, 1)
	assert.Equal(t, "3.mid", report.Failed[0].Path)

	require.Len(t, report.Imported, 7)
	want := []string{"0.mid", "1.mid", "2.mid", "4.mid", "5.mid", "6.mid", "7.mid"}
	for i, s := range report.Imported {
		assert.Equal(t, want[i], s.Title)
	}
}
