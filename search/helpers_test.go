package search

import (
	"strconv"
	"strings"
	"testing"

	"github.com/poiesic/leitmotif/core"
	"github.com/poiesic/leitmotif/notation"
	"github.com/stretchr/testify/require"
)

// part builds a 4/4 part from tokens such as "C4", "E-5:8" or "r:2".
// A ":n" suffix sets the rhythm denominator; the default is a quarter.
// Barlines are inserted at every measure boundary.
func part(t *testing.T, clef, tokens string) core.Part {
	t.Helper()

	var events []core.Event
	for _, tok := range strings.Fields(tokens) {
		d := core.Duration{Type: core.Quarter}
		name, denom, found := strings.Cut(tok, ":")
		if found {
			n, err := strconv.Atoi(denom)
			require.NoError(t, err)
			d.Type, err = core.TypeFromDenominator(n)
			require.NoError(t, err)
		}
		if name == "r" {
			events = append(events, core.NewRest(d))
			continue
		}
		parsed, err := notation.ParsePitchesWithOctave(name)
		require.NoError(t, err)
		require.Len(t, parsed, 1)
		events = append(events, core.NewNote(parsed[0].Pitch, d))
	}
	return layout(clef, events)
}

func layout(clef string, events []core.Event) core.Part {
	p := core.Part{Clef: clef}
	offset := 0.0
	measure := 1
	for _, e := range events {
		for offset >= float64(measure*4) {
			measure++
			p.Elements = append(p.Elements, core.Event{Kind: core.KindBarline, Measure: measure, Offset: offset})
		}
		e.Measure = measure
		e.Offset = offset
		p.Elements = append(p.Elements, e)
		offset += e.QuarterLength()
	}
	return p
}

func newTestSearcher(t *testing.T) *Searcher {
	t.Helper()
	s, err := NewSearcher(WithPoolSize(2))
	require.NoError(t, err)
	t.Cleanup(s.Release)
	return s
}

type recordingMonitor struct {
	calls   []string
	scanned []int
	motif   core.Motif
	result  *Result
}

var _ SearchMonitor = (*recordingMonitor)(nil)

func (r *recordingMonitor) Start(q Query) {
	r.calls = append(r.calls, "start")
}

func (r *recordingMonitor) MotifResolved(m core.Motif) {
	r.calls = append(r.calls, "motif")
	r.motif = m
}

func (r *recordingMonitor) PartScanned(i int, regular, inverse []core.Match) {
	r.calls = append(r.calls, "part")
	r.scanned = append(r.scanned, i)
}

func (r *recordingMonitor) Finish(result *Result) {
	r.calls = append(r.calls, "finish")
	r.result = result
}
