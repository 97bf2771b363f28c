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


package midi

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/poiesic/leitmotif/core"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ReadFile reads a Standard MIDI File from path. Unless WithTitle is given
// the title is the file name without its extension.
func ReadFile(path string, opts ...Option) (*core.Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Read(bytes.NewReader(data), append([]Option{WithTitle(title)}, opts...)...)
}

// Read reads a Standard MIDI File from r.
func Read(r io.Reader, opts ...Option) (score *core.Score, err error) {
	// the smf decoder can panic on corrupt input
	defer func() {
		if rec := recover(); rec != nil {
			score, err = nil, fmt.Errorf("%w: %v", ErrUnreadable, rec)
		}
	}()

	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	return FromSMF(s, opts...)
}

// note is a sounding key in absolute ticks.
type note struct {
	key   uint8
	start int64
	end   int64
}

// FromSMF converts a decoded file into a score.
func FromSMF(s *smf.SMF, opts ...Option) (*core.Score, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok || ticks.Resolution() == 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedTimeFormat, s.TimeFormat)
	}
	resolution := float64(ticks.Resolution())
	measureLength := meterOf(s)

	title := cfg.title
	if title == "" {
		title = "untitled"
	}
	score := &core.Score{
		Title:    title,
		Composer: cfg.composer,
	}

	for i, track := range s.Tracks {
		notes, name := readTrack(track)
		if len(notes) == 0 {
			continue
		}
		if name == "" {
			name = fmt.Sprintf("Track %d", i+1)
		}
		voice, dropped := monophonic(notes)
		p := buildPart(name, voice, resolution, cfg.grid, measureLength)
		cfg.logger.Debug("track read", "track", i, "name", name,
			"notes", len(voice), "dropped", dropped, "elements", len(p.Elements))
		score.Parts = append(score.Parts, p)
	}

	if len(score.Parts) == 0 {
		return nil, ErrNoNotes
	}
	if err := core.ValidateScore(score); err != nil {
		return nil, err
	}
	return score, nil
}

// meterOf returns the measure length in quarters from the first time
// signature found, or 4 for 4/4.
func meterOf(s *smf.SMF) float64 {
	for _, track := range s.Tracks {
		for _, ev := range track {
			var num, denom uint8
			if ev.Message.GetMetaMeter(&num, &denom) && num > 0 && denom > 0 {
				return float64(num) * 4 / float64(denom)
			}
		}
	}
	return 4
}

func readTrack(track smf.Track) ([]note, string) {
	var (
		notes []note
		name  string
		tick  int64
	)
	open := make(map[uint8]int)
	for _, ev := range track {
		tick += int64(ev.Delta)
		var channel, key, velocity uint8
		var text string
		switch {
		case ev.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0:
			if idx, ok := open[key]; ok {
				notes[idx].end = tick
			}
			open[key] = len(notes)
			notes = append(notes, note{key: key, start: tick, end: -1})
		case ev.Message.GetNoteOn(&channel, &key, &velocity), ev.Message.GetNoteOff(&channel, &key, &velocity):
			if idx, ok := open[key]; ok {
				notes[idx].end = tick
				delete(open, key)
			}
		case name == "" && ev.Message.GetMetaTrackName(&text):
			name = strings.TrimSpace(text)
		}
	}
	for _, idx := range open {
		notes[idx].end = tick
	}
	return notes, name
}

// monophonic keeps the highest of simultaneous onsets and cuts each note
// at the next onset. It returns the kept notes and how many were dropped.
func monophonic(notes []note) ([]note, int) {
	sorted := make([]note, len(notes))
	copy(sorted, notes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].start != sorted[j].start {
			return sorted[i].start < sorted[j].start
		}
		return sorted[i].key > sorted[j].key
	})

	voice := make([]note, 0, len(sorted))
	for _, n := range sorted {
		if len(voice) > 0 && voice[len(voice)-1].start == n.start {
			continue
		}
		voice = append(voice, n)
	}
	for i := 0; i+1 < len(voice); i++ {
		if voice[i].end > voice[i+1].start {
			voice[i].end = voice[i+1].start
		}
	}
	return voice, len(notes) - len(voice)
}

func quantize(ticks int64, resolution, grid float64) float64 {
	return math.Round(float64(ticks)/resolution/grid) * grid
}

// partBuilder lays events out in measures, inserting barlines.
type partBuilder struct {
	part          core.Part
	measureLength float64
	measure       int
	cursor        float64
}

func (b *partBuilder) add(e core.Event, at float64) {
	for at >= float64(b.measure)*b.measureLength {
		b.measure++
		b.part.Elements = append(b.part.Elements, core.Event{
			Kind:    core.KindBarline,
			Measure: b.measure,
			Offset:  float64(b.measure-1) * b.measureLength,
		})
	}
	e.Measure = b.measure
	e.Offset = at
	b.part.Elements = append(b.part.Elements, e)
}

func buildPart(name string, voice []note, resolution, grid, measureLength float64) core.Part {
	b := &partBuilder{
		part:          core.Part{Name: name},
		measureLength: measureLength,
		measure:       1,
	}

	sum := 0
	for _, n := range voice {
		start := math.Max(quantize(n.start, resolution, grid), b.cursor)
		end := quantize(n.end, resolution, grid)
		if end <= start {
			end = start + grid
		}
		if start > b.cursor {
			b.add(core.NewRest(core.NearestDuration(start-b.cursor)), b.cursor)
		}
		p := core.PitchFromPS(int(n.key))
		b.add(core.NewNote(p, core.NearestDuration(end-start)), start)
		b.cursor = end
		sum += int(n.key)
	}

	b.part.Clef = "treble"
	if len(voice) > 0 && float64(sum)/float64(len(voice)) < 60 {
		b.part.Clef = "bass"
	}
	return b.part
}
