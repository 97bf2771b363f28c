package notation

import (
	"testing"

	"github.com/poiesic/leitmotif/core"
	"github.com/poiesic/leitmotif/interval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(events []core.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Pitch.NameWithOctave()
	}
	return out
}

func TestParsePitches(t *testing.T) {
	t.Run("pitch classes with accidentals", func(t *testing.T) {
		events, err := ParsePitches("A B C# D E-")
		require.NoError(t, err)
		require.Len(t, events, 5)
		assert.Equal(t, []string{"A", "B", "C#", "D", "E-"}, names(events))
		for _, e := range events {
			assert.True(t, e.IsNote())
			assert.False(t, e.Pitch.HasOctave)
			assert.Equal(t, 1.0, e.QuarterLength())
		}
	})

	t.Run("no separators and lower case", func(t *testing.T) {
		events, err := ParsePitches("abc#d")
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C#", "D"}, names(events))
	})

	t.Run("final letter is a note", func(t *testing.T) {
		events, err := ParsePitches("C D")
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("empty input", func(t *testing.T) {
		events, err := ParsePitches("   ")
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	malformed := []string{"C ##", "C --", "H", "C4", "# C", "C, D"}
	for _, s := range malformed {
		t.Run("malformed "+s, func(t *testing.T) {
			_, err := ParsePitches(s)
			assert.ErrorIs(t, err, core.ErrMalformedNotation)
		})
	}
}

func TestParsePitchesWithOctave(t *testing.T) {
	t.Run("letters, accidentals and octaves", func(t *testing.T) {
		events, err := ParsePitchesWithOctave("A3 B-3 C#4")
		require.NoError(t, err)
		require.Len(t, events, 3)

		want := []core.Pitch{
			{Letter: core.LetterA, Octave: 3, HasOctave: true},
			{Letter: core.LetterB, Accidental: core.Flat, Octave: 3, HasOctave: true},
			{Letter: core.LetterC, Accidental: core.Sharp, Octave: 4, HasOctave: true},
		}
		for i, p := range want {
			assert.Equal(t, p, events[i].Pitch)
		}
	})

	t.Run("no separators", func(t *testing.T) {
		events, err := ParsePitchesWithOctave("D4E4F#4")
		require.NoError(t, err)
		assert.Equal(t, []string{"D4", "E4", "F#4"}, names(events))
	})

	malformed := []string{"A", "A B3", "C#", "C10", "3", "C4 x"}
	for _, s := range malformed {
		t.Run("malformed "+s, func(t *testing.T) {
			_, err := ParsePitchesWithOctave(s)
			assert.ErrorIs(t, err, core.ErrMalformedNotation)
		})
	}
}

func TestParseMelody(t *testing.T) {
	events, err := ParseMelody("C4 E4 G4")
	require.NoError(t, err)
	assert.True(t, events[0].Pitch.HasOctave)

	events, err = ParseMelody("C E G")
	require.NoError(t, err)
	assert.False(t, events[0].Pitch.HasOctave)

	_, err = ParseMelody("C E G4")
	assert.ErrorIs(t, err, core.ErrMalformedNotation)
}

func TestParseRhythm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []float64
	}{
		{"plain and dotted", "8 8.", []float64{0.5, 0.75}},
		{"whole through sixteenth", "1 2 4 16", []float64{4, 2, 1, 0.25}},
		{"double dot", "4..", []float64{1.75}},
		{"pseudo-pitch prefix", "c8 b-8. g#4", []float64{0.5, 0.75, 1}},
		{"letter ends a token", "8c8.d4", []float64{0.5, 0.75, 1}},
		{"empty", "", []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := ParseRhythm(tt.input)
			require.NoError(t, err)
			got := make([]float64, len(events))
			for i, e := range events {
				got[i] = e.QuarterLength()
			}
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("missing denominator", func(t *testing.T) {
		_, err := ParseRhythm("8 c")
		assert.ErrorIs(t, err, core.ErrMalformedNotation)
	})

	t.Run("dots before digits", func(t *testing.T) {
		_, err := ParseRhythm(".8")
		assert.ErrorIs(t, err, core.ErrMalformedNotation)
	})

	t.Run("unsupported denominator", func(t *testing.T) {
		_, err := ParseRhythm("8 3")
		assert.ErrorIs(t, err, core.ErrInvalidDenominator)
	})
}

func TestParseContour(t *testing.T) {
	t.Run("parsons code", func(t *testing.T) {
		events, err := ParseContour("*dduurrdrruur")
		require.NoError(t, err)
		require.Len(t, events, 13)

		steps := make([]interval.Step, 0, len(events)-1)
		for i := 1; i < len(events); i++ {
			steps = append(steps, interval.ContourBetween(events[i-1].Pitch, events[i].Pitch))
		}
		d, u, r := interval.Down, interval.Up, interval.Repeat
		assert.Equal(t, []interval.Step{d, d, u, u, r, r, d, r, u, u, r, d}, steps)
	})

	t.Run("upper case and spaces", func(t *testing.T) {
		events, err := ParseContour(" * U D R")
		require.NoError(t, err)
		assert.Len(t, events, 4)
		assert.Equal(t, ContourStart, events[0].Pitch)
	})

	t.Run("single star", func(t *testing.T) {
		events, err := ParseContour("*")
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})

	for _, s := range []string{"", "udr", "*ux", "**u"} {
		t.Run("malformed "+s, func(t *testing.T) {
			_, err := ParseContour(s)
			assert.ErrorIs(t, err, core.ErrMalformedNotation)
		})
	}
}
