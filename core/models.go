package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored scores.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Letter is a diatonic pitch letter. The numeric value is the staff step
// within an octave, starting at C.
type Letter uint8

const (
	LetterC Letter = iota
	LetterD
	LetterE
	LetterF
	LetterG
	LetterA
	LetterB
)

var letterNames = [...]string{"C", "D", "E", "F", "G", "A", "B"}

// semitones above C for each natural letter
var letterSemitones = [...]int{0, 2, 4, 5, 7, 9, 11}

// LetterFromRune maps A-G (either case) to a Letter.
func LetterFromRune(r rune) (Letter, bool) {
	switch r {
	case 'C', 'c':
		return LetterC, true
	case 'D', 'd':
		return LetterD, true
	case 'E', 'e':
		return LetterE, true
	case 'F', 'f':
		return LetterF, true
	case 'G', 'g':
		return LetterG, true
	case 'A', 'a':
		return LetterA, true
	case 'B', 'b':
		return LetterB, true
	}
	return 0, false
}

func (l Letter) String() string {
	if int(l) < len(letterNames) {
		return letterNames[l]
	}
	return fmt.Sprintf("Letter(%d)", l)
}

// Accidental alters a letter by a number of semitones.
type Accidental int8

const (
	Flat    Accidental = -1
	Natural Accidental = 0
	Sharp   Accidental = 1
)

// String returns the notation used by motif strings: "#" for sharp, "-" for flat.
func (a Accidental) String() string {
	switch a {
	case Sharp:
		return "#"
	case Flat:
		return "-"
	}
	return ""
}

// ImplicitOctave is used for pitch arithmetic when a Pitch has no octave.
const ImplicitOctave = 4

// Pitch is a spelled pitch. Octave is only meaningful when HasOctave is set.
type Pitch struct {
	Letter     Letter
	Accidental Accidental
	Octave     int
	HasOctave  bool
}

// EffectiveOctave returns the octave, or ImplicitOctave if none is set.
func (p Pitch) EffectiveOctave() int {
	if p.HasOctave {
		return p.Octave
	}
	return ImplicitOctave
}

// Name returns the pitch name without octave, e.g. "C#" or "E-".
func (p Pitch) Name() string {
	return p.Letter.String() + p.Accidental.String()
}

// NameWithOctave returns the name followed by the octave when one is set.
func (p Pitch) NameWithOctave() string {
	if !p.HasOctave {
		return p.Name()
	}
	return fmt.Sprintf("%s%d", p.Name(), p.Octave)
}

// PS returns the pitch space number (MIDI numbering, C4 = 60).
func (p Pitch) PS() int {
	return (p.EffectiveOctave()+1)*12 + letterSemitones[p.Letter] + int(p.Accidental)
}

// Diatonic returns the staff-step number of the pitch, ignoring accidentals.
func (p Pitch) Diatonic() int {
	return p.EffectiveOctave()*7 + int(p.Letter)
}

// SameName reports whether two pitches share letter and accidental.
func (p Pitch) SameName(q Pitch) bool {
	return p.Letter == q.Letter && p.Accidental == q.Accidental
}

// Equal reports whether two pitches share name and effective octave.
func (p Pitch) Equal(q Pitch) bool {
	return p.SameName(q) && p.EffectiveOctave() == q.EffectiveOctave()
}

var sharpSpelling = [12]struct {
	letter     Letter
	accidental Accidental
}{
	{LetterC, Natural}, {LetterC, Sharp}, {LetterD, Natural}, {LetterD, Sharp},
	{LetterE, Natural}, {LetterF, Natural}, {LetterF, Sharp}, {LetterG, Natural},
	{LetterG, Sharp}, {LetterA, Natural}, {LetterA, Sharp}, {LetterB, Natural},
}

// PitchFromPS spells a pitch space number using sharps.
func PitchFromPS(ps int) Pitch {
	octave := ps/12 - 1
	class := ps % 12
	if class < 0 {
		class += 12
		octave--
	}
	s := sharpSpelling[class]
	return Pitch{Letter: s.letter, Accidental: s.accidental, Octave: octave, HasOctave: true}
}

// Kind tags the variant held by an Event.
type Kind uint8

const (
	// KindNote is a pitched event.
	KindNote Kind = iota + 1
	// KindRest is a silent event with a duration.
	KindRest
	// KindBarline marks a measure boundary. Context expansion skips it.
	KindBarline
	// KindMarker is any other structural element (clef or key change, section mark).
	// Context expansion stops at it.
	KindMarker
)

func (k Kind) String() string {
	switch k {
	case KindNote:
		return "note"
	case KindRest:
		return "rest"
	case KindBarline:
		return "barline"
	case KindMarker:
		return "marker"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Event is one element of a Part's flat stream.
// Pitch is only meaningful for notes; Duration for notes and rests.
type Event struct {
	Kind     Kind
	Pitch    Pitch
	Duration Duration
	Measure  int
	Offset   float64 // position in quarter lengths from the start of the part
}

// NewNote creates a note event.
func NewNote(p Pitch, d Duration) Event {
	return Event{Kind: KindNote, Pitch: p, Duration: d}
}

// NewRest creates a rest event.
func NewRest(d Duration) Event {
	return Event{Kind: KindRest, Duration: d}
}

// IsNote reports whether the event is a note.
func (e Event) IsNote() bool { return e.Kind == KindNote }

// IsRest reports whether the event is a rest.
func (e Event) IsRest() bool { return e.Kind == KindRest }

// IsNoteOrRest reports whether the event occupies time in the part.
func (e Event) IsNoteOrRest() bool { return e.Kind == KindNote || e.Kind == KindRest }

// QuarterLength returns the event's duration in quarter lengths.
func (e Event) QuarterLength() float64 { return e.Duration.QuarterLength() }

func (e Event) String() string {
	switch e.Kind {
	case KindNote:
		return e.Pitch.NameWithOctave() + " " + e.Duration.String()
	case KindRest:
		return "rest " + e.Duration.String()
	}
	return e.Kind.String()
}

// Part is one voice of a score. Elements is the flat stream, ordered by offset.
// Clef is the part's primary clef; a clef change inside the part is not tracked.
type Part struct {
	Name     string
	Clef     string
	Elements []Event
}

// Events returns the notes and rests of the part in order.
func (p *Part) Events() []Event {
	events := make([]Event, 0, len(p.Elements))
	for _, e := range p.Elements {
		if e.IsNoteOrRest() {
			events = append(events, e)
		}
	}
	return events
}

// Notes returns only the notes of the part in order.
func (p *Part) Notes() []Event {
	notes := make([]Event, 0, len(p.Elements))
	for _, e := range p.Elements {
		if e.IsNote() {
			notes = append(notes, e)
		}
	}
	return notes
}

// EventPositions maps each index of Events() to its index in Elements.
func (p *Part) EventPositions() []int {
	positions := make([]int, 0, len(p.Elements))
	for i, e := range p.Elements {
		if e.IsNoteOrRest() {
			positions = append(positions, i)
		}
	}
	return positions
}

// Score is an ordered collection of parts.
type Score struct {
	Id       ID
	Title    string
	Composer string
	Parts    []Part
}

// Key returns the text hashed into a score's content ID.
func (s *Score) Key() string {
	return strings.TrimSpace(s.Composer) + "\x00" + strings.TrimSpace(s.Title)
}

// Part returns the part at index i.
func (s *Score) Part(i int) (*Part, error) {
	if i < 0 || i >= len(s.Parts) {
		return nil, fmt.Errorf("%w: part %d of %d", ErrIndexOutOfRange, i, len(s.Parts))
	}
	return &s.Parts[i], nil
}

// SliceNotes returns notes [start, end) of a part, counting notes only.
// The indices skip rests, unlike Match.Start, which counts notes and rests,
// so a slice taken across a rest is not found verbatim by a search that
// aborts on rests.
func (s *Score) SliceNotes(part, start, end int) ([]Event, error) {
	p, err := s.Part(part)
	if err != nil {
		return nil, err
	}
	notes := p.Notes()
	if start < 0 || end > len(notes) || start > end {
		return nil, fmt.Errorf("%w: notes [%d:%d] of part %d with %d notes",
			ErrIndexOutOfRange, start, end, part, len(notes))
	}
	out := make([]Event, end-start)
	copy(out, notes[start:end])
	return out, nil
}

// Orientation records whether a match follows the motif or its inversion.
type Orientation uint8

const (
	// OrientationNone means no orientation has been decided yet.
	OrientationNone Orientation = iota
	OrientationRegular
	OrientationInverse
)

func (o Orientation) String() string {
	switch o {
	case OrientationRegular:
		return "regular"
	case OrientationInverse:
		return "inverse"
	}
	return "none"
}

// Motif is the query sequence being searched for.
type Motif struct {
	Events []Event
	Source string // notation string, or a description of the score slice
}

// Len returns the number of events in the motif.
func (m Motif) Len() int { return len(m.Events) }

// Match is one occurrence of a motif in a part.
// Events holds copies of the matched window plus any context events;
// the window itself is Events[Before : Before+Length].
type Match struct {
	PartIndex   int
	Start       int // index into Part.Events() of the first window event
	Length      int
	Before      int
	After       int
	Events      []Event
	Orientation Orientation
	Clef        string
}

// Window returns the matched events without context.
func (m Match) Window() []Event {
	return m.Events[m.Before : m.Before+m.Length]
}

// FirstMeasure returns the measure of the first event, context included.
func (m Match) FirstMeasure() int {
	if len(m.Events) == 0 {
		return 0
	}
	return m.Events[0].Measure
}

// LastMeasure returns the measure of the last event, context included.
func (m Match) LastMeasure() int {
	if len(m.Events) == 0 {
		return 0
	}
	return m.Events[len(m.Events)-1].Measure
}

// Offset returns the offset of the first event, context included.
func (m Match) Offset() float64 {
	if len(m.Events) == 0 {
		return 0
	}
	return m.Events[0].Offset
}
