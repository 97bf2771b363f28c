package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for stored scores. go generate ./core rewrites this file
// through cmd/musgen. Field order is the wire order; append new fields at the
// end of a struct's sequence only.
var (
	IDMUS           = idMUS{}
	KindMUS         = kindMUS{}
	LetterMUS       = letterMUS{}
	AccidentalMUS   = accidentalMUS{}
	DurationTypeMUS = durationTypeMUS{}
	PitchMUS        = pitchMUS{}
	DurationMUS     = durationMUS{}
	EventMUS        = eventMUS{}
	PartMUS         = partMUS{}
	ScoreMUS        = scoreMUS{}
)

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

type kindMUS struct{}

func (s kindMUS) Marshal(v Kind, bs []byte) (n int) {
	return varint.Uint8.Marshal(uint8(v), bs)
}

func (s kindMUS) Unmarshal(bs []byte) (v Kind, n int, err error) {
	u, n, err := varint.Uint8.Unmarshal(bs)
	return Kind(u), n, err
}

func (s kindMUS) Size(v Kind) (size int) {
	return varint.Uint8.Size(uint8(v))
}

type letterMUS struct{}

func (s letterMUS) Marshal(v Letter, bs []byte) (n int) {
	return varint.Uint8.Marshal(uint8(v), bs)
}

func (s letterMUS) Unmarshal(bs []byte) (v Letter, n int, err error) {
	u, n, err := varint.Uint8.Unmarshal(bs)
	return Letter(u), n, err
}

func (s letterMUS) Size(v Letter) (size int) {
	return varint.Uint8.Size(uint8(v))
}

type accidentalMUS struct{}

func (s accidentalMUS) Marshal(v Accidental, bs []byte) (n int) {
	return varint.Int8.Marshal(int8(v), bs)
}

func (s accidentalMUS) Unmarshal(bs []byte) (v Accidental, n int, err error) {
	i, n, err := varint.Int8.Unmarshal(bs)
	return Accidental(i), n, err
}

func (s accidentalMUS) Size(v Accidental) (size int) {
	return varint.Int8.Size(int8(v))
}

type durationTypeMUS struct{}

func (s durationTypeMUS) Marshal(v DurationType, bs []byte) (n int) {
	return varint.Uint8.Marshal(uint8(v), bs)
}

func (s durationTypeMUS) Unmarshal(bs []byte) (v DurationType, n int, err error) {
	u, n, err := varint.Uint8.Unmarshal(bs)
	return DurationType(u), n, err
}

func (s durationTypeMUS) Size(v DurationType) (size int) {
	return varint.Uint8.Size(uint8(v))
}

type pitchMUS struct{}

func (s pitchMUS) Marshal(v Pitch, bs []byte) (n int) {
	n = LetterMUS.Marshal(v.Letter, bs)
	n += AccidentalMUS.Marshal(v.Accidental, bs[n:])
	n += varint.Int.Marshal(v.Octave, bs[n:])
	n += ord.Bool.Marshal(v.HasOctave, bs[n:])
	return
}

func (s pitchMUS) Unmarshal(bs []byte) (v Pitch, n int, err error) {
	var n1 int
	if v.Letter, n, err = LetterMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Accidental, n1, err = AccidentalMUS.Unmarshal(bs[n:]); err != nil {
		n += n1
		return
	}
	n += n1
	if v.Octave, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		n += n1
		return
	}
	n += n1
	v.HasOctave, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	return
}

func (s pitchMUS) Size(v Pitch) (size int) {
	size = LetterMUS.Size(v.Letter)
	size += AccidentalMUS.Size(v.Accidental)
	size += varint.Int.Size(v.Octave)
	return size + ord.Bool.Size(v.HasOctave)
}

type durationMUS struct{}

func (s durationMUS) Marshal(v Duration, bs []byte) (n int) {
	n = DurationTypeMUS.Marshal(v.Type, bs)
	n += varint.Int.Marshal(v.Dots, bs[n:])
	return
}

func (s durationMUS) Unmarshal(bs []byte) (v Duration, n int, err error) {
	var n1 int
	if v.Type, n, err = DurationTypeMUS.Unmarshal(bs); err != nil {
		return
	}
	v.Dots, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return
}

func (s durationMUS) Size(v Duration) (size int) {
	return DurationTypeMUS.Size(v.Type) + varint.Int.Size(v.Dots)
}

type eventMUS struct{}

func (s eventMUS) Marshal(v Event, bs []byte) (n int) {
	n = KindMUS.Marshal(v.Kind, bs)
	n += PitchMUS.Marshal(v.Pitch, bs[n:])
	n += DurationMUS.Marshal(v.Duration, bs[n:])
	n += varint.Int.Marshal(v.Measure, bs[n:])
	n += varint.Float64.Marshal(v.Offset, bs[n:])
	return
}

func (s eventMUS) Unmarshal(bs []byte) (v Event, n int, err error) {
	var n1 int
	if v.Kind, n, err = KindMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Pitch, n1, err = PitchMUS.Unmarshal(bs[n:]); err != nil {
		n += n1
		return
	}
	n += n1
	if v.Duration, n1, err = DurationMUS.Unmarshal(bs[n:]); err != nil {
		n += n1
		return
	}
	n += n1
	if v.Measure, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		n += n1
		return
	}
	n += n1
	v.Offset, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	return
}

func (s eventMUS) Size(v Event) (size int) {
	size = KindMUS.Size(v.Kind)
	size += PitchMUS.Size(v.Pitch)
	size += DurationMUS.Size(v.Duration)
	size += varint.Int.Size(v.Measure)
	return size + varint.Float64.Size(v.Offset)
}

type partMUS struct{}

func (s partMUS) Marshal(v Part, bs []byte) (n int) {
	n = ord.String.Marshal(v.Name, bs)
	n += ord.String.Marshal(v.Clef, bs[n:])
	n += varint.Int.Marshal(len(v.Elements), bs[n:])
	for _, e := range v.Elements {
		n += EventMUS.Marshal(e, bs[n:])
	}
	return
}

func (s partMUS) Unmarshal(bs []byte) (v Part, n int, err error) {
	var (
		length int
		n1     int
	)
	if v.Name, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.Clef, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		n += n1
		return
	}
	n += n1
	if length, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		n += n1
		return
	}
	n += n1
	if length < 0 || length > len(bs)-n {
		err = ErrInvalidPart
		return
	}
	v.Elements = make([]Event, length)
	for i := range v.Elements {
		if v.Elements[i], n1, err = EventMUS.Unmarshal(bs[n:]); err != nil {
			n += n1
			return
		}
		n += n1
	}
	return
}

func (s partMUS) Size(v Part) (size int) {
	size = ord.String.Size(v.Name)
	size += ord.String.Size(v.Clef)
	size += varint.Int.Size(len(v.Elements))
	for _, e := range v.Elements {
		size += EventMUS.Size(e)
	}
	return
}

type scoreMUS struct{}

func (s scoreMUS) Marshal(v Score, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Composer, bs[n:])
	n += varint.Int.Marshal(len(v.Parts), bs[n:])
	for _, p := range v.Parts {
		n += PartMUS.Marshal(p, bs[n:])
	}
	return
}

func (s scoreMUS) Unmarshal(bs []byte) (v Score, n int, err error) {
	var (
		length int
		n1     int
	)
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		n += n1
		return
	}
	n += n1
	if v.Composer, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		n += n1
		return
	}
	n += n1
	if length, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		n += n1
		return
	}
	n += n1
	if length < 0 || length > len(bs)-n {
		err = ErrInvalidScore
		return
	}
	v.Parts = make([]Part, length)
	for i := range v.Parts {
		if v.Parts[i], n1, err = PartMUS.Unmarshal(bs[n:]); err != nil {
			n += n1
			return
		}
		n += n1
	}
	return
}

func (s scoreMUS) Size(v Score) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Composer)
	size += varint.Int.Size(len(v.Parts))
	for _, p := range v.Parts {
		size += PartMUS.Size(p)
	}
	return
}
