package core

import (
	"errors"
	"testing"
)

func TestQuarterLength(t *testing.T) {
	tests := []struct {
		name string
		d    Duration
		want float64
	}{
		{"unset reads as quarter", Duration{}, 1},
		{"whole", Duration{Type: Whole}, 4},
		{"eighth", Duration{Type: Eighth}, 0.5},
		{"dotted eighth", Duration{Type: Eighth, Dots: 1}, 0.75},
		{"double-dotted quarter", Duration{Type: Quarter, Dots: 2}, 1.75},
		{"triple-dotted half", Duration{Type: Half, Dots: 3}, 3.75},
		{"128th", Duration{Type: OneTwentyEighth}, 0.03125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.QuarterLength(); got != tt.want {
				t.Errorf("QuarterLength() = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestTypeFromDenominator(t *testing.T) {
	for _, d := range []int{1, 2, 4, 8, 16, 32, 64, 128} {
		typ, err := TypeFromDenominator(d)
		if err != nil {
			t.Fatalf("TypeFromDenominator(%d) error = %v", d, err)
		}
		if typ.Denominator() != d {
			t.Errorf("TypeFromDenominator(%d).Denominator() = %d", d, typ.Denominator())
		}
	}

	for _, d := range []int{0, 3, 12, 256, -4} {
		if _, err := TypeFromDenominator(d); !errors.Is(err, ErrInvalidDenominator) {
			t.Errorf("TypeFromDenominator(%d) error = %v, want ErrInvalidDenominator", d, err)
		}
	}
}

func TestDurationFromQuarterLength(t *testing.T) {
	d, err := DurationFromQuarterLength(1.5)
	if err != nil {
		t.Fatalf("DurationFromQuarterLength(1.5) error = %v", err)
	}
	if d.Type != Quarter || d.Dots != 1 {
		t.Errorf("DurationFromQuarterLength(1.5) = %v, want dotted quarter", d)
	}

	if _, err := DurationFromQuarterLength(1.25); !errors.Is(err, ErrInexpressibleDuration) {
		t.Errorf("DurationFromQuarterLength(1.25) error = %v, want ErrInexpressibleDuration", err)
	}
}

func TestNearestDuration(t *testing.T) {
	tests := []struct {
		ql   float64
		want Duration
	}{
		{1, Duration{Type: Quarter}},
		{0.74, Duration{Type: Eighth, Dots: 1}},
		{5.5, Duration{Type: Whole, Dots: 1}},
		{0.01, Duration{Type: OneTwentyEighth}},
	}

	for _, tt := range tests {
		got := NearestDuration(tt.ql)
		if got != tt.want {
			t.Errorf("NearestDuration(%g) = %v, want %v", tt.ql, got, tt.want)
		}
	}
}

func TestDuration_String(t *testing.T) {
	tests := []struct {
		d    Duration
		want string
	}{
		{Duration{Type: Quarter}, "quarter"},
		{Duration{Type: Eighth, Dots: 1}, "dotted eighth"},
		{Duration{Type: Half, Dots: 2}, "double-dotted half"},
		{Duration{Type: Whole, Dots: 3}, "3-dotted whole"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
