package filter

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		from    string
		to      string
		want    Range
		wantErr bool
	}{
		{name: "valid", from: "1990", to: "1995", want: Range{From: 1990, To: 1995}},
		{name: "single year", from: "2000", to: "2000", want: Range{From: 2000, To: 2000}},
		{name: "spaces trimmed", from: " 1990 ", to: "1991\n", want: Range{From: 1990, To: 1991}},
		{name: "earliest", from: "1888", to: "1888", want: Range{From: 1888, To: 1888}},
		{name: "next year allowed", from: "2026", to: "2026", want: Range{From: 2026, To: 2026}},
		{name: "from after to", from: "1995", to: "1990", wantErr: true},
		{name: "before min", from: "1887", to: "1990", wantErr: true},
		{name: "after max", from: "2020", to: "2027", wantErr: true},
		{name: "not a number", from: "abc", to: "1990", wantErr: true},
		{name: "empty to", from: "1990", to: "", wantErr: true},
		{name: "float", from: "1990.5", to: "1991", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.from, tc.to, now)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				if !errors.Is(err, ErrInvalidRange) {
					t.Fatalf("expected ErrInvalidRange, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCurrent(t *testing.T) {
	now := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	r := Current(now)
	if r.From != 2024 || r.To != 2024 {
		t.Fatalf("unexpected current range %v", r)
	}
	if err := r.Validate(now); err != nil {
		t.Fatalf("current range should validate: %v", err)
	}
	if r.String() != "2024-2024" {
		t.Fatalf("unexpected string %q", r.String())
	}
}
