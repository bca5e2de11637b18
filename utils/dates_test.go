package utils

import (
	"testing"
	"time"
)

func TestBeginningOfDay(t *testing.T) {
	bogota := time.FixedZone("America/Bogota", -5*3600)
	in := time.Date(2026, 3, 15, 17, 42, 9, 123, bogota)
	got := BeginningOfDay(in)
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, bogota)
	if !got.Equal(want) {
		t.Errorf("BeginningOfDay(%v) = %v, want %v", in, got, want)
	}
	if got.Location() != bogota {
		t.Errorf("location changed to %v", got.Location())
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "same day different clock times",
			start: time.Date(2026, 1, 10, 23, 59, 0, 0, time.UTC),
			end:   time.Date(2026, 1, 10, 0, 1, 0, 0, time.UTC),
			want:  0,
		},
		{
			name:  "one day apart across midnight",
			start: time.Date(2026, 1, 10, 23, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 1, 11, 1, 0, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "due date in the past",
			start: time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 1, 25, 8, 0, 0, 0, time.UTC),
			want:  -7,
		},
		{
			name:  "thirty days",
			start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
			want:  30,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DaysBetween(tc.start, tc.end); got != tc.want {
				t.Errorf("DaysBetween = %d, want %d", got, tc.want)
			}
		})
	}
}
