package interval

import (
	"testing"
	"time"
)

func TestOverlapsMinutes(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"disjoint", 540, 600, 600, 660, false},
		{"touching endpoints", 540, 600, 600, 720, false},
		{"partial", 540, 660, 600, 720, true},
		{"containment", 540, 720, 600, 660, true},
		{"exact match", 540, 720, 540, 720, true},
		{"reversed order", 600, 720, 540, 660, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := OverlapsMinutes(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Fatalf("OverlapsMinutes(%d,%d,%d,%d) = %v, want %v", tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	a1 := day.Add(9 * time.Hour)
	a2 := day.Add(10 * time.Hour)
	b1 := day.Add(10 * time.Hour)
	b2 := day.Add(11 * time.Hour)

	if Overlaps(a1, a2, b1, b2) {
		t.Fatal("adjacent hours must not overlap")
	}
	if !Overlaps(a1, a2.Add(30*time.Minute), b1, b2) {
		t.Fatal("expected overlap for intersecting ranges")
	}
}
