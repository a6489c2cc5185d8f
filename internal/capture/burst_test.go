package capture

import (
	"math"
	"testing"
)

func TestGapString(t *testing.T) {
	tests := []struct {
		name string
		ns   uint64
		want string
	}{
		{"zero", 0, "0 ns"},
		{"nanoseconds", 999, "999 ns"},
		{"microseconds lower bound", 1000, "1.000 µs"},
		{"microseconds", 12_345, "12.345 µs"},
		{"milliseconds", 1_500_000, "1.500 ms"},
		{"seconds", 2_000_000_000, "2.000 s"},
		{"large seconds", 61_250_000_000, "61.250 s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &BurstInfo{BurstTimeGap: tt.ns}
			if got := b.GapString(); got != tt.want {
				t.Errorf("GapString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummarizeGaps(t *testing.T) {
	bursts := []*BurstInfo{
		{BurstTimeGap: 100},
		{BurstTimeGap: 200},
		{BurstTimeGap: 300},
	}
	s := SummarizeGaps(bursts)

	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
	if s.MeanNs != 200 {
		t.Errorf("MeanNs = %v, want 200", s.MeanNs)
	}
	if s.MinNs != 100 || s.MaxNs != 300 {
		t.Errorf("Min/Max = %d/%d, want 100/300", s.MinNs, s.MaxNs)
	}
	if math.Abs(s.StdNs-100) > 1e-9 {
		t.Errorf("StdNs = %v, want 100", s.StdNs)
	}
}

func TestSummarizeGapsEdgeCases(t *testing.T) {
	if s := SummarizeGaps(nil); s.Count != 0 {
		t.Errorf("empty summary Count = %d, want 0", s.Count)
	}

	s := SummarizeGaps([]*BurstInfo{{BurstTimeGap: 42}})
	if s.Count != 1 || s.MeanNs != 42 || s.StdNs != 0 {
		t.Errorf("single burst summary = %+v, want count 1, mean 42, std 0", s)
	}
}
