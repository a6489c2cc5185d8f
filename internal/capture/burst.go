package capture

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// BurstInfo is device-reported metadata describing the gap between two
// consecutive loop iterations of a burst capture. It is immutable once
// constructed and is never re-serialised to the device.
type BurstInfo struct {
	// BurstSampleStart and BurstSampleEnd are sample indices delimiting the
	// gap.
	BurstSampleStart int
	BurstSampleEnd   int

	// BurstSampleGap is the gap length in samples.
	BurstSampleGap int

	// BurstTimeGap is the gap duration in nanoseconds.
	BurstTimeGap uint64
}

// GapString renders the time gap with an auto-selected unit: nanoseconds
// below 1000 ns, then microseconds, milliseconds and seconds, with three
// decimal places above the nanosecond tier.
func (b *BurstInfo) GapString() string {
	ns := b.BurstTimeGap
	switch {
	case ns < 1000:
		return fmt.Sprintf("%d ns", ns)
	case ns < 1000_000:
		return fmt.Sprintf("%.3f µs", float64(ns)/1e3)
	case ns < 1000_000_000:
		return fmt.Sprintf("%.3f ms", float64(ns)/1e6)
	default:
		return fmt.Sprintf("%.3f s", float64(ns)/1e9)
	}
}

// GapSummary aggregates the inter-burst time gaps of a completed loop
// capture, in nanoseconds. Consumed by display layers to characterise how
// regular the bursts were.
type GapSummary struct {
	Count  int
	MeanNs float64
	StdNs  float64
	MinNs  uint64
	MaxNs  uint64
}

// SummarizeGaps computes mean/stddev/min/max over the time gaps of the given
// bursts. Returns a zero summary when no bursts are present.
func SummarizeGaps(bursts []*BurstInfo) GapSummary {
	if len(bursts) == 0 {
		return GapSummary{}
	}
	gaps := make([]float64, len(bursts))
	min, max := bursts[0].BurstTimeGap, bursts[0].BurstTimeGap
	for i, b := range bursts {
		gaps[i] = float64(b.BurstTimeGap)
		if b.BurstTimeGap < min {
			min = b.BurstTimeGap
		}
		if b.BurstTimeGap > max {
			max = b.BurstTimeGap
		}
	}
	mean, std := stat.MeanStdDev(gaps, nil)
	if len(gaps) == 1 {
		std = 0 // MeanStdDev yields NaN for a single sample
	}
	return GapSummary{
		Count:  len(bursts),
		MeanNs: mean,
		StdNs:  std,
		MinNs:  min,
		MaxNs:  max,
	}
}
