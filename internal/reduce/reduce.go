// Package reduce turns a finished accum.State into the final per-track
// (dr, peak_db, rms_db, duration_seconds) tuple.
//
// Grounded on the donor's internal/audit/loudness.calculateDR for the
// sort-and-select shape, corrected against the original algorithm's
// two load-bearing differences: the combined RMS is a quadratic mean
// of the top 20% of blocks (not their arithmetic mean), and the
// resulting DR value is never clamped.
package reduce

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/farcloser/dr/internal/accum"
)

// Finalize computes the reduced DR statistics for a finished state.
func Finalize(s *accum.State) (dr int, peakDB, rmsDB, durationSeconds float64) {
	sampleRate := s.SampleRate()
	if sampleRate > 0 {
		durationSeconds = float64(s.TotalFrames()) / float64(sampleRate)
	}

	if s.NumBlocks() == 0 || s.Channels() == 0 {
		return 0, dbFS(s.GlobalPeak()), math.Inf(-1), durationSeconds
	}

	channels := s.Channels()
	channelDR := make([]float64, channels)
	maxCombinedRMS := 0.0

	for ch := 0; ch < channels; ch++ {
		combinedRMS := topQuadraticMeanRMS(s.BlockRMS(ch))
		representativePeak := secondHighestOrHighest(s.BlockPeaks(ch))

		if combinedRMS > maxCombinedRMS {
			maxCombinedRMS = combinedRMS
		}

		if representativePeak > 0 && combinedRMS > 0 {
			channelDR[ch] = 20 * math.Log10(representativePeak/combinedRMS)
		}
	}

	dr = int(math.Round(mean(channelDR)))
	rmsDB = dbFS(maxCombinedRMS)
	peakDB = dbFS(s.GlobalPeak())

	return dr, peakDB, rmsDB, durationSeconds
}

// topQuadraticMeanRMS sorts rms values descending and returns the
// quadratic mean (root-mean-square) of the top 20%, at least one value.
func topQuadraticMeanRMS(rms []float64) float64 {
	sorted := append([]float64{}, rms...)
	sortDescending(sorted)

	topCount := int(math.Ceil(0.2 * float64(len(sorted))))
	if topCount < 1 {
		topCount = 1
	}

	squares := make([]float64, topCount)
	for i := 0; i < topCount; i++ {
		squares[i] = sorted[i] * sorted[i]
	}

	return math.Sqrt(stat.Mean(squares, nil))
}

// secondHighestOrHighest sorts peaks descending and returns the second
// element if at least two blocks exist, else the first. This fallback
// is part of the DR contract, not an edge case to special-case away.
func secondHighestOrHighest(peaks []float64) float64 {
	sorted := append([]float64{}, peaks...)
	sortDescending(sorted)

	if len(sorted) >= 2 {
		return sorted[1]
	}

	return sorted[0]
}

// sortDescending sorts in place, treating any NaN-involving comparison
// as equal rather than panicking.
func sortDescending(values []float64) {
	sort.Slice(values, func(i, j int) bool {
		a, b := values[i], values[j]
		if math.IsNaN(a) || math.IsNaN(b) {
			return false
		}

		return a > b
	})
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return stat.Mean(values, nil)
}

// dbFS converts a linear amplitude to decibels full scale.
func dbFS(x float64) float64 {
	if x <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(x)
}
