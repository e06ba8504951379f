package reduce_test

import (
	"math"
	"testing"

	"github.com/farcloser/dr/internal/accum"
	"github.com/farcloser/dr/internal/reduce"
)

// TestFinalizeSineWave is grounded on original_source/src/analyzer.rs's
// test_compute_dr_sine_wave: a full-scale sine, with the sqrt(2)
// calibration in the accumulator, drives DR to ~0 because peak and
// DR-RMS coincide for a pure tone.
func TestFinalizeSineWave(t *testing.T) {
	t.Parallel()

	const sampleRate = 44100

	const duration = 12.0 // seconds, an exact multiple of the 3s block size

	numSamples := int(sampleRate * duration)
	s := accum.New(1, sampleRate)

	samples := make([]float32, numSamples)
	for i := range samples {
		t := float64(i) / sampleRate
		samples[i] = float32(math.Sin(2 * math.Pi * 440 * t))
	}

	s.Push(samples)

	dr, peakDB, rmsDB, _ := reduce.Finalize(s)

	if dr > 1 {
		t.Errorf("DR = %d, want <= 1 for a pure sine with sqrt(2) calibration", dr)
	}

	if peakDB <= -0.1 {
		t.Errorf("peakDB = %v, want > -0.1", peakDB)
	}

	if rmsDB <= -1.0 {
		t.Errorf("rmsDB = %v, want > -1.0", rmsDB)
	}
}

func TestFinalizeEmptyState(t *testing.T) {
	t.Parallel()

	s := accum.New(2, 44100)

	dr, _, rmsDB, duration := reduce.Finalize(s)

	if dr != 0 {
		t.Errorf("DR = %d, want 0 for a state with no completed blocks", dr)
	}

	if !math.IsInf(rmsDB, -1) {
		t.Errorf("rmsDB = %v, want -Inf", rmsDB)
	}

	if duration != 0 {
		t.Errorf("duration = %v, want 0", duration)
	}
}

func TestFinalizeFallsBackToHighestPeakWithOneBlock(t *testing.T) {
	t.Parallel()

	const sampleRate = 14700 // blockFrames = 44100

	s := accum.New(1, sampleRate)

	samples := make([]float32, 44100)
	for i := range samples {
		samples[i] = 0.5
	}

	s.Push(samples)

	dr, _, _, _ := reduce.Finalize(s)

	// Constant 0.5: combinedRMS = sqrt(2*0.25) ≈ 0.7071, exceeding the
	// single block's own peak of 0.5 once the sqrt(2) calibration is
	// applied, giving a negative DR: 20*log10(0.5/0.7071) ≈ -3.
	if dr != -3 {
		t.Errorf("DR = %d, want -3 for a single constant-amplitude block", dr)
	}
}
