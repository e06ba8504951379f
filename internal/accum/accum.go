// Package accum implements the streaming DR accumulator: it consumes
// interleaved f32 PCM frames in arbitrary packet-sized chunks and
// emits fully-formed 3-second block statistics under memory bounded
// by channel count times block count, independent of track length.
//
// Grounded on the donor's internal/audit/loudness meter/processFrame
// shape, stripped of K-weighting (not a DR concern) and corrected to
// track per-channel RMS/peak rather than a cross-channel averaged
// power, per the block statistics the DR algorithm actually needs.
package accum

import "math"

// State is the streaming accumulator for one track. It is single-owner:
// created at stream open, mutated in place by the packet feeder, and
// consumed by Finalize (see package reduce), after which it should be
// discarded.
type State struct {
	channels    int
	sampleRate  uint32
	blockFrames int

	sumSq []float64 // per-channel sum of squares, current in-progress block
	peak  []float64 // per-channel peak, current in-progress block
	filled int       // frames accumulated into the in-progress block

	globalPeak float64

	blockRMS   [][]float64 // per-channel, one entry per completed block
	blockPeaks [][]float64

	totalFrames uint64

	// residual holds sub-frame samples: input whose length was not a
	// multiple of channels. Well-formed decoders never produce this;
	// it exists because push_samples in the source this was ported
	// from preserves that possibility rather than assuming it away.
	residual []float32
}

// New creates a State for a track with the given channel count and
// sample rate. A zero channel count is legal: Push becomes a no-op.
func New(channels int, sampleRate uint32) *State {
	blockFrames := 0
	if sampleRate > 0 {
		blockFrames = int(3 * sampleRate)
	}

	return &State{
		channels:    channels,
		sampleRate:  sampleRate,
		blockFrames: blockFrames,
		sumSq:       make([]float64, channels),
		peak:        make([]float64, channels),
		blockRMS:    make([][]float64, channels),
		blockPeaks:  make([][]float64, channels),
	}
}

// Push consumes a chunk of interleaved frames, completing zero or more
// 3-second blocks as it goes.
func (s *State) Push(interleaved []float32) {
	if s.channels == 0 || s.blockFrames == 0 {
		return
	}

	var combined []float32
	if len(s.residual) > 0 {
		combined = append(append([]float32{}, s.residual...), interleaved...)
		s.residual = nil
	} else {
		combined = interleaved
	}

	usableFrames := len(combined) / s.channels
	usableSamples := usableFrames * s.channels

	if usableSamples < len(combined) {
		s.residual = append(s.residual, combined[usableSamples:]...)
	}

	for frame := 0; frame < usableFrames; frame++ {
		base := frame * s.channels

		for ch := 0; ch < s.channels; ch++ {
			sample := float64(combined[base+ch])
			abs := math.Abs(sample)

			s.sumSq[ch] += sample * sample
			if abs > s.peak[ch] {
				s.peak[ch] = abs
			}

			if abs > s.globalPeak {
				s.globalPeak = abs
			}
		}

		s.filled++
		s.totalFrames++

		if s.filled == s.blockFrames {
			s.completeBlock()
		}
	}
}

func (s *State) completeBlock() {
	for ch := 0; ch < s.channels; ch++ {
		rms := math.Sqrt(2 * s.sumSq[ch] / float64(s.blockFrames))
		s.blockRMS[ch] = append(s.blockRMS[ch], rms)
		s.blockPeaks[ch] = append(s.blockPeaks[ch], s.peak[ch])
		s.sumSq[ch] = 0
		s.peak[ch] = 0
	}

	s.filled = 0
}

// Channels returns the channel count this state was created with.
func (s *State) Channels() int { return s.channels }

// SampleRate returns the sample rate this state was created with.
func (s *State) SampleRate() uint32 { return s.sampleRate }

// TotalFrames returns the total number of whole frames pushed so far,
// including the in-progress (not yet block-complete) tail.
func (s *State) TotalFrames() uint64 { return s.totalFrames }

// GlobalPeak returns the absolute peak sample magnitude seen across
// every channel and every sample, not just the blocks used for DR.
func (s *State) GlobalPeak() float64 { return s.globalPeak }

// NumBlocks returns the number of completed 3-second blocks.
func (s *State) NumBlocks() int {
	if s.channels == 0 {
		return 0
	}

	return len(s.blockRMS[0])
}

// BlockRMS returns the completed per-block RMS values for channel ch.
func (s *State) BlockRMS(ch int) []float64 { return s.blockRMS[ch] }

// BlockPeaks returns the completed per-block peak values for channel ch.
func (s *State) BlockPeaks(ch int) []float64 { return s.blockPeaks[ch] }
