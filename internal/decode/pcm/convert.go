// Package pcm holds the fixed-point-to-float normalization constants
// and helpers shared by the decoder backends.
package pcm

const (
	MaxValue16 = 32768.0      // 2^15 — 16-bit signed PCM normalization divisor
	MaxValue24 = 8388608.0    // 2^23 — 24-bit signed PCM normalization divisor
	MaxValue32 = 2147483648.0 // 2^31 — 32-bit signed PCM normalization divisor
)

// Int16ToFloat32 converts interleaved 16-bit signed PCM to interleaved
// float32 in [-1, 1].
func Int16ToFloat32(in []int16, out []float32) []float32 {
	out = growFloat32(out, len(in))
	for i, s := range in {
		out[i] = float32(float64(s) / MaxValue16)
	}

	return out
}

// Int32ToFloat32 converts interleaved 32-bit signed PCM (e.g. ffmpeg's
// s32le output) to interleaved float32 in [-1, 1].
func Int32ToFloat32(in []int32, out []float32) []float32 {
	out = growFloat32(out, len(in))
	for i, s := range in {
		out[i] = float32(float64(s) / MaxValue32)
	}

	return out
}

// NormalizeFromBits scales a raw integer sample by its source bit
// depth, used by backends (FLAC) that report a variable bits-per-sample.
func NormalizeFromBits(sample int32, bitsPerSample uint8) float32 {
	maxValue := float64(int64(1) << (bitsPerSample - 1))

	return float32(float64(sample) / maxValue)
}

func growFloat32(buf []float32, n int) []float32 {
	if cap(buf) < n {
		return make([]float32, n)
	}

	return buf[:n]
}
