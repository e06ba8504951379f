// Package mp3dec adapts github.com/hajimehoshi/go-mp3 to the
// decode.Decoder contract. go-mp3 always outputs interleaved 16-bit
// stereo PCM regardless of the source's original channel layout.
package mp3dec

import (
	"errors"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"

	"github.com/farcloser/dr/internal/decode"
	"github.com/farcloser/dr/internal/decode/pcm"
	"github.com/farcloser/dr/internal/source"
)

const (
	packetFrames = 4096
	channels     = 2
	bytesPerSamp = 2 // 16-bit
)

func init() {
	decode.Register(open, "mp3")
}

type adapter struct {
	dec      *mp3.Decoder
	counting *countingReader
	raw      []byte
	samples  []int16
	scratch  []float32
}

func open(src source.Source) (decode.Decoder, decode.OpenResult, error) {
	cr := &countingReader{r: src}

	dec, err := mp3.NewDecoder(cr)
	if err != nil {
		return nil, decode.OpenResult{}, fmt.Errorf("open mp3 stream: %w", err)
	}

	res := decode.OpenResult{
		SampleRate: uint32(dec.SampleRate()),
		Channels:   channels,
		TrackID:    "0",
	}

	return &adapter{
		dec:      dec,
		counting: cr,
		raw:      make([]byte, packetFrames*channels*bytesPerSamp),
	}, res, nil
}

func (a *adapter) NextPacket() (decode.Frames, decode.PacketOutcome, error) {
	n, err := a.dec.Read(a.raw)
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return decode.Frames{}, decode.OutcomeEndOfStream, nil
		}

		return decode.Frames{}, decode.OutcomeEndOfStream, fmt.Errorf("read mp3 frame: %w", err)
	}

	frameCount := n / (channels * bytesPerSamp)
	sampleCount := frameCount * channels

	if cap(a.samples) < sampleCount {
		a.samples = make([]int16, sampleCount)
	}

	samples := a.samples[:sampleCount]
	for i := 0; i < sampleCount; i++ {
		lo := a.raw[i*2]
		hi := a.raw[i*2+1]
		samples[i] = int16(uint16(lo) | uint16(hi)<<8) //nolint:gosec // intentional LE reassembly
	}

	a.scratch = pcm.Int16ToFloat32(samples, a.scratch)

	out := decode.Frames{Interleaved: a.scratch[:sampleCount], FrameCount: frameCount}

	if err != nil && !errors.Is(err, io.EOF) {
		return out, decode.OutcomeFrames, nil
	}

	return out, decode.OutcomeFrames, nil
}

func (a *adapter) BytesConsumed() int64 { return a.counting.n }

func (a *adapter) Close() error { return nil }

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)

	return n, err
}
