// Package wavdec adapts github.com/go-audio/wav to the decode.Decoder
// contract. WAV/AIFF-style PCM containers are small enough, and simple
// enough to fully parse, that reading the whole buffer up front (one
// "packet") is simpler and just as correct as chunked streaming for
// this adapter; the accumulator downstream still processes it in
// bounded 3-second blocks regardless of how many calls delivered it.
package wavdec

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/farcloser/dr/internal/decode"
	"github.com/farcloser/dr/internal/source"
)

func init() {
	decode.Register(open, "wav")
}

type adapter struct {
	delivered bool
	samples   []int
	channels  int
	bitDepth  int
	sourceLen int64
}

func open(src source.Source) (decode.Decoder, decode.OpenResult, error) {
	rs, ok := src.(io.ReadSeeker)
	if !ok || !src.Seekable() {
		return nil, decode.OpenResult{}, fmt.Errorf("wav decoding requires a seekable source")
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, decode.OpenResult{}, fmt.Errorf("not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, decode.OpenResult{}, fmt.Errorf("decode wav pcm: %w", err)
	}

	size, _ := src.Size()

	a := &adapter{
		samples:   buf.Data,
		channels:  buf.Format.NumChannels,
		bitDepth:  int(dec.BitDepth),
		sourceLen: size,
	}

	res := decode.OpenResult{
		SampleRate: uint32(dec.SampleRate),
		Channels:   uint16(buf.Format.NumChannels),
		TrackID:    "0",
	}

	return a, res, nil
}

func (a *adapter) NextPacket() (decode.Frames, decode.PacketOutcome, error) {
	if a.delivered {
		return decode.Frames{}, decode.OutcomeEndOfStream, nil
	}

	a.delivered = true

	maxValue := float64(int64(1) << (a.bitDepth - 1))
	out := make([]float32, len(a.samples))

	for i, s := range a.samples {
		out[i] = float32(float64(s) / maxValue)
	}

	frameCount := 0
	if a.channels > 0 {
		frameCount = len(a.samples) / a.channels
	}

	return decode.Frames{Interleaved: out, FrameCount: frameCount}, decode.OutcomeFrames, nil
}

func (a *adapter) BytesConsumed() int64 {
	if a.delivered {
		return a.sourceLen
	}

	return 0
}

func (a *adapter) Close() error { return nil }
