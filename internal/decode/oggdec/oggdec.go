// Package oggdec adapts github.com/jfreymuth/oggvorbis to the
// decode.Decoder contract.
package oggdec

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/farcloser/dr/internal/decode"
	"github.com/farcloser/dr/internal/source"
)

const packetFrames = 4096

func init() {
	decode.Register(open, "ogg")
}

type adapter struct {
	reader   *oggvorbis.Reader
	counting *countingReader
	channels int
	buf      []float32
}

func open(src source.Source) (decode.Decoder, decode.OpenResult, error) {
	cr := &countingReader{r: src}

	r, err := oggvorbis.NewReader(cr)
	if err != nil {
		return nil, decode.OpenResult{}, fmt.Errorf("open ogg vorbis stream: %w", err)
	}

	res := decode.OpenResult{
		SampleRate: uint32(r.SampleRate()),
		Channels:   uint16(r.Channels()),
		TrackID:    "0",
	}

	return &adapter{
		reader:   r,
		counting: cr,
		channels: r.Channels(),
		buf:      make([]float32, packetFrames*r.Channels()),
	}, res, nil
}

func (a *adapter) NextPacket() (decode.Frames, decode.PacketOutcome, error) {
	n, err := a.reader.Read(a.buf)
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return decode.Frames{}, decode.OutcomeEndOfStream, nil
		}

		return decode.Frames{}, decode.OutcomeEndOfStream, fmt.Errorf("read ogg vorbis packet: %w", err)
	}

	frameCount := n
	if a.channels > 0 {
		frameCount = n / a.channels
	}

	return decode.Frames{Interleaved: a.buf[:n], FrameCount: frameCount}, decode.OutcomeFrames, nil
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
