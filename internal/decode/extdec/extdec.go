// Package extdec is the fallback decoder backend for container/codec
// combinations the retrieved dependency pack has no native Go decoder
// for (m4a, opus, wv) plus aif/aiff, shelling out to the system
// ffmpeg/ffprobe binaries the way the donor codebase's
// internal/integration packages already do.
package extdec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/farcloser/dr/internal/decode"
	"github.com/farcloser/dr/internal/decode/pcm"
	"github.com/farcloser/dr/internal/errs"
	"github.com/farcloser/dr/internal/source"
)

const (
	defaultSampleRate = 44100
	defaultChannels   = 2
	packetFrames      = 4096
	bytesPerSamp      = 4 // 32-bit
)

func init() {
	decode.Register(open, "m4a", "opus", "wv", "aif", "aiff")
}

type adapter struct {
	pipe     io.ReadCloser
	wait     func() error
	counting *countingReader
	channels int
	raw      []byte
	samples  []int32
	scratch  []float32
}

func open(src source.Source) (decode.Decoder, decode.OpenResult, error) {
	ctx := context.Background()

	res := decode.OpenResult{
		SampleRate: defaultSampleRate,
		Channels:   defaultChannels,
		TrackID:    "0",
	}

	type pathProvider interface{ Path() string }

	pp, ok := src.(pathProvider)
	if !ok {
		return nil, decode.OpenResult{}, errors.New("extdec requires a seekable file source")
	}

	path := pp.Path()

	stream, err := probe(ctx, path)
	if err != nil {
		return nil, decode.OpenResult{}, fmt.Errorf("%w: %w", errs.ErrNoAudioTrack, err)
	}

	if rate, convErr := strconv.Atoi(stream.SampleRate); convErr == nil && rate > 0 {
		res.SampleRate = uint32(rate)
	}

	if stream.Channels > 0 {
		res.Channels = uint16(stream.Channels)
	}

	res.Title = stream.Tags["title"]
	res.Album = stream.Tags["album"]

	pipe, wait, err := extractStream(ctx, path)
	if err != nil {
		return nil, decode.OpenResult{}, err
	}

	return &adapter{
		pipe:     pipe,
		wait:     wait,
		counting: &countingReader{r: pipe},
		channels: int(res.Channels),
		raw:      make([]byte, packetFrames*int(res.Channels)*bytesPerSamp),
	}, res, nil
}

func (a *adapter) NextPacket() (decode.Frames, decode.PacketOutcome, error) {
	n, err := io.ReadFull(a.counting, a.raw)
	if n == 0 {
		return a.finish(err)
	}

	// io.ReadFull returns ErrUnexpectedEOF for a short final read; the
	// partial bytes it did fill are still valid samples.
	usable := n - n%(a.channels*bytesPerSamp)

	frameCount := 0
	if a.channels > 0 {
		frameCount = usable / bytesPerSamp / a.channels
	}

	sampleCount := frameCount * a.channels

	if cap(a.samples) < sampleCount {
		a.samples = make([]int32, sampleCount)
	}

	samples := a.samples[:sampleCount]
	for i := 0; i < sampleCount; i++ {
		b := a.raw[i*4 : i*4+4]
		samples[i] = int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24) //nolint:gosec // LE reassembly
	}

	a.scratch = pcm.Int32ToFloat32(samples, a.scratch)

	out := decode.Frames{Interleaved: a.scratch[:sampleCount], FrameCount: frameCount}

	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return out, decode.OutcomeFrames, fmt.Errorf("read extdec pipe: %w", err)
	}

	return out, decode.OutcomeFrames, nil
}

func (a *adapter) finish(err error) (decode.Frames, decode.PacketOutcome, error) {
	if err == nil || errors.Is(err, io.EOF) {
		return decode.Frames{}, decode.OutcomeEndOfStream, nil
	}

	return decode.Frames{}, decode.OutcomeEndOfStream, fmt.Errorf("read extdec pipe: %w", err)
}

func (a *adapter) BytesConsumed() int64 { return a.counting.n }

func (a *adapter) Close() error {
	closeErr := a.pipe.Close()
	waitErr := a.wait()

	if closeErr != nil {
		return closeErr
	}

	return waitErr
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)

	return n, err
}
