// Package flacdec adapts github.com/mewkiz/flac to the decode.Decoder
// contract.
package flacdec

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mewkiz/flac"
	flacframe "github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"

	"github.com/farcloser/dr/internal/decode"
	"github.com/farcloser/dr/internal/decode/pcm"
	"github.com/farcloser/dr/internal/source"
)

func init() {
	decode.Register(open, "flac")
}

type adapter struct {
	stream   *flac.Stream
	seeker   io.ReadSeeker
	counting *countingReader
	scratch  []float32
}

func open(src source.Source) (decode.Decoder, decode.OpenResult, error) {
	cr := &countingReader{r: src}

	var (
		stream *flac.Stream
		err    error
	)

	if src.Seekable() {
		if rs, ok := src.(io.ReadSeeker); ok {
			cr.r = rs
			stream, err = flac.NewSeek(struct {
				io.Reader
				io.Seeker
			}{cr, rs})
		}
	}

	if stream == nil {
		stream, err = flac.New(cr)
	}

	if err != nil {
		return nil, decode.OpenResult{}, fmt.Errorf("open flac stream: %w", err)
	}

	res := decode.OpenResult{
		SampleRate: stream.Info.SampleRate,
		Channels:   uint16(stream.Info.NChannels),
		TrackID:    "0",
	}

	res.Title, res.Album = vorbisTags(stream.Blocks)

	return &adapter{stream: stream, counting: cr}, res, nil
}

// vorbisTags walks the stream's metadata blocks for a Vorbis comment
// block and returns its title/album tags, if present. Field names are
// matched case-insensitively per the Vorbis comment spec.
func vorbisTags(blocks []*meta.Block) (title, album string) {
	for _, block := range blocks {
		if block.Header.Type != meta.TypeVorbisComment {
			continue
		}

		comment, ok := block.Body.(*meta.VorbisComment)
		if !ok {
			continue
		}

		for _, tag := range comment.Tags {
			switch strings.ToUpper(tag[0]) {
			case "TITLE":
				title = tag[1]
			case "ALBUM":
				album = tag[1]
			}
		}
	}

	return title, album
}

func (a *adapter) NextPacket() (decode.Frames, decode.PacketOutcome, error) {
	frame, err := a.stream.ParseNext()
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return decode.Frames{}, decode.OutcomeEndOfStream, nil
		}

		return decode.Frames{}, decode.OutcomeEndOfStream, fmt.Errorf("parse flac frame: %w", err)
	}

	return a.interleave(frame), decode.OutcomeFrames, nil
}

func (a *adapter) interleave(f *flacframe.Frame) decode.Frames {
	channels := len(f.Subframes)
	blockSize := int(f.BlockSize)
	bps := f.BitsPerSample

	need := channels * blockSize
	if cap(a.scratch) < need {
		a.scratch = make([]float32, need)
	}

	buf := a.scratch[:need]

	for ch := 0; ch < channels; ch++ {
		samples := f.Subframes[ch].Samples
		for i := 0; i < blockSize && i < len(samples); i++ {
			buf[i*channels+ch] = pcm.NormalizeFromBits(samples[i], bps)
		}
	}

	return decode.Frames{Interleaved: buf, FrameCount: blockSize}
}

func (a *adapter) BytesConsumed() int64 { return a.counting.n }

func (a *adapter) Close() error { return a.stream.Close() }

// countingReader wraps a reader to track cumulative bytes read, used
// for progress accounting (spec §4.2).
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)

	return n, err
}
