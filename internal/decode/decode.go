// Package decode wraps the external codec libraries behind a single
// adapter contract: open-with-hint, then iterate packets of
// interleaved float32 PCM until end of stream.
package decode

import (
	"fmt"
	"strings"

	"github.com/farcloser/dr/internal/errs"
	"github.com/farcloser/dr/internal/source"
)

// OpenResult carries what the adapter learned while opening the
// stream: the format of the selected track and whatever metadata tags
// were present.
type OpenResult struct {
	SampleRate uint32
	Channels   uint16
	TrackID    string
	Title      string
	Album      string
}

// Frames is one packet's worth of interleaved PCM.
type Frames struct {
	Interleaved []float32
	FrameCount  int
}

// PacketOutcome classifies the result of one NextPacket call.
type PacketOutcome int

const (
	// OutcomeFrames means Frames holds decoded samples for the
	// selected track.
	OutcomeFrames PacketOutcome = iota
	// OutcomeEndOfStream means the stream is exhausted; this is also
	// reported for an unexpected EOF or a decoder-requested reset,
	// both of which are treated as normal termination.
	OutcomeEndOfStream
	// OutcomeSkip means the packet belonged to a non-selected track or
	// hit a recoverable per-packet decode error.
	OutcomeSkip
)

// Decoder iterates the packets of one opened stream.
type Decoder interface {
	// NextPacket decodes the next packet. A non-nil error is fatal and
	// should be wrapped in errs.ErrDecoderFailure by the caller.
	NextPacket() (Frames, PacketOutcome, error)

	// BytesConsumed is the cumulative number of compressed bytes read
	// from the source so far, used to derive progress percent.
	BytesConsumed() int64

	// Close releases any resources held by the decoder.
	Close() error
}

// OpenFunc opens a Source and returns a ready-to-iterate Decoder.
type OpenFunc func(src source.Source) (Decoder, OpenResult, error)

//nolint:gochecknoglobals // backend registry, populated by each backend's init
var backends = map[string]OpenFunc{}

// Register associates a backend's OpenFunc with one or more
// extensions. Backend packages call this from their init function.
func Register(open OpenFunc, exts ...string) {
	for _, ext := range exts {
		backends[strings.ToLower(ext)] = open
	}
}

// Open dispatches to the registered backend for src.Ext().
func Open(src source.Source) (Decoder, OpenResult, error) {
	open, ok := backends[strings.ToLower(src.Ext())]
	if !ok {
		return nil, OpenResult{}, fmt.Errorf("%w: unsupported extension %q", errs.ErrDecoderOpen, src.Ext())
	}

	dec, res, err := open(src)
	if err != nil {
		return nil, OpenResult{}, fmt.Errorf("%w: %w", errs.ErrDecoderOpen, err)
	}

	return dec, res, nil
}
