package extdec

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/farcloser/primordium/fault"
)

const (
	probeName    = "ffprobe"
	probeTimeout = 60 * time.Second
)

// probeResult is the trimmed subset of ffprobe's JSON output this
// backend actually consults: the first audio stream's format/rate/
// channel count and whatever title/album tags are attached.
type probeResult struct {
	Streams []probeStream `json:"streams"`
}

type probeStream struct {
	Index      int               `json:"index"`
	CodecType  string            `json:"codec_type"`
	CodecName  string            `json:"codec_name"`
	SampleRate string            `json:"sample_rate"`
	Channels   int               `json:"channels"`
	Tags       map[string]string `json:"tags"`
}

// probe runs ffprobe on path and returns the first audio stream found.
func probe(ctx context.Context, path string) (probeStream, error) {
	ffprobePath, found := available(probeName)
	if !found {
		return probeStream{}, fmt.Errorf("%w: %s", fault.ErrMissingRequirements, probeName)
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	//nolint:gosec // path is the user-provided audio file to probe
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		path,
	)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return probeStream{}, fmt.Errorf("%w: after %v", fault.ErrTimeout, probeTimeout)
		}

		return probeStream{}, fmt.Errorf("%w: %s: %w", fault.ErrCommandFailure, stderr.String(), err)
	}

	var result probeResult
	if err = json.Unmarshal(output, &result); err != nil {
		return probeStream{}, fmt.Errorf("%w: %w", fault.ErrInvalidJSON, err)
	}

	for _, stream := range result.Streams {
		if stream.CodecType == "audio" {
			return stream, nil
		}
	}

	return probeStream{}, errNoAudioStream
}

var errNoAudioStream = errors.New("no audio stream in container")
