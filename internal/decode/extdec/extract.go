package extdec

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/farcloser/primordium/fault"
)

const extractName = "ffmpeg"

// extractStream pipes path through ffmpeg, decoding its first audio
// stream to raw interleaved signed 32-bit little-endian PCM. The
// returned pipe is ready to read; the caller must wait() once done.
func extractStream(ctx context.Context, path string) (io.ReadCloser, func() error, error) {
	ffmpegPath, found := available(extractName)
	if !found {
		return nil, nil, fmt.Errorf("%w: %s", fault.ErrMissingRequirements, extractName)
	}

	//nolint:gosec // path is the user-provided audio file to decode
	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-v", "quiet",
		"-i", path,
		"-map", "0:a:0",
		"-f", "s32le",
		"-acodec", "pcm_s32le",
		"-",
	)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", fault.ErrCommandFailure, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", fault.ErrCommandFailure, err)
	}

	wait := func() error {
		if err := cmd.Wait(); err != nil {
			return fmt.Errorf("%w: %w", fault.ErrCommandFailure, err)
		}

		return nil
	}

	return stdout, wait, nil
}
