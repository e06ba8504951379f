package dr

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/farcloser/dr/internal/decode/backends" // register codec backends

	"github.com/farcloser/dr/internal/accum"
	"github.com/farcloser/dr/internal/coordinate"
	"github.com/farcloser/dr/internal/decode"
	"github.com/farcloser/dr/internal/errs"
	"github.com/farcloser/dr/internal/reduce"
	"github.com/farcloser/dr/internal/scan"
	"github.com/farcloser/dr/internal/source"
)

// AnalyzeFile analyzes a single audio file and returns its TrackResult.
func AnalyzeFile(path string) (TrackResult, error) {
	return analyzeFileWithProgress(path, func(float64) {})
}

// analyzeFileWithProgress is AnalyzeFile plus a progress callback, split
// out so directory/async runs can thread the coordinator's per-index
// report function through to the decode loop.
func analyzeFileWithProgress(path string, report func(float64)) (TrackResult, error) {
	src, err := source.OpenFile(path)
	if err != nil {
		return TrackResult{}, err
	}
	defer src.Close()

	return analyzeSource(src, path, report)
}

// AnalyzeStdin analyzes a raw byte stream on r using ext as the
// container format hint, required because standard input carries no
// filename to infer it from (spec §6/§7 ErrConfiguration).
func AnalyzeStdin(r io.Reader, ext string) (TrackResult, error) {
	if ext == "" {
		return TrackResult{}, fmt.Errorf("%w: --format is required when reading from standard input", errs.ErrConfiguration)
	}

	src := source.NewStdin(r, strings.ToLower(ext))

	return analyzeSource(src, "-", func(float64) {})
}

// AnalyzeDirectory analyzes every recognized audio file in dir,
// returning an AlbumResult in filename-sorted order.
func AnalyzeDirectory(dir string, opts AnalysisOptions) (AlbumResult, error) {
	files, err := scan.Scan(dir)
	if err != nil {
		return AlbumResult{}, err
	}

	if len(files) == 0 {
		return AlbumResult{}, fmt.Errorf("%w: %s", errs.ErrNoAudioFiles, dir)
	}

	workers := coordinate.WorkerCount(jobsOrDefault(opts.Jobs), len(files))

	tracks, err := coordinate.Run(files, workers, func(_ int, path string, report func(float64)) (TrackResult, error) {
		return analyzeFileWithProgress(path, report)
	})
	if err != nil {
		return AlbumResult{}, err
	}

	return AlbumResult{
		Tracks:    tracks,
		OverallDR: roundMeanDR(tracks),
		Album:     probeAlbumName(files[0]),
	}, nil
}

// AnalyzeDirectoryAsync analyzes every recognized audio file in dir,
// reporting lifecycle events to sink instead of returning a value.
// Scheduling is identical to AnalyzeDirectory; a per-file failure
// becomes an Error event rather than aborting the run.
func AnalyzeDirectoryAsync(dir string, sink *Sink, opts AnalysisOptions) error {
	defer sink.closeWhenDrained()

	files, err := scan.Scan(dir)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("%w: %s", errs.ErrNoAudioFiles, dir)
	}

	workers := coordinate.WorkerCount(jobsOrDefault(opts.Jobs), len(files))

	var (
		mu      sync.Mutex
		byIndex = make(map[int]TrackResult, len(files))
	)

	hooks := coordinate.Hooks[TrackResult]{
		OnStart: func(index int) {
			sink.send(AnalysisEvent{Kind: EventTrackStarted, Index: index})
		},
		OnProgress: func(index int, percent float64) {
			sink.send(AnalysisEvent{Kind: EventTrackProgress, Index: index, Percent: percent})
		},
		OnComplete: func(index int, value TrackResult) {
			sink.send(AnalysisEvent{Kind: EventTrackCompleted, Index: index, Result: value})

			mu.Lock()
			byIndex[index] = value
			mu.Unlock()
		},
		OnError: func(index int, err error) {
			sink.send(AnalysisEvent{Kind: EventTrackError, Index: index, Message: err.Error()})
		},
	}

	coordinate.RunAsync(files, workers, func(_ int, path string, report func(float64)) (TrackResult, error) {
		return analyzeFileWithProgress(path, report)
	}, hooks)

	collected := make([]TrackResult, 0, len(byIndex))

	for i := range files {
		if t, ok := byIndex[i]; ok {
			collected = append(collected, t)
		}
	}

	sink.send(AnalysisEvent{
		Kind: EventAlbumCompleted,
		Album: AlbumResult{
			Tracks:    collected,
			OverallDR: roundMeanDR(collected),
			Album:     probeAlbumName(files[0]),
		},
	})

	return nil
}

func jobsOrDefault(jobs int) int {
	if jobs < 1 {
		return coordinate.DefaultJobs()
	}

	return jobs
}

func roundMeanDR(tracks []TrackResult) int {
	if len(tracks) == 0 {
		return 0
	}

	sum := 0
	for _, t := range tracks {
		sum += t.DR
	}

	return int(math.Round(float64(sum) / float64(len(tracks))))
}

// analyzeSource drives one opened source through its decoder and the
// accumulator to exhaustion, then reduces the result (spec §4.6).
func analyzeSource(src source.Source, path string, report func(percent float64)) (TrackResult, error) {
	dec, openRes, err := decode.Open(src)
	if err != nil {
		return TrackResult{}, err
	}
	defer dec.Close()

	state := accum.New(int(openRes.Channels), openRes.SampleRate)

	total, haveTotal := src.Size()

loop:
	for {
		frames, outcome, err := dec.NextPacket()
		if err != nil {
			return TrackResult{}, fmt.Errorf("%w: %w", errs.ErrDecoderFailure, err)
		}

		switch outcome {
		case decode.OutcomeEndOfStream:
			break loop
		case decode.OutcomeSkip:
			continue
		case decode.OutcomeFrames:
			state.Push(frames.Interleaved)

			if haveTotal && total > 0 {
				report(clampPercent(float64(dec.BytesConsumed()) / float64(total)))
			}
		}
	}

	dr, peakDB, rmsDB, durationSeconds := reduce.Finalize(state)

	title := openRes.Title
	if title == "" {
		title = titleFromFilename(path)
	}

	fileBytes := uint64(0)
	if size, ok := src.Size(); ok && size > 0 {
		fileBytes = uint64(size)
	}

	return TrackResult{
		DR:              dr,
		PeakDB:          peakDB,
		RMSDB:           rmsDB,
		DurationSeconds: durationSeconds,
		Title:           title,
		Filename:        filepath.Base(path),
		FileBytes:       fileBytes,
	}, nil
}

func clampPercent(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

func titleFromFilename(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// probeAlbumName opens the first file a second time to read its album
// tag, the cheap second-open operation spec §4.5 calls for.
func probeAlbumName(path string) string {
	src, err := source.OpenFile(path)
	if err != nil {
		return ""
	}
	defer src.Close()

	_, openRes, err := decode.Open(src)
	if err != nil {
		return ""
	}

	return openRes.Album
}
