//nolint:wrapcheck
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/dr"
	"github.com/farcloser/dr/internal/bulk"
	"github.com/farcloser/dr/internal/cache"
	"github.com/farcloser/dr/internal/errs"
	"github.com/farcloser/dr/internal/observe/tui"
	"github.com/farcloser/dr/internal/reportfmt"
)

func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "format",
			Usage: "format hint for standard input (e.g. flac, mp3, opus)",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "output as JSON instead of a table",
		},
		&cli.BoolFlag{
			Name:  "tui",
			Usage: "launch the interactive observer",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Usage:   "number of parallel analysis jobs (default: number of CPU cores)",
		},
		&cli.BoolFlag{
			Name:  "regenerate",
			Usage: "re-analyze even if a cached report exists",
		},
		&cli.BoolFlag{
			Name:  "bulk",
			Usage: "analyze every immediate subdirectory as its own album",
		},
		&cli.BoolFlag{
			Name:  "txt",
			Usage: "write a text report (dr_report.txt) alongside JSON",
		},
	}
}

func runRoot(_ context.Context, cmd *cli.Command) error {
	wantJSON := cmd.Bool("json")
	wantTUI := cmd.Bool("tui")
	wantBulk := cmd.Bool("bulk")
	wantTxt := cmd.Bool("txt")
	regenerate := cmd.Bool("regenerate")
	jobs := cmd.Int("jobs")

	if wantBulk && wantTUI {
		return fmt.Errorf("%w: --bulk and --tui cannot be used together", errs.ErrConfiguration)
	}

	if wantBulk && !wantJSON && !wantTxt {
		return fmt.Errorf("%w: --bulk requires at least one output format: --json and/or --txt", errs.ErrConfiguration)
	}

	path := cmd.Args().First()
	if path == "" {
		path = "."
	}

	if path == "-" {
		result, err := dr.AnalyzeStdin(os.Stdin, cmd.String("format"))
		if err != nil {
			return err
		}

		return printTrack(result, wantJSON)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}

	if !info.IsDir() {
		result, err := dr.AnalyzeFile(path)
		if err != nil {
			return err
		}

		return printTrack(result, wantJSON)
	}

	opts := dr.AnalysisOptions{Jobs: int(jobs)}

	if wantTUI {
		result, err := tui.Run(path, opts)
		if err != nil {
			return err
		}

		if saveErr := cache.Save(path, result); saveErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save cache: %v\n", saveErr)
		}

		return nil
	}

	if wantBulk {
		_, err := bulk.Run(path, bulk.Options{
			Jobs:       int(jobs),
			WriteJSON:  wantJSON,
			WriteText:  wantTxt,
			Regenerate: regenerate,
		}, os.Stderr)

		return err
	}

	if !regenerate {
		var cached dr.AlbumResult

		if found, _ := cache.Load(path, &cached); found {
			fmt.Fprintln(os.Stderr, "(loaded from cached report)")

			return printAlbum(cached, wantJSON)
		}
	}

	start := time.Now()

	result, err := dr.AnalyzeDirectory(path, opts)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	if saveErr := cache.Save(path, result); saveErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save cache: %v\n", saveErr)
	}

	if wantTxt {
		if saveErr := cache.SaveText(path, reportfmt.Table(result)); saveErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save text report: %v\n", saveErr)
		}
	}

	if err := printAlbum(result, wantJSON); err != nil {
		return err
	}

	printBenchmark(result, elapsed)

	return nil
}

func printTrack(result dr.TrackResult, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}

		fmt.Println(string(data))

		return nil
	}

	fmt.Println(reportfmt.TableSingle(result))

	return nil
}

func printAlbum(result dr.AlbumResult, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}

		fmt.Println(string(data))

		return nil
	}

	fmt.Println(reportfmt.Table(result))

	return nil
}

// printBenchmark reports track count, total size, and throughput to
// stderr, supplementing the table/JSON output printed to stdout.
// Grounded on original_source/src/main.rs's print_benchmark.
func printBenchmark(result dr.AlbumResult, elapsed time.Duration) {
	var totalBytes uint64

	for _, t := range result.Tracks {
		totalBytes += t.FileBytes
	}

	totalMB := float64(totalBytes) / (1024 * 1024) //nolint:mnd
	secs := elapsed.Seconds()

	avgPerTrack := 0.0
	if len(result.Tracks) > 0 {
		avgPerTrack = secs / float64(len(result.Tracks))
	}

	mbPerSec := 0.0
	if secs > 0 {
		mbPerSec = totalMB / secs
	}

	fmt.Fprintf(os.Stderr, "Processed %d tracks (%.1f MB) in %.2fs | %.2fs/track | %.1f MB/s\n",
		len(result.Tracks), totalMB, secs, avgPerTrack, mbPerSec)
}
