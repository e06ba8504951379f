// Package bulk implements --bulk: treat every immediate subdirectory
// of a path as its own album and analyze each independently.
//
// Grounded on original_source/src/main.rs's run_bulk: immediate
// (non-recursive) subdirectories only, skip a subdirectory whose
// requested reports already exist unless regenerating, report
// analyzed/skipped/failed counts.
package bulk

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/farcloser/dr"
	"github.com/farcloser/dr/internal/cache"
	"github.com/farcloser/dr/internal/reportfmt"
)

// Summary tallies the outcome of a bulk run.
type Summary struct {
	Total    int
	Analyzed int
	Skipped  int
	Failed   int
}

// Options configures a bulk run.
type Options struct {
	Jobs       int
	WriteJSON  bool
	WriteText  bool
	Regenerate bool
}

// Run analyzes every immediate subdirectory of basePath as its own
// album, writing progress lines to progress.
func Run(basePath string, opts Options, progress io.Writer) (Summary, error) {
	subdirs, err := immediateSubdirs(basePath)
	if err != nil {
		return Summary{}, err
	}

	if len(subdirs) == 0 {
		return Summary{}, fmt.Errorf("no subdirectories found in %q", basePath)
	}

	summary := Summary{Total: len(subdirs)}

	for i, subdir := range subdirs {
		name := filepath.Base(subdir)

		if !opts.Regenerate && cache.Exist(subdir, opts.WriteJSON, opts.WriteText) {
			fmt.Fprintf(progress, "[%d/%d] Skipping (reports exist): %s\n", i+1, summary.Total, name)
			summary.Skipped++

			continue
		}

		fmt.Fprintf(progress, "[%d/%d] Analyzing: %s\n", i+1, summary.Total, name)

		result, err := dr.AnalyzeDirectory(subdir, dr.AnalysisOptions{Jobs: opts.Jobs})
		if err != nil {
			fmt.Fprintf(progress, "  Warning: failed to analyze: %v\n", err)
			summary.Failed++

			continue
		}

		if opts.WriteJSON {
			if err := cache.Save(subdir, result); err != nil {
				fmt.Fprintf(progress, "  Warning: failed to save JSON report: %v\n", err)
			}
		}

		if opts.WriteText {
			if err := cache.SaveText(subdir, reportfmt.Table(result)); err != nil {
				fmt.Fprintf(progress, "  Warning: failed to save text report: %v\n", err)
			}
		}

		summary.Analyzed++
	}

	fmt.Fprintf(progress, "Done: %d analyzed, %d skipped, %d failed (out of %d total)\n",
		summary.Analyzed, summary.Skipped, summary.Failed, summary.Total)

	return summary, nil
}

func immediateSubdirs(basePath string) ([]string, error) {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", basePath, err)
	}

	var dirs []string

	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(basePath, entry.Name()))
		}
	}

	sort.Strings(dirs)

	return dirs, nil
}
