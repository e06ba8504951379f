// Package reportfmt renders an album or track result as the stable
// DR-Database-style text table, grounded on
// original_source/src/format.rs's format_table/format_table_single.
package reportfmt

import (
	"fmt"
	"strings"

	"github.com/farcloser/dr"
)

const separatorWidth = 58

// Duration formats a duration in seconds as "M:SS".
func Duration(secs float64) string {
	total := int64(secs + 0.5) //nolint:mnd // round half up, matching the donor's .round()
	minutes := total / 60
	seconds := total % 60

	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// Table renders a full album result.
func Table(result dr.AlbumResult) string {
	separator := strings.Repeat("─", separatorWidth)

	var b strings.Builder

	fmt.Fprintf(&b, "%-10s %10s %10s %10s  %s\n", "DR", "Peak", "RMS", "Duration", "Track")
	b.WriteString(separator)
	b.WriteByte('\n')

	for _, t := range result.Tracks {
		fmt.Fprintf(&b, "DR%-8d %7.2f dB %7.2f dB %10s  %s\n",
			t.DR, t.PeakDB, t.RMSDB, Duration(t.DurationSeconds), t.Title)
	}

	b.WriteString(separator)
	b.WriteByte('\n')

	fmt.Fprintf(&b, "Number of tracks:  %d\nOfficial DR value: DR%d", len(result.Tracks), result.OverallDR)

	return b.String()
}

// TableSingle renders a single track result in the same layout as
// Table, for the non-directory analysis path.
func TableSingle(t dr.TrackResult) string {
	separator := strings.Repeat("─", separatorWidth)

	var b strings.Builder

	fmt.Fprintf(&b, "%-10s %10s %10s %10s  %s\n", "DR", "Peak", "RMS", "Duration", "Track")
	b.WriteString(separator)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "DR%-8d %7.2f dB %7.2f dB %10s  %s\n",
		t.DR, t.PeakDB, t.RMSDB, Duration(t.DurationSeconds), t.Title)
	b.WriteString(separator)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Official DR value: DR%d", t.DR)

	return b.String()
}

// CSV renders an album result as CSV, one row per track.
func CSV(result dr.AlbumResult) string {
	var b strings.Builder

	b.WriteString("DR,Peak dB,RMS dB,Duration,Track\n")

	for _, t := range result.Tracks {
		fmt.Fprintf(&b, "%d,%.2f,%.2f,%s,%s\n", t.DR, t.PeakDB, t.RMSDB, Duration(t.DurationSeconds), t.Title)
	}

	return b.String()
}
