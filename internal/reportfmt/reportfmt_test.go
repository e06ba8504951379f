package reportfmt_test

import (
	"strings"
	"testing"

	"github.com/farcloser/dr"
	"github.com/farcloser/dr/internal/reportfmt"
)

// Grounded on original_source/src/format.rs's test_format_duration.
func TestDuration(t *testing.T) {
	t.Parallel()

	cases := map[float64]string{
		0:    "0:00",
		61:   "1:01",
		125:  "2:05",
		3661: "61:01",
	}

	for secs, want := range cases {
		if got := reportfmt.Duration(secs); got != want {
			t.Errorf("Duration(%v) = %q, want %q", secs, got, want)
		}
	}
}

// Grounded on original_source/src/format.rs's test_format_table_columns.
func TestTable(t *testing.T) {
	t.Parallel()

	result := dr.AlbumResult{
		Tracks: []dr.TrackResult{
			{DR: 14, PeakDB: -0.10, RMSDB: -16.78, DurationSeconds: 263, Title: "Test Track", Filename: "test.flac"},
		},
		OverallDR: 14,
		Album:     "Test Album",
	}

	table := reportfmt.Table(result)

	for _, want := range []string{
		"DR14",
		"-0.10 dB",
		"-16.78 dB",
		"4:23",
		"Test Track",
		"Official DR value: DR14",
		"Number of tracks:  1",
	} {
		if !strings.Contains(table, want) {
			t.Errorf("Table() missing %q in:\n%s", want, table)
		}
	}
}

// Grounded on original_source/src/format.rs's test_format_csv.
func TestCSV(t *testing.T) {
	t.Parallel()

	result := dr.AlbumResult{
		Tracks: []dr.TrackResult{
			{DR: 14, PeakDB: -0.10, RMSDB: -16.78, DurationSeconds: 263, Title: "Track One", Filename: "01.flac"},
			{DR: 12, PeakDB: -0.30, RMSDB: -14.56, DurationSeconds: 225, Title: "Track Two", Filename: "02.flac"},
		},
		OverallDR: 13,
	}

	csv := reportfmt.CSV(result)
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")

	if lines[0] != "DR,Peak dB,RMS dB,Duration,Track" {
		t.Errorf("header = %q", lines[0])
	}

	if !strings.HasPrefix(lines[1], "14,") {
		t.Errorf("row 1 = %q, want prefix %q", lines[1], "14,")
	}

	if !strings.HasPrefix(lines[2], "12,") {
		t.Errorf("row 2 = %q, want prefix %q", lines[2], "12,")
	}
}
