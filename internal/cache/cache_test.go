package cache_test

import (
	"testing"

	"github.com/farcloser/dr"
	"github.com/farcloser/dr/internal/cache"
)

func sampleAlbum() dr.AlbumResult {
	return dr.AlbumResult{
		Tracks: []dr.TrackResult{
			{DR: 14, PeakDB: -0.10, RMSDB: -16.78, DurationSeconds: 263, Title: "Track One", Filename: "01.flac"},
			{DR: 12, PeakDB: -0.30, RMSDB: -14.56, DurationSeconds: 225, Title: "Track Two", Filename: "02.flac"},
		},
		OverallDR: 13,
		Album:     "Test Album",
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	want := sampleAlbum()

	if err := cache.Save(dir, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var got dr.AlbumResult

	found, err := cache.Load(dir, &got)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !found {
		t.Fatal("Load: found = false, want true")
	}

	if got.OverallDR != want.OverallDR || got.Album != want.Album || len(got.Tracks) != len(want.Tracks) {
		t.Fatalf("Load() = %+v, want %+v", got, want)
	}

	for i := range want.Tracks {
		if got.Tracks[i] != want.Tracks[i] {
			t.Errorf("track %d = %+v, want %+v", i, got.Tracks[i], want.Tracks[i])
		}
	}
}

func TestLoadMissingCacheIsNotAnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	var got dr.AlbumResult

	found, err := cache.Load(dir, &got)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if found {
		t.Fatal("Load: found = true for an empty directory")
	}
}

func TestExist(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if cache.Exist(dir, true, false) {
		t.Fatal("Exist(json) = true before Save")
	}

	if err := cache.Save(dir, sampleAlbum()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if !cache.Exist(dir, true, false) {
		t.Fatal("Exist(json) = false after Save")
	}

	if cache.Exist(dir, true, true) {
		t.Fatal("Exist(json, txt) = true before SaveText")
	}

	if err := cache.SaveText(dir, "report"); err != nil {
		t.Fatalf("SaveText: %v", err)
	}

	if !cache.Exist(dir, true, true) {
		t.Fatal("Exist(json, txt) = false after SaveText")
	}
}
