package scan_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/farcloser/dr/internal/scan"
)

func TestIsAudioFile(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"track.flac": true,
		"track.MP3":  true,
		"track.wav":  true,
		"track.ogg":  true,
		"track.m4a":  true,
		"track.opus": true,
		"track.wv":   true,
		"track.aif":  true,
		"track.aiff": true,
		"readme.txt": false,
		"image.png":  false,
		"noext":      false,
	}

	for name, want := range cases {
		if got := scan.IsAudioFile(name); got != want {
			t.Errorf("IsAudioFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestScanMixedExtensionDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	names := []string{"02.flac", "01.mp3", "notes.txt", "cover.jpg", "03.ogg"}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}
	}

	got, err := scan.Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	want := []string{
		filepath.Join(dir, "01.mp3"),
		filepath.Join(dir, "02.flac"),
		filepath.Join(dir, "03.ogg"),
	}

	if len(got) != len(want) {
		t.Fatalf("Scan() = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Scan()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestScanMissingDirectory(t *testing.T) {
	t.Parallel()

	if _, err := scan.Scan(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Fatal("Scan of a missing directory: want error, got nil")
	}
}
