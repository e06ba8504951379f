// Package cache persists and reloads an AlbumResult as the two report
// files a directory analysis leaves behind.
//
// Grounded on original_source/src/cache.rs: same two filenames, same
// load/save/exists contract. Implemented on encoding/json rather than
// primordium/format, since this is a byte-stable round-trip contract
// (spec §8), not a human-facing CLI dump.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	jsonFilename = "dr_report.json"
	textFilename = "dr_report.txt"
)

// Load reads and unmarshals dr_report.json from dir into out. It
// returns false, with no error, if the file is missing or malformed —
// mirroring the donor's Option-returning load_cached_report, a cache
// miss is not a failure.
func Load(dir string, out any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(dir, jsonFilename))
	if err != nil {
		return false, nil //nolint:nilerr // missing cache is not an error
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, nil //nolint:nilerr // malformed cache is not an error
	}

	return true, nil
}

// Save pretty-prints result as JSON to dr_report.json in dir.
func Save(dir string, result any) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, jsonFilename), data, 0o644); err != nil { //nolint:gosec,mnd
		return fmt.Errorf("write %s: %w", jsonFilename, err)
	}

	return nil
}

// SaveText writes content to dr_report.txt in dir.
func SaveText(dir, content string) error {
	if err := os.WriteFile(filepath.Join(dir, textFilename), []byte(content), 0o644); err != nil { //nolint:gosec,mnd
		return fmt.Errorf("write %s: %w", textFilename, err)
	}

	return nil
}

// Exist reports whether every report file the caller asked for
// (json, txt) is already present in dir.
func Exist(dir string, wantJSON, wantText bool) bool {
	if wantJSON {
		if _, err := os.Stat(filepath.Join(dir, jsonFilename)); err != nil {
			return false
		}
	}

	if wantText {
		if _, err := os.Stat(filepath.Join(dir, textFilename)); err != nil {
			return false
		}
	}

	return true
}
