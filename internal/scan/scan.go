// Package scan enumerates the audio files of a directory.
package scan

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/farcloser/primordium/fault"
)

// extensions is the fixed set of recognized audio file extensions,
// lowercased and without the leading dot.
//
//nolint:gochecknoglobals // configuration data, effectively const
var extensions = map[string]struct{}{
	"flac": {},
	"mp3":  {},
	"wav":  {},
	"ogg":  {},
	"m4a":  {},
	"opus": {},
	"wv":   {},
	"aif":  {},
	"aiff": {},
}

// IsAudioFile reports whether path's lowercased extension is in the
// recognized set.
func IsAudioFile(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	_, ok := extensions[ext]

	return ok
}

// Scan returns the absolute paths of the immediate children of dir
// whose extension is recognized, sorted lexicographically. Entries
// that cannot be stat'd are skipped silently; a failure to read dir
// itself is returned.
func Scan(dir string) ([]string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", fault.ErrReadFailure, dir, err)
	}

	dir = absDir

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", fault.ErrReadFailure, dir, err)
	}

	var out []string

	for _, entry := range entries {
		info, infoErr := entry.Info()
		if infoErr != nil {
			slog.Debug("scan: skipping unreadable entry", "name", entry.Name(), "error", infoErr)

			continue
		}

		if info.IsDir() {
			continue
		}

		if !IsAudioFile(entry.Name()) {
			continue
		}

		out = append(out, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(out)

	return out, nil
}
