package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/farcloser/primordium/fault"
)

// FileSource wraps an *os.File, exposing its known size and extension.
type FileSource struct {
	file *os.File
	path string
	size int64
	ext  string
}

// OpenFile opens path for reading and wraps it as a Source.
func OpenFile(path string) (*FileSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", fault.ErrReadFailure, path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()

		return nil, fmt.Errorf("%w: %s: %w", fault.ErrReadFailure, path, err)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	return &FileSource{file: file, path: path, size: info.Size(), ext: ext}, nil
}

func (f *FileSource) Read(p []byte) (int, error) { return f.file.Read(p) }

// Seek delegates to the underlying file, satisfying io.ReadSeeker for
// backends that want it.
func (f *FileSource) Seek(offset int64, whence int) (int64, error) {
	return f.file.Seek(offset, whence)
}

func (f *FileSource) Size() (int64, bool) { return f.size, true }

func (f *FileSource) Ext() string { return f.ext }

func (f *FileSource) Seekable() bool { return true }

// Path returns the filesystem path this source was opened from. Used
// by backends (extdec) that shell out to external tools needing a
// real path rather than a piped reader.
func (f *FileSource) Path() string { return f.path }

// Close releases the underlying file handle.
func (f *FileSource) Close() error { return f.file.Close() }
