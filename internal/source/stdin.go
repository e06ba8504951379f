package source

import "io"

// StdinSource wraps a sequential reader (standard input) with a
// caller-supplied format hint; its length is never known.
type StdinSource struct {
	r   io.Reader
	ext string
}

// NewStdin wraps r with the given extension hint (from --format).
func NewStdin(r io.Reader, ext string) *StdinSource {
	return &StdinSource{r: r, ext: ext}
}

func (s *StdinSource) Read(p []byte) (int, error) { return s.r.Read(p) }

func (s *StdinSource) Size() (int64, bool) { return 0, false }

func (s *StdinSource) Ext() string { return s.ext }

func (s *StdinSource) Seekable() bool { return false }
