// Package source provides the uniform byte-source abstraction that
// decoder backends read from: a seekable file or an unseekable
// sequential stream (standard input), each carrying an optional
// extension hint.
package source

import "io"

// Source is a byte source with an optional known length and an
// extension hint used to pick a container/codec.
type Source interface {
	io.Reader

	// Size reports the total byte length and whether it is known. It
	// is unknown for sequential sources such as standard input.
	Size() (int64, bool)

	// Ext returns the lowercased extension hint, without the leading
	// dot (e.g. "flac").
	Ext() string

	// Seekable reports whether the underlying reader also implements
	// io.ReadSeeker. Backends that benefit from seeking (FLAC) use
	// this to decide whether to take the fast path.
	Seekable() bool
}
