// Package errs declares the sentinel errors the DR core and its
// surrounding CLI surface use to classify failures (spec §7).
package errs

import "errors"

var (
	// ErrNoAudioFiles is returned when a directory contains no file
	// whose extension is in the recognized audio set.
	ErrNoAudioFiles = errors.New("no recognized audio files")

	// ErrNoAudioTrack is returned when a container has no track with a
	// non-null codec identifier.
	ErrNoAudioTrack = errors.New("no audio track in container")

	// ErrDecoderOpen is returned when probing or opening a decoder
	// fails before any frame is read.
	ErrDecoderOpen = errors.New("decoder open failed")

	// ErrDecoderFailure is returned for an unrecoverable mid-stream
	// decode error (distinct from a per-packet decode error, which is
	// skipped silently).
	ErrDecoderFailure = errors.New("decoder failed mid-stream")

	// ErrConfiguration is returned for invalid CLI configuration, e.g.
	// standard-input mode without a format hint, or mutually exclusive
	// flags.
	ErrConfiguration = errors.New("invalid configuration")
)
