// Package backends registers every decoder backend with the decode
// package via blank import side effects. Importing this package (for
// its side effects only) is enough to make decode.Open support every
// extension in the enumerator's fixed set.
package backends

import (
	_ "github.com/farcloser/dr/internal/decode/extdec"
	_ "github.com/farcloser/dr/internal/decode/flacdec"
	_ "github.com/farcloser/dr/internal/decode/mp3dec"
	_ "github.com/farcloser/dr/internal/decode/oggdec"
	_ "github.com/farcloser/dr/internal/decode/wavdec"
)
