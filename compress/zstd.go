package compress

// ZstdCompressor compresses payloads with Zstandard.
//
// The pure-Go implementation from klauspost/compress is used by default. Building
// with cgo and the gozstd tag switches to the libzstd binding.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd compressor.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
