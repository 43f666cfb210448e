package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

const (
	// lz4MaxDecompressedSize bounds the retry loop of Decompress.
	lz4MaxDecompressedSize = 128 * 1024 * 1024
	// lz4MaxRatio is the largest expansion a single input byte can produce.
	lz4MaxRatio = 255
)

// LZ4Compressor compresses payloads with LZ4 block encoding.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates an LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data with a pooled lz4.Compressor.
// Empty input yields an empty block.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if data == nil {
		return nil, nil
	}
	if len(data) == 0 {
		return []byte{}, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decompresses an LZ4 block.
//
// LZ4 blocks do not record their decompressed size, so the output buffer starts at
// four times the input and doubles on ErrInvalidSourceShortBuffer. It never exceeds
// the largest size the input could expand to, nor 128MiB.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	limit := min(len(data)*lz4MaxRatio+lz4MaxRatio, lz4MaxDecompressedSize)
	for bufSize := min(len(data)*4, limit); ; bufSize = min(bufSize*2, limit) {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) || bufSize == limit {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
	}
}
