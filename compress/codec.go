// Package compress provides the optional payload compression of binary frames.
//
// A binary frame is an 8-byte length prefix followed by the packed container.
// When compression is enabled, the packed bytes are compressed before framing and
// the length prefix counts the compressed bytes. Encoder and decoder must agree on
// the compression type; it is not recorded in the frame.
package compress

import (
	"fmt"

	"github.com/hanseungsung/addb/errs"
	"github.com/hanseungsung/addb/format"
)

// Compressor compresses a packed payload.
//
// The returned slice is owned by the caller and the input is not modified,
// except for NoOpCompressor which returns its input unchanged.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
// It returns an error when data is corrupted or was produced by another algorithm.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. Implementations are safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec returns a new Codec for compressionType.
// target names the payload in the error message.
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s compression %s", errs.ErrInvalidCompression, target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared built-in Codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compressionType)
}
