package encoding

import (
	"fmt"

	"github.com/hanseungsung/addb/compress"
	"github.com/hanseungsung/addb/endian"
	"github.com/hanseungsung/addb/errs"
	"github.com/hanseungsung/addb/format"
	"github.com/hanseungsung/addb/logging"
	"github.com/hanseungsung/addb/internal/options"
	"github.com/hanseungsung/addb/internal/pool"
	"github.com/hanseungsung/addb/protovec"
)

// BinaryConfig holds the frame settings shared by BinaryEncoder and BinaryDecoder.
// Both sides of a frame must use the same settings.
type BinaryConfig struct {
	engine      endian.EndianEngine
	compression format.CompressionType
	codec       compress.Codec // nil when compression is CompressionNone
	logger      *logging.Logger
}

// BinaryOption configures a BinaryConfig.
type BinaryOption = options.Option[*BinaryConfig]

// WithLittleEndian writes the length prefix in little-endian order. This is the default.
func WithLittleEndian() BinaryOption {
	return options.NoError(func(c *BinaryConfig) {
		c.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian writes the length prefix in big-endian order.
func WithBigEndian() BinaryOption {
	return options.NoError(func(c *BinaryConfig) {
		c.engine = endian.GetBigEndianEngine()
	})
}

// WithNativeEndian writes the length prefix in the host's byte order.
func WithNativeEndian() BinaryOption {
	return options.NoError(func(c *BinaryConfig) {
		c.engine = endian.GetNativeEngine()
	})
}

// WithCompression compresses the packed payload with the given algorithm.
func WithCompression(compressionType format.CompressionType) BinaryOption {
	return options.New(func(c *BinaryConfig) error {
		codec, err := compress.GetCodec(compressionType)
		if err != nil {
			return err
		}

		c.compression = compressionType
		c.codec = codec
		if compressionType == format.CompressionNone {
			c.codec = nil
		}

		return nil
	})
}

// WithLogger sets the logger used for rejected frames. The package default is
// used otherwise.
func WithLogger(l *logging.Logger) BinaryOption {
	return options.NoError(func(c *BinaryConfig) {
		c.logger = l
	})
}

func newBinaryConfig(opts ...BinaryOption) (*BinaryConfig, error) {
	cfg := &BinaryConfig{
		engine:      endian.GetLittleEndianEngine(),
		compression: format.CompressionNone,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.logger == nil {
		cfg.logger = logging.Default()
	}
	cfg.logger = cfg.logger.WithComponent("binary")

	return cfg, nil
}

// BinaryEncoder frames ProtoVectors for the persistent store.
// It holds no per-call state and is safe for concurrent use.
type BinaryEncoder struct {
	cfg *BinaryConfig
}

// NewBinaryEncoder creates an encoder.
func NewBinaryEncoder(opts ...BinaryOption) (*BinaryEncoder, error) {
	cfg, err := newBinaryConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &BinaryEncoder{cfg: cfg}, nil
}

// Encode fits v to its length and returns the framed packed form: an 8-byte
// length prefix followed by exactly that many payload bytes.
func (e *BinaryEncoder) Encode(v *protovec.ProtoVector) ([]byte, error) {
	v.Fit()
	size := PackedSize(v)

	if e.cfg.codec == nil {
		out := pool.NewByteBuffer(format.LengthPrefixSize + size)
		out.Extend(format.LengthPrefixSize)
		out.B = appendPacked(out.B, v)

		return e.frame(out), nil
	}

	packed := pool.GetCellBuffer()
	defer pool.PutCellBuffer(packed)

	packed.Grow(size)
	packed.B = appendPacked(packed.B, v)

	payload, err := e.cfg.codec.Compress(packed.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress %s payload: %w", e.cfg.compression, err)
	}

	out := pool.NewByteBuffer(format.LengthPrefixSize + len(payload))
	out.Extend(format.LengthPrefixSize)
	out.MustWrite(payload)

	return e.frame(out), nil
}

// frame writes the payload length into the prefix reserved at the front of out.
func (e *BinaryEncoder) frame(out *pool.ByteBuffer) []byte {
	e.cfg.engine.PutUint64(out.Bytes(), uint64(out.Len()-format.LengthPrefixSize))

	return out.Bytes()
}

// BinaryDecoder rebuilds ProtoVectors from frames written by a BinaryEncoder with
// the same settings. It is safe for concurrent use.
type BinaryDecoder struct {
	cfg *BinaryConfig
}

// NewBinaryDecoder creates a decoder.
func NewBinaryDecoder(opts ...BinaryOption) (*BinaryDecoder, error) {
	cfg, err := newBinaryConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &BinaryDecoder{cfg: cfg}, nil
}

// Decode reads the length prefix of blob and unpacks that many payload bytes.
// Bytes after the payload are ignored. Text payloads of the result are copies;
// blob may be reused after Decode returns.
func (d *BinaryDecoder) Decode(blob []byte, opts ...protovec.Option) (*protovec.ProtoVector, error) {
	v, err := d.decode(blob, opts...)
	if err != nil {
		d.cfg.logger.Warn("decode failed", "frame_size", len(blob), "error", err)
		return nil, err
	}

	return v, nil
}

func (d *BinaryDecoder) decode(blob []byte, opts ...protovec.Option) (*protovec.ProtoVector, error) {
	if len(blob) < format.LengthPrefixSize {
		return nil, fmt.Errorf("%w: frame of %d bytes has no length prefix", errs.ErrTruncatedInput, len(blob))
	}

	length := d.cfg.engine.Uint64(blob[:format.LengthPrefixSize])
	if available := uint64(len(blob) - format.LengthPrefixSize); length > available {
		return nil, fmt.Errorf("%w: length prefix %d, %d payload bytes", errs.ErrTruncatedInput, length, available)
	}
	payload := blob[format.LengthPrefixSize : format.LengthPrefixSize+int(length)]

	if d.cfg.codec != nil {
		var err error
		payload, err = d.cfg.codec.Decompress(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: decompress %s payload: %w", errs.ErrMalformedInput, d.cfg.compression, err)
		}
	}

	return unpack(payload, opts...)
}
