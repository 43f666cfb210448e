// Package addb provides the typed containers and wire codecs that move column
// values of a row group between an in-memory key/value server and its persistent
// store.
//
// Two container families exist:
//
//   - stl.Vector holds pointers, text, longs or reference-counted objects and
//     travels to clients in the delimited text form V{T<kind>:C<count>}:D:[...].
//   - protovec.ProtoVector holds longs or text in schema envelopes and is packed
//     into a length-prefixed binary frame for the persistent store.
//
// # Basic Usage
//
// Rendering a vector for a client:
//
//	v := stl.New[string](0)
//	v.Add("2018")
//	v.Add("Kim")
//	s := addb.EncodeText(v) // V{T1:C2}:D:[2018|Kim]
//
// Writing a cell to the store and reading it back:
//
//	pv := protovec.New(format.KindLong)
//	_ = pv.AddLong(10)
//	blob, _ := addb.EncodeBinary(pv)
//	restored, _ := addb.DecodeBinary(blob)
//
// # Logging
//
// Containers and codecs log through the logging package, which discards
// everything by default. Install a logger with SetLogger:
//
//	addb.SetLogger(logging.NewText(slog.LevelDebug))
//
// # Package Structure
//
// This package wraps the encoding package with default settings: little-endian
// length prefix and no compression. Use encoding.NewBinaryEncoder and
// encoding.NewBinaryDecoder for other settings.
package addb

import (
	"github.com/hanseungsung/addb/encoding"
	"github.com/hanseungsung/addb/internal/hash"
	"github.com/hanseungsung/addb/logging"
	"github.com/hanseungsung/addb/protovec"
	"github.com/hanseungsung/addb/stl"
)

var (
	defaultBinaryEncoder *encoding.BinaryEncoder
	defaultBinaryDecoder *encoding.BinaryDecoder
)

func init() {
	var err error
	if defaultBinaryEncoder, err = encoding.NewBinaryEncoder(); err != nil {
		panic(err)
	}
	if defaultBinaryDecoder, err = encoding.NewBinaryDecoder(); err != nil {
		panic(err)
	}
}

// EncodeText renders c in the delimited text form.
func EncodeText(c stl.Container) string {
	return encoding.EncodeText(c)
}

// DecodeText parses the delimited text form into a container of the kind named
// by its header.
//
// Example:
//
//	c, err := addb.DecodeText("V{T3:C3}:D:[2018|Kim|Yonsei]")
//	if err != nil {
//	    return err
//	}
//	defer c.FreeDeep()
func DecodeText(s string) (stl.Container, error) {
	return encoding.DecodeText(s)
}

// EncodeBinary fits v and returns its length-prefixed packed frame.
func EncodeBinary(v *protovec.ProtoVector) ([]byte, error) {
	return defaultBinaryEncoder.Encode(v)
}

// DecodeBinary rebuilds a ProtoVector from a frame written by EncodeBinary.
func DecodeBinary(blob []byte, opts ...protovec.Option) (*protovec.ProtoVector, error) {
	return defaultBinaryDecoder.Decode(blob, opts...)
}

// Digest returns the xxHash64 fingerprint of an encoded cell, text or binary.
//
// Two cells with the same digest are treated as unchanged by write-back.
func Digest(cell []byte) uint64 {
	return hash.Bytes(cell)
}

// DigestText returns the xxHash64 fingerprint of a text cell.
func DigestText(cell string) uint64 {
	return hash.String(cell)
}

// SetLogger installs l as the logger of every container and codec.
// A nil logger restores the default, which discards everything.
func SetLogger(l *logging.Logger) {
	logging.SetDefault(l)
}
