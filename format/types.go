package format

import "strconv"

type (
	// Kind is the element kind of a container. It is fixed at creation and is
	// written as the T field of the text header and as field 1 of the packed schema.
	Kind uint8
	// CompressionType selects the payload compression of the binary frame.
	CompressionType uint8
)

const (
	KindPointer Kind = 0x0 // KindPointer holds opaque raw buffers.
	KindText    Kind = 0x1 // KindText holds owned text values.
	KindLong    Kind = 0x2 // KindLong holds 64-bit signed integers.
	KindObject  Kind = 0x3 // KindObject holds reference-counted objects.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// IsValid reports whether k is one of the known element kinds.
func (k Kind) IsValid() bool {
	return k <= KindObject
}

// IsSchemaKind reports whether k may be stored in a schema-typed container.
func (k Kind) IsSchemaKind() bool {
	return k == KindLong || k == KindText
}

func (k Kind) String() string {
	switch k {
	case KindPointer:
		return "Pointer"
	case KindText:
		return "Text"
	case KindLong:
		return "Long"
	case KindObject:
		return "Object"
	default:
		return "Unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
