package format

// Markers of the delimited text wire format:
//
//	V{T<kind>:C<count>}:D:[e0|e1|...|eN-1]
//
// Element values must not contain any of these markers; the format has no escaping.
const (
	VectorPrefix     = "V"
	BraceOpen        = '{'
	BraceClose       = '}'
	TypePrefix       = "T"
	CountPrefix      = "C"
	FieldSeparator   = ':'
	DataPrefix       = "D"
	VectorDataPrefix = '['
	VectorDataSuffix = ']'
	Delimiter        = '|'
)

// TextHeaderPrefix is the fixed text preceding the kind number.
const TextHeaderPrefix = VectorPrefix + string(BraceOpen) + TypePrefix

// TextDataPrefix is the fixed text between the header and the first element.
const TextDataPrefix = string(BraceClose) + string(FieldSeparator) + DataPrefix +
	string(FieldSeparator) + string(VectorDataPrefix)

// LengthPrefixSize is the size in bytes of the binary frame length field.
const LengthPrefixSize = 8
