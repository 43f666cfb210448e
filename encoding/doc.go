// Package encoding converts containers to and from their two wire forms.
//
// The text form carries any stl container between the key/value server and its
// clients:
//
//	V{T<kind>:C<count>}:D:[e0|e1|...|eN-1]
//
// The binary form carries a protovec.ProtoVector to the persistent store. It is
// an 8-byte length prefix followed by the packed container:
//
//	+----------------+----------------------------+
//	| length (8B)    | packed ProtoVector (length) |
//	+----------------+----------------------------+
//
// The packed container uses protocol buffer wire encoding:
//
//	ProtoVector: 1 kind (varint), 2 entries (repeated message), 3 count (varint)
//	Entry:       oneof { 1 long (varint), 2 text (message: 1 buf (bytes)) }
//
// The length prefix is little-endian unless configured otherwise. When a
// compression type is configured the packed bytes are compressed before framing
// and the prefix counts the compressed bytes.
package encoding
