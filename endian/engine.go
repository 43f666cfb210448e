// Package endian selects the byte order of the binary frame length prefix.
//
// Frames have always been written in host order, which is little-endian on every
// platform the store has run on. GetLittleEndianEngine is the default;
// GetNativeEngine reproduces host-order frames exactly.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness returns the byte order of the host.
func CheckEndianness() binary.ByteOrder {
	// 0x0100: on a big-endian host the first byte in memory is 0x01.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// CompareNativeEndian reports whether engine matches the host byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetNativeEngine returns the engine matching the host byte order.
func GetNativeEngine() EndianEngine {
	if IsNativeBigEndian() {
		return binary.BigEndian
	}

	return binary.LittleEndian
}
