package format

import "encoding/binary"

// Binary encoding utilities for little-endian integers.
//
// Header fields are read and written through explicit offset accessors rather
// than struct overlays, so the layout is identical on every platform.

// PutU16 writes a uint16 value to the buffer at the specified offset in little-endian format.
func PutU16(b []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(b[off:off+2], v)
}

// PutU32 writes a uint32 value to the buffer at the specified offset in little-endian format.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// ReadU16 reads a uint16 value from the buffer at the specified offset in little-endian format.
func ReadU16(b []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(b[off : off+2])
}

// ReadU32 reads a uint32 value from the buffer at the specified offset in little-endian format.
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// PutFlag stores a boolean as FlagFree / FlagUsed.
func PutFlag(b []byte, off int, v bool) {
	if v {
		PutU16(b, off, FlagFree)
		return
	}
	PutU16(b, off, FlagUsed)
}

// ReadFlag reads a boolean stored by PutFlag.
func ReadFlag(b []byte, off int) bool {
	return ReadU16(b, off) != FlagUsed
}
