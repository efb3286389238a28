package format

import "testing"

func TestFlagRoundTrip(t *testing.T) {
	b := make([]byte, 4)
	PutFlag(b, 0, true)
	PutFlag(b, 2, false)
	if !ReadFlag(b, 0) || ReadFlag(b, 2) {
		t.Fatalf("flags mismatch: %v", b)
	}
	if ReadU16(b, 0) != FlagFree {
		t.Fatalf("free flag stored as %d", ReadU16(b, 0))
	}
}

func TestU32LittleEndian(t *testing.T) {
	b := make([]byte, 8)
	PutU32(b, 4, 0x11223344)
	if b[4] != 0x44 || b[7] != 0x11 {
		t.Fatalf("unexpected byte order: % x", b)
	}
	if ReadU32(b, 4) != 0x11223344 {
		t.Fatalf("ReadU32 mismatch")
	}
}
