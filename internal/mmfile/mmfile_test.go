package mmfile

import "testing"

func TestMapAnonReadWrite(t *testing.T) {
	const size = 64 * 1024
	data, cleanup, err := MapAnon(size)
	if err != nil {
		t.Fatalf("MapAnon: %v", err)
	}
	defer func() {
		if cleanupErr := cleanup(); cleanupErr != nil {
			t.Fatalf("cleanup: %v", cleanupErr)
		}
	}()
	if len(data) != size {
		t.Fatalf("len mismatch: got %d want %d", len(data), size)
	}
	for i := 0; i < size; i += 4096 {
		if data[i] != 0 {
			t.Fatalf("byte %d not zeroed: 0x%x", i, data[i])
		}
	}
	data[0], data[size-1] = 0xde, 0xad
	if data[0] != 0xde || data[size-1] != 0xad {
		t.Fatalf("mapping is not writable")
	}
}

func TestMapAnonCleanupTwice(t *testing.T) {
	_, cleanup, err := MapAnon(4096)
	if err != nil {
		t.Fatalf("MapAnon: %v", err)
	}
	if err := cleanup(); err != nil {
		t.Fatalf("first cleanup: %v", err)
	}
	if err := cleanup(); err != nil {
		t.Fatalf("second cleanup should be a no-op, got %v", err)
	}
}

func TestMapAnonRejectsBadSize(t *testing.T) {
	if _, _, err := MapAnon(0); err == nil {
		t.Fatalf("expected error for zero size")
	}
	if _, _, err := MapAnon(-1); err == nil {
		t.Fatalf("expected error for negative size")
	}
}
