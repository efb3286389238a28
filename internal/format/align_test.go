package format

import "testing"

func TestAlign8(t *testing.T) {
	cases := map[int]int{0: 0, 1: 8, 7: 8, 8: 8, 9: 16, 16: 16, 17: 24}
	for in, want := range cases {
		if got := Align8(in); got != want {
			t.Fatalf("Align8(%d)=%d want %d", in, got, want)
		}
	}
}

func TestUsable(t *testing.T) {
	for n := 1; n <= MinSize; n++ {
		if got := Usable(n); got != MinSize {
			t.Fatalf("Usable(%d)=%d want %d", n, got, MinSize)
		}
	}
	if got := Usable(10); got != 16 {
		t.Fatalf("Usable(10)=%d want 16", got)
	}
	if got := Usable(20); got != 24 {
		t.Fatalf("Usable(20)=%d want 24", got)
	}
	if got := Usable(24); got != 24 {
		t.Fatalf("Usable(24)=%d want 24", got)
	}
}

func TestHeaderKeepsDataAligned(t *testing.T) {
	if !IsAligned(HeaderSize) {
		t.Fatalf("HeaderSize %d is not a multiple of Align", HeaderSize)
	}
	if MinCapacity != 2*HeaderSize+MinSize {
		t.Fatalf("MinCapacity=%d", MinCapacity)
	}
}
