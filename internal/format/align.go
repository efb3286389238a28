package format

// Align8 returns n aligned up to the next Align boundary.
//
// Example:
//
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
//	Align8(16) = 16
func Align8(n int) int {
	return (n + AlignMask) & ^AlignMask
}

// IsAligned reports whether n is a multiple of Align.
func IsAligned(n int) bool {
	return n&AlignMask == 0
}

// Usable converts a request into the usable block size the allocator hands
// out: at least MinSize, rounded up to Align.
func Usable(request int) int {
	return Align8(max(request, MinSize))
}
