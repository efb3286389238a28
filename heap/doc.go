// Package heap manages a single fixed-size memory arena and the block
// layout inside it.
//
// An arena is one contiguous region reserved from the OS at Init. It is
// addressed by byte offset, never by pointer, and is never grown. Every
// block starts with a 24-byte little-endian header:
//
//	0x00  u32  size       usable data-segment size (0 marks the sentinel)
//	0x04  u32  back_size  usable size of the physical predecessor
//	0x08  u16  free       1 when the block is on the free list
//	0x0A  u16  back_free  1 when the physical predecessor is free
//	0x0C  u32  next       free-list successor offset, or NilOffset
//	0x10  u32  prev       free-list predecessor offset, or NilOffset
//	0x14  u32  reserved
//
// Headers and data segments are 8-byte aligned. The physical successor of a
// block at offset o with size s lives at o + HeaderSize + s. The sentinel
// sits in the last HeaderSize bytes and is never free, so walks in either
// direction terminate.
//
// A fresh arena of capacity C holds exactly two headers:
//
//	offset 0      size C-48, free, back_size 0, back_free false
//	offset C-24   size 0 (sentinel), back_size C-48, back_free true
//
// The package only maintains layout. Allocation policy (free list, splitting,
// coalescing) lives in package alloc.
package heap
