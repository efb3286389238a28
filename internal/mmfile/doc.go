// Package mmfile provides platform-specific helpers for reserving the arena
// region from the operating system: anonymous mmap(2) on unix, VirtualAlloc
// on Windows and a plain heap slice elsewhere.
package mmfile
