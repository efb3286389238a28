//go:build !unix && !windows

package mmfile

import "fmt"

// MapAnon allocates the region on the Go heap when no mapping primitive is
// available.
func MapAnon(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mmfile: invalid mapping size %d", size)
	}
	return make([]byte, size), func() error { return nil }, nil
}
