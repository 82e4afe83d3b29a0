// Package raster holds the integer rasterization primitives behind bitmap
// drawing: the doubling fill, Bresenham lines and barycentric triangles.
package raster

// Fill sets every element of buf to v.
//
// It writes buf[0] and then repeatedly copies the filled prefix onto the
// region right after it, doubling the prefix each step, so a fill of n
// elements costs O(log n) block copies. The last copy is clamped to what
// remains.
func Fill[T any](buf []T, v T) {
	if len(buf) == 0 {
		return
	}
	buf[0] = v
	for n := 1; n < len(buf); n *= 2 {
		copy(buf[n:], buf[:n])
	}
}
