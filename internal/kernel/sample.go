// Package kernel implements the three per-pixel conversion pipelines:
// fixed-point integer (8/10/12-bit planar YUV), half-float (GBR(A)PF16)
// and single-float (GBR(A)PF32). Every exported Convert* function
// operates on one horizontal slice of rows at a time so a Converter can
// fan a frame out across goroutines with no cross-slice state.
package kernel

import "encoding/binary"

// sample8 reads one 8-bit sample.
func sample8(plane []byte, idx int) int32 { return int32(plane[idx]) }

// sample16 reads one little-endian 16-bit sample (used for 10/12-bit YUV,
// whose samples are stored in the low bits of a 16-bit word, with values
// up to 2^depth-1, the way the yuv4xxp10le/p12le formats lay them out).
func sample16(plane []byte, idx int) int32 {
	return int32(binary.LittleEndian.Uint16(plane[idx*2:]))
}

func putSample8(plane []byte, idx int, v int32) {
	plane[idx] = uint8(clampRange(v, 0, 255))
}

func putSample16(plane []byte, idx int, v int32, maxVal int32) {
	binary.LittleEndian.PutUint16(plane[idx*2:], uint16(clampRange(v, 0, maxVal)))
}

func clampRange(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxSampleValue(depth int) int32 {
	return int32(1)<<uint(depth) - 1
}
