package gammamodel

import "github.com/markreidvfx/colorspace/internal/half"

// IntLUTSize is the number of entries in the fixed-point gamma/linear
// lookup tables. Entry n represents the signed value (n-IntLUTZero)/IntLUTScale,
// which is exactly the encoding the integer kernel uses for intermediate
// linear-light RGB: int16 headroom in both directions so that a slightly
// out-of-gamut primary-mapped sample never has to clip before the transfer
// step runs.
const (
	IntLUTSize  = 32768
	IntLUTZero  = 2048
	// IntLUTScale matches yuvmatrix.CoeffScale (1<<14) so that a matrix
	// product's output can be used as a LUT index with no rescale step in
	// between. It is duplicated here as a literal rather than imported,
	// since yuvmatrix does not (and should not) need to depend on the
	// gamma model.
	IntLUTScale = 16384
)

func intLUTDecode(n int) float32 {
	return float32(n-IntLUTZero) / float32(IntLUTScale)
}

func intLUTEncode(v float32) int16 {
	n := int32(v*float32(IntLUTScale) + 0.5)
	if v < 0 {
		n = int32(v*float32(IntLUTScale) - 0.5)
	}
	if n < -1<<15 {
		n = -1 << 15
	}
	if n > 1<<15-1 {
		n = 1<<15 - 1
	}
	return int16(n)
}

// BuildLinearizeIntLUT returns a table mapping a gamma-encoded sample,
// itself expressed in the IntLUTZero/IntLUTScale encoding, to its
// scene-linear equivalent in the same encoding.
func BuildLinearizeIntLUT(tag Tag) [IntLUTSize]int16 {
	var tab [IntLUTSize]int16
	for n := 0; n < IntLUTSize; n++ {
		g := intLUTDecode(n)
		tab[n] = intLUTEncode(Linearize(tag, g))
	}
	return tab
}

// BuildDelinearizeIntLUT returns a table mapping a scene-linear sample
// (IntLUTZero/IntLUTScale encoded) to its gamma-encoded equivalent.
func BuildDelinearizeIntLUT(tag Tag) [IntLUTSize]int16 {
	var tab [IntLUTSize]int16
	for n := 0; n < IntLUTSize; n++ {
		l := intLUTDecode(n)
		tab[n] = intLUTEncode(Delinearize(tag, l))
	}
	return tab
}

// HalfLUTSize is the number of entries in the half-float gamma/linear
// lookup tables: one entry per possible IEEE 754 binary16 bit pattern,
// indexed directly by that bit pattern.
const HalfLUTSize = 1 << 16

// BuildLinearizeHalfLUT returns a table mapping every half-precision bit
// pattern to the half-precision bit pattern of its linearized value.
func BuildLinearizeHalfLUT(tag Tag) [HalfLUTSize]uint16 {
	var tab [HalfLUTSize]uint16
	for h := 0; h < HalfLUTSize; h++ {
		g := half.ToFloat32(uint16(h))
		tab[h] = half.FromFloat32(Linearize(tag, g))
	}
	return tab
}

// BuildDelinearizeHalfLUT returns a table mapping every half-precision bit
// pattern to the half-precision bit pattern of its delinearized value.
func BuildDelinearizeHalfLUT(tag Tag) [HalfLUTSize]uint16 {
	var tab [HalfLUTSize]uint16
	for h := 0; h < HalfLUTSize; h++ {
		l := half.ToFloat32(uint16(h))
		tab[h] = half.FromFloat32(Delinearize(tag, l))
	}
	return tab
}
