// Package yuvmatrix builds the luma/chroma derivation matrices and their
// fixed-point quantized forms used by the integer conversion kernel. It
// generalizes sharpyuv's single hard-coded BT.601/BT.709 8-bit tables to
// arbitrary Kr/Kb luma coefficients, bit depth and sample range, following
// the same quantization conventions vf_colorspace.c uses for its
// create_filtergraph coefficient tables.
package yuvmatrix

import (
	"math"

	"github.com/markreidvfx/colorspace/colorimetry"
	"github.com/markreidvfx/colorspace/internal/colormath"
)

// CoeffScale is the fixed-point scale factor ("14-bit" headroom-friendly
// scale) that RGB<->YUV coefficient tables and intermediate linear-light
// samples are carried at.
const CoeffScale = 1 << 14

// RangeInfo describes, for one plane kind (luma or chroma), the offset and
// excursion of a sample range at a given bit depth.
type RangeInfo struct {
	Offset int32
	Span   int32 // e.g. 219<<(depth-8) for limited luma at depth bits.
}

// Ranges computes luma and chroma RangeInfo for a sample range and bit
// depth.
func Ranges(rng colorimetry.Range, depth int) (luma, chroma RangeInfo) {
	shift := uint(depth - 8)
	bits := int32(1)<<uint(depth) - 1
	if rng == colorimetry.RangeFull {
		return RangeInfo{Offset: 0, Span: bits}, RangeInfo{Offset: int32(1) << (uint(depth) - 1), Span: bits}
	}
	return RangeInfo{Offset: int32(16) << shift, Span: int32(219) << shift},
		RangeInfo{Offset: int32(128) << shift, Span: int32(224) << shift}
}

// RGB2YUV returns the unscaled (floating point) luma/chroma derivation
// matrix for the given luma coefficients, mapping normalized [0,1] RGB to
// normalized Y in [0,1] and U,V in [-0.5,0.5].
func RGB2YUV(kr, kb float64) colormath.Mat3 {
	kg := 1 - kr - kb
	return colormath.Mat3{
		{kr, kg, kb},
		{-kr / (2 * (1 - kb)), -kg / (2 * (1 - kb)), 0.5},
		{0.5, -kg / (2 * (1 - kr)), -kb / (2 * (1 - kr))},
	}
}

// YUV2RGB returns the inverse of RGB2YUV.
func YUV2RGB(kr, kb float64) colormath.Mat3 {
	return RGB2YUV(kr, kb).Invert()
}

func lrint(v float64) int32 {
	return int32(math.Round(v))
}

// QuantizeYUV2RGB scales m (as returned by YUV2RGB, optionally
// premultiplied by a primary-mapping matrix) to CoeffScale-fixed-point
// integer coefficients suitable for the integer kernel, given the input
// sample's bit depth and range.
func QuantizeYUV2RGB(m colormath.Mat3, depth int, rng colorimetry.Range) [3][3]int32 {
	luma, chroma := Ranges(rng, depth)
	spans := [3]float64{float64(luma.Span), float64(chroma.Span), float64(chroma.Span)}
	var out [3][3]int32
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			out[row][col] = lrint(CoeffScale * m[row][col] / spans[col])
		}
	}
	return out
}

// QuantizeRGB2YUV scales m (as returned by RGB2YUV) to integer
// coefficients that produce output samples at the given bit depth and
// range directly from CoeffScale-fixed-point linear RGB.
func QuantizeRGB2YUV(m colormath.Mat3, depth int, rng colorimetry.Range) [3][3]int32 {
	luma, chroma := Ranges(rng, depth)
	spans := [3]float64{float64(luma.Span), float64(chroma.Span), float64(chroma.Span)}
	var out [3][3]int32
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			out[row][col] = lrint(spans[row] * m[row][col] / CoeffScale)
		}
	}
	return out
}

// ComposeYUV2YUV folds a YUV->RGB matrix and an RGB->YUV matrix into one
// set of integer coefficients that convert directly between two YUV
// representations, skipping the RGB intermediate entirely:
// yuv2yuv = rgb2yuv * yuv2rgb. This is the fast-mode path, valid only when
// the primaries are unchanged (or the caller has explicitly asked to skip
// primary mapping) - primary conversion only makes sense in linear light,
// and this matrix is applied directly to gamma-encoded samples.
//
// The result is CoeffScale-fixed point, exactly like QuantizeYUV2RGB and
// QuantizeRGB2YUV: the caller must descale the dot product by CoeffScale
// (matVecShift, not matVec) after applying it. Without the CoeffScale
// factor a span ratio like 4095/3504 would round to the integer 1 instead
// of ~1.17, silently discarding the whole depth/range rescale.
func ComposeYUV2YUV(yuv2rgb, rgb2yuv colormath.Mat3, inDepth, outDepth int, inRng, outRng colorimetry.Range) [3][3]int32 {
	combined := rgb2yuv.Mul(yuv2rgb)
	inLuma, inChroma := Ranges(inRng, inDepth)
	outLuma, outChroma := Ranges(outRng, outDepth)
	inSpans := [3]float64{float64(inLuma.Span), float64(inChroma.Span), float64(inChroma.Span)}
	outSpans := [3]float64{float64(outLuma.Span), float64(outChroma.Span), float64(outChroma.Span)}

	var out [3][3]int32
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			out[row][col] = lrint(CoeffScale * combined[row][col] * outSpans[row] / inSpans[col])
		}
	}
	return out
}
