package kernel

import (
	"github.com/markreidvfx/colorspace/internal/gammamodel"
	"github.com/markreidvfx/colorspace/internal/plan"
	"github.com/markreidvfx/colorspace/internal/scratch"
)

// Planes bundles the three plane buffers and their row strides (in
// bytes) for one YUV frame.
type Planes struct {
	Y, U, V       []byte
	StrideY, StrideUV int
}

// matVec applies a matrix whose coefficients already have any necessary
// rescale (span normalization) baked in, so the raw dot product is the
// answer with no further shift: used for YUV<->RGB, where yuvmatrix's
// QuantizeYUV2RGB/QuantizeRGB2YUV divide/multiply by the relevant sample
// range span at coefficient-build time.
func matVec(m [3][3][8]int32, lane int, v [3]int32) [3]int32 {
	var out [3]int32
	for r := 0; r < 3; r++ {
		out[r] = m[r][0][lane]*v[0] + m[r][1][lane]*v[1] + m[r][2][lane]*v[2]
	}
	return out
}

// matVecShift applies a matrix quantized as a pure CoeffScale multiplier -
// PrimaryMapInt, or YUV2YUV built by yuvmatrix.ComposeYUV2YUV - to a value
// already in the same CoeffScale-scaled domain, descaling the product
// back down by CoeffScale afterward.
func matVecShift(m [3][3][8]int32, lane int, v [3]int32) [3]int32 {
	var out [3]int32
	for r := 0; r < 3; r++ {
		out[r] = (m[r][0][lane]*v[0] + m[r][1][lane]*v[1] + m[r][2][lane]*v[2]) >> 14
	}
	return out
}

func clipLUTIndex(v int32) int32 {
	if v < 0 {
		return 0
	}
	if v > gammamodel.IntLUTSize-1 {
		return gammamodel.IntLUTSize - 1
	}
	return v
}

// ditherAdd applies a Floyd-Steinberg-banding style error term to v,
// combining the horizontal carry-in from the previous column of this row
// with the vertical carry-in left behind by the same column of the
// previous row. The even-round-down step only ever produces a one-unit
// residual, so instead of splitting that single unit it alternates which
// axis receives it, column by column (toVert) - diffusing along rows on
// even columns and into the next row on odd ones, so a flat input bands
// along neither axis and both DitherErr halves are genuinely exercised.
func ditherAdd(v int32, horizIn, vertIn int16, toVert bool) (out int32, horizOut, vertOut int16) {
	total := v + int32(horizIn) + int32(vertIn)
	rounded := total &^ 1 // even-round toward the representable grid; banding-safe.
	resid := int16(total - rounded)
	if toVert {
		vertOut = resid
	} else {
		horizOut = resid
	}
	return rounded, horizOut, vertOut
}

// ConvertSliceInt converts luma rows [rowStart, rowEnd) of a YUV frame
// using the fixed-point integer pipeline described by p. rowStart/rowEnd
// must already be aligned to the coarser of the input/output chroma row
// subsampling so each call owns whole chroma rows with no cross-slice
// synchronization.
func ConvertSliceInt(p *plan.Plan, sc *scratch.Manager, src, dst Planes, width int, rowStart, rowEnd int) {
	inShiftX, inShiftY := p.InFormat.ChromaShiftX, p.InFormat.ChromaShiftY
	outShiftX, outShiftY := p.OutFormat.ChromaShiftX, p.OutFormat.ChromaShiftY
	inCodec := LookupRowCodec(p.InDepthIndex, p.InSubsamplingIndex)
	outCodec := LookupRowCodec(p.OutDepthIndex, p.OutSubsamplingIndex)

	for y := rowStart; y < rowEnd; y++ {
		inChromaRow := y >> uint(inShiftY)
		outChromaRow := y >> uint(outShiftY)
		writeChroma := y%(1<<uint(outShiftY)) == 0

		lumaRowIn := src.Y[y*src.StrideY:]
		lumaRowOut := dst.Y[y*dst.StrideY:]
		uRowIn := src.U[inChromaRow*src.StrideUV:]
		vRowIn := src.V[inChromaRow*src.StrideUV:]
		var uRowOut, vRowOut []byte
		if writeChroma {
			uRowOut = dst.U[outChromaRow*dst.StrideUV:]
			vRowOut = dst.V[outChromaRow*dst.StrideUV:]
		}

		for x := 0; x < width; x++ {
			inChromaCol := x >> uint(inShiftX)
			yv := inCodec.ReadSample(lumaRowIn, x) - p.InOffset[0]
			uv := inCodec.ReadSample(uRowIn, inChromaCol) - p.InOffset[1]
			vv := inCodec.ReadSample(vRowIn, inChromaCol) - p.InOffset[2]

			if p.YUV2YUVFastMode {
				rgb := matVecShift(p.YUV2YUV, 0, [3]int32{yv, uv, vv})
				outCodec.WriteSample(lumaRowOut, x, rgb[0]+p.OutOffset[0])
				if writeChroma && x%(1<<uint(outShiftX)) == 0 {
					outChromaCol := x >> uint(outShiftX)
					outCodec.WriteSample(uRowOut, outChromaCol, rgb[1]+p.OutOffset[1])
					outCodec.WriteSample(vRowOut, outChromaCol, rgb[2]+p.OutOffset[2])
				}
				continue
			}

			rgbRaw := matVec(p.YUV2RGB, 0, [3]int32{yv, uv, vv})
			sc.IntRGB[0][x], sc.IntRGB[1][x], sc.IntRGB[2][x] = int16(rgbRaw[0]), int16(rgbRaw[1]), int16(rgbRaw[2])
			rgb := [3]int32{int32(sc.IntRGB[0][x]), int32(sc.IntRGB[1][x]), int32(sc.IntRGB[2][x])}

			if !p.RGB2RGBPassthrough {
				for c := 0; c < 3; c++ {
					idx := clipLUTIndex(rgb[c] + gammamodel.IntLUTZero)
					sc.IntRGB[c][x] = p.LinearizeIntLUT[idx]
				}
			}
			rgb = [3]int32{int32(sc.IntRGB[0][x]), int32(sc.IntRGB[1][x]), int32(sc.IntRGB[2][x])}

			if !p.RGB2RGBPassthrough && !p.LRGB2LRGBPassthrough {
				rgb = matVecShift(p.PrimaryMapInt, 0, rgb)
				sc.IntRGB[0][x], sc.IntRGB[1][x], sc.IntRGB[2][x] = int16(rgb[0]), int16(rgb[1]), int16(rgb[2])
			}

			if !p.RGB2RGBPassthrough {
				for c := 0; c < 3; c++ {
					idx := clipLUTIndex(int32(sc.IntRGB[c][x]) + gammamodel.IntLUTZero)
					sc.IntRGB[c][x] = p.DelinearizeIntLUT[idx]
				}
			}
			rgb = [3]int32{int32(sc.IntRGB[0][x]), int32(sc.IntRGB[1][x]), int32(sc.IntRGB[2][x])}

			yuv := matVec(p.RGB2YUV, 0, rgb)

			yOut := yuv[0] + p.OutOffset[0]
			if p.Dither {
				yHoriz, yVert := sc.DitherErr[0], sc.DitherErr[3]
				v, eh, ev := ditherAdd(yOut, yHoriz[x+1], yVert[x+1], x%2 == 1)
				yOut = v
				yHoriz[x+2] = eh
				yVert[x+1] = ev
			}
			outCodec.WriteSample(lumaRowOut, x, yOut)

			if writeChroma && x%(1<<uint(outShiftX)) == 0 {
				outChromaCol := x >> uint(outShiftX)
				uOut := yuv[1] + p.OutOffset[1]
				vOut := yuv[2] + p.OutOffset[2]
				if p.Dither {
					uHoriz, uVert := sc.DitherErr[1], sc.DitherErr[4]
					vHoriz, vVert := sc.DitherErr[2], sc.DitherErr[5]
					toVert := outChromaCol%2 == 1
					var euh, euv, evh, evv int16
					uOut, euh, euv = ditherAdd(uOut, uHoriz[outChromaCol+1], uVert[outChromaCol+1], toVert)
					vOut, evh, evv = ditherAdd(vOut, vHoriz[outChromaCol+1], vVert[outChromaCol+1], toVert)
					uHoriz[outChromaCol+2] = euh
					uVert[outChromaCol+1] = euv
					vHoriz[outChromaCol+2] = evh
					vVert[outChromaCol+1] = evv
				}
				outCodec.WriteSample(uRowOut, outChromaCol, uOut)
				outCodec.WriteSample(vRowOut, outChromaCol, vOut)
			}
		}
	}
}
