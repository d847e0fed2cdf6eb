// Package plan turns a pair of resolved colorimetry descriptions and
// pixel formats into a Plan: the quantized matrices, gamma LUTs and
// passthrough flags the kernel pipelines read on every pixel. Building a
// Plan is comparatively expensive (a 65536-entry half-float LUT is not
// free), so a Planner caches each resource independently and only rebuilds
// the ones whose inputs actually changed since the previous call -
// mirroring how vf_colorspace.c tracks its primaries/transfer/luma-matrix
// caches separately instead of invalidating everything whenever any one
// parameter changes.
package plan

import (
	"fmt"

	"github.com/markreidvfx/colorspace/colorimetry"
	"github.com/markreidvfx/colorspace/internal/colormath"
	"github.com/markreidvfx/colorspace/internal/gammamodel"
	"github.com/markreidvfx/colorspace/internal/yuvmatrix"
	"github.com/markreidvfx/colorspace/pixfmt"
)

// WhitePointAdapt selects the chromatic adaptation model used when
// mapping between primaries with different white points.
type WhitePointAdapt = colormath.WhitePointAdaptation

const (
	AdaptIdentity = colormath.AdaptIdentity
	AdaptBradford = colormath.AdaptBradford
	AdaptVonKries = colormath.AdaptVonKries
)

// Options carries the user-controllable knobs that affect planning beyond
// the input/output colorimetry and format themselves.
type Options struct {
	WhitePointAdapt WhitePointAdapt
	Dither          bool
	Fast            bool // permit the YUV->YUV fast path even when primaries differ, skipping primary mapping.
}

// simdLanes is the width pixel-parallel kernel loops are written against;
// coefficients are replicated across all lanes so a loop body can always
// index coeff[row][col][lane] regardless of how many lanes it actually
// uses.
const simdLanes = 8

func quantizeMat3(m colormath.Mat3) [3][3]int32 {
	var out [3][3]int32
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = int32(m[r][c]*yuvmatrix.CoeffScale + 0.5)
		}
	}
	return out
}

func fanOut(m [3][3]int32) [3][3][simdLanes]int32 {
	var out [3][3][simdLanes]int32
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			for l := 0; l < simdLanes; l++ {
				out[r][c][l] = m[r][c]
			}
		}
	}
	return out
}

// Plan holds everything the kernel pipelines need to convert one frame.
// It is immutable once built and safe to share across the goroutines a
// Converter fans a frame's rows out to.
type Plan struct {
	InFormat, OutFormat pixfmt.Format
	InMeta, OutMeta     colorimetry.Metadata

	// Fixed-point paths (integer kernel).
	YUV2RGB  [3][3][simdLanes]int32
	RGB2YUV  [3][3][simdLanes]int32
	YUV2YUV  [3][3][simdLanes]int32
	InOffset [3]int32
	OutOffset [3]int32

	LinearizeIntLUT   *[gammamodel.IntLUTSize]int16
	DelinearizeIntLUT *[gammamodel.IntLUTSize]int16

	// Half-float path.
	LinearizeHalfLUT   *[gammamodel.HalfLUTSize]uint16
	DelinearizeHalfLUT *[gammamodel.HalfLUTSize]uint16

	// Shared by the half-float and single-float paths.
	PrimaryMap colormath.Mat3

	// PrimaryMapInt is PrimaryMap quantized to CoeffScale fixed point, for
	// the integer kernel's linear-light RGB->RGB step.
	PrimaryMapInt [3][3][simdLanes]int32

	// Single-float path evaluates transfer curves directly; it only
	// needs to know which curve, not a LUT.
	InTransfer, OutTransfer colorimetry.Transfer

	// Passthrough/fast-path flags.
	LRGB2LRGBPassthrough bool // primary map is the identity.
	RGB2RGBPassthrough   bool // Fast, or LRGB2LRGBPassthrough AND no transfer change.
	YUV2YUVFastMode      bool // RGB2RGBPassthrough AND same subsampling; compose YUV->YUV directly.
	YUV2YUVPassthrough   bool // YUV2YUVFastMode AND coefficients are the identity.

	Dither bool

	InDepthIndex, InSubsamplingIndex   int
	OutDepthIndex, OutSubsamplingIndex int
}

// Planner builds Plans, caching the expensive per-resource intermediates
// across calls.
type Planner struct {
	havePrimaryMap          bool
	cachedInPrimaries       colorimetry.Primaries
	cachedOutPrimaries      colorimetry.Primaries
	cachedWPAdapt           WhitePointAdapt
	cachedPrimaryMap        colormath.Mat3
	cachedPrimaryMapOK      bool

	haveInLUT     bool
	cachedInTrc   colorimetry.Transfer
	inLinLUT      [gammamodel.IntLUTSize]int16
	inDelinLUT    [gammamodel.IntLUTSize]int16
	inLinHalfLUT  [gammamodel.HalfLUTSize]uint16
	inDelinHalfLUT [gammamodel.HalfLUTSize]uint16

	haveOutLUT    bool
	cachedOutTrc  colorimetry.Transfer
	outLinLUT     [gammamodel.IntLUTSize]int16
	outDelinLUT   [gammamodel.IntLUTSize]int16
	outLinHalfLUT [gammamodel.HalfLUTSize]uint16
	outDelinHalfLUT [gammamodel.HalfLUTSize]uint16
}

func (p *Planner) primaryMap(in, out colorimetry.Primaries, adapt WhitePointAdapt) (colormath.Mat3, bool) {
	if p.havePrimaryMap && p.cachedInPrimaries == in && p.cachedOutPrimaries == out && p.cachedWPAdapt == adapt {
		return p.cachedPrimaryMap, p.cachedPrimaryMapOK
	}
	m, ok := colormath.PrimaryMap(in, out, adapt)
	p.havePrimaryMap = true
	p.cachedInPrimaries, p.cachedOutPrimaries, p.cachedWPAdapt = in, out, adapt
	p.cachedPrimaryMap, p.cachedPrimaryMapOK = m, ok
	return m, ok
}

func (p *Planner) ensureInLUT(trc colorimetry.Transfer) {
	if p.haveInLUT && p.cachedInTrc == trc {
		return
	}
	p.cachedInTrc = trc
	p.haveInLUT = true
	p.inLinLUT = gammamodel.BuildLinearizeIntLUT(gammamodel.Tag(trc))
	p.inDelinLUT = gammamodel.BuildDelinearizeIntLUT(gammamodel.Tag(trc))
	p.inLinHalfLUT = gammamodel.BuildLinearizeHalfLUT(gammamodel.Tag(trc))
	p.inDelinHalfLUT = gammamodel.BuildDelinearizeHalfLUT(gammamodel.Tag(trc))
}

func (p *Planner) ensureOutLUT(trc colorimetry.Transfer) {
	if p.haveOutLUT && p.cachedOutTrc == trc {
		return
	}
	p.cachedOutTrc = trc
	p.haveOutLUT = true
	p.outLinLUT = gammamodel.BuildLinearizeIntLUT(gammamodel.Tag(trc))
	p.outDelinLUT = gammamodel.BuildDelinearizeIntLUT(gammamodel.Tag(trc))
	p.outLinHalfLUT = gammamodel.BuildLinearizeHalfLUT(gammamodel.Tag(trc))
	p.outDelinHalfLUT = gammamodel.BuildDelinearizeHalfLUT(gammamodel.Tag(trc))
}

func validSubsampling(f pixfmt.Format) bool {
	if f.Kind != pixfmt.KindYUV {
		return true
	}
	switch [2]int{f.ChromaShiftX, f.ChromaShiftY} {
	case [2]int{0, 0}, [2]int{1, 0}, [2]int{1, 1}:
		return true
	default:
		return false
	}
}

func validKind(k pixfmt.Kind) bool {
	return k == pixfmt.KindYUV || k == pixfmt.KindHalfFloat || k == pixfmt.KindSingleFloat
}

func validRange(r colorimetry.Range) bool {
	return r == colorimetry.RangeLimited || r == colorimetry.RangeFull
}

// Build computes a Plan for converting frames of width x height with
// inMeta/inFmt to outMeta/outFmt under opts. All errors originate here
// (or in scratch.Manager.Resize) and are returned before any slice is
// dispatched to a worker: an unresolvable primaries/transfer/matrix tag,
// a family mismatch, odd dimensions, or an unsupported depth/subsampling
// combination all fail the whole Build call rather than degrading to a
// fallback, since any of them would silently corrupt every pixel rather
// than just one frame. Only an unspecified sample range is a
// warn-and-continue case, and Metadata.Resolve has already turned that
// into a concrete default before Build ever sees it.
func (p *Planner) Build(inMeta, outMeta colorimetry.Metadata, inFmt, outFmt pixfmt.Format, width, height int, opts Options) (*Plan, []string, error) {
	var warnings []string

	if !validKind(inFmt.Kind) || !validKind(outFmt.Kind) {
		return nil, nil, fmt.Errorf("%w: in=%v out=%v", ErrInvalidFormat, inFmt.Kind, outFmt.Kind)
	}
	if inFmt.Kind != outFmt.Kind {
		return nil, nil, fmt.Errorf("%w: input is %s, output is %s", ErrFamilyMismatch, inFmt.Name, outFmt.Name)
	}
	if !validRange(inMeta.Range) {
		return nil, nil, fmt.Errorf("%w: input range %d", ErrInvalidRange, inMeta.Range)
	}
	if !validRange(outMeta.Range) {
		return nil, nil, fmt.Errorf("%w: output range %d", ErrInvalidRange, outMeta.Range)
	}
	if !validSubsampling(inFmt) || !validSubsampling(outFmt) {
		return nil, nil, fmt.Errorf("%w: in=(%d,%d) out=(%d,%d)", ErrInvalidSubsampling,
			inFmt.ChromaShiftX, inFmt.ChromaShiftY, outFmt.ChromaShiftX, outFmt.ChromaShiftY)
	}
	needEvenW := inFmt.ChromaShiftX > 0 || outFmt.ChromaShiftX > 0
	needEvenH := inFmt.ChromaShiftY > 0 || outFmt.ChromaShiftY > 0
	if (needEvenW && width%2 != 0) || (needEvenH && height%2 != 0) {
		return nil, nil, fmt.Errorf("%w: %dx%d", ErrOddDimensions, width, height)
	}

	plan := &Plan{
		InFormat: inFmt, OutFormat: outFmt,
		InMeta: inMeta, OutMeta: outMeta,
		InTransfer: inMeta.Transfer, OutTransfer: outMeta.Transfer,
		Dither: inFmt.Kind == pixfmt.KindYUV && outFmt.Kind == pixfmt.KindYUV && opts.Dither,
	}

	if inFmt.Kind == pixfmt.KindYUV {
		idx, ok := pixfmt.DepthIndex(inFmt.BitDepth)
		if !ok {
			return nil, nil, fmt.Errorf("%w: input bit depth %d", ErrInvalidDepth, inFmt.BitDepth)
		}
		plan.InDepthIndex = idx
		plan.InSubsamplingIndex = inFmt.SubsamplingIndex()
	}
	if outFmt.Kind == pixfmt.KindYUV {
		idx, ok := pixfmt.DepthIndex(outFmt.BitDepth)
		if !ok {
			return nil, nil, fmt.Errorf("%w: output bit depth %d", ErrInvalidDepth, outFmt.BitDepth)
		}
		plan.OutDepthIndex = idx
		plan.OutSubsamplingIndex = outFmt.SubsamplingIndex()
	}

	if !gammamodel.Known(gammamodel.Tag(inMeta.Transfer)) {
		return nil, nil, fmt.Errorf("%w: input transfer %d", ErrUnknownTransfer, inMeta.Transfer)
	}
	if !gammamodel.Known(gammamodel.Tag(outMeta.Transfer)) {
		return nil, nil, fmt.Errorf("%w: output transfer %d", ErrUnknownTransfer, outMeta.Transfer)
	}

	primaryMap, primariesOK := p.primaryMap(inMeta.Primaries, outMeta.Primaries, opts.WhitePointAdapt)
	if !primariesOK {
		return nil, nil, fmt.Errorf("%w: in=%d out=%d", ErrUnknownPrimaries, inMeta.Primaries, outMeta.Primaries)
	}
	plan.PrimaryMap = primaryMap
	plan.PrimaryMapInt = fanOut(quantizeMat3(primaryMap))

	krIn, kbIn, okIn := colorimetry.LumaCoefficients(inMeta.Matrix)
	if !okIn {
		return nil, nil, fmt.Errorf("%w: input matrix %d", ErrUnknownMatrix, inMeta.Matrix)
	}
	krOut, kbOut, okOut := colorimetry.LumaCoefficients(outMeta.Matrix)
	if !okOut {
		return nil, nil, fmt.Errorf("%w: output matrix %d", ErrUnknownMatrix, outMeta.Matrix)
	}

	yuv2rgb := yuvmatrix.YUV2RGB(krIn, kbIn)
	rgb2yuv := yuvmatrix.RGB2YUV(krOut, kbOut)

	if inFmt.Kind == pixfmt.KindYUV {
		plan.YUV2RGB = fanOut(yuvmatrix.QuantizeYUV2RGB(yuv2rgb, inFmt.BitDepth, inMeta.Range))
		luma, chroma := yuvmatrix.Ranges(inMeta.Range, inFmt.BitDepth)
		plan.InOffset = [3]int32{luma.Offset, chroma.Offset, chroma.Offset}
	}
	if outFmt.Kind == pixfmt.KindYUV {
		plan.RGB2YUV = fanOut(yuvmatrix.QuantizeRGB2YUV(rgb2yuv, outFmt.BitDepth, outMeta.Range))
		luma, chroma := yuvmatrix.Ranges(outMeta.Range, outFmt.BitDepth)
		plan.OutOffset = [3]int32{luma.Offset, chroma.Offset, chroma.Offset}
	}

	// Passthrough/fast-mode flags, mirroring vf_colorspace.c's
	// create_filtergraph dependency chain: primary mapping is only valid
	// in linear light, so RGB2RGBPassthrough - which governs whether the
	// gamma step can be skipped - may only claim the primaries are a
	// no-op when they genuinely are (or the caller has explicitly asked
	// Fast to force the issue, matching vf_colorspace.c's "fast" option).
	// YUV2YUVFastMode inherits that same requirement, since it composes
	// yuv2rgb and rgb2yuv directly with no primary-mapping term at all.
	plan.LRGB2LRGBPassthrough = primaryMap == colormath.Identity3
	plan.RGB2RGBPassthrough = opts.Fast || (plan.LRGB2LRGBPassthrough && inMeta.Transfer == outMeta.Transfer)

	sameSubsampling := inFmt.Kind == pixfmt.KindYUV && outFmt.Kind == pixfmt.KindYUV &&
		inFmt.SubsamplingIndex() == outFmt.SubsamplingIndex()
	if plan.RGB2RGBPassthrough && sameSubsampling {
		plan.YUV2YUVFastMode = true
		plan.YUV2YUV = fanOut(yuvmatrix.ComposeYUV2YUV(yuv2rgb, rgb2yuv,
			inFmt.BitDepth, outFmt.BitDepth, inMeta.Range, outMeta.Range))
		plan.YUV2YUVPassthrough = inMeta.Matrix == outMeta.Matrix &&
			inFmt.BitDepth == outFmt.BitDepth && inMeta.Range == outMeta.Range
	}

	if inFmt.Kind == pixfmt.KindYUV || outFmt.Kind == pixfmt.KindYUV {
		p.ensureInLUT(inMeta.Transfer)
		p.ensureOutLUT(outMeta.Transfer)
		plan.LinearizeIntLUT = &p.inLinLUT
		plan.DelinearizeIntLUT = &p.outDelinLUT
	}
	if inFmt.Kind == pixfmt.KindHalfFloat || outFmt.Kind == pixfmt.KindHalfFloat {
		p.ensureInLUT(inMeta.Transfer)
		p.ensureOutLUT(outMeta.Transfer)
		plan.LinearizeHalfLUT = &p.inLinHalfLUT
		plan.DelinearizeHalfLUT = &p.outDelinHalfLUT
	}

	return plan, warnings, nil
}
