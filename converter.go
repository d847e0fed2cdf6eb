package colorspace

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"github.com/markreidvfx/colorspace/colorimetry"
	"github.com/markreidvfx/colorspace/internal/kernel"
	"github.com/markreidvfx/colorspace/internal/plan"
	"github.com/markreidvfx/colorspace/internal/scratch"
	"github.com/markreidvfx/colorspace/pixfmt"
)

// Converter converts frames between pixel formats and colorimetries. It
// is not safe for concurrent use by multiple goroutines calling Convert
// at once (the internal Planner cache and scratch buffers are
// unsynchronized), but a single Converter reused across many sequential
// Convert calls on same-sized, similarly-configured frames is the
// intended and efficient usage: the planner and LUTs it built for the
// previous frame are reused whenever the relevant inputs haven't
// changed, and the scratch buffers resize in place instead of
// reallocating.
type Converter struct {
	opts    Options
	planner plan.Planner
	scratch []*scratch.Manager // one per parallel slice, grown lazily.

	warnedRange bool
}

// NewConverter returns a Converter configured by opts.
func NewConverter(opts Options) *Converter {
	return &Converter{opts: opts}
}

func (c *Converter) logger() *slog.Logger {
	if c.opts.Logger != nil {
		return c.opts.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// wrapPlanError translates a sentinel error returned by internal/plan or
// internal/scratch into this package's *Error taxonomy.
func wrapPlanError(err error) error {
	switch {
	case errors.Is(err, plan.ErrInvalidFormat):
		return &Error{Kind: ErrInvalidFormat, Message: err.Error()}
	case errors.Is(err, plan.ErrInvalidDepth):
		return &Error{Kind: ErrInvalidDepth, Message: err.Error()}
	case errors.Is(err, plan.ErrInvalidSubsampling):
		return &Error{Kind: ErrInvalidSubsampling, Message: err.Error()}
	case errors.Is(err, plan.ErrFamilyMismatch):
		return &Error{Kind: ErrFamilyMismatch, Message: err.Error()}
	case errors.Is(err, plan.ErrUnknownPrimaries):
		return &Error{Kind: ErrUnknownPrimaries, Message: err.Error()}
	case errors.Is(err, plan.ErrUnknownTransfer):
		return &Error{Kind: ErrUnknownTransfer, Message: err.Error()}
	case errors.Is(err, plan.ErrUnknownMatrix):
		return &Error{Kind: ErrUnknownMatrix, Message: err.Error()}
	case errors.Is(err, plan.ErrInvalidRange):
		return &Error{Kind: ErrInvalidRange, Message: err.Error()}
	case errors.Is(err, plan.ErrOddDimensions):
		return &Error{Kind: ErrOddDimensions, Message: err.Error()}
	case errors.Is(err, scratch.ErrOutOfMemory):
		return &Error{Kind: ErrOutOfMemory, Message: err.Error()}
	default:
		return &Error{Kind: ErrUnknown, Message: err.Error()}
	}
}

// Convert converts src into dst. Both frames must already be allocated at
// matching dimensions (see NewFrame); Convert never resizes or resamples
// spatially, only colorimetrically.
func (c *Converter) Convert(dst, src *Frame) error {
	if src.Width != dst.Width || src.Height != dst.Height {
		return &Error{Kind: ErrDimensionMismatch, Message: fmt.Sprintf(
			"colorspace: source %dx%d does not match destination %dx%d",
			src.Width, src.Height, dst.Width, dst.Height)}
	}

	if (src.Meta.Range == colorimetry.RangeUnspecified || dst.Meta.Range == colorimetry.RangeUnspecified) && !c.warnedRange {
		c.warnedRange = true
		c.logger().Warn("range unspecified; assuming TV")
	}

	inMeta := src.Meta.Resolve(src.Width, src.Height)
	outMeta := dst.Meta.Resolve(dst.Width, dst.Height)

	planOpts := plan.Options{WhitePointAdapt: c.opts.WhitePointAdapt, Dither: c.opts.Dither, Fast: c.opts.Fast}
	p, warnings, err := c.planner.Build(inMeta, outMeta, src.Format, dst.Format, src.Width, src.Height, planOpts)
	if err != nil {
		return wrapPlanError(err)
	}
	for _, w := range warnings {
		c.logger().Warn(w)
	}

	switch {
	case src.Format.Kind == pixfmt.KindYUV && dst.Format.Kind == pixfmt.KindYUV:
		return c.convertYUV(p, dst, src)
	case src.Format.Kind == pixfmt.KindHalfFloat && dst.Format.Kind == pixfmt.KindHalfFloat:
		return c.convertHalf(p, dst, src)
	case src.Format.Kind == pixfmt.KindSingleFloat && dst.Format.Kind == pixfmt.KindSingleFloat:
		return c.convertSingle(p, dst, src)
	default:
		return &Error{Kind: ErrFamilyMismatch, Message: fmt.Sprintf(
			"colorspace: converting between %s and %s is not supported (cross-kind conversion requires an explicit intermediate frame)",
			src.Format.Name, dst.Format.Name)}
	}
}

// scratchFor returns the scratch.Manager owned by slice index i, growing
// c.scratch and resizing the manager for width as needed. Buffers persist
// across Convert calls; they only reallocate when width actually changes.
func (c *Converter) scratchFor(i, width int) (*scratch.Manager, error) {
	for len(c.scratch) <= i {
		c.scratch = append(c.scratch, scratch.NewManager())
	}
	sc := c.scratch[i]
	if err := sc.Resize(width); err != nil {
		return nil, err
	}
	sc.ResetDither()
	return sc, nil
}

// slices partitions [0,height) into n chroma-row-aligned ranges following
// h1 = 2*floor(j*ceil(H/2)/n), h2 = 2*floor((j+1)*ceil(H/2)/n), so every
// goroutine owns whole pairs of rows and neither 420 nor 422 chroma
// planes ever get written from two goroutines at once.
func slices(height, n int) [][2]int {
	if n < 1 {
		n = 1
	}
	half := (height + 1) / 2
	out := make([][2]int, 0, n)
	for j := 0; j < n; j++ {
		h1 := 2 * (j * half / n)
		h2 := 2 * ((j + 1) * half / n)
		if h2 > height {
			h2 = height
		}
		if h1 >= h2 {
			continue
		}
		out = append(out, [2]int{h1, h2})
	}
	return out
}

func (c *Converter) parallelism() int {
	if c.opts.Parallelism > 0 {
		return c.opts.Parallelism
	}
	return runtime.GOMAXPROCS(0)
}

func (c *Converter) convertYUV(p *plan.Plan, dst, src *Frame) error {
	srcPlanes := kernel.Planes{
		Y: src.Planes[0], U: src.Planes[1], V: src.Planes[2],
		StrideY: src.Stride[0], StrideUV: src.Stride[1],
	}
	dstPlanes := kernel.Planes{
		Y: dst.Planes[0], U: dst.Planes[1], V: dst.Planes[2],
		StrideY: dst.Stride[0], StrideUV: dst.Stride[1],
	}

	ranges := slices(src.Height, c.parallelism())
	managers := make([]*scratch.Manager, len(ranges))
	for i := range ranges {
		sc, err := c.scratchFor(i, src.Width)
		if err != nil {
			return wrapPlanError(err)
		}
		managers[i] = sc
	}

	var wg sync.WaitGroup
	for i, rng := range ranges {
		wg.Add(1)
		go func(sc *scratch.Manager, rowStart, rowEnd int) {
			defer wg.Done()
			kernel.ConvertSliceInt(p, sc, srcPlanes, dstPlanes, src.Width, rowStart, rowEnd)
		}(managers[i], rng[0], rng[1])
	}
	wg.Wait()
	return nil
}

func (c *Converter) convertHalf(p *plan.Plan, dst, src *Frame) error {
	srcPlanes := kernel.HalfPlanes{
		G: bytesToUint16(src.Planes[0]), B: bytesToUint16(src.Planes[1]), R: bytesToUint16(src.Planes[2]),
	}
	dstPlanes := kernel.HalfPlanes{
		G: bytesToUint16(dst.Planes[0]), B: bytesToUint16(dst.Planes[1]), R: bytesToUint16(dst.Planes[2]),
	}
	if src.Format.HasAlpha {
		srcPlanes.A = bytesToUint16(src.Planes[3])
	}
	if dst.Format.HasAlpha {
		dstPlanes.A = bytesToUint16(dst.Planes[3])
	}

	ranges := slices(src.Height, c.parallelism())
	managers := make([]*scratch.Manager, len(ranges))
	for i := range ranges {
		sc, err := c.scratchFor(i, src.Width)
		if err != nil {
			return wrapPlanError(err)
		}
		managers[i] = sc
	}

	var wg sync.WaitGroup
	for i, rng := range ranges {
		wg.Add(1)
		go func(sc *scratch.Manager, rowStart, rowEnd int) {
			defer wg.Done()
			kernel.ConvertSliceHalf(p, sc, srcPlanes, dstPlanes, src.Width, rowStart, rowEnd)
		}(managers[i], rng[0], rng[1])
	}
	wg.Wait()
	return nil
}

func (c *Converter) convertSingle(p *plan.Plan, dst, src *Frame) error {
	srcPlanes := kernel.SinglePlanes{
		G: bytesToFloat32(src.Planes[0]), B: bytesToFloat32(src.Planes[1]), R: bytesToFloat32(src.Planes[2]),
	}
	dstPlanes := kernel.SinglePlanes{
		G: bytesToFloat32(dst.Planes[0]), B: bytesToFloat32(dst.Planes[1]), R: bytesToFloat32(dst.Planes[2]),
	}
	if src.Format.HasAlpha {
		srcPlanes.A = bytesToFloat32(src.Planes[3])
	}
	if dst.Format.HasAlpha {
		dstPlanes.A = bytesToFloat32(dst.Planes[3])
	}

	ranges := slices(src.Height, c.parallelism())
	managers := make([]*scratch.Manager, len(ranges))
	for i := range ranges {
		sc, err := c.scratchFor(i, src.Width)
		if err != nil {
			return wrapPlanError(err)
		}
		managers[i] = sc
	}

	var wg sync.WaitGroup
	for i, rng := range ranges {
		wg.Add(1)
		go func(sc *scratch.Manager, rowStart, rowEnd int) {
			defer wg.Done()
			kernel.ConvertSliceSingle(p, sc, srcPlanes, dstPlanes, src.Width, rowStart, rowEnd)
		}(managers[i], rng[0], rng[1])
	}
	wg.Wait()
	return nil
}
