// Package pixfmt enumerates the pixel formats the converter understands
// and the plane geometry each one implies.
package pixfmt

// Kind distinguishes the three storage families the kernel pipelines
// handle: fixed-point planar YUV, half-float planar GBR(A), and
// single-float planar GBR(A).
type Kind int

const (
	KindYUV Kind = iota
	KindHalfFloat
	KindSingleFloat
)

// Format describes one supported pixel layout.
type Format struct {
	Name        string
	Kind        Kind
	BitDepth    int // per-sample bit depth for KindYUV; ignored otherwise.
	HasAlpha    bool
	ChromaShiftX int // log2 horizontal chroma subsampling, KindYUV only.
	ChromaShiftY int // log2 vertical chroma subsampling, KindYUV only.
}

// NumPlanes returns the number of planes the format is stored as.
func (f Format) NumPlanes() int {
	switch f.Kind {
	case KindYUV:
		return 3
	default:
		if f.HasAlpha {
			return 4
		}
		return 3
	}
}

// BytesPerSample returns the size of one sample in one plane.
func (f Format) BytesPerSample() int {
	switch f.Kind {
	case KindYUV:
		if f.BitDepth <= 8 {
			return 1
		}
		return 2
	case KindHalfFloat:
		return 2
	case KindSingleFloat:
		return 4
	}
	return 0
}

// ChromaPlaneDims returns the dimensions of a chroma plane for a frame of
// size (w,h) under this format's subsampling. For non-YUV formats this is
// the same as the luma/full-resolution plane.
func (f Format) ChromaPlaneDims(w, h int) (cw, ch int) {
	if f.Kind != KindYUV {
		return w, h
	}
	cw = (w + (1 << f.ChromaShiftX) - 1) >> f.ChromaShiftX
	ch = (h + (1 << f.ChromaShiftY) - 1) >> f.ChromaShiftY
	return cw, ch
}

var (
	YUV420P8  = Format{Name: "yuv420p", Kind: KindYUV, BitDepth: 8, ChromaShiftX: 1, ChromaShiftY: 1}
	YUV422P8  = Format{Name: "yuv422p", Kind: KindYUV, BitDepth: 8, ChromaShiftX: 1, ChromaShiftY: 0}
	YUV444P8  = Format{Name: "yuv444p", Kind: KindYUV, BitDepth: 8, ChromaShiftX: 0, ChromaShiftY: 0}
	YUV420P10 = Format{Name: "yuv420p10le", Kind: KindYUV, BitDepth: 10, ChromaShiftX: 1, ChromaShiftY: 1}
	YUV422P10 = Format{Name: "yuv422p10le", Kind: KindYUV, BitDepth: 10, ChromaShiftX: 1, ChromaShiftY: 0}
	YUV444P10 = Format{Name: "yuv444p10le", Kind: KindYUV, BitDepth: 10, ChromaShiftX: 0, ChromaShiftY: 0}
	YUV420P12 = Format{Name: "yuv420p12le", Kind: KindYUV, BitDepth: 12, ChromaShiftX: 1, ChromaShiftY: 1}
	YUV422P12 = Format{Name: "yuv422p12le", Kind: KindYUV, BitDepth: 12, ChromaShiftX: 1, ChromaShiftY: 0}
	YUV444P12 = Format{Name: "yuv444p12le", Kind: KindYUV, BitDepth: 12, ChromaShiftX: 0, ChromaShiftY: 0}

	GBRPF16  = Format{Name: "gbrpf16le", Kind: KindHalfFloat, HasAlpha: false}
	GBRAPF16 = Format{Name: "gbrapf16le", Kind: KindHalfFloat, HasAlpha: true}
	GBRPF32  = Format{Name: "gbrpf32le", Kind: KindSingleFloat, HasAlpha: false}
	GBRAPF32 = Format{Name: "gbrapf32le", Kind: KindSingleFloat, HasAlpha: true}
)

// ByName returns the registered format with the given name.
func ByName(name string) (Format, bool) {
	for _, f := range All {
		if f.Name == name {
			return f, true
		}
	}
	return Format{}, false
}

// All lists every format this module supports.
var All = []Format{
	YUV420P8, YUV422P8, YUV444P8,
	YUV420P10, YUV422P10, YUV444P10,
	YUV420P12, YUV422P12, YUV444P12,
	GBRPF16, GBRAPF16,
	GBRPF32, GBRAPF32,
}

// DepthIndex returns the 0/1/2 index for 8/10/12-bit depth the planner's
// static kernel dispatch table is keyed on. ok is false for any other
// depth.
func DepthIndex(depth int) (int, bool) {
	switch depth {
	case 8:
		return 0, true
	case 10:
		return 1, true
	case 12:
		return 2, true
	default:
		return 0, false
	}
}

// SubsamplingIndex returns the 0/1/2 index (444/422/420) the planner's
// static kernel dispatch table is keyed on.
func (f Format) SubsamplingIndex() int {
	switch {
	case f.ChromaShiftX == 0 && f.ChromaShiftY == 0:
		return 0
	case f.ChromaShiftX == 1 && f.ChromaShiftY == 0:
		return 1
	default:
		return 2
	}
}
