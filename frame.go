package colorspace

import (
	"fmt"

	"github.com/markreidvfx/colorspace/colorimetry"
	"github.com/markreidvfx/colorspace/pixfmt"
)

// Frame is one image's worth of planar pixel data plus the colorimetry
// metadata describing how to interpret it. Planes are stored row-major
// with Stride bytes between rows; Stride may exceed the tightly-packed
// row size to allow callers to align rows without an extra copy.
type Frame struct {
	Format pixfmt.Format
	Meta   colorimetry.Metadata
	Width  int
	Height int

	// Planes holds one []byte per plane, in the order pixfmt.Format
	// documents for that format's Kind (Y,U,V for YUV; G,B,R,[A] for
	// float formats).
	Planes [4][]byte
	// Stride holds the byte stride of the corresponding Planes entry.
	Stride [4]int
}

// NewFrame allocates a Frame of the given format and dimensions with
// tightly packed rows (Stride equal to the plane's row size). Sample
// values are left zeroed.
func NewFrame(format pixfmt.Format, meta colorimetry.Metadata, width, height int) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, &Error{Kind: ErrInvalidDimensions, Message: fmt.Sprintf("invalid frame size %dx%d", width, height)}
	}
	f := &Frame{Format: format, Meta: meta, Width: width, Height: height}
	n := format.NumPlanes()
	for i := 0; i < n; i++ {
		w, h := width, height
		if i == 1 || i == 2 {
			w, h = format.ChromaPlaneDims(width, height)
		}
		stride := w * format.BytesPerSample()
		f.Stride[i] = stride
		f.Planes[i] = make([]byte, stride*h)
	}
	return f, nil
}

// PlaneDims returns the pixel dimensions of plane index, accounting for
// chroma subsampling.
func (f *Frame) PlaneDims(index int) (w, h int) {
	if f.Format.Kind != pixfmt.KindYUV || index == 0 || index == 3 {
		return f.Width, f.Height
	}
	return f.Format.ChromaPlaneDims(f.Width, f.Height)
}
