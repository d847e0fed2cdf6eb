// Package scratch owns the per-instance intermediate buffers the kernel
// pipelines need while converting one frame: the RGB rows used as a
// pivot between YUV and RGB/XYZ space, and the Floyd-Steinberg dither
// error rows carried from one output row to the next.
//
// Unlike a global bucketed sync.Pool, a Manager is owned by
// a single Converter and resizes in place only when the frame's width
// actually changes, so steady-state conversion of same-sized frames never
// allocates.
package scratch

import "fmt"

// maxWidth bounds the row width a Manager will attempt to allocate.
// Nothing in this package can reach it through ordinary frame sizes; it
// exists so a corrupt or adversarial width value fails with ErrOutOfMemory
// instead of an unrecoverable runtime allocation panic.
const maxWidth = 1 << 20

// ditherPad is the number of guard elements before and after the usable
// range of a dither error row. The integer kernel stores column x's error
// at row[x+1] and carries it forward into row[x+2], so every row needs one
// element of headroom in front plus tailroom for the forward tap;
// rounding that up to a 4-element pad keeps the offsets simple.
const ditherPad = 4

// Manager holds the scratch buffers for one Converter. All buffers are
// indexed by column; a dither row's usable range is row[1 : 1+width],
// with row[0] and row[width+1:] reserved as out-of-bounds guard cells so
// the error-diffusion taps never need a bounds check.
type Manager struct {
	width int

	// IntRGB holds CoeffScale-fixed-point linear RGB, one row at a time,
	// used by the integer kernel.
	IntRGB [3][]int16

	// HalfRGB holds half-precision-bit-pattern linear RGB rows, used by
	// the half-float kernel.
	HalfRGB [3][]uint16

	// FloatRGB holds float32 linear RGB rows, used by the single-float
	// kernel.
	FloatRGB [3][]float32

	// DitherErr holds the six Floyd-Steinberg-banding error-diffusion
	// rows: DitherErr[0:3] carry the horizontal (same row, next column)
	// error for Y, U, V in that order, and DitherErr[3:6] carry the
	// vertical (next row, same column) error for Y, U, V. The vertical
	// rows are read and overwritten in place as each row is processed, so
	// no explicit current/next buffer swap is needed between rows.
	DitherErr [6][]int16
}

// NewManager returns an empty Manager; call Resize before use.
func NewManager() *Manager {
	return &Manager{}
}

// Resize resizes m's buffers so they can hold a row of the given pixel
// width, if they are not already. Existing buffer contents are not
// preserved across a resize; a resize only happens between frames of
// different dimensions, never mid-frame. It returns ErrOutOfMemory rather
// than allocating for a width that cannot be a real frame dimension.
func (m *Manager) Resize(width int) error {
	if width < 0 || width > maxWidth {
		return fmt.Errorf("%w: width %d", ErrOutOfMemory, width)
	}
	if m.width == width {
		return nil
	}
	m.width = width
	for i := range m.IntRGB {
		m.IntRGB[i] = make([]int16, width)
	}
	for i := range m.HalfRGB {
		m.HalfRGB[i] = make([]uint16, width)
	}
	for i := range m.FloatRGB {
		m.FloatRGB[i] = make([]float32, width)
	}
	for i := range m.DitherErr {
		m.DitherErr[i] = make([]int16, width+ditherPad)
	}
	return nil
}

// ResetDither zeroes the dither error rows. Called on each slice's Manager
// at the start of every Convert so error from a previous frame
// never leaks into the first row of a new one.
func (m *Manager) ResetDither() {
	for i := range m.DitherErr {
		row := m.DitherErr[i]
		for j := range row {
			row[j] = 0
		}
	}
}
