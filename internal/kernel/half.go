package kernel

import (
	"github.com/markreidvfx/colorspace/internal/half"
	"github.com/markreidvfx/colorspace/internal/plan"
	"github.com/markreidvfx/colorspace/internal/scratch"
)

// HalfPlanes holds one GBR(A)PF16 frame's planes, in GBRA storage order
// (matching the pixfmt.GBRPF16/GBRAPF16 plane layout), as raw
// little-endian half-precision bit patterns.
type HalfPlanes struct {
	G, B, R, A []uint16 // A is nil when the format has no alpha plane.
}

func primaryMapFloat(m [3][3]float64, rgb [3]float32) [3]float32 {
	var out [3]float32
	for r := 0; r < 3; r++ {
		out[r] = float32(m[r][0])*rgb[0] + float32(m[r][1])*rgb[1] + float32(m[r][2])*rgb[2]
	}
	return out
}

// ConvertSliceHalf converts rows [rowStart, rowEnd) of a half-float
// GBR(A) frame: linearize with the input transfer's half LUT, apply the
// primary-mapping matrix (skipped when p.LRGB2LRGBPassthrough), then
// delinearize with the output transfer's half LUT. The alpha plane, when
// present, passes through unmodified - alpha is not a color sample. sc's
// HalfRGB rows are the linear-light pivot the column is carried through
// between the linearize and delinearize steps.
func ConvertSliceHalf(p *plan.Plan, sc *scratch.Manager, src, dst HalfPlanes, width, rowStart, rowEnd int) {
	stride := width
	for y := rowStart; y < rowEnd; y++ {
		off := y * stride
		for x := 0; x < width; x++ {
			i := off + x
			rBits, gBits, bBits := src.R[i], src.G[i], src.B[i]

			if p.RGB2RGBPassthrough {
				dst.R[i], dst.G[i], dst.B[i] = rBits, gBits, bBits
			} else if p.LRGB2LRGBPassthrough {
				dst.R[i] = p.DelinearizeHalfLUT[p.LinearizeHalfLUT[rBits]]
				dst.G[i] = p.DelinearizeHalfLUT[p.LinearizeHalfLUT[gBits]]
				dst.B[i] = p.DelinearizeHalfLUT[p.LinearizeHalfLUT[bBits]]
			} else {
				sc.HalfRGB[0][x] = p.LinearizeHalfLUT[rBits]
				sc.HalfRGB[1][x] = p.LinearizeHalfLUT[gBits]
				sc.HalfRGB[2][x] = p.LinearizeHalfLUT[bBits]
				linear := [3]float32{
					half.ToFloat32(sc.HalfRGB[0][x]),
					half.ToFloat32(sc.HalfRGB[1][x]),
					half.ToFloat32(sc.HalfRGB[2][x]),
				}
				mapped := primaryMapFloat(p.PrimaryMap, linear)
				sc.HalfRGB[0][x] = half.FromFloat32(mapped[0])
				sc.HalfRGB[1][x] = half.FromFloat32(mapped[1])
				sc.HalfRGB[2][x] = half.FromFloat32(mapped[2])
				dst.R[i] = p.DelinearizeHalfLUT[sc.HalfRGB[0][x]]
				dst.G[i] = p.DelinearizeHalfLUT[sc.HalfRGB[1][x]]
				dst.B[i] = p.DelinearizeHalfLUT[sc.HalfRGB[2][x]]
			}
			if dst.A != nil {
				if src.A != nil {
					dst.A[i] = src.A[i]
				} else {
					dst.A[i] = half.FromFloat32(1.0)
				}
			}
		}
	}
}
