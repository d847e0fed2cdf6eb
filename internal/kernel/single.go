package kernel

import (
	"github.com/markreidvfx/colorspace/internal/gammamodel"
	"github.com/markreidvfx/colorspace/internal/plan"
	"github.com/markreidvfx/colorspace/internal/scratch"
)

// SinglePlanes holds one GBR(A)PF32 frame's planes in GBRA storage order,
// as native float32.
type SinglePlanes struct {
	G, B, R, A []float32
}

// ConvertSliceSingle converts rows [rowStart, rowEnd) of a single-float
// GBR(A) frame. Unlike the integer and half-float pipelines it evaluates
// the transfer curves directly rather than through a LUT: a float32
// sample already has far more precision than any LUT granularity could
// add, so the LUT's only purpose elsewhere (avoiding a transcendental
// call per sample) doesn't apply. sc's FloatRGB rows are the linear-light
// pivot the column is carried through between the linearize and
// delinearize steps.
func ConvertSliceSingle(p *plan.Plan, sc *scratch.Manager, src, dst SinglePlanes, width, rowStart, rowEnd int) {
	inTag := gammamodel.Tag(p.InTransfer)
	outTag := gammamodel.Tag(p.OutTransfer)
	stride := width
	for y := rowStart; y < rowEnd; y++ {
		off := y * stride
		for x := 0; x < width; x++ {
			i := off + x
			sc.FloatRGB[0][x], sc.FloatRGB[1][x], sc.FloatRGB[2][x] = src.R[i], src.G[i], src.B[i]

			if !p.RGB2RGBPassthrough {
				for c := 0; c < 3; c++ {
					sc.FloatRGB[c][x] = gammamodel.Linearize(inTag, sc.FloatRGB[c][x])
				}
				if !p.LRGB2LRGBPassthrough {
					mapped := primaryMapFloat(p.PrimaryMap, [3]float32{sc.FloatRGB[0][x], sc.FloatRGB[1][x], sc.FloatRGB[2][x]})
					sc.FloatRGB[0][x], sc.FloatRGB[1][x], sc.FloatRGB[2][x] = mapped[0], mapped[1], mapped[2]
				}
				for c := 0; c < 3; c++ {
					sc.FloatRGB[c][x] = gammamodel.Delinearize(outTag, sc.FloatRGB[c][x])
				}
			}

			dst.R[i], dst.G[i], dst.B[i] = sc.FloatRGB[0][x], sc.FloatRGB[1][x], sc.FloatRGB[2][x]
			if dst.A != nil {
				if src.A != nil {
					dst.A[i] = src.A[i]
				} else {
					dst.A[i] = 1.0
				}
			}
		}
	}
}
