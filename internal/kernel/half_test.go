package kernel

import (
	"testing"

	"github.com/markreidvfx/colorspace/colorimetry"
	"github.com/markreidvfx/colorspace/internal/half"
	"github.com/markreidvfx/colorspace/internal/plan"
	"github.com/markreidvfx/colorspace/internal/scratch"
	"github.com/markreidvfx/colorspace/pixfmt"
)

func TestConvertSliceHalfPassthroughIsIdentity(t *testing.T) {
	var planner plan.Planner
	meta := bt709Meta()
	p, _, err := planner.Build(meta, meta, pixfmt.GBRPF16, pixfmt.GBRPF16, 4, 2, plan.Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !p.RGB2RGBPassthrough {
		t.Fatal("expected a full RGB passthrough plan")
	}

	width, height := 4, 2
	n := width * height
	src := HalfPlanes{
		G: make([]uint16, n), B: make([]uint16, n), R: make([]uint16, n),
	}
	for i := 0; i < n; i++ {
		src.R[i] = half.FromFloat32(0.1 * float32(i))
		src.G[i] = half.FromFloat32(0.2 * float32(i))
		src.B[i] = half.FromFloat32(0.3 * float32(i))
	}
	dst := HalfPlanes{G: make([]uint16, n), B: make([]uint16, n), R: make([]uint16, n)}

	sc := scratch.NewManager()
	if err := sc.Resize(width); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	ConvertSliceHalf(p, sc, src, dst, width, 0, height)

	for i := 0; i < n; i++ {
		if dst.R[i] != src.R[i] || dst.G[i] != src.G[i] || dst.B[i] != src.B[i] {
			t.Fatalf("pixel %d: got (%v,%v,%v), want identity (%v,%v,%v)",
				i, dst.R[i], dst.G[i], dst.B[i], src.R[i], src.G[i], src.B[i])
		}
	}
}

func TestConvertSliceHalfAlphaPassesThrough(t *testing.T) {
	var planner plan.Planner
	meta := bt709Meta()
	p, _, err := planner.Build(meta, meta, pixfmt.GBRAPF16, pixfmt.GBRAPF16, 4, 2, plan.Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	n := 4
	src := HalfPlanes{
		G: make([]uint16, n), B: make([]uint16, n), R: make([]uint16, n), A: make([]uint16, n),
	}
	for i := range src.A {
		src.A[i] = half.FromFloat32(0.5)
	}
	dst := HalfPlanes{G: make([]uint16, n), B: make([]uint16, n), R: make([]uint16, n), A: make([]uint16, n)}
	sc := scratch.NewManager()
	if err := sc.Resize(n); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	ConvertSliceHalf(p, sc, src, dst, n, 0, 1)
	for i := range dst.A {
		if dst.A[i] != src.A[i] {
			t.Errorf("alpha[%d] = %v, want unmodified %v", i, dst.A[i], src.A[i])
		}
	}
}

func TestConvertSliceHalfMissingAlphaDefaultsToOpaque(t *testing.T) {
	var planner plan.Planner
	meta := bt709Meta()
	p, _, err := planner.Build(meta, meta, pixfmt.GBRAPF16, pixfmt.GBRAPF16, 4, 2, plan.Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	n := 2
	src := HalfPlanes{G: make([]uint16, n), B: make([]uint16, n), R: make([]uint16, n)} // A is nil
	dst := HalfPlanes{G: make([]uint16, n), B: make([]uint16, n), R: make([]uint16, n), A: make([]uint16, n)}
	sc := scratch.NewManager()
	if err := sc.Resize(n); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	ConvertSliceHalf(p, sc, src, dst, n, 0, 1)
	for i := range dst.A {
		if half.ToFloat32(dst.A[i]) != 1.0 {
			t.Errorf("alpha[%d] = %v, want fully opaque", i, half.ToFloat32(dst.A[i]))
		}
	}
}

func TestConvertSliceHalfPrimaryChangePreservesWhite(t *testing.T) {
	var planner plan.Planner
	inMeta := bt709Meta()
	outMeta := bt709Meta()
	outMeta.Primaries = colorimetry.PrimariesBT2020
	p, _, err := planner.Build(inMeta, outMeta, pixfmt.GBRPF16, pixfmt.GBRPF16, 4, 2, plan.Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	src := HalfPlanes{
		G: []uint16{half.FromFloat32(1)},
		B: []uint16{half.FromFloat32(1)},
		R: []uint16{half.FromFloat32(1)},
	}
	dst := HalfPlanes{G: make([]uint16, 1), B: make([]uint16, 1), R: make([]uint16, 1)}
	sc := scratch.NewManager()
	if err := sc.Resize(1); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	ConvertSliceHalf(p, sc, src, dst, 1, 0, 1)
	for _, v := range []uint16{dst.R[0], dst.G[0], dst.B[0]} {
		f := half.ToFloat32(v)
		if f < 0.97 || f > 1.03 {
			t.Errorf("white under primary remap = %v, want ~1", f)
		}
	}
}
