package colormath

import (
	"math"
	"testing"

	"github.com/markreidvfx/colorspace/colorimetry"
)

func approxEqual(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestIdentityMul(t *testing.T) {
	m := Mat3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	got := m.Mul(Identity3)
	if got != m {
		t.Errorf("m.Mul(Identity3) = %v, want %v", got, m)
	}
}

func TestInvertRoundTrip(t *testing.T) {
	m := Mat3{{2, 0, 0}, {0, 3, 0}, {1, 1, 1}}
	inv := m.Invert()
	got := m.Mul(inv)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if !approxEqual(got[i][j], want, 1e-9) {
				t.Errorf("m*inv[%d][%d] = %v, want %v", i, j, got[i][j], want)
			}
		}
	}
}

func TestRGB2XYZWhitePointMapsToOne(t *testing.T) {
	desc, ok := colorimetry.LookupPrimaries(colorimetry.PrimariesBT709)
	if !ok {
		t.Fatal("missing BT.709 primaries")
	}
	m := RGB2XYZ(desc)
	xyz := m.MulVec([3]float64{1, 1, 1})
	wx, wy := desc.WX, desc.WY
	wantX, wantY, wantZ := wx/wy, 1.0, (1-wx-wy)/wy
	if !approxEqual(xyz[0], wantX, 1e-6) || !approxEqual(xyz[1], wantY, 1e-6) || !approxEqual(xyz[2], wantZ, 1e-6) {
		t.Errorf("RGB2XYZ*[1,1,1] = %v, want [%v %v %v]", xyz, wantX, wantY, wantZ)
	}
}

func TestAdaptIdentityIsNoOp(t *testing.T) {
	a, _ := colorimetry.LookupPrimaries(colorimetry.PrimariesBT709)
	b, _ := colorimetry.LookupPrimaries(colorimetry.PrimariesBT2020)
	m := Adapt(AdaptIdentity, a, b)
	if m != Identity3 {
		t.Errorf("Adapt(AdaptIdentity, ...) = %v, want identity", m)
	}
}

func TestAdaptSameWhitePointIsIdentity(t *testing.T) {
	a, _ := colorimetry.LookupPrimaries(colorimetry.PrimariesBT709)
	m := Adapt(AdaptBradford, a, a)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if !approxEqual(m[i][j], want, 1e-9) {
				t.Errorf("Adapt with matching white points, [%d][%d] = %v, want %v", i, j, m[i][j], want)
			}
		}
	}
}

func TestPrimaryMapSamePrimariesIsIdentity(t *testing.T) {
	m, ok := PrimaryMap(colorimetry.PrimariesBT709, colorimetry.PrimariesBT709, AdaptBradford)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if m != Identity3 {
		t.Errorf("PrimaryMap(BT709, BT709) = %v, want identity", m)
	}
}

func TestPrimaryMapUnknownPrimariesFails(t *testing.T) {
	_, ok := PrimaryMap(colorimetry.PrimariesUnspecified, colorimetry.PrimariesBT709, AdaptBradford)
	if ok {
		t.Error("expected ok=false for unspecified primaries")
	}
}

func TestPrimaryMapBT709ToBT2020PreservesWhite(t *testing.T) {
	m, ok := PrimaryMap(colorimetry.PrimariesBT709, colorimetry.PrimariesBT2020, AdaptBradford)
	if !ok {
		t.Fatal("expected ok=true")
	}
	white := m.MulVec([3]float64{1, 1, 1})
	if !approxEqual(white[0], 1, 1e-3) || !approxEqual(white[1], 1, 1e-3) || !approxEqual(white[2], 1, 1e-3) {
		t.Errorf("PrimaryMap(709,2020)*[1,1,1] = %v, want ~[1,1,1] (both share the D65 white point)", white)
	}
}
