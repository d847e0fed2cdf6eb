package colorimetry

import "testing"

func TestResolveFillsUnspecifiedHD(t *testing.T) {
	m := Metadata{Matrix: MatrixUnspecified, Primaries: PrimariesUnspecified, Transfer: TransferUnspecified, Range: RangeUnspecified}
	out := m.Resolve(1920, 1080)
	if out.Matrix != MatrixBT709 || out.Primaries != PrimariesBT709 || out.Transfer != TransferBT709 {
		t.Errorf("Resolve(HD) = %+v, want BT709 everywhere", out)
	}
	if out.Range != RangeLimited {
		t.Errorf("Resolve(HD).Range = %v, want RangeLimited", out.Range)
	}
}

func TestResolveFillsUnspecifiedSD(t *testing.T) {
	m := Metadata{Matrix: MatrixUnspecified, Primaries: PrimariesUnspecified, Transfer: TransferUnspecified, Range: RangeUnspecified}
	out := m.Resolve(720, 480)
	if out.Matrix != MatrixSMPTE170M || out.Primaries != PrimariesSMPTE170M || out.Transfer != TransferSMPTE170M {
		t.Errorf("Resolve(SD) = %+v, want SMPTE170M everywhere", out)
	}
}

func TestResolveLeavesExplicitFieldsAlone(t *testing.T) {
	m := Metadata{Matrix: MatrixBT2020NCL, Primaries: PrimariesBT2020, Transfer: TransferSMPTE2084, Range: RangeFull}
	out := m.Resolve(1920, 1080)
	if out != m {
		t.Errorf("Resolve should not alter explicitly-set fields: got %+v, want %+v", out, m)
	}
}

func TestLumaCoefficientsKnownMatrices(t *testing.T) {
	kr, kb, ok := LumaCoefficients(MatrixBT709)
	if !ok || kr != 0.2126 || kb != 0.0722 {
		t.Errorf("LumaCoefficients(BT709) = %v,%v,%v, want 0.2126,0.0722,true", kr, kb, ok)
	}
	if _, _, ok := LumaCoefficients(MatrixYCgCo); ok {
		t.Error("LumaCoefficients(YCgCo) should report ok=false")
	}
}

func TestLookupPrimariesKnownAndUnknown(t *testing.T) {
	desc, ok := LookupPrimaries(PrimariesBT709)
	if !ok || desc.WX != 0.3127 {
		t.Errorf("LookupPrimaries(BT709) = %+v,%v", desc, ok)
	}
	if _, ok := LookupPrimaries(PrimariesUnspecified); ok {
		t.Error("LookupPrimaries(Unspecified) should report ok=false")
	}
}

func TestPresetKnownAndUnknown(t *testing.T) {
	bt709, ok := Preset("bt709")
	if !ok || bt709.Matrix != MatrixBT709 || bt709.Primaries != PrimariesBT709 || bt709.Transfer != TransferBT709 {
		t.Errorf("Preset(bt709) = %+v,%v, want the BT709 triple", bt709, ok)
	}
	bt2020, ok := Preset("bt2020")
	if !ok || bt2020.Matrix != MatrixBT2020NCL || bt2020.Primaries != PrimariesBT2020 {
		t.Errorf("Preset(bt2020) = %+v,%v, want the BT.2020 NCL triple", bt2020, ok)
	}
	if _, ok := Preset("not-a-real-preset"); ok {
		t.Error("Preset(unknown) should report ok=false")
	}
}

func TestPresetNamesMatchesTable(t *testing.T) {
	for _, name := range PresetNames() {
		if _, ok := Preset(name); !ok {
			t.Errorf("PresetNames() lists %q but Preset(%q) reports ok=false", name, name)
		}
	}
	if len(PresetNames()) != 8 {
		t.Errorf("PresetNames() has %d entries, want 8", len(PresetNames()))
	}
}

func TestLinearizeDelinearizeDelegatesToGammaModel(t *testing.T) {
	v := Linearize(TransferLinear, 0.5)
	if v != 0.5 {
		t.Errorf("Linearize(TransferLinear, 0.5) = %v, want 0.5", v)
	}
	if Delinearize(TransferLinear, 0.5) != 0.5 {
		t.Errorf("Delinearize(TransferLinear, 0.5) should be identity")
	}
}
