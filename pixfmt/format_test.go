package pixfmt

import "testing"

func TestNumPlanes(t *testing.T) {
	if n := YUV420P8.NumPlanes(); n != 3 {
		t.Errorf("YUV420P8.NumPlanes() = %d, want 3", n)
	}
	if n := GBRPF16.NumPlanes(); n != 3 {
		t.Errorf("GBRPF16.NumPlanes() = %d, want 3", n)
	}
	if n := GBRAPF16.NumPlanes(); n != 4 {
		t.Errorf("GBRAPF16.NumPlanes() = %d, want 4", n)
	}
}

func TestBytesPerSample(t *testing.T) {
	cases := []struct {
		f    Format
		want int
	}{
		{YUV420P8, 1},
		{YUV420P10, 2},
		{YUV420P12, 2},
		{GBRPF16, 2},
		{GBRPF32, 4},
	}
	for _, c := range cases {
		if got := c.f.BytesPerSample(); got != c.want {
			t.Errorf("%s.BytesPerSample() = %d, want %d", c.f.Name, got, c.want)
		}
	}
}

func TestChromaPlaneDims420Rounds(t *testing.T) {
	cw, ch := YUV420P8.ChromaPlaneDims(7, 5)
	if cw != 4 || ch != 3 {
		t.Errorf("ChromaPlaneDims(7,5) = (%d,%d), want (4,3)", cw, ch)
	}
}

func TestChromaPlaneDims444IsFullRes(t *testing.T) {
	cw, ch := YUV444P8.ChromaPlaneDims(7, 5)
	if cw != 7 || ch != 5 {
		t.Errorf("ChromaPlaneDims(7,5) on 444 = (%d,%d), want (7,5)", cw, ch)
	}
}

func TestChromaPlaneDimsNonYUVIsFullRes(t *testing.T) {
	cw, ch := GBRPF32.ChromaPlaneDims(9, 3)
	if cw != 9 || ch != 3 {
		t.Errorf("ChromaPlaneDims on non-YUV = (%d,%d), want (9,3)", cw, ch)
	}
}

func TestByName(t *testing.T) {
	f, ok := ByName("yuv420p")
	if !ok || f != YUV420P8 {
		t.Errorf("ByName(yuv420p) = %v,%v, want YUV420P8,true", f, ok)
	}
	_, ok = ByName("not-a-format")
	if ok {
		t.Error("ByName(not-a-format) should fail")
	}
}

func TestDepthIndex(t *testing.T) {
	cases := []struct {
		depth int
		want  int
		ok    bool
	}{
		{8, 0, true}, {10, 1, true}, {12, 2, true}, {16, 0, false},
	}
	for _, c := range cases {
		got, ok := DepthIndex(c.depth)
		if got != c.want || ok != c.ok {
			t.Errorf("DepthIndex(%d) = %d,%v, want %d,%v", c.depth, got, ok, c.want, c.ok)
		}
	}
}

func TestSubsamplingIndex(t *testing.T) {
	if YUV444P8.SubsamplingIndex() != 0 {
		t.Errorf("YUV444P8.SubsamplingIndex() = %d, want 0", YUV444P8.SubsamplingIndex())
	}
	if YUV422P8.SubsamplingIndex() != 1 {
		t.Errorf("YUV422P8.SubsamplingIndex() = %d, want 1", YUV422P8.SubsamplingIndex())
	}
	if YUV420P8.SubsamplingIndex() != 2 {
		t.Errorf("YUV420P8.SubsamplingIndex() = %d, want 2", YUV420P8.SubsamplingIndex())
	}
}

func TestAllListsEveryFormatOnce(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range All {
		if seen[f.Name] {
			t.Errorf("duplicate format name %q in All", f.Name)
		}
		seen[f.Name] = true
	}
	if len(All) != 13 {
		t.Errorf("len(All) = %d, want 13", len(All))
	}
}
