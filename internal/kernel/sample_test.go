package kernel

import "testing"

func TestSample8RoundTrip(t *testing.T) {
	plane := make([]byte, 4)
	putSample8(plane, 2, 200)
	if got := sample8(plane, 2); got != 200 {
		t.Errorf("sample8 round trip = %d, want 200", got)
	}
}

func TestSample8Clamps(t *testing.T) {
	plane := make([]byte, 1)
	putSample8(plane, 0, 999)
	if got := sample8(plane, 0); got != 255 {
		t.Errorf("putSample8 overflow = %d, want clamped to 255", got)
	}
	putSample8(plane, 0, -5)
	if got := sample8(plane, 0); got != 0 {
		t.Errorf("putSample8 underflow = %d, want clamped to 0", got)
	}
}

func TestSample16RoundTrip(t *testing.T) {
	plane := make([]byte, 8)
	putSample16(plane, 1, 900, maxSampleValue(10))
	if got := sample16(plane, 1); got != 900 {
		t.Errorf("sample16 round trip = %d, want 900", got)
	}
}

func TestSample16ClampsToDepth(t *testing.T) {
	plane := make([]byte, 4)
	putSample16(plane, 0, 5000, maxSampleValue(10))
	if got := sample16(plane, 0); got != maxSampleValue(10) {
		t.Errorf("putSample16 overflow = %d, want %d", got, maxSampleValue(10))
	}
}

func TestMaxSampleValue(t *testing.T) {
	if maxSampleValue(8) != 255 {
		t.Errorf("maxSampleValue(8) = %d, want 255", maxSampleValue(8))
	}
	if maxSampleValue(10) != 1023 {
		t.Errorf("maxSampleValue(10) = %d, want 1023", maxSampleValue(10))
	}
	if maxSampleValue(12) != 4095 {
		t.Errorf("maxSampleValue(12) = %d, want 4095", maxSampleValue(12))
	}
}
