package colorspace

import "unsafe"

// bytesToUint16 reinterprets a plane's raw bytes as a little-endian
// uint16 slice without copying. This assumes a little-endian host, which
// holds for every platform this module currently targets (amd64, arm64);
// a big-endian build would need to byte-swap here instead.
func bytesToUint16(b []byte) []uint16 {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*uint16)(unsafe.Pointer(&b[0])), len(b)/2)
}

// bytesToFloat32 reinterprets a plane's raw bytes as a float32 slice
// without copying, under the same little-endian-host assumption as
// bytesToUint16.
func bytesToFloat32(b []byte) []float32 {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&b[0])), len(b)/4)
}
