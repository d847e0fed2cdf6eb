package kernel

// SampleFunc reads one planar sample; PutFunc writes one, clamping to the
// plane's valid range.
type SampleFunc func(plane []byte, idx int) int32
type PutFunc func(plane []byte, idx int, v int32)

// RowCodec bundles the sample accessors and chroma geometry for one
// (bit depth, subsampling) combination. ConvertSliceInt looks one of these
// up once per slice from the Plan's depth and subsampling indices instead
// of branching on bit depth and subsampling on every pixel.
type RowCodec struct {
	ReadSample   SampleFunc
	WriteSample  PutFunc
	ChromaShiftX int
	ChromaShiftY int
}

var dispatchTable [3][3]RowCodec // [depthIndex][subsamplingIndex]

func init() {
	depths := [3]int{8, 10, 12}
	shifts := [3][2]int{{0, 0}, {1, 0}, {1, 1}} // 444, 422, 420
	for di, depth := range depths {
		maxVal := maxSampleValue(depth)
		read, write := rowAccessors(depth, maxVal)
		for si, sh := range shifts {
			dispatchTable[di][si] = RowCodec{
				ReadSample:   read,
				WriteSample:  write,
				ChromaShiftX: sh[0],
				ChromaShiftY: sh[1],
			}
		}
	}
}

func rowAccessors(depth int, maxVal int32) (SampleFunc, PutFunc) {
	if depth <= 8 {
		return sample8, func(plane []byte, idx int, v int32) { putSample8(plane, idx, v) }
	}
	return sample16, func(plane []byte, idx int, v int32) { putSample16(plane, idx, v, maxVal) }
}

// LookupRowCodec looks up the dispatch table entry for a format, as
// identified by its planner-computed depth/subsampling indices.
func LookupRowCodec(depthIndex, subsamplingIndex int) RowCodec {
	return dispatchTable[depthIndex][subsamplingIndex]
}
