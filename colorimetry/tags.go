// Package colorimetry describes the color primaries, transfer
// characteristics, matrix coefficients and sample range that together say
// how a plane of samples maps to a physical color. It mirrors the tag
// numbering of ISO/IEC 23091-2 (H.273), the same scheme container formats
// such as MP4 and Matroska carry in their color metadata boxes.
package colorimetry

import "github.com/markreidvfx/colorspace/internal/gammamodel"

// MatrixCoefficients selects the luma/chroma derivation matrix.
type MatrixCoefficients int

const (
	MatrixIdentity   MatrixCoefficients = 0
	MatrixBT709      MatrixCoefficients = 1
	MatrixUnspecified MatrixCoefficients = 2
	MatrixFCC        MatrixCoefficients = 4
	MatrixBT470BG    MatrixCoefficients = 5
	MatrixSMPTE170M  MatrixCoefficients = 6
	MatrixSMPTE240M  MatrixCoefficients = 7
	MatrixYCgCo      MatrixCoefficients = 8
	MatrixBT2020NCL  MatrixCoefficients = 9
	MatrixBT2020CL   MatrixCoefficients = 10
)

// Primaries selects the chromaticity of the RGB primaries and white point.
type Primaries int

const (
	PrimariesReserved0   Primaries = 0
	PrimariesBT709       Primaries = 1
	PrimariesUnspecified Primaries = 2
	PrimariesBT470M      Primaries = 4
	PrimariesBT470BG     Primaries = 5
	PrimariesSMPTE170M   Primaries = 6
	PrimariesSMPTE240M   Primaries = 7
	PrimariesFilm        Primaries = 8
	PrimariesBT2020      Primaries = 9
	PrimariesSMPTE428    Primaries = 10
	PrimariesSMPTE431    Primaries = 11
	PrimariesSMPTE432    Primaries = 12 // Display P3
	PrimariesJEDECP22    Primaries = 22
)

// Transfer selects the opto/electro-optical transfer characteristic. The
// tag numbering matches internal/gammamodel.Tag directly, so conversion
// between the two is a plain cast.
type Transfer int

const (
	TransferReserved0   Transfer = Transfer(gammamodel.TagReserved0)
	TransferBT709       Transfer = Transfer(gammamodel.TagBT709)
	TransferUnspecified Transfer = Transfer(gammamodel.TagUnspecified)
	TransferBT470M      Transfer = Transfer(gammamodel.TagBT470M)
	TransferBT470BG     Transfer = Transfer(gammamodel.TagBT470BG)
	TransferSMPTE170M   Transfer = Transfer(gammamodel.TagSMPTE170M)
	TransferSMPTE240M   Transfer = Transfer(gammamodel.TagSMPTE240M)
	TransferLinear      Transfer = Transfer(gammamodel.TagLinear)
	TransferLog100      Transfer = Transfer(gammamodel.TagLog100)
	TransferLog100Sqrt  Transfer = Transfer(gammamodel.TagLog100Sqrt)
	TransferIEC61966    Transfer = Transfer(gammamodel.TagIEC61966)
	TransferBT1361      Transfer = Transfer(gammamodel.TagBT1361)
	TransferSRGB        Transfer = Transfer(gammamodel.TagSRGB)
	TransferBT2020_10   Transfer = Transfer(gammamodel.TagBT2020_10)
	TransferBT2020_12   Transfer = Transfer(gammamodel.TagBT2020_12)
	TransferSMPTE2084   Transfer = Transfer(gammamodel.TagSMPTE2084)
	TransferSMPTE428    Transfer = Transfer(gammamodel.TagSMPTE428)
	TransferHLG         Transfer = Transfer(gammamodel.TagHLG)
)

// Range selects whether samples occupy the full coded range or reserve
// headroom/footroom as "studio" (limited/legal) range.
type Range int

const (
	RangeUnspecified Range = iota
	RangeLimited
	RangeFull
)

// Metadata fully describes the colorimetry of a Frame: its matrix, its
// primaries, its transfer characteristic and its sample range. Leaving a
// field at its tag's Unspecified value (or Range at RangeUnspecified) and
// calling Resolve fills in the H.273 guessed defaults a decoder would use
// when a container omits this data.
type Metadata struct {
	Matrix    MatrixCoefficients
	Primaries Primaries
	Transfer  Transfer
	Range     Range
}

// Resolve returns a copy of m with unspecified fields replaced by the
// conventional default for the given frame dimensions: SMPTE 170M (BT.601
// 525-line) values for frames under 720 lines tall and under 1280 wide,
// BT.709 otherwise. This mirrors the
// guesswork vf_colorspace.c and most decoders perform when a bitstream or
// container carries no explicit colorimetry.
func (m Metadata) Resolve(width, height int) Metadata {
	sd := height > 0 && height < 720 && width < 1280
	out := m
	if out.Matrix == MatrixUnspecified {
		if sd {
			out.Matrix = MatrixSMPTE170M
		} else {
			out.Matrix = MatrixBT709
		}
	}
	if out.Primaries == PrimariesUnspecified {
		if sd {
			out.Primaries = PrimariesSMPTE170M
		} else {
			out.Primaries = PrimariesBT709
		}
	}
	if out.Transfer == TransferUnspecified {
		if sd {
			out.Transfer = TransferSMPTE170M
		} else {
			out.Transfer = TransferBT709
		}
	}
	if out.Range == RangeUnspecified {
		out.Range = RangeLimited
	}
	return out
}

// LumaCoefficients returns the luma/chroma derivation weights (Kr, Kb) for
// a matrix. YCgCo has no Kr/Kb pair and returns ok=false; both BT.2020
// variants return the BT.2020 non-constant-luminance weights.
func LumaCoefficients(mc MatrixCoefficients) (kr, kb float64, ok bool) {
	switch mc {
	case MatrixBT709:
		return 0.2126, 0.0722, true
	case MatrixFCC:
		return 0.30, 0.11, true
	case MatrixBT470BG, MatrixSMPTE170M:
		return 0.299, 0.114, true
	case MatrixSMPTE240M:
		return 0.212, 0.087, true
	case MatrixBT2020NCL, MatrixBT2020CL:
		return 0.2627, 0.0593, true
	case MatrixIdentity:
		return 0, 0, true
	default:
		return 0, 0, false
	}
}

// PrimariesDesc holds CIE 1931 xy chromaticity coordinates for the three
// RGB primaries and the reference white point.
type PrimariesDesc struct {
	RX, RY float64
	GX, GY float64
	BX, BY float64
	WX, WY float64
}

var primariesTable = map[Primaries]PrimariesDesc{
	PrimariesBT709: {
		RX: 0.640, RY: 0.330, GX: 0.300, GY: 0.600, BX: 0.150, BY: 0.060,
		WX: 0.3127, WY: 0.3290,
	},
	PrimariesBT470M: {
		RX: 0.670, RY: 0.330, GX: 0.210, GY: 0.710, BX: 0.140, BY: 0.080,
		WX: 0.310, WY: 0.316,
	},
	PrimariesBT470BG: {
		RX: 0.640, RY: 0.330, GX: 0.290, GY: 0.600, BX: 0.150, BY: 0.060,
		WX: 0.3127, WY: 0.3290,
	},
	PrimariesSMPTE170M: {
		RX: 0.630, RY: 0.340, GX: 0.310, GY: 0.595, BX: 0.155, BY: 0.070,
		WX: 0.3127, WY: 0.3290,
	},
	PrimariesSMPTE240M: {
		RX: 0.630, RY: 0.340, GX: 0.310, GY: 0.595, BX: 0.155, BY: 0.070,
		WX: 0.3127, WY: 0.3290,
	},
	PrimariesFilm: {
		RX: 0.681, RY: 0.319, GX: 0.243, GY: 0.692, BX: 0.145, BY: 0.049,
		WX: 0.310, WY: 0.316,
	},
	PrimariesBT2020: {
		RX: 0.708, RY: 0.292, GX: 0.170, GY: 0.797, BX: 0.131, BY: 0.046,
		WX: 0.3127, WY: 0.3290,
	},
	PrimariesSMPTE428: {
		RX: 0.7347, RY: 0.2653, GX: 0.1596, GY: 0.8404, BX: 0.0366, BY: 0.0001,
		WX: 1.0 / 3.0, WY: 1.0 / 3.0,
	},
	PrimariesSMPTE431: {
		RX: 0.680, RY: 0.320, GX: 0.265, GY: 0.690, BX: 0.150, BY: 0.060,
		WX: 0.314, WY: 0.351,
	},
	PrimariesSMPTE432: {
		RX: 0.680, RY: 0.320, GX: 0.265, GY: 0.690, BX: 0.150, BY: 0.060,
		WX: 0.3127, WY: 0.3290,
	},
	PrimariesJEDECP22: {
		RX: 0.630, RY: 0.340, GX: 0.295, GY: 0.605, BX: 0.155, BY: 0.077,
		WX: 0.3127, WY: 0.3290,
	},
}

// LookupPrimaries returns the chromaticity description for a primaries
// tag, and false if the tag has no fixed chromaticity (Unspecified,
// Reserved0 or a tag this package does not recognize).
func LookupPrimaries(p Primaries) (PrimariesDesc, bool) {
	d, ok := primariesTable[p]
	return d, ok
}

// PresetTriple is the (matrix, primaries, transfer) triple a named
// colorspace preset expands to.
type PresetTriple struct {
	Matrix    MatrixCoefficients
	Primaries Primaries
	Transfer  Transfer
}

// presetTable maps the "all"/"iall" preset names to their canonical
// (matrix, primaries, transfer) triple. BT.601-6-525 and BT.601-6-625
// share a transfer and (525-line) matrix derivation but differ in
// primaries - 525-line uses SMPTE170M primaries, 625-line uses BT470BG -
// and bt470m's matrix is the SMPTE170M derivation even though its
// primaries and transfer are the distinct BT470M/Gamma22 pair.
var presetTable = map[string]PresetTriple{
	"bt470m":      {Matrix: MatrixSMPTE170M, Primaries: PrimariesBT470M, Transfer: TransferBT470M},
	"bt470bg":     {Matrix: MatrixBT470BG, Primaries: PrimariesBT470BG, Transfer: TransferBT470BG},
	"bt601-6-525": {Matrix: MatrixSMPTE170M, Primaries: PrimariesSMPTE170M, Transfer: TransferSMPTE170M},
	"bt601-6-625": {Matrix: MatrixBT470BG, Primaries: PrimariesBT470BG, Transfer: TransferSMPTE170M},
	"bt709":       {Matrix: MatrixBT709, Primaries: PrimariesBT709, Transfer: TransferBT709},
	"smpte170m":   {Matrix: MatrixSMPTE170M, Primaries: PrimariesSMPTE170M, Transfer: TransferSMPTE170M},
	"smpte240m":   {Matrix: MatrixSMPTE240M, Primaries: PrimariesSMPTE240M, Transfer: TransferSMPTE240M},
	"bt2020":      {Matrix: MatrixBT2020NCL, Primaries: PrimariesBT2020, Transfer: TransferBT2020_10},
}

// Preset looks up a named colorspace preset ("all"/"iall" in the host
// API), returning the (matrix, primaries, transfer) triple it expands to
// and false if name is not one of the recognized presets.
func Preset(name string) (PresetTriple, bool) {
	t, ok := presetTable[name]
	return t, ok
}

// PresetNames returns the recognized preset names, in the canonical
// order presets are listed in (matching the host API's own ordering).
func PresetNames() []string {
	return []string{
		"bt470m", "bt470bg", "bt601-6-525", "bt601-6-625",
		"bt709", "smpte170m", "smpte240m", "bt2020",
	}
}

// Linearize and Delinearize expose gammamodel's transfer math under the
// colorimetry.Transfer tag so callers outside internal/ never need to
// import gammamodel directly for a single scalar conversion (the float32
// kernel uses gammamodel.Linearize/Delinearize on the hot path instead).
func Linearize(t Transfer, v float32) float32   { return gammamodel.Linearize(gammamodel.Tag(t), v) }
func Delinearize(t Transfer, v float32) float32 { return gammamodel.Delinearize(gammamodel.Tag(t), v) }
