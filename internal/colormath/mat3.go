// Package colormath provides the small amount of linear algebra the
// colorspace planner needs to go from one set of RGB primaries to
// another: building an RGB->XYZ matrix from chromaticity coordinates,
// chromatically adapting between white points, and composing the result
// into a single RGB->RGB matrix.
package colormath

import "github.com/markreidvfx/colorspace/colorimetry"

// Mat3 is a row-major 3x3 matrix.
type Mat3 [3][3]float64

// Identity3 is the 3x3 identity matrix.
var Identity3 = Mat3{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}

// Mul returns a*b.
func (a Mat3) Mul(b Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += a[i][k] * b[k][j]
			}
			r[i][j] = sum
		}
	}
	return r
}

// MulVec returns a*v.
func (a Mat3) MulVec(v [3]float64) [3]float64 {
	return [3]float64{
		a[0][0]*v[0] + a[0][1]*v[1] + a[0][2]*v[2],
		a[1][0]*v[0] + a[1][1]*v[1] + a[1][2]*v[2],
		a[2][0]*v[0] + a[2][1]*v[1] + a[2][2]*v[2],
	}
}

// Invert returns the inverse of a. It panics if a is singular; the
// matrices this package builds from valid chromaticity triangles never
// are.
func (a Mat3) Invert() Mat3 {
	det := a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
	if det == 0 {
		panic("colormath: singular matrix")
	}
	inv := 1.0 / det
	var r Mat3
	r[0][0] = (a[1][1]*a[2][2] - a[1][2]*a[2][1]) * inv
	r[0][1] = (a[0][2]*a[2][1] - a[0][1]*a[2][2]) * inv
	r[0][2] = (a[0][1]*a[1][2] - a[0][2]*a[1][1]) * inv
	r[1][0] = (a[1][2]*a[2][0] - a[1][0]*a[2][2]) * inv
	r[1][1] = (a[0][0]*a[2][2] - a[0][2]*a[2][0]) * inv
	r[1][2] = (a[0][2]*a[1][0] - a[0][0]*a[1][2]) * inv
	r[2][0] = (a[1][0]*a[2][1] - a[1][1]*a[2][0]) * inv
	r[2][1] = (a[0][1]*a[2][0] - a[0][0]*a[2][1]) * inv
	r[2][2] = (a[0][0]*a[1][1] - a[0][1]*a[1][0]) * inv
	return r
}

// xyToXYZ converts CIE 1931 xy chromaticity (with implied Y=1) to XYZ.
func xyToXYZ(x, y float64) [3]float64 {
	if y == 0 {
		return [3]float64{0, 0, 0}
	}
	return [3]float64{x / y, 1, (1 - x - y) / y}
}

// RGB2XYZ builds the matrix that converts linear RGB values under the
// given primaries to CIE XYZ, normalized so that RGB=(1,1,1) maps to the
// primaries' own white point.
func RGB2XYZ(p colorimetry.PrimariesDesc) Mat3 {
	r := xyToXYZ(p.RX, p.RY)
	g := xyToXYZ(p.GX, p.GY)
	b := xyToXYZ(p.BX, p.BY)
	w := xyToXYZ(p.WX, p.WY)

	xyz := Mat3{
		{r[0], g[0], b[0]},
		{r[1], g[1], b[1]},
		{r[2], g[2], b[2]},
	}
	s := xyz.Invert().MulVec(w)
	return Mat3{
		{xyz[0][0] * s[0], xyz[0][1] * s[1], xyz[0][2] * s[2]},
		{xyz[1][0] * s[0], xyz[1][1] * s[1], xyz[1][2] * s[2]},
		{xyz[2][0] * s[0], xyz[2][1] * s[1], xyz[2][2] * s[2]},
	}
}

// WhitePointAdaptation selects the cone-response model used to adapt
// between two white points.
type WhitePointAdaptation int

const (
	AdaptBradford WhitePointAdaptation = iota
	AdaptVonKries
	AdaptIdentity
)

var bradfordMatrix = Mat3{
	{0.8951000, 0.2664000, -0.1614000},
	{-0.7502000, 1.7135000, 0.0367000},
	{0.0389000, -0.0685000, 1.0296000},
}

var vonKriesMatrix = Mat3{
	{0.40024, 0.70760, -0.08081},
	{-0.22630, 1.16532, 0.04570},
	{0.00000, 0.00000, 0.91822},
}

// Adapt builds the XYZ->XYZ chromatic adaptation matrix that maps
// src's white point onto dst's white point using the given cone-response
// model. AdaptIdentity always returns the identity matrix, matching
// vf_colorspace.c's WP_ADAPT_IDENTITY, which is used to deliberately skip
// adaptation and let the primary-mapping matrix absorb the white point
// shift instead.
func Adapt(method WhitePointAdaptation, srcWP, dstWP colorimetry.PrimariesDesc) Mat3 {
	if method == AdaptIdentity {
		return Identity3
	}
	cone := bradfordMatrix
	if method == AdaptVonKries {
		cone = vonKriesMatrix
	}
	src := xyToXYZ(srcWP.WX, srcWP.WY)
	dst := xyToXYZ(dstWP.WX, dstWP.WY)

	srcCone := cone.MulVec(src)
	dstCone := cone.MulVec(dst)

	scale := Mat3{
		{dstCone[0] / srcCone[0], 0, 0},
		{0, dstCone[1] / srcCone[1], 0},
		{0, 0, dstCone[2] / srcCone[2]},
	}
	return cone.Invert().Mul(scale).Mul(cone)
}

// PrimaryMap builds the linear RGB->RGB matrix that converts from the in
// primaries to the out primaries, adapting white points with method along
// the way. ok is false when either primaries tag has no known
// chromaticity (Unspecified/Reserved/unknown custom tags), in which case
// m is Identity3.
func PrimaryMap(in, out colorimetry.Primaries, method WhitePointAdaptation) (m Mat3, ok bool) {
	inDesc, ok1 := colorimetry.LookupPrimaries(in)
	outDesc, ok2 := colorimetry.LookupPrimaries(out)
	if !ok1 || !ok2 {
		return Identity3, false
	}
	if in == out {
		return Identity3, true
	}
	rgb2xyzIn := RGB2XYZ(inDesc)
	rgb2xyzOut := RGB2XYZ(outDesc)
	adapt := Adapt(method, inDesc, outDesc)
	return rgb2xyzOut.Invert().Mul(adapt).Mul(rgb2xyzIn), true
}
