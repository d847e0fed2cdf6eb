// Package gammamodel implements the opto-electronic and electro-optical
// transfer functions used to move pixel values between gamma-encoded and
// scene-linear light, plus the integer and half-float lookup tables the
// fixed-point and half-float kernels use in place of evaluating a curve
// per sample.
//
// Each curve is exposed as a pair of plain float32 functions operating on
// normalized (not bit-depth scaled) gamma/linear values in [0,1] (PQ and
// HLG extend slightly outside that range by construction). Curves that
// admit a closed-form inverse (everything except the two log curves, PQ
// and HLG, which are intentionally one-directional in some callers) are
// still given both directions so the single-float pipeline never needs a
// table.
package gammamodel

import "github.com/chewxy/math32"

// Tag identifies a transfer characteristic using the numbering from
// ISO/IEC 23091-2 (H.273), the same numbering libavutil/libswscale use.
type Tag int

const (
	TagReserved0   Tag = 0
	TagBT709       Tag = 1
	TagUnspecified Tag = 2
	TagBT470M      Tag = 4
	TagBT470BG     Tag = 5
	TagSMPTE170M   Tag = 6 // BT.601
	TagSMPTE240M   Tag = 7
	TagLinear      Tag = 8
	TagLog100      Tag = 9
	TagLog100Sqrt  Tag = 10
	TagIEC61966    Tag = 11
	TagBT1361      Tag = 12
	TagSRGB        Tag = 13 // IEC 61966-2-1
	TagBT2020_10   Tag = 14
	TagBT2020_12   Tag = 15
	TagSMPTE2084   Tag = 16 // PQ
	TagSMPTE428    Tag = 17
	TagHLG         Tag = 18 // ARIB STD-B67
)

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Characteristics parameterizes one transfer curve. The common case -
// BT.709 and its relatives - is the classic toe+power shape:
//
//	Delinearize(v) = Gamma*v                  v < Beta
//	               = (1+Alpha)*v^Delta - Alpha  Beta <= v < 1
//	               = 1                          v >= 1
//
// with Linearize its algebraic inverse. The log curves, PQ, SMPTE428 and
// HLG supply NonAnalyticDelinearize (and an internal linearize
// counterpart) instead. IEC61966 and BT1361 keep their family parameters
// but are evaluated through an internal function pair for their signed
// extensions. Linear, the bare power laws (BT470M, BT470BG) and sRGB use
// an internal function pair too, with Alpha/Beta/Gamma/Delta left at
// their zero value.
type Characteristics struct {
	Alpha, Beta, Gamma, Delta float32

	// NonAnalyticDelinearize, when set, is used instead of the toe+power
	// formula above. It exists as an explicit escape hatch for curves -
	// PQ, HLG, the log curves - that the four-parameter formula cannot
	// express at all, rather than a curve that merely shares the family's
	// algebraic shape but is classified non-analytic anyway (sRGB).
	NonAnalyticDelinearize func(linear float32) float32

	delinearizeFn func(linear float32) float32
	linearizeFn   func(gamma float32) float32

	analyticFamily bool
}

// Analytic reports whether the curve has the classic toe+power shape used
// by the BT.709 family, as opposed to a pure power law, a log curve, or
// one of the non-analytic HDR curves (PQ, HLG). This is a fixed
// classification per tag, not something derived from Alpha/Beta/Gamma/
// Delta: BT470M and sRGB are algebraically expressible by the same
// formula but are not considered part of the family, and IEC61966/BT1361
// are part of the family despite needing their signed extension's own
// function pair.
func (c Characteristics) Analytic() bool { return c.analyticFamily }

// Delinearize converts a scene-linear value normalized to [0,1] into a
// gamma-encoded value (PQ/HLG extend slightly outside that range by
// construction).
func (c Characteristics) Delinearize(linear float32) float32 {
	switch {
	case c.NonAnalyticDelinearize != nil:
		return c.NonAnalyticDelinearize(linear)
	case c.delinearizeFn != nil:
		return c.delinearizeFn(linear)
	}
	switch {
	case linear < 0:
		return 0
	case linear < c.Beta:
		return c.Gamma * linear
	case linear < 1:
		return (1+c.Alpha)*powf(linear, c.Delta) - c.Alpha
	default:
		return 1
	}
}

// Linearize is the inverse of Delinearize.
func (c Characteristics) Linearize(gamma float32) float32 {
	if c.linearizeFn != nil {
		return c.linearizeFn(gamma)
	}
	switch {
	case gamma < 0:
		return 0
	case gamma < c.Gamma*c.Beta:
		return gamma / c.Gamma
	case gamma < 1:
		return powf((gamma+c.Alpha)/(1+c.Alpha), 1.0/c.Delta)
	default:
		return 1
	}
}

func family(alpha, beta, gamma, delta float32) Characteristics {
	return Characteristics{Alpha: alpha, Beta: beta, Gamma: gamma, Delta: delta, analyticFamily: true}
}

// familyFn is for family members whose signed extension isn't expressible
// by the plain toe+power formula (IEC61966, BT1361): still analyticFamily,
// backed by their own function pair.
func familyFn(alpha, beta, gamma, delta float32, delin, lin func(float32) float32) Characteristics {
	return Characteristics{Alpha: alpha, Beta: beta, Gamma: gamma, Delta: delta, delinearizeFn: delin, linearizeFn: lin, analyticFamily: true}
}

func curve(delin, lin func(float32) float32) Characteristics {
	return Characteristics{delinearizeFn: delin, linearizeFn: lin}
}

func nonAnalytic(delin, lin func(float32) float32) Characteristics {
	return Characteristics{NonAnalyticDelinearize: delin, linearizeFn: lin}
}

var characteristicsTable = map[Tag]Characteristics{
	TagBT709:     family(bt709Alpha, bt709Beta, 4.5, 0.45),
	TagSMPTE170M: family(bt709Alpha, bt709Beta, 4.5, 0.45),
	TagBT2020_10: family(bt709Alpha, bt709Beta, 4.5, 0.45),
	TagBT2020_12: family(bt709Alpha, bt709Beta, 4.5, 0.45),
	TagSMPTE240M: family(smpte240Alpha, smpte240Beta, 4.0, 0.45),
	TagIEC61966:  familyFn(bt709Alpha, bt709Beta, 4.5, 0.45, fromLinearIEC61966, toLinearIEC61966),
	TagBT1361:    familyFn(bt709Alpha, bt1361Beta, 4.5, 0.45, fromLinearBT1361, toLinearBT1361),

	TagLinear:   curve(func(l float32) float32 { return l }, func(g float32) float32 { return g }),
	TagBT470M:   curve(func(l float32) float32 { return powf(clamp(l, 0, 1), 1.0/2.2) }, func(g float32) float32 { return powf(clamp(g, 0, 1), 2.2) }),
	TagBT470BG:  curve(func(l float32) float32 { return powf(clamp(l, 0, 1), 1.0/2.8) }, func(g float32) float32 { return powf(clamp(g, 0, 1), 2.8) }),
	TagSRGB:     curve(fromLinearSRGB, toLinearSRGB),

	TagLog100:     nonAnalytic(fromLinearLog100, toLinearLog100),
	TagLog100Sqrt: nonAnalytic(fromLinearLog100Sqrt10, toLinearLog100Sqrt10),
	TagSMPTE2084:  nonAnalytic(fromLinearPQ, toLinearPQ),
	TagSMPTE428:   nonAnalytic(fromLinearSMPTE428, toLinearSMPTE428),
	TagHLG:        nonAnalytic(fromLinearHLG, toLinearHLG),
}

// CharacteristicsFor returns the registered Characteristics for tag. ok is
// false for reserved/unspecified/out-of-range tags, which Known also
// reports.
func CharacteristicsFor(tag Tag) (Characteristics, bool) {
	c, ok := characteristicsTable[tag]
	return c, ok
}

// Known reports whether tag names a transfer characteristic this package
// implements.
func Known(tag Tag) bool {
	_, ok := characteristicsTable[tag]
	return ok
}

// Linearize converts a gamma-encoded value normalized to [0,1] into a
// scene-linear value, also normalized so that 1.0 represents reference
// white. Unknown tags linearize as identity.
func Linearize(tag Tag, gamma float32) float32 {
	if c, ok := characteristicsTable[tag]; ok {
		return c.Linearize(gamma)
	}
	return gamma
}

// Delinearize is the inverse of Linearize: scene-linear in, gamma-encoded
// out, both normalized to [0,1] (PQ/HLG excepted as above).
func Delinearize(tag Tag, linear float32) float32 {
	if c, ok := characteristicsTable[tag]; ok {
		return c.Delinearize(linear)
	}
	return linear
}

// Analytic reports whether tag has the classic toe+power shape used by the
// BT.709 family. Unknown tags are not analytic.
func Analytic(tag Tag) bool {
	c, ok := characteristicsTable[tag]
	return ok && c.Analytic()
}

func powf(base, exp float32) float32 { return math32.Pow(base, exp) }

const (
	bt709Beta  = 0.018053968510807
	bt709Alpha = 0.09929682680944
)

func toLinear709(gamma float32) float32 {
	switch {
	case gamma < 0:
		return 0
	case gamma < 4.5*bt709Beta:
		return gamma / 4.5
	case gamma < 1:
		return powf((gamma+bt709Alpha)/(1+bt709Alpha), 1.0/0.45)
	default:
		return 1
	}
}

func fromLinear709(linear float32) float32 {
	switch {
	case linear < 0:
		return 0
	case linear < bt709Beta:
		return linear * 4.5
	case linear < 1:
		return (1+bt709Alpha)*powf(linear, 0.45) - bt709Alpha
	default:
		return 1
	}
}

const (
	smpte240Beta  = 0.022821585529445
	smpte240Alpha = 0.111572195921731
)

func toLinearSMPTE240(gamma float32) float32 {
	switch {
	case gamma < 0:
		return 0
	case gamma < 4.0*smpte240Beta:
		return gamma / 4.0
	case gamma < 1:
		return powf((gamma+smpte240Alpha)/(1+smpte240Alpha), 1.0/0.45)
	default:
		return 1
	}
}

func fromLinearSMPTE240(linear float32) float32 {
	switch {
	case linear < 0:
		return 0
	case linear < smpte240Beta:
		return linear * 4.0
	case linear < 1:
		return (1+smpte240Alpha)*powf(linear, 0.45) - smpte240Alpha
	default:
		return 1
	}
}

func toLinearLog100(gamma float32) float32 {
	const midInterval = 0.01 / 2.0
	if gamma <= 0 {
		return midInterval
	}
	return powf(10.0, 2.0*(math32.Min(gamma, 1.0)-1.0))
}

func fromLinearLog100(linear float32) float32 {
	if linear < 0.01 {
		return 0
	}
	return 1.0 + math32.Log10(math32.Min(linear, 1.0))/2.0
}

func toLinearLog100Sqrt10(gamma float32) float32 {
	const midInterval = 0.00316227766 / 2.0
	if gamma <= 0 {
		return midInterval
	}
	return powf(10.0, 2.5*(math32.Min(gamma, 1.0)-1.0))
}

func fromLinearLog100Sqrt10(linear float32) float32 {
	if linear < 0.00316227766 {
		return 0
	}
	return 1.0 + math32.Log10(math32.Min(linear, 1.0))/2.5
}

func toLinearIEC61966(gamma float32) float32 {
	switch {
	case gamma <= -4.5*bt709Beta:
		return -powf((-gamma+bt709Alpha)/(1+bt709Alpha), 1.0/0.45)
	case gamma < 4.5*bt709Beta:
		return gamma / 4.5
	default:
		return powf((gamma+bt709Alpha)/(1+bt709Alpha), 1.0/0.45)
	}
}

func fromLinearIEC61966(linear float32) float32 {
	switch {
	case linear <= -bt709Beta:
		return -(1+bt709Alpha)*powf(-linear, 0.45) + bt709Alpha
	case linear < bt709Beta:
		return linear * 4.5
	default:
		return (1+bt709Alpha)*powf(linear, 0.45) - bt709Alpha
	}
}

const (
	bt1361Beta  = 0.02482420670236
	bt1361Alpha = 0.27482420670236
)

func toLinearBT1361(gamma float32) float32 {
	switch {
	case gamma < -0.25:
		return -0.25
	case gamma < 0:
		return powf((gamma-bt1361Beta)/-bt1361Alpha, 1.0/0.45) / -4.0
	case gamma < 4.5*bt709Beta:
		return gamma / 4.5
	case gamma < 1:
		return powf((gamma+bt709Alpha)/(1+bt709Alpha), 1.0/0.45)
	default:
		return 1
	}
}

func fromLinearBT1361(linear float32) float32 {
	switch {
	case linear < -0.25:
		return -0.25
	case linear < 0:
		return -bt1361Alpha*powf(-4.0*linear, 0.45) + bt1361Beta
	case linear < bt709Beta:
		return linear * 4.5
	case linear < 1:
		return (1+bt709Alpha)*powf(linear, 0.45) - bt709Alpha
	default:
		return 1
	}
}

func toLinearSRGB(gamma float32) float32 {
	switch {
	case gamma <= -0.04045:
		return -powf((-gamma+0.055)/1.055, 2.4)
	case gamma < 0.04045:
		return gamma / 12.92
	default:
		return powf((gamma+0.055)/1.055, 2.4)
	}
}

func fromLinearSRGB(linear float32) float32 {
	switch {
	case linear <= -0.0031308:
		return -1.055*powf(-linear, 1.0/2.4) + 0.055
	case linear < 0.0031308:
		return linear * 12.92
	default:
		return 1.055*powf(linear, 1.0/2.4) - 0.055
	}
}

func toLinearPQ(gamma float32) float32 {
	if gamma <= 0 {
		return 0
	}
	powGamma := powf(gamma, 32.0/2523.0)
	num := math32.Max(powGamma-107.0/128.0, 0.0)
	den := math32.Max(2413.0/128.0-2392.0/128.0*powGamma, math32.SmallestNonzeroFloat32)
	return powf(num/den, 4096.0/653.0)
}

func fromLinearPQ(linear float32) float32 {
	if linear <= 0 {
		return 0
	}
	powLinear := powf(linear, 653.0/4096.0)
	num := 107.0/128.0 + 2413.0/128.0*powLinear
	den := 1.0 + 2392.0/128.0*powLinear
	return powf(num/den, 2523.0/32.0)
}

func toLinearSMPTE428(gamma float32) float32 {
	return powf(math32.Max(gamma, 0), 2.6) / 0.91655527974030934
}

func fromLinearSMPTE428(linear float32) float32 {
	return powf(0.91655527974030934*math32.Max(linear, 0), 1.0/2.6)
}

func toLinearHLG(gamma float32) float32 {
	switch {
	case gamma < 0:
		return 0
	case gamma <= 0.5:
		return powf((gamma*gamma)*(1.0/3.0), 1.2)
	default:
		return powf((math32.Exp((gamma-0.55991073)/0.17883277)+0.28466892)/12.0, 1.2)
	}
}

func fromLinearHLG(linear float32) float32 {
	linear = powf(linear, 1.0/1.2)
	switch {
	case linear < 0:
		return 0
	case linear <= 1.0/12.0:
		return math32.Sqrt(3.0 * linear)
	default:
		return 0.17883277*math32.Log(12.0*linear-0.28466892) + 0.55991073
	}
}
