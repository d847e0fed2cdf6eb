package colorspace

import (
	"log/slog"

	"github.com/markreidvfx/colorspace/internal/colormath"
)

// WhitePointAdapt selects the cone-response model used when the input and
// output primaries have different reference white points.
type WhitePointAdapt = colormath.WhitePointAdaptation

const (
	// AdaptBradford is the default: the Bradford transform most color
	// management systems use.
	AdaptBradford = colormath.AdaptBradford
	// AdaptVonKries uses the older von Kries cone-response matrix.
	AdaptVonKries = colormath.AdaptVonKries
	// AdaptIdentity skips chromatic adaptation entirely, letting the
	// primary-mapping matrix absorb any white point shift unadapted.
	// Matches vf_colorspace.c's wpadapt=identity.
	AdaptIdentity = colormath.AdaptIdentity
)

// Options configures a Converter. The zero value is a usable default:
// Bradford adaptation, dithering disabled, parallelism matched to
// GOMAXPROCS, and a discarding logger.
type Options struct {
	// WhitePointAdapt selects the chromatic adaptation model. The zero
	// value (AdaptBradford, since it's iota 0 in internal/colormath) is
	// the common default.
	WhitePointAdapt WhitePointAdapt

	// Dither enables Floyd-Steinberg-banding error diffusion when
	// quantizing down to a lower bit depth in the integer pipeline. Has
	// no effect on the half-float or single-float pipelines.
	Dither bool

	// Fast, when true, forces the RGB->RGB passthrough even when the
	// input and output primaries differ, skipping primary mapping and the
	// linearize/delinearize steps entirely, even when the transfers
	// differ. This
	// is a deliberate lossy shortcut - colors are reinterpreted under the
	// new primaries rather than mapped to them - matching
	// vf_colorspace.c's "fast" option.
	Fast bool

	// Parallelism is the number of goroutines Convert fans a frame's
	// rows out across. Zero means runtime.GOMAXPROCS(0).
	Parallelism int

	// Logger receives the warning Convert logs, at most once per
	// Converter, when a frame's range is unspecified and limited (TV)
	// range is assumed. Unknown primaries, matrices or transfers are
	// returned as errors, not logged. A nil Logger discards warnings.
	Logger *slog.Logger
}
