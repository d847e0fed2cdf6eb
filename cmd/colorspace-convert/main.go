// Command colorspace-convert converts a single raw planar frame between
// pixel formats and colorimetries, reading from a file (or stdin with
// "-") and writing to a file (or stdout with "-").
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/markreidvfx/colorspace"
	"github.com/markreidvfx/colorspace/colorimetry"
	"github.com/markreidvfx/colorspace/pixfmt"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "colorspace-convert:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("colorspace-convert", flag.ContinueOnError)

	input := fs.String("i", "-", "input file, or - for stdin")
	output := fs.String("o", "-", "output file, or - for stdout")
	width := fs.Int("w", 0, "frame width in pixels")
	height := fs.Int("h", 0, "frame height in pixels")

	inFormat := fs.String("iformat", "yuv420p", "input pixel format")
	outFormat := fs.String("format", "yuv420p", "output pixel format")

	inSpace := fs.Int("ispace", int(colorimetry.MatrixUnspecified), "input matrix coefficients (H.273 tag)")
	outSpace := fs.Int("space", int(colorimetry.MatrixUnspecified), "output matrix coefficients (H.273 tag)")
	inPrimaries := fs.Int("iprimaries", int(colorimetry.PrimariesUnspecified), "input primaries (H.273 tag)")
	outPrimaries := fs.Int("primaries", int(colorimetry.PrimariesUnspecified), "output primaries (H.273 tag)")
	inTrc := fs.Int("itrc", int(colorimetry.TransferUnspecified), "input transfer characteristic (H.273 tag)")
	outTrc := fs.Int("trc", int(colorimetry.TransferUnspecified), "output transfer characteristic (H.273 tag)")
	inRange := fs.String("irange", "unspecified", "input range: unspecified, limited, full")
	outRange := fs.String("range", "unspecified", "output range: unspecified, limited, full")
	inAll := fs.String("iall", "", "input named colorspace preset: "+strings.Join(colorimetry.PresetNames(), ", "))
	outAll := fs.String("all", "", "output named colorspace preset: "+strings.Join(colorimetry.PresetNames(), ", "))

	dither := fs.Bool("dither", true, "enable error-diffusion dither when quantizing")
	fast := fs.Bool("fast", false, "permit fast-path shortcuts where available")
	wpadapt := fs.String("wpadapt", "bradford", "white point adaptation: bradford, vonkries, identity")
	threads := fs.Int("threads", 0, "goroutines to fan out across; 0 means GOMAXPROCS")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *width <= 0 || *height <= 0 {
		return fmt.Errorf("-w and -h are required and must be positive")
	}

	srcFmt, ok := pixfmt.ByName(*inFormat)
	if !ok {
		return fmt.Errorf("unknown input format %q", *inFormat)
	}
	dstFmt, ok := pixfmt.ByName(*outFormat)
	if !ok {
		return fmt.Errorf("unknown output format %q", *outFormat)
	}

	inRng, err := parseRange(*inRange)
	if err != nil {
		return err
	}
	outRng, err := parseRange(*outRange)
	if err != nil {
		return err
	}
	adapt, err := parseAdapt(*wpadapt)
	if err != nil {
		return err
	}

	srcMeta := colorimetry.Metadata{
		Matrix: colorimetry.MatrixCoefficients(*inSpace), Primaries: colorimetry.Primaries(*inPrimaries),
		Transfer: colorimetry.Transfer(*inTrc), Range: inRng,
	}
	dstMeta := colorimetry.Metadata{
		Matrix: colorimetry.MatrixCoefficients(*outSpace), Primaries: colorimetry.Primaries(*outPrimaries),
		Transfer: colorimetry.Transfer(*outTrc), Range: outRng,
	}

	// A named preset sets the baseline (matrix, primaries, transfer); a
	// more specific -space/-primaries/-trc flag (or its -i counterpart)
	// still wins, matching the original's "all" option precedence.
	if *inAll != "" {
		preset, ok := colorimetry.Preset(*inAll)
		if !ok {
			return fmt.Errorf("unknown -iall preset %q", *inAll)
		}
		applyPreset(&srcMeta, preset, *inSpace, *inPrimaries, *inTrc)
	}
	if *outAll != "" {
		preset, ok := colorimetry.Preset(*outAll)
		if !ok {
			return fmt.Errorf("unknown -all preset %q", *outAll)
		}
		applyPreset(&dstMeta, preset, *outSpace, *outPrimaries, *outTrc)
	}

	src, err := colorspace.NewFrame(srcFmt, srcMeta, *width, *height)
	if err != nil {
		return err
	}
	dst, err := colorspace.NewFrame(dstFmt, dstMeta, *width, *height)
	if err != nil {
		return err
	}

	in, err := openInput(*input)
	if err != nil {
		return err
	}
	defer in.Close()
	if err := readFrame(in, src); err != nil {
		return fmt.Errorf("reading frame: %w", err)
	}

	conv := colorspace.NewConverter(colorspace.Options{
		WhitePointAdapt: adapt,
		Dither:          *dither,
		Fast:            *fast,
		Parallelism:     *threads,
		Logger:          slog.New(slog.NewTextHandler(os.Stderr, nil)),
	})
	if err := conv.Convert(dst, src); err != nil {
		return err
	}

	out, err := openOutput(*output)
	if err != nil {
		return err
	}
	defer out.Close()
	return writeFrame(out, dst)
}

// applyPreset fills meta's matrix/primaries/transfer from a named preset,
// but leaves any of the three that the user also set explicitly (a
// non-Unspecified -space/-primaries/-trc flag) untouched.
func applyPreset(meta *colorimetry.Metadata, preset colorimetry.PresetTriple, spaceFlag, primariesFlag, trcFlag int) {
	if spaceFlag == int(colorimetry.MatrixUnspecified) {
		meta.Matrix = preset.Matrix
	}
	if primariesFlag == int(colorimetry.PrimariesUnspecified) {
		meta.Primaries = preset.Primaries
	}
	if trcFlag == int(colorimetry.TransferUnspecified) {
		meta.Transfer = preset.Transfer
	}
}

func parseRange(s string) (colorimetry.Range, error) {
	switch s {
	case "unspecified", "":
		return colorimetry.RangeUnspecified, nil
	case "limited":
		return colorimetry.RangeLimited, nil
	case "full":
		return colorimetry.RangeFull, nil
	default:
		return 0, fmt.Errorf("unknown range %q", s)
	}
}

func parseAdapt(s string) (colorspace.WhitePointAdapt, error) {
	switch s {
	case "bradford", "":
		return colorspace.AdaptBradford, nil
	case "vonkries":
		return colorspace.AdaptVonKries, nil
	case "identity":
		return colorspace.AdaptIdentity, nil
	default:
		return 0, fmt.Errorf("unknown wpadapt %q", s)
	}
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func readFrame(r io.Reader, f *colorspace.Frame) error {
	for i := 0; i < f.Format.NumPlanes(); i++ {
		if _, err := io.ReadFull(r, f.Planes[i]); err != nil {
			return fmt.Errorf("plane %d: %w", i, err)
		}
	}
	return nil
}

func writeFrame(w io.Writer, f *colorspace.Frame) error {
	for i := 0; i < f.Format.NumPlanes(); i++ {
		if _, err := w.Write(f.Planes[i]); err != nil {
			return fmt.Errorf("plane %d: %w", i, err)
		}
	}
	return nil
}
