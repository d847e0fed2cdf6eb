package plan

import "errors"

// Sentinel errors Build returns, always wrapped with additional context
// via fmt.Errorf's %w so callers can still match with errors.Is while
// getting a human-readable message out of Error().
//
// Unlike vf_colorspace.c's "best effort, never refuse the frame" posture
// for most of create_filtergraph, an unresolvable primaries/matrix/
// transfer tag here is a hard planning error: the tag tells the kernel
// which matrix or curve to use, and there is no principled default to
// substitute once it's unknown. Only an unspecified sample range (which
// Metadata.Resolve already turns into a concrete default before Build
// ever sees it) is genuinely a warn-and-continue case.
var (
	ErrInvalidFormat      = errors.New("plan: invalid pixel format")
	ErrInvalidDepth       = errors.New("plan: invalid bit depth")
	ErrInvalidSubsampling = errors.New("plan: invalid chroma subsampling")
	ErrFamilyMismatch     = errors.New("plan: input and output pixel formats belong to different families")
	ErrUnknownPrimaries   = errors.New("plan: unknown or unresolvable primaries")
	ErrUnknownTransfer    = errors.New("plan: unknown or unresolvable transfer characteristic")
	ErrUnknownMatrix      = errors.New("plan: unknown or unresolvable matrix coefficients")
	ErrInvalidRange       = errors.New("plan: invalid sample range")
	ErrOddDimensions      = errors.New("plan: odd dimensions are not supported with chroma-subsampled formats")
)
