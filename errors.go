package colorspace

// ErrorKind classifies an Error so callers can branch on failure mode
// without string matching Message.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota

	// InvalidFormat, InvalidDepth, InvalidSubsampling, FamilyMismatch,
	// UnknownPrimaries, UnknownTransfer, UnknownMatrix, InvalidRange,
	// OddDimensions and OutOfMemory are the ten kinds a Planner.Build or
	// scratch.Manager.Resize failure can surface.
	ErrInvalidFormat
	ErrInvalidDepth
	ErrInvalidSubsampling
	ErrFamilyMismatch
	ErrUnknownPrimaries
	ErrUnknownTransfer
	ErrUnknownMatrix
	ErrInvalidRange
	ErrOddDimensions
	ErrOutOfMemory

	// ErrInvalidDimensions and ErrDimensionMismatch are additional,
	// application-level kinds raised by NewFrame and Convert themselves
	// rather than by the planner.
	ErrInvalidDimensions
	ErrDimensionMismatch
)

// Error is returned by every fallible operation in this package. Message
// is meant for logs and CLI output; Kind is meant for callers that need
// to react programmatically (e.g. retry with a different format).
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, &colorspace.Error{Kind: colorspace.ErrOddDimensions}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidFormat:
		return "invalid format"
	case ErrInvalidDepth:
		return "invalid depth"
	case ErrInvalidSubsampling:
		return "invalid subsampling"
	case ErrFamilyMismatch:
		return "family mismatch"
	case ErrUnknownPrimaries:
		return "unknown primaries"
	case ErrUnknownTransfer:
		return "unknown transfer"
	case ErrUnknownMatrix:
		return "unknown matrix"
	case ErrInvalidRange:
		return "invalid range"
	case ErrOddDimensions:
		return "odd dimensions"
	case ErrOutOfMemory:
		return "out of memory"
	case ErrInvalidDimensions:
		return "invalid dimensions"
	case ErrDimensionMismatch:
		return "dimension mismatch"
	default:
		return "unknown"
	}
}
