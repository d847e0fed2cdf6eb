package scratch

import "errors"

// ErrOutOfMemory is returned by Resize when asked for a width that cannot
// be a real frame dimension, rather than attempting the allocation.
var ErrOutOfMemory = errors.New("scratch: out of memory")
