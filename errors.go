package skribidi

// ModelError is the package error type, following cords.CordError.
type ModelError string

func (e ModelError) Error() string {
	return string(e)
}

// ErrIndexOutOfBounds names a range or offset that fell outside the
// document when a caller supplied it. The public editor-facing surface
// stays total: these values are never returned, only traced at error level
// when an internal helper clips or clamps a caller-supplied range instead
// of rejecting it.
const ErrIndexOutOfBounds = ModelError("index out of bounds")

// ErrIllegalArguments names a nil or malformed argument to an internal
// helper, mirroring cords.ErrIllegalArguments. Traced rather than returned,
// for the same reason as ErrIndexOutOfBounds.
const ErrIllegalArguments = ModelError("illegal arguments")
