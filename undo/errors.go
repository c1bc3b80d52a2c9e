package undo

// UndoError is the package error type, following skribidi.ModelError, which
// itself follows cords.CordError.
type UndoError string

func (e UndoError) Error() string {
	return string(e)
}

// ErrIllegalArguments names an End call with no matching Begin. The public
// surface stays total: this value is never returned, only traced at error
// level when the call is tolerated as a no-op instead of rejected.
const ErrIllegalArguments = UndoError("illegal arguments")
