package layout

// LayoutError is the package error type, following skribidi.ModelError,
// which itself follows cords.CordError.
type LayoutError string

func (e LayoutError) Error() string {
	return string(e)
}

// ErrIndexOutOfBounds names a paragraph range that fell outside the cache
// when a caller supplied it. The public surface stays total: this value is
// never returned, only traced at error level when ApplyChange clamps a
// Change instead of rejecting it, or when SetFromRichText finds the cache's
// paragraph count out of step with the rich text and resizes the cache.
const ErrIndexOutOfBounds = LayoutError("index out of bounds")
