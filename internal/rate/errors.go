package rate

import "errors"

var (
	// ErrStoreUnavailable reports that the backing attempt store could not be reached.
	ErrStoreUnavailable = errors.New("rate store unavailable")
)
