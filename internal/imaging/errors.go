package imaging

import "errors"

// Error classes. Concrete errors wrap exactly one of these.
var (
	// ErrValidation reports malformed input: bad channel values, coordinates,
	// grids, kernels, matrices, PPM headers or seed counts.
	ErrValidation = errors.New("validation error")

	// ErrNotFound reports an image name unknown to the store.
	ErrNotFound = errors.New("image not found")

	// ErrIO reports a file that cannot be opened, decoded or written.
	ErrIO = errors.New("io error")
)
